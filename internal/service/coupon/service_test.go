package coupon

import (
	"context"
	"errors"
	"testing"

	"storefront/internal/domain"
)

type stubRepo struct {
	coupons map[string]domain.Coupon
}

func (s *stubRepo) GetByCode(_ context.Context, code string) (*domain.Coupon, error) {
	c, ok := s.coupons[code]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &c, nil
}

func (s *stubRepo) List(_ context.Context) ([]domain.Coupon, error) { return nil, nil }

func (s *stubRepo) Upsert(_ context.Context, in domain.Coupon) (*domain.Coupon, error) {
	return &in, nil
}

func TestValidate(t *testing.T) {
	svc := New(&stubRepo{coupons: map[string]domain.Coupon{
		"SAVE20": {Code: "SAVE20", DiscountPercent: 20, Active: true},
		"OLD10":  {Code: "OLD10", DiscountPercent: 10, Active: false},
	}})

	c, err := svc.Validate(context.Background(), "  SAVE20  ")
	if err != nil {
		t.Fatalf("expected trimmed match, got %v", err)
	}
	if c.DiscountPercent != 20 {
		t.Fatalf("unexpected coupon %+v", c)
	}

	// codes are case-sensitive
	if _, err := svc.Validate(context.Background(), "save20"); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid for wrong case, got %v", err)
	}
	if _, err := svc.Validate(context.Background(), "OLD10"); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid for inactive coupon, got %v", err)
	}
	if _, err := svc.Validate(context.Background(), ""); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid for empty code, got %v", err)
	}
}
