package coupon

import (
	"context"
	"errors"
	"strings"

	"storefront/internal/domain"
	couponrepo "storefront/internal/repository/coupon"
)

// ErrInvalid is returned for unknown, inactive or malformed coupon codes.
var ErrInvalid = errors.New("invalid coupon")

type Service struct {
	repo couponrepo.Repository
}

func New(repo couponrepo.Repository) *Service {
	return &Service{repo: repo}
}

// Validate resolves a coupon by exact code match: trimmed, case-sensitive.
func (s *Service) Validate(ctx context.Context, code string) (*domain.Coupon, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, ErrInvalid
	}
	c, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrInvalid
		}
		return nil, err
	}
	if !c.Active || c.DiscountPercent <= 0 {
		return nil, ErrInvalid
	}
	return c, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Coupon, error) {
	return s.repo.List(ctx)
}

func (s *Service) Upsert(ctx context.Context, in domain.Coupon) (*domain.Coupon, error) {
	in.Code = strings.TrimSpace(in.Code)
	if in.Code == "" {
		return nil, errors.New("code required")
	}
	if in.DiscountPercent <= 0 || in.DiscountPercent > 100 {
		return nil, errors.New("discount percent must be between 1 and 100")
	}
	return s.repo.Upsert(ctx, in)
}
