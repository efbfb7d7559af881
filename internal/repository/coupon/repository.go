package coupon

import (
	"context"

	"storefront/internal/domain"
)

type Repository interface {
	GetByCode(ctx context.Context, code string) (*domain.Coupon, error)
	List(ctx context.Context) ([]domain.Coupon, error)
	Upsert(ctx context.Context, in domain.Coupon) (*domain.Coupon, error)
}
