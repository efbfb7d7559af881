package review

import (
	"context"

	"storefront/internal/domain"
)

type Repository interface {
	Upsert(ctx context.Context, in domain.Review) (*domain.Review, error)
	ListByProduct(ctx context.Context, productID string) ([]domain.Review, error)
	Summary(ctx context.Context, productID string) (*domain.ReviewSummary, error)
}
