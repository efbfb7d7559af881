package product

import (
	"context"

	"storefront/internal/domain"
)

type Repository interface {
	ListPublished(ctx context.Context) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Upsert(ctx context.Context, in domain.Product) (*domain.Product, error)
}
