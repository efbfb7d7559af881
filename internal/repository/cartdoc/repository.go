package cartdoc

import (
	"context"

	"storefront/internal/domain"
)

// Repository stores one cart document per customer. Put replaces the whole
// item list; every write notifies live subscribers.
type Repository interface {
	Get(ctx context.Context, customerID string) ([]domain.CartItem, error)
	Put(ctx context.Context, customerID string, items []domain.CartItem) error
	Delete(ctx context.Context, customerID string) error
}
