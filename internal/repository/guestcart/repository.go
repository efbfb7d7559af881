package guestcart

import (
	"context"

	"storefront/internal/domain"
)

// Repository stores carts for anonymous shoppers, keyed by guest id. This is
// the device-storage analog of the customer cart document: one item list,
// replaced whole on every write, expiring when the guest goes quiet.
type Repository interface {
	Get(ctx context.Context, guestID string) ([]domain.CartItem, error)
	Put(ctx context.Context, guestID string, items []domain.CartItem) error
	Delete(ctx context.Context, guestID string) error
}
