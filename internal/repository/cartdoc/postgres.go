package cartdoc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"storefront/internal/domain"
)

// channelName is the LISTEN/NOTIFY channel carrying customer ids of changed carts.
const channelName = "cart_docs_changed"

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) Get(ctx context.Context, customerID string) ([]domain.CartItem, error) {
	const q = `
SELECT items
FROM cart_docs
WHERE customer_id = $1
`
	var raw []byte
	if err := r.pool.QueryRow(ctx, q, customerID).Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, mapWriteErr(err)
	}
	var items []domain.CartItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode cart doc: %w", err)
	}
	return items, nil
}

func (r *postgresRepo) Put(ctx context.Context, customerID string, items []domain.CartItem) error {
	if items == nil {
		items = []domain.CartItem{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode cart doc: %w", err)
	}
	const q = `
INSERT INTO cart_docs (customer_id, items, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (customer_id) DO UPDATE SET items = EXCLUDED.items, updated_at = now()
`
	if _, err := r.pool.Exec(ctx, q, customerID, raw); err != nil {
		return mapWriteErr(err)
	}
	return r.notify(ctx, customerID)
}

func (r *postgresRepo) Delete(ctx context.Context, customerID string) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM cart_docs WHERE customer_id = $1`, customerID); err != nil {
		return mapWriteErr(err)
	}
	return r.notify(ctx, customerID)
}

func (r *postgresRepo) notify(ctx context.Context, customerID string) error {
	_, err := r.pool.Exec(ctx, `SELECT pg_notify($1, $2)`, channelName, customerID)
	return err
}

// mapWriteErr translates Postgres permission failures into the domain
// sentinel so callers can degrade to the guest store instead of losing the cart.
func mapWriteErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "42501" {
		return fmt.Errorf("%w: %s", domain.ErrPermissionDenied, pgErr.Message)
	}
	return err
}
