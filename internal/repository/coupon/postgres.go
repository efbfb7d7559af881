package coupon

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"storefront/internal/domain"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) GetByCode(ctx context.Context, code string) (*domain.Coupon, error) {
	const q = `
SELECT code, discount_percent, active, created_at
FROM coupons
WHERE code = $1
`
	var c domain.Coupon
	if err := r.pool.QueryRow(ctx, q, code).Scan(&c.Code, &c.DiscountPercent, &c.Active, &c.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.Coupon, error) {
	rows, err := r.pool.Query(ctx, `
SELECT code, discount_percent, active, created_at
FROM coupons
ORDER BY created_at DESC
`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Coupon
	for rows.Next() {
		var c domain.Coupon
		if err := rows.Scan(&c.Code, &c.DiscountPercent, &c.Active, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *postgresRepo) Upsert(ctx context.Context, in domain.Coupon) (*domain.Coupon, error) {
	const q = `
INSERT INTO coupons (code, discount_percent, active)
VALUES ($1, $2, $3)
ON CONFLICT (code) DO UPDATE SET discount_percent = EXCLUDED.discount_percent, active = EXCLUDED.active
RETURNING code, discount_percent, active, created_at
`
	var c domain.Coupon
	if err := r.pool.QueryRow(ctx, q, in.Code, in.DiscountPercent, in.Active).Scan(
		&c.Code, &c.DiscountPercent, &c.Active, &c.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &c, nil
}
