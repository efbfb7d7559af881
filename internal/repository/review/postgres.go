package review

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"storefront/internal/domain"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) Upsert(ctx context.Context, in domain.Review) (*domain.Review, error) {
	const q = `
INSERT INTO reviews (product_id, customer_id, author, rating, body)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (product_id, customer_id) DO UPDATE SET
	author = EXCLUDED.author,
	rating = EXCLUDED.rating,
	body = EXCLUDED.body
RETURNING id::text, product_id::text, customer_id::text, author, rating, body, created_at
`
	var out domain.Review
	if err := r.pool.QueryRow(ctx, q, in.ProductID, in.CustomerID, in.Author, in.Rating, in.Body).Scan(
		&out.ID, &out.ProductID, &out.CustomerID, &out.Author, &out.Rating, &out.Body, &out.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *postgresRepo) ListByProduct(ctx context.Context, productID string) ([]domain.Review, error) {
	const q = `
SELECT id::text, product_id::text, customer_id::text, author, rating, body, created_at
FROM reviews
WHERE product_id = $1
ORDER BY created_at DESC
`
	rows, err := r.pool.Query(ctx, q, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Review
	for rows.Next() {
		var rv domain.Review
		if err := rows.Scan(&rv.ID, &rv.ProductID, &rv.CustomerID, &rv.Author, &rv.Rating, &rv.Body, &rv.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}

func (r *postgresRepo) Summary(ctx context.Context, productID string) (*domain.ReviewSummary, error) {
	const q = `
SELECT COALESCE(AVG(rating), 0), COUNT(*)
FROM reviews
WHERE product_id = $1
`
	var s domain.ReviewSummary
	if err := r.pool.QueryRow(ctx, q, productID).Scan(&s.Average, &s.Count); err != nil {
		return nil, err
	}
	return &s, nil
}
