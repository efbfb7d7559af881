package order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

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

const orderColumns = `
id::text, customer_id::text, email, items, subtotal_paise, discount_paise,
shipping_paise, tax_paise, total_paise, coupon_code, address, payment_mode,
payment_status, status, gateway_order_id, gateway_payment_id, created_at, updated_at
`

func (r *postgresRepo) Create(ctx context.Context, in domain.Order) (*domain.Order, error) {
	items, err := json.Marshal(in.Items)
	if err != nil {
		return nil, fmt.Errorf("encode order items: %w", err)
	}
	address, err := json.Marshal(in.Address)
	if err != nil {
		return nil, fmt.Errorf("encode order address: %w", err)
	}
	const q = `
INSERT INTO orders (
	customer_id, email, items, subtotal_paise, discount_paise, shipping_paise,
	tax_paise, total_paise, coupon_code, address, payment_mode, payment_status,
	status, gateway_order_id, gateway_payment_id
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
RETURNING ` + orderColumns
	row := r.pool.QueryRow(ctx, q,
		in.CustomerID, in.Email, items, in.SubtotalPaise, in.DiscountPaise,
		in.ShippingPaise, in.TaxPaise, in.TotalPaise, in.CouponCode, address,
		in.PaymentMode, in.PaymentStatus, in.Status, in.GatewayOrderID, in.GatewayPaymentID,
	)
	return scanOrder(row)
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
	out, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return out, nil
}

func (r *postgresRepo) ListByCustomer(ctx context.Context, customerID string) ([]domain.Order, error) {
	const q = `SELECT ` + orderColumns + ` FROM orders WHERE customer_id = $1 ORDER BY created_at DESC`
	return r.list(ctx, q, customerID)
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.Order, error) {
	const q = `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC`
	return r.list(ctx, q)
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, id, status string) (*domain.Order, error) {
	const q = `
UPDATE orders
SET status = $1, updated_at = now()
WHERE id = $2
RETURNING ` + orderColumns
	out, err := scanOrder(r.pool.QueryRow(ctx, q, status, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return out, nil
}

func (r *postgresRepo) list(ctx context.Context, q string, args ...interface{}) ([]domain.Order, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *o)
	}
	return out, rows.Err()
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var (
		o          domain.Order
		rawItems   []byte
		rawAddress []byte
	)
	if err := row.Scan(
		&o.ID, &o.CustomerID, &o.Email, &rawItems, &o.SubtotalPaise, &o.DiscountPaise,
		&o.ShippingPaise, &o.TaxPaise, &o.TotalPaise, &o.CouponCode, &rawAddress,
		&o.PaymentMode, &o.PaymentStatus, &o.Status, &o.GatewayOrderID, &o.GatewayPaymentID,
		&o.CreatedAt, &o.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(rawItems, &o.Items); err != nil {
		return nil, fmt.Errorf("decode order items: %w", err)
	}
	if err := json.Unmarshal(rawAddress, &o.Address); err != nil {
		return nil, fmt.Errorf("decode order address: %w", err)
	}
	return &o, nil
}
