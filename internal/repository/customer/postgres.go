package customer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"storefront/internal/domain"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	return &postgresRepo{pool: pool, logger: logger}
}

const customerColumns = `
id::text, email, password_hash, first_name, last_name, addresses,
default_shipping_address_id, created_at
`

func (r *postgresRepo) Create(ctx context.Context, in domain.Customer) (*domain.Customer, error) {
	addresses, err := json.Marshal(in.Addresses)
	if err != nil {
		return nil, fmt.Errorf("encode addresses: %w", err)
	}
	const q = `
INSERT INTO customers (email, password_hash, first_name, last_name, addresses, default_shipping_address_id)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING ` + customerColumns
	c, err := scanCustomer(r.pool.QueryRow(ctx, q,
		in.Email, in.PasswordHash, in.FirstName, in.LastName, addresses, in.DefaultShippingAddressID,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrAlreadyExists
		}
		return nil, err
	}
	return c, nil
}

func (r *postgresRepo) GetByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	return r.get(ctx, `SELECT `+customerColumns+` FROM customers WHERE email = $1`, email)
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	return r.get(ctx, `SELECT `+customerColumns+` FROM customers WHERE id = $1`, id)
}

func (r *postgresRepo) get(ctx context.Context, q string, arg interface{}) (*domain.Customer, error) {
	c, err := scanCustomer(r.pool.QueryRow(ctx, q, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func scanCustomer(row pgx.Row) (*domain.Customer, error) {
	var (
		c            domain.Customer
		rawAddresses []byte
	)
	if err := row.Scan(
		&c.ID, &c.Email, &c.PasswordHash, &c.FirstName, &c.LastName,
		&rawAddresses, &c.DefaultShippingAddressID, &c.CreatedAt,
	); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(rawAddresses, &c.Addresses); err != nil {
		return nil, fmt.Errorf("decode addresses: %w", err)
	}
	return &c, nil
}
