package product

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5"
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

const productColumns = `
id::text, key, name, description, price_paise, currency, sizes, colors, images,
is_combo, combo_quantity, combo_offer_paise, combo_key, published, created_at
`

func (r *postgresRepo) ListPublished(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+productColumns+` FROM products WHERE published ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	p, err := scanProduct(r.pool.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *postgresRepo) Upsert(ctx context.Context, in domain.Product) (*domain.Product, error) {
	sizes, err := json.Marshal(sliceOrEmpty(in.Sizes))
	if err != nil {
		return nil, fmt.Errorf("encode sizes: %w", err)
	}
	colors, err := json.Marshal(in.Colors)
	if err != nil {
		return nil, fmt.Errorf("encode colors: %w", err)
	}
	images, err := json.Marshal(sliceOrEmpty(in.Images))
	if err != nil {
		return nil, fmt.Errorf("encode images: %w", err)
	}

	const q = `
INSERT INTO products (
	key, name, description, price_paise, currency, sizes, colors, images,
	is_combo, combo_quantity, combo_offer_paise, combo_key, published
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
ON CONFLICT (key) DO UPDATE SET
	name = EXCLUDED.name,
	description = EXCLUDED.description,
	price_paise = EXCLUDED.price_paise,
	currency = EXCLUDED.currency,
	sizes = EXCLUDED.sizes,
	colors = EXCLUDED.colors,
	images = EXCLUDED.images,
	is_combo = EXCLUDED.is_combo,
	combo_quantity = EXCLUDED.combo_quantity,
	combo_offer_paise = EXCLUDED.combo_offer_paise,
	combo_key = EXCLUDED.combo_key,
	published = EXCLUDED.published
RETURNING ` + productColumns
	p, err := scanProduct(r.pool.QueryRow(ctx, q,
		in.Key, in.Name, in.Description, in.PricePaise, in.Currency, sizes, colors, images,
		in.IsCombo, in.ComboQuantity, in.ComboOfferPaise, in.ComboKey, in.Published,
	))
	if err != nil {
		return nil, err
	}
	return p, nil
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var (
		p         domain.Product
		rawSizes  []byte
		rawColors []byte
		rawImages []byte
	)
	if err := row.Scan(
		&p.ID, &p.Key, &p.Name, &p.Description, &p.PricePaise, &p.Currency,
		&rawSizes, &rawColors, &rawImages,
		&p.IsCombo, &p.ComboQuantity, &p.ComboOfferPaise, &p.ComboKey, &p.Published, &p.CreatedAt,
	); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(rawSizes, &p.Sizes); err != nil {
		return nil, fmt.Errorf("decode sizes: %w", err)
	}
	if err := json.Unmarshal(rawColors, &p.Colors); err != nil {
		return nil, fmt.Errorf("decode colors: %w", err)
	}
	if err := json.Unmarshal(rawImages, &p.Images); err != nil {
		return nil, fmt.Errorf("decode images: %w", err)
	}
	return &p, nil
}

func sliceOrEmpty(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}
