package seed

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"storefront/internal/domain"
)

type productSeed struct {
	Key             string
	Name            string
	Description     string
	PricePaise      int64
	Sizes           []string
	Colors          []domain.Color
	Images          []string
	IsCombo         bool
	ComboQuantity   int
	ComboOfferPaise int64
	ComboKey        string
}

type couponSeed struct {
	Code            string
	DiscountPercent int
	Active          bool
}

// Apply inserts basic seed data for manual testing. It is idempotent via ON CONFLICT.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	products := []productSeed{
		{
			Key:         "oversized-tee-black",
			Name:        "Oversized Tee Black",
			Description: "Heavyweight 240gsm oversized tee",
			PricePaise:  79900,
			Sizes:       []string{"S", "M", "L", "XL"},
			Colors:      []domain.Color{{Name: "Black", Hex: "#111111"}},
			Images:      []string{"https://cdn.example.com/tees/black-front.jpg"},
		},
		{
			Key:         "oversized-tee-bone",
			Name:        "Oversized Tee Bone",
			Description: "Heavyweight 240gsm oversized tee",
			PricePaise:  79900,
			Sizes:       []string{"S", "M", "L", "XL"},
			Colors:      []domain.Color{{Name: "Bone", Hex: "#e8e4da"}},
			Images:      []string{"https://cdn.example.com/tees/bone-front.jpg"},
		},
		{
			Key:             "combo-tee-black",
			Name:            "Combo Tee Black",
			Description:     "Pick any three combo tees for a flat bundle price",
			PricePaise:      49900,
			Sizes:           []string{"S", "M", "L", "XL"},
			Colors:          []domain.Color{{Name: "Black", Hex: "#111111"}},
			Images:          []string{"https://cdn.example.com/combo/black.jpg"},
			IsCombo:         true,
			ComboQuantity:   3,
			ComboOfferPaise: 99900,
			ComboKey:        "tee-trio",
		},
		{
			Key:             "combo-tee-olive",
			Name:            "Combo Tee Olive",
			Description:     "Pick any three combo tees for a flat bundle price",
			PricePaise:      49900,
			Sizes:           []string{"S", "M", "L", "XL"},
			Colors:          []domain.Color{{Name: "Olive", Hex: "#5e6442"}},
			Images:          []string{"https://cdn.example.com/combo/olive.jpg"},
			IsCombo:         true,
			ComboQuantity:   3,
			ComboOfferPaise: 99900,
			ComboKey:        "tee-trio",
		},
		{
			Key:         "cargo-pants-sand",
			Name:        "Cargo Pants Sand",
			Description: "Relaxed fit cargo with six pockets",
			PricePaise:  189900,
			Sizes:       []string{"30", "32", "34", "36"},
			Colors:      []domain.Color{{Name: "Sand", Hex: "#c9b68f"}},
			Images:      []string{"https://cdn.example.com/cargo/sand-front.jpg"},
		},
	}

	for _, p := range products {
		if err := upsertProduct(ctx, pool, p); err != nil {
			return fmt.Errorf("upsert product %s: %w", p.Key, err)
		}
	}

	coupons := []couponSeed{
		{Code: "WELCOME10", DiscountPercent: 10, Active: true},
		{Code: "VIP20", DiscountPercent: 20, Active: true},
		{Code: "LAUNCH25", DiscountPercent: 25, Active: false},
	}

	for _, c := range coupons {
		if err := upsertCoupon(ctx, pool, c); err != nil {
			return fmt.Errorf("upsert coupon %s: %w", c.Code, err)
		}
	}

	return nil
}

func upsertProduct(ctx context.Context, pool *pgxpool.Pool, p productSeed) error {
	sizes, err := json.Marshal(p.Sizes)
	if err != nil {
		return err
	}
	colors, err := json.Marshal(p.Colors)
	if err != nil {
		return err
	}
	images, err := json.Marshal(p.Images)
	if err != nil {
		return err
	}

	const q = `
INSERT INTO products (key, name, description, price_paise, currency, sizes, colors, images, is_combo, combo_quantity, combo_offer_paise, combo_key, published)
VALUES ($1, $2, $3, $4, 'INR', $5, $6, $7, $8, $9, $10, $11, true)
ON CONFLICT (key) DO UPDATE
SET name = EXCLUDED.name,
    description = EXCLUDED.description,
    price_paise = EXCLUDED.price_paise,
    sizes = EXCLUDED.sizes,
    colors = EXCLUDED.colors,
    images = EXCLUDED.images,
    is_combo = EXCLUDED.is_combo,
    combo_quantity = EXCLUDED.combo_quantity,
    combo_offer_paise = EXCLUDED.combo_offer_paise,
    combo_key = EXCLUDED.combo_key
`
	_, err = pool.Exec(ctx, q, p.Key, p.Name, p.Description, p.PricePaise, sizes, colors, images, p.IsCombo, p.ComboQuantity, p.ComboOfferPaise, p.ComboKey)
	return err
}

func upsertCoupon(ctx context.Context, pool *pgxpool.Pool, c couponSeed) error {
	const q = `
INSERT INTO coupons (code, discount_percent, active)
VALUES ($1, $2, $3)
ON CONFLICT (code) DO UPDATE
SET discount_percent = EXCLUDED.discount_percent,
    active = EXCLUDED.active
`
	_, err := pool.Exec(ctx, q, c.Code, c.DiscountPercent, c.Active)
	return err
}
