package domain

import "time"

// Product is a clothing catalog entry. Combo fields describe the bundle a
// product participates in; they are copied onto cart lines at add time.
type Product struct {
	ID              string    `json:"id"`
	Key             string    `json:"key"`
	Name            string    `json:"name"`
	Description     string    `json:"description,omitempty"`
	PricePaise      int64     `json:"pricePaise"`
	Currency        string    `json:"currency"`
	Sizes           []string  `json:"sizes,omitempty"`
	Colors          []Color   `json:"colors,omitempty"`
	Images          []string  `json:"images,omitempty"`
	IsCombo         bool      `json:"isCombo,omitempty"`
	ComboQuantity   int       `json:"comboQuantity,omitempty"`
	ComboOfferPaise int64     `json:"comboOfferPaise,omitempty"`
	ComboKey        string    `json:"comboKey,omitempty"`
	Published       bool      `json:"published"`
	CreatedAt       time.Time `json:"createdAt"`
}
