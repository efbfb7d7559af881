package domain

import (
	"encoding/json"
	"strings"
)

// Color is a variant selector. Clients send either a bare string ("Navy")
// or a {name, hex} object; both decode into the same shape.
type Color struct {
	Name string `json:"name,omitempty"`
	Hex  string `json:"hex,omitempty"`
}

func (c *Color) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		c.Name = s
		c.Hex = ""
		return nil
	}
	type plain Color
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*c = Color(p)
	return nil
}

// Normalized returns the lower-cased trimmed color name used for identity checks.
func (c Color) Normalized() string {
	return strings.ToLower(strings.TrimSpace(c.Name))
}

// CartItem is one line of a cart document. Title, price and image are a
// snapshot taken at add time; they do not track later catalog changes.
type CartItem struct {
	ProductID       string `json:"productId"`
	Title           string `json:"title"`
	PricePaise      int64  `json:"pricePaise"`
	Image           string `json:"image,omitempty"`
	Quantity        int    `json:"quantity"`
	Size            string `json:"size,omitempty"`
	Color           Color  `json:"color"`
	UniqueKey       string `json:"uniqueKey"`
	IsCombo         bool   `json:"isCombo,omitempty"`
	ComboQuantity   int    `json:"comboQuantity,omitempty"`
	ComboOfferPaise int64  `json:"comboOfferPaise,omitempty"`
	ComboKey        string `json:"comboKey,omitempty"`
}

// BundleKey groups combo lines into a bundle: explicit comboKey first,
// then the product id, then the title as a last resort.
func (i CartItem) BundleKey() string {
	if k := strings.TrimSpace(i.ComboKey); k != "" {
		return k
	}
	if i.ProductID != "" {
		return i.ProductID
	}
	return i.Title
}
