package domain

import "time"

// Coupon grants a percentage discount on the cart subtotal. Codes match
// exactly (trimmed, case-sensitive).
type Coupon struct {
	Code            string    `json:"code"`
	DiscountPercent int       `json:"discountPercent"`
	Active          bool      `json:"active"`
	CreatedAt       time.Time `json:"createdAt"`
}
