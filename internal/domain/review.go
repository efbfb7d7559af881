package domain

import "time"

// Review is a customer's rating of a product, one per customer per product.
type Review struct {
	ID         string    `json:"id"`
	ProductID  string    `json:"productId"`
	CustomerID string    `json:"customerId"`
	Author     string    `json:"author,omitempty"`
	Rating     int       `json:"rating"`
	Body       string    `json:"body,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ReviewSummary aggregates ratings for a product listing.
type ReviewSummary struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}
