package domain

import "time"

// Payment modes accepted at checkout.
const (
	PaymentModeOnline = "online"
	PaymentModeCOD    = "cod"
)

// Payment status of an order.
const (
	PaymentStatusPaid    = "paid"
	PaymentStatusPending = "pending"
)

// Fulfilment statuses. Transitions past "placed" belong to the admin console.
const (
	OrderStatusPlaced     = "placed"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// Order is created exactly once at checkout completion. The item list and
// shipping address are frozen snapshots of the cart and customer address.
type Order struct {
	ID               string          `json:"id"`
	CustomerID       string          `json:"customerId"`
	Email            string          `json:"email"`
	Items            []CartItem      `json:"items"`
	SubtotalPaise    int64           `json:"subtotalPaise"`
	DiscountPaise    int64           `json:"discountPaise"`
	ShippingPaise    int64           `json:"shippingPaise"`
	TaxPaise         int64           `json:"taxPaise"`
	TotalPaise       int64           `json:"totalPaise"`
	CouponCode       string          `json:"couponCode,omitempty"`
	Address          CustomerAddress `json:"address"`
	PaymentMode      string          `json:"paymentMode"`
	PaymentStatus    string          `json:"paymentStatus"`
	Status           string          `json:"status"`
	GatewayOrderID   string          `json:"gatewayOrderId,omitempty"`
	GatewayPaymentID string          `json:"gatewayPaymentId,omitempty"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}

// ValidOrderStatus reports whether s is a status the admin may set.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPlaced, OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}
