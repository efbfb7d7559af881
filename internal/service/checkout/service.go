package checkout

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"

	"storefront/internal/domain"
	"storefront/internal/payment"
	"storefront/internal/pricing"
	cartsvc "storefront/internal/service/cart"
)

// Shipping methods. Standard is free; express adds a flat surcharge.
const (
	ShippingStandard = "standard"
	ShippingExpress  = "express"
)

var (
	// ErrEmptyCart blocks checkout before any network call is made.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrNoAddress means no delivery address was chosen and none is on file.
	ErrNoAddress = errors.New("delivery address required")
	// ErrBadShipping rejects unknown shipping methods.
	ErrBadShipping = errors.New("unknown shipping method")
	// ErrPaidNotSaved marks the one failure that must never clear the cart:
	// the gateway captured the payment but the order record was not persisted.
	ErrPaidNotSaved = errors.New("payment captured but order could not be saved")
)

// IncompleteBundleError aggregates every under-filled combo group; checkout
// is blocked while any bundle still has open slots.
type IncompleteBundleError struct {
	Shortfalls []pricing.Shortfall
}

func (e *IncompleteBundleError) Error() string {
	parts := make([]string, 0, len(e.Shortfalls))
	for _, s := range e.Shortfalls {
		unit := "items"
		if s.Missing == 1 {
			unit = "item"
		}
		parts = append(parts, fmt.Sprintf("%s needs %d more %s", s.Key, s.Missing, unit))
	}
	return "incomplete combo bundles: " + strings.Join(parts, ", ")
}

type cartStore interface {
	Get(ctx context.Context, id cartsvc.Identity) ([]domain.CartItem, error)
	Clear(ctx context.Context, id cartsvc.Identity) error
}

type couponValidator interface {
	Validate(ctx context.Context, code string) (*domain.Coupon, error)
}

type orderRepo interface {
	Create(ctx context.Context, in domain.Order) (*domain.Order, error)
}

type gateway interface {
	KeyID() string
	CreateOrder(ctx context.Context, amountPaise int64) (*payment.GatewayOrder, error)
	VerifySignature(orderID, paymentID, signature string) error
}

// Service drives order placement: it prices the cart snapshot, gates on
// bundle completeness, and runs exactly one of the two placement paths.
type Service struct {
	carts   cartStore
	coupons couponValidator
	orders  orderRepo
	gateway gateway
	logger  *log.Logger

	expressShippingPaise int64
	taxRatePercent       float64
}

func New(carts cartStore, coupons couponValidator, orders orderRepo, gw gateway, logger *log.Logger, expressShippingPaise int64, taxRatePercent float64) *Service {
	return &Service{
		carts:                carts,
		coupons:              coupons,
		orders:               orders,
		gateway:              gw,
		logger:               logger,
		expressShippingPaise: expressShippingPaise,
		taxRatePercent:       taxRatePercent,
	}
}

// BundleState reports one combo group's progress for the cart drawer.
type BundleState struct {
	Key      string `json:"key"`
	Required int    `json:"required"`
	Total    int    `json:"total"`
	Status   string `json:"status"`
}

// Quote is the priced view of a cart snapshot.
type Quote struct {
	SubtotalPaise int64               `json:"subtotalPaise"`
	DiscountPaise int64               `json:"discountPaise"`
	ShippingPaise int64               `json:"shippingPaise"`
	TaxPaise      int64               `json:"taxPaise"`
	TotalPaise    int64               `json:"totalPaise"`
	CouponCode    string              `json:"couponCode,omitempty"`
	Bundles       []BundleState       `json:"bundles,omitempty"`
	Shortfalls    []pricing.Shortfall `json:"shortfalls,omitempty"`
}

// QuoteItems prices a cart snapshot. Shortfalls are reported, not fatal:
// the drawer shows the numbers; only order placement enforces the gate.
func (s *Service) QuoteItems(ctx context.Context, items []domain.CartItem, couponCode, shippingMethod string) (*Quote, error) {
	subtotal := pricing.Subtotal(items)

	var (
		discount   int64
		usedCoupon string
	)
	if strings.TrimSpace(couponCode) != "" {
		c, err := s.coupons.Validate(ctx, couponCode)
		if err != nil {
			return nil, err
		}
		discount = pricing.Discount(subtotal, c.DiscountPercent)
		usedCoupon = c.Code
	}

	shipping, err := s.shippingFee(shippingMethod)
	if err != nil {
		return nil, err
	}

	tax := int64(math.Round(float64(subtotal) * s.taxRatePercent / 100))

	var bundles []BundleState
	for _, g := range pricing.GroupCombos(items) {
		bundles = append(bundles, BundleState{Key: g.Key, Required: g.Required, Total: g.Total, Status: g.Status()})
	}

	return &Quote{
		SubtotalPaise: subtotal,
		DiscountPaise: discount,
		ShippingPaise: shipping,
		TaxPaise:      tax,
		TotalPaise:    subtotal - discount + shipping + tax,
		CouponCode:    usedCoupon,
		Bundles:       bundles,
		Shortfalls:    pricing.Shortfalls(items),
	}, nil
}

// PlacementInput identifies the payment-independent parts of an order.
type PlacementInput struct {
	AddressID      string `json:"addressId"`
	CouponCode     string `json:"couponCode"`
	ShippingMethod string `json:"shippingMethod"`
}

// OnlineSession is what the client-side gateway widget needs to collect payment.
type OnlineSession struct {
	GatewayOrderID string `json:"gatewayOrderId"`
	AmountPaise    int64  `json:"amountPaise"`
	Currency       string `json:"currency"`
	KeyID          string `json:"keyId"`
}

// ConfirmInput is the gateway success callback plus the placement fields,
// re-submitted so the total can be recomputed server-side.
type ConfirmInput struct {
	GatewayOrderID   string `json:"gatewayOrderId"`
	GatewayPaymentID string `json:"gatewayPaymentId"`
	Signature        string `json:"signature"`
	PlacementInput
}

// BeginOnline checks every precondition and creates a gateway order for the
// computed total. Nothing is persisted yet; the cart stays untouched.
func (s *Service) BeginOnline(ctx context.Context, customer *domain.Customer, in PlacementInput) (*OnlineSession, error) {
	_, _, quote, err := s.prepare(ctx, customer, in)
	if err != nil {
		return nil, err
	}

	gwOrder, err := s.gateway.CreateOrder(ctx, quote.TotalPaise)
	if err != nil {
		return nil, err
	}
	return &OnlineSession{
		GatewayOrderID: gwOrder.ID,
		AmountPaise:    gwOrder.AmountPaise,
		Currency:       gwOrder.Currency,
		KeyID:          s.gateway.KeyID(),
	}, nil
}

// ConfirmOnline verifies the signed callback, persists the order and clears
// the cart. If the order cannot be saved after a verified payment the cart
// is deliberately left intact and the error says so distinctly: a paid order
// is never silently lost.
func (s *Service) ConfirmOnline(ctx context.Context, customer *domain.Customer, in ConfirmInput) (*domain.Order, error) {
	items, address, quote, err := s.prepare(ctx, customer, in.PlacementInput)
	if err != nil {
		return nil, err
	}

	if err := s.gateway.VerifySignature(in.GatewayOrderID, in.GatewayPaymentID, in.Signature); err != nil {
		return nil, err
	}

	order, err := s.orders.Create(ctx, domain.Order{
		CustomerID:       customer.ID,
		Email:            customer.Email,
		Items:            items,
		SubtotalPaise:    quote.SubtotalPaise,
		DiscountPaise:    quote.DiscountPaise,
		ShippingPaise:    quote.ShippingPaise,
		TaxPaise:         quote.TaxPaise,
		TotalPaise:       quote.TotalPaise,
		CouponCode:       quote.CouponCode,
		Address:          address,
		PaymentMode:      domain.PaymentModeOnline,
		PaymentStatus:    domain.PaymentStatusPaid,
		Status:           domain.OrderStatusPlaced,
		GatewayOrderID:   in.GatewayOrderID,
		GatewayPaymentID: in.GatewayPaymentID,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPaidNotSaved, err)
	}

	s.clearCart(ctx, customer.ID, order.ID)
	return order, nil
}

// PlaceCOD persists a cash-on-delivery order with payment pending, then
// clears the cart.
func (s *Service) PlaceCOD(ctx context.Context, customer *domain.Customer, in PlacementInput) (*domain.Order, error) {
	items, address, quote, err := s.prepare(ctx, customer, in)
	if err != nil {
		return nil, err
	}

	order, err := s.orders.Create(ctx, domain.Order{
		CustomerID:    customer.ID,
		Email:         customer.Email,
		Items:         items,
		SubtotalPaise: quote.SubtotalPaise,
		DiscountPaise: quote.DiscountPaise,
		ShippingPaise: quote.ShippingPaise,
		TaxPaise:      quote.TaxPaise,
		TotalPaise:    quote.TotalPaise,
		CouponCode:    quote.CouponCode,
		Address:       address,
		PaymentMode:   domain.PaymentModeCOD,
		PaymentStatus: domain.PaymentStatusPending,
		Status:        domain.OrderStatusPlaced,
	})
	if err != nil {
		return nil, err
	}

	s.clearCart(ctx, customer.ID, order.ID)
	return order, nil
}

// prepare runs the shared precondition chain: non-empty cart, resolvable
// address, complete bundles, then prices the snapshot.
func (s *Service) prepare(ctx context.Context, customer *domain.Customer, in PlacementInput) ([]domain.CartItem, domain.CustomerAddress, *Quote, error) {
	var none domain.CustomerAddress

	items, err := s.carts.Get(ctx, cartsvc.Identity{CustomerID: customer.ID})
	if err != nil {
		return nil, none, nil, err
	}
	if len(items) == 0 {
		return nil, none, nil, ErrEmptyCart
	}

	addressID := strings.TrimSpace(in.AddressID)
	if addressID == "" {
		addressID = customer.DefaultShippingAddressID
	}
	address, ok := customer.AddressByID(addressID)
	if !ok {
		return nil, none, nil, ErrNoAddress
	}

	if shortfalls := pricing.Shortfalls(items); len(shortfalls) > 0 {
		return nil, none, nil, &IncompleteBundleError{Shortfalls: shortfalls}
	}

	quote, err := s.QuoteItems(ctx, items, in.CouponCode, in.ShippingMethod)
	if err != nil {
		return nil, none, nil, err
	}
	return items, address, quote, nil
}

func (s *Service) shippingFee(method string) (int64, error) {
	switch strings.TrimSpace(method) {
	case "", ShippingStandard:
		return 0, nil
	case ShippingExpress:
		return s.expressShippingPaise, nil
	default:
		return 0, ErrBadShipping
	}
}

// clearCart runs after a persisted order; its failure is logged, never
// surfaced, because the order already exists.
func (s *Service) clearCart(ctx context.Context, customerID, orderID string) {
	if err := s.carts.Clear(ctx, cartsvc.Identity{CustomerID: customerID}); err != nil {
		s.logger.Printf("checkout: clear cart for customer %s after order %s: %v", customerID, orderID, err)
	}
}
