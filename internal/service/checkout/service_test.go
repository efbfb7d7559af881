package checkout

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"testing"

	"storefront/internal/domain"
	"storefront/internal/payment"
	cartsvc "storefront/internal/service/cart"
	couponsvc "storefront/internal/service/coupon"
)

type stubCartStore struct {
	items    []domain.CartItem
	getErr   error
	cleared  bool
	clearErr error
}

func (s *stubCartStore) Get(_ context.Context, _ cartsvc.Identity) ([]domain.CartItem, error) {
	return s.items, s.getErr
}

func (s *stubCartStore) Clear(_ context.Context, _ cartsvc.Identity) error {
	if s.clearErr != nil {
		return s.clearErr
	}
	s.cleared = true
	return nil
}

type stubCoupons struct {
	coupon *domain.Coupon
}

func (s *stubCoupons) Validate(_ context.Context, code string) (*domain.Coupon, error) {
	if s.coupon != nil && s.coupon.Code == strings.TrimSpace(code) {
		return s.coupon, nil
	}
	return nil, couponsvc.ErrInvalid
}

type stubOrders struct {
	created   *domain.Order
	createErr error
}

func (s *stubOrders) Create(_ context.Context, in domain.Order) (*domain.Order, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	in.ID = "order-db-1"
	s.created = &in
	return &in, nil
}

type stubGateway struct {
	order     *payment.GatewayOrder
	createErr error
	verifyErr error
	lastAmt   int64
}

func (s *stubGateway) KeyID() string { return "rzp_test_key" }

func (s *stubGateway) CreateOrder(_ context.Context, amountPaise int64) (*payment.GatewayOrder, error) {
	s.lastAmt = amountPaise
	return s.order, s.createErr
}

func (s *stubGateway) VerifySignature(_, _, _ string) error { return s.verifyErr }

func testCustomer() *domain.Customer {
	return &domain.Customer{
		ID:    "c1",
		Email: "shopper@example.com",
		Addresses: []domain.CustomerAddress{
			{ID: "addr1", City: "Pune", Country: "IN"},
		},
		DefaultShippingAddressID: "addr1",
	}
}

func newTestService(carts *stubCartStore, coupons *stubCoupons, orders *stubOrders, gw *stubGateway) *Service {
	return New(carts, coupons, orders, gw, log.New(io.Discard, "", 0), 9900, 0)
}

func regularItems() []domain.CartItem {
	return []domain.CartItem{
		{ProductID: "p1", Title: "Tee", PricePaise: 50000, Quantity: 2, UniqueKey: "k1"},
	}
}

func TestQuoteItems_CouponMath(t *testing.T) {
	svc := newTestService(&stubCartStore{}, &stubCoupons{coupon: &domain.Coupon{Code: "SAVE20", DiscountPercent: 20, Active: true}}, &stubOrders{}, &stubGateway{})

	q, err := svc.QuoteItems(context.Background(), regularItems(), "SAVE20", ShippingStandard)
	if err != nil {
		t.Fatalf("quote: %v", err)
	}
	if q.SubtotalPaise != 100000 {
		t.Fatalf("expected subtotal 100000, got %d", q.SubtotalPaise)
	}
	if q.DiscountPaise != 20000 {
		t.Fatalf("expected discount 20000, got %d", q.DiscountPaise)
	}
	if q.TotalPaise != 80000 {
		t.Fatalf("expected total 80000, got %d", q.TotalPaise)
	}
}

func TestQuoteItems_ExpressShipping(t *testing.T) {
	svc := newTestService(&stubCartStore{}, &stubCoupons{}, &stubOrders{}, &stubGateway{})

	q, err := svc.QuoteItems(context.Background(), regularItems(), "", ShippingExpress)
	if err != nil {
		t.Fatalf("quote: %v", err)
	}
	if q.ShippingPaise != 9900 {
		t.Fatalf("expected express fee 9900, got %d", q.ShippingPaise)
	}
	if q.TotalPaise != 109900 {
		t.Fatalf("expected total 109900, got %d", q.TotalPaise)
	}

	if _, err := svc.QuoteItems(context.Background(), regularItems(), "", "teleport"); !errors.Is(err, ErrBadShipping) {
		t.Fatalf("expected ErrBadShipping, got %v", err)
	}
}

func TestQuoteItems_InvalidCoupon(t *testing.T) {
	svc := newTestService(&stubCartStore{}, &stubCoupons{}, &stubOrders{}, &stubGateway{})
	if _, err := svc.QuoteItems(context.Background(), regularItems(), "NOPE", ""); !errors.Is(err, couponsvc.ErrInvalid) {
		t.Fatalf("expected coupon error, got %v", err)
	}
}

func TestBeginOnline_EmptyCart(t *testing.T) {
	svc := newTestService(&stubCartStore{}, &stubCoupons{}, &stubOrders{}, &stubGateway{})
	_, err := svc.BeginOnline(context.Background(), testCustomer(), PlacementInput{})
	if !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}
}

func TestBeginOnline_NoAddress(t *testing.T) {
	carts := &stubCartStore{items: regularItems()}
	svc := newTestService(carts, &stubCoupons{}, &stubOrders{}, &stubGateway{})
	customer := &domain.Customer{ID: "c1", Email: "x@example.com"}

	_, err := svc.BeginOnline(context.Background(), customer, PlacementInput{})
	if !errors.Is(err, ErrNoAddress) {
		t.Fatalf("expected ErrNoAddress, got %v", err)
	}
}

func TestBeginOnline_GatesOnIncompleteBundle(t *testing.T) {
	carts := &stubCartStore{items: []domain.CartItem{
		{ProductID: "tees", IsCombo: true, ComboKey: "tees", ComboQuantity: 3, ComboOfferPaise: 99900, PricePaise: 49900, Quantity: 1, UniqueKey: "k1"},
	}}
	gw := &stubGateway{order: &payment.GatewayOrder{ID: "order_gw"}}
	svc := newTestService(carts, &stubCoupons{}, &stubOrders{}, gw)

	_, err := svc.BeginOnline(context.Background(), testCustomer(), PlacementInput{})
	var incomplete *IncompleteBundleError
	if !errors.As(err, &incomplete) {
		t.Fatalf("expected IncompleteBundleError, got %v", err)
	}
	if len(incomplete.Shortfalls) != 1 || incomplete.Shortfalls[0].Missing != 2 {
		t.Fatalf("unexpected shortfalls %+v", incomplete.Shortfalls)
	}
	if !strings.Contains(incomplete.Error(), "needs 2 more") {
		t.Fatalf("message should aggregate shortfalls, got %q", incomplete.Error())
	}
	if gw.lastAmt != 0 {
		t.Fatal("gateway must not be called when a bundle is incomplete")
	}
}

func TestBeginOnline_CreatesGatewayOrderForTotal(t *testing.T) {
	carts := &stubCartStore{items: regularItems()}
	gw := &stubGateway{order: &payment.GatewayOrder{ID: "order_gw", AmountPaise: 100000, Currency: "INR"}}
	svc := newTestService(carts, &stubCoupons{}, &stubOrders{}, gw)

	session, err := svc.BeginOnline(context.Background(), testCustomer(), PlacementInput{})
	if err != nil {
		t.Fatalf("begin online: %v", err)
	}
	if gw.lastAmt != 100000 {
		t.Fatalf("expected gateway order for 100000, got %d", gw.lastAmt)
	}
	if session.GatewayOrderID != "order_gw" || session.KeyID != "rzp_test_key" {
		t.Fatalf("unexpected session %+v", session)
	}
}

func TestConfirmOnline_Success(t *testing.T) {
	carts := &stubCartStore{items: regularItems()}
	orders := &stubOrders{}
	svc := newTestService(carts, &stubCoupons{}, orders, &stubGateway{})

	order, err := svc.ConfirmOnline(context.Background(), testCustomer(), ConfirmInput{
		GatewayOrderID:   "order_gw",
		GatewayPaymentID: "pay_1",
		Signature:        "sig",
	})
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if order.PaymentMode != domain.PaymentModeOnline || order.PaymentStatus != domain.PaymentStatusPaid {
		t.Fatalf("unexpected payment fields %+v", order)
	}
	if order.TotalPaise != 100000 {
		t.Fatalf("expected server-side total 100000, got %d", order.TotalPaise)
	}
	if !carts.cleared {
		t.Fatal("expected cart cleared after successful confirmation")
	}
}

func TestConfirmOnline_BadSignature(t *testing.T) {
	carts := &stubCartStore{items: regularItems()}
	orders := &stubOrders{}
	svc := newTestService(carts, &stubCoupons{}, orders, &stubGateway{verifyErr: payment.ErrBadSignature})

	_, err := svc.ConfirmOnline(context.Background(), testCustomer(), ConfirmInput{})
	if !errors.Is(err, payment.ErrBadSignature) {
		t.Fatalf("expected ErrBadSignature, got %v", err)
	}
	if orders.created != nil {
		t.Fatal("no order may be persisted on a bad signature")
	}
	if carts.cleared {
		t.Fatal("cart must stay intact on a bad signature")
	}
}

func TestConfirmOnline_SaveFailureKeepsCart(t *testing.T) {
	carts := &stubCartStore{items: regularItems()}
	orders := &stubOrders{createErr: errors.New("db down")}
	svc := newTestService(carts, &stubCoupons{}, orders, &stubGateway{})

	_, err := svc.ConfirmOnline(context.Background(), testCustomer(), ConfirmInput{
		GatewayOrderID:   "order_gw",
		GatewayPaymentID: "pay_1",
		Signature:        "sig",
	})
	if !errors.Is(err, ErrPaidNotSaved) {
		t.Fatalf("expected ErrPaidNotSaved, got %v", err)
	}
	if carts.cleared {
		t.Fatal("cart must not be cleared when a paid order fails to save")
	}
}

func TestPlaceCOD_Success(t *testing.T) {
	carts := &stubCartStore{items: regularItems()}
	orders := &stubOrders{}
	svc := newTestService(carts, &stubCoupons{coupon: &domain.Coupon{Code: "SAVE20", DiscountPercent: 20, Active: true}}, orders, &stubGateway{})

	order, err := svc.PlaceCOD(context.Background(), testCustomer(), PlacementInput{CouponCode: "SAVE20"})
	if err != nil {
		t.Fatalf("place cod: %v", err)
	}
	if order.PaymentMode != domain.PaymentModeCOD || order.PaymentStatus != domain.PaymentStatusPending {
		t.Fatalf("unexpected payment fields %+v", order)
	}
	if order.TotalPaise != 80000 {
		t.Fatalf("expected discounted total 80000, got %d", order.TotalPaise)
	}
	if !carts.cleared {
		t.Fatal("expected cart cleared after COD placement")
	}
}

func TestPlaceCOD_ClearFailureStillReturnsOrder(t *testing.T) {
	carts := &stubCartStore{items: regularItems(), clearErr: errors.New("redis down")}
	orders := &stubOrders{}
	svc := newTestService(carts, &stubCoupons{}, orders, &stubGateway{})

	order, err := svc.PlaceCOD(context.Background(), testCustomer(), PlacementInput{})
	if err != nil {
		t.Fatalf("order exists, clear failure must not surface: %v", err)
	}
	if order == nil {
		t.Fatal("expected an order")
	}
}
