package httpserver

import (
	"context"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"storefront/internal/domain"
	cartsvc "storefront/internal/service/cart"
	checkoutsvc "storefront/internal/service/checkout"
	customersvc "storefront/internal/service/customer"
)

func logDiscard() *log.Logger {
	return log.New(io.Discard, "", 0)
}

type stubCartService struct {
	items    []domain.CartItem
	err      error
	mergeErr error

	lastIdentity cartsvc.Identity
	merged       bool
}

func (s *stubCartService) Get(_ context.Context, id cartsvc.Identity) ([]domain.CartItem, error) {
	s.lastIdentity = id
	return s.items, s.err
}

func (s *stubCartService) Add(_ context.Context, id cartsvc.Identity, _ cartsvc.AddInput) ([]domain.CartItem, error) {
	s.lastIdentity = id
	return s.items, s.err
}

func (s *stubCartService) Remove(_ context.Context, id cartsvc.Identity, _ int) ([]domain.CartItem, error) {
	s.lastIdentity = id
	return s.items, s.err
}

func (s *stubCartService) Increment(_ context.Context, id cartsvc.Identity, _ int) ([]domain.CartItem, error) {
	s.lastIdentity = id
	return s.items, s.err
}

func (s *stubCartService) Decrement(_ context.Context, id cartsvc.Identity, _ int) ([]domain.CartItem, error) {
	s.lastIdentity = id
	return s.items, s.err
}

func (s *stubCartService) Clear(_ context.Context, id cartsvc.Identity) error {
	s.lastIdentity = id
	return s.err
}

func (s *stubCartService) Merge(_ context.Context, _, _ string) ([]domain.CartItem, error) {
	s.merged = true
	return s.items, s.mergeErr
}

func (s *stubCartService) Subtotal(items []domain.CartItem) int64 {
	var total int64
	for _, it := range items {
		total += it.PricePaise * int64(it.Quantity)
	}
	return total
}

type stubCheckoutService struct {
	quote   *checkoutsvc.Quote
	session *checkoutsvc.OnlineSession
	order   *domain.Order
	err     error
}

func (s *stubCheckoutService) QuoteItems(_ context.Context, _ []domain.CartItem, _, _ string) (*checkoutsvc.Quote, error) {
	return s.quote, s.err
}

func (s *stubCheckoutService) BeginOnline(_ context.Context, _ *domain.Customer, _ checkoutsvc.PlacementInput) (*checkoutsvc.OnlineSession, error) {
	return s.session, s.err
}

func (s *stubCheckoutService) ConfirmOnline(_ context.Context, _ *domain.Customer, _ checkoutsvc.ConfirmInput) (*domain.Order, error) {
	return s.order, s.err
}

func (s *stubCheckoutService) PlaceCOD(_ context.Context, _ *domain.Customer, _ checkoutsvc.PlacementInput) (*domain.Order, error) {
	return s.order, s.err
}

type stubCustomerService struct {
	customer  *domain.Customer
	signupErr error
	loginErr  error
	tokenErr  error
}

func (s *stubCustomerService) Signup(_ context.Context, _ customersvc.SignupInput) (*domain.Customer, error) {
	return s.customer, s.signupErr
}

func (s *stubCustomerService) Login(_ context.Context, _, _ string) (*domain.Customer, string, string, error) {
	return s.customer, "access", "refresh", s.loginErr
}

func (s *stubCustomerService) LookupByToken(_ context.Context, _ string) (*domain.Customer, error) {
	if s.tokenErr != nil {
		return nil, s.tokenErr
	}
	return s.customer, nil
}

func (s *stubCustomerService) AccessTTLSeconds() int { return 3600 }

type stubProductService struct {
	products []domain.Product
	product  *domain.Product
	err      error
}

func (s *stubProductService) List(_ context.Context) ([]domain.Product, error) {
	return s.products, s.err
}

func (s *stubProductService) Get(_ context.Context, _ string) (*domain.Product, error) {
	return s.product, s.err
}

func (s *stubProductService) Upsert(_ context.Context, _ domain.Product) (*domain.Product, error) {
	return s.product, s.err
}

type stubCouponService struct {
	coupon  *domain.Coupon
	coupons []domain.Coupon
	err     error
}

func (s *stubCouponService) Validate(_ context.Context, _ string) (*domain.Coupon, error) {
	return s.coupon, s.err
}

func (s *stubCouponService) List(_ context.Context) ([]domain.Coupon, error) {
	return s.coupons, s.err
}

func (s *stubCouponService) Upsert(_ context.Context, _ domain.Coupon) (*domain.Coupon, error) {
	return s.coupon, s.err
}

type stubReviewService struct {
	review  *domain.Review
	reviews []domain.Review
	summary *domain.ReviewSummary
	err     error
}

func (s *stubReviewService) Add(_ context.Context, _ domain.Review) (*domain.Review, error) {
	return s.review, s.err
}

func (s *stubReviewService) ListByProduct(_ context.Context, _ string) ([]domain.Review, *domain.ReviewSummary, error) {
	return s.reviews, s.summary, s.err
}

type routerOptions struct {
	carts     *stubCartService
	checkout  *stubCheckoutService
	customers *stubCustomerService
	products  *stubProductService
	coupons   *stubCouponService

	adminToken string
}

func newTestRouter(t *testing.T, opts routerOptions) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	if opts.carts == nil {
		opts.carts = &stubCartService{}
	}
	if opts.checkout == nil {
		opts.checkout = &stubCheckoutService{}
	}
	if opts.customers == nil {
		opts.customers = &stubCustomerService{}
	}
	if opts.products == nil {
		opts.products = &stubProductService{}
	}
	if opts.coupons == nil {
		opts.coupons = &stubCouponService{}
	}

	router, err := buildRouter(logDiscard(), nil, Deps{
		CartSvc:     opts.carts,
		CheckoutSvc: opts.checkout,
		CustomerSvc: opts.customers,
		ProductSvc:  opts.products,
		CouponSvc:   opts.coupons,
		AdminToken:  opts.adminToken,
	})
	if err != nil {
		t.Fatalf("build router: %v", err)
	}
	return router
}

func TestBuildRouter_MissingDeps(t *testing.T) {
	gin.SetMode(gin.TestMode)
	if _, err := buildRouter(logDiscard(), nil, Deps{}); err == nil {
		t.Fatal("expected error for empty deps")
	}
}

func TestHealthz(t *testing.T) {
	router := newTestRouter(t, routerOptions{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestReadyz_NoDB(t *testing.T) {
	router := newTestRouter(t, routerOptions{})

	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}

func TestAdminGroup_RequiresToken(t *testing.T) {
	router := newTestRouter(t, routerOptions{adminToken: "hunter2"})

	req := httptest.NewRequest(http.MethodGet, "/admin/coupons", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 without token, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/admin/coupons", nil)
	req.Header.Set("Authorization", "Bearer hunter2")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with token, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestAdminGroup_DisabledWithoutConfiguredToken(t *testing.T) {
	router := newTestRouter(t, routerOptions{})

	req := httptest.NewRequest(http.MethodGet, "/admin/coupons", nil)
	req.Header.Set("Authorization", "Bearer anything")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}
