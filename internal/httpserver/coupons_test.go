package httpserver

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"storefront/internal/domain"
	couponsvc "storefront/internal/service/coupon"
)

func TestValidateCoupon_WithCartDiscount(t *testing.T) {
	coupons := &stubCouponService{coupon: &domain.Coupon{Code: "VIP20", DiscountPercent: 20, Active: true}}
	carts := &stubCartService{items: []domain.CartItem{
		{Title: "Tee", PricePaise: 50000, Quantity: 2},
	}}
	router := newTestRouter(t, routerOptions{coupons: coupons, carts: carts})

	req := httptest.NewRequest(http.MethodPost, "/coupons/validate", strings.NewReader(`{"code":"VIP20"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	// 20% of 100000 paise.
	if !strings.Contains(rec.Body.String(), `"discountPaise":20000`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestValidateCoupon_Invalid(t *testing.T) {
	coupons := &stubCouponService{err: couponsvc.ErrInvalid}
	router := newTestRouter(t, routerOptions{coupons: coupons})

	req := httptest.NewRequest(http.MethodPost, "/coupons/validate", strings.NewReader(`{"code":"NOPE"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"valid":false`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestValidateCoupon_MissingCode(t *testing.T) {
	router := newTestRouter(t, routerOptions{})

	req := httptest.NewRequest(http.MethodPost, "/coupons/validate", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
