package httpserver

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"storefront/internal/domain"
	customersvc "storefront/internal/service/customer"
)

func TestSignupHandler_Created(t *testing.T) {
	customers := &stubCustomerService{
		customer: &domain.Customer{ID: "cust-1", Email: "user@example.com"},
	}
	router := newTestRouter(t, routerOptions{customers: customers})

	body := `{"email":"user@example.com","password":"Abcdefg1","firstName":"Ada"}`
	req := httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"email":"user@example.com"`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestSignupHandler_DuplicateEmail(t *testing.T) {
	customers := &stubCustomerService{signupErr: domain.ErrAlreadyExists}
	router := newTestRouter(t, routerOptions{customers: customers})

	body := `{"email":"user@example.com","password":"Abcdefg1"}`
	req := httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestLoginHandler_Success(t *testing.T) {
	customers := &stubCustomerService{
		customer: &domain.Customer{ID: "cust-1", Email: "user@example.com"},
	}
	router := newTestRouter(t, routerOptions{customers: customers})

	body := `{"email":"user@example.com","password":"Abcdefg1"}`
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	for _, want := range []string{`"accessToken":"access"`, `"refreshToken":"refresh"`, `"expiresIn":3600`} {
		if !strings.Contains(rec.Body.String(), want) {
			t.Fatalf("expected %s in body: %s", want, rec.Body.String())
		}
	}
}

func TestLoginHandler_InvalidCredentials(t *testing.T) {
	customers := &stubCustomerService{loginErr: customersvc.ErrInvalidCredentials}
	router := newTestRouter(t, routerOptions{customers: customers})

	body := `{"email":"user@example.com","password":"wrong"}`
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestMeHandler_RequiresAuth(t *testing.T) {
	router := newTestRouter(t, routerOptions{})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestMeHandler_ReturnsCustomer(t *testing.T) {
	customers := &stubCustomerService{
		customer: &domain.Customer{ID: "cust-1", Email: "user@example.com"},
	}
	router := newTestRouter(t, routerOptions{customers: customers})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer tok")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"id":"cust-1"`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestAuthMiddleware_BadTokenFallsBackToGuest(t *testing.T) {
	carts := &stubCartService{}
	customers := &stubCustomerService{tokenErr: customersvc.ErrInvalidToken}
	router := newTestRouter(t, routerOptions{carts: carts, customers: customers})

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.Header.Set("Authorization", "Bearer stale")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if carts.lastIdentity.CustomerID != "" {
		t.Fatalf("stale token must not resolve a customer, got %q", carts.lastIdentity.CustomerID)
	}
	if carts.lastIdentity.GuestID == "" {
		t.Fatal("expected guest identity fallback")
	}
}
