package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCreateOrder_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/orders" || r.Method != http.MethodPost {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		user, pass, ok := r.BasicAuth()
		if !ok || user != "key" || pass != "secret" {
			t.Fatalf("missing basic auth, got %q/%q", user, pass)
		}
		var body map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body["amount"].(float64) != 99900 {
			t.Fatalf("unexpected amount %v", body["amount"])
		}
		if body["receipt"].(string) == "" {
			t.Fatal("expected a receipt")
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id": "order_123", "amount": 99900, "currency": "INR",
		})
	}))
	defer srv.Close()

	client := NewClient("key", "secret", srv.URL)
	order, err := client.CreateOrder(context.Background(), 99900)
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if order.ID != "order_123" || order.AmountPaise != 99900 || order.Currency != "INR" {
		t.Fatalf("unexpected order %+v", order)
	}
}

func TestCreateOrder_SurfacesGatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]string{"description": "amount too small"},
		})
	}))
	defer srv.Close()

	client := NewClient("key", "secret", srv.URL)
	_, err := client.CreateOrder(context.Background(), 1)
	if err == nil || err.Error() != "gateway: amount too small" {
		t.Fatalf("expected verbatim gateway error, got %v", err)
	}
}

func TestVerifySignature(t *testing.T) {
	client := NewClient("key", "secret", "http://unused")

	mac := hmac.New(sha256.New, []byte("secret"))
	mac.Write([]byte("order_1|pay_1"))
	good := hex.EncodeToString(mac.Sum(nil))

	if err := client.VerifySignature("order_1", "pay_1", good); err != nil {
		t.Fatalf("expected valid signature, got %v", err)
	}
	if err := client.VerifySignature("order_1", "pay_1", "deadbeef"); !errors.Is(err, ErrBadSignature) {
		t.Fatalf("expected ErrBadSignature, got %v", err)
	}
}
