package httpserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"storefront/internal/domain"
	cartsvc "storefront/internal/service/cart"
)

const (
	guestIDHeader = "X-Guest-ID"

	customerKey = "customer"
	guestKey    = "guestID"
)

// authMiddleware resolves a Bearer token to a customer when one is present.
// It never rejects: anonymous requests simply carry no customer.
func authMiddleware(customers CustomerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.Next()
			return
		}
		customer, err := customers.LookupByToken(c.Request.Context(), token)
		if err != nil || customer == nil {
			c.Next()
			return
		}
		c.Set(customerKey, customer)
		c.Next()
	}
}

// guestMiddleware reads or mints the guest cart id. The id is echoed back so
// first-time visitors can keep it for subsequent requests.
func guestMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(guestIDHeader))
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(guestKey, id)
		c.Header(guestIDHeader, id)
		c.Next()
	}
}

// requireAuth blocks requests that did not resolve to a customer.
func requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := currentCustomer(c); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "authentication required"})
			return
		}
		c.Next()
	}
}

// adminMiddleware guards the admin group with a static bearer token.
func adminMiddleware(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "admin access disabled"})
			return
		}
		header := c.GetHeader("Authorization")
		got, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || got != token {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "admin token required"})
			return
		}
		c.Next()
	}
}

func currentCustomer(c *gin.Context) (*domain.Customer, bool) {
	v, ok := c.Get(customerKey)
	if !ok {
		return nil, false
	}
	customer, ok := v.(*domain.Customer)
	return customer, ok
}

// identity derives the cart identity for the request: the authenticated
// customer when present, otherwise the guest id.
func identity(c *gin.Context) cartsvc.Identity {
	var id cartsvc.Identity
	if customer, ok := currentCustomer(c); ok {
		id.CustomerID = customer.ID
	}
	id.GuestID = c.GetString(guestKey)
	return id
}
