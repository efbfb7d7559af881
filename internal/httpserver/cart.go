package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"storefront/internal/domain"
	cartsvc "storefront/internal/service/cart"
)

type cartResponse struct {
	Items         []domain.CartItem `json:"items"`
	SubtotalPaise int64             `json:"subtotalPaise"`
}

func toCartResponse(svc CartService, items []domain.CartItem) cartResponse {
	if items == nil {
		items = []domain.CartItem{}
	}
	return cartResponse{Items: items, SubtotalPaise: svc.Subtotal(items)}
}

func getCartHandler(svc CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := svc.Get(c.Request.Context(), identity(c))
		if err != nil {
			cartError(c, err)
			return
		}
		c.JSON(http.StatusOK, toCartResponse(svc, items))
	}
}

func addCartItemHandler(svc CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req cartsvc.AddInput
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
			return
		}
		items, err := svc.Add(c.Request.Context(), identity(c), req)
		if err != nil {
			// Add validates its input; non-sentinel errors are the caller's fault.
			switch {
			case errors.Is(err, cartsvc.ErrNoIdentity), errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrPermissionDenied):
				cartError(c, err)
			default:
				c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			}
			return
		}
		c.JSON(http.StatusOK, toCartResponse(svc, items))
	}
}

func removeCartItemHandler(svc CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		index, ok := cartIndex(c)
		if !ok {
			return
		}
		items, err := svc.Remove(c.Request.Context(), identity(c), index)
		if err != nil {
			cartError(c, err)
			return
		}
		c.JSON(http.StatusOK, toCartResponse(svc, items))
	}
}

func bumpCartItemHandler(svc CartService, up bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		index, ok := cartIndex(c)
		if !ok {
			return
		}
		op := svc.Decrement
		if up {
			op = svc.Increment
		}
		items, err := op(c.Request.Context(), identity(c), index)
		if err != nil {
			cartError(c, err)
			return
		}
		c.JSON(http.StatusOK, toCartResponse(svc, items))
	}
}

func clearCartHandler(svc CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Clear(c.Request.Context(), identity(c)); err != nil {
			cartError(c, err)
			return
		}
		c.JSON(http.StatusOK, toCartResponse(svc, nil))
	}
}

// mergeCartHandler folds the guest cart into the authenticated customer's
// cart, typically right after login.
func mergeCartHandler(svc CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		customer, _ := currentCustomer(c)
		guestID := c.GetString(guestKey)
		items, err := svc.Merge(c.Request.Context(), guestID, customer.ID)
		if err != nil {
			cartError(c, err)
			return
		}
		c.JSON(http.StatusOK, toCartResponse(svc, items))
	}
}

func cartIndex(c *gin.Context) (int, bool) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid item index"})
		return 0, false
	}
	return index, true
}

func cartError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, cartsvc.ErrNoIdentity):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "cart item not found"})
	case errors.Is(err, domain.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{"message": "cart write not permitted"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "cart operation failed"})
	}
}
