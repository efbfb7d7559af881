package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/payment"
	checkoutsvc "storefront/internal/service/checkout"
	couponsvc "storefront/internal/service/coupon"
)

type quoteRequest struct {
	CouponCode     string `json:"couponCode"`
	ShippingMethod string `json:"shippingMethod"`
}

// quoteHandler prices the caller's current cart. Incomplete bundles are
// reported in the body, not rejected; only placement enforces the gate.
func quoteHandler(carts CartService, svc CheckoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req quoteRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
			return
		}
		items, err := carts.Get(c.Request.Context(), identity(c))
		if err != nil {
			cartError(c, err)
			return
		}
		quote, err := svc.QuoteItems(c.Request.Context(), items, req.CouponCode, req.ShippingMethod)
		if err != nil {
			checkoutError(c, err)
			return
		}
		c.JSON(http.StatusOK, quote)
	}
}

func beginOnlineHandler(svc CheckoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		customer, _ := currentCustomer(c)
		var req checkoutsvc.PlacementInput
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
			return
		}
		session, err := svc.BeginOnline(c.Request.Context(), customer, req)
		if err != nil {
			checkoutError(c, err)
			return
		}
		c.JSON(http.StatusOK, session)
	}
}

func confirmOnlineHandler(svc CheckoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		customer, _ := currentCustomer(c)
		var req checkoutsvc.ConfirmInput
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
			return
		}
		order, err := svc.ConfirmOnline(c.Request.Context(), customer, req)
		if err != nil {
			checkoutError(c, err)
			return
		}
		c.JSON(http.StatusCreated, order)
	}
}

func placeCODHandler(svc CheckoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		customer, _ := currentCustomer(c)
		var req checkoutsvc.PlacementInput
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
			return
		}
		order, err := svc.PlaceCOD(c.Request.Context(), customer, req)
		if err != nil {
			checkoutError(c, err)
			return
		}
		c.JSON(http.StatusCreated, order)
	}
}

// checkoutError maps placement failures onto status codes. The one case that
// must stay distinguishable is a captured payment with no saved order: that
// is a 502 with an explicit message so the client never re-charges.
func checkoutError(c *gin.Context, err error) {
	var incomplete *checkoutsvc.IncompleteBundleError
	switch {
	case errors.As(err, &incomplete):
		c.JSON(http.StatusConflict, gin.H{
			"message":    incomplete.Error(),
			"shortfalls": incomplete.Shortfalls,
		})
	case errors.Is(err, checkoutsvc.ErrPaidNotSaved):
		c.JSON(http.StatusBadGateway, gin.H{"message": err.Error(), "paid": true})
	case errors.Is(err, checkoutsvc.ErrEmptyCart),
		errors.Is(err, checkoutsvc.ErrNoAddress),
		errors.Is(err, checkoutsvc.ErrBadShipping):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	case errors.Is(err, couponsvc.ErrInvalid):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "invalid coupon"})
	case errors.Is(err, payment.ErrBadSignature):
		c.JSON(http.StatusBadRequest, gin.H{"message": "payment signature mismatch"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "checkout failed"})
	}
}
