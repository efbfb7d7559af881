package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/domain"
	"storefront/internal/pricing"
	couponsvc "storefront/internal/service/coupon"
)

type validateCouponRequest struct {
	Code string `json:"code" binding:"required"`
}

// validateCouponHandler checks a code against the active coupon set and,
// when a cart is present, reports the discount it would grant right now.
func validateCouponHandler(coupons CouponService, carts CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req validateCouponRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "coupon code required"})
			return
		}
		coupon, err := coupons.Validate(c.Request.Context(), req.Code)
		if err != nil {
			if errors.Is(err, couponsvc.ErrInvalid) {
				c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "invalid coupon", "valid": false})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"message": "could not validate coupon"})
			return
		}

		var discount int64
		items, err := carts.Get(c.Request.Context(), identity(c))
		if err == nil && len(items) > 0 {
			discount = pricing.Discount(pricing.Subtotal(items), coupon.DiscountPercent)
		}
		c.JSON(http.StatusOK, gin.H{
			"valid":           true,
			"code":            coupon.Code,
			"discountPercent": coupon.DiscountPercent,
			"discountPaise":   discount,
		})
	}
}

func listCouponsHandler(svc CouponService) gin.HandlerFunc {
	return func(c *gin.Context) {
		coupons, err := svc.List(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "could not list coupons"})
			return
		}
		if coupons == nil {
			coupons = []domain.Coupon{}
		}
		c.JSON(http.StatusOK, gin.H{"coupons": coupons})
	}
}

func upsertCouponHandler(svc CouponService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req domain.Coupon
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
			return
		}
		coupon, err := svc.Upsert(c.Request.Context(), req)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		c.JSON(http.StatusOK, coupon)
	}
}
