package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/domain"
	orderrepo "storefront/internal/repository/order"
)

func listMyOrdersHandler(repo orderrepo.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		customer, _ := currentCustomer(c)
		orders, err := repo.ListByCustomer(c.Request.Context(), customer.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "could not list orders"})
			return
		}
		if orders == nil {
			orders = []domain.Order{}
		}
		c.JSON(http.StatusOK, gin.H{"orders": orders})
	}
}

func getMyOrderHandler(repo orderrepo.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		customer, _ := currentCustomer(c)
		order, err := repo.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"message": "order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"message": "could not load order"})
			return
		}
		// Customers only see their own orders; a foreign id looks absent.
		if order.CustomerID != customer.ID {
			c.JSON(http.StatusNotFound, gin.H{"message": "order not found"})
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

func listAllOrdersHandler(repo orderrepo.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := repo.List(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "could not list orders"})
			return
		}
		if orders == nil {
			orders = []domain.Order{}
		}
		c.JSON(http.StatusOK, gin.H{"orders": orders})
	}
}

type orderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func updateOrderStatusHandler(repo orderrepo.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req orderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "status required"})
			return
		}
		if !domain.ValidOrderStatus(req.Status) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "unknown order status"})
			return
		}
		order, err := repo.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"message": "order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"message": "could not update order"})
			return
		}
		c.JSON(http.StatusOK, order)
	}
}
