package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/domain"
)

type reviewRequest struct {
	Rating int    `json:"rating" binding:"required"`
	Body   string `json:"body"`
}

func listReviewsHandler(svc ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		reviews, summary, err := svc.ListByProduct(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "could not list reviews"})
			return
		}
		if reviews == nil {
			reviews = []domain.Review{}
		}
		c.JSON(http.StatusOK, gin.H{"reviews": reviews, "summary": summary})
	}
}

func addReviewHandler(svc ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		customer, _ := currentCustomer(c)
		var req reviewRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "rating required"})
			return
		}
		review, err := svc.Add(c.Request.Context(), domain.Review{
			ProductID:  c.Param("id"),
			CustomerID: customer.ID,
			Author:     customer.FirstName,
			Rating:     req.Rating,
			Body:       req.Body,
		})
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"message": "product not found"})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, review)
	}
}
