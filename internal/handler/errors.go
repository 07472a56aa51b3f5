package handler

import (
	"errors"
	"net/http"

	"approvals/internal/service"
	"approvals/pkg/response"

	"github.com/gin-gonic/gin"
)

// statusFor maps service errors onto HTTP status codes. Unknown errors are 500.
func statusFor(err error) int {
	var budget *service.BudgetExceededError
	var stock *service.InsufficientStockError

	switch {
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInvalidTransition),
		errors.Is(err, service.ErrRequestLocked),
		errors.Is(err, service.ErrAlreadyFulfilled):
		return http.StatusConflict
	case errors.As(err, &budget),
		errors.As(err, &stock),
		errors.Is(err, service.ErrMissingVendor),
		errors.Is(err, service.ErrMissingLocations),
		errors.Is(err, service.ErrMissingLines):
		return http.StatusUnprocessableEntity
	case errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the error envelope; shortages are attached for stock errors.
func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
	}

	var stock *service.InsufficientStockError
	if errors.As(err, &stock) {
		c.JSON(status, response.Failure(status, err.Error(), gin.H{"shortages": stock.Shortages}))
		return
	}
	c.JSON(status, response.Error(status, err.Error()))
}
