package handler

import (
	"fmt"
	"net/http"
	"testing"

	"approvals/internal/service"

	"github.com/stretchr/testify/assert"
)

func TestStatusForWrappedErrors(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, statusFor(fmt.Errorf("load request: %w", service.ErrNotFound)))
	assert.Equal(t, http.StatusUnprocessableEntity, statusFor(fmt.Errorf("approve: %w", &service.InsufficientStockError{})))
	assert.Equal(t, http.StatusConflict, statusFor(fmt.Errorf("link: %w", service.ErrAlreadyFulfilled)))
}
