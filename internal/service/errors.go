package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrMissingVendor     = errors.New("a vendor is required to create a purchase order")
	ErrMissingLocations  = errors.New("source and destination locations are required")
	ErrMissingLines      = errors.New("at least one product line is required")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrRequestLocked     = errors.New("request can no longer be edited")
	ErrAlreadyFulfilled  = errors.New("fulfillment document already linked")
	ErrInvalidInput      = errors.New("invalid input")
)

// BudgetExceededError reports that approving Requested would push spend past Ceiling.
type BudgetExceededError struct {
	Category  string
	Spent     decimal.Decimal
	Requested decimal.Decimal
	Ceiling   decimal.Decimal
}

func (e *BudgetExceededError) Error() string {
	return fmt.Sprintf("budget exceeded for %q: spent %s + requested %s > ceiling %s",
		e.Category, e.Spent.String(), e.Requested.String(), e.Ceiling.String())
}

// Shortage is one line that cannot be served from the source location.
type Shortage struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Requested   decimal.Decimal `json:"requested"`
	Available   decimal.Decimal `json:"available"`
}

type InsufficientStockError struct {
	Shortages []Shortage
}

func (e *InsufficientStockError) Error() string {
	parts := make([]string, 0, len(e.Shortages))
	for _, s := range e.Shortages {
		name := s.ProductName
		if name == "" {
			name = s.ProductID.String()
		}
		parts = append(parts, fmt.Sprintf("%s (requested %s, available %s)", name, s.Requested.String(), s.Available.String()))
	}
	return "insufficient stock: " + strings.Join(parts, "; ")
}

// notFound converts gorm's missing-row error into ErrNotFound.
func notFound(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return fmt.Errorf("failed to load %s: %w", what, err)
}

func invalidInput(format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrInvalidInput)
}

func parseID(raw, field string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, invalidInput("invalid %s %q", field, raw)
	}
	return id, nil
}

// parseOptionalID returns nil for an empty string.
func parseOptionalID(raw, field string) (*uuid.UUID, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	id, err := parseID(raw, field)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
