package service

import (
	"context"
	"errors"
	"fmt"

	"approvals/internal/model"
	"approvals/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// LineDemand is the quantity of one product a request needs.
type LineDemand struct {
	ProductID uuid.UUID
	Quantity  decimal.Decimal
}

type LocationResolver struct {
	stock       repository.StockRepository
	locations   repository.LocationRepository
	defaultCode string
}

func NewLocationResolver(stock repository.StockRepository, locations repository.LocationRepository, defaultCode string) *LocationResolver {
	return &LocationResolver{stock: stock, locations: locations, defaultCode: defaultCode}
}

// SelectSourceLocation scores each candidate by the mean of its per-line scores
// (1 full, 0.5 partial, 0 none) and returns the first best one. Without lines it
// returns the default location; it returns nil when every candidate scores zero.
func (r *LocationResolver) SelectSourceLocation(ctx context.Context, lines []LineDemand, candidates []model.StockLocation) (*model.StockLocation, error) {
	if len(lines) == 0 {
		return r.DefaultLocation(ctx)
	}

	var best *model.StockLocation
	bestScore := 0.0
	for i := range candidates {
		score, err := r.score(ctx, lines, candidates[i].ID)
		if err != nil {
			return nil, err
		}
		if score > bestScore {
			bestScore = score
			best = &candidates[i]
		}
	}
	return best, nil
}

func (r *LocationResolver) score(ctx context.Context, lines []LineDemand, locationID uuid.UUID) (float64, error) {
	total := 0.0
	for _, line := range lines {
		available, err := r.stock.AvailableQuantity(ctx, line.ProductID, locationID)
		if err != nil {
			return 0, fmt.Errorf("failed to read availability: %w", err)
		}
		switch {
		case available.GreaterThanOrEqual(line.Quantity):
			total += 1.0
		case available.IsPositive():
			total += 0.5
		}
	}
	return total / float64(len(lines)), nil
}

// ResolveSourceLocation picks among the internal locations visible to companyID
// and falls back to the configured default location.
func (r *LocationResolver) ResolveSourceLocation(ctx context.Context, lines []LineDemand, companyID *uuid.UUID) (*model.StockLocation, error) {
	if len(lines) == 0 {
		return r.DefaultLocation(ctx)
	}
	candidates, err := r.locations.ListInternal(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}
	selected, err := r.SelectSourceLocation(ctx, lines, candidates)
	if err != nil || selected != nil {
		return selected, err
	}
	return r.DefaultLocation(ctx)
}

// DefaultLocation returns nil without error when the default is not configured.
func (r *LocationResolver) DefaultLocation(ctx context.Context) (*model.StockLocation, error) {
	if r.defaultCode == "" {
		return nil, nil
	}
	location, err := r.locations.FindByCode(ctx, r.defaultCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load default location: %w", err)
	}
	return location, nil
}

// demandsOf keeps lines that carry a product and a positive quantity.
func demandsOf(lines []model.ApprovalProductLine) []LineDemand {
	demands := make([]LineDemand, 0, len(lines))
	for _, l := range lines {
		if l.ProductID == nil || !l.Quantity.IsPositive() {
			continue
		}
		demands = append(demands, LineDemand{ProductID: *l.ProductID, Quantity: l.Quantity})
	}
	return demands
}
