package service

import (
	"context"
	"fmt"
	"time"

	"approvals/internal/model"
	"approvals/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BudgetAvailabilityResponse struct {
	BudgetCategoryID string           `json:"budget_category_id"`
	Name             string           `json:"name"`
	PeriodStart      string           `json:"period_start"`
	Spent            decimal.Decimal  `json:"spent"`
	Unconstrained    bool             `json:"unconstrained"`
	Ceiling          *decimal.Decimal `json:"ceiling,omitempty"`
	Remaining        *decimal.Decimal `json:"remaining,omitempty"`
}

type CategoryService interface {
	ListApprovalCategories(ctx context.Context) ([]model.ApprovalCategory, error)
	ListBudgetCategories(ctx context.Context) ([]model.BudgetCategory, error)
	BudgetAvailability(ctx context.Context, id string, now time.Time) (*BudgetAvailabilityResponse, error)
}

type categoryService struct {
	categories repository.CategoryRepository
	budgets    repository.BudgetRepository
	ledger     *BudgetLedger
}

func NewCategoryService(categories repository.CategoryRepository, budgets repository.BudgetRepository, ledger *BudgetLedger) CategoryService {
	return &categoryService{categories: categories, budgets: budgets, ledger: ledger}
}

func (s *categoryService) ListApprovalCategories(ctx context.Context) ([]model.ApprovalCategory, error) {
	categories, err := s.categories.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch approval categories: %w", err)
	}
	return categories, nil
}

func (s *categoryService) ListBudgetCategories(ctx context.Context) ([]model.BudgetCategory, error) {
	budgets, err := s.budgets.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch budget categories: %w", err)
	}
	return budgets, nil
}

func (s *categoryService) BudgetAvailability(ctx context.Context, id string, now time.Time) (*BudgetAvailabilityResponse, error) {
	budgetID, err := parseID(id, "budget category id")
	if err != nil {
		return nil, err
	}
	budget, err := s.budgets.FindByID(ctx, budgetID)
	if err != nil {
		return nil, notFound(err, "budget category")
	}

	start := s.ledger.PeriodStart(now)
	spent, ceiling, err := s.ledger.Available(ctx, budget, start, uuid.Nil)
	if err != nil {
		return nil, err
	}

	resp := &BudgetAvailabilityResponse{
		BudgetCategoryID: budget.ID.String(),
		Name:             budget.Name,
		PeriodStart:      start.Format(time.RFC3339),
		Spent:            spent,
		Unconstrained:    !ceiling.Limited,
	}
	if ceiling.Limited {
		limit := ceiling.Amount
		remaining := limit.Sub(spent)
		resp.Ceiling = &limit
		resp.Remaining = &remaining
	}
	return resp, nil
}
