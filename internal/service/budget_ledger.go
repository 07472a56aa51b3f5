package service

import (
	"context"
	"fmt"
	"time"

	"approvals/internal/config"
	"approvals/internal/model"
	"approvals/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BudgetPolicy struct {
	Period       string
	UnsetCeiling string
	Location     *time.Location
}

// Ceiling is the effective limit of a budget category. Limited=false means unconstrained.
type Ceiling struct {
	Amount  decimal.Decimal
	Limited bool
}

// BudgetLedger recomputes approved spend from persisted requests on every call.
type BudgetLedger struct {
	requests repository.ApprovalRepository
	policy   BudgetPolicy
}

func NewBudgetLedger(requests repository.ApprovalRepository, policy BudgetPolicy) *BudgetLedger {
	if policy.Location == nil {
		policy.Location = time.UTC
	}
	if policy.Period == "" {
		policy.Period = config.BudgetPeriodMonth
	}
	if policy.UnsetCeiling == "" {
		policy.UnsetCeiling = config.UnsetCeilingUnconstrained
	}
	return &BudgetLedger{requests: requests, policy: policy}
}

// PeriodStart is the first instant of the month (or year) containing now.
func (l *BudgetLedger) PeriodStart(now time.Time) time.Time {
	local := now.In(l.policy.Location)
	if l.policy.Period == config.BudgetPeriodYear {
		return time.Date(local.Year(), time.January, 1, 0, 0, 0, 0, l.policy.Location)
	}
	return time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, l.policy.Location)
}

func (l *BudgetLedger) CeilingOf(category *model.BudgetCategory) Ceiling {
	switch {
	case category.Unlimited:
		return Ceiling{}
	case category.Ceiling.Valid:
		return Ceiling{Amount: category.Ceiling.Decimal, Limited: true}
	case l.policy.UnsetCeiling == config.UnsetCeilingDeny:
		return Ceiling{Amount: decimal.Zero, Limited: true}
	default:
		return Ceiling{}
	}
}

func (l *BudgetLedger) Available(ctx context.Context, category *model.BudgetCategory, periodStart time.Time, excludingID uuid.UUID) (decimal.Decimal, Ceiling, error) {
	spent, err := l.requests.SumApprovedAmount(ctx, category.ID, periodStart, excludingID)
	if err != nil {
		return decimal.Zero, Ceiling{}, fmt.Errorf("failed to sum approved spend: %w", err)
	}
	return spent, l.CeilingOf(category), nil
}

// Admit returns *BudgetExceededError when spent + amount would exceed the ceiling.
func (l *BudgetLedger) Admit(ctx context.Context, category *model.BudgetCategory, amount decimal.Decimal, periodStart time.Time, excludingID uuid.UUID) error {
	spent, ceiling, err := l.Available(ctx, category, periodStart, excludingID)
	if err != nil {
		return err
	}
	if !ceiling.Limited {
		return nil
	}
	if spent.Add(amount).GreaterThan(ceiling.Amount) {
		return &BudgetExceededError{
			Category:  category.Name,
			Spent:     spent,
			Requested: amount,
			Ceiling:   ceiling.Amount,
		}
	}
	return nil
}
