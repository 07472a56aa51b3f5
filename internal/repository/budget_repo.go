package repository

import (
	"context"

	"approvals/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BudgetRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.BudgetCategory, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.BudgetCategory, error)
	FindByName(ctx context.Context, name string) (*model.BudgetCategory, error)
	Create(ctx context.Context, category *model.BudgetCategory) error
	List(ctx context.Context) ([]model.BudgetCategory, error)
}

type budgetRepository struct {
	db *gorm.DB
}

func NewBudgetRepository(db *gorm.DB) BudgetRepository {
	return &budgetRepository{db: db}
}

func (r *budgetRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.BudgetCategory, error) {
	var category model.BudgetCategory
	if err := GetDB(ctx, r.db).First(&category, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// FindByIDForUpdate serializes spend checks against the same category.
func (r *budgetRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.BudgetCategory, error) {
	var category model.BudgetCategory
	if err := GetDB(ctx, r.db).Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *budgetRepository) FindByName(ctx context.Context, name string) (*model.BudgetCategory, error) {
	var category model.BudgetCategory
	if err := GetDB(ctx, r.db).Where("name = ?", name).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *budgetRepository) Create(ctx context.Context, category *model.BudgetCategory) error {
	return GetDB(ctx, r.db).Create(category).Error
}

func (r *budgetRepository) List(ctx context.Context) ([]model.BudgetCategory, error) {
	var categories []model.BudgetCategory
	if err := GetDB(ctx, r.db).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}
