package repository

import (
	"context"

	"approvals/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CategoryRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.ApprovalCategory, error)
	FindByName(ctx context.Context, name string) (*model.ApprovalCategory, error)
	Create(ctx context.Context, category *model.ApprovalCategory) error
	ListActive(ctx context.Context) ([]model.ApprovalCategory, error)
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.ApprovalCategory, error) {
	var category model.ApprovalCategory
	if err := GetDB(ctx, r.db).First(&category, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) FindByName(ctx context.Context, name string) (*model.ApprovalCategory, error) {
	var category model.ApprovalCategory
	if err := GetDB(ctx, r.db).Where("name = ?", name).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) Create(ctx context.Context, category *model.ApprovalCategory) error {
	return GetDB(ctx, r.db).Create(category).Error
}

func (r *categoryRepository) ListActive(ctx context.Context) ([]model.ApprovalCategory, error) {
	var categories []model.ApprovalCategory
	if err := GetDB(ctx, r.db).Where("is_active = ?", true).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}
