package repository

import (
	"context"

	"approvals/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LocationRepository interface {
	Create(ctx context.Context, location *model.StockLocation) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.StockLocation, error)
	FindByCode(ctx context.Context, code string) (*model.StockLocation, error)
	FindInternalByName(ctx context.Context, name string) (*model.StockLocation, error)
	ListInternal(ctx context.Context, companyID *uuid.UUID) ([]model.StockLocation, error)
}

type locationRepository struct {
	db *gorm.DB
}

func NewLocationRepository(db *gorm.DB) LocationRepository {
	return &locationRepository{db: db}
}

func (r *locationRepository) Create(ctx context.Context, location *model.StockLocation) error {
	return GetDB(ctx, r.db).Create(location).Error
}

func (r *locationRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.StockLocation, error) {
	var location model.StockLocation
	if err := GetDB(ctx, r.db).First(&location, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &location, nil
}

func (r *locationRepository) FindByCode(ctx context.Context, code string) (*model.StockLocation, error) {
	var location model.StockLocation
	if err := GetDB(ctx, r.db).Where("code = ?", code).First(&location).Error; err != nil {
		return nil, err
	}
	return &location, nil
}

func (r *locationRepository) FindInternalByName(ctx context.Context, name string) (*model.StockLocation, error) {
	var location model.StockLocation
	if err := GetDB(ctx, r.db).
		Where("usage = ? AND name ILIKE ?", model.LocationUsageInternal, "%"+name+"%").
		Order("complete_name ASC, id ASC").
		First(&location).Error; err != nil {
		return nil, err
	}
	return &location, nil
}

// ListInternal returns internal locations in a stable order; callers rely on it for tie-breaks.
func (r *locationRepository) ListInternal(ctx context.Context, companyID *uuid.UUID) ([]model.StockLocation, error) {
	var locations []model.StockLocation

	query := GetDB(ctx, r.db).Where("usage = ?", model.LocationUsageInternal)
	if companyID != nil {
		query = query.Where("company_id = ? OR company_id IS NULL", *companyID)
	}

	if err := query.Order("complete_name ASC, id ASC").Find(&locations).Error; err != nil {
		return nil, err
	}
	return locations, nil
}
