package repository

import (
	"context"

	"approvals/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PartnerRepository interface {
	Create(ctx context.Context, partner *model.Partner) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Partner, error)
	FindCompanyByName(ctx context.Context, name string) (*model.Partner, error)
	SearchVendors(ctx context.Context, search string, limit int) ([]model.Partner, error)
}

type partnerRepository struct {
	db *gorm.DB
}

func NewPartnerRepository(db *gorm.DB) PartnerRepository {
	return &partnerRepository{db: db}
}

func (r *partnerRepository) Create(ctx context.Context, partner *model.Partner) error {
	return GetDB(ctx, r.db).Create(partner).Error
}

func (r *partnerRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Partner, error) {
	var partner model.Partner
	if err := GetDB(ctx, r.db).First(&partner, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &partner, nil
}

// FindCompanyByName is a case-insensitive exact match on company partners.
func (r *partnerRepository) FindCompanyByName(ctx context.Context, name string) (*model.Partner, error) {
	var partner model.Partner
	if err := GetDB(ctx, r.db).
		Where("name ILIKE ? AND is_company = ?", name, true).
		Order("created_at ASC").
		First(&partner).Error; err != nil {
		return nil, err
	}
	return &partner, nil
}

func (r *partnerRepository) SearchVendors(ctx context.Context, search string, limit int) ([]model.Partner, error) {
	var partners []model.Partner

	query := GetDB(ctx, r.db).Model(&model.Partner{}).
		Where("is_active = ?", true).
		Where("is_company = ? OR supplier_rank > 0", true)
	if search != "" {
		query = query.Where("name ILIKE ? OR email ILIKE ? OR phone ILIKE ?",
			"%"+search+"%", "%"+search+"%", "%"+search+"%")
	}

	if err := query.Order("name ASC").Limit(limit).Find(&partners).Error; err != nil {
		return nil, err
	}
	return partners, nil
}
