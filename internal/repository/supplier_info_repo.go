package repository

import (
	"context"

	"approvals/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SupplierInfoRepository interface {
	Find(ctx context.Context, partnerID, productID uuid.UUID) (*model.SupplierInfo, error)
	Create(ctx context.Context, info *model.SupplierInfo) error
}

type supplierInfoRepository struct {
	db *gorm.DB
}

func NewSupplierInfoRepository(db *gorm.DB) SupplierInfoRepository {
	return &supplierInfoRepository{db: db}
}

func (r *supplierInfoRepository) Find(ctx context.Context, partnerID, productID uuid.UUID) (*model.SupplierInfo, error) {
	var info model.SupplierInfo
	if err := GetDB(ctx, r.db).
		Where("partner_id = ? AND product_id = ?", partnerID, productID).
		First(&info).Error; err != nil {
		return nil, err
	}
	return &info, nil
}

func (r *supplierInfoRepository) Create(ctx context.Context, info *model.SupplierInfo) error {
	return GetDB(ctx, r.db).Create(info).Error
}
