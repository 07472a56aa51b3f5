package repository

import (
	"context"

	"approvals/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type StockRepository interface {
	AvailableQuantity(ctx context.Context, productID, locationID uuid.UUID) (decimal.Decimal, error)
	ListQuantsForUpdate(ctx context.Context, productID, locationID uuid.UUID) ([]model.StockQuant, error)
	UpdateReserved(ctx context.Context, quantID uuid.UUID, reserved decimal.Decimal) error
	CreateQuant(ctx context.Context, quant *model.StockQuant) error
	CountQuants(ctx context.Context, productID, locationID uuid.UUID) (int64, error)
}

type stockRepository struct {
	db *gorm.DB
}

func NewStockRepository(db *gorm.DB) StockRepository {
	return &stockRepository{db: db}
}

// AvailableQuantity is on-hand minus reserved, restricted to the exact location.
func (r *stockRepository) AvailableQuantity(ctx context.Context, productID, locationID uuid.UUID) (decimal.Decimal, error) {
	var available decimal.Decimal
	row := GetDB(ctx, r.db).
		Model(&model.StockQuant{}).
		Select("COALESCE(SUM(quantity - reserved_quantity), 0)").
		Where("product_id = ? AND location_id = ?", productID, locationID).
		Row()
	if err := row.Scan(&available); err != nil {
		return decimal.Zero, err
	}
	return available, nil
}

func (r *stockRepository) ListQuantsForUpdate(ctx context.Context, productID, locationID uuid.UUID) ([]model.StockQuant, error) {
	var quants []model.StockQuant
	if err := GetDB(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("product_id = ? AND location_id = ?", productID, locationID).
		Order("id ASC").
		Find(&quants).Error; err != nil {
		return nil, err
	}
	return quants, nil
}

func (r *stockRepository) UpdateReserved(ctx context.Context, quantID uuid.UUID, reserved decimal.Decimal) error {
	return GetDB(ctx, r.db).Model(&model.StockQuant{}).Where("id = ?", quantID).Update("reserved_quantity", reserved).Error
}

func (r *stockRepository) CreateQuant(ctx context.Context, quant *model.StockQuant) error {
	return GetDB(ctx, r.db).Create(quant).Error
}

func (r *stockRepository) CountQuants(ctx context.Context, productID, locationID uuid.UUID) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&model.StockQuant{}).Where("product_id = ? AND location_id = ?", productID, locationID).Count(&count).Error
	return count, err
}
