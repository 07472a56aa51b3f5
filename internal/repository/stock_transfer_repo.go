package repository

import (
	"context"

	"approvals/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type StockTransferRepository interface {
	Create(ctx context.Context, transfer *model.StockTransfer) error
	Update(ctx context.Context, transfer *model.StockTransfer) error
	UpdateMove(ctx context.Context, move *model.StockMove) error
	FindByIDWithMoves(ctx context.Context, id uuid.UUID) (*model.StockTransfer, error)
}

type stockTransferRepository struct {
	db *gorm.DB
}

func NewStockTransferRepository(db *gorm.DB) StockTransferRepository {
	return &stockTransferRepository{db: db}
}

// Create inserts the transfer together with its moves.
func (r *stockTransferRepository) Create(ctx context.Context, transfer *model.StockTransfer) error {
	return GetDB(ctx, r.db).Create(transfer).Error
}

func (r *stockTransferRepository) Update(ctx context.Context, transfer *model.StockTransfer) error {
	return GetDB(ctx, r.db).Omit(clause.Associations).Save(transfer).Error
}

func (r *stockTransferRepository) UpdateMove(ctx context.Context, move *model.StockMove) error {
	return GetDB(ctx, r.db).Save(move).Error
}

func (r *stockTransferRepository) FindByIDWithMoves(ctx context.Context, id uuid.UUID) (*model.StockTransfer, error) {
	var transfer model.StockTransfer
	if err := GetDB(ctx, r.db).Preload("Moves").First(&transfer, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &transfer, nil
}
