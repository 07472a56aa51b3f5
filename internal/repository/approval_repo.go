package repository

import (
	"context"
	"errors"
	"time"

	"approvals/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrLinkAlreadySet is returned when a fulfillment link is written a second time.
var ErrLinkAlreadySet = errors.New("fulfillment link already set")

type ApprovalFilter struct {
	Status     string
	OwnerID    *uuid.UUID
	EmployeeID *uuid.UUID
	Page       int
	Limit      int
}

type ApprovalRepository interface {
	Create(ctx context.Context, req *model.ApprovalRequest) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.ApprovalRequest, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.ApprovalRequest, error)
	FindByIDWithRelations(ctx context.Context, id uuid.UUID) (*model.ApprovalRequest, error)
	List(ctx context.Context, filter ApprovalFilter) ([]model.ApprovalRequest, int64, error)
	Update(ctx context.Context, req *model.ApprovalRequest) error
	ReplaceLines(ctx context.Context, requestID uuid.UUID, lines []model.ApprovalProductLine) error
	SumApprovedAmount(ctx context.Context, budgetCategoryID uuid.UUID, since time.Time, excludeID uuid.UUID) (decimal.Decimal, error)
	LinkPurchaseOrder(ctx context.Context, id, orderID uuid.UUID) error
	LinkStockTransfer(ctx context.Context, id, transferID uuid.UUID) error
	SetStockChecked(ctx context.Context, id uuid.UUID, checked bool) error
	CountByEmployee(ctx context.Context, employeeID uuid.UUID) (int64, error)
}

type approvalRepository struct {
	db *gorm.DB
}

func NewApprovalRepository(db *gorm.DB) ApprovalRepository {
	return &approvalRepository{db: db}
}

func (r *approvalRepository) Create(ctx context.Context, req *model.ApprovalRequest) error {
	return GetDB(ctx, r.db).Create(req).Error
}

func (r *approvalRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.ApprovalRequest, error) {
	var req model.ApprovalRequest
	if err := GetDB(ctx, r.db).
		Preload("Category").
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("sequence ASC") }).
		First(&req, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

// FindByIDForUpdate locks the request row until the surrounding transaction ends.
func (r *approvalRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.ApprovalRequest, error) {
	var req model.ApprovalRequest
	if err := GetDB(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&req).Error; err != nil {
		return nil, err
	}

	db := GetDB(ctx, r.db)
	if err := db.Preload("Product").Order("sequence ASC").Find(&req.Lines, "request_id = ?", id).Error; err != nil {
		return nil, err
	}
	var category model.ApprovalCategory
	if err := db.First(&category, "id = ?", req.CategoryID).Error; err != nil {
		return nil, err
	}
	req.Category = &category
	return &req, nil
}

func (r *approvalRepository) FindByIDWithRelations(ctx context.Context, id uuid.UUID) (*model.ApprovalRequest, error) {
	var req model.ApprovalRequest
	if err := GetDB(ctx, r.db).
		Preload("Category").
		Preload("Owner").
		Preload("Employee").
		Preload("Manager").
		Preload("BudgetCategory").
		Preload("Partner").
		Preload("SourceLocation").
		Preload("DestLocation").
		Preload("PurchaseOrder").
		Preload("StockTransfer").
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("sequence ASC") }).
		Preload("Lines.Product").
		First(&req, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *approvalRepository) List(ctx context.Context, filter ApprovalFilter) ([]model.ApprovalRequest, int64, error) {
	var requests []model.ApprovalRequest
	var total int64

	db := GetDB(ctx, r.db)
	scope := func(q *gorm.DB) *gorm.DB {
		if filter.Status != "" {
			q = q.Where("status = ?", filter.Status)
		}
		if filter.OwnerID != nil {
			q = q.Where("owner_id = ?", *filter.OwnerID)
		}
		if filter.EmployeeID != nil {
			q = q.Where("employee_id = ?", *filter.EmployeeID)
		}
		return q
	}

	if err := scope(db.Model(&model.ApprovalRequest{})).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	if err := scope(db.Preload("Category").Preload("Employee")).
		Order("created_at DESC").
		Offset(offset).
		Limit(filter.Limit).
		Find(&requests).Error; err != nil {
		return nil, 0, err
	}

	return requests, total, nil
}

// Update saves the request's own columns; lines go through ReplaceLines.
func (r *approvalRepository) Update(ctx context.Context, req *model.ApprovalRequest) error {
	return GetDB(ctx, r.db).Omit(clause.Associations).Save(req).Error
}

func (r *approvalRepository) ReplaceLines(ctx context.Context, requestID uuid.UUID, lines []model.ApprovalProductLine) error {
	db := GetDB(ctx, r.db)
	if err := db.Where("request_id = ?", requestID).Delete(&model.ApprovalProductLine{}).Error; err != nil {
		return err
	}
	if len(lines) == 0 {
		return nil
	}
	for i := range lines {
		lines[i].RequestID = requestID
	}
	return db.Omit("Product").Create(&lines).Error
}

func (r *approvalRepository) SumApprovedAmount(ctx context.Context, budgetCategoryID uuid.UUID, since time.Time, excludeID uuid.UUID) (decimal.Decimal, error) {
	var total decimal.Decimal
	row := GetDB(ctx, r.db).
		Model(&model.ApprovalRequest{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("budget_category_id = ?", budgetCategoryID).
		Where("status = ?", model.RequestStatusApproved).
		Where("created_at >= ?", since).
		Where("id <> ?", excludeID).
		Row()
	if err := row.Scan(&total); err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

func (r *approvalRepository) LinkPurchaseOrder(ctx context.Context, id, orderID uuid.UUID) error {
	return r.linkOnce(ctx, id, "purchase_order_id", orderID)
}

func (r *approvalRepository) LinkStockTransfer(ctx context.Context, id, transferID uuid.UUID) error {
	return r.linkOnce(ctx, id, "stock_transfer_id", transferID)
}

func (r *approvalRepository) linkOnce(ctx context.Context, id uuid.UUID, column string, target uuid.UUID) error {
	res := GetDB(ctx, r.db).
		Model(&model.ApprovalRequest{}).
		Where("id = ? AND "+column+" IS NULL", id).
		Update(column, target)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrLinkAlreadySet
	}
	return nil
}

func (r *approvalRepository) SetStockChecked(ctx context.Context, id uuid.UUID, checked bool) error {
	return GetDB(ctx, r.db).Model(&model.ApprovalRequest{}).Where("id = ?", id).Update("stock_checked", checked).Error
}

func (r *approvalRepository) CountByEmployee(ctx context.Context, employeeID uuid.UUID) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&model.ApprovalRequest{}).Where("employee_id = ?", employeeID).Count(&count).Error
	return count, err
}
