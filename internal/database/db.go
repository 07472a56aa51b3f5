package database

import (
	"approvals/internal/model"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewConnection initializes a new connection pool using GORM
func NewConnection(dsn string, log zerolog.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		log.Warn().Err(err).Msg("failed to auto-migrate models")
	}

	return db, nil
}

// Migrate creates or updates every table the workflow touches.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Role{},
		&model.Permission{},
		&model.User{},
		&model.Employee{},
		&model.Partner{},
		&model.Product{},
		&model.StockLocation{},
		&model.StockQuant{},
		&model.ApprovalCategory{},
		&model.BudgetCategory{},
		&model.PurchaseOrder{},
		&model.PurchaseOrderLine{},
		&model.SupplierInfo{},
		&model.StockTransfer{},
		&model.StockMove{},
		&model.ApprovalRequest{},
		&model.ApprovalProductLine{},
		&model.Attachment{},
		&model.AuditLog{},
	)
}
