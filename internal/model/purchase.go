package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Purchase order states
const (
	PurchaseStateDraft = "draft" // request for quotation
	PurchaseStateSent  = "sent"
)

// PurchaseOrder is the RFQ produced from an approved purchase request
type PurchaseOrder struct {
	ID          uuid.UUID           `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name        string              `gorm:"type:varchar(50);uniqueIndex;not null" json:"name"`
	PartnerID   uuid.UUID           `gorm:"type:uuid;not null;index" json:"partner_id"`
	Partner     *Partner            `gorm:"foreignKey:PartnerID" json:"partner,omitempty"`
	Origin      string              `gorm:"type:varchar(255)" json:"origin"`
	CompanyID   *uuid.UUID          `gorm:"type:uuid" json:"company_id"`
	State       string              `gorm:"type:varchar(20);not null;default:'draft'" json:"state"`
	AmountTotal decimal.Decimal     `gorm:"type:decimal(18,4);not null;default:0" json:"amount_total"`
	Lines       []PurchaseOrderLine `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"lines"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// PurchaseOrderLine is one line of a PurchaseOrder. ProductID is nil for descriptive lines.
type PurchaseOrderLine struct {
	ID          uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID   *uuid.UUID      `gorm:"type:uuid;index" json:"product_id"`
	Name        string          `gorm:"type:text;not null" json:"name"`
	ProductQty  decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"product_qty"`
	ProductUoM  string          `gorm:"column:product_uom;type:varchar(50)" json:"product_uom"`
	PriceUnit   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"price_unit"`
	Subtotal    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"subtotal"`
	DatePlanned time.Time       `json:"date_planned"`
}

// SupplierInfo links a vendor to a product so purchasing can quote it
type SupplierInfo struct {
	ID        uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	PartnerID uuid.UUID       `gorm:"type:uuid;not null;index:idx_supplier_partner_product" json:"partner_id"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index:idx_supplier_partner_product" json:"product_id"`
	MinQty    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:1" json:"min_qty"`
	Price     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"price"`
	CompanyID *uuid.UUID      `gorm:"type:uuid" json:"company_id"`
	CreatedAt time.Time       `json:"created_at"`
}
