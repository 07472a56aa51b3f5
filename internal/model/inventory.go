package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DefaultUoM is used for ad-hoc products and lines that name no unit.
const DefaultUoM = "Units"

// Product represents a catalog item that can be requested, purchased or moved
type Product struct {
	ID            uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	DefaultCode   string          `gorm:"type:varchar(100);index" json:"default_code"`
	Name          string          `gorm:"type:varchar(255);not null;index" json:"name"`
	UoM           string          `gorm:"column:uom;type:varchar(50);not null;default:'Units'" json:"uom"`
	PurchaseUoM   string          `gorm:"column:purchase_uom;type:varchar(50);not null;default:'Units'" json:"purchase_uom"`
	StandardPrice decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"standard_price"`
	PurchaseOK    bool            `gorm:"default:true" json:"purchase_ok"`
	SaleOK        bool            `gorm:"default:false" json:"sale_ok"`
	IsStorable    bool            `gorm:"default:true" json:"is_storable"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `gorm:"index" json:"-"`
}

// Location usage values
const (
	LocationUsageInternal = "internal"
	LocationUsageView     = "view"
	LocationUsageSupplier = "supplier"
)

// StockLocation is a node in the warehouse tree. Only internal locations hold stock.
type StockLocation struct {
	ID           uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name         string     `gorm:"type:varchar(255);not null;index" json:"name"`
	CompleteName string     `gorm:"type:varchar(512);index" json:"complete_name"`
	Code         string     `gorm:"type:varchar(100);index" json:"code"`
	Usage        string     `gorm:"type:varchar(20);not null;default:'internal';index" json:"usage"`
	ParentID     *uuid.UUID `gorm:"type:uuid;index" json:"parent_id"`
	CompanyID    *uuid.UUID `gorm:"type:uuid;index" json:"company_id"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// StockQuant is the on-hand quantity of one product at one location
type StockQuant struct {
	ID               uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProductID        uuid.UUID       `gorm:"type:uuid;not null;index:idx_quant_product_location" json:"product_id"`
	LocationID       uuid.UUID       `gorm:"type:uuid;not null;index:idx_quant_product_location" json:"location_id"`
	Quantity         decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"quantity"`
	ReservedQuantity decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"reserved_quantity"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// Available is the unreserved part of the quant.
func (q StockQuant) Available() decimal.Decimal {
	return q.Quantity.Sub(q.ReservedQuantity)
}

// Transfer and move states
const (
	TransferStateDraft     = "draft"
	TransferStateConfirmed = "confirmed"
	TransferStateAssigned  = "assigned"
)

// MoveTypeDirect ships moves as soon as each is available
const MoveTypeDirect = "direct"

// StockTransfer is an internal picking between two locations
type StockTransfer struct {
	ID               uuid.UUID   `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name             string      `gorm:"type:varchar(50);uniqueIndex;not null" json:"name"`
	Origin           string      `gorm:"type:varchar(255)" json:"origin"`
	SourceLocationID uuid.UUID   `gorm:"type:uuid;not null;index" json:"source_location_id"`
	DestLocationID   uuid.UUID   `gorm:"type:uuid;not null;index" json:"dest_location_id"`
	CompanyID        *uuid.UUID  `gorm:"type:uuid" json:"company_id"`
	PartnerID        *uuid.UUID  `gorm:"type:uuid" json:"partner_id"`
	MoveType         string      `gorm:"type:varchar(20);not null;default:'direct'" json:"move_type"`
	State            string      `gorm:"type:varchar(20);not null;default:'draft';index" json:"state"`
	Moves            []StockMove `gorm:"foreignKey:TransferID;constraint:OnDelete:CASCADE" json:"moves"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`
}

// StockMove moves one product quantity as part of a StockTransfer
type StockMove struct {
	ID               uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	TransferID       uuid.UUID       `gorm:"type:uuid;not null;index" json:"transfer_id"`
	Name             string          `gorm:"type:varchar(255)" json:"name"`
	ProductID        uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	Quantity         decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"quantity"`
	ReservedQuantity decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"reserved_quantity"`
	UoM              string          `gorm:"column:uom;type:varchar(50)" json:"uom"`
	SourceLocationID uuid.UUID       `gorm:"type:uuid;not null" json:"source_location_id"`
	DestLocationID   uuid.UUID       `gorm:"type:uuid;not null" json:"dest_location_id"`
	State            string          `gorm:"type:varchar(20);not null;default:'draft'" json:"state"`
	CreatedAt        time.Time       `json:"created_at"`
}
