package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Request status values. Transitions are owned by the approval service.
const (
	RequestStatusNew      = "new"
	RequestStatusPending  = "pending"
	RequestStatusApproved = "approved"
	RequestStatusRefused  = "refused"
)

// ApprovalType values of ApprovalCategory
const (
	ApprovalTypePurchase = "purchase"
	ApprovalTypeOther    = "other"
)

// Period modes of ApprovalCategory.HasPeriod
const (
	PeriodNo       = "no"
	PeriodOptional = "optional"
	PeriodRequired = "required"
)

// ApprovalCategory is the template deciding which optional fields a request carries
// and what happens downstream once it is approved.
type ApprovalCategory struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name         string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	Description  string    `gorm:"type:text" json:"description"`
	ApprovalType string    `gorm:"type:varchar(30);not null;default:'other'" json:"approval_type"`
	HasDate      bool      `gorm:"default:false" json:"has_date"`
	HasPeriod    string    `gorm:"type:varchar(20);not null;default:'no'" json:"has_period"`
	HasAmount    bool      `gorm:"default:false" json:"has_amount"`
	HasQuantity  bool      `gorm:"default:false" json:"has_quantity"`
	HasLocation  bool      `gorm:"default:false" json:"has_location"`
	HasReference bool      `gorm:"default:false" json:"has_reference"`
	HasPartner   bool      `gorm:"default:false" json:"has_partner"`
	HasProduct   bool      `gorm:"default:false" json:"has_product"`
	IsActive     bool      `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ApprovalRequest is an employee's ask, moving new -> pending -> approved/refused.
// PurchaseOrderID and StockTransferID are written at most once.
type ApprovalRequest struct {
	ID         uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name       string            `gorm:"type:varchar(50);uniqueIndex;not null" json:"name"`
	CategoryID uuid.UUID         `gorm:"type:uuid;not null;index" json:"category_id"`
	Category   *ApprovalCategory `gorm:"foreignKey:CategoryID" json:"category,omitempty"`

	OwnerID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"owner_id"`
	Owner      *User      `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	EmployeeID *uuid.UUID `gorm:"type:uuid;index" json:"employee_id"`
	Employee   *Employee  `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
	ManagerID  *uuid.UUID `gorm:"type:uuid;index" json:"manager_id"`
	Manager    *Employee  `gorm:"foreignKey:ManagerID" json:"manager,omitempty"`
	CompanyID  *uuid.UUID `gorm:"type:uuid;index" json:"company_id"`

	Status           string `gorm:"type:varchar(20);not null;default:'new';index" json:"status"`
	PortalSubmission bool   `gorm:"default:false" json:"portal_submission"`
	Reason           string `gorm:"type:text" json:"reason"`

	Amount    decimal.NullDecimal `gorm:"type:decimal(18,4)" json:"amount"`
	Quantity  decimal.NullDecimal `gorm:"type:decimal(18,4)" json:"quantity"`
	Date      *time.Time          `json:"date"`
	DateStart *time.Time          `json:"date_start"`
	DateEnd   *time.Time          `json:"date_end"`
	Location  string              `gorm:"type:varchar(255)" json:"location"`
	Reference string              `gorm:"type:varchar(255)" json:"reference"`

	BudgetCategoryID *uuid.UUID      `gorm:"type:uuid;index" json:"budget_category_id"`
	BudgetCategory   *BudgetCategory `gorm:"foreignKey:BudgetCategoryID" json:"budget_category,omitempty"`
	PartnerID        *uuid.UUID      `gorm:"type:uuid;index" json:"partner_id"`
	Partner          *Partner        `gorm:"foreignKey:PartnerID" json:"partner,omitempty"`

	SourceLocationID *uuid.UUID     `gorm:"type:uuid" json:"source_location_id"`
	SourceLocation   *StockLocation `gorm:"foreignKey:SourceLocationID" json:"source_location,omitempty"`
	DestLocationID   *uuid.UUID     `gorm:"type:uuid" json:"dest_location_id"`
	DestLocation     *StockLocation `gorm:"foreignKey:DestLocationID" json:"dest_location,omitempty"`
	StockChecked     bool           `gorm:"default:false" json:"stock_checked"`

	PurchaseOrderID *uuid.UUID     `gorm:"type:uuid;uniqueIndex" json:"purchase_order_id"`
	PurchaseOrder   *PurchaseOrder `gorm:"foreignKey:PurchaseOrderID" json:"purchase_order,omitempty"`
	StockTransferID *uuid.UUID     `gorm:"type:uuid;uniqueIndex" json:"stock_transfer_id"`
	StockTransfer   *StockTransfer `gorm:"foreignKey:StockTransferID" json:"stock_transfer,omitempty"`

	DecidedBy     *uuid.UUID `gorm:"type:uuid" json:"decided_by"`
	DecidedAt     *time.Time `json:"decided_at"`
	RefusalReason string     `gorm:"type:text" json:"refusal_reason"`

	Lines     []ApprovalProductLine `gorm:"foreignKey:RequestID;constraint:OnDelete:CASCADE" json:"lines"`
	CreatedAt time.Time             `gorm:"index" json:"created_at"`
	UpdatedAt time.Time             `json:"updated_at"`
}

// IsEditable reports whether the submitter may still change business fields.
func (r *ApprovalRequest) IsEditable() bool {
	return r.Status == RequestStatusNew || r.Status == RequestStatusPending
}

// ApprovalProductLine is one requested item. Subtotal is derived, never set by callers.
type ApprovalProductLine struct {
	ID             uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	RequestID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"request_id"`
	Sequence       int             `gorm:"not null;default:0" json:"sequence"`
	ProductID      *uuid.UUID      `gorm:"type:uuid;index" json:"product_id"`
	Product        *Product        `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Description    string          `gorm:"type:text" json:"description"`
	Quantity       decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"quantity"`
	UoM            string          `gorm:"column:uom;type:varchar(50)" json:"uom"`
	PriceUnit      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"price_unit"`
	VendorID       *uuid.UUID      `gorm:"type:uuid" json:"vendor_id"`
	SupplierInfoID *uuid.UUID      `gorm:"type:uuid" json:"supplier_info_id"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"subtotal"`
}

// ComputeSubtotal refreshes Subtotal from Quantity and PriceUnit.
func (l *ApprovalProductLine) ComputeSubtotal() {
	l.Subtotal = l.Quantity.Mul(l.PriceUnit)
}

func (l *ApprovalProductLine) BeforeSave(tx *gorm.DB) error {
	l.ComputeSubtotal()
	return nil
}
