package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	ActionCreateRequest       = "CREATE_APPROVAL_REQUEST"
	ActionUpdateRequest       = "UPDATE_APPROVAL_REQUEST"
	ActionSubmitRequest       = "SUBMIT_APPROVAL_REQUEST"
	ActionApproveRequest      = "APPROVE_REQUEST"
	ActionRefuseRequest       = "REFUSE_REQUEST"
	ActionStockChecked        = "STOCK_AVAILABILITY_CHECKED"
	ActionPurchaseOrderBuilt  = "PURCHASE_ORDER_FROM_APPROVAL"
	ActionStockTransferBuilt  = "STOCK_TRANSFER_FROM_APPROVAL"
	ActionCreateProduct       = "CREATE_PRODUCT"
	ActionCreateVendor        = "CREATE_VENDOR"
	ActionCreateSupplierInfo  = "CREATE_SUPPLIER_INFO"
	ActionCreateWorkstation   = "CREATE_WORKSTATION_LOCATION"
	ActionLinkPortalEmployees = "LINK_PORTAL_EMPLOYEES"
)

// AuditLog tracks Who, What, and When. Entries keyed by a request id double as
// that request's message log.
type AuditLog struct {
	ID         uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID     *uuid.UUID     `gorm:"type:uuid;index" json:"user_id"` // nil for system actions
	User       *User          `gorm:"foreignKey:UserID" json:"user"`
	Action     string         `gorm:"type:varchar(50);not null;index" json:"action"`
	EntityID   string         `gorm:"type:varchar(50);index" json:"entity_id"`
	EntityName string         `gorm:"type:varchar(255)" json:"entity_name,omitempty"`
	Message    string         `gorm:"type:text" json:"message,omitempty"`
	Details    datatypes.JSON `gorm:"type:jsonb" json:"details"`
	CreatedAt  time.Time      `gorm:"index" json:"created_at"`
}
