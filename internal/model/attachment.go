package model

import (
	"time"

	"github.com/google/uuid"
)

// Resource models an attachment can belong to
const (
	ResModelApprovalRequest = "approval.request"
	ResModelPurchaseOrder   = "purchase.order"
)

// Attachment descriptions
const (
	AttachmentQuotation  = "Quotation"
	AttachmentSupporting = "Supporting Document"
)

// Attachment is file metadata; the bytes live in external storage at URL.
type Attachment struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	ResModel    string    `gorm:"type:varchar(50);not null;index:idx_attachment_res" json:"res_model"`
	ResID       uuid.UUID `gorm:"type:uuid;not null;index:idx_attachment_res" json:"res_id"`
	Description string    `gorm:"type:varchar(50)" json:"description"`
	Mimetype    string    `gorm:"type:varchar(100)" json:"mimetype"`
	URL         string    `gorm:"type:text" json:"url"`
	CreatedAt   time.Time `json:"created_at"`
}
