package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PartnerType enum constants
const (
	PartnerTypeCustomer = "CUSTOMER"
	PartnerTypeSupplier = "SUPPLIER"
	PartnerTypeBoth     = "BOTH"
)

// Partner represents a vendor, a customer, or an employee's work contact
type Partner struct {
	ID           uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name         string         `gorm:"type:varchar(255);not null;index" json:"name"`
	Type         string         `gorm:"type:varchar(20);not null;index" json:"type"` // CUSTOMER, SUPPLIER, BOTH
	IsCompany    bool           `gorm:"default:false" json:"is_company"`
	SupplierRank int            `gorm:"default:0" json:"supplier_rank"`
	Email        string         `gorm:"type:varchar(255)" json:"email"`
	Phone        string         `gorm:"type:varchar(50)" json:"phone"`
	City         string         `gorm:"type:varchar(100)" json:"city"`
	Country      string         `gorm:"type:varchar(100)" json:"country"`
	IsActive     bool           `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// IsVendor reports whether the partner can be used on a purchase order.
func (p *Partner) IsVendor() bool {
	return p.Type == PartnerTypeSupplier || p.Type == PartnerTypeBoth || p.SupplierRank > 0
}
