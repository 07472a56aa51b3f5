package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Employee is a directory entry. UserID links a login account directly;
// portal users without that link are matched through WorkEmail.
type Employee struct {
	ID            uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name          string         `gorm:"type:varchar(255);not null;index" json:"name"`
	UserID        *uuid.UUID     `gorm:"type:uuid;index" json:"user_id"`
	WorkEmail     string         `gorm:"type:varchar(255);index" json:"work_email"`
	ParentID      *uuid.UUID     `gorm:"type:uuid;index" json:"parent_id"` // reporting line
	Parent        *Employee      `gorm:"foreignKey:ParentID" json:"parent,omitempty"`
	WorkContactID *uuid.UUID     `gorm:"type:uuid" json:"work_contact_id"`
	CompanyID     *uuid.UUID     `gorm:"type:uuid;index" json:"company_id"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}
