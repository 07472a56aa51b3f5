package model

import (
	"time"

	"github.com/google/uuid"
)

// Built-in role names. Tokens carry one of these in the "role" claim.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleStaff   = "staff"
	RolePortal  = "portal"
)

// Role groups the permission codes a token's role grants. IsSystem roles are
// seeded at startup and re-synced on every boot.
type Role struct {
	ID          uuid.UUID    `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name        string       `gorm:"type:varchar(50);uniqueIndex;not null" json:"name"`
	Description string       `gorm:"type:text" json:"description"`
	IsSystem    bool         `gorm:"default:false" json:"is_system"`
	Permissions []Permission `gorm:"many2many:role_permissions;" json:"permissions"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// IsPortal reports whether the role is the self-service portal role, whose
// users only see and submit their own requests.
func (r Role) IsPortal() bool {
	return r.Name == RolePortal
}

// Permission is a single grant, e.g. "approvals.approve" in group "approvals".
type Permission struct {
	ID    uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Code  string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"code"`
	Name  string    `gorm:"type:varchar(255);not null" json:"name"`
	Group string    `gorm:"type:varchar(50);not null;index" json:"group"`
}
