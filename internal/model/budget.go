package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BudgetCategory is the accounting bucket approved spend is measured against.
// Unlimited and a NULL Ceiling are distinct: Ceiling = 0 admits no spend at all.
type BudgetCategory struct {
	ID        uuid.UUID           `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name      string              `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	Code      string              `gorm:"type:varchar(50);index" json:"code"`
	Ceiling   decimal.NullDecimal `gorm:"type:decimal(18,4)" json:"ceiling"`
	Unlimited bool                `gorm:"default:false" json:"unlimited"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}
