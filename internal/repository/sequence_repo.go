package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// SequenceRepository hands out daily document names such as PO-20260115-00003.
type SequenceRepository interface {
	Next(ctx context.Context, table, code string, day time.Time) (string, error)
}

type sequenceRepository struct {
	db *gorm.DB
}

func NewSequenceRepository(db *gorm.DB) SequenceRepository {
	return &sequenceRepository{db: db}
}

// Next must run inside a transaction: the advisory lock is released on commit.
func (r *sequenceRepository) Next(ctx context.Context, table, code string, day time.Time) (string, error) {
	prefix := code + "-" + day.Format("20060102") + "-"
	db := GetDB(ctx, r.db)

	// Use advisory lock to prevent concurrent duplicate names
	if err := db.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", prefix).Error; err != nil {
		return "", err
	}

	var count int64
	if err := db.Table(table).Where("name LIKE ?", prefix+"%").Count(&count).Error; err != nil {
		return "", err
	}

	return fmt.Sprintf("%s%05d", prefix, count+1), nil
}
