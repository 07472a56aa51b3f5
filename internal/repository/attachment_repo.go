package repository

import (
	"context"

	"approvals/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AttachmentRepository interface {
	Create(ctx context.Context, attachment *model.Attachment) error
	ListByResource(ctx context.Context, resModel string, resID uuid.UUID, description string) ([]model.Attachment, error)
}

type attachmentRepository struct {
	db *gorm.DB
}

func NewAttachmentRepository(db *gorm.DB) AttachmentRepository {
	return &attachmentRepository{db: db}
}

func (r *attachmentRepository) Create(ctx context.Context, attachment *model.Attachment) error {
	return GetDB(ctx, r.db).Create(attachment).Error
}

// ListByResource filters on description when it is non-empty.
func (r *attachmentRepository) ListByResource(ctx context.Context, resModel string, resID uuid.UUID, description string) ([]model.Attachment, error) {
	var attachments []model.Attachment

	query := GetDB(ctx, r.db).Where("res_model = ? AND res_id = ?", resModel, resID)
	if description != "" {
		query = query.Where("description = ?", description)
	}

	if err := query.Order("created_at ASC").Find(&attachments).Error; err != nil {
		return nil, err
	}
	return attachments, nil
}
