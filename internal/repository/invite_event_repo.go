package repository

import (
	"context"

	"gorm.io/gorm"

	"tripinvite/portal/internal/model"
)

// InviteEventRepository is insert-only.
type InviteEventRepository interface {
	Append(ctx context.Context, event *model.InviteEvent) error
}

type gormInviteEventRepository struct {
	db *gorm.DB
}

func NewGormInviteEventRepository(db *gorm.DB) InviteEventRepository {
	return &gormInviteEventRepository{db: db}
}

func (r *gormInviteEventRepository) Append(ctx context.Context, event *model.InviteEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}
