package repository

import (
	"context"

	"gorm.io/gorm"

	"tripinvite/portal/internal/model"
)

type gormInviteRepository struct {
	db *gorm.DB
}

func NewGormInviteRepository(db *gorm.DB) InviteRepository {
	return &gormInviteRepository{db: db}
}

func (r *gormInviteRepository) Create(ctx context.Context, invite *model.Invite) error {
	return r.db.WithContext(ctx).Create(invite).Error
}

func (r *gormInviteRepository) GetByToken(ctx context.Context, token string) (*model.Invite, error) {
	var invite model.Invite
	if err := r.db.WithContext(ctx).Where("token = ?", token).First(&invite).Error; err != nil {
		return nil, err
	}
	return &invite, nil
}

// Update writes the given columns. A token with no row is reported as gorm.ErrRecordNotFound.
func (r *gormInviteRepository) Update(ctx context.Context, token string, fields map[string]interface{}) error {
	res := r.db.WithContext(ctx).
		Model(&model.Invite{}).
		Where("token = ?", token).
		Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *gormInviteRepository) List(ctx context.Context) ([]model.Invite, error) {
	var invites []model.Invite
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&invites).Error; err != nil {
		return nil, err
	}
	return invites, nil
}
