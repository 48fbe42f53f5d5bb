package repository

import (
	"context"

	"gorm.io/gorm"

	"tripinvite/portal/internal/model"
)

type SurveyRepository interface {
	Create(ctx context.Context, response *model.SurveyResponse) error
	List(ctx context.Context) ([]model.SurveyResponse, error)
	// OptedInEmails returns the non-empty emails of every opted-in row, duplicates included.
	OptedInEmails(ctx context.Context) ([]string, error)
}

type gormSurveyRepository struct {
	db *gorm.DB
}

func NewGormSurveyRepository(db *gorm.DB) SurveyRepository {
	return &gormSurveyRepository{db: db}
}

func (r *gormSurveyRepository) Create(ctx context.Context, response *model.SurveyResponse) error {
	return r.db.WithContext(ctx).Create(response).Error
}

func (r *gormSurveyRepository) List(ctx context.Context) ([]model.SurveyResponse, error) {
	var responses []model.SurveyResponse
	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&responses).Error
	return responses, err
}

func (r *gormSurveyRepository) OptedInEmails(ctx context.Context) ([]string, error) {
	var emails []string
	err := r.db.WithContext(ctx).
		Model(&model.SurveyResponse{}).
		Where("notify_opt_in = ? AND email <> ''", true).
		Order("created_at ASC").
		Pluck("email", &emails).Error
	return emails, err
}
