package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tripinvite/portal/internal/model"
)

type gormTripEventRepository struct {
	db *gorm.DB
}

func NewGormTripEventRepository(db *gorm.DB) TripEventRepository {
	return &gormTripEventRepository{db: db}
}

func (r *gormTripEventRepository) Create(ctx context.Context, event *model.TripEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *gormTripEventRepository) Get(ctx context.Context, id uuid.UUID) (*model.TripEvent, error) {
	var event model.TripEvent
	if err := r.db.WithContext(ctx).First(&event, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *gormTripEventRepository) List(ctx context.Context) ([]model.TripEvent, error) {
	var events []model.TripEvent
	err := r.db.WithContext(ctx).Order("event_date ASC").Order("event_time ASC").Find(&events).Error
	return events, err
}

func (r *gormTripEventRepository) ListOn(ctx context.Context, day model.Date) ([]model.TripEvent, error) {
	var events []model.TripEvent
	err := r.db.WithContext(ctx).
		Where("event_date = ?", day).
		Order("event_time ASC").
		Find(&events).Error
	return events, err
}

func (r *gormTripEventRepository) Update(ctx context.Context, event *model.TripEvent) error {
	res := r.db.WithContext(ctx).
		Model(&model.TripEvent{}).
		Where("id = ?", event.ID).
		Updates(map[string]interface{}{
			"title":       event.Title,
			"event_date":  event.EventDate,
			"event_time":  event.EventTime,
			"location":    event.Location,
			"description": event.Description,
			"bring_items": event.BringItems,
			"updated_at":  event.UpdatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *gormTripEventRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.TripEvent{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
