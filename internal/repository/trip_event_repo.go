package repository

import (
	"context"

	"github.com/google/uuid"

	"tripinvite/portal/internal/model"
)

type TripEventRepository interface {
	Create(ctx context.Context, event *model.TripEvent) error
	Get(ctx context.Context, id uuid.UUID) (*model.TripEvent, error)
	// List returns every event ordered by date, then time.
	List(ctx context.Context) ([]model.TripEvent, error)
	ListOn(ctx context.Context, day model.Date) ([]model.TripEvent, error)
	Update(ctx context.Context, event *model.TripEvent) error
	Delete(ctx context.Context, id uuid.UUID) error
}
