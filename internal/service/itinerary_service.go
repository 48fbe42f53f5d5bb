package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tripinvite/portal/internal/model"
	"tripinvite/portal/internal/repository"
)

// TripEventInput carries the admin-editable fields of an itinerary item.
type TripEventInput struct {
	Title       string
	EventDate   model.Date
	EventTime   model.ClockTime
	Location    string
	Description string
	BringItems  model.ItemList
}

type ItineraryService interface {
	List(ctx context.Context) ([]model.TripEvent, error)
	Create(ctx context.Context, input TripEventInput) (*model.TripEvent, error)
	Update(ctx context.Context, id uuid.UUID, input TripEventInput) (*model.TripEvent, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// Tomorrow returns the events dated the day after today in the trip's time zone.
	Tomorrow(ctx context.Context) ([]model.TripEvent, error)
}

type itineraryService struct {
	repo repository.TripEventRepository
	loc  *time.Location
	now  func() time.Time
}

func NewItineraryService(repo repository.TripEventRepository, loc *time.Location, now func() time.Time) ItineraryService {
	if now == nil {
		now = time.Now
	}
	if loc == nil {
		loc = time.Local
	}
	return &itineraryService{repo: repo, loc: loc, now: now}
}

func (s *itineraryService) List(ctx context.Context) ([]model.TripEvent, error) {
	events, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list trip events: %w", err)
	}
	return events, nil
}

func (s *itineraryService) Create(ctx context.Context, input TripEventInput) (*model.TripEvent, error) {
	input, err := normalizeTripEvent(input)
	if err != nil {
		return nil, err
	}
	event := &model.TripEvent{
		Title:       input.Title,
		EventDate:   input.EventDate,
		EventTime:   input.EventTime,
		Location:    input.Location,
		Description: input.Description,
		BringItems:  input.BringItems,
	}
	if err := s.repo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create trip event: %w", err)
	}
	return event, nil
}

func (s *itineraryService) Update(ctx context.Context, id uuid.UUID, input TripEventInput) (*model.TripEvent, error) {
	input, err := normalizeTripEvent(input)
	if err != nil {
		return nil, err
	}
	event, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTripEventNotFound
		}
		return nil, fmt.Errorf("load trip event: %w", err)
	}

	event.Title = input.Title
	event.EventDate = input.EventDate
	event.EventTime = input.EventTime
	event.Location = input.Location
	event.Description = input.Description
	event.BringItems = input.BringItems
	event.UpdatedAt = s.now().UTC()
	if err := s.repo.Update(ctx, event); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTripEventNotFound
		}
		return nil, fmt.Errorf("update trip event: %w", err)
	}
	return event, nil
}

func (s *itineraryService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTripEventNotFound
		}
		return fmt.Errorf("delete trip event: %w", err)
	}
	return nil
}

func (s *itineraryService) Tomorrow(ctx context.Context) ([]model.TripEvent, error) {
	tomorrow := model.DateOf(s.now().In(s.loc)).AddDays(1)
	events, err := s.repo.ListOn(ctx, tomorrow)
	if err != nil {
		return nil, fmt.Errorf("list events for %s: %w", tomorrow, err)
	}
	return events, nil
}

func normalizeTripEvent(input TripEventInput) (TripEventInput, error) {
	input.Title = strings.TrimSpace(input.Title)
	if input.Title == "" {
		return input, ErrTripEventTitleRequired
	}
	input.Location = strings.TrimSpace(input.Location)
	input.Description = strings.TrimSpace(input.Description)
	return input, nil
}

var _ ItineraryService = (*itineraryService)(nil)
