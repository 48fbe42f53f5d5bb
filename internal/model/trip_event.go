package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TripEvent is one itinerary item managed by the admin.
type TripEvent struct {
	ID          uuid.UUID `gorm:"type:varchar(36);primaryKey" json:"id"`
	Title       string    `gorm:"type:varchar(256);not null" json:"title"`
	EventDate   Date      `gorm:"type:date;index" json:"event_date"`
	EventTime   ClockTime `gorm:"type:time" json:"event_time"`
	Location    string    `gorm:"type:varchar(256);not null;default:''" json:"location"`
	Description string    `gorm:"type:text;not null;default:''" json:"description"`
	BringItems  ItemList  `gorm:"type:text;not null;default:''" json:"bring_items"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (TripEvent) TableName() string { return "trip_events" }

func (e *TripEvent) BeforeCreate(*gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
