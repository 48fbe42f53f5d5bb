package model

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InviteEventType names a step recorded in the invite audit log.
type InviteEventType string

const (
	EventGateNameDone       InviteEventType = "gate_name_done"
	EventGateVideoDone      InviteEventType = "gate_video_done"
	EventRSVPDone           InviteEventType = "rsvp_done"
	EventFlightOriginUpdate InviteEventType = "flight_origin_update"
	EventSurveyDone         InviteEventType = "survey_done"
)

func (t InviteEventType) Valid() bool {
	switch t {
	case EventGateNameDone, EventGateVideoDone, EventRSVPDone, EventFlightOriginUpdate, EventSurveyDone:
		return true
	}
	return false
}

var ErrUnknownEventType = errors.New("unknown invite event type")

// InviteEvent is an append-only audit row. Rows are never updated or deleted.
type InviteEvent struct {
	ID        uuid.UUID       `gorm:"type:varchar(36);primaryKey" json:"id"`
	Token     string          `gorm:"type:varchar(128);not null;index" json:"token"`
	EventType InviteEventType `gorm:"type:varchar(64);not null;index" json:"event_type"`
	Detail    string          `gorm:"type:text;not null;default:''" json:"detail"`
	CreatedAt time.Time       `json:"created_at"`
}

func (InviteEvent) TableName() string { return "invite_events" }

func (e *InviteEvent) BeforeCreate(*gorm.DB) error {
	if !e.EventType.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownEventType, e.EventType)
	}
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
