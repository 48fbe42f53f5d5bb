package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SurveyResponse is one survey submission. Tokens are not unique here:
// resubmitting creates another row.
type SurveyResponse struct {
	ID                uuid.UUID `gorm:"type:varchar(36);primaryKey" json:"id"`
	Token             string    `gorm:"type:varchar(128);not null;index" json:"token"`
	LiquorPreferences ItemList  `gorm:"type:text;not null;default:''" json:"liquor_preferences"`
	EventPreferences  ItemList  `gorm:"type:text;not null;default:''" json:"event_preferences"`
	ArrivalWindow     string    `gorm:"type:varchar(64);not null;default:''" json:"arrival_window"`
	PlusOne           string    `gorm:"type:varchar(32);not null;default:''" json:"plus_one"`
	BudgetPreference  string    `gorm:"type:varchar(64);not null;default:''" json:"budget_preference"`
	Email             string    `gorm:"type:varchar(320);not null;default:''" json:"email"`
	NotifyOptIn       bool      `gorm:"not null;default:false;index" json:"notify_opt_in"`
	Notes             string    `gorm:"type:text;not null;default:''" json:"notes"`
	CreatedAt         time.Time `json:"created_at"`
}

func (SurveyResponse) TableName() string { return "survey_responses" }

func (r *SurveyResponse) BeforeCreate(*gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
