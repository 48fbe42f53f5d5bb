package model

import "gorm.io/gorm"

// AutoMigrate runs GORM auto-migration for all models and creates custom indexes.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&Invite{},
		&InviteEvent{},
		&TripEvent{},
		&SurveyResponse{},
	); err != nil {
		return err
	}

	// Itinerary listing sorts by day, then time of day.
	return db.Exec(
		"CREATE INDEX IF NOT EXISTS idx_trip_events_schedule ON trip_events (event_date, event_time)",
	).Error
}
