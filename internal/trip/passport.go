// Package trip derives guest-facing details from the trip configuration:
// passport deadlines, flight search links and the photo gallery.
package trip

import (
	"tripinvite/portal/internal/config"
	"tripinvite/portal/internal/model"
)

// Deadline is a passport application cut-off relative to a given day.
type Deadline struct {
	Date     model.Date
	DaysLeft int
}

// Passed reports whether the deadline lies before the reference day.
func (d Deadline) Passed() bool { return d.DaysLeft < 0 }

type PassportTimeline struct {
	DaysToTrip int
	Standard   Deadline
	Expedited  Deadline
}

// StandardDeadline is the trip start minus the standard processing weeks.
func StandardDeadline(cfg config.TripConfig) model.Date {
	return cfg.StartDate.AddDays(-7 * cfg.PassportStandardWeeks)
}

// ExpeditedDeadline is the trip start minus the expedited processing weeks.
func ExpeditedDeadline(cfg config.TripConfig) model.Date {
	return cfg.StartDate.AddDays(-7 * cfg.PassportExpeditedWeeks)
}

// Passport computes the timeline as seen on today. DaysToTrip is floored at zero.
func Passport(cfg config.TripConfig, today model.Date) PassportTimeline {
	standard := StandardDeadline(cfg)
	expedited := ExpeditedDeadline(cfg)

	days := today.DaysUntil(cfg.StartDate)
	if days < 0 {
		days = 0
	}
	return PassportTimeline{
		DaysToTrip: days,
		Standard:   Deadline{Date: standard, DaysLeft: today.DaysUntil(standard)},
		Expedited:  Deadline{Date: expedited, DaysLeft: today.DaysUntil(expedited)},
	}
}
