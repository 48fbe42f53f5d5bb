// Package calendar renders the trip and its itinerary as an iCalendar file.
package calendar

import (
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"

	"tripinvite/portal/internal/config"
	"tripinvite/portal/internal/model"
)

const (
	ProductID    = "-//Trip Invite//EN"
	DefaultTitle = "Trip Event"

	// Floating local time: no zone suffix, no TZID.
	localLayout = "20060102T150405"
	uidLayout   = "20060102"
)

// DefaultEventTime applies to itinerary items saved without a time.
var DefaultEventTime = model.NewClockTime(18, 0)

// Export returns one VEVENT for the trip followed by one per dated itinerary item.
// Start times are floating local times; DTSTAMP is now in UTC. Given the same
// inputs and now, the output is byte-identical.
func Export(trip config.TripConfig, events []model.TripEvent, now time.Time) string {
	cal := ics.NewCalendar()
	cal.SetProductId(ProductID)

	start := trip.StartTime.On(trip.StartDate, time.UTC)
	end := trip.StartTime.On(trip.EndDate, time.UTC)
	ev := cal.AddEvent(strings.ReplaceAll(trip.Name, " ", "") + "-" + start.Format(uidLayout) + "@invite")
	ev.SetDtStampTime(now)
	ev.SetProperty(ics.ComponentPropertyDtStart, start.Format(localLayout))
	ev.SetProperty(ics.ComponentPropertyDtEnd, end.Format(localLayout))
	ev.SetSummary(trip.Name)
	ev.SetLocation(trip.DestCity)

	for i := range events {
		item := &events[i]
		if item.EventDate.IsZero() {
			continue
		}
		at := item.EventTime
		if at.IsZero() {
			at = DefaultEventTime
		}
		start := at.On(item.EventDate, time.UTC)
		title := item.Title
		if title == "" {
			title = DefaultTitle
		}
		location := item.Location
		if location == "" {
			location = trip.DestCity
		}

		ev := cal.AddEvent(item.ID.String() + "-" + start.Format(uidLayout) + "@invite")
		ev.SetDtStampTime(now)
		ev.SetProperty(ics.ComponentPropertyDtStart, start.Format(localLayout))
		ev.SetSummary(title)
		ev.SetLocation(location)
	}

	return cal.Serialize()
}

// Filename is the attachment name offered for the download.
func Filename(trip config.TripConfig) string {
	name := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(trip.Name), " ", "-"))
	if name == "" {
		name = "trip"
	}
	return name + ".ics"
}
