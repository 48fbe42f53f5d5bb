package calendar

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripinvite/portal/internal/config"
	"tripinvite/portal/internal/model"
)

var exportedAt = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

func testTrip() config.TripConfig {
	return config.TripConfig{
		Name:      "Costa Rica Trip",
		DestCity:  "Liberia, Costa Rica",
		StartDate: model.NewDate(2026, 6, 11),
		EndDate:   model.NewDate(2026, 6, 17),
		StartTime: model.NewClockTime(19, 0),
	}
}

func testEvents() []model.TripEvent {
	return []model.TripEvent{
		{
			ID:        uuid.MustParse("11111111-1111-1111-1111-111111111111"),
			Title:     "Welcome dinner",
			EventDate: model.NewDate(2026, 6, 11),
			EventTime: model.NewClockTime(19, 30),
			Location:  "Villa Pacifica",
		},
		{
			ID:        uuid.MustParse("22222222-2222-2222-2222-222222222222"),
			EventDate: model.NewDate(2026, 6, 12),
		},
		{
			ID:    uuid.MustParse("33333333-3333-3333-3333-333333333333"),
			Title: "Undated",
		},
	}
}

func TestExport_Golden(t *testing.T) {
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "trip_with_events", []byte(Export(testTrip(), testEvents(), exportedAt)))
}

func TestExport_EventCounts(t *testing.T) {
	empty := Export(testTrip(), nil, exportedAt)
	assert.Equal(t, 1, strings.Count(empty, "BEGIN:VEVENT"))
	assert.Equal(t, 1, strings.Count(empty, "END:VEVENT"))

	full := Export(testTrip(), testEvents(), exportedAt)
	assert.Equal(t, 3, strings.Count(full, "BEGIN:VEVENT"))
	assert.NotContains(t, full, "Undated")
}

func TestExport_Stability(t *testing.T) {
	a := Export(testTrip(), testEvents(), exportedAt)
	b := Export(testTrip(), testEvents(), exportedAt)
	assert.Equal(t, a, b)

	later := Export(testTrip(), testEvents(), exportedAt.Add(time.Hour))
	assert.NotEqual(t, a, later)
	assert.Equal(t, strings.Count(a, "UID:"), strings.Count(later, "UID:"))
}

func TestExport_StampIsUTC(t *testing.T) {
	local := exportedAt.In(time.FixedZone("CST", -6*60*60))
	out := Export(testTrip(), nil, local)
	assert.Contains(t, out, "DTSTAMP:20260501T120000Z\r\n")
}

func TestExport_LineFormat(t *testing.T) {
	long := strings.Repeat("Sunset catamaran cruise along the coast; ", 3)
	events := []model.TripEvent{{
		ID:        uuid.MustParse("44444444-4444-4444-4444-444444444444"),
		Title:     long,
		EventDate: model.NewDate(2026, 6, 13),
		Location:  "Playa Flamingo, Guanacaste",
	}}
	out := Export(testTrip(), events, exportedAt)

	require.True(t, strings.HasSuffix(out, "END:VCALENDAR\r\n"))
	lines := strings.Split(strings.TrimSuffix(out, "\r\n"), "\r\n")
	for _, line := range lines {
		assert.NotContains(t, line, "\n")
		assert.LessOrEqual(t, len(line), 75, line)
	}

	unfolded := strings.ReplaceAll(out, "\r\n ", "")
	escaped := strings.ReplaceAll(long, ";", `\;`)
	assert.Contains(t, unfolded, "SUMMARY:"+escaped+"\r\n")
	assert.Contains(t, unfolded, `LOCATION:Playa Flamingo\, Guanacaste`)
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "costa-rica-trip.ics", Filename(testTrip()))
	assert.Equal(t, "trip.ics", Filename(config.TripConfig{}))
}
