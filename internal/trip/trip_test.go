package trip

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripinvite/portal/internal/config"
	"tripinvite/portal/internal/model"
)

func testTrip() config.TripConfig {
	return config.TripConfig{
		Name:                   "Costa Rica Trip",
		DestCity:               "Liberia, Costa Rica",
		DestIATA:               "lir",
		StartDate:              model.NewDate(2026, 6, 11),
		EndDate:                model.NewDate(2026, 6, 17),
		DefaultOrigin:          "NYC",
		OriginAliases:          map[string]string{"nashville tn": "BNA", "dc": "WAS"},
		PassportStandardWeeks:  13,
		PassportExpeditedWeeks: 7,
	}
}

func TestPassport_Deadlines(t *testing.T) {
	cfg := testTrip()
	timeline := Passport(cfg, model.NewDate(2026, 3, 1))

	assert.Equal(t, "2026-03-12", timeline.Standard.Date.String())
	assert.Equal(t, "2026-04-23", timeline.Expedited.Date.String())
	assert.Equal(t, 11, timeline.Standard.DaysLeft)
	assert.Equal(t, 53, timeline.Expedited.DaysLeft)
	assert.False(t, timeline.Standard.Passed())
	assert.Equal(t, 102, timeline.DaysToTrip)
}

func TestPassport_PassedAndAfterTrip(t *testing.T) {
	cfg := testTrip()

	timeline := Passport(cfg, model.NewDate(2026, 3, 13))
	assert.Equal(t, -1, timeline.Standard.DaysLeft)
	assert.True(t, timeline.Standard.Passed())
	assert.False(t, timeline.Expedited.Passed())

	onDeadline := Passport(cfg, model.NewDate(2026, 3, 12))
	assert.Equal(t, 0, onDeadline.Standard.DaysLeft)
	assert.False(t, onDeadline.Standard.Passed())

	after := Passport(cfg, model.NewDate(2026, 7, 1))
	assert.Equal(t, 0, after.DaysToTrip)
	assert.True(t, after.Expedited.Passed())
}

func TestFlightsLink(t *testing.T) {
	cfg := testTrip()

	assert.Equal(t,
		"https://www.kayak.com/flights/BNA-LIR/2026-06-11/2026-06-17?sort=bestflight_a",
		FlightsLink(cfg, " Nashville TN "))
	assert.Equal(t,
		"https://www.kayak.com/flights/NEWYORK-LIR/2026-06-11/2026-06-17?sort=bestflight_a",
		FlightsLink(cfg, "new york"))
	assert.Equal(t,
		"https://www.kayak.com/flights/NYC-LIR/2026-06-11/2026-06-17?sort=bestflight_a",
		FlightsLink(cfg, ""))
}

func TestOrigin(t *testing.T) {
	cfg := testTrip()
	assert.Equal(t, "NYC", Origin(cfg, nil))
	assert.Equal(t, "Dallas", Origin(cfg, &model.Invite{HomeCity: "Dallas"}))
	assert.Equal(t, "DFW", Origin(cfg, &model.Invite{HomeCity: "Dallas", FlightOrigin: "DFW"}))
}

func TestGallery(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"villa_pool-view.JPG", "beach.png", "notes.txt", "a-sunset.webp"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o600))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.png"), 0o700))

	images, err := Gallery(dir, []string{"https://cdn.example.com/photos/zip_line.jpg"})
	require.NoError(t, err)
	require.Len(t, images, 4)
	assert.Equal(t, Image{Src: "/gallery/a-sunset.webp", Caption: "A Sunset"}, images[0])
	assert.Equal(t, Image{Src: "/gallery/beach.png", Caption: "Beach"}, images[1])
	assert.Equal(t, Image{Src: "/gallery/villa_pool-view.JPG", Caption: "Villa Pool View"}, images[2])
	assert.Equal(t, "Zip Line", images[3].Caption)
}

func TestGallery_MissingDir(t *testing.T) {
	images, err := Gallery(filepath.Join(t.TempDir(), "nope"), nil)
	require.NoError(t, err)
	assert.Empty(t, images)
}

func TestVideoEmbed(t *testing.T) {
	tests := []struct {
		raw  string
		want string
		ok   bool
	}{
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "https://www.youtube.com/embed/dQw4w9WgXcQ", true},
		{"https://youtube.com/watch?v=dQw4w9WgXcQ&t=42s", "https://www.youtube.com/embed/dQw4w9WgXcQ", true},
		{"https://youtu.be/dQw4w9WgXcQ", "https://www.youtube.com/embed/dQw4w9WgXcQ", true},
		{"https://www.youtube.com/shorts/dQw4w9WgXcQ", "https://www.youtube.com/embed/dQw4w9WgXcQ", true},
		{"https://www.youtube.com/embed/dQw4w9WgXcQ", "https://www.youtube.com/embed/dQw4w9WgXcQ", true},
		{"https://vimeo.com/76979871", "https://player.vimeo.com/video/76979871", true},
		{"https://player.vimeo.com/video/76979871", "https://player.vimeo.com/video/76979871", true},
		{"https://cdn.example.com/welcome.mp4", "", false},
		{"https://www.youtube.com/channel/abc", "", false},
		{"javascript:alert(1)", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := VideoEmbed(tt.raw)
		assert.Equal(t, tt.ok, ok, tt.raw)
		assert.Equal(t, tt.want, got, tt.raw)
	}
}
