package handler

import (
	"embed"
	"html/template"
	"strings"

	"tripinvite/portal/internal/config"
	"tripinvite/portal/internal/gate"
	"tripinvite/portal/internal/model"
	"tripinvite/portal/internal/service"
	"tripinvite/portal/internal/trip"
)

//go:embed templates/*.html
var templateFS embed.FS

var templateFuncs = template.FuncMap{
	"longDate":   func(d model.Date) string { return d.Format("January 02, 2006") },
	"shortDate":  func(d model.Date) string { return d.Format("Jan 02, 2006") },
	"dayMonth":   func(d model.Date) string { return d.Format("January 02") },
	"kitchen":    func(t model.ClockTime) string { return t.Kitchen() },
	"inputTime":  func(t model.ClockTime) string { return t.Format("15:04") },
	"joinItems":  func(items model.ItemList) string { return strings.Join(items, ", ") },
	"isTrue":     func(b *bool) bool { return b != nil && *b },
	"videoEmbed": videoEmbed,
}

// videoEmbed yields the player URL for hosted videos and "" for direct files.
func videoEmbed(raw string) string {
	embed, _ := trip.VideoEmbed(raw)
	return embed
}

// LoadTemplates parses the embedded page templates.
func LoadTemplates() (*template.Template, error) {
	return template.New("pages").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.html")
}

var stateTemplates = map[gate.State]string{
	gate.NeedToken:    "need_token",
	gate.InvalidToken: "invalid",
	gate.NameGate:     "name_gate",
	gate.VideoGate:    "video_gate",
	gate.RSVPGate:     "rsvp_gate",
	gate.Declined:     "declined",
	gate.Hub:          "hub",
}

// portalPage feeds every guest-facing template.
type portalPage struct {
	Trip    config.TripConfig
	Refresh int
	Notice  string
	Error   string
	Token   string
	Invite  *model.Invite
	Choices []model.RSVPChoice
	Hub     *hubData
}

type hubData struct {
	Origin      string
	FlightsURL  string
	CalendarURL string
	Passport    trip.PassportTimeline
	Events      []model.TripEvent
	Gallery     []trip.Image
}

type adminPage struct {
	Trip      config.TripConfig
	Refresh   int
	Notice    string
	Error     string
	Param     string
	Secret    string
	Dashboard *service.Dashboard
	Overview  *service.NotificationOverview
	Events    []model.TripEvent
	NewEvent  model.TripEvent
}
