package trip

import (
	"fmt"
	"strings"

	"tripinvite/portal/internal/config"
	"tripinvite/portal/internal/model"
)

// Origin picks the departure shown to a guest: the saved flight origin,
// then the home city, then the configured default.
func Origin(cfg config.TripConfig, invite *model.Invite) string {
	if invite != nil {
		if invite.FlightOrigin != "" {
			return invite.FlightOrigin
		}
		if invite.HomeCity != "" {
			return invite.HomeCity
		}
	}
	return cfg.DefaultOrigin
}

// FlightsLink builds a Kayak search for origin to the trip's airport over the trip dates.
// Known city names are mapped to airport codes through the alias table.
func FlightsLink(cfg config.TripConfig, origin string) string {
	raw := strings.TrimSpace(origin)
	if raw == "" {
		raw = cfg.DefaultOrigin
	}
	code := raw
	if alias, ok := cfg.OriginAliases[strings.ToLower(raw)]; ok {
		code = alias
	}
	code = strings.ReplaceAll(strings.ToUpper(code), " ", "")

	return fmt.Sprintf("https://www.kayak.com/flights/%s-%s/%s/%s?sort=bestflight_a",
		code,
		strings.ToUpper(cfg.DestIATA),
		cfg.StartDate.String(),
		cfg.EndDate.String(),
	)
}
