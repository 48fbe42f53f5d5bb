// Package gate decides which screen a guest sees, from the stored flags of
// their invite. Decisions are pure; persistence lives in the service layer.
package gate

import (
	"strings"

	"tripinvite/portal/internal/model"
)

type State int

const (
	NeedToken State = iota
	InvalidToken
	NameGate
	VideoGate
	RSVPGate
	Declined
	Hub
)

var stateNames = map[State]string{
	NeedToken:    "need_token",
	InvalidToken: "invalid_token",
	NameGate:     "name_gate",
	VideoGate:    "video_gate",
	RSVPGate:     "rsvp_gate",
	Declined:     "declined",
	Hub:          "hub",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Action is a guest-submitted step.
type Action string

const (
	ActionConfirmName  Action = "confirm-name"
	ActionConfirmVideo Action = "confirm-video"
	ActionRSVP         Action = "rsvp"
	ActionFlightOrigin Action = "flight-origin"
	ActionSurvey       Action = "survey"
)

// Accepts reports whether the screen for s offers the given action.
// surveyDone hides the survey form once it was submitted.
func (s State) Accepts(a Action, surveyDone bool) bool {
	switch s {
	case NameGate:
		return a == ActionConfirmName
	case VideoGate:
		return a == ActionConfirmVideo
	case RSVPGate:
		return a == ActionRSVP
	case Hub:
		return a == ActionFlightOrigin || (a == ActionSurvey && !surveyDone)
	}
	return false
}

type input struct {
	token     string
	invite    *model.Invite
	allowRedo bool
}

type rule struct {
	state State
	match func(in input) bool
}

// rules is evaluated top to bottom; the first match wins. The order is
// guest-visible. Flag combinations the gates never produce on their own
// (video done without name done, RSVP without gates) are evaluated as-is.
var rules = []rule{
	{NeedToken, func(in input) bool { return in.token == "" }},
	{InvalidToken, func(in input) bool { return in.invite == nil }},
	{Declined, func(in input) bool {
		return in.invite.RSVPDone && in.invite.RSVPChoice == model.RSVPNo && !in.allowRedo
	}},
	{Hub, func(in input) bool { return in.invite.RSVPDone && in.invite.RSVPChoice.Attending() }},
	{NameGate, func(in input) bool { return !in.invite.GateNameDone }},
	{VideoGate, func(in input) bool { return !in.invite.GateVideoDone }},
}

// Resolve maps a token and the invite stored for it (nil when none was
// found) to the screen to render.
func Resolve(token string, invite *model.Invite, allowRedo bool) State {
	in := input{token: strings.TrimSpace(token), invite: invite, allowRedo: allowRedo}
	for _, r := range rules {
		if r.match(in) {
			return r.state
		}
	}
	return RSVPGate
}
