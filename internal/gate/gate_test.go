package gate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tripinvite/portal/internal/model"
)

func TestResolve_NoToken(t *testing.T) {
	assert.Equal(t, NeedToken, Resolve("", nil, false))
	assert.Equal(t, NeedToken, Resolve("   ", &model.Invite{Token: "abc"}, false))
}

func TestResolve_UnknownToken(t *testing.T) {
	assert.Equal(t, InvalidToken, Resolve("abc", nil, false))
}

func TestResolve_GatesBeforeRSVP(t *testing.T) {
	tests := []struct {
		name   string
		invite model.Invite
		want   State
	}{
		{"fresh invite", model.Invite{}, NameGate},
		{"name done", model.Invite{GateNameDone: true}, VideoGate},
		{"both gates done", model.Invite{GateNameDone: true, GateVideoDone: true}, RSVPGate},
		{"video without name", model.Invite{GateVideoDone: true}, NameGate},
		{"choice without rsvp_done", model.Invite{GateNameDone: true, GateVideoDone: true, RSVPChoice: model.RSVPYes}, RSVPGate},
		{"declined choice without rsvp_done", model.Invite{RSVPChoice: model.RSVPNo}, NameGate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := tt.invite
			inv.Token = "abc"
			got := Resolve("abc", &inv, false)
			assert.Equal(t, tt.want, got)
			assert.NotEqual(t, Hub, got)
			assert.NotEqual(t, Declined, got)
		})
	}
}

func TestResolve_DeclinedIgnoresGatesAndIsStable(t *testing.T) {
	for _, inv := range []model.Invite{
		{RSVPDone: true, RSVPChoice: model.RSVPNo},
		{RSVPDone: true, RSVPChoice: model.RSVPNo, GateNameDone: true},
		{RSVPDone: true, RSVPChoice: model.RSVPNo, GateNameDone: true, GateVideoDone: true, SurveyDone: true},
	} {
		inv := inv
		for i := 0; i < 3; i++ {
			assert.Equal(t, Declined, Resolve("abc", &inv, false))
		}
	}
}

func TestResolve_DeclinedWithRedoReturnsToGates(t *testing.T) {
	inv := &model.Invite{RSVPDone: true, RSVPChoice: model.RSVPNo, GateNameDone: true, GateVideoDone: true}
	assert.Equal(t, RSVPGate, Resolve("abc", inv, true))

	inv = &model.Invite{RSVPDone: true, RSVPChoice: model.RSVPNo}
	assert.Equal(t, NameGate, Resolve("abc", inv, true))
}

func TestResolve_AttendingBypassesGates(t *testing.T) {
	for _, choice := range []model.RSVPChoice{model.RSVPYes, model.RSVPMaybe} {
		for _, inv := range []model.Invite{
			{RSVPDone: true, RSVPChoice: choice},
			{RSVPDone: true, RSVPChoice: choice, GateNameDone: true},
			{RSVPDone: true, RSVPChoice: choice, GateNameDone: true, GateVideoDone: true},
		} {
			inv := inv
			assert.Equal(t, Hub, Resolve("abc", &inv, false), "choice %s", choice)
			assert.Equal(t, Hub, Resolve("abc", &inv, true), "choice %s", choice)
		}
	}
}

func TestResolve_RSVPDoneWithoutChoiceFallsThrough(t *testing.T) {
	inv := &model.Invite{RSVPDone: true, GateNameDone: true}
	assert.Equal(t, VideoGate, Resolve("abc", inv, false))
}

func TestState_Accepts(t *testing.T) {
	assert.True(t, NameGate.Accepts(ActionConfirmName, false))
	assert.False(t, NameGate.Accepts(ActionConfirmVideo, false))
	assert.True(t, VideoGate.Accepts(ActionConfirmVideo, false))
	assert.False(t, VideoGate.Accepts(ActionRSVP, false))
	assert.True(t, RSVPGate.Accepts(ActionRSVP, false))
	assert.True(t, Hub.Accepts(ActionFlightOrigin, true))
	assert.True(t, Hub.Accepts(ActionSurvey, false))
	assert.False(t, Hub.Accepts(ActionSurvey, true))
	assert.False(t, Declined.Accepts(ActionRSVP, false))
	assert.False(t, InvalidToken.Accepts(ActionConfirmName, false))
	assert.False(t, NeedToken.Accepts(ActionConfirmName, false))
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "rsvp_gate", RSVPGate.String())
	assert.Equal(t, "unknown", State(99).String())
}
