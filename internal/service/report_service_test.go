package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripinvite/portal/internal/model"
)

func TestCountRSVP(t *testing.T) {
	counts := CountRSVP([]model.Invite{
		{RSVPChoice: model.RSVPYes},
		{RSVPChoice: model.RSVPNo},
		{RSVPChoice: model.RSVPYes},
		{},
	})
	assert.Equal(t, []RSVPCount{
		{Choice: model.RSVPYes, Label: "yes", Count: 2},
		{Choice: model.RSVPMaybe, Label: "maybe", Count: 0},
		{Choice: model.RSVPNo, Label: "no", Count: 1},
		{Choice: model.RSVPUnset, Label: "unset", Count: 1},
	}, counts)
}

func TestReportService_CSV(t *testing.T) {
	ctx := context.Background()
	r := newRepos(t)
	svc := NewReportService(r.invites, r.survey)
	no := false

	require.NoError(t, r.invites.Create(ctx, &model.Invite{Token: "abc", GuestName: "Ana, Jr.", NeedsPassport: &no}))
	require.NoError(t, r.survey.Create(ctx, &model.SurveyResponse{
		Token: "abc", LiquorPreferences: model.ItemList{"Rum", "Beer"}, Email: "ana@example.com", NotifyOptIn: true,
	}))

	var buf bytes.Buffer
	require.NoError(t, svc.WriteInvitesCSV(ctx, &buf))
	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, inviteColumns, rows[0])
	assert.Equal(t, "abc", rows[1][0])
	assert.Equal(t, "Ana, Jr.", rows[1][1])
	assert.Equal(t, "false", rows[1][9])

	buf.Reset()
	require.NoError(t, svc.WriteSurveyCSV(ctx, &buf))
	rows, err = csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Rum, Beer", rows[1][2])
	assert.Equal(t, "true", rows[1][8])

	dash, err := svc.Dashboard(ctx)
	require.NoError(t, err)
	assert.Len(t, dash.Invites, 1)
	assert.Len(t, dash.Responses, 1)
	assert.Equal(t, 1, dash.RSVP[3].Count)
}
