package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"tripinvite/portal/internal/model"
	"tripinvite/portal/internal/repository"
)

type RSVPCount struct {
	Choice model.RSVPChoice
	Label  string
	Count  int
}

type Dashboard struct {
	Invites   []model.Invite
	Responses []model.SurveyResponse
	RSVP      []RSVPCount
}

// ReportService backs the admin dashboard and its CSV downloads.
type ReportService interface {
	Dashboard(ctx context.Context) (*Dashboard, error)
	WriteInvitesCSV(ctx context.Context, w io.Writer) error
	WriteSurveyCSV(ctx context.Context, w io.Writer) error
}

type reportService struct {
	inviteRepo repository.InviteRepository
	surveyRepo repository.SurveyRepository
}

func NewReportService(inviteRepo repository.InviteRepository, surveyRepo repository.SurveyRepository) ReportService {
	return &reportService{inviteRepo: inviteRepo, surveyRepo: surveyRepo}
}

func (s *reportService) Dashboard(ctx context.Context) (*Dashboard, error) {
	invites, err := s.inviteRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list invites: %w", err)
	}
	responses, err := s.surveyRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list survey responses: %w", err)
	}
	return &Dashboard{Invites: invites, Responses: responses, RSVP: CountRSVP(invites)}, nil
}

// CountRSVP tallies choices in the order yes, maybe, no, unset. Every bucket is present.
func CountRSVP(invites []model.Invite) []RSVPCount {
	counts := []RSVPCount{
		{Choice: model.RSVPYes, Label: "yes"},
		{Choice: model.RSVPMaybe, Label: "maybe"},
		{Choice: model.RSVPNo, Label: "no"},
		{Choice: model.RSVPUnset, Label: "unset"},
	}
	for _, inv := range invites {
		idx := len(counts) - 1
		for i, c := range counts {
			if c.Choice == inv.RSVPChoice {
				idx = i
				break
			}
		}
		counts[idx].Count++
	}
	return counts
}

var inviteColumns = []string{
	"token", "guest_name", "gate_name_done", "gate_video_done", "rsvp_done", "rsvp_choice",
	"video_url", "flight_origin", "home_city", "needs_passport", "survey_done", "created_at", "updated_at",
}

func (s *reportService) WriteInvitesCSV(ctx context.Context, w io.Writer) error {
	invites, err := s.inviteRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("list invites: %w", err)
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(inviteColumns); err != nil {
		return err
	}
	for _, inv := range invites {
		needsPassport := ""
		if inv.NeedsPassport != nil {
			needsPassport = strconv.FormatBool(*inv.NeedsPassport)
		}
		if err := cw.Write([]string{
			inv.Token,
			inv.GuestName,
			strconv.FormatBool(inv.GateNameDone),
			strconv.FormatBool(inv.GateVideoDone),
			strconv.FormatBool(inv.RSVPDone),
			string(inv.RSVPChoice),
			inv.VideoURL,
			inv.FlightOrigin,
			inv.HomeCity,
			needsPassport,
			strconv.FormatBool(inv.SurveyDone),
			timestamp(inv.CreatedAt),
			timestamp(inv.UpdatedAt),
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

var surveyColumns = []string{
	"id", "token", "liquor_preferences", "event_preferences", "arrival_window", "plus_one",
	"budget_preference", "email", "notify_opt_in", "notes", "created_at",
}

func (s *reportService) WriteSurveyCSV(ctx context.Context, w io.Writer) error {
	responses, err := s.surveyRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("list survey responses: %w", err)
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(surveyColumns); err != nil {
		return err
	}
	for _, r := range responses {
		if err := cw.Write([]string{
			r.ID.String(),
			r.Token,
			joinItems(r.LiquorPreferences),
			joinItems(r.EventPreferences),
			r.ArrivalWindow,
			r.PlusOne,
			r.BudgetPreference,
			r.Email,
			strconv.FormatBool(r.NotifyOptIn),
			r.Notes,
			timestamp(r.CreatedAt),
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func joinItems(items model.ItemList) string { return strings.Join(items, ", ") }

func timestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

var _ ReportService = (*reportService)(nil)
