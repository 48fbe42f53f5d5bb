package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"tripinvite/portal/internal/gate"
	"tripinvite/portal/internal/model"
	"tripinvite/portal/internal/repository"
	"tripinvite/portal/pkg/crypto"
)

// GateView is the outcome of resolving a token: the screen to render and,
// when one was found, the invite behind it.
type GateView struct {
	Token  string
	State  gate.State
	Invite *model.Invite
}

type SurveyInput struct {
	LiquorPreferences []string
	EventPreferences  []string
	EventsOther       string
	ArrivalWindow     string
	PlusOne           string
	BudgetPreference  string
	Email             string
	NotifyOptIn       bool
	Notes             string
}

type CreateInviteInput struct {
	Token         string
	GuestName     string
	VideoURL      string
	HomeCity      string
	NeedsPassport *bool
}

type InviteService interface {
	Resolve(ctx context.Context, token string) (*GateView, error)
	ConfirmName(ctx context.Context, token, name string) error
	ConfirmVideo(ctx context.Context, token string) error
	SubmitRSVP(ctx context.Context, token string, choice model.RSVPChoice) (gate.State, error)
	UpdateFlightOrigin(ctx context.Context, token, origin string) (bool, error)
	SubmitSurvey(ctx context.Context, token string, input SurveyInput) error
	CreateInvite(ctx context.Context, input CreateInviteInput) (*model.Invite, error)
	ListInvites(ctx context.Context) ([]model.Invite, error)
}

type inviteService struct {
	inviteRepo repository.InviteRepository
	eventRepo  repository.InviteEventRepository
	surveyRepo repository.SurveyRepository
	allowRedo  bool
	logger     *zap.Logger
	now        func() time.Time
}

func NewInviteService(
	inviteRepo repository.InviteRepository,
	eventRepo repository.InviteEventRepository,
	surveyRepo repository.SurveyRepository,
	allowRedo bool,
	logger *zap.Logger,
	now func() time.Time,
) InviteService {
	if now == nil {
		now = time.Now
	}
	return &inviteService{
		inviteRepo: inviteRepo,
		eventRepo:  eventRepo,
		surveyRepo: surveyRepo,
		allowRedo:  allowRedo,
		logger:     logger,
		now:        now,
	}
}

func (s *inviteService) Resolve(ctx context.Context, token string) (*GateView, error) {
	token = strings.TrimSpace(token)
	view := &GateView{Token: token}
	if token == "" {
		view.State = gate.Resolve(token, nil, s.allowRedo)
		return view, nil
	}

	invite, err := s.inviteRepo.GetByToken(ctx, token)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		invite = nil
	case err != nil:
		return nil, fmt.Errorf("load invite: %w", err)
	}

	view.Invite = invite
	view.State = gate.Resolve(token, invite, s.allowRedo)
	return view, nil
}

// require resolves token and checks that its current screen offers action.
// On ErrActionNotAvailable the resolved view is still returned.
func (s *inviteService) require(ctx context.Context, token string, action gate.Action) (*GateView, error) {
	view, err := s.Resolve(ctx, token)
	if err != nil {
		return nil, err
	}
	if view.Invite == nil {
		return nil, ErrInviteNotFound
	}
	if !view.State.Accepts(action, view.Invite.SurveyDone) {
		return view, ErrActionNotAvailable
	}
	return view, nil
}

func (s *inviteService) ConfirmName(ctx context.Context, token, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrGuestNameRequired
	}
	view, err := s.require(ctx, token, gate.ActionConfirmName)
	if err != nil {
		return err
	}
	return s.advance(ctx, view.Token, map[string]interface{}{
		"guest_name":     name,
		"gate_name_done": true,
	}, model.EventGateNameDone, "")
}

func (s *inviteService) ConfirmVideo(ctx context.Context, token string) error {
	view, err := s.require(ctx, token, gate.ActionConfirmVideo)
	if err != nil {
		return err
	}
	return s.advance(ctx, view.Token, map[string]interface{}{
		"gate_video_done": true,
	}, model.EventGateVideoDone, "")
}

// SubmitRSVP records the answer and returns the screen that follows it.
// A "no" with redo disabled lands on Declined in the same call.
func (s *inviteService) SubmitRSVP(ctx context.Context, token string, choice model.RSVPChoice) (gate.State, error) {
	if !choice.Valid() {
		return gate.RSVPGate, ErrInvalidRSVPChoice
	}
	view, err := s.require(ctx, token, gate.ActionRSVP)
	if err != nil {
		return view.stateOr(gate.InvalidToken), err
	}
	if err := s.advance(ctx, view.Token, map[string]interface{}{
		"rsvp_done":   true,
		"rsvp_choice": choice,
	}, model.EventRSVPDone, string(choice)); err != nil {
		return view.State, err
	}

	answered := *view.Invite
	answered.RSVPDone = true
	answered.RSVPChoice = choice
	return gate.Resolve(view.Token, &answered, s.allowRedo), nil
}

// UpdateFlightOrigin stores the guest's departure airport or city, upper-cased.
// It reports false without writing when the value is empty or unchanged.
func (s *inviteService) UpdateFlightOrigin(ctx context.Context, token, origin string) (bool, error) {
	view, err := s.require(ctx, token, gate.ActionFlightOrigin)
	if err != nil {
		return false, err
	}
	origin = strings.ToUpper(strings.TrimSpace(origin))
	if origin == "" || origin == view.Invite.FlightOrigin {
		return false, nil
	}
	if err := s.advance(ctx, view.Token, map[string]interface{}{
		"flight_origin": origin,
	}, model.EventFlightOriginUpdate, origin); err != nil {
		return false, err
	}
	return true, nil
}

func (s *inviteService) SubmitSurvey(ctx context.Context, token string, input SurveyInput) error {
	view, err := s.require(ctx, token, gate.ActionSurvey)
	if err != nil {
		return err
	}

	events := append([]string(nil), input.EventPreferences...)
	if other := strings.TrimSpace(input.EventsOther); other != "" {
		events = append(events, other)
	}
	response := &model.SurveyResponse{
		Token:             view.Token,
		LiquorPreferences: model.ItemList(input.LiquorPreferences),
		EventPreferences:  model.ItemList(events),
		ArrivalWindow:     input.ArrivalWindow,
		PlusOne:           input.PlusOne,
		BudgetPreference:  input.BudgetPreference,
		Email:             strings.TrimSpace(input.Email),
		NotifyOptIn:       input.NotifyOptIn,
		Notes:             input.Notes,
	}
	if err := s.surveyRepo.Create(ctx, response); err != nil {
		return fmt.Errorf("save survey response: %w", err)
	}
	return s.advance(ctx, view.Token, map[string]interface{}{
		"survey_done": true,
	}, model.EventSurveyDone, "")
}

// advance persists fields and then appends one audit row. The two writes are
// not transactional; an audit failure is logged and does not fail the step.
func (s *inviteService) advance(
	ctx context.Context,
	token string,
	fields map[string]interface{},
	eventType model.InviteEventType,
	detail string,
) error {
	fields["updated_at"] = s.now().UTC()
	if err := s.inviteRepo.Update(ctx, token, fields); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInviteNotFound
		}
		return fmt.Errorf("update invite: %w", err)
	}

	event := &model.InviteEvent{Token: token, EventType: eventType, Detail: detail}
	if err := s.eventRepo.Append(ctx, event); err != nil {
		s.logger.Warn("invite event not recorded",
			zap.String("event_type", string(eventType)),
			zap.Error(err),
		)
	}
	return nil
}

func (s *inviteService) CreateInvite(ctx context.Context, input CreateInviteInput) (*model.Invite, error) {
	token := strings.TrimSpace(input.Token)
	if token == "" {
		generated, err := crypto.GenerateInviteToken()
		if err != nil {
			return nil, fmt.Errorf("generate invite token: %w", err)
		}
		token = generated
	} else {
		_, err := s.inviteRepo.GetByToken(ctx, token)
		switch {
		case err == nil:
			return nil, ErrInviteTokenTaken
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return nil, fmt.Errorf("check invite token: %w", err)
		}
	}

	invite := &model.Invite{
		Token:         token,
		GuestName:     strings.TrimSpace(input.GuestName),
		VideoURL:      strings.TrimSpace(input.VideoURL),
		HomeCity:      strings.TrimSpace(input.HomeCity),
		NeedsPassport: input.NeedsPassport,
	}
	if err := s.inviteRepo.Create(ctx, invite); err != nil {
		return nil, fmt.Errorf("create invite: %w", err)
	}
	return invite, nil
}

func (s *inviteService) ListInvites(ctx context.Context) ([]model.Invite, error) {
	invites, err := s.inviteRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list invites: %w", err)
	}
	return invites, nil
}

func (v *GateView) stateOr(fallback gate.State) gate.State {
	if v == nil {
		return fallback
	}
	return v.State
}

var _ InviteService = (*inviteService)(nil)
