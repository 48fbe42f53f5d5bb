package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"tripinvite/portal/internal/config"
	"tripinvite/portal/internal/model"
	"tripinvite/portal/internal/repository"
	"tripinvite/portal/internal/trip"
)

type Message struct {
	Subject string
	Body    string
}

type DispatchOutcome string

const (
	DispatchSent          DispatchOutcome = "sent"
	DispatchNotConfigured DispatchOutcome = "not_configured"
	DispatchNoRecipients  DispatchOutcome = "no_recipients"
	DispatchNoEvents      DispatchOutcome = "no_events"
	DispatchFailed        DispatchOutcome = "failed"
)

// DispatchResult reports how a batch ended. On DispatchFailed, Sent counts the
// messages delivered before FailedAddress was attempted.
type DispatchResult struct {
	Outcome       DispatchOutcome
	Sent          int
	FailedAddress string
	Reason        string
}

func (r DispatchResult) OK() bool { return r.Outcome == DispatchSent }

// Receipt kinds.
const (
	ReceiptEventsTomorrow = "events_tomorrow"
	ReceiptPassport       = "passport"
	ReceiptNewEvent       = "new_event"
)

// Receipt records the last successful batch of one kind.
type Receipt struct {
	SentAt time.Time `json:"sent_at"`
	Count  int       `json:"count"`
}

type NotificationOverview struct {
	EventsTomorrow int
	OptedIn        int
	Receipts       map[string]*Receipt
}

type NotificationService interface {
	// Dispatch sends msg to each recipient in order and stops at the first failure.
	Dispatch(ctx context.Context, recipients []string, msg Message) DispatchResult
	SendEventsTomorrow(ctx context.Context) (DispatchResult, error)
	SendPassportReminder(ctx context.Context) (DispatchResult, error)
	AnnounceEvent(ctx context.Context, event *model.TripEvent) (DispatchResult, error)
	Overview(ctx context.Context) (*NotificationOverview, error)
}

type notificationService struct {
	sender     MailSender
	itinerary  ItineraryService
	surveyRepo repository.SurveyRepository
	store      repository.StateStore
	trip       config.TripConfig
	timeout    time.Duration
	logger     *zap.Logger
	now        func() time.Time
}

func NewNotificationService(
	sender MailSender,
	itinerary ItineraryService,
	surveyRepo repository.SurveyRepository,
	store repository.StateStore,
	tripCfg config.TripConfig,
	timeout time.Duration,
	logger *zap.Logger,
	now func() time.Time,
) NotificationService {
	if now == nil {
		now = time.Now
	}
	return &notificationService{
		sender:     sender,
		itinerary:  itinerary,
		surveyRepo: surveyRepo,
		store:      store,
		trip:       tripCfg,
		timeout:    timeout,
		logger:     logger,
		now:        now,
	}
}

func (s *notificationService) Dispatch(ctx context.Context, recipients []string, msg Message) DispatchResult {
	if s.sender == nil {
		return DispatchResult{Outcome: DispatchNotConfigured, Reason: ErrMailNotConfigured.Error()}
	}
	if len(recipients) == 0 {
		return DispatchResult{Outcome: DispatchNoRecipients}
	}

	sent := 0
	for _, to := range recipients {
		if err := s.sendOne(ctx, to, msg); err != nil {
			s.logger.Warn("notification batch aborted",
				zap.String("subject", msg.Subject),
				zap.String("recipient", to),
				zap.Int("sent", sent),
				zap.Error(err),
			)
			return DispatchResult{
				Outcome:       DispatchFailed,
				Sent:          sent,
				FailedAddress: to,
				Reason:        err.Error(),
			}
		}
		sent++
	}
	s.logger.Info("notification batch sent", zap.String("subject", msg.Subject), zap.Int("sent", sent))
	return DispatchResult{Outcome: DispatchSent, Sent: sent}
}

func (s *notificationService) sendOne(ctx context.Context, to string, msg Message) error {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	return s.sender.Send(ctx, to, msg.Subject, msg.Body)
}

func (s *notificationService) SendEventsTomorrow(ctx context.Context) (DispatchResult, error) {
	events, err := s.itinerary.Tomorrow(ctx)
	if err != nil {
		return DispatchResult{}, err
	}
	if len(events) == 0 {
		return DispatchResult{Outcome: DispatchNoEvents}, nil
	}
	return s.broadcast(ctx, ReceiptEventsTomorrow, EventsTomorrowMessage(s.trip, events))
}

func (s *notificationService) SendPassportReminder(ctx context.Context) (DispatchResult, error) {
	return s.broadcast(ctx, ReceiptPassport, PassportReminderMessage(s.trip))
}

func (s *notificationService) AnnounceEvent(ctx context.Context, event *model.TripEvent) (DispatchResult, error) {
	return s.broadcast(ctx, ReceiptNewEvent, NewEventMessage(s.trip, event))
}

// broadcast sends msg to every opted-in address and records a receipt on success.
func (s *notificationService) broadcast(ctx context.Context, kind string, msg Message) (DispatchResult, error) {
	if s.sender == nil {
		return s.Dispatch(ctx, nil, msg), nil
	}
	recipients, err := s.surveyRepo.OptedInEmails(ctx)
	if err != nil {
		return DispatchResult{}, fmt.Errorf("load opted-in emails: %w", err)
	}
	result := s.Dispatch(ctx, recipients, msg)
	if result.OK() {
		s.recordReceipt(ctx, kind, result.Sent)
	}
	return result, nil
}

func (s *notificationService) recordReceipt(ctx context.Context, kind string, count int) {
	data, err := json.Marshal(Receipt{SentAt: s.now().UTC(), Count: count})
	if err == nil {
		err = s.store.Set(ctx, receiptKey(kind), data, 0)
	}
	if err != nil {
		s.logger.Warn("notification receipt not stored", zap.String("kind", kind), zap.Error(err))
	}
}

func (s *notificationService) Overview(ctx context.Context) (*NotificationOverview, error) {
	events, err := s.itinerary.Tomorrow(ctx)
	if err != nil {
		return nil, err
	}
	recipients, err := s.surveyRepo.OptedInEmails(ctx)
	if err != nil {
		return nil, fmt.Errorf("load opted-in emails: %w", err)
	}

	overview := &NotificationOverview{
		EventsTomorrow: len(events),
		OptedIn:        len(recipients),
		Receipts:       make(map[string]*Receipt),
	}
	for _, kind := range []string{ReceiptEventsTomorrow, ReceiptPassport, ReceiptNewEvent} {
		data, err := s.store.Get(ctx, receiptKey(kind))
		if err != nil {
			return nil, fmt.Errorf("load %s receipt: %w", kind, err)
		}
		if data == nil {
			continue
		}
		var r Receipt
		if err := json.Unmarshal(data, &r); err != nil {
			s.logger.Warn("unreadable notification receipt", zap.String("kind", kind), zap.Error(err))
			continue
		}
		overview.Receipts[kind] = &r
	}
	return overview, nil
}

func receiptKey(kind string) string { return "receipt:" + kind }

// EventsTomorrowMessage builds the digest of the given itinerary items.
func EventsTomorrowMessage(tripCfg config.TripConfig, events []model.TripEvent) Message {
	lines := make([]string, 0, len(events))
	for i := range events {
		lines = append(lines, EventLine(&events[i]))
	}
	return Message{
		Subject: tripCfg.Name + " update: events tomorrow",
		Body: "Hi!\n\nHere are the events happening tomorrow for " + tripCfg.Name + ":\n\n" +
			strings.Join(lines, "\n") + "\n\nSee you there!",
	}
}

func PassportReminderMessage(tripCfg config.TripConfig) Message {
	deadline := trip.StandardDeadline(tripCfg)
	return Message{
		Subject: "Passport reminder: " + tripCfg.Name,
		Body: "Hi!\n\n" +
			"Reminder: standard passport processing should be started by " + deadline.Format("January 02, 2006") + ".\n" +
			"If you have not applied yet, please make plans now.\n\n" +
			"Passport info: " + tripCfg.PassportInfoURL + "\n\n" +
			"See you soon!",
	}
}

func NewEventMessage(tripCfg config.TripConfig, event *model.TripEvent) Message {
	when := strings.TrimSpace(event.EventDate.Format("January 02, 2006") + " " + event.EventTime.Kitchen())
	return Message{
		Subject: "New event added: " + event.Title,
		Body: "Hi!\n\nA new event was added to " + tripCfg.Name + ":\n\n" +
			event.Title + "\n" +
			when + "\n" +
			event.Location + "\n\n" +
			"Check your invite for details.",
	}
}

// EventLine renders "Jun 12 - Title · 3:04 PM · Location", skipping empty parts.
func EventLine(event *model.TripEvent) string {
	title := event.Title
	if title == "" {
		title = "Trip Event"
	}
	pieces := []string{title}
	if t := event.EventTime.Kitchen(); t != "" {
		pieces = append(pieces, t)
	}
	if event.Location != "" {
		pieces = append(pieces, event.Location)
	}
	return event.EventDate.Format("Jan 02") + " - " + strings.Join(pieces, " · ")
}

var _ NotificationService = (*notificationService)(nil)
