package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"tripinvite/portal/internal/config"
	"tripinvite/portal/internal/handler/middleware"
	"tripinvite/portal/internal/model"
	"tripinvite/portal/internal/service"
)

// AdminHandler renders the dashboard and handles its form posts. Every route
// except Dashboard sits behind middleware.RequireAdmin.
type AdminHandler struct {
	trip          config.TripConfig
	auth          *middleware.AdminAuth
	reports       service.ReportService
	itinerary     service.ItineraryService
	notifications service.NotificationService
	invites       service.InviteService
	logger        *zap.Logger
}

func NewAdminHandler(
	tripCfg config.TripConfig,
	auth *middleware.AdminAuth,
	reports service.ReportService,
	itinerary service.ItineraryService,
	notifications service.NotificationService,
	invites service.InviteService,
	logger *zap.Logger,
) *AdminHandler {
	return &AdminHandler{
		trip:          tripCfg,
		auth:          auth,
		reports:       reports,
		itinerary:     itinerary,
		notifications: notifications,
		invites:       invites,
		logger:        logger,
	}
}

func (h *AdminHandler) Dashboard(c *gin.Context) {
	ctx := c.Request.Context()
	dash, err := h.reports.Dashboard(ctx)
	if err != nil {
		h.fail(c, err)
		return
	}
	overview, err := h.notifications.Overview(ctx)
	if err != nil {
		h.fail(c, err)
		return
	}
	events, err := h.itinerary.List(ctx)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.HTML(http.StatusOK, "admin", adminPage{
		Trip:      h.trip,
		Notice:    c.Query("notice"),
		Param:     h.auth.Param(),
		Secret:    h.auth.Secret(c),
		Dashboard: dash,
		Overview:  overview,
		Events:    events,
		NewEvent:  model.TripEvent{EventDate: h.trip.StartDate, EventTime: model.NewClockTime(18, 0)},
	})
}

func (h *AdminHandler) CreateEvent(c *gin.Context) {
	input, problem := eventForm(c)
	if problem != "" {
		h.back(c, problem)
		return
	}
	event, err := h.itinerary.Create(c.Request.Context(), input)
	switch {
	case errors.Is(err, service.ErrTripEventTitleRequired):
		h.back(c, "Event title is required.")
		return
	case err != nil:
		h.fail(c, err)
		return
	}

	// The event stays even when the announcement fails.
	result, err := h.notifications.AnnounceEvent(c.Request.Context(), event)
	if err != nil {
		h.logger.Warn("new event announcement failed", zap.Error(err))
		h.back(c, "Event added. Announcement could not be sent.")
		return
	}
	h.back(c, "Event added. "+describeDispatch(result, "Announcement sent."))
}

func (h *AdminHandler) UpdateEvent(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.back(c, "Unknown event.")
		return
	}
	input, problem := eventForm(c)
	if problem != "" {
		h.back(c, problem)
		return
	}
	_, err = h.itinerary.Update(c.Request.Context(), id, input)
	switch {
	case errors.Is(err, service.ErrTripEventNotFound):
		h.back(c, "Unknown event.")
	case errors.Is(err, service.ErrTripEventTitleRequired):
		h.back(c, "Event title is required.")
	case err != nil:
		h.fail(c, err)
	default:
		h.back(c, "Event updated.")
	}
}

func (h *AdminHandler) DeleteEvent(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.back(c, "Unknown event.")
		return
	}
	err = h.itinerary.Delete(c.Request.Context(), id)
	switch {
	case errors.Is(err, service.ErrTripEventNotFound):
		h.back(c, "Unknown event.")
	case err != nil:
		h.fail(c, err)
	default:
		h.back(c, "Event deleted.")
	}
}

func (h *AdminHandler) NotifyTomorrow(c *gin.Context) {
	result, err := h.notifications.SendEventsTomorrow(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	h.back(c, describeDispatch(result, "Reminder emails sent."))
}

func (h *AdminHandler) NotifyPassport(c *gin.Context) {
	result, err := h.notifications.SendPassportReminder(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	h.back(c, describeDispatch(result, "Passport reminder sent."))
}

func (h *AdminHandler) CreateInvite(c *gin.Context) {
	input := service.CreateInviteInput{
		Token:     c.PostForm("token"),
		GuestName: c.PostForm("guest_name"),
		VideoURL:  c.PostForm("video_url"),
		HomeCity:  c.PostForm("home_city"),
	}
	switch c.PostForm("needs_passport") {
	case "yes":
		input.NeedsPassport = boolPtr(true)
	case "no":
		input.NeedsPassport = boolPtr(false)
	}

	invite, err := h.invites.CreateInvite(c.Request.Context(), input)
	switch {
	case errors.Is(err, service.ErrInviteTokenTaken):
		h.back(c, "That invite code is already in use.")
	case err != nil:
		h.fail(c, err)
	default:
		h.back(c, "Invite created: "+invite.Token)
	}
}

func (h *AdminHandler) InvitesCSV(c *gin.Context) {
	h.csv(c, "invites.csv", h.reports.WriteInvitesCSV)
}

func (h *AdminHandler) SurveyCSV(c *gin.Context) {
	h.csv(c, "survey.csv", h.reports.WriteSurveyCSV)
}

func (h *AdminHandler) csv(c *gin.Context, filename string, write func(ctx context.Context, w io.Writer) error) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Status(http.StatusOK)
	if err := write(c.Request.Context(), c.Writer); err != nil {
		h.logger.Error("csv export failed", zap.String("file", filename), zap.Error(err))
		_ = c.Error(err)
	}
}

// back returns to the dashboard with a one-line notice.
func (h *AdminHandler) back(c *gin.Context, notice string) {
	q := url.Values{}
	q.Set(h.auth.Param(), h.auth.Secret(c))
	if notice != "" {
		q.Set("notice", notice)
	}
	c.Redirect(http.StatusSeeOther, "/?"+q.Encode())
}

func (h *AdminHandler) fail(c *gin.Context, err error) {
	h.logger.Error("admin request failed", zap.String("route", c.FullPath()), zap.Error(err))
	_ = c.Error(err)
	c.String(http.StatusInternalServerError, "Something went wrong. Please try again.")
}

// eventForm reads the itinerary form. A non-empty problem is shown to the admin.
func eventForm(c *gin.Context) (input service.TripEventInput, problem string) {
	date, err := model.ParseDate(c.PostForm("event_date"))
	if err != nil {
		return input, "Invalid event date."
	}
	at, err := model.ParseClockTime(c.PostForm("event_time"))
	if err != nil {
		return input, "Invalid event time."
	}
	return service.TripEventInput{
		Title:       c.PostForm("title"),
		EventDate:   date,
		EventTime:   at,
		Location:    c.PostForm("location"),
		Description: c.PostForm("description"),
		BringItems:  model.ParseItems(c.PostForm("bring_items")),
	}, ""
}

// describeDispatch turns a batch result into the dashboard notice.
func describeDispatch(result service.DispatchResult, sent string) string {
	switch result.Outcome {
	case service.DispatchSent:
		return sent
	case service.DispatchNotConfigured:
		return "Missing mail settings. Configure the mail provider credentials."
	case service.DispatchNoRecipients:
		return "No guests have opted in for email updates."
	case service.DispatchNoEvents:
		return "No upcoming events to notify."
	case service.DispatchFailed:
		return fmt.Sprintf("Mail error for %s: %s", result.FailedAddress, result.Reason)
	}
	return strings.TrimSpace(string(result.Outcome))
}

func boolPtr(b bool) *bool { return &b }
