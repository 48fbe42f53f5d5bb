package handler

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tripinvite/portal/internal/calendar"
	"tripinvite/portal/internal/config"
	"tripinvite/portal/internal/gate"
	"tripinvite/portal/internal/handler/middleware"
	"tripinvite/portal/internal/model"
	"tripinvite/portal/internal/service"
	"tripinvite/portal/internal/trip"
)

// PortalHandler serves the guest entry point, the gate form posts and the
// calendar download.
type PortalHandler struct {
	trip      config.TripConfig
	invites   service.InviteService
	itinerary service.ItineraryService
	guard     service.LookupGuard
	adminAuth *middleware.AdminAuth
	admin     *AdminHandler
	logger    *zap.Logger
	now       func() time.Time
}

func NewPortalHandler(
	tripCfg config.TripConfig,
	invites service.InviteService,
	itinerary service.ItineraryService,
	guard service.LookupGuard,
	adminAuth *middleware.AdminAuth,
	admin *AdminHandler,
	logger *zap.Logger,
	now func() time.Time,
) *PortalHandler {
	if now == nil {
		now = time.Now
	}
	return &PortalHandler{
		trip:      tripCfg,
		invites:   invites,
		itinerary: itinerary,
		guard:     guard,
		adminAuth: adminAuth,
		admin:     admin,
		logger:    logger,
		now:       now,
	}
}

// Entry renders whatever the presented token currently unlocks, or the admin
// dashboard when the admin parameter carries the right secret.
func (h *PortalHandler) Entry(c *gin.Context) {
	if secret := c.Query(h.adminAuth.Param()); secret != "" && h.adminAuth.Match(secret) {
		h.admin.Dashboard(c)
		return
	}

	view, err := h.invites.Resolve(c.Request.Context(), tokenFromQuery(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	status := http.StatusOK
	// Only misses are throttled; a stored token always gets its screen.
	if view.State == gate.InvalidToken {
		if h.blocked(c) || h.recordMiss(c) {
			h.renderTooMany(c)
			return
		}
		status = http.StatusNotFound
	}
	h.render(c, status, view, "")
}

// SubmitToken turns the manual code entry into a portal link.
func (h *PortalHandler) SubmitToken(c *gin.Context) {
	h.redirect(c, c.PostForm("token"))
}

func (h *PortalHandler) ConfirmName(c *gin.Context) {
	token := c.PostForm("token")
	err := h.invites.ConfirmName(c.Request.Context(), token, c.PostForm("name"))
	h.afterAction(c, token, err)
}

func (h *PortalHandler) ConfirmVideo(c *gin.Context) {
	token := c.PostForm("token")
	err := h.invites.ConfirmVideo(c.Request.Context(), token)
	h.afterAction(c, token, err)
}

func (h *PortalHandler) SubmitRSVP(c *gin.Context) {
	token := c.PostForm("token")
	_, err := h.invites.SubmitRSVP(c.Request.Context(), token, model.RSVPChoice(c.PostForm("choice")))
	h.afterAction(c, token, err)
}

func (h *PortalHandler) UpdateOrigin(c *gin.Context) {
	token := c.PostForm("token")
	_, err := h.invites.UpdateFlightOrigin(c.Request.Context(), token, c.PostForm("origin"))
	h.afterAction(c, token, err)
}

func (h *PortalHandler) SubmitSurvey(c *gin.Context) {
	token := c.PostForm("token")
	err := h.invites.SubmitSurvey(c.Request.Context(), token, service.SurveyInput{
		LiquorPreferences: c.PostFormArray("liquor"),
		EventPreferences:  c.PostFormArray("events"),
		EventsOther:       c.PostForm("events_other"),
		ArrivalWindow:     c.PostForm("arrival_window"),
		PlusOne:           c.PostForm("plus_one"),
		BudgetPreference:  c.PostForm("budget_preference"),
		Email:             c.PostForm("email"),
		NotifyOptIn:       c.PostForm("notify_opt_in") != "",
		Notes:             c.PostForm("notes"),
	})
	h.afterAction(c, token, err)
}

// Calendar serves the .ics download to guests who reached the hub.
func (h *PortalHandler) Calendar(c *gin.Context) {
	view, err := h.invites.Resolve(c.Request.Context(), tokenFromQuery(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	if view.State != gate.Hub {
		c.String(http.StatusNotFound, "calendar not available")
		return
	}
	events, err := h.itinerary.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	body := calendar.Export(h.trip, events, h.now())
	c.Header("Content-Disposition", `attachment; filename="`+calendar.Filename(h.trip)+`"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(body))
}

// afterAction redirects back to the portal, which re-resolves the invite.
// Actions the current screen does not offer are dropped silently.
func (h *PortalHandler) afterAction(c *gin.Context, token string, err error) {
	switch {
	case err == nil,
		errors.Is(err, service.ErrActionNotAvailable),
		errors.Is(err, service.ErrInviteNotFound):
		h.redirect(c, token)
	case errors.Is(err, service.ErrGuestNameRequired):
		h.rerender(c, token, "Please enter your name.")
	case errors.Is(err, service.ErrInvalidRSVPChoice):
		h.rerender(c, token, "Please choose yes, maybe or no.")
	default:
		h.fail(c, err)
	}
}

func (h *PortalHandler) rerender(c *gin.Context, token, message string) {
	view, err := h.invites.Resolve(c.Request.Context(), token)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.render(c, http.StatusUnprocessableEntity, view, message)
}

func (h *PortalHandler) render(c *gin.Context, status int, view *service.GateView, message string) {
	page := portalPage{
		Trip:    h.trip,
		Error:   message,
		Token:   view.Token,
		Invite:  view.Invite,
		Choices: model.RSVPChoices,
	}
	if view.State == gate.Hub {
		hub, err := h.hub(c, view)
		if err != nil {
			h.fail(c, err)
			return
		}
		page.Hub = hub
		page.Refresh = h.trip.AutoRefreshSeconds
	}
	c.HTML(status, stateTemplates[view.State], page)
}

func (h *PortalHandler) hub(c *gin.Context, view *service.GateView) (*hubData, error) {
	events, err := h.itinerary.List(c.Request.Context())
	if err != nil {
		return nil, err
	}
	gallery, err := trip.Gallery(h.trip.GalleryDir, h.trip.GalleryURLs)
	if err != nil {
		h.logger.Warn("gallery unavailable", zap.Error(err))
	}
	origin := trip.Origin(h.trip, view.Invite)
	today := model.DateOf(h.now().In(h.trip.Location()))
	return &hubData{
		Origin:      origin,
		FlightsURL:  trip.FlightsLink(h.trip, origin),
		CalendarURL: "/calendar.ics?" + url.Values{"t": {view.Token}}.Encode(),
		Passport:    trip.Passport(h.trip, today),
		Events:      events,
		Gallery:     gallery,
	}, nil
}

func (h *PortalHandler) blocked(c *gin.Context) bool {
	blocked, err := h.guard.Blocked(c.Request.Context(), c.ClientIP())
	if err != nil {
		h.logger.Warn("lookup guard unavailable", zap.Error(err))
		return false
	}
	return blocked
}

// recordMiss counts an unknown token and reports whether the client is now blocked.
func (h *PortalHandler) recordMiss(c *gin.Context) bool {
	blocked, err := h.guard.RecordMiss(c.Request.Context(), c.ClientIP())
	if err != nil {
		h.logger.Warn("lookup guard unavailable", zap.Error(err))
		return false
	}
	return blocked
}

func (h *PortalHandler) renderTooMany(c *gin.Context) {
	c.HTML(http.StatusTooManyRequests, "too_many", portalPage{Trip: h.trip})
}

func (h *PortalHandler) redirect(c *gin.Context, token string) {
	token = strings.TrimSpace(token)
	if token == "" {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}
	c.Redirect(http.StatusSeeOther, "/?"+url.Values{"t": {token}}.Encode())
}

func (h *PortalHandler) fail(c *gin.Context, err error) {
	h.logger.Error("portal request failed", zap.String("route", c.FullPath()), zap.Error(err))
	_ = c.Error(err)
	c.String(http.StatusInternalServerError, "Something went wrong. Please try again.")
}

func tokenFromQuery(c *gin.Context) string {
	if t := c.Query("t"); t != "" {
		return strings.TrimSpace(t)
	}
	return strings.TrimSpace(c.Query("token"))
}
