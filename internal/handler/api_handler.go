package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tripinvite/portal/internal/gate"
	"tripinvite/portal/internal/model"
	"tripinvite/portal/internal/service"
	"tripinvite/portal/pkg/response"
)

type APIHandler struct {
	invites service.InviteService
	guard   service.LookupGuard
	logger  *zap.Logger
}

func NewAPIHandler(invites service.InviteService, guard service.LookupGuard, logger *zap.Logger) *APIHandler {
	return &APIHandler{invites: invites, guard: guard, logger: logger}
}

type InviteStateResponse struct {
	Token      string           `json:"token"`
	State      gate.State       `json:"state"`
	GuestName  string           `json:"guest_name"`
	RSVPChoice model.RSVPChoice `json:"rsvp_choice"`
	SurveyDone bool             `json:"survey_done"`
}

// InviteState reports which screen a token currently resolves to.
func (h *APIHandler) InviteState(c *gin.Context) {
	ctx := c.Request.Context()
	view, err := h.invites.Resolve(ctx, c.Param("token"))
	if err != nil {
		h.logger.Error("resolve invite failed", zap.Error(err))
		response.InternalError(c, "failed to resolve invite")
		return
	}
	if view.Invite == nil {
		client := c.ClientIP()
		if blocked, err := h.guard.Blocked(ctx, client); err == nil && blocked {
			response.TooManyRequests(c, "too many attempts")
			return
		}
		blocked, err := h.guard.RecordMiss(ctx, client)
		if err != nil {
			h.logger.Warn("lookup guard unavailable", zap.Error(err))
		}
		if blocked {
			response.TooManyRequests(c, "too many attempts")
			return
		}
		response.NotFound(c, "invite not found")
		return
	}

	response.Success(c, InviteStateResponse{
		Token:      view.Token,
		State:      view.State,
		GuestName:  view.Invite.GuestName,
		RSVPChoice: view.Invite.RSVPChoice,
		SurveyDone: view.Invite.SurveyDone,
	})
}

func (h *APIHandler) ListInvites(c *gin.Context) {
	invites, err := h.invites.ListInvites(c.Request.Context())
	if err != nil {
		h.logger.Error("list invites failed", zap.Error(err))
		response.InternalError(c, "failed to list invites")
		return
	}
	response.Success(c, invites)
}

type CreateInviteRequest struct {
	Token         string `json:"token"`
	GuestName     string `json:"guest_name"`
	VideoURL      string `json:"video_url"`
	HomeCity      string `json:"home_city"`
	NeedsPassport *bool  `json:"needs_passport"`
}

func (h *APIHandler) CreateInvite(c *gin.Context) {
	var req CreateInviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	invite, err := h.invites.CreateInvite(c.Request.Context(), service.CreateInviteInput{
		Token:         req.Token,
		GuestName:     req.GuestName,
		VideoURL:      req.VideoURL,
		HomeCity:      req.HomeCity,
		NeedsPassport: req.NeedsPassport,
	})
	if err != nil {
		if errors.Is(err, service.ErrInviteTokenTaken) {
			response.Conflict(c, "invite token already in use")
			return
		}
		h.logger.Error("create invite failed", zap.Error(err))
		response.InternalError(c, "failed to create invite")
		return
	}
	response.Created(c, invite)
}
