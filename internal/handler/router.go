package handler

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tripinvite/portal/internal/config"
	"tripinvite/portal/internal/handler/middleware"
)

func SetupRouter(
	cfg *config.Config,
	logger *zap.Logger,
	adminAuth *middleware.AdminAuth,
	portalHandler *PortalHandler,
	adminHandler *AdminHandler,
	apiHandler *APIHandler,
) (*gin.Engine, error) {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	tmpl, err := LoadTemplates()
	if err != nil {
		return nil, err
	}

	r := gin.New()
	// The lookup guard keys on ClientIP, so forwarded headers only count from known proxies.
	if err := r.SetTrustedProxies(cfg.Server.TrustedProxies); err != nil {
		return nil, fmt.Errorf("trusted proxies: %w", err)
	}
	r.SetHTMLTemplate(tmpl)

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORS(cfg.CORS))

	// Health check
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Guest portal
	r.GET("/", portalHandler.Entry)
	r.POST("/", portalHandler.SubmitToken)
	r.POST("/gate/name", portalHandler.ConfirmName)
	r.POST("/gate/video", portalHandler.ConfirmVideo)
	r.POST("/rsvp", portalHandler.SubmitRSVP)
	r.POST("/hub/origin", portalHandler.UpdateOrigin)
	r.POST("/survey", portalHandler.SubmitSurvey)
	r.GET("/calendar.ics", portalHandler.Calendar)
	if cfg.Trip.GalleryDir != "" {
		r.Static("/gallery", cfg.Trip.GalleryDir)
	}

	// Dashboard actions
	admin := r.Group("/admin")
	admin.Use(middleware.RequireAdmin(adminAuth))
	{
		admin.POST("/events", adminHandler.CreateEvent)
		admin.POST("/events/:id", adminHandler.UpdateEvent)
		admin.POST("/events/:id/delete", adminHandler.DeleteEvent)
		admin.POST("/notify/tomorrow", adminHandler.NotifyTomorrow)
		admin.POST("/notify/passport", adminHandler.NotifyPassport)
		admin.POST("/invites", adminHandler.CreateInvite)
		admin.GET("/invites.csv", adminHandler.InvitesCSV)
		admin.GET("/survey.csv", adminHandler.SurveyCSV)
	}

	// JSON API
	api := r.Group("/api/v1")
	{
		api.GET("/invites/:token/state", apiHandler.InviteState)

		adminAPI := api.Group("/admin")
		adminAPI.Use(middleware.RequireAdmin(adminAuth))
		adminAPI.GET("/invites", apiHandler.ListInvites)
		adminAPI.POST("/invites", apiHandler.CreateInvite)
	}

	return r, nil
}
