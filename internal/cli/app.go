package cli

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"tripinvite/portal/internal/config"
	"tripinvite/portal/internal/model"
	"tripinvite/portal/internal/repository"
	"tripinvite/portal/internal/service"
)

// app is the wired dependency graph shared by every command.
type app struct {
	cfg    *config.Config
	logger *zap.Logger
	db     *gorm.DB
	store  repository.StateStore

	invites       service.InviteService
	itinerary     service.ItineraryService
	notifications service.NotificationService
	reports       service.ReportService
	guard         service.LookupGuard

	closers []func() error
}

func newApp(opts *RootOptions) (*app, error) {
	// 1. Load configuration
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	// 2. Initialize logger
	logger, err := newLogger(cfg.Log)
	if err != nil {
		return nil, err
	}
	a := &app{cfg: cfg, logger: logger}

	// 3. Connect to the invite store
	a.db, err = config.NewDB(cfg.Database)
	if err != nil {
		return nil, err
	}
	if sqlDB, err := a.db.DB(); err == nil {
		a.closers = append(a.closers, sqlDB.Close)
	}

	// 4. Auto-migrate if enabled
	if cfg.Database.AutoMigrate() {
		if err := model.AutoMigrate(a.db); err != nil {
			a.close()
			return nil, fmt.Errorf("auto-migrate: %w", err)
		}
		logger.Debug("database migration completed", zap.String("driver", cfg.Database.Driver))
	}

	// 5. Initialize state store (Redis or in-memory)
	switch cfg.State.Backend {
	case "redis":
		client, err := config.NewRedisClient(cfg.Database.Redis)
		if err != nil {
			a.close()
			return nil, err
		}
		a.closers = append(a.closers, client.Close)
		a.store = repository.NewRedisStateStore(client)
		logger.Info("using Redis state store")
	case "memory", "":
		a.store = repository.NewMemoryStateStore()
		logger.Info("using in-memory state store")
	default:
		a.close()
		return nil, fmt.Errorf("unknown state backend %q", cfg.State.Backend)
	}

	// 6. Initialize repositories
	inviteRepo := repository.NewGormInviteRepository(a.db)
	eventRepo := repository.NewGormInviteEventRepository(a.db)
	tripRepo := repository.NewGormTripEventRepository(a.db)
	surveyRepo := repository.NewGormSurveyRepository(a.db)

	// 7. Initialize services
	sender := service.NewMailSender(cfg.Mail, logger)
	a.invites = service.NewInviteService(inviteRepo, eventRepo, surveyRepo, cfg.Trip.AllowRSVPRedo, logger, time.Now)
	a.itinerary = service.NewItineraryService(tripRepo, cfg.Trip.Location(), time.Now)
	a.notifications = service.NewNotificationService(
		sender, a.itinerary, surveyRepo, a.store, cfg.Trip, cfg.Mail.Timeout, logger, time.Now,
	)
	a.reports = service.NewReportService(inviteRepo, surveyRepo)
	a.guard = service.NewLookupGuard(a.store, cfg.Guard.MaxMisses, cfg.Guard.Window)

	return a, nil
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.logger.Warn("close failed", zap.Error(err))
		}
	}
	a.closers = nil
	_ = a.logger.Sync()
}

// newLogger builds a JSON production logger or a console development logger.
func newLogger(cfg config.LogConfig) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if cfg.Format != "json" {
		zc = zap.NewDevelopmentConfig()
	}
	if cfg.Level != "" {
		level, err := zap.ParseAtomicLevel(cfg.Level)
		if err != nil {
			return nil, fmt.Errorf("parse log level: %w", err)
		}
		zc.Level = level
	}
	return zc.Build()
}
