package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tripinvite/portal/internal/handler"
	"tripinvite/portal/internal/handler/middleware"
)

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the portal HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), rootOpts)
		},
	}
}

func runServe(ctx context.Context, opts *RootOptions) error {
	a, err := newApp(opts)
	if err != nil {
		return err
	}
	defer a.close()
	cfg, logger := a.cfg, a.logger

	// 8. Initialize handlers
	adminAuth := middleware.NewAdminAuth(cfg.Admin)
	if !adminAuth.Enabled() {
		logger.Warn("admin secret not configured; dashboard disabled")
	}
	adminHandler := handler.NewAdminHandler(cfg.Trip, adminAuth, a.reports, a.itinerary, a.notifications, a.invites, logger)
	portalHandler := handler.NewPortalHandler(cfg.Trip, a.invites, a.itinerary, a.guard, adminAuth, adminHandler, logger, nil)
	apiHandler := handler.NewAPIHandler(a.invites, a.guard, logger)

	// 9. Setup router
	router, err := handler.SetupRouter(cfg, logger, adminAuth, portalHandler, adminHandler, apiHandler)
	if err != nil {
		return fmt.Errorf("setup router: %w", err)
	}

	// 10. Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// 11. Start server with graceful shutdown
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", zap.String("addr", addr), zap.String("trip", cfg.Trip.Name))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}
	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.GracefulShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	logger.Info("server exited gracefully")
	return nil
}
