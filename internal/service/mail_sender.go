package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"tripinvite/portal/internal/config"
)

// MailSender delivers one plain-text message to one recipient.
type MailSender interface {
	Send(ctx context.Context, to string, subject string, body string) error
}

// NewMailSender builds the transport selected by cfg.Provider.
// It returns nil when the provider's credentials are missing; callers treat
// a nil sender as "email not configured".
func NewMailSender(cfg config.MailConfig, logger *zap.Logger) MailSender {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "smtp":
		sender, err := NewSMTPSender(cfg)
		if err != nil {
			logger.Warn("smtp sender disabled", zap.Error(err))
			return nil
		}
		return sender
	case "", "mailgun":
		sender, err := NewMailgunSender(cfg)
		if err != nil {
			logger.Warn("mailgun sender disabled", zap.Error(err))
			return nil
		}
		return sender
	default:
		logger.Warn("unknown mail provider, sending disabled", zap.String("provider", cfg.Provider))
		return nil
	}
}
