package service

import (
	"context"
	"fmt"
	"net/http"
	"net/mail"
	"strings"

	"github.com/mailgun/mailgun-go/v4"

	"tripinvite/portal/internal/config"
)

type mailgunSender struct {
	mg   *mailgun.MailgunImpl
	from string
}

func NewMailgunSender(cfg config.MailConfig) (MailSender, error) {
	if strings.TrimSpace(cfg.Mailgun.APIKey) == "" || strings.TrimSpace(cfg.Mailgun.Domain) == "" {
		return nil, fmt.Errorf("mailgun api_key and domain are required")
	}
	from, err := fromHeader(cfg)
	if err != nil {
		return nil, err
	}

	mg := mailgun.NewMailgun(cfg.Mailgun.Domain, cfg.Mailgun.APIKey)
	if cfg.Mailgun.APIBase != "" {
		mg.SetAPIBase(cfg.Mailgun.APIBase)
	}
	mg.SetClient(&http.Client{Timeout: cfg.Timeout})
	return &mailgunSender{mg: mg, from: from}, nil
}

func (s *mailgunSender) Send(ctx context.Context, to string, subject string, body string) error {
	to, err := recipient(to)
	if err != nil {
		return err
	}
	msg := s.mg.NewMessage(s.from, subject, body, to)
	if _, _, err := s.mg.Send(ctx, msg); err != nil {
		return fmt.Errorf("mailgun send: %w", err)
	}
	return nil
}

// fromHeader renders "Name <addr>" or just the address.
func fromHeader(cfg config.MailConfig) (string, error) {
	if strings.TrimSpace(cfg.FromEmail) == "" {
		return "", fmt.Errorf("mail from_email is required")
	}
	if _, err := mail.ParseAddress(cfg.FromEmail); err != nil {
		return "", fmt.Errorf("invalid mail from_email: %w", err)
	}
	if strings.TrimSpace(cfg.FromName) == "" {
		return cfg.FromEmail, nil
	}
	return (&mail.Address{Name: cfg.FromName, Address: cfg.FromEmail}).String(), nil
}

func recipient(to string) (string, error) {
	to = strings.TrimSpace(to)
	if to == "" {
		return "", fmt.Errorf("recipient email is required")
	}
	if _, err := mail.ParseAddress(to); err != nil {
		return "", fmt.Errorf("invalid recipient email: %w", err)
	}
	return to, nil
}
