package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"tripinvite/portal/internal/config"
)

func mailgunConfig(apiBase string) config.MailConfig {
	return config.MailConfig{
		Provider:  "mailgun",
		FromEmail: "trip@example.com",
		FromName:  "Trip Crew",
		Timeout:   5 * time.Second,
		Mailgun: config.MailgunConfig{
			APIKey:  "key-123",
			Domain:  "mg.example.com",
			APIBase: apiBase,
		},
	}
}

func TestMailgunSender_Send(t *testing.T) {
	var (
		mu  sync.Mutex
		got []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != "api" || pass != "key-123" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if r.Method != http.MethodPost || !strings.HasSuffix(r.URL.Path, "/messages") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if r.FormValue("to") == "bounce@example.com" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"message":"invalid recipient"}`))
			return
		}
		mu.Lock()
		got = append(got, r.FormValue("to")+"|"+r.FormValue("subject")+"|"+r.FormValue("text"))
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"<1@mg.example.com>","message":"Queued. Thank you."}`))
	}))
	defer srv.Close()

	sender, err := NewMailgunSender(mailgunConfig(srv.URL + "/v3"))
	require.NoError(t, err)

	require.NoError(t, sender.Send(context.Background(), "ana@example.com", "Hello", "Body text"))
	assert.Equal(t, []string{"ana@example.com|Hello|Body text"}, got)

	assert.Error(t, sender.Send(context.Background(), "bounce@example.com", "Hello", "Body"))
	assert.Error(t, sender.Send(context.Background(), "not an address", "Hello", "Body"))
}

func TestNewMailSender_MissingCredentials(t *testing.T) {
	cfg := mailgunConfig("")
	cfg.Mailgun.APIKey = ""
	assert.Nil(t, NewMailSender(cfg, zap.NewNop()))

	cfg = mailgunConfig("")
	cfg.FromEmail = ""
	assert.Nil(t, NewMailSender(cfg, zap.NewNop()))

	smtpCfg := config.MailConfig{Provider: "smtp", FromEmail: "trip@example.com"}
	assert.Nil(t, NewMailSender(smtpCfg, zap.NewNop()))

	assert.Nil(t, NewMailSender(config.MailConfig{Provider: "pigeon"}, zap.NewNop()))
}

func TestNewMailSender_Selects(t *testing.T) {
	assert.NotNil(t, NewMailSender(mailgunConfig(""), zap.NewNop()))

	smtpCfg := config.MailConfig{
		Provider:  "SMTP",
		FromEmail: "trip@example.com",
		SMTP:      config.SMTPConfig{Host: "localhost", Port: 2525},
	}
	sender := NewMailSender(smtpCfg, zap.NewNop())
	require.NotNil(t, sender)
	_, ok := sender.(*smtpSender)
	assert.True(t, ok)
}
