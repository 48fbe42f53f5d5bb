package service

import (
	"context"
	"net"
	"net/textproto"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripinvite/portal/internal/config"
)

type smtpSession struct {
	commands []string
	data     string
}

// fakeSMTPServer accepts one connection, speaks just enough SMTP for
// net/smtp and reports what it received.
func fakeSMTPServer(t *testing.T) (config.MailConfig, <-chan smtpSession) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })

	done := make(chan smtpSession, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		_ = conn.SetDeadline(time.Now().Add(5 * time.Second))

		tp := textproto.NewConn(conn)
		var sess smtpSession
		defer func() { done <- sess }()

		_ = tp.PrintfLine("220 localhost ESMTP")
		for {
			line, err := tp.ReadLine()
			if err != nil {
				return
			}
			sess.commands = append(sess.commands, line)
			verb := strings.ToUpper(strings.SplitN(line, " ", 2)[0])
			switch verb {
			case "EHLO":
				_ = tp.PrintfLine("250-localhost")
				_ = tp.PrintfLine("250 8BITMIME")
			case "DATA":
				_ = tp.PrintfLine("354 go ahead")
				var lines []string
				for {
					l, err := tp.ReadLine()
					if err != nil {
						return
					}
					if l == "." {
						break
					}
					lines = append(lines, l)
				}
				sess.data = strings.Join(lines, "\r\n")
				_ = tp.PrintfLine("250 queued")
			case "QUIT":
				_ = tp.PrintfLine("221 bye")
				return
			default:
				_ = tp.PrintfLine("250 ok")
			}
		}
	}()

	host, port, err := net.SplitHostPort(ln.Addr().String())
	require.NoError(t, err)
	p, err := strconv.Atoi(port)
	require.NoError(t, err)
	cfg := config.MailConfig{
		Provider:  "smtp",
		FromEmail: "trip@example.com",
		FromName:  "Trip Crew",
		Timeout:   2 * time.Second,
		SMTP:      config.SMTPConfig{Host: host, Port: p},
	}
	return cfg, done
}

func TestSMTPSender_Send(t *testing.T) {
	cfg, done := fakeSMTPServer(t)
	sender, err := NewSMTPSender(cfg)
	require.NoError(t, err)

	err = sender.Send(context.Background(), "ana@example.com", "Flights are up", "Hi Ana,\nsee you there.\n")
	require.NoError(t, err)

	var sess smtpSession
	select {
	case sess = <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("smtp server did not finish")
	}

	assert.Contains(t, sess.commands, "MAIL FROM:<trip@example.com> BODY=8BITMIME")
	assert.Contains(t, sess.commands, "RCPT TO:<ana@example.com>")
	assert.Equal(t, "QUIT", sess.commands[len(sess.commands)-1])

	assert.Contains(t, sess.data, `From: "Trip Crew" <trip@example.com>`+"\r\n")
	assert.Contains(t, sess.data, "To: ana@example.com\r\n")
	assert.Contains(t, sess.data, "Subject: Flights are up\r\n")
	assert.Contains(t, sess.data, "Content-Type: text/plain; charset=UTF-8\r\n")
	assert.Contains(t, sess.data, "\r\n\r\nHi Ana,\r\nsee you there.")
}

func TestSMTPSender_MessageUsesCRLF(t *testing.T) {
	sender, err := NewSMTPSender(config.MailConfig{
		FromEmail: "trip@example.com",
		SMTP:      config.SMTPConfig{Host: "localhost", Port: 2525},
	})
	require.NoError(t, err)

	msg := string(sender.(*smtpSender).message("ana@example.com", "Café night", "line one\nline two\n"))

	assert.True(t, strings.HasSuffix(msg, "\r\n\r\nline one\r\nline two\r\n"))
	assert.NotContains(t, strings.ReplaceAll(msg, "\r\n", ""), "\n")
	assert.Contains(t, msg, "Subject: =?UTF-8?q?Caf=C3=A9_night?=\r\n")
	assert.Contains(t, msg, "From: trip@example.com\r\n")
}

func TestSMTPSender_GreetingTimeout(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })

	// Accept and hold the connection without ever sending the 220 greeting.
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		time.Sleep(2 * time.Second)
	}()

	_, port, err := net.SplitHostPort(ln.Addr().String())
	require.NoError(t, err)
	p, err := strconv.Atoi(port)
	require.NoError(t, err)

	sender, err := NewSMTPSender(config.MailConfig{
		FromEmail: "trip@example.com",
		Timeout:   100 * time.Millisecond,
		SMTP:      config.SMTPConfig{Host: "127.0.0.1", Port: p},
	})
	require.NoError(t, err)

	start := time.Now()
	err = sender.Send(context.Background(), "ana@example.com", "Hello", "Body")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "smtp handshake")
	assert.Less(t, time.Since(start), time.Second)
}

func TestSMTPSender_DialFailure(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	_, port, err := net.SplitHostPort(ln.Addr().String())
	require.NoError(t, err)
	require.NoError(t, ln.Close())
	p, err := strconv.Atoi(port)
	require.NoError(t, err)

	sender, err := NewSMTPSender(config.MailConfig{
		FromEmail: "trip@example.com",
		Timeout:   100 * time.Millisecond,
		SMTP:      config.SMTPConfig{Host: "127.0.0.1", Port: p},
	})
	require.NoError(t, err)

	err = sender.Send(context.Background(), "ana@example.com", "Hello", "Body")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dial smtp server")
}
