package notifications

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/smtp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"adlicense.backend/internal/config"
	"adlicense.backend/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init("development")
	m.Run()
}

func captureMail(t *testing.T) *[]string {
	t.Helper()
	var sent []string
	orig := smtpSendMail
	t.Cleanup(func() { smtpSendMail = orig })
	smtpSendMail = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		sent = append(sent, string(msg))
		return nil
	}
	return &sent
}

func TestMailer_SendLicenseKey(t *testing.T) {
	sent := captureMail(t)
	m := NewMailer(config.SMTPConfig{Host: "localhost", Port: 587, From: "no-reply@test"})

	expires := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, m.SendLicenseKey("user@example.com", "Ada", "AB12-CD34-EF56-GH78", expires))

	require.Len(t, *sent, 1)
	msg := (*sent)[0]
	require.Contains(t, msg, "AB12-CD34-EF56-GH78")
	require.Contains(t, msg, "October 1, 2026")
	require.Contains(t, msg, "Hello Ada")
	require.Contains(t, msg, "Content-Type: text/html")
}

func TestMailer_SendPaymentFailedAndKYCResult(t *testing.T) {
	sent := captureMail(t)
	m := NewMailer(config.SMTPConfig{Host: "localhost", Port: 587, From: "no-reply@test"})

	require.NoError(t, m.SendPaymentFailed("user@example.com", "", "Your payment has not been received. Please contact your bank."))
	require.NoError(t, m.SendKYCResult("user@example.com", "Ada", false, "document expired"))
	require.NoError(t, m.SendKYCResult("user@example.com", "Ada", true, ""))

	require.Len(t, *sent, 3)
	require.Contains(t, (*sent)[0], "contact your bank")
	require.Contains(t, (*sent)[1], "document expired")
	require.Contains(t, (*sent)[2], "Verification approved")
}

func TestTelegramClient_SendMessage(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.True(t, strings.HasPrefix(r.URL.Path, "/bottest-token/"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)

	c := NewTelegramClient(config.TelegramConfig{
		BotToken: "test-token",
		ChatID:   "42",
		APIBase:  srv.URL,
	})

	require.NoError(t, c.SendMessage(context.Background(), "hello"))
	require.Equal(t, "42", got["chat_id"])
	require.Equal(t, "hello", got["text"])
}

func TestTelegramClient_DisabledAndErrorStatus(t *testing.T) {
	// no token configured, silently skipped
	c := NewTelegramClient(config.TelegramConfig{})
	require.NoError(t, c.SendMessage(context.Background(), "ignored"))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)

	c = NewTelegramClient(config.TelegramConfig{BotToken: "t", ChatID: "1", APIBase: srv.URL})
	require.Error(t, c.SendMessage(context.Background(), "boom"))
}

func TestNotifier_SwallowsDeliveryFailures(t *testing.T) {
	orig := smtpSendMail
	t.Cleanup(func() { smtpSendMail = orig })
	smtpSendMail = func(string, smtp.Auth, string, []string, []byte) error {
		return context.DeadlineExceeded
	}

	n := NewNotifier(
		NewMailer(config.SMTPConfig{Host: "localhost", Port: 587}),
		NewTelegramClient(config.TelegramConfig{}),
	)

	// none of these panic or surface the failure
	n.Welcome(context.Background(), "u@example.com", "", "123456")
	n.LicenseIssued(context.Background(), "u@example.com", "", "K", time.Now())
	n.PaymentFailed(context.Background(), "u@example.com", "", "r")
	n.KYCReviewed(context.Background(), "u@example.com", "", true, "")
	n.ExpiryReminder(context.Background(), "u@example.com", "", "K", time.Now(), 3)
}
