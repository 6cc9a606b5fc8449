package worker

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/manara-transit/backend/internal/config"
	mock_service "github.com/manara-transit/backend/internal/service/mock"
	emailProvider "github.com/manara-transit/backend/pkg/email"
	mock_email "github.com/manara-transit/backend/pkg/email/mock"
)

func welcomeConfig(t *testing.T, enabled bool) config.EmailConfig {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "welcome.html"), []byte("<p>Karibu {{.FullName}}!</p>"), 0o600))

	return config.EmailConfig{
		Enabled:      enabled,
		TemplatesDir: dir,
		Templates:    config.EmailTemplates{Welcome: "welcome.html"},
	}
}

func TestEmailSender_SendWelcomeEmail(t *testing.T) {
	sender := new(mock_email.EmailSender)
	sender.On("Send", mock.Anything, emailProvider.SendEmailInput{
		To:      "alice@example.com",
		Subject: "Welcome to Manara",
		Body:    "<p>Karibu Alice Wanjiru!</p>",
		HTML:    true,
	}).Return(nil).Once()

	s := newEmailSender(sender, welcomeConfig(t, true))

	require.NoError(t, s.SendWelcomeEmail(context.Background(), "alice@example.com", "Alice Wanjiru"))
	sender.AssertExpectations(t)
}

func TestEmailSender_Disabled(t *testing.T) {
	sender := new(mock_email.EmailSender)

	s := newEmailSender(sender, welcomeConfig(t, false))

	require.NoError(t, s.SendWelcomeEmail(context.Background(), "alice@example.com", "Alice Wanjiru"))
	sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestEmailSender_SendFails(t *testing.T) {
	sender := new(mock_email.EmailSender)
	sender.On("Send", mock.Anything, mock.Anything).Return(assert.AnError).Once()

	s := newEmailSender(sender, welcomeConfig(t, true))

	err := s.SendWelcomeEmail(context.Background(), "alice@example.com", "Alice Wanjiru")
	assert.ErrorIs(t, err, assert.AnError)
}

func TestEmailSender_MissingTemplate(t *testing.T) {
	sender := new(mock_email.EmailSender)
	cfg := welcomeConfig(t, true)
	cfg.Templates.Welcome = "missing.html"

	s := newEmailSender(sender, cfg)

	assert.Error(t, s.SendWelcomeEmail(context.Background(), "alice@example.com", "Alice Wanjiru"))
	sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestOTPPurger_Purge(t *testing.T) {
	otps := new(mock_service.OTPs)
	otps.On("PurgeExpired", mock.Anything).Return(int64(7), nil).Once()

	require.NoError(t, newOTPPurger(otps).Purge(context.Background()))
	otps.AssertExpectations(t)
}

func TestOTPPurger_Error(t *testing.T) {
	otps := new(mock_service.OTPs)
	otps.On("PurgeExpired", mock.Anything).Return(int64(0), assert.AnError).Once()

	err := newOTPPurger(otps).Purge(context.Background())
	assert.ErrorIs(t, err, assert.AnError)
}
