package worker

import (
	"context"
	"fmt"

	"github.com/manara-transit/backend/internal/config"
	emailProvider "github.com/manara-transit/backend/pkg/email"
	"github.com/manara-transit/backend/pkg/logger"
	"go.uber.org/zap"
)

type emailSender struct {
	sender emailProvider.Sender
	config config.EmailConfig
}

func newEmailSender(
	sender emailProvider.Sender,
	config config.EmailConfig,
) *emailSender {
	return &emailSender{
		sender: sender,
		config: config,
	}
}

type welcomeEmailInput struct {
	FullName string
}

func (s *emailSender) SendWelcomeEmail(ctx context.Context, email string, fullName string) error {
	if !s.config.Enabled {
		logger.Debug("welcome email skipped, email disabled", zap.String("to", email))
		return nil
	}

	sendInput := emailProvider.SendEmailInput{Subject: "Welcome to Manara", To: email}

	if err := sendInput.GenerateBodyFromHTML(s.config.TemplatesDir, s.config.Templates.Welcome, welcomeEmailInput{fullName}); err != nil {
		return fmt.Errorf("generate email failed: %w", err)
	}

	if err := s.sender.Send(ctx, sendInput); err != nil {
		return fmt.Errorf("send email failed: %w", err)
	}

	return nil
}
