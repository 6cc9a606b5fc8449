package worker

import (
	"context"

	"github.com/manara-transit/backend/internal/config"
	"github.com/manara-transit/backend/internal/service"
	emailProvider "github.com/manara-transit/backend/pkg/email"
)

type Workers struct {
	EmailSender EmailSender
	OTPPurger   OTPPurger
}

type Deps struct {
	Services      *service.Services
	EmailProvider emailProvider.Sender
	Config        *config.Config
}

type EmailSender interface {
	SendWelcomeEmail(ctx context.Context, email string, fullName string) error
}

type OTPPurger interface {
	Purge(ctx context.Context) error
}

func NewWorkers(deps Deps) *Workers {
	return &Workers{
		EmailSender: newEmailSender(deps.EmailProvider, deps.Config.Email),
		OTPPurger:   newOTPPurger(deps.Services.OTPs),
	}
}
