// Package delivery sends one-time passcodes to users, SMS first with an
// email fallback.
package delivery

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/manara-transit/backend/internal/domain"
	"github.com/manara-transit/backend/pkg/email"
	"github.com/manara-transit/backend/pkg/logger"
	"github.com/manara-transit/backend/pkg/sms"
)

const emailSubject = "Your OTP Code"

var ErrDeliveryFailed = errors.New("otp delivery failed")

type Gateway struct {
	sms      sms.Sender
	email    email.Sender
	timeout  time.Duration
	validFor time.Duration
}

// NewGateway builds a gateway. A nil sender disables its channel. Each send is
// bounded by timeout; validFor is only used in the message text.
func NewGateway(smsSender sms.Sender, emailSender email.Sender, timeout, validFor time.Duration) *Gateway {
	return &Gateway{
		sms:      smsSender,
		email:    emailSender,
		timeout:  timeout,
		validFor: validFor,
	}
}

// Deliver sends code to user and reports the channel that accepted it.
func (g *Gateway) Deliver(ctx context.Context, user *domain.User, code string) (domain.DeliveryChannel, error) {
	text := g.message(code)

	if g.sms != nil && user.PhoneNumber != "" {
		err := g.sendSMS(ctx, user.PhoneNumber, text)
		if err == nil {
			logger.Info("otp sent via sms", zap.String("user_id", user.ID.String()))
			return domain.DeliveryChannelSMS, nil
		}
		logger.Warn("sms delivery failed, falling back to email",
			zap.String("user_id", user.ID.String()), zap.Error(err))
	}

	if g.email != nil && user.Email != "" {
		err := g.sendEmail(ctx, user.Email, text)
		if err == nil {
			logger.Info("otp sent via email", zap.String("user_id", user.ID.String()))
			return domain.DeliveryChannelEmail, nil
		}
		logger.Error("email delivery failed",
			zap.String("user_id", user.ID.String()), zap.Error(err))
	}

	return "", ErrDeliveryFailed
}

func (g *Gateway) sendSMS(ctx context.Context, to, text string) error {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	return g.sms.Send(ctx, sms.SendSMSInput{To: to, Text: text})
}

func (g *Gateway) sendEmail(ctx context.Context, to, text string) error {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	return g.email.Send(ctx, email.SendEmailInput{To: to, Subject: emailSubject, Body: text})
}

func (g *Gateway) message(code string) string {
	return fmt.Sprintf("Your verification code is: %s. Valid for %d minutes.", code, int(g.validFor/time.Minute))
}
