package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/manara-transit/backend/internal/domain"
	"github.com/manara-transit/backend/internal/repository"
	"github.com/manara-transit/backend/pkg/clock"
	"github.com/manara-transit/backend/pkg/logger"
	"github.com/manara-transit/backend/pkg/otp"
)

// Deliverer sends a code to the user over whichever channel accepts it.
type Deliverer interface {
	Deliver(ctx context.Context, user *domain.User, code string) (domain.DeliveryChannel, error)
}

type otpService struct {
	repo      repository.OTPCodes
	generator otp.Generator
	gateway   Deliverer
	clock     clock.Clocker
	ttl       time.Duration
}

func newOTPService(repo repository.OTPCodes, generator otp.Generator, gateway Deliverer, clk clock.Clocker, ttl time.Duration) *otpService {
	return &otpService{
		repo:      repo,
		generator: generator,
		gateway:   gateway,
		clock:     clk,
		ttl:       ttl,
	}
}

// Create supersedes the user's live codes, issues a new one and delivers it.
// An undelivered code is removed again so it can never be verified.
func (s *otpService) Create(ctx context.Context, user *domain.User) (*domain.OTPCode, domain.DeliveryChannel, error) {
	now := s.clock.Now()

	if err := s.repo.InvalidateLive(ctx, user.ID, now); err != nil {
		return nil, "", fmt.Errorf("invalidate live otp failed: %w", err)
	}

	code, err := s.generator.Generate()
	if err != nil {
		return nil, "", fmt.Errorf("generate otp failed: %w", err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, "", fmt.Errorf("generate otp id failed: %w", err)
	}

	otpCode := &domain.OTPCode{
		ID:        id,
		UserID:    user.ID,
		Code:      code,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.repo.Create(ctx, otpCode); err != nil {
		return nil, "", fmt.Errorf("create otp failed: %w", err)
	}

	channel, err := s.gateway.Deliver(ctx, user, code)
	if err != nil {
		if delErr := s.repo.Delete(context.WithoutCancel(ctx), otpCode.ID); delErr != nil {
			logger.Error("delete undelivered otp failed",
				zap.String("otp_id", otpCode.ID.String()), zap.Error(delErr))
		}
		if errors.Is(err, ErrDeliveryFailed) {
			return nil, "", ErrDeliveryFailed
		}
		return nil, "", fmt.Errorf("deliver otp failed: %w", err)
	}

	return otpCode, channel, nil
}

// Verify consumes code if it is the user's live code. Wrong, expired and
// already used codes all yield ErrInvalidOTP.
func (s *otpService) Verify(ctx context.Context, user *domain.User, code string) error {
	if err := s.repo.Consume(ctx, user.ID, code, s.clock.Now()); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrInvalidOTP
		}
		return fmt.Errorf("consume otp failed: %w", err)
	}

	return nil
}

func (s *otpService) PurgeExpired(ctx context.Context) (int64, error) {
	n, err := s.repo.PurgeExpired(ctx, s.clock.Now())
	if err != nil {
		return 0, fmt.Errorf("purge expired otp failed: %w", err)
	}

	return n, nil
}
