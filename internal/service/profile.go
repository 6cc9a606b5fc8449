package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/manara-transit/backend/internal/config"
	"github.com/manara-transit/backend/internal/domain"
	"github.com/manara-transit/backend/internal/repository"
	"github.com/manara-transit/backend/pkg/clock"
	"github.com/manara-transit/backend/pkg/logger"
)

const profileOTPPrefix = "profile:"

type profileService struct {
	profileRepository repository.Profiles
	userRepository    repository.Users
	otps              OTPs
	pending           PendingProfileStore
	cooldowns         CooldownStore
	attempts          AttemptStore
	clock             clock.Clocker
	otpConfig         config.OTPConfig
}

func newProfileService(profileRepository repository.Profiles,
	userRepository repository.Users,
	otps OTPs,
	pending PendingProfileStore,
	cooldowns CooldownStore,
	attempts AttemptStore,
	clk clock.Clocker,
	otpConfig config.OTPConfig,
) *profileService {
	return &profileService{
		profileRepository: profileRepository,
		userRepository:    userRepository,
		otps:              otps,
		pending:           pending,
		cooldowns:         cooldowns,
		attempts:          attempts,
		clock:             clk,
		otpConfig:         otpConfig,
	}
}

// Get returns the user's profile, creating an empty one on first access.
func (s *profileService) Get(ctx context.Context, userID uuid.UUID) (*domain.UserProfile, error) {
	profile, err := s.profileRepository.GetByUserID(ctx, userID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get profile failed: %w", err)
	}

	user, err := s.userRepository.GetOneByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user by id failed: %w", err)
	}

	now := s.clock.Now()
	profile = &domain.UserProfile{
		UserID:    userID,
		Email:     user.Email,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.profileRepository.Create(ctx, profile); err != nil {
		if errors.Is(err, domain.ErrDuplicateEntry) {
			// created concurrently
			return s.profileRepository.GetByUserID(ctx, userID)
		}
		return nil, fmt.Errorf("create profile failed: %w", err)
	}

	return profile, nil
}

type UpdateProfileInput struct {
	FirstName   *string
	LastName    *string
	PhoneNumber *string
}

type UpdateProfileResult struct {
	Profile              *domain.UserProfile
	VerificationRequired bool
	DeliveryMethod       domain.DeliveryChannel
}

// RequestUpdate stores the fields that differ from the current profile and
// sends an OTP to confirm them. Nothing is written to the profile yet.
func (s *profileService) RequestUpdate(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (*UpdateProfileResult, error) {
	profile, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	change := domain.NewProfileChange(profile, input.FirstName, input.LastName, input.PhoneNumber)
	if change.Empty() {
		return &UpdateProfileResult{Profile: profile}, nil
	}

	identifier := profileOTPPrefix + userID.String()
	allowed, err := s.cooldowns.Allow(ctx, identifier)
	if err != nil {
		return nil, fmt.Errorf("check profile otp cooldown failed: %w", err)
	}
	if !allowed {
		return nil, &RateLimitError{Err: ErrOTPCooldown, RetryAfter: s.otpConfig.Cooldown}
	}

	user, err := s.userRepository.GetOneByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user by id failed: %w", err)
	}

	if err := s.pending.Save(ctx, userID, change, s.otpConfig.PendingTTL); err != nil {
		return nil, fmt.Errorf("save pending profile change failed: %w", err)
	}

	_, channel, err := s.otps.Create(ctx, user)
	if err != nil {
		if delErr := s.pending.Delete(context.WithoutCancel(ctx), userID); delErr != nil {
			logger.Error("drop pending profile change failed", zap.String("user_id", userID.String()), zap.Error(delErr))
		}
		return nil, err
	}

	if err := s.cooldowns.Start(ctx, identifier, s.otpConfig.Cooldown); err != nil {
		logger.Error("start profile otp cooldown failed", zap.String("user_id", userID.String()), zap.Error(err))
	}
	if err := s.attempts.Reset(ctx, identifier); err != nil {
		logger.Error("reset profile otp attempts failed", zap.String("user_id", userID.String()), zap.Error(err))
	}

	return &UpdateProfileResult{
		Profile:              profile,
		VerificationRequired: true,
		DeliveryMethod:       channel,
	}, nil
}

// VerifyUpdate applies exactly the pending fields once code is verified.
func (s *profileService) VerifyUpdate(ctx context.Context, userID uuid.UUID, code string) (*domain.UserProfile, error) {
	change, err := s.pending.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrProfileSessionExpired
		}
		return nil, fmt.Errorf("get pending profile change failed: %w", err)
	}

	identifier := profileOTPPrefix + userID.String()
	if err := checkAttempts(ctx, s.attempts, identifier, s.otpConfig); err != nil {
		return nil, err
	}

	user, err := s.userRepository.GetOneByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user by id failed: %w", err)
	}

	if err := s.otps.Verify(ctx, user, code); err != nil {
		if errors.Is(err, ErrInvalidOTP) {
			return nil, recordFailure(ctx, s.attempts, identifier, s.otpConfig)
		}
		return nil, err
	}

	profile, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	change.Apply(profile)
	profile.IsVerified = true
	profile.UpdatedAt = s.clock.Now()

	if err := s.profileRepository.Update(ctx, profile); err != nil {
		return nil, fmt.Errorf("update profile failed: %w", err)
	}

	if err := s.pending.Delete(ctx, userID); err != nil {
		logger.Error("drop pending profile change failed", zap.String("user_id", userID.String()), zap.Error(err))
	}
	if err := s.attempts.Reset(ctx, identifier); err != nil {
		logger.Error("reset profile otp attempts failed", zap.String("user_id", userID.String()), zap.Error(err))
	}

	return profile, nil
}
