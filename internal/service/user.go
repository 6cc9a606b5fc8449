package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/manara-transit/backend/internal/config"
	"github.com/manara-transit/backend/internal/domain"
	"github.com/manara-transit/backend/internal/repository"
	"github.com/manara-transit/backend/pkg/auth"
	"github.com/manara-transit/backend/pkg/clock"
	"github.com/manara-transit/backend/pkg/hash"
	"github.com/manara-transit/backend/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type userService struct {
	userRepository           repository.Users
	refreshSessionRepository repository.RefreshSession
	otps                     OTPs
	sessions                 *sessionIssuer
	cooldowns                CooldownStore
	attempts                 AttemptStore
	hasher                   hash.PasswordHasher
	tokenManager             auth.TokenManager
	tasks                    TaskEnqueuer
	clock                    clock.Clocker
	otpConfig                config.OTPConfig
}

func newUserService(userRepository repository.Users,
	refreshSessionRepository repository.RefreshSession,
	otps OTPs,
	sessions *sessionIssuer,
	cooldowns CooldownStore,
	attempts AttemptStore,
	hasher hash.PasswordHasher,
	tokenManager auth.TokenManager,
	tasks TaskEnqueuer,
	clk clock.Clocker,
	otpConfig config.OTPConfig,
) *userService {
	return &userService{
		userRepository:           userRepository,
		refreshSessionRepository: refreshSessionRepository,
		otps:                     otps,
		sessions:                 sessions,
		cooldowns:                cooldowns,
		attempts:                 attempts,
		hasher:                   hasher,
		tokenManager:             tokenManager,
		tasks:                    tasks,
		clock:                    clk,
		otpConfig:                otpConfig,
	}
}

type RegisterInput struct {
	Email       string
	PhoneNumber string
	FullName    string
	UserType    domain.UserType
	Password    string
}

func (s *userService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	passwordHash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password failed: %w", err)
	}

	userID, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate user id failed: %w", err)
	}

	userType := input.UserType
	if userType == "" {
		userType = domain.UserTypeCommuter
	}

	user := &domain.User{
		ID:           userID,
		Email:        input.Email,
		PhoneNumber:  input.PhoneNumber,
		FullName:     input.FullName,
		UserType:     userType,
		PasswordHash: passwordHash,
		IsActive:     true,
		IsVerified:   false,
		DateJoined:   s.clock.Now(),
	}

	if err := s.userRepository.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateEntry) {
			return nil, ErrUserAlreadyExist
		}
		return nil, fmt.Errorf("create user failed: %w", err)
	}

	return user, nil
}

type LoginInput struct {
	Email     string
	Password  string
	UserAgent string
	UserIP    string
}

func (s *userService) Login(ctx context.Context, input LoginInput) (*Tokens, error) {
	user, err := s.userRepository.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user by email failed: %w", err)
	}

	if !user.IsActive {
		return nil, ErrInvalidCredentials
	}

	if err := s.hasher.Compare(user.PasswordHash, input.Password); err != nil {
		if errors.Is(err, hash.ErrMismatchedPassword) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("compare password failed: %w", err)
	}

	if !user.IsVerified {
		return nil, ErrAccountNotVerified
	}

	return s.sessions.createSession(ctx, user, input.UserAgent, input.UserIP)
}

// Requester names an account by exactly one of email or phone number.
type Requester struct {
	Email       string
	PhoneNumber string
}

// Identifier returns the value used to key cooldowns and attempt counters.
func (r Requester) Identifier() (string, error) {
	switch {
	case r.Email != "" && r.PhoneNumber == "":
		return r.Email, nil
	case r.PhoneNumber != "" && r.Email == "":
		return r.PhoneNumber, nil
	default:
		return "", ErrIdentifierRequired
	}
}

type RequestOTPInput struct {
	Requester
}

type RequestOTPResult struct {
	Contact        string
	DeliveryMethod domain.DeliveryChannel
	ExpiresIn      int // minutes
}

func (s *userService) RequestOTP(ctx context.Context, input RequestOTPInput) (*RequestOTPResult, error) {
	identifier, err := input.Identifier()
	if err != nil {
		return nil, err
	}

	user, err := s.findRequester(ctx, input.Requester)
	if err != nil {
		return nil, err
	}

	allowed, err := s.cooldowns.Allow(ctx, identifier)
	if err != nil {
		return nil, fmt.Errorf("check otp cooldown failed: %w", err)
	}
	if !allowed {
		return nil, &RateLimitError{Err: ErrOTPCooldown, RetryAfter: s.otpConfig.Cooldown}
	}

	_, channel, err := s.otps.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	// Cache failures after delivery are logged, not returned.
	if err := s.cooldowns.Start(ctx, identifier, s.otpConfig.Cooldown); err != nil {
		logger.Error("start otp cooldown failed", zap.String("identifier", identifier), zap.Error(err))
	}
	if err := s.attempts.Reset(ctx, identifier); err != nil {
		logger.Error("reset otp attempts failed", zap.String("identifier", identifier), zap.Error(err))
	}

	return &RequestOTPResult{
		Contact:        identifier,
		DeliveryMethod: channel,
		ExpiresIn:      int(s.otpConfig.TTL.Minutes()),
	}, nil
}

type VerifyOTPInput struct {
	Requester
	Code      string
	UserAgent string
	UserIP    string
}

func (s *userService) VerifyOTP(ctx context.Context, input VerifyOTPInput) (*Tokens, error) {
	identifier, err := input.Identifier()
	if err != nil {
		return nil, err
	}

	if err := checkAttempts(ctx, s.attempts, identifier, s.otpConfig); err != nil {
		return nil, err
	}

	user, err := s.findRequester(ctx, input.Requester)
	if err != nil {
		return nil, err
	}

	if err := s.otps.Verify(ctx, user, input.Code); err != nil {
		if errors.Is(err, ErrInvalidOTP) {
			return nil, recordFailure(ctx, s.attempts, identifier, s.otpConfig)
		}
		return nil, err
	}

	firstVerification := !user.IsVerified
	if err := s.userRepository.MarkVerified(ctx, user.ID); err != nil {
		return nil, fmt.Errorf("mark user verified failed: %w", err)
	}
	user.IsVerified = true

	if err := s.attempts.Reset(ctx, identifier); err != nil {
		logger.Error("reset otp attempts failed", zap.String("identifier", identifier), zap.Error(err))
	}

	tokens, err := s.sessions.createSession(ctx, user, input.UserAgent, input.UserIP)
	if err != nil {
		return nil, err
	}

	if firstVerification && s.tasks != nil {
		if err := s.tasks.EnqueueWelcomeEmail(ctx, user.Email, user.FullName); err != nil {
			logger.Warn("enqueue welcome email failed", zap.String("user_id", user.ID.String()), zap.Error(err))
		}
	}

	return tokens, nil
}

func (s *userService) findRequester(ctx context.Context, r Requester) (*domain.User, error) {
	var (
		user *domain.User
		err  error
	)
	if r.Email != "" {
		user, err = s.userRepository.GetByEmail(ctx, r.Email)
	} else {
		user, err = s.userRepository.GetByPhone(ctx, r.PhoneNumber)
	}
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user failed: %w", err)
	}
	// closed accounts cannot be reopened through an otp
	if !user.IsActive {
		return nil, ErrUserNotFound
	}

	return user, nil
}

func (s *userService) RefreshTokens(ctx context.Context, refreshToken string, userAgent string, userIP string) (*Tokens, error) {
	token, err := s.tokenManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}

	session, err := s.refreshSessionRepository.GetByToken(ctx, *token)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, fmt.Errorf("get refresh session failed: %w", err)
	}

	if err := s.refreshSessionRepository.Delete(ctx, session.ID); err != nil {
		return nil, fmt.Errorf("delete refresh session failed: %w", err)
	}

	if session.Expired(s.clock.Now()) {
		return nil, ErrInvalidRefreshToken
	}

	user, err := s.userRepository.GetOneByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, fmt.Errorf("get user by id failed: %w", err)
	}

	if !user.IsActive {
		return nil, ErrInvalidRefreshToken
	}

	return s.sessions.createSession(ctx, user, userAgent, userIP)
}

func (s *userService) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	if err := s.userRepository.Deactivate(ctx, userID); err != nil {
		return fmt.Errorf("deactivate user failed: %w", err)
	}

	return nil
}

func (s *userService) GetOneByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.userRepository.GetOneByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user by id failed: %w", err)
	}

	return user, nil
}

// checkAttempts refuses verification once the identifier's budget is spent.
func checkAttempts(ctx context.Context, attempts AttemptStore, identifier string, cfg config.OTPConfig) error {
	remaining, err := attempts.Remaining(ctx, identifier, cfg.MaxAttempts)
	if err != nil {
		return fmt.Errorf("get otp attempts failed: %w", err)
	}
	if remaining <= 0 {
		// the lock lifts when a new code is issued or the counter expires
		return &RateLimitError{Err: ErrTooManyAttempts, RetryAfter: cfg.AttemptsTTL}
	}

	return nil
}

func recordFailure(ctx context.Context, attempts AttemptStore, identifier string, cfg config.OTPConfig) error {
	count, err := attempts.RecordFailure(ctx, identifier, cfg.AttemptsTTL)
	if err != nil {
		return fmt.Errorf("record otp failure failed: %w", err)
	}

	left := cfg.MaxAttempts - int(count)
	if left < 0 {
		left = 0
	}

	return &VerificationError{AttemptsLeft: left}
}
