package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/manara-transit/backend/internal/delivery"
)

var (
	ErrUserAlreadyExist    = errors.New("user already exist")
	ErrUserNotFound        = errors.New("user not found")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrAccountNotVerified  = errors.New("account not verified")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrIdentifierRequired  = errors.New("exactly one of email or phone_number is required")

	ErrOTPCooldown     = errors.New("please wait before requesting another otp")
	ErrTooManyAttempts = errors.New("too many failed attempts, please request a new otp")
	ErrInvalidOTP      = errors.New("invalid or expired otp")
	ErrDeliveryFailed  = delivery.ErrDeliveryFailed

	ErrProfileSessionExpired = errors.New("profile update session expired")

	ErrTripNotFound  = errors.New("trip not found")
	ErrRouteNotFound = errors.New("route not found")
)

// VerificationError is returned for a wrong, expired or used code and
// carries how many attempts the requester has left.
type VerificationError struct {
	AttemptsLeft int
}

func (e *VerificationError) Error() string {
	return fmt.Sprintf("%s: %d attempts left", ErrInvalidOTP, e.AttemptsLeft)
}

func (e *VerificationError) Unwrap() error {
	return ErrInvalidOTP
}

// RateLimitError wraps ErrOTPCooldown or ErrTooManyAttempts with how long
// the requester has to wait before trying again.
type RateLimitError struct {
	Err        error
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return e.Err.Error()
}

func (e *RateLimitError) Unwrap() error {
	return e.Err
}

// ValidationError reports an invalid input field detected by business rules.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}
