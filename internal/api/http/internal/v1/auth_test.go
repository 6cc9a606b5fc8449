package v1

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/manara-transit/backend/internal/domain"
	"github.com/manara-transit/backend/internal/service"
)

var testTokens = &service.Tokens{
	AccessToken:  "access-token",
	AccessTTL:    15 * time.Minute,
	RefreshToken: uuid.MustParse("0192a0b4-6f1e-7c3a-9d2b-000000000001"),
	RefreshTTL:   240 * time.Hour,
}

func TestRegister(t *testing.T) {
	valid := map[string]any{
		"email":            "alice@example.com",
		"phone_number":     "+254700000001",
		"full_name":        "Alice Wanjiru",
		"password":         "s3cret-pass",
		"confirm_password": "s3cret-pass",
	}

	t.Run("created", func(t *testing.T) {
		api := newTestAPI(t)
		api.users.On("Register", mock.Anything, service.RegisterInput{
			Email:       "alice@example.com",
			PhoneNumber: "+254700000001",
			FullName:    "Alice Wanjiru",
			Password:    "s3cret-pass",
		}).Return(&domain.User{
			ID:          api.userID,
			Email:       "alice@example.com",
			PhoneNumber: "+254700000001",
			FullName:    "Alice Wanjiru",
			UserType:    domain.UserTypeCommuter,
		}, nil).Once()

		w := api.do(t, http.MethodPost, "/auth/register", valid, "")

		assert.Equal(t, http.StatusCreated, w.Code)
		resp := decode[registerResponse](t, w)
		assert.Equal(t, api.userID, resp.User.ID)
		assert.False(t, resp.User.IsVerified)
		assert.Equal(t, domain.UserTypeCommuter, resp.User.UserType)
	})

	t.Run("passwords differ", func(t *testing.T) {
		api := newTestAPI(t)
		body := map[string]any{}
		for k, v := range valid {
			body[k] = v
		}
		body["confirm_password"] = "other-pass"

		w := api.do(t, http.MethodPost, "/auth/register", body, "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decode[ValidationErrorStruct](t, w)
		assert.Equal(t, ValidationErrorCode, resp.ErrorCode)
		if assert.Len(t, resp.Errors, 1) {
			assert.Equal(t, "confirm_password", resp.Errors[0].FieldKey)
		}
	})

	t.Run("duplicate", func(t *testing.T) {
		api := newTestAPI(t)
		api.users.On("Register", mock.Anything, mock.Anything).Return(nil, service.ErrUserAlreadyExist).Once()

		w := api.do(t, http.MethodPost, "/auth/register", valid, "")

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, ErrorCode(UserAlreadyExistsCode), decode[ErrorStruct](t, w).ErrorCode)
	})
}

func TestLogin(t *testing.T) {
	body := map[string]any{"email": "alice@example.com", "password": "s3cret-pass"}
	matchInput := mock.MatchedBy(func(in service.LoginInput) bool {
		return in.Email == "alice@example.com" && in.Password == "s3cret-pass"
	})

	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"ok", nil, http.StatusOK},
		{"bad credentials", service.ErrInvalidCredentials, http.StatusUnauthorized},
		{"not verified", service.ErrAccountNotVerified, http.StatusForbidden},
		{"storage down", fmt.Errorf("get user by email failed: %w", assert.AnError), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newTestAPI(t)
			if tt.err != nil {
				api.users.On("Login", mock.Anything, matchInput).Return(nil, tt.err).Once()
			} else {
				api.users.On("Login", mock.Anything, matchInput).Return(testTokens, nil).Once()
			}

			w := api.do(t, http.MethodPost, "/auth/login", body, "")

			assert.Equal(t, tt.wantCode, w.Code)
			if tt.err == nil {
				resp := decode[tokensResponse](t, w)
				assert.Equal(t, "access-token", resp.Access)
				assert.Equal(t, testTokens.RefreshToken, resp.Refresh)
			}
		})
	}
}

func TestRequestOTP(t *testing.T) {
	t.Run("sent by email", func(t *testing.T) {
		api := newTestAPI(t)
		api.users.On("RequestOTP", mock.Anything, service.RequestOTPInput{
			Requester: service.Requester{Email: "alice@example.com"},
		}).Return(&service.RequestOTPResult{
			Contact:        "alice@example.com",
			DeliveryMethod: domain.DeliveryChannelEmail,
			ExpiresIn:      10,
		}, nil).Once()

		w := api.do(t, http.MethodPost, "/auth/request-otp", map[string]any{"email": "alice@example.com"}, "")

		assert.Equal(t, http.StatusOK, w.Code)
		resp := decode[requestOTPResponse](t, w)
		assert.Equal(t, "OTP sent successfully", resp.Message)
		assert.Equal(t, "10 minutes", resp.ExpiresIn)
		assert.Equal(t, "alice@example.com", resp.Contact)
		assert.Equal(t, domain.DeliveryChannelEmail, resp.DeliveryMethod)
	})

	t.Run("identifier rules", func(t *testing.T) {
		tests := []struct {
			name      string
			body      map[string]any
			wantField string
		}{
			{"neither", map[string]any{}, "non_field_errors"},
			{"both", map[string]any{"email": "alice@example.com", "phone_number": "+254700000001"}, "non_field_errors"},
			{"bad phone", map[string]any{"phone_number": "07-abc"}, "phone_number"},
			{"bad email", map[string]any{"email": "alice"}, "email"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				api := newTestAPI(t)

				w := api.do(t, http.MethodPost, "/auth/request-otp", tt.body, "")

				assert.Equal(t, http.StatusBadRequest, w.Code)
				resp := decode[ValidationErrorStruct](t, w)
				if assert.Len(t, resp.Errors, 1) {
					assert.Equal(t, tt.wantField, resp.Errors[0].FieldKey)
				}
			})
		}
	})

	t.Run("service errors", func(t *testing.T) {
		tests := []struct {
			name     string
			err      error
			wantCode int
			wantErr  ErrorCode
		}{
			{"unknown user", service.ErrUserNotFound, http.StatusNotFound, UserNotFoundCode},
			{"cooldown", service.ErrOTPCooldown, http.StatusTooManyRequests, OTPCooldownCode},
			{"delivery failed", fmt.Errorf("deliver otp: %w", service.ErrDeliveryFailed), http.StatusInternalServerError, OTPDeliveryFailedCode},
			{"unexpected", assert.AnError, http.StatusInternalServerError, InternalErrorCode},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				api := newTestAPI(t)
				api.users.On("RequestOTP", mock.Anything, mock.Anything).Return(nil, tt.err).Once()

				w := api.do(t, http.MethodPost, "/auth/request-otp", map[string]any{"phone_number": "+254700000001"}, "")

				assert.Equal(t, tt.wantCode, w.Code)
				assert.Equal(t, tt.wantErr, decode[ErrorStruct](t, w).ErrorCode)
			})
		}
	})

	t.Run("cooldown headers", func(t *testing.T) {
		api := newTestAPI(t)
		api.users.On("RequestOTP", mock.Anything, mock.Anything).Return(nil, service.ErrOTPCooldown).Once()

		w := api.do(t, http.MethodPost, "/auth/request-otp", map[string]any{"email": "alice@example.com"}, "")

		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Equal(t, "60", w.Header().Get("Retry-After"))
		assert.Equal(t, "60 seconds", decode[ErrorStruct](t, w).WaitTime)
	})
}

func TestVerifyOTP(t *testing.T) {
	body := map[string]any{"email": "alice@example.com", "code": "123456"}
	matchInput := mock.MatchedBy(func(in service.VerifyOTPInput) bool {
		return in.Email == "alice@example.com" && in.PhoneNumber == "" && in.Code == "123456"
	})

	t.Run("verified", func(t *testing.T) {
		api := newTestAPI(t)
		api.users.On("VerifyOTP", mock.Anything, matchInput).Return(testTokens, nil).Once()

		w := api.do(t, http.MethodPost, "/auth/verify-otp", body, "")

		assert.Equal(t, http.StatusOK, w.Code)
		resp := decode[verifyOTPResponse](t, w)
		assert.True(t, resp.IsVerified)
		assert.Equal(t, "access-token", resp.Tokens.Access)
		assert.Equal(t, testTokens.RefreshToken, resp.Tokens.Refresh)
	})

	t.Run("wrong code reports attempts left", func(t *testing.T) {
		api := newTestAPI(t)
		api.users.On("VerifyOTP", mock.Anything, matchInput).Return(nil, &service.VerificationError{AttemptsLeft: 2}).Once()

		w := api.do(t, http.MethodPost, "/auth/verify-otp", body, "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decode[ErrorStruct](t, w)
		assert.Equal(t, ErrorCode(InvalidOTPCode), resp.ErrorCode)
		if assert.NotNil(t, resp.AttemptsLeft) {
			assert.Equal(t, 2, *resp.AttemptsLeft)
		}
	})

	t.Run("last attempt reports zero", func(t *testing.T) {
		api := newTestAPI(t)
		api.users.On("VerifyOTP", mock.Anything, matchInput).Return(nil, &service.VerificationError{AttemptsLeft: 0}).Once()

		w := api.do(t, http.MethodPost, "/auth/verify-otp", body, "")

		resp := decode[ErrorStruct](t, w)
		if assert.NotNil(t, resp.AttemptsLeft) {
			assert.Equal(t, 0, *resp.AttemptsLeft)
		}
	})

	t.Run("budget spent", func(t *testing.T) {
		api := newTestAPI(t)
		locked := &service.RateLimitError{Err: service.ErrTooManyAttempts, RetryAfter: 5 * time.Minute}
		api.users.On("VerifyOTP", mock.Anything, matchInput).Return(nil, locked).Once()

		w := api.do(t, http.MethodPost, "/auth/verify-otp", body, "")

		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Equal(t, "300", w.Header().Get("Retry-After"))
		resp := decode[ErrorStruct](t, w)
		assert.Equal(t, ErrorCode(OTPTooManyAttemptsCode), resp.ErrorCode)
		assert.Equal(t, "300 seconds", resp.WaitTime)
	})

	t.Run("unknown user", func(t *testing.T) {
		api := newTestAPI(t)
		api.users.On("VerifyOTP", mock.Anything, matchInput).Return(nil, service.ErrUserNotFound).Once()

		w := api.do(t, http.MethodPost, "/auth/verify-otp", body, "")

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("malformed code", func(t *testing.T) {
		for _, code := range []string{"12345", "1234567", "12a456", ""} {
			api := newTestAPI(t)

			w := api.do(t, http.MethodPost, "/auth/verify-otp", map[string]any{"email": "alice@example.com", "code": code}, "")

			assert.Equal(t, http.StatusBadRequest, w.Code, code)
			resp := decode[ValidationErrorStruct](t, w)
			if assert.Len(t, resp.Errors, 1, code) {
				assert.Equal(t, "code", resp.Errors[0].FieldKey)
			}
		}
	})
}

func TestRefreshTokens(t *testing.T) {
	t.Run("rotated", func(t *testing.T) {
		api := newTestAPI(t)
		api.users.On("RefreshTokens", mock.Anything, "old-refresh", mock.Anything, mock.Anything).Return(testTokens, nil).Once()

		w := api.do(t, http.MethodPost, "/auth/token/refresh", map[string]any{"refresh": "old-refresh"}, "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "access-token", decode[tokensResponse](t, w).Access)
	})

	t.Run("rejected", func(t *testing.T) {
		api := newTestAPI(t)
		api.users.On("RefreshTokens", mock.Anything, "old-refresh", mock.Anything, mock.Anything).Return(nil, service.ErrInvalidRefreshToken).Once()

		w := api.do(t, http.MethodPost, "/auth/token/refresh", map[string]any{"refresh": "old-refresh"}, "")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, ErrorCode(InvalidRefreshTokenCode), decode[ErrorStruct](t, w).ErrorCode)
	})
}
