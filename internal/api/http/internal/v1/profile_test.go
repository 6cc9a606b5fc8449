package v1

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/manara-transit/backend/internal/domain"
	"github.com/manara-transit/backend/internal/service"
)

func testProfile() *domain.UserProfile {
	return &domain.UserProfile{
		Email:       "alice@example.com",
		FirstName:   "Alice",
		LastName:    "Wanjiru",
		PhoneNumber: "+254700000001",
	}
}

func TestGetProfile(t *testing.T) {
	api := newTestAPI(t)
	api.profiles.On("Get", mock.Anything, api.userID).Return(testProfile(), nil).Once()

	w := api.do(t, http.MethodGet, "/profile", nil, api.token)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decode[domain.UserProfile](t, w)
	assert.Equal(t, "Alice", resp.FirstName)
	assert.Equal(t, "alice@example.com", resp.Email)
}

func TestUpdateProfile(t *testing.T) {
	phone := "+254700000002"

	t.Run("no changes returns profile", func(t *testing.T) {
		api := newTestAPI(t)
		api.profiles.On("RequestUpdate", mock.Anything, api.userID, mock.Anything).
			Return(&service.UpdateProfileResult{Profile: testProfile()}, nil).Once()

		w := api.do(t, http.MethodPatch, "/profile", map[string]any{"first_name": "Alice"}, api.token)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Wanjiru", decode[domain.UserProfile](t, w).LastName)
	})

	for _, method := range []string{http.MethodPut, http.MethodPatch} {
		t.Run(method+" asks for verification", func(t *testing.T) {
			api := newTestAPI(t)
			api.profiles.On("RequestUpdate", mock.Anything, api.userID, mock.MatchedBy(func(in service.UpdateProfileInput) bool {
				return in.PhoneNumber != nil && *in.PhoneNumber == phone && in.FirstName == nil && in.LastName == nil
			})).Return(&service.UpdateProfileResult{
				Profile:              testProfile(),
				VerificationRequired: true,
				DeliveryMethod:       domain.DeliveryChannelSMS,
			}, nil).Once()

			w := api.do(t, method, "/profile", map[string]any{"phone_number": phone}, api.token)

			assert.Equal(t, http.StatusOK, w.Code)
			resp := decode[updateProfileResponse](t, w)
			assert.True(t, resp.VerificationRequired)
			assert.Equal(t, domain.DeliveryChannelSMS, resp.DeliveryMethod)
		})
	}

	t.Run("delivery failure", func(t *testing.T) {
		api := newTestAPI(t)
		api.profiles.On("RequestUpdate", mock.Anything, api.userID, mock.Anything).Return(nil, service.ErrDeliveryFailed).Once()

		w := api.do(t, http.MethodPatch, "/profile", map[string]any{"phone_number": phone}, api.token)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, ErrorCode(OTPDeliveryFailedCode), decode[ErrorStruct](t, w).ErrorCode)
	})

	t.Run("invalid phone", func(t *testing.T) {
		api := newTestAPI(t)

		w := api.do(t, http.MethodPatch, "/profile", map[string]any{"phone_number": "abc"}, api.token)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestVerifyProfileUpdate(t *testing.T) {
	body := map[string]any{"code": "654321"}

	t.Run("applied", func(t *testing.T) {
		api := newTestAPI(t)
		updated := testProfile()
		updated.PhoneNumber = "+254700000002"
		updated.IsVerified = true
		api.profiles.On("VerifyUpdate", mock.Anything, api.userID, "654321").Return(updated, nil).Once()

		w := api.do(t, http.MethodPost, "/profile/verify-otp", body, api.token)

		assert.Equal(t, http.StatusOK, w.Code)
		resp := decode[verifyProfileResponse](t, w)
		assert.Equal(t, "Profile updated successfully", resp.Message)
		assert.Equal(t, "+254700000002", resp.Profile.PhoneNumber)
		assert.True(t, resp.Profile.IsVerified)
	})

	tests := []struct {
		name     string
		err      error
		wantCode int
		wantErr  ErrorCode
	}{
		{"session expired", service.ErrProfileSessionExpired, http.StatusBadRequest, ProfileSessionExpiredCode},
		{"wrong code", &service.VerificationError{AttemptsLeft: 1}, http.StatusBadRequest, InvalidOTPCode},
		{"budget spent", service.ErrTooManyAttempts, http.StatusTooManyRequests, OTPTooManyAttemptsCode},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newTestAPI(t)
			api.profiles.On("VerifyUpdate", mock.Anything, api.userID, "654321").Return(nil, tt.err).Once()

			w := api.do(t, http.MethodPost, "/profile/verify-otp", body, api.token)

			assert.Equal(t, tt.wantCode, w.Code)
			assert.Equal(t, tt.wantErr, decode[ErrorStruct](t, w).ErrorCode)
		})
	}
}

func TestDeleteAccount(t *testing.T) {
	api := newTestAPI(t)
	api.users.On("DeleteAccount", mock.Anything, api.userID).Return(nil).Once()

	w := api.do(t, http.MethodDelete, "/account", nil, api.token)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestDeleteAccount_Unauthorized(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(t, http.MethodDelete, "/account", nil, "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
