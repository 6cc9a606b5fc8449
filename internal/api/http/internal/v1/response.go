package v1

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/manara-transit/backend/internal/service"
	"github.com/manara-transit/backend/pkg/logger"
	"go.uber.org/zap"
)

// defaultRetryAfter is used when the error does not say how long to wait.
const defaultRetryAfter = 60 * time.Second

func errorResponse(c *gin.Context, status int, code ErrorCode) {
	c.AbortWithStatusJSON(status, getErrorStruct(code))
}

func validationErrorResponse(c *gin.Context, err error) {
	var verr validator.ValidationErrors
	if !errors.As(err, &verr) {
		fieldErrorResponse(c, "non_field_errors", "invalid request body")
		return
	}

	out := make([]ValidationError, len(verr))
	for i, ferr := range verr {
		out[i] = ValidationError{ferr.Field(), msgForTag(ferr.Tag(), ferr.Param())}
	}
	c.AbortWithStatusJSON(http.StatusBadRequest, ValidationErrorStruct{
		ErrorCode:    ValidationErrorCode,
		ErrorMessage: string(errorMessages[ValidationErrorCode]),
		Errors:       out,
	})
}

func fieldErrorResponse(c *gin.Context, field string, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, ValidationErrorStruct{
		ErrorCode:    ValidationErrorCode,
		ErrorMessage: string(errorMessages[ValidationErrorCode]),
		Errors:       []ValidationError{{FieldKey: field, ErrorMessage: message}},
	})
}

func rateLimitedResponse(c *gin.Context, code ErrorCode, err error) {
	wait := defaultRetryAfter
	var rlErr *service.RateLimitError
	if errors.As(err, &rlErr) && rlErr.RetryAfter > 0 {
		wait = rlErr.RetryAfter
	}
	seconds := int((wait + time.Second - 1) / time.Second)

	resp := getErrorStruct(code)
	resp.WaitTime = fmt.Sprintf("%d seconds", seconds)
	c.Header("Retry-After", strconv.Itoa(seconds))
	c.AbortWithStatusJSON(http.StatusTooManyRequests, resp)
}

// serviceErrorResponse maps service errors to HTTP responses. Anything
// unrecognised is logged and reported as 500.
func serviceErrorResponse(c *gin.Context, err error) {
	var (
		verifyErr *service.VerificationError
		fieldErr  *service.ValidationError
	)

	switch {
	case errors.As(err, &fieldErr):
		fieldErrorResponse(c, fieldErr.Field, fieldErr.Message)
	case errors.Is(err, service.ErrIdentifierRequired):
		fieldErrorResponse(c, "non_field_errors", err.Error())
	case errors.As(err, &verifyErr):
		resp := getErrorStruct(InvalidOTPCode)
		left := verifyErr.AttemptsLeft
		resp.AttemptsLeft = &left
		c.AbortWithStatusJSON(http.StatusBadRequest, resp)
	case errors.Is(err, service.ErrInvalidOTP):
		errorResponse(c, http.StatusBadRequest, InvalidOTPCode)
	case errors.Is(err, service.ErrOTPCooldown):
		rateLimitedResponse(c, OTPCooldownCode, err)
	case errors.Is(err, service.ErrTooManyAttempts):
		rateLimitedResponse(c, OTPTooManyAttemptsCode, err)
	case errors.Is(err, service.ErrUserNotFound):
		errorResponse(c, http.StatusNotFound, UserNotFoundCode)
	case errors.Is(err, service.ErrTripNotFound):
		errorResponse(c, http.StatusNotFound, TripNotFoundCode)
	case errors.Is(err, service.ErrRouteNotFound):
		errorResponse(c, http.StatusNotFound, RouteNotFoundCode)
	case errors.Is(err, service.ErrUserAlreadyExist):
		errorResponse(c, http.StatusConflict, UserAlreadyExistsCode)
	case errors.Is(err, service.ErrInvalidCredentials):
		errorResponse(c, http.StatusUnauthorized, InvalidCredentialsCode)
	case errors.Is(err, service.ErrAccountNotVerified):
		errorResponse(c, http.StatusForbidden, AccountNotVerifiedCode)
	case errors.Is(err, service.ErrInvalidRefreshToken):
		errorResponse(c, http.StatusUnauthorized, InvalidRefreshTokenCode)
	case errors.Is(err, service.ErrProfileSessionExpired):
		errorResponse(c, http.StatusBadRequest, ProfileSessionExpiredCode)
	case errors.Is(err, service.ErrDeliveryFailed):
		logger.Error("otp delivery failed", zap.String("path", c.FullPath()), zap.Error(err))
		errorResponse(c, http.StatusInternalServerError, OTPDeliveryFailedCode)
	default:
		logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		errorResponse(c, http.StatusInternalServerError, InternalErrorCode)
	}
}

func msgForTag(tag string, value string) string {
	switch tag {
	case "required":
		return "This field is required"
	case "required_without":
		return fmt.Sprintf("Either this field or %s is required", value)
	case "excluded_with":
		return fmt.Sprintf("This field cannot be combined with %s", value)
	case "email":
		return "Enter a valid email address"
	case "number":
		return "This field must be numeric"
	case "min":
		return fmt.Sprintf("Ensure this field has at least %v characters", value)
	case "max":
		return fmt.Sprintf("Ensure this field has no more than %v characters", value)
	case "eqfield":
		return fmt.Sprintf("This field must match %s", value)
	case "oneof":
		return fmt.Sprintf("Must be one of: %s", value)
	case "phonenumber":
		return "Enter a valid phone number, e.g. +254700000000"
	case "otpcode":
		return "OTP must be exactly 6 digits"
	case "latitude":
		return "Enter a valid latitude"
	case "longitude":
		return "Enter a valid longitude"
	}
	return tag
}
