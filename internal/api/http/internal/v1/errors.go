package v1

// Errors
const (
	UnknownErrorCode = 0

	UserAlreadyExistsCode   = 1001
	UserNotFoundCode        = 1002
	InvalidCredentialsCode  = 1003
	AccountNotVerifiedCode  = 1004
	InvalidRefreshTokenCode = 1005

	OTPCooldownCode           = 2001
	OTPTooManyAttemptsCode    = 2002
	InvalidOTPCode            = 2003
	OTPDeliveryFailedCode     = 2004
	ProfileSessionExpiredCode = 2005

	TripNotFoundCode  = 3001
	RouteNotFoundCode = 3002

	InternalErrorCode   = 5000
	ValidationErrorCode = 6000
)

var errorMessages = map[ErrorCode]ErrorMessage{
	UnknownErrorCode:          "unknown error",
	UserAlreadyExistsCode:     "user already exists",
	UserNotFoundCode:          "user not found",
	InvalidCredentialsCode:    "invalid credentials",
	AccountNotVerifiedCode:    "account not verified, please verify otp",
	InvalidRefreshTokenCode:   "invalid refresh token",
	OTPCooldownCode:           "please wait before requesting another otp",
	OTPTooManyAttemptsCode:    "too many failed attempts, please request a new otp",
	InvalidOTPCode:            "invalid or expired otp",
	OTPDeliveryFailedCode:     "failed to send otp, please try again",
	ProfileSessionExpiredCode: "profile update session expired",
	TripNotFoundCode:          "trip not found",
	RouteNotFoundCode:         "route not found",
	InternalErrorCode:         "an unexpected error occurred",
	ValidationErrorCode:       "validation error",
}

type ErrorCode int
type ErrorMessage string

type ErrorStruct struct {
	ErrorCode    `json:"error_code"`
	ErrorMessage `json:"error_message"`
	WaitTime     string `json:"wait_time,omitempty"`
	AttemptsLeft *int   `json:"attempts_left,omitempty"`
} // @name ErrorStruct

type ValidationErrorStruct struct {
	ErrorCode    int               `json:"error_code"`
	ErrorMessage string            `json:"error_message"`
	Errors       []ValidationError `json:"validation_errors"`
} // @name ValidationErrorStruct

type ValidationError struct {
	FieldKey     string `json:"field_key"`
	ErrorMessage string `json:"error_message"`
}

func getErrorStruct(code ErrorCode) *ErrorStruct {
	msg, ok := errorMessages[code]
	if !ok {
		return &ErrorStruct{ErrorCode: UnknownErrorCode, ErrorMessage: errorMessages[UnknownErrorCode]}
	}

	return &ErrorStruct{ErrorCode: code, ErrorMessage: msg}
}
