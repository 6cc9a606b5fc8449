package validator

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type verifyInput struct {
	PhoneNumber string `json:"phone_number" validate:"omitempty,phonenumber"`
	Code        string `json:"code" validate:"required,otpcode"`
}

func TestRegister(t *testing.T) {
	v := validator.New()
	require.NoError(t, Register(v))

	tests := []struct {
		name      string
		input     verifyInput
		wantField string
	}{
		{"valid", verifyInput{PhoneNumber: "+15551234567", Code: "042917"}, ""},
		{"valid without plus", verifyInput{PhoneNumber: "254700000001", Code: "000000"}, ""},
		{"short code", verifyInput{Code: "04291"}, "code"},
		{"letters in code", verifyInput{Code: "04291a"}, "code"},
		{"long code", verifyInput{Code: "0429170"}, "code"},
		{"leading zero phone", verifyInput{PhoneNumber: "+0555123456", Code: "042917"}, "phone_number"},
		{"short phone", verifyInput{PhoneNumber: "+1555", Code: "042917"}, "phone_number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.input)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}

			var verrs validator.ValidationErrors
			require.True(t, errors.As(err, &verrs))
			require.Len(t, verrs, 1)
			assert.Equal(t, tt.wantField, verrs[0].Field())
		})
	}
}
