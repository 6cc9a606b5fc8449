package validator

import (
	"fmt"
	"log"
	"reflect"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/manara-transit/backend/pkg/otp"
)

var (
	phoneNumberRegexp = regexp.MustCompile(`^\+?[1-9]\d{7,14}$`)
	otpCodeRegexp     = regexp.MustCompile(fmt.Sprintf(`^\d{%d}$`, otp.CodeLength))
)

func RegisterGinValidator() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := Register(v); err != nil {
			log.Fatalf("register validators failed: %s", err)
		}
	}
}

// Register installs json tag names and the custom rules on v.
func Register(v *validator.Validate) error {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("phonenumber", phoneNumberValidator); err != nil {
		return err
	}
	return v.RegisterValidation("otpcode", otpCodeValidator)
}

var phoneNumberValidator validator.Func = func(fl validator.FieldLevel) bool {
	return phoneNumberRegexp.MatchString(fl.Field().String())
}

var otpCodeValidator validator.Func = func(fl validator.FieldLevel) bool {
	return otpCodeRegexp.MatchString(fl.Field().String())
}
