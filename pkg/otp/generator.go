// Package otp generates one-time numeric passcodes delivered to users over SMS or email.
package otp

import (
	"crypto/rand"
	"encoding/base32"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/xlzd/gotp"
)

const (
	// CodeLength is fixed: stored codes and request validation assume six digits.
	CodeLength = 6

	GeneratorDigits = "digits"
	GeneratorHOTP   = "hotp"

	secretSize = 20
)

var digits = big.NewInt(10)

// Generator produces numeric one-time codes.
type Generator interface {
	Generate() (string, error)
}

// New returns the generator registered under kind, producing CodeLength digits.
func New(kind string) (Generator, error) {
	switch strings.ToLower(kind) {
	case "", GeneratorDigits:
		return NewDigitGenerator(CodeLength), nil
	case GeneratorHOTP:
		return NewHOTPGenerator(CodeLength), nil
	}

	return nil, fmt.Errorf("unknown otp generator %q", kind)
}

// DigitGenerator draws every digit independently and uniformly from crypto/rand.
type DigitGenerator struct {
	length int
}

func NewDigitGenerator(length int) *DigitGenerator {
	return &DigitGenerator{length: length}
}

func (g *DigitGenerator) Generate() (string, error) {
	buf := make([]byte, g.length)
	for i := range buf {
		n, err := rand.Int(rand.Reader, digits)
		if err != nil {
			return "", fmt.Errorf("read random digit: %w", err)
		}
		buf[i] = byte('0' + n.Int64())
	}

	return string(buf), nil
}

// HOTPGenerator computes an HOTP value over a fresh random secret per code.
type HOTPGenerator struct {
	length int
}

func NewHOTPGenerator(length int) *HOTPGenerator {
	return &HOTPGenerator{length: length}
}

func (g *HOTPGenerator) Generate() (string, error) {
	raw := make([]byte, secretSize)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("read hotp secret: %w", err)
	}

	counter, err := rand.Int(rand.Reader, big.NewInt(1<<31-1))
	if err != nil {
		return "", fmt.Errorf("read hotp counter: %w", err)
	}

	secret := base32.StdEncoding.EncodeToString(raw)
	code := gotp.NewHOTP(secret, g.length, nil).At(int(counter.Int64()))
	if len(code) != g.length {
		return "", errors.New("hotp produced code of unexpected length")
	}

	return code, nil
}
