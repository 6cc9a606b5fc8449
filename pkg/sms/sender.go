// Package sms sends text messages to phone numbers.
package sms

import (
	"context"
	"errors"
	"regexp"
)

var phoneRegexp = regexp.MustCompile(`^\+?[1-9]\d{7,14}$`)

var ErrInvalidRecipient = errors.New("invalid sms recipient")

type SendSMSInput struct {
	To   string
	Text string
}

func (i SendSMSInput) Validate() error {
	if !phoneRegexp.MatchString(i.To) {
		return ErrInvalidRecipient
	}
	if i.Text == "" {
		return errors.New("empty sms text")
	}
	return nil
}

type Sender interface {
	Send(ctx context.Context, input SendSMSInput) error
}
