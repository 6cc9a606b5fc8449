package twilio

import (
	"context"

	"github.com/pkg/errors"
	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/zap"

	"github.com/manara-transit/backend/pkg/logger"
	"github.com/manara-transit/backend/pkg/sms"
)

type messageCreator interface {
	CreateMessage(params *openapi.CreateMessageParams) (*openapi.ApiV2010Message, error)
}

type Sender struct {
	from string
	api  messageCreator
}

func NewSender(accountSID, authToken, from string) (*Sender, error) {
	if accountSID == "" || authToken == "" {
		return nil, errors.New("empty twilio credentials")
	}
	if from == "" {
		return nil, errors.New("empty twilio sender number")
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})

	return &Sender{from: from, api: client.Api}, nil
}

// Send creates a Twilio message. The Twilio client does not accept a context,
// so the request runs in its own goroutine and Send gives up when ctx is done.
func (s *Sender) Send(ctx context.Context, input sms.SendSMSInput) error {
	if err := input.Validate(); err != nil {
		return err
	}

	params := &openapi.CreateMessageParams{}
	params.SetTo(input.To)
	params.SetFrom(s.from)
	params.SetBody(input.Text)

	type result struct {
		msg *openapi.ApiV2010Message
		err error
	}
	done := make(chan result, 1)
	go func() {
		msg, err := s.api.CreateMessage(params)
		done <- result{msg: msg, err: err}
	}()

	select {
	case res := <-done:
		if res.err != nil {
			return errors.Wrap(res.err, "twilio create message")
		}
		if res.msg != nil && res.msg.Sid != nil {
			logger.Debug("twilio message created", zap.String("sid", *res.msg.Sid))
		}
		return nil
	case <-ctx.Done():
		return errors.Wrap(ctx.Err(), "twilio create message aborted")
	}
}
