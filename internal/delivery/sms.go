package delivery

import (
	"fmt"

	"github.com/manara-transit/backend/internal/config"
	"github.com/manara-transit/backend/pkg/logger"
	"github.com/manara-transit/backend/pkg/sms"
	"github.com/manara-transit/backend/pkg/sms/twilio"
)

const (
	SMSProviderTwilio   = "twilio"
	SMSProviderDisabled = "disabled"
)

// NewSMSSender builds the sender for cfg.Provider. A disabled provider
// returns a nil sender, which leaves email as the only channel.
func NewSMSSender(cfg config.SMSConfig) (sms.Sender, error) {
	switch cfg.Provider {
	case SMSProviderTwilio:
		sender, err := twilio.NewSender(cfg.Twilio.AccountSID, cfg.Twilio.AuthToken, cfg.Twilio.From)
		if err != nil {
			return nil, fmt.Errorf("create twilio sender failed: %w", err)
		}
		return sender, nil
	case SMSProviderDisabled:
		logger.Warn("sms channel disabled, otp codes go out by email only")
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown sms provider %q", cfg.Provider)
	}
}
