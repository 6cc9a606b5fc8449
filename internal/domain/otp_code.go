package domain

import (
	"time"

	"github.com/google/uuid"
)

// OTPCode is an issued one-time passcode. A code is live while it is unused
// and not yet expired; consumption flips IsUsed exactly once.
type OTPCode struct {
	ID        uuid.UUID `db:"id"`
	UserID    uuid.UUID `db:"user_id"`
	Code      string    `db:"code"`
	IsUsed    bool      `db:"is_used"`
	CreatedAt time.Time `db:"created_at"`
	ExpiresAt time.Time `db:"expires_at"`
}

func (o *OTPCode) IsLive(now time.Time) bool {
	return !o.IsUsed && o.ExpiresAt.After(now)
}

type DeliveryChannel string

const (
	DeliveryChannelSMS   DeliveryChannel = "sms"
	DeliveryChannelEmail DeliveryChannel = "email"
)
