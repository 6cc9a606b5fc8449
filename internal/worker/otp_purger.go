package worker

import (
	"context"
	"fmt"

	"github.com/manara-transit/backend/internal/service"
	"github.com/manara-transit/backend/pkg/logger"
	"go.uber.org/zap"
)

type otpPurger struct {
	otps service.OTPs
}

func newOTPPurger(otps service.OTPs) *otpPurger {
	return &otpPurger{otps: otps}
}

func (p *otpPurger) Purge(ctx context.Context) error {
	n, err := p.otps.PurgeExpired(ctx)
	if err != nil {
		return fmt.Errorf("purge expired otps failed: %w", err)
	}

	logger.Info("expired otps purged", zap.Int64("deleted", n))

	return nil
}
