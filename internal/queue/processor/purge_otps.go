package processor

import (
	"context"
	"fmt"

	"github.com/manara-transit/backend/internal/worker"

	"github.com/hibiken/asynq"
)

type purgeOTPsProcessor struct {
	workers *worker.Workers
}

func NewPurgeOTPsProcessor(workers *worker.Workers) *purgeOTPsProcessor {
	return &purgeOTPsProcessor{
		workers: workers,
	}
}

func (p *purgeOTPsProcessor) ProcessTask(ctx context.Context, _ *asynq.Task) error {
	if err := p.workers.OTPPurger.Purge(ctx); err != nil {
		return fmt.Errorf("purge otps failed: %w", err)
	}

	return nil
}
