package task

import (
	"time"

	"github.com/hibiken/asynq"
)

const (
	PurgeOTPsTaskName  = "purgeOTPsTask"
	PurgeOTPsQueueName = "housekeepingQueue"
)

// NewPurgeOTPsTask builds the periodic task that deletes expired codes.
// Only one instance may be queued at a time.
func NewPurgeOTPsTask() *asynq.Task {
	return asynq.NewTask(
		PurgeOTPsTaskName,
		nil,
		asynq.MaxRetry(1),
		asynq.Queue(PurgeOTPsQueueName),
		asynq.Unique(10*time.Minute),
	)
}
