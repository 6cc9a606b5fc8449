package task

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

const (
	SendWelcomeEmailTaskName  = "sendWelcomeEmailTask"
	SendWelcomeEmailQueueName = "sendEmailQueue"
)

type SendWelcomeEmail struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}

func NewSendWelcomeEmailTask(email string, fullName string) (*asynq.Task, error) {
	payload, err := json.Marshal(SendWelcomeEmail{Email: email, FullName: fullName})
	if err != nil {
		return nil, fmt.Errorf("json data marshal failed: %w", err)
	}

	return asynq.NewTask(
		SendWelcomeEmailTaskName,
		payload,
		asynq.MaxRetry(5),
		asynq.Queue(SendWelcomeEmailQueueName),
	), nil
}
