package client

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/hibiken/asynq"
	"github.com/manara-transit/backend/internal/queue/task"
)

type ctxKey int

const (
	_ ctxKey = iota
	asyncQCtxKey
)

var ErrNoClient = errors.New("asynq client is not configured")

var (
	globalClient *asynq.Client
	globalMu     sync.RWMutex
)

// GetClient returns the Client stored in ctx, falling back to the global
// Client, which can be reconfigured with SetClient. It's safe for concurrent use.
func GetClient(ctx context.Context) *asynq.Client {
	c := ctx.Value(asyncQCtxKey)
	if c != nil {
		client, ok := c.(*asynq.Client)
		if !ok {
			return nil
		}

		return client
	}

	globalMu.RLock()
	client := globalClient
	globalMu.RUnlock()

	return client
}

// SetClient replaces the global Client, and returns a
// function to restore the original value. It's safe for concurrent use.
func SetClient(client *asynq.Client) func() {
	globalMu.Lock()
	prev := globalClient
	globalClient = client
	globalMu.Unlock()
	return func() { SetClient(prev) }
}

// WithClient returns a copy of ctx whose GetClient resolves to client.
func WithClient(ctx context.Context, client *asynq.Client) context.Context {
	return context.WithValue(ctx, asyncQCtxKey, client)
}

// Enqueuer puts background tasks on the queue through the client resolved by GetClient.
type Enqueuer struct{}

func NewEnqueuer() *Enqueuer {
	return &Enqueuer{}
}

func (e *Enqueuer) EnqueueWelcomeEmail(ctx context.Context, email string, fullName string) error {
	client := GetClient(ctx)
	if client == nil {
		return ErrNoClient
	}

	t, err := task.NewSendWelcomeEmailTask(email, fullName)
	if err != nil {
		return fmt.Errorf("new send welcome email task failed: %w", err)
	}

	if _, err := client.EnqueueContext(ctx, t); err != nil {
		return fmt.Errorf("enqueue send welcome email task failed: %w", err)
	}

	return nil
}
