package asynqserver

import (
	"time"

	"github.com/hibiken/asynq"
	"github.com/manara-transit/backend/internal/cache"
	"github.com/manara-transit/backend/internal/config"
	"github.com/manara-transit/backend/internal/queue/processor"
	"github.com/manara-transit/backend/internal/queue/task"
	"github.com/manara-transit/backend/internal/worker"
	"github.com/manara-transit/backend/pkg/logger"
)

func New(cfg *config.Config, workers *worker.Workers) (*asynq.Server, *asynq.ServeMux) {
	mux, queues := getQueues(workers)
	srv := asynq.NewServer(
		RedisOptions(cfg.Cache),
		asynq.Config{
			Concurrency: cfg.Queue.Concurrency,
			Logger:      logger.Logger().Sugar(),
			LogLevel:    asynq.WarnLevel,
			Queues:      queues,
		},
	)

	return srv, mux
}

// NewScheduler registers the periodic housekeeping tasks.
func NewScheduler(cfg *config.Config) (*asynq.Scheduler, error) {
	scheduler := asynq.NewScheduler(RedisOptions(cfg.Cache), &asynq.SchedulerOpts{
		Logger:   logger.Logger().Sugar(),
		LogLevel: asynq.WarnLevel,
		Location: time.UTC,
	})

	if _, err := scheduler.Register(cfg.Queue.PurgeOTPsCron, task.NewPurgeOTPsTask()); err != nil {
		return nil, err
	}

	return scheduler, nil
}

func RedisOptions(cfg config.Cache) asynq.RedisConnOpt {
	var opts asynq.RedisConnOpt
	if cfg.Type == cache.RedisTypeCluster {
		opts = asynq.RedisClusterClientOpt{Addrs: cfg.RedisCluster.Addresses, Password: cfg.RedisCluster.Password}
	} else {
		opts = asynq.RedisClientOpt{Addr: cfg.Redis.Address, Password: cfg.Redis.Password, DB: cfg.Redis.DB}
	}
	return opts
}

func getQueues(workers *worker.Workers) (*asynq.ServeMux, map[string]int) {
	mux := asynq.NewServeMux()
	mux.Handle(task.SendWelcomeEmailTaskName, processor.NewSendWelcomeEmailProcessor(workers))
	mux.Handle(task.PurgeOTPsTaskName, processor.NewPurgeOTPsProcessor(workers))
	queues := map[string]int{
		task.SendWelcomeEmailQueueName: 3,
		task.PurgeOTPsQueueName:        1,
	}
	return mux, queues
}
