package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	apiHttp "github.com/manara-transit/backend/internal/api/http"
	"github.com/manara-transit/backend/internal/cache"
	"github.com/manara-transit/backend/internal/config"
	"github.com/manara-transit/backend/internal/db"
	"github.com/manara-transit/backend/internal/delivery"
	"github.com/manara-transit/backend/internal/queue/asynqserver"
	queueClient "github.com/manara-transit/backend/internal/queue/client"
	"github.com/manara-transit/backend/internal/repository"
	"github.com/manara-transit/backend/internal/server"
	"github.com/manara-transit/backend/internal/service"
	"github.com/manara-transit/backend/internal/worker"
	"github.com/manara-transit/backend/pkg/auth"
	"github.com/manara-transit/backend/pkg/clock"
	"github.com/manara-transit/backend/pkg/email/smtp"
	"github.com/manara-transit/backend/pkg/hash"
	logger "github.com/manara-transit/backend/pkg/logger"
	"github.com/manara-transit/backend/pkg/otp"
)

func main() {
	// Init cfg from environment variables
	cfg := config.MustLoad()

	// Dependencies
	appLogger := logger.SetupLogger(cfg.Env, cfg.LogLevel)
	defer func() { _ = logger.Sync() }()

	appLogger.Info("starting backend api", zap.String("env", cfg.Env))
	appLogger.Debug("debug messages are enabled")

	// Init database
	dbMySQL, err := db.New(cfg.Database)
	if err != nil {
		appLogger.Fatal("mysql connect problem", zap.Error(err))
	}
	defer func() {
		if err := dbMySQL.Close(); err != nil {
			appLogger.Error("error when closing", zap.Error(err))
		}
	}()
	appLogger.Info("mysql connection done")

	redisClient, err := cache.NewRedis(context.Background(), cfg.Cache)
	if err != nil {
		appLogger.Fatal("redis connect problem", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			appLogger.Error("error when closing redis", zap.Error(err))
		}
	}()
	appLogger.Info("redis connection done")

	hasher := hash.NewBcryptHasher(cfg.Auth.BcryptCost)

	emailSender, err := smtp.NewSMTPSender(cfg.SMTP.From, cfg.SMTP.Pass, cfg.SMTP.Host, cfg.SMTP.Port)
	if err != nil {
		appLogger.Fatal("smtp sender creation failed", zap.Error(err))
	}

	smsSender, err := delivery.NewSMSSender(cfg.SMS)
	if err != nil {
		appLogger.Fatal("sms sender creation failed", zap.Error(err))
	}

	tokenManager, err := auth.NewManager(cfg.Auth.JWT)
	if err != nil {
		appLogger.Fatal("auth manager creation err", zap.Error(err))
	}

	otpGenerator, err := otp.New(cfg.OTP.Generator)
	if err != nil {
		appLogger.Fatal("otp generator creation failed", zap.Error(err))
	}

	// Queue client
	asynqClient := asynq.NewClient(asynqserver.RedisOptions(cfg.Cache))
	defer func() {
		if err := asynqClient.Close(); err != nil {
			appLogger.Error("error when closing asynq client", zap.Error(err))
		}
	}()
	restoreClient := queueClient.SetClient(asynqClient)
	defer restoreClient()

	var tasks service.TaskEnqueuer
	if cfg.Queue.Enabled {
		tasks = queueClient.NewEnqueuer()
	}

	// Services, Repos & API Handlers
	repos := repository.NewRepositories(dbMySQL)
	services := service.NewServices(service.Deps{
		Config:          cfg,
		Clock:           clock.New(),
		Hasher:          hasher,
		TokenManager:    tokenManager,
		OtpGenerator:    otpGenerator,
		Delivery:        delivery.NewGateway(smsSender, emailSender, cfg.Delivery.Timeout, cfg.OTP.TTL),
		Cooldowns:       cache.NewCooldowns(redisClient),
		Attempts:        cache.NewAttempts(redisClient),
		PendingProfiles: cache.NewPendingProfileChanges(redisClient),
		Tasks:           tasks,
		Repos:           repos,
	})
	handlers := apiHttp.NewHandlers(services, tokenManager, cfg)

	// Background workers
	var (
		asynqServer *asynq.Server
		scheduler   *asynq.Scheduler
	)
	if cfg.Queue.Enabled {
		workers := worker.NewWorkers(worker.Deps{
			Services:      services,
			EmailProvider: emailSender,
			Config:        cfg,
		})

		var mux *asynq.ServeMux
		asynqServer, mux = asynqserver.New(cfg, workers)
		if err := asynqServer.Start(mux); err != nil {
			appLogger.Fatal("asynq server start failed", zap.Error(err))
		}

		scheduler, err = asynqserver.NewScheduler(cfg)
		if err != nil {
			appLogger.Fatal("asynq scheduler creation failed", zap.Error(err))
		}
		if err := scheduler.Start(); err != nil {
			appLogger.Fatal("asynq scheduler start failed", zap.Error(err))
		}
		appLogger.Info("queue workers started")
	}

	// HTTP Server
	srv := server.NewServer(cfg, handlers.Init(cfg))
	go func() {
		if err := srv.Run(); !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("error occurred while running http server", zap.Error(err))
		}
	}()
	appLogger.Info("server started", zap.String("port", cfg.HttpServer.Port))

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	<-quit

	const timeout = 5 * time.Second

	ctx, shutdown := context.WithTimeout(context.Background(), timeout)
	defer shutdown()

	if err := srv.Stop(ctx); err != nil {
		appLogger.Error("failed to stop server", zap.Error(err))
	}

	if scheduler != nil {
		scheduler.Shutdown()
	}
	if asynqServer != nil {
		asynqServer.Shutdown()
	}

	appLogger.Info("app stopped")
}
