package main

import (
	"os"
	"strings"

	"github.com/hibiken/asynq"

	"github.com/noah-isme/backend-mandi/internal/common"
	"github.com/noah-isme/backend-mandi/internal/config"
	"github.com/noah-isme/backend-mandi/internal/obs"
	"github.com/noah-isme/backend-mandi/internal/tasks"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logFormat := envOrDefault("OBS_LOG_FORMAT", "json")
	logLevel := envOrDefault("OBS_LOG_LEVEL", "info")
	logger := obs.NewLogger(logFormat, logLevel).With().Str("component", "worker").Logger()

	redisOpt, err := asynq.ParseRedisURI(cfg.RedisURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("parse redis url")
	}

	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: cfg.WorkerConcurrency,
		Queues:      map[string]int{cfg.TaskQueueName: 1},
	})

	// SMTP delivery is not wired yet; approval emails are logged in
	// development and swallowed in production until a sender is configured.
	handler := &tasks.Handler{
		Mail:   common.NopEmailSender{},
		From:   cfg.NotifyEmailFrom,
		Logger: logger,
	}
	mux := asynq.NewServeMux()
	handler.Register(mux)

	logger.Info().Str("queue", cfg.TaskQueueName).Int("concurrency", cfg.WorkerConcurrency).Msg("worker starting")
	if err := srv.Run(mux); err != nil {
		logger.Fatal().Err(err).Msg("worker stopped with error")
	}
}

func envOrDefault(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		trimmed := strings.TrimSpace(val)
		if trimmed != "" {
			return trimmed
		}
	}
	return fallback
}
