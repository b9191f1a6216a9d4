package cron

import (
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// WorkerConfig sizes the trigger worker.
type WorkerConfig struct {
	Concurrency int
	Timeout     time.Duration
}

// NewTriggerWorker builds the asynq server and mux that drain the trigger queue.
func NewTriggerWorker(redisOpts asynq.RedisClientOpt, cfg WorkerConfig, d Dispatcher, logger *zap.Logger) (*asynq.Server, *asynq.ServeMux) {
	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: cfg.Concurrency,
			Queues: map[string]int{
				QueueTriggers: 1,
			},
			Logger: logger.Sugar(),
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeTriggerDispatch, HandleDispatchTask(d, cfg.Timeout, logger))
	return srv, mux
}

// StartTriggerWorker runs the worker in the background, retrying startup with backoff.
func StartTriggerWorker(srv *asynq.Server, mux *asynq.ServeMux, logger *zap.Logger) {
	go func() {
		logger.Info("starting trigger worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := srv.Start(mux)
			if err == nil {
				return
			}
			logger.Error("failed to start trigger worker",
				zap.Int("attempt", attempts),
				zap.Int("maxAttempts", maxAttempts),
				zap.Error(err),
			)
			if attempts == maxAttempts {
				logger.Fatal("trigger worker could not start")
			}
			time.Sleep(time.Duration(attempts*2) * time.Second)
		}
	}()
}
