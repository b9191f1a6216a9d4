package cron

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hoteltriggers/database"
	"hoteltriggers/models"

	"github.com/hibiken/asynq"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

const (
	TypeTriggerDispatch = "trigger:dispatch"
	QueueTriggers       = "triggers"
)

// Dispatcher runs the triggers bound to a change event.
type Dispatcher interface {
	Dispatch(ctx context.Context, evt models.ChangeEvent) error
}

// Enqueuer is the part of *asynq.Client used to publish change events.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// ErrUnencodableChange marks a change event that can never become a task.
var ErrUnencodableChange = errors.New("change event cannot be encoded")

// NewDispatchTask wraps a change event into a queue task. The payload is
// BSON so document values keep their types, NaN and infinities included.
func NewDispatchTask(evt models.ChangeEvent) (*asynq.Task, error) {
	payload, err := bson.Marshal(evt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnencodableChange, err)
	}
	return asynq.NewTask(TypeTriggerDispatch, payload), nil
}

// DecodeDispatchTask is the inverse of NewDispatchTask.
func DecodeDispatchTask(task *asynq.Task) (models.ChangeEvent, error) {
	var evt models.ChangeEvent
	if err := bson.Unmarshal(task.Payload(), &evt); err != nil {
		return models.ChangeEvent{}, err
	}
	for _, snap := range []*models.Snapshot{evt.Before, evt.After} {
		if snap != nil {
			snap.Fields = database.DocumentFields(snap.Fields)
		}
	}
	return evt, nil
}

// EnqueueChange publishes evt once; a redelivery of the same change id is ignored.
func EnqueueChange(ctx context.Context, q Enqueuer, evt models.ChangeEvent, maxRetry int) error {
	task, err := NewDispatchTask(evt)
	if err != nil {
		return err
	}
	opts := []asynq.Option{asynq.Queue(QueueTriggers), asynq.MaxRetry(maxRetry)}
	if evt.ID != "" {
		opts = append(opts, asynq.TaskID(evt.ID))
	}
	if _, err := q.EnqueueContext(ctx, task, opts...); err != nil {
		if errors.Is(err, asynq.ErrTaskIDConflict) {
			return nil
		}
		return fmt.Errorf("failed to enqueue change %s: %w", evt.Path, err)
	}
	return nil
}

// HandleDispatchTask returns the worker handler. Its error makes asynq retry the task.
func HandleDispatchTask(d Dispatcher, timeout time.Duration, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		evt, err := DecodeDispatchTask(task)
		if err != nil {
			logger.Error("invalid trigger payload", zap.Error(err))
			return fmt.Errorf("invalid trigger payload: %v: %w", err, asynq.SkipRetry)
		}

		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		if err := d.Dispatch(ctx, evt); err != nil {
			logger.Warn("trigger dispatch failed, will retry",
				zap.String("eventId", evt.ID),
				zap.String("path", evt.Path),
				zap.Error(err),
			)
			return err
		}
		return nil
	}
}
