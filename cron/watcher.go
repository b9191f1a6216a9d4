package cron

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hoteltriggers/database"
	"hoteltriggers/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// ChangeDoc is one MongoDB change stream event.
type ChangeDoc struct {
	ID            bson.M `bson:"_id"`
	OperationType string `bson:"operationType"`
	NS            struct {
		DB   string `bson:"db"`
		Coll string `bson:"coll"`
	} `bson:"ns"`
	DocumentKey              bson.M             `bson:"documentKey"`
	FullDocument             bson.M             `bson:"fullDocument"`
	FullDocumentBeforeChange bson.M             `bson:"fullDocumentBeforeChange"`
	WallTime                 primitive.DateTime `bson:"wallTime"`
}

func snapshotOf(path, id string, raw bson.M) *models.Snapshot {
	if raw == nil {
		return nil
	}
	return &models.Snapshot{ID: id, Path: path, Exists: true, Fields: database.DocumentFields(raw)}
}

// ChangeEvent converts the change. ok is false for operations that are not
// document writes (drop, rename, invalidate) and for collections that do not
// map to a document path.
func (c ChangeDoc) ChangeEvent() (models.ChangeEvent, bool) {
	var kind models.ChangeKind
	switch c.OperationType {
	case "insert":
		kind = models.ChangeCreate
	case "update", "replace":
		kind = models.ChangeUpdate
	case "delete":
		kind = models.ChangeDelete
	default:
		return models.ChangeEvent{}, false
	}

	id := database.DocumentID(c.DocumentKey)
	if id == "" {
		return models.ChangeEvent{}, false
	}
	path := models.DocumentPath(database.CollectionPath(c.NS.Coll), id)
	if _, _, err := models.SplitDocumentPath(path); err != nil {
		return models.ChangeEvent{}, false
	}

	evt := models.ChangeEvent{
		Kind:   kind,
		Path:   path,
		Before: snapshotOf(path, id, c.FullDocumentBeforeChange),
		After:  snapshotOf(path, id, c.FullDocument),
	}
	if token, ok := c.ID["_data"].(string); ok {
		evt.ID = token
	}
	if c.WallTime != 0 {
		evt.Timestamp = c.WallTime.Time().UTC()
	}
	// Deletes never carry a post-image.
	if kind == models.ChangeDelete {
		evt.After = nil
	}
	return evt, true
}

// Watcher tails the database change stream and enqueues every document write.
// Update pre-images require changeStreamPreAndPostImages on the collection;
// without them update events arrive with no Before snapshot.
type Watcher struct {
	db       *mongo.Database
	queue    Enqueuer
	maxRetry int
	logger   *zap.Logger

	resumeToken bson.Raw
}

func NewWatcher(db *mongo.Database, queue Enqueuer, maxRetry int, logger *zap.Logger) *Watcher {
	return &Watcher{db: db, queue: queue, maxRetry: maxRetry, logger: logger}
}

// Run consumes the change stream until ctx is done or the stream fails.
// A later Run resumes after the last enqueued change.
func (w *Watcher) Run(ctx context.Context) error {
	opts := options.ChangeStream().
		SetFullDocument(options.UpdateLookup).
		SetFullDocumentBeforeChange(options.WhenAvailable)
	if w.resumeToken != nil {
		opts.SetStartAfter(w.resumeToken)
	}

	stream, err := w.db.Watch(ctx, mongo.Pipeline{}, opts)
	if err != nil {
		return fmt.Errorf("failed to open change stream: %w", err)
	}
	defer stream.Close(context.Background())

	for stream.Next(ctx) {
		var doc ChangeDoc
		if err := stream.Decode(&doc); err != nil {
			return fmt.Errorf("failed to decode change: %w", err)
		}

		if err := w.forward(ctx, doc); err != nil {
			return err
		}
		w.resumeToken = stream.ResumeToken()
	}
	if ctx.Err() != nil {
		return nil
	}
	return stream.Err()
}

// forward enqueues one change. A change that can never be encoded is logged
// and dropped so the stream moves past it; queue failures are returned and
// the change is retried from the last resume token.
func (w *Watcher) forward(ctx context.Context, doc ChangeDoc) error {
	evt, ok := doc.ChangeEvent()
	if !ok {
		return nil
	}
	if err := EnqueueChange(ctx, w.queue, evt, w.maxRetry); err != nil {
		if errors.Is(err, ErrUnencodableChange) {
			w.logger.Error("dropping change that cannot be enqueued",
				zap.String("path", evt.Path),
				zap.String("kind", string(evt.Kind)),
				zap.Error(err),
			)
			return nil
		}
		return err
	}
	w.logger.Debug("change enqueued", zap.String("path", evt.Path), zap.String("kind", string(evt.Kind)))
	return nil
}

// Start keeps the watcher running in the background, backing off between failures.
func (w *Watcher) Start(ctx context.Context) {
	go func() {
		backoff := time.Second
		for {
			err := w.Run(ctx)
			if ctx.Err() != nil {
				return
			}
			w.logger.Error("change stream stopped, restarting", zap.Duration("backoff", backoff), zap.Error(err))

			select {
			case <-ctx.Done():
				return
			case <-time.After(backoff):
			}
			if backoff < time.Minute {
				backoff *= 2
			}
		}
	}()
}
