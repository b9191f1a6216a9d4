// Package ledger records which trigger deliveries already completed, so a
// redelivered event does not notify a user twice.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// KeyPrefix is the prefix used for ledger keys.
const KeyPrefix = "trigger:done:"

// Ledger remembers successful (trigger, event) completions.
type Ledger interface {
	Seen(ctx context.Context, trigger, eventID string) (bool, error)
	Mark(ctx context.Context, trigger, eventID string) error
}

// RedisLedger keeps completions in Redis with a TTL.
type RedisLedger struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisLedger(client *redis.Client, ttl time.Duration) *RedisLedger {
	return &RedisLedger{client: client, ttl: ttl}
}

// Key returns the Redis key for one completion.
func Key(trigger, eventID string) string {
	return KeyPrefix + trigger + ":" + eventID
}

func (l *RedisLedger) Seen(ctx context.Context, trigger, eventID string) (bool, error) {
	err := l.client.Get(ctx, Key(trigger, eventID)).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("ledger lookup failed: %w", err)
	}
	return true, nil
}

func (l *RedisLedger) Mark(ctx context.Context, trigger, eventID string) error {
	if err := l.client.Set(ctx, Key(trigger, eventID), time.Now().UTC().Format(time.RFC3339), l.ttl).Err(); err != nil {
		return fmt.Errorf("ledger write failed: %w", err)
	}
	return nil
}
