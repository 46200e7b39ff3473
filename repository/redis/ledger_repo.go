package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	redislib "github.com/redis/go-redis/v9"

	"github.com/fastygo/tasknotify/domain"
	"github.com/fastygo/tasknotify/repository"
)

type ledgerRepository struct {
	client redislib.Cmdable
	prefix string
	ttl    time.Duration
}

// NewLedgerRepository creates a Redis-backed notification ledger. Entries expire after ttl.
func NewLedgerRepository(client redislib.Cmdable, ttl time.Duration) repository.NotificationLedger {
	if ttl <= 0 {
		ttl = 30 * 24 * time.Hour
	}
	return &ledgerRepository{
		client: client,
		prefix: "notified:",
		ttl:    ttl,
	}
}

func (r *ledgerRepository) LastNotified(ctx context.Context, taskID string) (time.Time, error) {
	result, err := r.client.Get(ctx, r.key(taskID)).Result()
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return time.Time{}, domain.ErrNotNotified
		}
		return time.Time{}, err
	}

	nanos, err := strconv.ParseInt(result, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("corrupt ledger entry for task %s: %w", taskID, err)
	}
	return time.Unix(0, nanos).UTC(), nil
}

func (r *ledgerRepository) MarkNotified(ctx context.Context, taskID string, dueDate time.Time) error {
	if taskID == "" {
		return domain.ErrInvalidPayload
	}
	return r.client.Set(ctx, r.key(taskID), strconv.FormatInt(dueDate.UnixNano(), 10), r.ttl).Err()
}

func (r *ledgerRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *ledgerRepository) key(id string) string {
	return fmt.Sprintf("%s%s", r.prefix, id)
}
