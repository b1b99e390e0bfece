package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	customError "github.com/segyhp/reminder-engine/pkg/errors"
	"github.com/segyhp/reminder-engine/pkg/utils"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	runLockKey     = "reminder:run-lock"
	sentKeyPattern = "reminder:sent:%d:%s"

	// markers outlive the day they cover so late runs in another timezone still see them
	sentMarkerTTL = 36 * time.Hour
)

// releaseScript deletes the lock only if it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// extendScript resets the lock TTL only if it still holds our token.
var extendScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("PEXPIRE", KEYS[1], ARGV[2])
end
return 0
`)

// Lock is a held reminder run lock.
type Lock interface {
	// Extend resets the TTL. It fails with REMINDER_RUN_LOCK_LOST once the lock expired or changed hands.
	Extend(ctx context.Context) error
	Release(ctx context.Context) error
}

type runLock struct {
	redis *redis.Client
	token string
	ttl   time.Duration
}

func (l *runLock) Extend(ctx context.Context) error {
	n, err := extendScript.Run(ctx, l.redis, []string{runLockKey}, l.token, l.ttl.Milliseconds()).Int()
	if err != nil {
		return customError.WrapCacheError(err)
	}
	if n == 0 {
		return customError.WrapRunLockLost()
	}
	return nil
}

func (l *runLock) Release(ctx context.Context) error {
	if err := releaseScript.Run(ctx, l.redis, []string{runLockKey}, l.token).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return customError.WrapCacheError(err)
	}
	return nil
}

// ReminderCache keeps the reminder run lock and the per-day "already reminded" markers in Redis.
type ReminderCache struct {
	redis   *redis.Client
	lockTTL time.Duration
}

func NewReminderCache(client *redis.Client, lockTTL time.Duration) *ReminderCache {
	return &ReminderCache{redis: client, lockTTL: lockTTL}
}

// AcquireRunLock takes the single-sender lock. It fails with REMINDER_RUN_IN_PROGRESS if another run holds it.
func (c *ReminderCache) AcquireRunLock(ctx context.Context) (Lock, error) {
	token := uuid.NewString()

	ok, err := c.redis.SetNX(ctx, runLockKey, token, c.lockTTL).Result()
	if err != nil {
		return nil, customError.WrapCacheError(err)
	}
	if !ok {
		return nil, customError.WrapReminderRunInProgress()
	}

	return &runLock{redis: c.redis, token: token, ttl: c.lockTTL}, nil
}

// WasSent reports whether paymentID was already reminded on day.
func (c *ReminderCache) WasSent(ctx context.Context, paymentID int64, day time.Time) (bool, error) {
	n, err := c.redis.Exists(ctx, sentKey(paymentID, day)).Result()
	if err != nil {
		return false, customError.WrapCacheError(err)
	}
	return n > 0, nil
}

// MarkSent records that paymentID was reminded on day.
func (c *ReminderCache) MarkSent(ctx context.Context, paymentID int64, day time.Time) error {
	if err := c.redis.Set(ctx, sentKey(paymentID, day), time.Now().UTC().Format(time.RFC3339), sentMarkerTTL).Err(); err != nil {
		return customError.WrapCacheError(err)
	}
	return nil
}

func sentKey(paymentID int64, day time.Time) string {
	return fmt.Sprintf(sentKeyPattern, paymentID, utils.TruncateToDate(day).Format(utils.DateLayout))
}
