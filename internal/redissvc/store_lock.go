package redissvc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rogerio-castellano/inventory-store/internal/service"
)

// ErrLeaseLost means the lease expired and may now belong to another writer.
var ErrLeaseLost = errors.New("store lock lease lost")

// extendScript renews the lease only while it still holds our token.
var extendScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("PEXPIRE", KEYS[1], ARGV[2])
end
return 0
`)

// releaseScript deletes the lock only while it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// StoreLock is a lease in Redis shared by every process writing the same store file.
// Writers that do not take the lock are not excluded. A holder outliving the ttl
// loses the lease; Check on the returned lease detects that before a save.
type StoreLock struct {
	rdb    *redis.Client
	key    string
	ttl    time.Duration
	retry  time.Duration
	logger *slog.Logger
}

// StoreLock returns a lock on key. The lease expires after ttl if its holder dies;
// waiting writers poll every retry.
func (a *RedisService) StoreLock(key string, ttl, retry time.Duration, logger *slog.Logger) *StoreLock {
	if logger == nil {
		logger = slog.Default()
	}
	return &StoreLock{rdb: a.rdb, key: key, ttl: ttl, retry: retry, logger: logger}
}

// Lock blocks until the lease is acquired or ctx is done.
func (l *StoreLock) Lock(ctx context.Context) (service.Lease, error) {
	token := uuid.NewString()

	for {
		ok, err := l.rdb.SetNX(ctx, l.key, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("acquire store lock %s: %w", l.key, err)
		}
		if ok {
			return &storeLease{lock: l, token: token}, nil
		}

		timer := time.NewTimer(l.retry)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}

type storeLease struct {
	lock  *StoreLock
	token string
	once  sync.Once
}

// Check confirms the lease is still ours and pushes its expiry a full ttl out.
func (s *storeLease) Check(ctx context.Context) error {
	l := s.lock
	n, err := extendScript.Run(ctx, l.rdb, []string{l.key}, s.token, l.ttl.Milliseconds()).Int()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("check store lock %s: %w", l.key, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrLeaseLost, l.key)
	}
	return nil
}

func (s *storeLease) Release() {
	s.once.Do(func() { s.lock.release(s.token) })
}

func (l *StoreLock) release(token string) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	n, err := releaseScript.Run(ctx, l.rdb, []string{l.key}, token).Int()
	if err != nil && !errors.Is(err, redis.Nil) {
		l.logger.Error("failed to release store lock", "key", l.key, "error", err)
		return
	}
	if n == 0 {
		l.logger.Warn("store lock expired before release", "key", l.key, "ttl", l.ttl)
	}
}
