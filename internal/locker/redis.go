package locker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// only the owner may delete the key
var unlockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
  return redis.call("DEL", KEYS[1])
end
return 0
`)

type RedisConfig struct {
	Prefix string
	TTL    time.Duration
	Wait   time.Duration
	Retry  time.Duration
}

// Redis is a SETNX lock with an owner token and expiry, shared by every
// instance talking to the same Redis.
type Redis struct {
	rdb    *redis.Client
	log    *zap.Logger
	prefix string
	ttl    time.Duration
	wait   time.Duration
	retry  time.Duration
}

func NewRedis(rdb *redis.Client, log *zap.Logger, cfg RedisConfig) *Redis {
	if cfg.Prefix == "" {
		cfg.Prefix = "salon:lock:"
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 10 * time.Second
	}
	if cfg.Wait <= 0 {
		cfg.Wait = 3 * time.Second
	}
	if cfg.Retry <= 0 {
		cfg.Retry = 25 * time.Millisecond
	}
	return &Redis{
		rdb:    rdb,
		log:    log,
		prefix: cfg.Prefix,
		ttl:    cfg.TTL,
		wait:   cfg.Wait,
		retry:  cfg.Retry,
	}
}

func (l *Redis) Acquire(ctx context.Context, key string) (func(), error) {
	full := l.prefix + key
	token := uuid.NewString()

	deadline := time.Now().Add(l.wait)
	for {
		ok, err := l.rdb.SetNX(ctx, full, token, l.ttl).Result()
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			return nil, fmt.Errorf("locker: acquire %s: %w", key, err)
		}
		if ok {
			l.log.Debug("lock acquired", zap.String("key", full))
			var once sync.Once
			return func() { once.Do(func() { l.release(full, token) }) }, nil
		}

		if time.Now().After(deadline) {
			l.log.Info("lock wait exhausted", zap.String("key", full), zap.Duration("wait", l.wait))
			return nil, ErrLockTimeout
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(l.retry):
		}
	}
}

func (l *Redis) release(key, token string) {
	// the request context may already be gone
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	n, err := unlockScript.Run(ctx, l.rdb, []string{key}, token).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		l.log.Warn("lock release failed", zap.String("key", key), zap.Error(err))
		return
	}
	if n == 0 {
		l.log.Warn("lock expired before release", zap.String("key", key))
	}
}

var _ Locker = (*Redis)(nil)
