package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"jobboard/internal/middleware"
	"jobboard/internal/observability"

	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

const (
	JobKeyPrefix  = "job:%d"
	UserKeyPrefix = "user:%d"
)

const (
	JobTTL  = 10 * time.Minute
	UserTTL = 5 * time.Minute
)

// local backs Aside when Redis is not configured.
var local = gocache.New(5*time.Minute, 10*time.Minute)

func JobKey(jobID uint) string {
	return fmt.Sprintf(JobKeyPrefix, jobID)
}

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

// Aside reads key into dest, calling load to fill dest on a miss and storing the result for ttl.
// Cache failures never fail the call; load errors are returned unchanged and are not cached.
func Aside(ctx context.Context, key string, dest any, ttl time.Duration, load func() error) error {
	if client != nil {
		return redisAside(ctx, client, key, dest, ttl, load)
	}
	return localAside(key, dest, ttl, load)
}

func redisAside(ctx context.Context, rdb *redis.Client, key string, dest any, ttl time.Duration, load func() error) error {
	raw, err := rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		if jsonErr := json.Unmarshal(raw, dest); jsonErr == nil {
			observability.CacheLookups.WithLabelValues("redis", "hit").Inc()
			return nil
		}
	case !errors.Is(err, redis.Nil):
		middleware.Logger.WarnContext(ctx, "cache read failed", slog.String("key", key), slog.String("error", err.Error()))
	}
	observability.CacheLookups.WithLabelValues("redis", "miss").Inc()

	if err := load(); err != nil {
		return err
	}

	payload, err := json.Marshal(dest)
	if err != nil {
		return nil
	}
	if err := rdb.Set(ctx, key, payload, ttl).Err(); err != nil {
		middleware.Logger.WarnContext(ctx, "cache write failed", slog.String("key", key), slog.String("error", err.Error()))
	}
	return nil
}

func localAside(key string, dest any, ttl time.Duration, load func() error) error {
	if cached, found := local.Get(key); found {
		if raw, ok := cached.([]byte); ok && json.Unmarshal(raw, dest) == nil {
			observability.CacheLookups.WithLabelValues("local", "hit").Inc()
			return nil
		}
	}
	observability.CacheLookups.WithLabelValues("local", "miss").Inc()

	if err := load(); err != nil {
		return err
	}
	if payload, err := json.Marshal(dest); err == nil {
		local.Set(key, payload, ttl)
	}
	return nil
}

// Invalidate drops key from whichever backend is active.
func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
		return
	}
	local.Delete(key)
}

// InvalidateUser drops the cached user record.
func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

// Flush clears the in-process cache.
func Flush() {
	local.Flush()
}
