package cache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"

	"github.com/in-nis/academy-grid/internal/grid"
)

// Connect returns nil when addr is empty or Redis does not answer; the
// service then runs without a grid cache.
func Connect(ctx context.Context, addr string) *redis.Client {
	if addr == "" {
		slog.Warn("REDIS_ADDR not set, grid cache disabled")
		return nil
	}

	rdb := redis.NewClient(&redis.Options{Addr: addr})
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		slog.Error("failed to connect to redis, grid cache disabled", "error", err)
		_ = rdb.Close()
		return nil
	}

	slog.Info("connected to redis", "addr", addr)
	return rdb
}

// RedisCache stores materialized grids as JSON next to a per-scope
// generation counter.
type RedisCache struct {
	rdb *redis.Client
	ttl time.Duration
}

var _ grid.Cache = (*RedisCache)(nil)

func NewRedisCache(rdb *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{rdb: rdb, ttl: ttl}
}

func Key(scope grid.Scope) string {
	return "grid:" + scope.Shape.Name + ":" + scope.AcademyID
}

// GenerationKey holds the invalidation counter of a scope. It never expires.
func GenerationKey(scope grid.Scope) string {
	return "grid:gen:" + scope.Shape.Name + ":" + scope.AcademyID
}

func (c *RedisCache) Get(ctx context.Context, scope grid.Scope) (grid.Grid, bool, error) {
	raw, err := c.rdb.Get(ctx, Key(scope)).Bytes()
	if errors.Is(err, redis.Nil) {
		return grid.Grid{}, false, nil
	}
	if err != nil {
		return grid.Grid{}, false, err
	}

	var g grid.Grid
	if err := sonic.Unmarshal(raw, &g); err != nil {
		return grid.Grid{}, false, err
	}
	return g, true, nil
}

func (c *RedisCache) Generation(ctx context.Context, scope grid.Scope) (int64, error) {
	return generation(ctx, c.rdb, GenerationKey(scope))
}

// Set stores g only if the scope generation is still gen. A concurrent
// Invalidate either bumps the counter before the check or aborts the EXEC.
func (c *RedisCache) Set(ctx context.Context, scope grid.Scope, g grid.Grid, gen int64) (bool, error) {
	raw, err := sonic.Marshal(g)
	if err != nil {
		return false, err
	}

	genKey := GenerationKey(scope)
	stored := false
	err = c.rdb.Watch(ctx, func(tx *redis.Tx) error {
		current, err := generation(ctx, tx, genKey)
		if err != nil {
			return err
		}
		if current != gen {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, Key(scope), raw, c.ttl)
			return nil
		})
		if err == nil {
			stored = true
		}
		return err
	}, genKey)
	if errors.Is(err, redis.TxFailedErr) {
		return false, nil
	}
	return stored, err
}

func (c *RedisCache) Invalidate(ctx context.Context, scope grid.Scope) error {
	_, err := c.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, GenerationKey(scope))
		pipe.Del(ctx, Key(scope))
		return nil
	})
	return err
}

type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func generation(ctx context.Context, cmd getter, key string) (int64, error) {
	gen, err := cmd.Get(ctx, key).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}
