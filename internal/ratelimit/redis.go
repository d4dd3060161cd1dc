package ratelimit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCounter keeps counts in Redis so replicas share one budget per client.
type RedisCounter struct {
	rdb    redis.UniversalClient
	prefix string
}

// NewRedisCounter stores keys under prefix, e.g. "taskkeeper:ratelimit:".
func NewRedisCounter(rdb redis.UniversalClient, prefix string) *RedisCounter {
	return &RedisCounter{rdb: rdb, prefix: prefix}
}

func (c *RedisCounter) Incr(ctx context.Context, key string, expireAt time.Time) (int64, error) {
	var incr *redis.IntCmd
	_, err := c.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		incr = p.Incr(ctx, c.prefix+key)
		p.ExpireAt(ctx, c.prefix+key, expireAt)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return incr.Val(), nil
}
