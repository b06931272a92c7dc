package db

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// LimitedRedisClient is the limited set of functionality expected from the redis client.
// This allows for easy mocking and swapping of the client. The universal redis client interface is way too big.
type LimitedRedisClient interface {
	// PING
	Ping(ctx context.Context) *redis.StatusCmd

	// INCR key
	Incr(ctx context.Context, key string) *redis.IntCmd
	// PEXPIRE key milliseconds
	PExpire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
	// PTTL key
	PTTL(ctx context.Context, key string) *redis.DurationCmd
	// DEL key [key ...]
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	// EVAL script numkeys [key ...] [arg ...]
	Eval(ctx context.Context, script string, keys []string, args ...any) *redis.Cmd
}
