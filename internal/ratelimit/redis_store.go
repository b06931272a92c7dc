package ratelimit

import (
	"context"
	"time"

	"github.com/SwissDataScienceCenter/code-marketplace/internal/db"
)

const redisKeySegment string = "ratelimit:"

// decrementScript removes a hit only while the window exists and has hits, DECR on a missing
// key would create a counter without expiry.
const decrementScript string = `
local hits = tonumber(redis.call("GET", KEYS[1]))
if hits and hits > 0 then
	return redis.call("DECR", KEYS[1])
end
return 0
`

// RedisStore keeps the windows in redis so that several server replicas share the limits.
type RedisStore struct {
	client db.LimitedRedisClient
	prefix string
	window time.Duration
	now    func() time.Time
}

type RedisStoreOption func(*RedisStore)

// WithKeyPrefix sets the prefix of all the keys written by the store, usually
// redis.keyPrefix.
func WithKeyPrefix(prefix string) RedisStoreOption {
	return func(r *RedisStore) {
		r.prefix = prefix
	}
}

func NewRedisStore(client db.LimitedRedisClient, window time.Duration, options ...RedisStoreOption) *RedisStore {
	store := RedisStore{client: client, window: window, now: time.Now}
	for _, opt := range options {
		opt(&store)
	}
	return &store
}

func (r *RedisStore) key(key string) string {
	return r.prefix + redisKeySegment + key
}

func (r *RedisStore) Increment(ctx context.Context, key string) (Window, error) {
	redisKey := r.key(key)
	hits, err := r.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return Window{}, err
	}
	if hits == 1 {
		if err := r.client.PExpire(ctx, redisKey, r.window).Err(); err != nil {
			return Window{}, err
		}
		return Window{Hits: hits, ResetAt: r.now().Add(r.window)}, nil
	}
	ttl, err := r.client.PTTL(ctx, redisKey).Result()
	if err != nil {
		return Window{}, err
	}
	// a key without expiry would never reset
	if ttl < 0 {
		if err := r.client.PExpire(ctx, redisKey, r.window).Err(); err != nil {
			return Window{}, err
		}
		ttl = r.window
	}
	return Window{Hits: hits, ResetAt: r.now().Add(ttl)}, nil
}

func (r *RedisStore) Decrement(ctx context.Context, key string) error {
	return r.client.Eval(ctx, decrementScript, []string{r.key(key)}).Err()
}

// Reset forgets the window of key.
func (r *RedisStore) Reset(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.key(key)).Err()
}
