package ratelimit

import (
	"context"
	"time"
)

// Window is the state of the fixed window of one client after a hit was counted.
type Window struct {
	Hits    int64
	ResetAt time.Time
}

type Store interface {
	// Increment counts a hit for key, opening a new window when the previous one has expired.
	Increment(ctx context.Context, key string) (Window, error)
	// Decrement removes a hit counted in the current window of key.
	Decrement(ctx context.Context, key string) error
}
