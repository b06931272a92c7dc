package ratelimit

import (
	"errors"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/SwissDataScienceCenter/code-marketplace/internal/config"
	"github.com/SwissDataScienceCenter/code-marketplace/internal/mperrors"
	"github.com/labstack/echo/v4"
)

const (
	HeaderLimit     string = "X-RateLimit-Limit"
	HeaderRemaining string = "X-RateLimit-Remaining"
	HeaderReset     string = "X-RateLimit-Reset"
)

// Limiter allows every client a fixed number of requests per window.
type Limiter struct {
	store          Store
	maxRequests    int64
	skipSuccessful bool
	keyFunc        func(echo.Context) string
	now            func() time.Time
}

type LimiterOption func(*Limiter)

// WithKeyFunc changes how clients are told apart, the default is the client ip address.
func WithKeyFunc(keyFunc func(echo.Context) string) LimiterOption {
	return func(l *Limiter) {
		l.keyFunc = keyFunc
	}
}

func NewLimiter(rateConfig config.RateLimitingConfig, store Store, options ...LimiterOption) *Limiter {
	limiter := Limiter{
		store:          store,
		maxRequests:    int64(rateConfig.MaxRequests),
		skipSuccessful: rateConfig.SkipSuccessfulRequests,
		keyFunc:        func(c echo.Context) string { return c.RealIP() },
		now:            time.Now,
	}
	for _, opt := range options {
		opt(&limiter)
	}
	return &limiter
}

func secondsUntil(now, t time.Time) int64 {
	seconds := math.Ceil(t.Sub(now).Seconds())
	if seconds < 0 {
		return 0
	}
	return int64(seconds)
}

func responseStatus(c echo.Context, err error) int {
	if err == nil {
		return c.Response().Status
	}
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Code
	}
	return http.StatusInternalServerError
}

func (l *Limiter) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			key := l.keyFunc(c)
			window, err := l.store.Increment(ctx, key)
			if err != nil {
				slog.Error("RATE LIMITER", "message", "counting the request failed, letting it through", "key", key, "error", err)
				return next(c)
			}
			remaining := l.maxRequests - window.Hits
			if remaining < 0 {
				remaining = 0
			}
			header := c.Response().Header()
			header.Set(HeaderLimit, strconv.FormatInt(l.maxRequests, 10))
			header.Set(HeaderRemaining, strconv.FormatInt(remaining, 10))
			header.Set(HeaderReset, strconv.FormatInt(int64(math.Ceil(float64(window.ResetAt.UnixMilli())/1000)), 10))
			if window.Hits > l.maxRequests {
				header.Set("Retry-After", strconv.FormatInt(secondsUntil(l.now(), window.ResetAt), 10))
				return echo.NewHTTPError(http.StatusTooManyRequests, mperrors.ErrRateLimited.Error()).SetInternal(mperrors.ErrRateLimited)
			}
			err = next(c)
			if l.skipSuccessful && responseStatus(c, err) < http.StatusBadRequest {
				if decErr := l.store.Decrement(ctx, key); decErr != nil {
					slog.Error("RATE LIMITER", "message", "uncounting the request failed", "key", key, "error", decErr)
				}
			}
			return err
		}
	}
}
