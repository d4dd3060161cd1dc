// Package ratelimit implements a fixed-window request limiter. Counters are
// pluggable so several server replicas can share them through Redis.
package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"
)

// Counter increments the hit count stored under key and returns the new
// value. The entry may be discarded once expireAt has passed.
type Counter interface {
	Incr(ctx context.Context, key string, expireAt time.Time) (int64, error)
}

// Limiter allows at most limit hits per key in each window. Windows are
// aligned to multiples of the window length.
type Limiter struct {
	counter Counter
	limit   int
	window  time.Duration
	now     func() time.Time
}

type Option func(*Limiter)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) { l.now = now }
}

func New(counter Counter, limit int, window time.Duration, opts ...Option) *Limiter {
	l := &Limiter{counter: counter, limit: limit, window: window, now: time.Now}
	for _, o := range opts {
		o(l)
	}
	return l
}

// Allow records a hit for key and reports whether it is within the limit.
// retryAfter is the time left until the current window closes.
func (l *Limiter) Allow(ctx context.Context, key string) (allowed bool, retryAfter time.Duration, err error) {
	now := l.now()
	start := now.Truncate(l.window)
	end := start.Add(l.window)

	n, err := l.counter.Incr(ctx, key+":"+strconv.FormatInt(start.Unix(), 10), end)
	if err != nil {
		return false, 0, fmt.Errorf("rate limit counter: %w", err)
	}
	if n > int64(l.limit) {
		return false, end.Sub(now), nil
	}
	return true, 0, nil
}
