package ratelimit

import (
	"context"
	"sync"
	"time"
)

type memoryLimiter struct {
	mutex   sync.Mutex
	buckets map[string][]time.Time
	window  time.Duration
	max     int
	now     func() time.Time
}

// NewMemory builds the process-local fallback limiter. Buckets prune
// themselves on every check, so an idle identity costs at most one stale
// slice.
func NewMemory(cfg Config) Limiter {
	return &memoryLimiter{
		buckets: make(map[string][]time.Time),
		window:  cfg.Window,
		max:     cfg.Max,
		now:     time.Now,
	}
}

func (l *memoryLimiter) Check(_ context.Context, identity string) (Result, error) {
	now := l.now()
	cutoff := now.Add(-l.window)

	l.mutex.Lock()
	defer l.mutex.Unlock()

	bucket := l.buckets[identity]
	pruned := bucket[:0]
	for _, ts := range bucket {
		if ts.After(cutoff) {
			pruned = append(pruned, ts)
		}
	}

	if len(pruned) >= l.max {
		l.buckets[identity] = pruned
		return Result{
			Allowed:      false,
			Limit:        l.max,
			Remaining:    0,
			ResetSeconds: l.resetSeconds(pruned, now),
			Backend:      DriverMemory,
		}, nil
	}

	pruned = append(pruned, now)
	l.buckets[identity] = pruned
	remaining := l.max - len(pruned)
	if remaining < 0 {
		remaining = 0
	}
	return Result{
		Allowed:      true,
		Limit:        l.max,
		Remaining:    remaining,
		ResetSeconds: l.resetSeconds(pruned, now),
		Backend:      DriverMemory,
	}, nil
}

func (l *memoryLimiter) resetSeconds(bucket []time.Time, now time.Time) int {
	if len(bucket) == 0 {
		return int(l.window / time.Second)
	}
	reset := int(bucket[0].Add(l.window).Sub(now) / time.Second)
	if reset < 0 {
		reset = 0
	}
	return reset
}

func (l *memoryLimiter) Limits() (int, time.Duration) {
	return l.max, l.window
}

func (l *memoryLimiter) Backend() string {
	return DriverMemory
}

func (l *memoryLimiter) Close() error {
	return nil
}
