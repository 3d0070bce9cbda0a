// Package ratelimit implements the sliding-window quota guarding preamble
// synthesis. Like the cache, it runs against Redis when reachable and an
// in-process fallback otherwise.
//
// Both backends use the same admission rule: timestamps older than the window
// are pruned, the surviving count is compared against the limit before the
// current attempt is recorded, and rejected attempts are never recorded. The
// original service let its distributed path record first and count after,
// which admitted one extra request per window; that discrepancy is resolved
// here in favor of the stricter check-first rule.
package ratelimit

import (
	"context"
	"time"
)

// Result reports one admission decision.
type Result struct {
	Allowed      bool
	Limit        int
	Remaining    int
	ResetSeconds int
	Backend      string
}

// Limiter decides whether a client identity may synthesize right now, and
// records the attempt when admitted.
type Limiter interface {
	Check(ctx context.Context, identity string) (Result, error)
	// Limits reports the configured quota and window length.
	Limits() (max int, window time.Duration)
	Backend() string
	Close() error
}

// Driver identifiers supported by the limiter.
const (
	DriverMemory = "memory"
	DriverRedis  = "redis"
)

// Config describes the limiter parameters.
type Config struct {
	// Window is the sliding window length.
	Window time.Duration
	// Max is the number of requests admitted per identity per window.
	Max int
	// Redis selects the distributed backend when set.
	Redis *RedisConfig
}

// RedisConfig captures connection options for the distributed backend.
type RedisConfig struct {
	URL    string
	Prefix string
}
