package ratelimit

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
)

func newRedisLimiter(t *testing.T, max int, window time.Duration) (*redisLimiter, *time.Time) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	limiter, err := NewRedis(Config{
		Window: window,
		Max:    max,
		Redis:  &RedisConfig{URL: "redis://" + mr.Addr()},
	})
	if err != nil {
		t.Fatalf("NewRedis error: %v", err)
	}
	t.Cleanup(func() { _ = limiter.Close() })

	rl := limiter.(*redisLimiter)
	now := time.Now()
	rl.now = func() time.Time { return now }
	return rl, &now
}

func TestRedisSlidingWindow(t *testing.T) {
	ctx := context.Background()
	l, now := newRedisLimiter(t, 5, time.Minute)

	for i := 1; i <= 5; i++ {
		// Spread requests so sorted-set members never collide on time.
		*now = now.Add(time.Millisecond)
		res, err := l.Check(ctx, "10.0.0.1")
		if err != nil {
			t.Fatalf("Check %d error: %v", i, err)
		}
		if !res.Allowed {
			t.Fatalf("request %d rejected within quota", i)
		}
		if want := 5 - i; res.Remaining != want {
			t.Errorf("request %d remaining = %d, want %d", i, res.Remaining, want)
		}
	}

	*now = now.Add(time.Millisecond)
	res, err := l.Check(ctx, "10.0.0.1")
	if err != nil {
		t.Fatalf("Check error: %v", err)
	}
	if res.Allowed {
		t.Fatal("sixth request within window must be rejected")
	}
	if res.Remaining != 0 {
		t.Errorf("rejected remaining = %d, want 0", res.Remaining)
	}

	*now = now.Add(61 * time.Second)
	res, _ = l.Check(ctx, "10.0.0.1")
	if !res.Allowed {
		t.Fatal("request after window expiry must be admitted")
	}
}

func TestRedisRejectionNotRecorded(t *testing.T) {
	ctx := context.Background()
	l, now := newRedisLimiter(t, 1, time.Minute)

	*now = now.Add(time.Millisecond)
	if res, _ := l.Check(ctx, "ip"); !res.Allowed {
		t.Fatal("first request rejected")
	}

	for i := 0; i < 3; i++ {
		*now = now.Add(time.Second)
		if res, _ := l.Check(ctx, "ip"); res.Allowed {
			t.Fatal("over-quota request admitted")
		}
	}

	// Only the admitted timestamp survives, so the window clears 60s after it.
	*now = now.Add(58 * time.Second)
	if res, _ := l.Check(ctx, "ip"); !res.Allowed {
		t.Fatal("rejected attempts must not count toward the window")
	}
}

func TestRedisIdentitiesAreIndependent(t *testing.T) {
	ctx := context.Background()
	l, now := newRedisLimiter(t, 1, time.Minute)

	*now = now.Add(time.Millisecond)
	if res, _ := l.Check(ctx, "a"); !res.Allowed {
		t.Fatal("first request for a rejected")
	}
	*now = now.Add(time.Millisecond)
	if res, _ := l.Check(ctx, "b"); !res.Allowed {
		t.Fatal("first request for b rejected")
	}
	*now = now.Add(time.Millisecond)
	if res, _ := l.Check(ctx, "a"); res.Allowed {
		t.Fatal("second request for a admitted")
	}
}

func TestRedisUnreachable(t *testing.T) {
	_, err := NewRedis(Config{
		Window: time.Minute,
		Max:    5,
		Redis:  &RedisConfig{URL: "redis://127.0.0.1:1"},
	})
	if err == nil {
		t.Fatal("expected connection error")
	}
}
