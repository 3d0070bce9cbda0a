package ratelimit

import (
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/rs/zerolog"
)

func TestSelectPrefersRedis(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	defer mr.Close()

	limiter := Select(Config{
		Window: time.Minute,
		Max:    5,
		Redis:  &RedisConfig{URL: "redis://" + mr.Addr()},
	}, zerolog.Nop())
	defer limiter.Close()

	if limiter.Backend() != DriverRedis {
		t.Fatalf("Backend = %q, want redis", limiter.Backend())
	}
}

func TestSelectFallsBackToMemory(t *testing.T) {
	limiter := Select(Config{
		Window: time.Minute,
		Max:    5,
		Redis:  &RedisConfig{URL: "redis://127.0.0.1:1"},
	}, zerolog.Nop())
	defer limiter.Close()

	if limiter.Backend() != DriverMemory {
		t.Fatalf("Backend = %q, want memory fallback", limiter.Backend())
	}
}

func TestSelectWithoutRedisConfig(t *testing.T) {
	limiter := Select(Config{Window: time.Minute, Max: 5}, zerolog.Nop())
	defer limiter.Close()
	if limiter.Backend() != DriverMemory {
		t.Fatalf("Backend = %q, want memory", limiter.Backend())
	}
}
