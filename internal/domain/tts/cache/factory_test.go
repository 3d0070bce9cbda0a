package cache

import (
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/rs/zerolog"
)

func TestNewMemoryDefault(t *testing.T) {
	store, err := New(Config{})
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	defer store.Close()
	if store.Backend() != DriverMemory {
		t.Fatalf("Backend = %q", store.Backend())
	}
}

func TestNewUnsupportedDriver(t *testing.T) {
	if _, err := New(Config{Driver: "etcd"}); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}

func TestSelectPrefersRedis(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	defer mr.Close()

	store := Select(Config{
		Redis: &RedisConfig{URL: "redis://" + mr.Addr()},
	}, zerolog.Nop())
	defer store.Close()

	if store.Backend() != DriverRedis {
		t.Fatalf("Backend = %q, want redis", store.Backend())
	}
}

func TestSelectFallsBackToMemory(t *testing.T) {
	store := Select(Config{
		Redis: &RedisConfig{URL: "redis://127.0.0.1:1"},
	}, zerolog.Nop())
	defer store.Close()

	if store.Backend() != DriverMemory {
		t.Fatalf("Backend = %q, want memory fallback", store.Backend())
	}
}

func TestSelectWithoutRedisConfig(t *testing.T) {
	store := Select(Config{}, zerolog.Nop())
	defer store.Close()
	if store.Backend() != DriverMemory {
		t.Fatalf("Backend = %q, want memory", store.Backend())
	}
}
