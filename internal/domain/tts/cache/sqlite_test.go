package cache

import (
	"bytes"
	"context"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newSQLiteStore(t *testing.T) *sqliteStore {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	store, err := NewSQLite(db)
	if err != nil {
		t.Fatalf("NewSQLite error: %v", err)
	}
	return store.(*sqliteStore)
}

func TestSQLiteRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newSQLiteStore(t)

	payload := []byte("mp3-bytes")
	if err := store.Put(ctx, "k1", payload, time.Minute); err != nil {
		t.Fatalf("Put error: %v", err)
	}
	got, ok, err := store.Get(ctx, "k1")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if !ok || !bytes.Equal(got, payload) {
		t.Fatalf("Get = (%q, %v), want stored payload", got, ok)
	}
}

func TestSQLiteExpiry(t *testing.T) {
	ctx := context.Background()
	store := newSQLiteStore(t)

	now := time.Now()
	store.now = func() time.Time { return now }

	_ = store.Put(ctx, "k1", []byte("a"), 30*time.Second)

	now = now.Add(time.Minute)
	if _, ok, _ := store.Get(ctx, "k1"); ok {
		t.Fatal("entry survived past its ttl")
	}
	if n, _ := store.Len(ctx); n != 0 {
		t.Fatalf("Len = %d after expiry", n)
	}
}

func TestSQLiteOverwrite(t *testing.T) {
	ctx := context.Background()
	store := newSQLiteStore(t)

	_ = store.Put(ctx, "k1", []byte("old"), time.Minute)
	if err := store.Put(ctx, "k1", []byte("new"), time.Minute); err != nil {
		t.Fatalf("overwrite error: %v", err)
	}
	got, ok, _ := store.Get(ctx, "k1")
	if !ok || string(got) != "new" {
		t.Fatalf("Get = (%q, %v), want overwritten payload", got, ok)
	}
}
