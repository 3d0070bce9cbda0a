package cache

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	expiresAt time.Time
	payload   []byte
}

type memoryStore struct {
	mutex sync.RWMutex
	items map[string]memoryEntry
	now   func() time.Time
}

// NewMemory builds the process-local fallback store. Expired entries are
// evicted lazily when read.
func NewMemory() Store {
	return &memoryStore{
		items: make(map[string]memoryEntry),
		now:   time.Now,
	}
}

func (s *memoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mutex.RLock()
	entry, ok := s.items[key]
	s.mutex.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if s.now().After(entry.expiresAt) {
		s.mutex.Lock()
		// Re-check under the write lock; a concurrent Put may have refreshed it.
		if current, still := s.items[key]; still && s.now().After(current.expiresAt) {
			delete(s.items, key)
		}
		s.mutex.Unlock()
		return nil, false, nil
	}
	return entry.payload, true, nil
}

func (s *memoryStore) Put(_ context.Context, key string, payload []byte, ttl time.Duration) error {
	s.mutex.Lock()
	s.items[key] = memoryEntry{
		expiresAt: s.now().Add(ttl),
		payload:   payload,
	}
	s.mutex.Unlock()
	return nil
}

func (s *memoryStore) Len(_ context.Context) (int, error) {
	now := s.now()
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	count := 0
	for _, entry := range s.items {
		if now.Before(entry.expiresAt) {
			count++
		}
	}
	return count, nil
}

func (s *memoryStore) Backend() string {
	return DriverMemory
}

func (s *memoryStore) Close() error {
	return nil
}
