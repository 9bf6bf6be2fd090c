// pkg/memcache/catalog_store.go
package memcache

import (
	"context"
	"sync"
	"time"
)

type CatalogStore interface {
	// Get returns the payload stored under key if it is still live.
	// Expired entries are removed and reported as missing.
	Get(ctx context.Context, key string) ([]byte, bool)

	Set(ctx context.Context, key string, payload []byte)
}

type entry struct {
	payload    []byte
	capturedAt time.Time
}

// TTLStore is the in-process catalog cache shared by all requests.
type TTLStore struct {
	mu   sync.RWMutex
	data map[string]entry
	ttl  time.Duration
	now  func() time.Time
}

func NewTTLStore(ttl time.Duration) *TTLStore {
	return NewTTLStoreWithClock(ttl, time.Now)
}

func NewTTLStoreWithClock(ttl time.Duration, now func() time.Time) *TTLStore {
	return &TTLStore{
		data: make(map[string]entry),
		ttl:  ttl,
		now:  now,
	}
}

func (s *TTLStore) Get(_ context.Context, key string) ([]byte, bool) {
	s.mu.RLock()
	e, ok := s.data[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}

	if s.now().Sub(e.capturedAt) < s.ttl {
		return e.payload, true
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// another request may have refreshed the key between the two locks
	if cur, ok := s.data[key]; ok && cur.capturedAt.Equal(e.capturedAt) {
		delete(s.data, key)
	}
	return nil, false
}

func (s *TTLStore) Set(_ context.Context, key string, payload []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = entry{
		payload:    payload,
		capturedAt: s.now(),
	}
}

// Len reports the number of stored entries, live or not yet evicted.
func (s *TTLStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}
