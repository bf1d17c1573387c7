package idempotency

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	body      []byte
	expiresAt time.Time
}

// MemoryStore keeps entries in-process. Save sweeps expired entries first and
// then evicts the oldest-inserted entries until the table is back under the
// cap. Eviction follows insertion order, not recency of use.
type MemoryStore struct {
	mu         sync.Mutex
	entries    map[string]entry
	order      []string // insertion order, oldest first
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
}

func NewMemoryStore(ttl time.Duration, maxEntries int) *MemoryStore {
	return &MemoryStore{
		entries:    make(map[string]entry),
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

func (s *MemoryStore) Lookup(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return nil, false, nil
	}
	if s.now().After(e.expiresAt) {
		s.remove(key)
		return nil, false, nil
	}

	body := make([]byte, len(e.body))
	copy(body, e.body)
	return body, true, nil
}

func (s *MemoryStore) Save(_ context.Context, key string, body []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()

	// Full sweep of expired entries before inserting.
	for _, k := range append([]string(nil), s.order...) {
		if e, ok := s.entries[k]; ok && now.After(e.expiresAt) {
			s.remove(k)
		}
	}

	stored := make([]byte, len(body))
	copy(stored, body)

	if _, exists := s.entries[key]; !exists {
		s.order = append(s.order, key)
	}
	s.entries[key] = entry{body: stored, expiresAt: now.Add(s.ttl)}

	// Trim oldest-inserted entries beyond the cap.
	for s.maxEntries > 0 && len(s.entries) > s.maxEntries {
		s.remove(s.order[0])
	}

	return nil
}

// remove must be called with the lock held.
func (s *MemoryStore) remove(key string) {
	delete(s.entries, key)
	for i, k := range s.order {
		if k == key {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}
