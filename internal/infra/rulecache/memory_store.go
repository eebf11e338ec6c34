package rulecache

import (
	"context"
	"sync"
	"time"

	"github.com/yanqian/hairmatch/internal/domain/scoring"
)

type memoryEntry struct {
	rule    scoring.IngredientRule
	expires time.Time
}

// MemoryStore is a process local Store.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemoryStore constructs an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]memoryEntry), now: time.Now}
}

// GetRules implements Store.
func (s *MemoryStore) GetRules(_ context.Context, names []string) (map[string]scoring.IngredientRule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	now := s.now()
	out := make(map[string]scoring.IngredientRule, len(names))
	for _, name := range names {
		entry, ok := s.entries[name]
		if !ok || (!entry.expires.IsZero() && now.After(entry.expires)) {
			continue
		}
		out[name] = entry.rule
	}
	return out, nil
}

// SaveRules implements Store. A non-positive ttl never expires.
func (s *MemoryStore) SaveRules(_ context.Context, rules []scoring.IngredientRule, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var expires time.Time
	if ttl > 0 {
		expires = s.now().Add(ttl)
	}
	for _, rule := range rules {
		s.entries[rule.NormalizedName] = memoryEntry{rule: rule, expires: expires}
	}
	return nil
}

var _ Store = (*MemoryStore)(nil)
