package rulerepo

import (
	"context"
	"sync"

	"github.com/yanqian/hairmatch/internal/domain/discovery"
	"github.com/yanqian/hairmatch/internal/domain/scoring"
)

// MemoryRepository is an in-memory rule table used for tests/dev.
type MemoryRepository struct {
	mu    sync.RWMutex
	rules map[string]scoring.IngredientRule
}

// NewMemoryRepository constructs a repo backed by memory, keyed by the
// normalized form of each seed rule's name.
func NewMemoryRepository(seed ...scoring.IngredientRule) *MemoryRepository {
	repo := &MemoryRepository{rules: make(map[string]scoring.IngredientRule)}
	_, _ = repo.InsertRules(context.Background(), seed)
	return repo
}

// Lookup implements scoring.RuleRepository.
func (r *MemoryRepository) Lookup(_ context.Context, names []string) ([]scoring.IngredientRule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []scoring.IngredientRule
	for _, name := range names {
		if rule, ok := r.rules[name]; ok {
			out = append(out, rule)
		}
	}
	return out, nil
}

// ExistingNames implements discovery.RuleStore.
func (r *MemoryRepository) ExistingNames(_ context.Context, names []string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []string
	for _, name := range names {
		if _, ok := r.rules[name]; ok {
			out = append(out, name)
		}
	}
	return out, nil
}

// InsertRules implements discovery.RuleStore.
func (r *MemoryRepository) InsertRules(_ context.Context, rules []scoring.IngredientRule) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	created := 0
	for _, rule := range rules {
		key := rule.NormalizedName
		if key == "" {
			key = scoring.Normalize(rule.IngredientName)
		} else {
			key = scoring.Normalize(key)
		}
		if key == "" {
			continue
		}
		if _, exists := r.rules[key]; exists {
			continue
		}
		rule.NormalizedName = key
		r.rules[key] = rule
		created++
	}
	return created, nil
}

var (
	_ scoring.RuleRepository = (*MemoryRepository)(nil)
	_ discovery.RuleStore    = (*MemoryRepository)(nil)
)
