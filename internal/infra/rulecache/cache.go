package rulecache

import (
	"context"
	"log/slog"
	"time"

	"github.com/yanqian/hairmatch/internal/domain/scoring"
)

// Store holds rules keyed by normalized name. Only known rules are cached so a
// freshly discovered ingredient is visible on the next lookup.
type Store interface {
	GetRules(ctx context.Context, names []string) (map[string]scoring.IngredientRule, error)
	SaveRules(ctx context.Context, rules []scoring.IngredientRule, ttl time.Duration) error
}

// Repository is a read-through cache in front of a scoring.RuleRepository.
type Repository struct {
	next   scoring.RuleRepository
	store  Store
	ttl    time.Duration
	logger *slog.Logger
}

// NewRepository wraps next with store.
func NewRepository(next scoring.RuleRepository, store Store, ttl time.Duration, logger *slog.Logger) *Repository {
	return &Repository{
		next:   next,
		store:  store,
		ttl:    ttl,
		logger: logger.With("component", "rulecache"),
	}
}

// Lookup serves cached rules and loads the remainder from the backing repository.
// Cache failures degrade to a direct lookup.
func (r *Repository) Lookup(ctx context.Context, names []string) ([]scoring.IngredientRule, error) {
	if len(names) == 0 {
		return nil, nil
	}
	cached, err := r.store.GetRules(ctx, names)
	if err != nil {
		r.logger.Warn("rule cache read failed", "error", err)
		cached = nil
	}

	out := make([]scoring.IngredientRule, 0, len(names))
	var pending []string
	for _, name := range names {
		if rule, ok := cached[name]; ok {
			out = append(out, rule)
			continue
		}
		pending = append(pending, name)
	}
	if len(pending) == 0 {
		return out, nil
	}

	loaded, err := r.next.Lookup(ctx, pending)
	if err != nil {
		return nil, err
	}
	if len(loaded) > 0 {
		if err := r.store.SaveRules(ctx, loaded, r.ttl); err != nil {
			r.logger.Warn("rule cache write failed", "error", err)
		}
	}
	return append(out, loaded...), nil
}

var _ scoring.RuleRepository = (*Repository)(nil)
