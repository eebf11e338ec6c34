package discovery

import (
	"context"

	"github.com/yanqian/hairmatch/internal/domain/scoring"
)

// Request carries the ingredient names to synthesize rules for.
type Request struct {
	Ingredients []string `json:"ingredients"`
}

// Result reports how a discovery batch went.
type Result struct {
	Message   string `json:"message"`
	Count     int    `json:"count"`
	Requested int    `json:"requested"`
}

// RuleStore is the write side of the rule table.
type RuleStore interface {
	ExistingNames(ctx context.Context, names []string) ([]string, error)
	// InsertRules skips rules whose normalized name already exists and
	// returns how many rows were written.
	InsertRules(ctx context.Context, rules []scoring.IngredientRule) (int, error)
}

// Config holds runtime knobs for the discovery service.
type Config struct {
	Model       string
	Temperature float32
	BatchSize   int
}
