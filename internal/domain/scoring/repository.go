package scoring

import "context"

// RuleRepository resolves normalized ingredient names to rules. Result order is
// unspecified and names without a rule are simply absent.
type RuleRepository interface {
	Lookup(ctx context.Context, names []string) ([]IngredientRule, error)
}

// ProfileRepository loads hair profiles.
type ProfileRepository interface {
	LatestForUser(ctx context.Context, userID string) (HairProfile, bool, error)
}

// ProductRepository loads product ingredient data.
type ProductRepository interface {
	Ingredients(ctx context.Context, productID string) (ProductIngredients, bool, error)
}

// ScoreRepository persists one score per (user, product); Upsert replaces any
// existing row for the pair.
type ScoreRepository interface {
	Upsert(ctx context.Context, score StoredScore) error
	Get(ctx context.Context, userID, productID string) (StoredScore, bool, error)
	ListByUser(ctx context.Context, userID string) ([]StoredScore, error)
}

// Dispatcher requests rule discovery for unmatched names. Implementations must
// return without waiting on the receiving side.
type Dispatcher interface {
	Dispatch(ctx context.Context, names []string)
}
