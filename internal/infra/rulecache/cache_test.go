package rulecache

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/hairmatch/internal/domain/scoring"
)

type stubRules struct {
	rules map[string]scoring.IngredientRule
	calls [][]string
	err   error
}

func (s *stubRules) Lookup(_ context.Context, names []string) ([]scoring.IngredientRule, error) {
	s.calls = append(s.calls, names)
	if s.err != nil {
		return nil, s.err
	}
	var out []scoring.IngredientRule
	for _, name := range names {
		if rule, ok := s.rules[name]; ok {
			out = append(out, rule)
		}
	}
	return out, nil
}

type failingStore struct{}

func (failingStore) GetRules(context.Context, []string) (map[string]scoring.IngredientRule, error) {
	return nil, errors.New("cache down")
}

func (failingStore) SaveRules(context.Context, []scoring.IngredientRule, time.Duration) error {
	return errors.New("cache down")
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRepositoryReadThrough(t *testing.T) {
	backing := &stubRules{rules: map[string]scoring.IngredientRule{
		"water":    {NormalizedName: "water", MoistureScore: 1},
		"glycerin": {NormalizedName: "glycerin", MoistureScore: 4},
	}}
	repo := NewRepository(backing, NewMemoryStore(), time.Minute, newTestLogger())
	ctx := context.Background()

	first, err := repo.Lookup(ctx, []string{"water", "glycerin", "aloe"})
	require.NoError(t, err)
	require.Len(t, first, 2)

	second, err := repo.Lookup(ctx, []string{"water", "glycerin", "aloe"})
	require.NoError(t, err)
	require.ElementsMatch(t, first, second)

	// misses are never cached
	require.Equal(t, [][]string{{"water", "glycerin", "aloe"}, {"aloe"}}, backing.calls)
}

func TestRepositoryDegradesOnCacheFailure(t *testing.T) {
	backing := &stubRules{rules: map[string]scoring.IngredientRule{"water": {NormalizedName: "water"}}}
	repo := NewRepository(backing, failingStore{}, time.Minute, newTestLogger())

	got, err := repo.Lookup(context.Background(), []string{"water"})
	require.NoError(t, err)
	require.Len(t, got, 1)
}

func TestRepositoryPropagatesBackingError(t *testing.T) {
	repo := NewRepository(&stubRules{err: errors.New("db down")}, NewMemoryStore(), time.Minute, newTestLogger())
	_, err := repo.Lookup(context.Background(), []string{"water"})
	require.ErrorContains(t, err, "db down")
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore()
	now := time.Unix(1000, 0)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, store.SaveRules(ctx, []scoring.IngredientRule{{NormalizedName: "water"}}, time.Minute))
	got, err := store.GetRules(ctx, []string{"water"})
	require.NoError(t, err)
	require.Contains(t, got, "water")

	now = now.Add(2 * time.Minute)
	got, err = store.GetRules(ctx, []string{"water"})
	require.NoError(t, err)
	require.Empty(t, got)
}
