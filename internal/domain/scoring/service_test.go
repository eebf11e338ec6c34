package scoring

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	apperrors "github.com/yanqian/hairmatch/pkg/errors"
)

type stubRules struct {
	lookupFn func(ctx context.Context, names []string) ([]IngredientRule, error)
	calls    [][]string
}

func (s *stubRules) Lookup(ctx context.Context, names []string) ([]IngredientRule, error) {
	s.calls = append(s.calls, names)
	if s.lookupFn == nil {
		return nil, nil
	}
	return s.lookupFn(ctx, names)
}

type stubProfiles struct {
	latestFn func(ctx context.Context, userID string) (HairProfile, bool, error)
}

func (s *stubProfiles) LatestForUser(ctx context.Context, userID string) (HairProfile, bool, error) {
	return s.latestFn(ctx, userID)
}

type stubProducts struct {
	ingredientsFn func(ctx context.Context, productID string) (ProductIngredients, bool, error)
}

func (s *stubProducts) Ingredients(ctx context.Context, productID string) (ProductIngredients, bool, error) {
	return s.ingredientsFn(ctx, productID)
}

type stubScores struct {
	mu       sync.Mutex
	upsertFn func(ctx context.Context, score StoredScore) error
	saved    []StoredScore
	rows     []StoredScore
}

func (s *stubScores) Upsert(ctx context.Context, score StoredScore) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.upsertFn != nil {
		if err := s.upsertFn(ctx, score); err != nil {
			return err
		}
	}
	s.saved = append(s.saved, score)
	return nil
}

func (s *stubScores) Get(_ context.Context, userID, productID string) (StoredScore, bool, error) {
	for _, row := range s.rows {
		if row.UserID == userID && row.ProductID == productID {
			return row, true, nil
		}
	}
	return StoredScore{}, false, nil
}

func (s *stubScores) ListByUser(_ context.Context, userID string) ([]StoredScore, error) {
	var out []StoredScore
	for _, row := range s.rows {
		if row.UserID == userID {
			out = append(out, row)
		}
	}
	return out, nil
}

type recordingDispatcher struct {
	batches [][]string
}

func (d *recordingDispatcher) Dispatch(_ context.Context, names []string) {
	d.batches = append(d.batches, names)
}

type fixture struct {
	rules      *stubRules
	profiles   *stubProfiles
	products   *stubProducts
	scores     *stubScores
	dispatcher *recordingDispatcher
	svc        Service
}

func newFixture(t *testing.T, raw string, rules []IngredientRule) *fixture {
	t.Helper()
	f := &fixture{
		rules: &stubRules{lookupFn: func(context.Context, []string) ([]IngredientRule, error) {
			return rules, nil
		}},
		profiles: &stubProfiles{latestFn: func(_ context.Context, userID string) (HairProfile, bool, error) {
			return HairProfile{ID: "profile-1", UserID: userID, Porosity: "high", Density: "thick"}, true, nil
		}},
		products: &stubProducts{ingredientsFn: func(_ context.Context, productID string) (ProductIngredients, bool, error) {
			return ProductIngredients{ProductID: productID, RawText: raw}, true, nil
		}},
		scores:     &stubScores{},
		dispatcher: &recordingDispatcher{},
	}
	f.svc = f.build(Config{Weights: DefaultWeights()})
	return f
}

func (f *fixture) build(cfg Config) Service {
	return NewService(cfg, f.rules, f.profiles, f.products, f.scores, f.dispatcher, newTestLogger())
}

func TestServiceScore(t *testing.T) {
	rules := []IngredientRule{
		{NormalizedName: "glycerin", MoistureScore: 4, Confidence: 0.9},
		{NormalizedName: "water", MoistureScore: 1, Confidence: 1},
	}
	f := newFixture(t, "Water, Glycerin, Fragrance (Parfum), Water", rules)

	res, err := f.svc.Score(context.Background(), "user-1", ScoreRequest{ProductID: "prod-1"})
	require.NoError(t, err)

	require.Equal(t, 3, res.Breakdown.MatchedCount)
	require.Equal(t, 4, res.Breakdown.TotalCount)
	require.Equal(t, []string{"fragrance parfum"}, res.MissingIngredients)
	require.Equal(t, [][]string{{"water", "glycerin", "fragrance parfum"}}, f.rules.calls)

	require.Len(t, f.scores.saved, 1)
	saved := f.scores.saved[0]
	require.Equal(t, "user-1", saved.UserID)
	require.Equal(t, "prod-1", saved.ProductID)
	require.Equal(t, "profile-1", saved.HairProfileID)
	require.Equal(t, res.OverallScore, saved.OverallScore)
	require.Equal(t, res.Breakdown, saved.Breakdown)

	require.Equal(t, [][]string{{"fragrance parfum"}}, f.dispatcher.batches)
}

func TestServiceScoreMatchesCalculator(t *testing.T) {
	rules := []IngredientRule{
		{NormalizedName: "shea butter", MoistureScore: 5, PorosityHighScore: 4, Confidence: 0.8},
	}
	f := newFixture(t, "Aqua, Shea Butter", rules)

	res, err := f.svc.Score(context.Background(), "user-1", ScoreRequest{ProductID: "prod-1"})
	require.NoError(t, err)

	want := Calculate(HairProfile{Porosity: "high", Density: "thick"}, rules, 2, DefaultWeights())
	want.MissingIngredients = []string{"aqua"}
	require.Equal(t, want, res)
}

func TestServiceScoreNoDispatchWhenFullyMatched(t *testing.T) {
	f := newFixture(t, "Water", []IngredientRule{{NormalizedName: "water", Confidence: 1}})

	res, err := f.svc.Score(context.Background(), "user-1", ScoreRequest{ProductID: "prod-1"})
	require.NoError(t, err)
	require.Empty(t, res.MissingIngredients)
	require.Empty(t, f.dispatcher.batches)
}

func TestServiceScoreCapsDiscoveryBatch(t *testing.T) {
	raw := ""
	for i := 0; i < 30; i++ {
		raw += "Extract " + string(rune('a'+i%26)) + string(rune('a'+i/26)) + ", "
	}
	raw += "Extract aa"
	f := newFixture(t, raw, nil)

	res, err := f.svc.Score(context.Background(), "user-1", ScoreRequest{ProductID: "prod-1"})
	require.NoError(t, err)
	require.Len(t, res.MissingIngredients, 31)
	require.Len(t, f.dispatcher.batches, 1)
	require.Len(t, f.dispatcher.batches[0], DefaultDiscoveryBatch)
	require.Equal(t, "extract aa", f.dispatcher.batches[0][0])

	f.svc = f.build(Config{Weights: DefaultWeights(), DiscoveryBatch: 5})
	_, err = f.svc.Score(context.Background(), "user-1", ScoreRequest{ProductID: "prod-1"})
	require.NoError(t, err)
	require.Len(t, f.dispatcher.batches[1], 5)
}

func TestServiceScoreSymbolOnlyNames(t *testing.T) {
	f := newFixture(t, "Water, ***", []IngredientRule{{NormalizedName: "water", Confidence: 1}})

	res, err := f.svc.Score(context.Background(), "user-1", ScoreRequest{ProductID: "prod-1"})
	require.NoError(t, err)
	require.Equal(t, 2, res.Breakdown.TotalCount)
	require.Equal(t, []string{""}, res.MissingIngredients)
	require.Equal(t, [][]string{{"water"}}, f.rules.calls)
	require.Empty(t, f.dispatcher.batches)
}

func TestServiceScorePersistFailureIsIgnored(t *testing.T) {
	f := newFixture(t, "Water, Silicone", nil)
	f.scores.upsertFn = func(context.Context, StoredScore) error {
		return errors.New("connection reset")
	}

	res, err := f.svc.Score(context.Background(), "user-1", ScoreRequest{ProductID: "prod-1"})
	require.NoError(t, err)
	require.Equal(t, []string{"water", "silicone"}, res.MissingIngredients)
	require.Len(t, f.dispatcher.batches, 1)
}

func TestServiceScoreErrors(t *testing.T) {
	storeErr := errors.New("db down")
	cases := []struct {
		name    string
		req     ScoreRequest
		mutate  func(f *fixture)
		code    string
		message string
	}{
		{
			name:    "missing product id",
			req:     ScoreRequest{ProductID: "  "},
			code:    apperrors.CodeInvalidInput,
			message: "product_id is required",
		},
		{
			name: "no profile",
			mutate: func(f *fixture) {
				f.profiles.latestFn = func(context.Context, string) (HairProfile, bool, error) {
					return HairProfile{}, false, nil
				}
				f.products.ingredientsFn = func(context.Context, string) (ProductIngredients, bool, error) {
					return ProductIngredients{}, false, nil
				}
			},
			code:    apperrors.CodeNotFound,
			message: "No hair profile found. Complete the questionnaire first.",
		},
		{
			name: "no ingredients",
			mutate: func(f *fixture) {
				f.products.ingredientsFn = func(context.Context, string) (ProductIngredients, bool, error) {
					return ProductIngredients{}, false, nil
				}
			},
			code:    apperrors.CodeNotFound,
			message: "No ingredients data for this product.",
		},
		{
			name: "unparseable ingredients",
			mutate: func(f *fixture) {
				f.products.ingredientsFn = func(_ context.Context, id string) (ProductIngredients, bool, error) {
					return ProductIngredients{ProductID: id, RawText: " , "}, true, nil
				}
			},
			code:    apperrors.CodeInvalidInput,
			message: "No parseable ingredients found for this product.",
		},
		{
			name: "profile store failure",
			mutate: func(f *fixture) {
				f.profiles.latestFn = func(context.Context, string) (HairProfile, bool, error) {
					return HairProfile{}, false, storeErr
				}
			},
			code: apperrors.CodeStorage,
		},
		{
			name: "rule lookup failure",
			mutate: func(f *fixture) {
				f.rules.lookupFn = func(context.Context, []string) ([]IngredientRule, error) {
					return nil, storeErr
				}
			},
			code: apperrors.CodeStorage,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t, "Water", nil)
			if tc.mutate != nil {
				tc.mutate(f)
			}
			req := tc.req
			if req.ProductID == "" {
				req.ProductID = "prod-1"
			}
			_, err := f.svc.Score(context.Background(), "user-1", req)
			require.Error(t, err)
			require.True(t, apperrors.IsCode(err, tc.code), "unexpected error %v", err)
			if tc.message != "" {
				require.Equal(t, tc.message, apperrors.Message(err))
			}
			require.Empty(t, f.scores.saved)
			require.Empty(t, f.dispatcher.batches)
		})
	}
}

func TestServiceGetAndList(t *testing.T) {
	f := newFixture(t, "Water", nil)
	older := StoredScore{UserID: "user-1", ProductID: "a", OverallScore: 40, UpdatedAt: time.Unix(100, 0)}
	newer := StoredScore{UserID: "user-1", ProductID: "b", OverallScore: 70, UpdatedAt: time.Unix(200, 0)}
	other := StoredScore{UserID: "user-2", ProductID: "a", OverallScore: 90, UpdatedAt: time.Unix(300, 0)}
	f.scores.rows = []StoredScore{older, other, newer}

	got, err := f.svc.Get(context.Background(), "user-1", "a")
	require.NoError(t, err)
	require.Equal(t, older, got)

	_, err = f.svc.Get(context.Background(), "user-1", "missing")
	require.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))

	list, err := f.svc.List(context.Background(), "user-1")
	require.NoError(t, err)
	require.Equal(t, []StoredScore{newer, older}, list)

	list, err = f.svc.List(context.Background(), "nobody")
	require.NoError(t, err)
	require.NotNil(t, list)
	require.Empty(t, list)
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
