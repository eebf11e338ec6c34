package scoring

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	apperrors "github.com/yanqian/hairmatch/pkg/errors"
	"github.com/yanqian/hairmatch/pkg/metrics"
)

// Service computes and serves compatibility scores.
type Service interface {
	Score(ctx context.Context, userID string, req ScoreRequest) (ScoreResult, error)
	Get(ctx context.Context, userID, productID string) (StoredScore, error)
	List(ctx context.Context, userID string) ([]StoredScore, error)
}

type service struct {
	cfg        Config
	rules      RuleRepository
	profiles   ProfileRepository
	products   ProductRepository
	scores     ScoreRepository
	dispatcher Dispatcher
	logger     *slog.Logger
	now        func() time.Time
}

// NewService wires up the scoring domain.
func NewService(
	cfg Config,
	rules RuleRepository,
	profiles ProfileRepository,
	products ProductRepository,
	scores ScoreRepository,
	dispatcher Dispatcher,
	logger *slog.Logger,
) Service {
	if cfg.DiscoveryBatch <= 0 {
		cfg.DiscoveryBatch = DefaultDiscoveryBatch
	}
	return &service{
		cfg:        cfg,
		rules:      rules,
		profiles:   profiles,
		products:   products,
		scores:     scores,
		dispatcher: dispatcher,
		logger:     logger.With("component", "scoring.service"),
		now:        time.Now,
	}
}

func (s *service) Score(ctx context.Context, userID string, req ScoreRequest) (ScoreResult, error) {
	result, err := s.score(ctx, userID, req)
	metrics.ScoreRequests.WithLabelValues(resultCode(err)).Inc()
	return result, err
}

func (s *service) score(ctx context.Context, userID string, req ScoreRequest) (ScoreResult, error) {
	productID := strings.TrimSpace(req.ProductID)
	if productID == "" {
		return ScoreResult{}, apperrors.Wrap(apperrors.CodeInvalidInput, "product_id is required", nil)
	}

	var (
		profile       HairProfile
		hasProfile    bool
		ingredients   ProductIngredients
		hasProduct    bool
		profileErr    error
		ingredientErr error
	)
	// Both loads run to completion so the checks below stay in a fixed order.
	var g errgroup.Group
	g.Go(func() error {
		profile, hasProfile, profileErr = s.profiles.LatestForUser(ctx, userID)
		return nil
	})
	g.Go(func() error {
		ingredients, hasProduct, ingredientErr = s.products.Ingredients(ctx, productID)
		return nil
	})
	_ = g.Wait()

	if profileErr != nil {
		return ScoreResult{}, apperrors.Wrap(apperrors.CodeStorage, "failed to load hair profile", profileErr)
	}
	if !hasProfile {
		return ScoreResult{}, apperrors.Wrap(apperrors.CodeNotFound, "No hair profile found. Complete the questionnaire first.", nil)
	}
	if ingredientErr != nil {
		return ScoreResult{}, apperrors.Wrap(apperrors.CodeStorage, "failed to load product ingredients", ingredientErr)
	}
	if !hasProduct {
		return ScoreResult{}, apperrors.Wrap(apperrors.CodeNotFound, "No ingredients data for this product.", nil)
	}

	names := IngredientNames(ingredients)
	if len(names) == 0 {
		return ScoreResult{}, apperrors.Wrap(apperrors.CodeInvalidInput, "No parseable ingredients found for this product.", nil)
	}

	normalized := NormalizeAll(names)
	keys := Distinct(normalized)
	var found []IngredientRule
	if len(keys) > 0 {
		var err error
		found, err = s.rules.Lookup(ctx, keys)
		if err != nil {
			return ScoreResult{}, apperrors.Wrap(apperrors.CodeStorage, "failed to look up ingredient rules", err)
		}
	}
	matched, missing := Partition(normalized, found)

	result := Calculate(profile, matched, len(names), s.cfg.Weights)
	result.MissingIngredients = missing
	metrics.ScoreCoverage.Observe(float64(len(matched)) / float64(len(names)))

	stored := NewStoredScore(userID, productID, profile.ID, result, s.now().UTC())
	if err := s.scores.Upsert(ctx, stored); err != nil {
		metrics.ScorePersistFailures.Inc()
		s.logger.Warn("failed to save score", "productId", productID, "userId", userID, "error", err)
	}

	if batch := Distinct(missing); len(batch) > 0 {
		if len(batch) > s.cfg.DiscoveryBatch {
			batch = batch[:s.cfg.DiscoveryBatch]
		}
		s.dispatcher.Dispatch(ctx, batch)
	}

	s.logger.Info("scored product",
		"productId", productID,
		"userId", userID,
		"overall", result.OverallScore,
		"matched", len(matched),
		"total", len(names),
	)
	return result, nil
}

func (s *service) Get(ctx context.Context, userID, productID string) (StoredScore, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return StoredScore{}, apperrors.Wrap(apperrors.CodeInvalidInput, "product_id is required", nil)
	}
	score, found, err := s.scores.Get(ctx, userID, productID)
	if err != nil {
		return StoredScore{}, apperrors.Wrap(apperrors.CodeStorage, "failed to load score", err)
	}
	if !found {
		return StoredScore{}, apperrors.Wrap(apperrors.CodeNotFound, "No score found for this product.", nil)
	}
	return score, nil
}

func (s *service) List(ctx context.Context, userID string) ([]StoredScore, error) {
	scores, err := s.scores.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeStorage, "failed to list scores", err)
	}
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].UpdatedAt.After(scores[j].UpdatedAt)
	})
	if scores == nil {
		scores = []StoredScore{}
	}
	return scores, nil
}

func resultCode(err error) string {
	if err == nil {
		return "ok"
	}
	for _, code := range []string{
		apperrors.CodeInvalidInput,
		apperrors.CodeNotFound,
		apperrors.CodeStorage,
	} {
		if apperrors.IsCode(err, code) {
			return code
		}
	}
	return "internal"
}
