package main

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/hairmatch/internal/domain/scoring"
	"github.com/yanqian/hairmatch/internal/infra/config"
	"github.com/yanqian/hairmatch/internal/infra/discoveryqueue"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func memoryConfig() *config.Config {
	return &config.Config{
		Discovery: config.DiscoveryConfig{
			Mode:            config.DiscoveryModeQueue,
			BatchSize:       20,
			DispatchTimeout: time.Second,
		},
		Seed: config.SeedConfig{Path: filepath.Join("..", "..", "configs", "seed.yaml")},
	}
}

func TestMemoryWiringScoresSeededProduct(t *testing.T) {
	cfg := memoryConfig()
	logger := newTestLogger()

	mem, err := provideMemoryBackend(cfg, nil, logger)
	require.NoError(t, err)
	table := provideRuleTable(nil, mem)
	scoringCfg, err := provideScoringConfig(cfg)
	require.NoError(t, err)

	queue := provideJobQueue(cfg, nil, logger)
	dispatcher := provideDispatcher(cfg, queue, logger)
	svc := scoring.NewService(
		scoringCfg,
		provideRuleRepository(cfg, nil, nil, table, logger),
		provideProfileRepository(nil, mem),
		provideProductRepository(nil, mem),
		provideScoreRepository(nil, mem),
		dispatcher,
		logger,
	)

	ctx := context.Background()
	result, err := svc.Score(ctx, "demo-user", scoring.ScoreRequest{ProductID: "leave-in-conditioner"})
	require.NoError(t, err)
	require.Equal(t, 7, result.Breakdown.TotalCount)
	require.Equal(t, 7, result.Breakdown.MatchedCount)
	require.Empty(t, result.MissingIngredients)

	result, err = svc.Score(ctx, "demo-user", scoring.ScoreRequest{ProductID: "serum"})
	require.NoError(t, err)
	require.Equal(t, []string{"cyclopentasiloxane", "argan oil"}, result.MissingIngredients)

	stored, err := svc.List(ctx, "demo-user")
	require.NoError(t, err)
	require.Len(t, stored, 2)

	dispatcher.(*discoveryqueue.AsyncDispatcher).Wait(ctx)
	queue.Close()
}

func TestMemoryBackendSkipsMissingSeed(t *testing.T) {
	cfg := memoryConfig()
	cfg.Seed.Path = filepath.Join(t.TempDir(), "absent.yaml")
	mem, err := provideMemoryBackend(cfg, nil, newTestLogger())
	require.NoError(t, err)
	_, ok, err := mem.products.Ingredients(context.Background(), "serum")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestProvideDispatcherModes(t *testing.T) {
	cfg := memoryConfig()
	logger := newTestLogger()
	queue := discoveryqueue.NewImmediateQueue(nil)

	cfg.Discovery.Mode = config.DiscoveryModeDisabled
	require.IsType(t, discoveryqueue.NoopDispatcher{}, provideDispatcher(cfg, queue, logger))

	cfg.Discovery.Mode = config.DiscoveryModeHTTP
	cfg.Discovery.Endpoint = "http://127.0.0.1:1/discover"
	require.IsType(t, &discoveryqueue.AsyncDispatcher{}, provideDispatcher(cfg, queue, logger))
}

func TestProvideChatClientWithoutKeyIsNil(t *testing.T) {
	require.Nil(t, provideChatClient(&config.Config{}, newTestLogger()))
}
