package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/hairmatch/internal/bootstrap"
	"github.com/yanqian/hairmatch/internal/domain/auth"
	"github.com/yanqian/hairmatch/internal/domain/discovery"
	"github.com/yanqian/hairmatch/internal/domain/scoring"
	"github.com/yanqian/hairmatch/internal/infra/config"
	"github.com/yanqian/hairmatch/internal/infra/discoveryqueue"
	"github.com/yanqian/hairmatch/internal/infra/llm/chatgpt"
	"github.com/yanqian/hairmatch/internal/infra/pgdb"
	"github.com/yanqian/hairmatch/internal/infra/productrepo"
	"github.com/yanqian/hairmatch/internal/infra/profilerepo"
	"github.com/yanqian/hairmatch/internal/infra/rulecache"
	"github.com/yanqian/hairmatch/internal/infra/rulerepo"
	"github.com/yanqian/hairmatch/internal/infra/scorerepo"
	"github.com/yanqian/hairmatch/internal/infra/seed"
)

// ruleTable is the rule storage used by both scoring and discovery.
type ruleTable interface {
	scoring.RuleRepository
	discovery.RuleStore
}

// memoryBackend holds the in-memory repositories used when Postgres is not available.
type memoryBackend struct {
	rules    *rulerepo.MemoryRepository
	profiles *profilerepo.MemoryRepository
	products *productrepo.MemoryRepository
	scores   *scorerepo.MemoryRepository
}

// providePostgresPool returns nil when no DSN is configured or the database is
// unreachable; repositories then fall back to memory.
func providePostgresPool(cfg *config.Config, logger *slog.Logger) *pgxpool.Pool {
	if strings.TrimSpace(cfg.Postgres.DSN) == "" {
		logger.Info("postgres dsn not set, using memory repositories")
		return nil
	}
	pool, err := pgdb.Open(context.Background(), pgdb.Options{
		DSN:      cfg.Postgres.DSN,
		MaxConns: cfg.Postgres.MaxConns,
		MinConns: cfg.Postgres.MinConns,
	})
	if err != nil {
		logger.Error("postgres unavailable, using memory repositories", "error", err)
		return nil
	}
	logger.Info("postgres repositories enabled")
	return pool
}

// provideValkeyClient returns nil when valkey is disabled or unreachable.
func provideValkeyClient(cfg *config.Config, logger *slog.Logger) valkey.Client {
	if !cfg.Valkey.Enabled {
		return nil
	}
	opt, err := buildValkeyOptions(cfg)
	if err != nil {
		logger.Error("invalid valkey configuration, falling back to memory", "error", err)
		return nil
	}
	client, err := valkey.NewClient(opt)
	if err != nil {
		logger.Error("failed to create valkey client, falling back to memory", "error", err)
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		logger.Error("valkey ping failed, falling back to memory", "error", err)
		client.Close()
		return nil
	}
	logger.Info("valkey enabled", "addr", cfg.Valkey.Addr)
	return client
}

func buildValkeyOptions(cfg *config.Config) (valkey.ClientOption, error) {
	if strings.Contains(cfg.Valkey.Addr, "://") {
		return valkey.ParseURL(cfg.Valkey.Addr)
	}
	return valkey.ClientOption{InitAddress: []string{cfg.Valkey.Addr}}, nil
}

// provideMemoryBackend builds the memory repositories and, when Postgres is not
// in use, loads the seed fixture into them.
func provideMemoryBackend(cfg *config.Config, pool *pgxpool.Pool, logger *slog.Logger) (*memoryBackend, error) {
	mem := &memoryBackend{
		rules:    rulerepo.NewMemoryRepository(),
		profiles: profilerepo.NewMemoryRepository(),
		products: productrepo.NewMemoryRepository(),
		scores:   scorerepo.NewMemoryRepository(),
	}
	path := strings.TrimSpace(cfg.Seed.Path)
	if pool != nil || path == "" {
		return mem, nil
	}
	fx, err := seed.LoadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Warn("seed file not found, starting empty", "path", path)
		return mem, nil
	}
	if err != nil {
		return nil, err
	}
	stats, err := seed.Apply(context.Background(), fx, seed.Targets{
		Rules:    mem.rules,
		Profiles: mem.profiles,
		Products: mem.products,
	})
	if err != nil {
		return nil, err
	}
	logger.Info("seed fixture loaded", "path", path, "rules", stats.Rules, "profiles", stats.Profiles, "products", stats.Products)
	return mem, nil
}

func provideRuleTable(pool *pgxpool.Pool, mem *memoryBackend) ruleTable {
	if pool != nil {
		return rulerepo.NewPostgresRepository(pool)
	}
	return mem.rules
}

// provideRuleRepository fronts the Postgres rule table with a cache: Valkey
// when available, process memory otherwise.
func provideRuleRepository(cfg *config.Config, pool *pgxpool.Pool, client valkey.Client, table ruleTable, logger *slog.Logger) scoring.RuleRepository {
	switch {
	case pool == nil:
		return table
	case client != nil:
		return rulecache.NewRepository(table, rulecache.NewValkeyStore(client, cfg.Valkey.CachePrefix), cfg.Valkey.CacheTTL, logger)
	default:
		return rulecache.NewRepository(table, rulecache.NewMemoryStore(), cfg.Valkey.CacheTTL, logger)
	}
}

func provideRuleStore(table ruleTable) discovery.RuleStore {
	return table
}

func provideProfileRepository(pool *pgxpool.Pool, mem *memoryBackend) scoring.ProfileRepository {
	if pool != nil {
		return profilerepo.NewPostgresRepository(pool)
	}
	return mem.profiles
}

func provideProductRepository(pool *pgxpool.Pool, mem *memoryBackend) scoring.ProductRepository {
	if pool != nil {
		return productrepo.NewPostgresRepository(pool)
	}
	return mem.products
}

func provideScoreRepository(pool *pgxpool.Pool, mem *memoryBackend) scoring.ScoreRepository {
	if pool != nil {
		return scorerepo.NewPostgresRepository(pool)
	}
	return mem.scores
}

func provideScoringConfig(cfg *config.Config) (scoring.Config, error) {
	weights := scoring.DefaultWeights()
	if err := weights.Validate(); err != nil {
		return scoring.Config{}, fmt.Errorf("score weights: %w", err)
	}
	return scoring.Config{
		Weights:        weights,
		DiscoveryBatch: cfg.Discovery.BatchSize,
	}, nil
}

func provideDiscoveryConfig(cfg *config.Config) discovery.Config {
	return discovery.Config{
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		BatchSize:   cfg.Discovery.BatchSize,
	}
}

// provideChatClient returns a nil interface when no API key is configured so
// discovery reports llm_error instead of calling out.
func provideChatClient(cfg *config.Config, logger *slog.Logger) discovery.ChatClient {
	if strings.TrimSpace(cfg.LLM.APIKey) == "" {
		logger.Warn("llm api key not set, rule discovery disabled")
		return nil
	}
	client, err := chatgpt.NewClient(cfg.LLM.APIKey, cfg.LLM.BaseURL, cfg.LLM.Timeout)
	if err != nil {
		logger.Error("failed to create llm client, rule discovery disabled", "error", err)
		return nil
	}
	return client
}

func provideJobQueue(cfg *config.Config, client valkey.Client, logger *slog.Logger) discoveryqueue.HandlerQueue {
	if client != nil {
		return discoveryqueue.NewValkeyQueue(client, cfg.Valkey.QueueKey, logger)
	}
	return discoveryqueue.NewImmediateQueue(nil)
}

func provideDispatcher(cfg *config.Config, queue discoveryqueue.HandlerQueue, logger *slog.Logger) scoring.Dispatcher {
	var sender discoveryqueue.Sender
	switch cfg.Discovery.Mode {
	case config.DiscoveryModeDisabled:
		logger.Info("rule discovery dispatch disabled")
		return discoveryqueue.NoopDispatcher{}
	case config.DiscoveryModeHTTP:
		sender = discoveryqueue.NewHTTPSender(cfg.Discovery.Endpoint, cfg.Discovery.ServiceKey, nil)
	default:
		sender = discoveryqueue.NewQueueSender(queue)
	}
	return discoveryqueue.NewAsyncDispatcher(sender, cfg.Discovery.DispatchTimeout, logger)
}

func provideAuthConfig(cfg *config.Config) auth.Config {
	return auth.Config{
		Secret:     cfg.Auth.JWTSecret,
		Audience:   cfg.Auth.Audience,
		TokenTTL:   cfg.Auth.TokenTTL,
		ServiceKey: cfg.Auth.ServiceKey,
	}
}

func provideResources(pool *pgxpool.Pool, client valkey.Client) bootstrap.Resources {
	var res bootstrap.Resources
	if client != nil {
		res.Closers = append(res.Closers, client.Close)
	}
	if pool != nil {
		res.Closers = append(res.Closers, pool.Close)
	}
	return res
}
