package discovery

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/yanqian/hairmatch/internal/domain/scoring"
	"github.com/yanqian/hairmatch/internal/infra/llm/chatgpt"
	apperrors "github.com/yanqian/hairmatch/pkg/errors"
	"github.com/yanqian/hairmatch/pkg/metrics"
)

// Service synthesizes rules for ingredients the rule table does not know yet.
type Service interface {
	Discover(ctx context.Context, req Request) (Result, error)
}

// ChatClient is the chat completion API used to synthesize rules.
type ChatClient interface {
	CreateChatCompletion(ctx context.Context, req chatgpt.ChatCompletionRequest) (chatgpt.ChatCompletionResponse, error)
}

type service struct {
	cfg    Config
	store  RuleStore
	client ChatClient
	logger *slog.Logger
}

// NewService wires up the discovery domain. A nil client makes every batch
// with unknown names fail with llm_error.
func NewService(cfg Config, store RuleStore, client ChatClient, logger *slog.Logger) Service {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = scoring.DefaultDiscoveryBatch
	}
	return &service{
		cfg:    cfg,
		store:  store,
		client: client,
		logger: logger.With("component", "discovery.service"),
	}
}

func (s *service) Discover(ctx context.Context, req Request) (Result, error) {
	batch := scoring.Distinct(scoring.NormalizeAll(req.Ingredients))
	if len(batch) == 0 {
		return Result{}, apperrors.Wrap(apperrors.CodeInvalidInput, "ingredients array is required", nil)
	}
	if len(batch) > s.cfg.BatchSize {
		batch = batch[:s.cfg.BatchSize]
	}

	existing, err := s.store.ExistingNames(ctx, batch)
	if err != nil {
		return Result{}, apperrors.Wrap(apperrors.CodeStorage, "failed to load existing rules", err)
	}
	known := make(map[string]struct{}, len(existing))
	for _, name := range existing {
		known[name] = struct{}{}
	}
	pending := make([]string, 0, len(batch))
	for _, name := range batch {
		if _, ok := known[name]; !ok {
			pending = append(pending, name)
		}
	}
	if len(pending) == 0 {
		return Result{Message: "All ingredients already have rules", Requested: len(batch)}, nil
	}

	s.logger.Info("discovering ingredient rules", "count", len(pending), "ingredients", pending)
	rules, err := s.synthesize(ctx, pending)
	if err != nil {
		return Result{}, err
	}

	created, err := s.store.InsertRules(ctx, rules)
	if err != nil {
		return Result{}, apperrors.Wrap(apperrors.CodeStorage, "Failed to save ingredient rules", err)
	}
	metrics.DiscoveredRules.Add(float64(created))
	s.logger.Info("saved discovered rules", "created", created, "requested", len(pending))

	return Result{
		Message:   fmt.Sprintf("Discovered rules for %d ingredients", created),
		Count:     created,
		Requested: len(pending),
	}, nil
}

func (s *service) synthesize(ctx context.Context, names []string) ([]scoring.IngredientRule, error) {
	if s.client == nil {
		return nil, apperrors.Wrap(apperrors.CodeLLM, "rule synthesis is not configured", nil)
	}
	resp, err := s.client.CreateChatCompletion(ctx, chatgpt.ChatCompletionRequest{
		Model:       s.cfg.Model,
		Temperature: s.cfg.Temperature,
		Messages: []chatgpt.Message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: buildUserPrompt(names)},
		},
		ResponseFormat: &chatgpt.ResponseFormat{Type: "json_object"},
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeLLM, "model request failed", err)
	}
	content := resp.Content()
	if content == "" {
		return nil, apperrors.Wrap(apperrors.CodeLLM, "No content in model response", nil)
	}
	raw, err := parseModelRules(content)
	if err != nil {
		s.logger.Error("failed to parse model response", "error", err)
		return nil, apperrors.Wrap(apperrors.CodeLLM, "Invalid response format from model", err)
	}

	wanted := make(map[string]struct{}, len(names))
	for _, name := range names {
		wanted[name] = struct{}{}
	}
	rules := make([]scoring.IngredientRule, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, entry := range raw {
		rule := sanitizeRule(entry)
		if _, ok := wanted[rule.NormalizedName]; !ok {
			s.logger.Warn("dropping rule for unrequested ingredient", "normalizedName", rule.NormalizedName)
			continue
		}
		if _, dup := seen[rule.NormalizedName]; dup {
			continue
		}
		seen[rule.NormalizedName] = struct{}{}
		if rule.IngredientName == "" {
			rule.IngredientName = rule.NormalizedName
		}
		rules = append(rules, rule)
	}
	if len(rules) == 0 {
		return nil, apperrors.Wrap(apperrors.CodeLLM, "Model returned no ingredient rules", nil)
	}
	return rules, nil
}
