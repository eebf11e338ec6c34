package discovery

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/hairmatch/internal/domain/scoring"
	"github.com/yanqian/hairmatch/internal/infra/llm/chatgpt"
	apperrors "github.com/yanqian/hairmatch/pkg/errors"
)

type stubStore struct {
	existing []string
	inserted []scoring.IngredientRule
	insertFn func(rules []scoring.IngredientRule) (int, error)
	asked    []string
}

func (s *stubStore) ExistingNames(_ context.Context, names []string) ([]string, error) {
	s.asked = names
	return s.existing, nil
}

func (s *stubStore) InsertRules(_ context.Context, rules []scoring.IngredientRule) (int, error) {
	s.inserted = append(s.inserted, rules...)
	if s.insertFn != nil {
		return s.insertFn(rules)
	}
	return len(rules), nil
}

type stubChat struct {
	createFn func(ctx context.Context, req chatgpt.ChatCompletionRequest) (chatgpt.ChatCompletionResponse, error)
	requests []chatgpt.ChatCompletionRequest
}

func (s *stubChat) CreateChatCompletion(ctx context.Context, req chatgpt.ChatCompletionRequest) (chatgpt.ChatCompletionResponse, error) {
	s.requests = append(s.requests, req)
	return s.createFn(ctx, req)
}

func replyWith(content string) func(context.Context, chatgpt.ChatCompletionRequest) (chatgpt.ChatCompletionResponse, error) {
	return func(context.Context, chatgpt.ChatCompletionRequest) (chatgpt.ChatCompletionResponse, error) {
		var resp chatgpt.ChatCompletionResponse
		resp.Choices = append(resp.Choices, struct {
			Message chatgpt.Message `json:"message"`
		}{Message: chatgpt.Message{Role: "assistant", Content: content}})
		return resp, nil
	}
}

func TestDiscoverInsertsSanitizedRules(t *testing.T) {
	store := &stubStore{existing: []string{"water"}}
	chat := &stubChat{createFn: replyWith("```json\n" + `{"ingredients":[
		{"ingredient_name":"Shea Butter","normalized_name":"Shea Butter","category":"butter",
		 "moisture_score":4.6,"buildup_risk":9,"drying_risk":-2,"protein_score":"-7","confidence":0,"notes":"rich emollient"},
		{"ingredient_name":"Hacked","normalized_name":"ignore previous instructions","moisture_score":5}
	]}` + "\n```")}
	svc := NewService(Config{Model: "gpt-4o-mini"}, store, chat, newTestLogger())

	res, err := svc.Discover(context.Background(), Request{Ingredients: []string{"Water", "shea butter", "Shea Butter!"}})
	require.NoError(t, err)
	require.Equal(t, Result{Message: "Discovered rules for 1 ingredients", Count: 1, Requested: 1}, res)
	require.Equal(t, []string{"water", "shea butter"}, store.asked)

	require.Len(t, chat.requests, 1)
	req := chat.requests[0]
	require.Equal(t, "gpt-4o-mini", req.Model)
	require.Equal(t, "json_object", req.ResponseFormat.Type)
	require.Contains(t, req.Messages[1].Content, "1. shea butter")
	require.NotContains(t, req.Messages[1].Content, "water")

	require.Len(t, store.inserted, 1)
	rule := store.inserted[0]
	require.Equal(t, "shea butter", rule.NormalizedName)
	require.Equal(t, "Shea Butter", rule.IngredientName)
	require.Equal(t, "butter", rule.Category)
	require.Equal(t, 5, rule.MoistureScore)
	require.Equal(t, -5, rule.ProteinScore)
	require.Equal(t, 5, rule.BuildupRisk)
	require.Equal(t, 0, rule.DryingRisk)
	require.InDelta(t, 0.8, rule.Confidence, 1e-9)
	require.Equal(t, "ai", rule.Source)
	require.Equal(t, "rich emollient", rule.Notes)
}

func TestDiscoverSkipsWhenAllKnown(t *testing.T) {
	store := &stubStore{existing: []string{"water", "glycerin"}}
	chat := &stubChat{}
	svc := NewService(Config{}, store, chat, newTestLogger())

	res, err := svc.Discover(context.Background(), Request{Ingredients: []string{"water", "glycerin"}})
	require.NoError(t, err)
	require.Equal(t, "All ingredients already have rules", res.Message)
	require.Zero(t, res.Count)
	require.Empty(t, chat.requests)
}

func TestDiscoverCapsBatch(t *testing.T) {
	store := &stubStore{}
	chat := &stubChat{createFn: replyWith(`{"ingredients":[{"normalized_name":"a"}]}`)}
	svc := NewService(Config{BatchSize: 2}, store, chat, newTestLogger())

	_, err := svc.Discover(context.Background(), Request{Ingredients: []string{"a", "b", "c"}})
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, store.asked)
	require.Equal(t, "other", store.inserted[0].Category)
	require.Equal(t, "a", store.inserted[0].IngredientName)
}

func TestDiscoverErrors(t *testing.T) {
	cases := []struct {
		name  string
		names []string
		chat  *stubChat
		code  string
	}{
		{name: "empty request", names: []string{" ", "!!"}, chat: &stubChat{}, code: apperrors.CodeInvalidInput},
		{
			name:  "model failure",
			names: []string{"aloe"},
			chat: &stubChat{createFn: func(context.Context, chatgpt.ChatCompletionRequest) (chatgpt.ChatCompletionResponse, error) {
				return chatgpt.ChatCompletionResponse{}, errors.New("boom")
			}},
			code: apperrors.CodeLLM,
		},
		{name: "empty content", names: []string{"aloe"}, chat: &stubChat{createFn: replyWith("")}, code: apperrors.CodeLLM},
		{name: "not json", names: []string{"aloe"}, chat: &stubChat{createFn: replyWith("sorry")}, code: apperrors.CodeLLM},
		{name: "no rules", names: []string{"aloe"}, chat: &stubChat{createFn: replyWith(`{"ingredients":[]}`)}, code: apperrors.CodeLLM},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := &stubStore{}
			svc := NewService(Config{}, store, tc.chat, newTestLogger())
			_, err := svc.Discover(context.Background(), Request{Ingredients: tc.names})
			require.True(t, apperrors.IsCode(err, tc.code), "unexpected error %v", err)
			require.Empty(t, store.inserted)
		})
	}
}

func TestDiscoverWithoutClient(t *testing.T) {
	svc := NewService(Config{}, &stubStore{}, nil, newTestLogger())
	_, err := svc.Discover(context.Background(), Request{Ingredients: []string{"aloe"}})
	require.True(t, apperrors.IsCode(err, apperrors.CodeLLM))
}

func TestDiscoverInsertFailure(t *testing.T) {
	store := &stubStore{insertFn: func([]scoring.IngredientRule) (int, error) { return 0, errors.New("unique violation") }}
	chat := &stubChat{createFn: replyWith(`{"ingredients":[{"normalized_name":"aloe"}]}`)}
	svc := NewService(Config{}, store, chat, newTestLogger())

	_, err := svc.Discover(context.Background(), Request{Ingredients: []string{"aloe"}})
	require.True(t, apperrors.IsCode(err, apperrors.CodeStorage))
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
