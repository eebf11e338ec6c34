package discoveryqueue

import (
	"context"
	"log/slog"

	"github.com/yanqian/hairmatch/internal/domain/discovery"
)

// NewDiscoveryHandler runs discovery jobs against svc. Other job names are
// logged and dropped.
func NewDiscoveryHandler(svc discovery.Service, logger *slog.Logger) Handler {
	log := logger.With("component", "discoveryqueue.worker")
	return func(ctx context.Context, name string, payload map[string]any) {
		if name != JobDiscoverRules {
			log.Warn("unknown job", "name", name)
			return
		}
		names := ingredientsFromPayload(payload)
		res, err := svc.Discover(ctx, discovery.Request{Ingredients: names})
		if err != nil {
			log.Error("rule discovery failed", "count", len(names), "error", err)
			return
		}
		log.Info(res.Message, "created", res.Count, "requested", res.Requested)
	}
}

// ingredientsFromPayload accepts both in-process ([]string) and decoded JSON
// ([]any) payloads.
func ingredientsFromPayload(payload map[string]any) []string {
	switch v := payload["ingredients"].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
