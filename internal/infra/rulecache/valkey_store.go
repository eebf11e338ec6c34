package rulecache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/hairmatch/internal/domain/scoring"
)

// ValkeyStore caches rules as JSON strings in a Valkey-compatible database.
type ValkeyStore struct {
	client valkey.Client
	prefix string
}

// NewValkeyStore constructs a new store backed by Valkey.
func NewValkeyStore(client valkey.Client, prefix string) *ValkeyStore {
	if prefix == "" {
		prefix = "hairmatch:rule:"
	}
	return &ValkeyStore{client: client, prefix: prefix}
}

// GetRules implements Store using one pipelined GET per name. Keys may live in
// different cluster slots, so a multi-key MGET is not used.
func (s *ValkeyStore) GetRules(ctx context.Context, names []string) (map[string]scoring.IngredientRule, error) {
	if len(names) == 0 {
		return nil, nil
	}
	cmds := make(valkey.Commands, 0, len(names))
	for _, name := range names {
		cmds = append(cmds, s.client.B().Get().Key(s.key(name)).Build())
	}
	out := make(map[string]scoring.IngredientRule, len(names))
	for i, resp := range s.client.DoMulti(ctx, cmds...) {
		payload, err := resp.ToString()
		if valkey.IsValkeyNil(err) {
			continue
		}
		if err != nil {
			return nil, err
		}
		var rule scoring.IngredientRule
		if err := json.Unmarshal([]byte(payload), &rule); err != nil {
			continue
		}
		out[names[i]] = rule
	}
	return out, nil
}

// SaveRules implements Store using one pipelined SET per rule.
func (s *ValkeyStore) SaveRules(ctx context.Context, rules []scoring.IngredientRule, ttl time.Duration) error {
	if len(rules) == 0 {
		return nil
	}
	if ttl > 0 && ttl < time.Second {
		ttl = time.Second
	}
	cmds := make(valkey.Commands, 0, len(rules))
	for _, rule := range rules {
		payload, err := json.Marshal(rule)
		if err != nil {
			return err
		}
		builder := s.client.B().Set().Key(s.key(rule.NormalizedName)).Value(string(payload))
		if ttl > 0 {
			cmds = append(cmds, builder.Ex(ttl).Build())
		} else {
			cmds = append(cmds, builder.Build())
		}
	}
	for _, resp := range s.client.DoMulti(ctx, cmds...) {
		if err := resp.Error(); err != nil {
			return err
		}
	}
	return nil
}

func (s *ValkeyStore) key(name string) string {
	return s.prefix + name
}

var _ Store = (*ValkeyStore)(nil)
