package seed

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/yanqian/hairmatch/internal/domain/scoring"
)

// Fixture is the YAML document loaded into the in-memory repositories.
type Fixture struct {
	Rules    []scoring.IngredientRule     `yaml:"rules"`
	Profiles []scoring.HairProfile        `yaml:"profiles"`
	Products []scoring.ProductIngredients `yaml:"products"`
}

// RuleWriter accepts seeded ingredient rules.
type RuleWriter interface {
	InsertRules(ctx context.Context, rules []scoring.IngredientRule) (int, error)
}

// ProfileWriter accepts seeded hair profiles.
type ProfileWriter interface {
	Save(profile scoring.HairProfile) scoring.HairProfile
}

// ProductWriter accepts seeded product ingredient data.
type ProductWriter interface {
	Save(ctx context.Context, data scoring.ProductIngredients) error
}

// Targets groups the repositories a fixture is applied to. Nil targets are skipped.
type Targets struct {
	Rules    RuleWriter
	Profiles ProfileWriter
	Products ProductWriter
}

// Stats reports what Apply wrote.
type Stats struct {
	Rules    int
	Profiles int
	Products int
}

// LoadFile reads and parses the fixture at path.
func LoadFile(path string) (Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Fixture{}, fmt.Errorf("read seed file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a fixture document and checks the required keys.
func Parse(data []byte) (Fixture, error) {
	var fx Fixture
	if err := yaml.Unmarshal(data, &fx); err != nil {
		return Fixture{}, fmt.Errorf("parse seed file: %w", err)
	}
	for i, rule := range fx.Rules {
		if scoring.Normalize(rule.IngredientName) == "" && rule.NormalizedName == "" {
			return Fixture{}, fmt.Errorf("seed rule %d has no ingredient name", i)
		}
		if rule.NormalizedName == "" {
			fx.Rules[i].NormalizedName = scoring.Normalize(rule.IngredientName)
		}
		if rule.Source == "" {
			fx.Rules[i].Source = "seed"
		}
	}
	for i, profile := range fx.Profiles {
		if profile.UserID == "" {
			return Fixture{}, fmt.Errorf("seed profile %d has no userId", i)
		}
	}
	for i, product := range fx.Products {
		if product.ProductID == "" {
			return Fixture{}, fmt.Errorf("seed product %d has no productId", i)
		}
	}
	return fx, nil
}

// Apply writes the fixture into targets.
func Apply(ctx context.Context, fx Fixture, targets Targets) (Stats, error) {
	var stats Stats
	if targets.Rules != nil && len(fx.Rules) > 0 {
		n, err := targets.Rules.InsertRules(ctx, fx.Rules)
		if err != nil {
			return stats, fmt.Errorf("seed rules: %w", err)
		}
		stats.Rules = n
	}
	if targets.Profiles != nil {
		for _, profile := range fx.Profiles {
			targets.Profiles.Save(profile)
			stats.Profiles++
		}
	}
	if targets.Products != nil {
		for _, product := range fx.Products {
			if err := targets.Products.Save(ctx, product); err != nil {
				return stats, fmt.Errorf("seed product %s: %w", product.ProductID, err)
			}
			stats.Products++
		}
	}
	return stats, nil
}
