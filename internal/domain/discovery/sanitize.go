package discovery

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/yanqian/hairmatch/internal/domain/scoring"
)

const (
	maxNameLength     = 200
	maxNotesLength    = 500
	defaultConfidence = 0.8
	defaultCategory   = "other"
	sourceAI          = "ai"
)

type modelPayload struct {
	Ingredients []map[string]any `json:"ingredients"`
}

// parseModelRules decodes the model answer, tolerating a markdown code fence.
func parseModelRules(content string) ([]map[string]any, error) {
	var payload modelPayload
	if err := json.Unmarshal([]byte(stripCodeFence(content)), &payload); err != nil {
		return nil, fmt.Errorf("decode model rules: %w", err)
	}
	return payload.Ingredients, nil
}

func stripCodeFence(content string) string {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```")
	if idx := strings.Index(trimmed, "\n"); idx >= 0 {
		trimmed = trimmed[idx+1:]
	}
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}

// sanitizeRule turns one loosely typed model entry into a rule. Scores are
// rounded and clamped so stored rules always satisfy the calculator ranges.
func sanitizeRule(raw map[string]any) scoring.IngredientRule {
	name := truncate(stringField(raw, "ingredient_name"), maxNameLength)
	normalized := scoring.Normalize(stringField(raw, "normalized_name"))
	if normalized == "" {
		normalized = scoring.Normalize(name)
	}
	category := strings.TrimSpace(stringField(raw, "category"))
	if category == "" {
		category = defaultCategory
	}
	confidence := numberField(raw, "confidence")
	if confidence == 0 {
		confidence = defaultConfidence
	}

	impact := func(key string) int { return clampInt(numberField(raw, key), -5, 5) }
	risk := func(key string) int { return clampInt(numberField(raw, key), 0, 5) }

	return scoring.IngredientRule{
		IngredientName:       name,
		NormalizedName:       truncate(normalized, maxNameLength),
		Category:             truncate(category, maxNameLength),
		MoistureScore:        impact("moisture_score"),
		ProteinScore:         impact("protein_score"),
		ScalpHealthScore:     impact("scalp_health_score"),
		CurlDefinitionScore:  impact("curl_definition_score"),
		FrizzControlScore:    impact("frizz_control_score"),
		PorosityLowScore:     impact("porosity_low_score"),
		PorosityMediumScore:  impact("porosity_medium_score"),
		PorosityHighScore:    impact("porosity_high_score"),
		DensityThinScore:     impact("density_thin_score"),
		DensityMediumScore:   impact("density_medium_score"),
		DensityThickScore:    impact("density_thick_score"),
		BuildupRisk:          risk("buildup_risk"),
		DryingRisk:           risk("drying_risk"),
		IrritationRisk:       risk("irritation_risk"),
		BreakageImpact:       impact("breakage_impact"),
		ThinningImpact:       impact("thinning_impact"),
		DandruffImpact:       impact("dandruff_impact"),
		ColorTreatedImpact:   impact("color_treated_impact"),
		HeatDamageImpact:     impact("heat_damage_impact"),
		HumidClimateModifier: impact("humid_climate_modifier"),
		DryClimateModifier:   impact("dry_climate_modifier"),
		Confidence:           math.Min(1, math.Max(0, confidence)),
		Notes:                truncate(stringField(raw, "notes"), maxNotesLength),
		Source:               sourceAI,
	}
}

func stringField(raw map[string]any, key string) string {
	switch v := raw[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

// numberField reads numbers and numeric strings; anything else is 0.
func numberField(raw map[string]any, key string) float64 {
	var f float64
	switch v := raw[key].(type) {
	case float64:
		f = v
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0
		}
		f = parsed
	case bool:
		if v {
			f = 1
		}
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func clampInt(v float64, lo, hi int) int {
	r := int(math.Round(v))
	if r < lo {
		return lo
	}
	if r > hi {
		return hi
	}
	return r
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
