package discovery

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStripCodeFence(t *testing.T) {
	require.Equal(t, `{"a":1}`, stripCodeFence("```json\n{\"a\":1}\n```"))
	require.Equal(t, `{"a":1}`, stripCodeFence("```\n{\"a\":1}```"))
	require.Equal(t, `{"a":1}`, stripCodeFence("  {\"a\":1} "))
}

func TestSanitizeRule(t *testing.T) {
	rule := sanitizeRule(map[string]any{
		"ingredient_name":        strings.Repeat("x", 250),
		"moisture_score":         -9.0,
		"irritation_risk":        2.4,
		"humid_climate_modifier": "3",
		"dry_climate_modifier":   true,
		"confidence":             1.7,
		"notes":                  strings.Repeat("n", 600),
	})
	require.Len(t, rule.IngredientName, 200)
	require.Len(t, rule.NormalizedName, 200)
	require.Len(t, rule.Notes, 500)
	require.Equal(t, -5, rule.MoistureScore)
	require.Equal(t, 2, rule.IrritationRisk)
	require.Equal(t, 3, rule.HumidClimateModifier)
	require.Equal(t, 1, rule.DryClimateModifier)
	require.Equal(t, 1.0, rule.Confidence)
	require.Equal(t, "other", rule.Category)

	require.InDelta(t, 0.8, sanitizeRule(map[string]any{"confidence": "abc"}).Confidence, 1e-9)
	require.InDelta(t, 0.0, sanitizeRule(map[string]any{"confidence": -0.5}).Confidence, 1e-9)
}
