package scoring

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func concernRule() IngredientRule {
	return IngredientRule{
		BreakageImpact:     4,
		ThinningImpact:     -2,
		DandruffImpact:     3,
		ColorTreatedImpact: 1,
		HeatDamageImpact:   5,
	}
}

func TestConcernFit(t *testing.T) {
	rule := concernRule()
	cases := []struct {
		name     string
		concerns []string
		want     float64
	}{
		{name: "no concerns", concerns: nil, want: 0},
		{name: "no keyword hit", concerns: []string{"frizz", "shine"}, want: 0},
		{name: "single hit", concerns: []string{"Breakage"}, want: 4},
		{name: "average of hits", concerns: []string{"breakage", "dandruff"}, want: 3.5},
		{name: "one tag hits two entries", concerns: []string{"heat damage"}, want: 5},
		{name: "tag hits breakage and heat", concerns: []string{"breaking from heat"}, want: 4.5},
		{name: "flaky scalp", concerns: []string{"flaky scalp"}, want: 3},
		{name: "thin matches thinning entry", concerns: []string{"thin hair"}, want: -2},
		{name: "dyed hair", concerns: []string{"dyed"}, want: 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.InDelta(t, tc.want, concernFit(rule, tc.concerns), 1e-9)
		})
	}
}

func TestPorosityAndDensitySelectors(t *testing.T) {
	rule := IngredientRule{
		PorosityLowScore: 1, PorosityMediumScore: 2, PorosityHighScore: 3,
		DensityThinScore: -1, DensityMediumScore: -2, DensityThickScore: -3,
	}
	require.Equal(t, 1, porosityFit(rule, "LOW"))
	require.Equal(t, 2, porosityFit(rule, "normal"))
	require.Equal(t, 2, porosityFit(rule, "unknown"))
	require.Equal(t, 3, porosityFit(rule, "high"))

	require.Equal(t, -1, densityFit(rule, "fine"))
	require.Equal(t, -1, densityFit(rule, "thin"))
	require.Equal(t, -2, densityFit(rule, ""))
	require.Equal(t, -3, densityFit(rule, "Coarse"))
}

func TestClimateFit(t *testing.T) {
	rule := IngredientRule{HumidClimateModifier: 2, DryClimateModifier: -3}
	require.Equal(t, 2, climateFit(rule, "Hot and Humid"))
	require.Equal(t, 2, climateFit(rule, "tropical"))
	require.Equal(t, -3, climateFit(rule, "arid desert"))
	require.Equal(t, -3, climateFit(rule, "DRY"))
	require.Equal(t, 0, climateFit(rule, "temperate"))
}
