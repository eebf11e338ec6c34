package scoring

import (
	"fmt"
	"math"
	"strings"
)

// Calculate scores a profile against the matched rules. rules must already be in
// ingredient-list order with misses removed; total is the length of the full
// ingredient list. The caller fills MissingIngredients.
func Calculate(profile HairProfile, rules []IngredientRule, total int, w Weights) ScoreResult {
	denom := float64(total)
	if denom <= 0 {
		denom = 1
	}

	var (
		moisture, protein, scalp, curl, frizz float64
		porosity, density, climate, concern   float64
		buildup, drying, irritation           float64
		confidence                            float64
	)
	for i, rule := range rules {
		// i indexes the matched sequence while denom counts every listed
		// ingredient, so misses slow the decay.
		pw := math.Max(w.MinPositionWeight, 1.0-(float64(i)/denom)*w.PositionDecay)
		cw := pw * rule.Confidence

		moisture += float64(rule.MoistureScore) * cw
		protein += float64(rule.ProteinScore) * cw
		scalp += float64(rule.ScalpHealthScore) * cw
		curl += float64(rule.CurlDefinitionScore) * cw
		frizz += float64(rule.FrizzControlScore) * cw
		porosity += float64(porosityFit(rule, profile.Porosity)) * cw
		density += float64(densityFit(rule, profile.Density)) * cw
		climate += float64(climateFit(rule, profile.Climate)) * cw
		concern += concernFit(rule, profile.Concerns) * cw

		buildup += float64(rule.BuildupRisk) * pw
		drying += float64(rule.DryingRisk) * pw
		irritation += float64(rule.IrritationRisk) * pw

		confidence += rule.Confidence
	}

	n := float64(len(rules))
	if n == 0 {
		n = 1
	}
	maxRaw := w.RuleScale * n
	norm := func(raw float64) int { return clampScore(50 + (raw/maxRaw)*50) }

	moistureScore := norm(moisture)
	strengthScore := norm(protein)
	scalpScore := norm(scalp)
	curlScore := norm(curl)
	frizzScore := norm(frizz)

	riskPenalty := (buildup + drying + irritation) / (3 * maxRaw) * 50
	safetyScore := clampScore(100 - riskPenalty)

	goalScore := norm(porosity + density + concern + climate)

	pb := w.Performance
	performanceScore := clampScore(
		float64(moistureScore)*pb.Moisture +
			float64(curlScore)*pb.CurlDefinition +
			float64(frizzScore)*pb.FrizzControl +
			float64(strengthScore)*pb.StrengthRepair +
			float64(scalpScore)*pb.ScalpCare,
	)

	coverage := float64(len(rules)) / denom
	coveragePenalty := 0.0
	if coverage < w.CoverageThreshold {
		coveragePenalty = (1 - coverage) * w.MaxCoveragePenalty
	}

	ob := w.Overall
	overallScore := clampScore(
		float64(safetyScore)*ob.Safety +
			float64(goalScore)*ob.GoalAlignment +
			float64(performanceScore)*ob.Performance +
			float64(moistureScore)*ob.Moisture +
			float64(scalpScore)*ob.ScalpCare -
			coveragePenalty,
	)

	return ScoreResult{
		OverallScore:          overallScore,
		MoistureScore:         moistureScore,
		ScalpCareScore:        scalpScore,
		CurlDefinitionScore:   curlScore,
		FrizzControlScore:     frizzScore,
		StrengthRepairScore:   strengthScore,
		IngredientSafetyScore: safetyScore,
		GoalAlignmentScore:    goalScore,
		PerformanceScore:      performanceScore,
		Breakdown: Breakdown{
			CoverageRatio:   roundHalfUp(coverage * 100),
			AvgConfidence:   roundHalfUp(confidence / n * 100),
			MatchedCount:    len(rules),
			TotalCount:      total,
			CoveragePenalty: coveragePenalty,
			RiskSummary: RiskSummary{
				Buildup:    roundHalfUp(buildup / maxRaw * 100),
				Drying:     roundHalfUp(drying / maxRaw * 100),
				Irritation: roundHalfUp(irritation / maxRaw * 100),
			},
		},
		Explanation:        explain(safetyScore, goalScore, coverage, w),
		MissingIngredients: []string{},
	}
}

func explain(safety, goal int, coverage float64, w Weights) string {
	var parts []string
	switch {
	case safety >= w.SafeThreshold:
		parts = append(parts, "Ingredients are generally safe for your hair type.")
	case safety < w.UnsafeThreshold:
		parts = append(parts, "Some ingredients may be problematic — check buildup and drying risks.")
	}
	switch {
	case goal >= w.AlignedThreshold:
		parts = append(parts, "Good match for your porosity, density, and concerns.")
	case goal < w.MisalignedThreshold:
		parts = append(parts, "This product may not align well with your hair profile.")
	}
	if coverage < w.CoverageThreshold {
		parts = append(parts, fmt.Sprintf("Only %d%% of ingredients have been analyzed. Score confidence is lower.", roundHalfUp(coverage*100)))
	}
	return strings.Join(parts, " ")
}

func clampScore(v float64) int {
	return roundHalfUp(math.Max(0, math.Min(100, v)))
}

// roundHalfUp rounds .5 towards positive infinity.
func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}
