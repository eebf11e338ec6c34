package scoring

import "strings"

type concernImpact struct {
	keywords []string
	impact   func(IngredientRule) int
}

// concernTable maps concern keywords to the rule field they select. The set is
// closed; new concerns need a new rule field.
var concernTable = []concernImpact{
	{keywords: []string{"breakage", "breaking"}, impact: func(r IngredientRule) int { return r.BreakageImpact }},
	{keywords: []string{"thinning", "thin"}, impact: func(r IngredientRule) int { return r.ThinningImpact }},
	{keywords: []string{"dandruff", "flak"}, impact: func(r IngredientRule) int { return r.DandruffImpact }},
	{keywords: []string{"color", "dye"}, impact: func(r IngredientRule) int { return r.ColorTreatedImpact }},
	{keywords: []string{"heat", "damage"}, impact: func(r IngredientRule) int { return r.HeatDamageImpact }},
}

func (c concernImpact) matches(concern string) bool {
	for _, kw := range c.keywords {
		if strings.Contains(concern, kw) {
			return true
		}
	}
	return false
}

// concernFit averages the impacts hit by the profile's concern tags. A tag can
// hit several entries and an entry can be hit by several tags; each hit counts.
func concernFit(rule IngredientRule, concerns []string) float64 {
	total, count := 0, 0
	for _, concern := range concerns {
		c := strings.ToLower(concern)
		for _, entry := range concernTable {
			if entry.matches(c) {
				total += entry.impact(rule)
				count++
			}
		}
	}
	if count == 0 {
		return 0
	}
	return float64(total) / float64(count)
}

func porosityFit(rule IngredientRule, porosity string) int {
	switch strings.ToLower(porosity) {
	case "low":
		return rule.PorosityLowScore
	case "high":
		return rule.PorosityHighScore
	default:
		// medium, normal and anything unrecognised
		return rule.PorosityMediumScore
	}
}

func densityFit(rule IngredientRule, density string) int {
	switch strings.ToLower(density) {
	case "thin", "fine":
		return rule.DensityThinScore
	case "thick", "coarse":
		return rule.DensityThickScore
	default:
		return rule.DensityMediumScore
	}
}

func climateFit(rule IngredientRule, climate string) int {
	c := strings.ToLower(climate)
	switch {
	case strings.Contains(c, "humid"), strings.Contains(c, "tropical"):
		return rule.HumidClimateModifier
	case strings.Contains(c, "dry"), strings.Contains(c, "arid"):
		return rule.DryClimateModifier
	default:
		return 0
	}
}
