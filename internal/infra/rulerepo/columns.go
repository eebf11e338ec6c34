package rulerepo

import "github.com/yanqian/hairmatch/internal/domain/scoring"

const ruleColumns = `ingredient_name, normalized_name, category,
	moisture_score, protein_score, scalp_health_score, curl_definition_score, frizz_control_score,
	porosity_low_score, porosity_medium_score, porosity_high_score,
	density_thin_score, density_medium_score, density_thick_score,
	buildup_risk, drying_risk, irritation_risk,
	breakage_impact, thinning_impact, dandruff_impact, color_treated_impact, heat_damage_impact,
	humid_climate_modifier, dry_climate_modifier,
	confidence, notes, source`

const selectRuleColumns = `ingredient_name, normalized_name, COALESCE(category, ''),
	moisture_score, protein_score, scalp_health_score, curl_definition_score, frizz_control_score,
	porosity_low_score, porosity_medium_score, porosity_high_score,
	density_thin_score, density_medium_score, density_thick_score,
	buildup_risk, drying_risk, irritation_risk,
	breakage_impact, thinning_impact, dandruff_impact, color_treated_impact, heat_damage_impact,
	humid_climate_modifier, dry_climate_modifier,
	confidence::float8, COALESCE(notes, ''), COALESCE(source, '')`

// ruleFields lists the rule fields in column order.
func ruleFields(r *scoring.IngredientRule) []any {
	return []any{
		&r.IngredientName, &r.NormalizedName, &r.Category,
		&r.MoistureScore, &r.ProteinScore, &r.ScalpHealthScore, &r.CurlDefinitionScore, &r.FrizzControlScore,
		&r.PorosityLowScore, &r.PorosityMediumScore, &r.PorosityHighScore,
		&r.DensityThinScore, &r.DensityMediumScore, &r.DensityThickScore,
		&r.BuildupRisk, &r.DryingRisk, &r.IrritationRisk,
		&r.BreakageImpact, &r.ThinningImpact, &r.DandruffImpact, &r.ColorTreatedImpact, &r.HeatDamageImpact,
		&r.HumidClimateModifier, &r.DryClimateModifier,
		&r.Confidence, &r.Notes, &r.Source,
	}
}

func ruleValues(r scoring.IngredientRule) []any {
	return []any{
		r.IngredientName, r.NormalizedName, r.Category,
		r.MoistureScore, r.ProteinScore, r.ScalpHealthScore, r.CurlDefinitionScore, r.FrizzControlScore,
		r.PorosityLowScore, r.PorosityMediumScore, r.PorosityHighScore,
		r.DensityThinScore, r.DensityMediumScore, r.DensityThickScore,
		r.BuildupRisk, r.DryingRisk, r.IrritationRisk,
		r.BreakageImpact, r.ThinningImpact, r.DandruffImpact, r.ColorTreatedImpact, r.HeatDamageImpact,
		r.HumidClimateModifier, r.DryClimateModifier,
		r.Confidence, r.Notes, r.Source,
	}
}
