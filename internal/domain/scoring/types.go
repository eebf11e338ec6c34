package scoring

import "time"

// HairProfile is the subset of the questionnaire answers used for scoring.
type HairProfile struct {
	ID             string    `json:"id" yaml:"id"`
	UserID         string    `json:"userId" yaml:"userId"`
	HairType       string    `json:"hairType" yaml:"hairType"`
	Porosity       string    `json:"porosity" yaml:"porosity"`
	Density        string    `json:"density" yaml:"density"`
	Concerns       []string  `json:"concerns" yaml:"concerns"`
	ScalpCondition string    `json:"scalpCondition" yaml:"scalpCondition"`
	Climate        string    `json:"climate" yaml:"climate"`
	CreatedAt      time.Time `json:"createdAt" yaml:"createdAt"`
}

// IngredientRule holds the per-ingredient impact and risk values. Impact and fit
// fields live in -5..5, risk fields in 0..5, Confidence in [0,1].
type IngredientRule struct {
	IngredientName string `json:"ingredient_name" yaml:"ingredientName"`
	NormalizedName string `json:"normalized_name" yaml:"normalizedName"`
	Category       string `json:"category" yaml:"category"`

	MoistureScore       int `json:"moisture_score" yaml:"moisture"`
	ProteinScore        int `json:"protein_score" yaml:"protein"`
	ScalpHealthScore    int `json:"scalp_health_score" yaml:"scalpHealth"`
	CurlDefinitionScore int `json:"curl_definition_score" yaml:"curlDefinition"`
	FrizzControlScore   int `json:"frizz_control_score" yaml:"frizzControl"`

	PorosityLowScore    int `json:"porosity_low_score" yaml:"porosityLow"`
	PorosityMediumScore int `json:"porosity_medium_score" yaml:"porosityMedium"`
	PorosityHighScore   int `json:"porosity_high_score" yaml:"porosityHigh"`
	DensityThinScore    int `json:"density_thin_score" yaml:"densityThin"`
	DensityMediumScore  int `json:"density_medium_score" yaml:"densityMedium"`
	DensityThickScore   int `json:"density_thick_score" yaml:"densityThick"`

	BuildupRisk    int `json:"buildup_risk" yaml:"buildupRisk"`
	DryingRisk     int `json:"drying_risk" yaml:"dryingRisk"`
	IrritationRisk int `json:"irritation_risk" yaml:"irritationRisk"`

	BreakageImpact     int `json:"breakage_impact" yaml:"breakageImpact"`
	ThinningImpact     int `json:"thinning_impact" yaml:"thinningImpact"`
	DandruffImpact     int `json:"dandruff_impact" yaml:"dandruffImpact"`
	ColorTreatedImpact int `json:"color_treated_impact" yaml:"colorTreatedImpact"`
	HeatDamageImpact   int `json:"heat_damage_impact" yaml:"heatDamageImpact"`

	HumidClimateModifier int `json:"humid_climate_modifier" yaml:"humidClimate"`
	DryClimateModifier   int `json:"dry_climate_modifier" yaml:"dryClimate"`

	Confidence float64 `json:"confidence" yaml:"confidence"`
	Notes      string  `json:"notes,omitempty" yaml:"notes"`
	Source     string  `json:"source,omitempty" yaml:"source"`
}

// ParsedIngredient is one entry of a product's structured ingredient list.
type ParsedIngredient struct {
	Name string `json:"name" yaml:"name"`
}

// ProductIngredients is the ingredient data stored for a product. A nil Parsed
// slice means no structured list exists and RawText is used instead.
type ProductIngredients struct {
	ProductID string             `json:"productId" yaml:"productId"`
	RawText   string             `json:"rawText" yaml:"rawText"`
	Parsed    []ParsedIngredient `json:"parsed" yaml:"parsed"`
}

// RiskSummary reports the position-weighted risk sums as percentages.
type RiskSummary struct {
	Buildup    int `json:"buildup"`
	Drying     int `json:"drying"`
	Irritation int `json:"irritation"`
}

// Breakdown explains how much of the product the score is based on.
type Breakdown struct {
	CoverageRatio   int         `json:"coverage_ratio"`
	AvgConfidence   int         `json:"avg_confidence"`
	MatchedCount    int         `json:"matched_count"`
	TotalCount      int         `json:"total_count"`
	CoveragePenalty float64     `json:"coverage_penalty"`
	RiskSummary     RiskSummary `json:"risk_summary"`
}

// ScoreResult is the full compatibility score returned to the caller.
type ScoreResult struct {
	OverallScore          int       `json:"overall_score"`
	MoistureScore         int       `json:"moisture_score"`
	ScalpCareScore        int       `json:"scalp_care_score"`
	CurlDefinitionScore   int       `json:"curl_definition_score"`
	FrizzControlScore     int       `json:"frizz_control_score"`
	StrengthRepairScore   int       `json:"strength_repair_score"`
	IngredientSafetyScore int       `json:"ingredient_safety_score"`
	GoalAlignmentScore    int       `json:"goal_alignment_score"`
	PerformanceScore      int       `json:"performance_score"`
	Breakdown             Breakdown `json:"score_breakdown"`
	Explanation           string    `json:"score_explanation"`
	MissingIngredients    []string  `json:"missing_ingredients"`
}

// StoredScore is the persisted row for a (user, product) pair.
type StoredScore struct {
	UserID                string    `json:"userId"`
	ProductID             string    `json:"productId"`
	HairProfileID         string    `json:"hairProfileId"`
	OverallScore          int       `json:"overall_score"`
	MoistureScore         int       `json:"moisture_score"`
	ScalpCareScore        int       `json:"scalp_care_score"`
	CurlDefinitionScore   int       `json:"curl_definition_score"`
	FrizzControlScore     int       `json:"frizz_control_score"`
	StrengthRepairScore   int       `json:"strength_repair_score"`
	IngredientSafetyScore int       `json:"ingredient_safety_score"`
	GoalAlignmentScore    int       `json:"goal_alignment_score"`
	PerformanceScore      int       `json:"performance_score"`
	Breakdown             Breakdown `json:"score_breakdown"`
	Explanation           string    `json:"score_explanation"`
	UpdatedAt             time.Time `json:"updatedAt"`
}

// NewStoredScore copies a result into the row persisted for userID/productID.
func NewStoredScore(userID, productID, profileID string, result ScoreResult, now time.Time) StoredScore {
	return StoredScore{
		UserID:                userID,
		ProductID:             productID,
		HairProfileID:         profileID,
		OverallScore:          result.OverallScore,
		MoistureScore:         result.MoistureScore,
		ScalpCareScore:        result.ScalpCareScore,
		CurlDefinitionScore:   result.CurlDefinitionScore,
		FrizzControlScore:     result.FrizzControlScore,
		StrengthRepairScore:   result.StrengthRepairScore,
		IngredientSafetyScore: result.IngredientSafetyScore,
		GoalAlignmentScore:    result.GoalAlignmentScore,
		PerformanceScore:      result.PerformanceScore,
		Breakdown:             result.Breakdown,
		Explanation:           result.Explanation,
		UpdatedAt:             now,
	}
}

// ScoreRequest is the scoring request body.
type ScoreRequest struct {
	ProductID string `json:"product_id"`
}
