package scoring

import (
	"fmt"
	"math"
)

// OverallWeights blends the headline score.
type OverallWeights struct {
	Safety        float64
	GoalAlignment float64
	Performance   float64
	Moisture      float64
	ScalpCare     float64
}

// Sum returns the total of all weights.
func (w OverallWeights) Sum() float64 {
	return w.Safety + w.GoalAlignment + w.Performance + w.Moisture + w.ScalpCare
}

// PerformanceWeights blends the performance sub-score.
type PerformanceWeights struct {
	Moisture       float64
	CurlDefinition float64
	FrizzControl   float64
	StrengthRepair float64
	ScalpCare      float64
}

// Sum returns the total of all weights.
func (w PerformanceWeights) Sum() float64 {
	return w.Moisture + w.CurlDefinition + w.FrizzControl + w.StrengthRepair + w.ScalpCare
}

// Weights holds every numeric constant used by Calculate.
type Weights struct {
	Overall     OverallWeights
	Performance PerformanceWeights

	// PositionDecay is how much weight the last listed ingredient loses;
	// MinPositionWeight floors the decayed weight.
	PositionDecay     float64
	MinPositionWeight float64

	// RuleScale is the magnitude of the per-rule score range (-RuleScale..RuleScale).
	RuleScale float64

	// Below CoverageThreshold the overall score loses (1-ratio)*MaxCoveragePenalty.
	CoverageThreshold  float64
	MaxCoveragePenalty float64

	SafeThreshold       int
	UnsafeThreshold     int
	AlignedThreshold    int
	MisalignedThreshold int
}

// DefaultWeights returns the production tuning.
func DefaultWeights() Weights {
	return Weights{
		Overall: OverallWeights{
			Safety:        0.25,
			GoalAlignment: 0.25,
			Performance:   0.30,
			Moisture:      0.10,
			ScalpCare:     0.10,
		},
		Performance: PerformanceWeights{
			Moisture:       0.25,
			CurlDefinition: 0.20,
			FrizzControl:   0.15,
			StrengthRepair: 0.20,
			ScalpCare:      0.20,
		},
		PositionDecay:       0.7,
		MinPositionWeight:   0.3,
		RuleScale:           5,
		CoverageThreshold:   0.5,
		MaxCoveragePenalty:  10,
		SafeThreshold:       80,
		UnsafeThreshold:     50,
		AlignedThreshold:    75,
		MisalignedThreshold: 50,
	}
}

// Validate checks that both blends sum to 1.0 and no weight is negative.
func (w Weights) Validate() error {
	if math.Abs(w.Overall.Sum()-1.0) > 0.001 {
		return fmt.Errorf("overall weights sum to %.4f, must sum to 1.0", w.Overall.Sum())
	}
	if math.Abs(w.Performance.Sum()-1.0) > 0.001 {
		return fmt.Errorf("performance weights sum to %.4f, must sum to 1.0", w.Performance.Sum())
	}
	for _, v := range []float64{
		w.Overall.Safety, w.Overall.GoalAlignment, w.Overall.Performance, w.Overall.Moisture, w.Overall.ScalpCare,
		w.Performance.Moisture, w.Performance.CurlDefinition, w.Performance.FrizzControl, w.Performance.StrengthRepair, w.Performance.ScalpCare,
		w.PositionDecay, w.MinPositionWeight, w.CoverageThreshold, w.MaxCoveragePenalty,
	} {
		if v < 0 {
			return fmt.Errorf("negative weight: %f", v)
		}
	}
	if w.RuleScale <= 0 {
		return fmt.Errorf("rule scale must be positive, got %f", w.RuleScale)
	}
	return nil
}
