package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels used across collectors.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

var (
	ScoreRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hairmatch_score_requests_total",
			Help: "Scoring requests by terminal error code (or ok).",
		},
		[]string{"code"},
	)

	ScoreCoverage = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "hairmatch_score_coverage_ratio",
			Help:    "Fraction of a product's ingredients that matched a rule.",
			Buckets: []float64{0, 0.1, 0.25, 0.4, 0.5, 0.6, 0.75, 0.9, 1},
		},
	)

	ScorePersistFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hairmatch_score_persist_failures_total",
			Help: "Score upserts that failed and were skipped.",
		},
	)

	DiscoveryDispatches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hairmatch_discovery_dispatches_total",
			Help: "Discovery batches handed to the sender, by outcome.",
		},
		[]string{"outcome"},
	)

	DiscoveredRules = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hairmatch_discovered_rules_total",
			Help: "Ingredient rules inserted by the synthesizer.",
		},
	)
)
