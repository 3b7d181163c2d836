package advisor

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	adviseDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "advisor_advise_duration_seconds",
			Help:    "Duration of an end-to-end advice run in seconds",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		},
	)

	adviseTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "advisor_advise_total",
			Help: "Total number of advice runs",
		},
		[]string{"status"}, // success or error
	)

	patternMatchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "advisor_pattern_match_total",
			Help: "Total number of detection pattern matches",
		},
		[]string{"category", "pattern"},
	)
)
