package catalog

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	catalogReloadTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "advisor_catalog_reload_total",
			Help: "Total number of platform catalog reload attempts",
		},
		[]string{"status"}, // success or error
	)
)
