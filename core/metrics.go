package core

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics instrument the two operations that dominate the core's cost:
// construction and search. They are additive observability around
// CreateIndex and Search; nothing in the algorithm reads them back.
var (
	// NodesIndexed counts nodes successfully linked into the graph.
	NodesIndexed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "swrand_nodes_indexed_total",
			Help: "Total number of nodes linked into the graph by CreateIndex",
		},
	)

	// BuildDuration measures wall-clock time spent in CreateIndex.
	BuildDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "swrand_build_duration_seconds",
			Help:    "Duration of CreateIndex calls in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// SearchDuration measures query latency, labeled by algoType.
	SearchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "swrand_search_duration_seconds",
			Help:    "Duration of Search calls in seconds, by algorithm",
			Buckets: []float64{0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"algo_type"},
	)
)
