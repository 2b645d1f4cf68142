package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	viewCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "taxidash_view_cache_lookups_total",
			Help: "Dashboard view cache lookups by result",
		},
		[]string{"result"},
	)

	viewComputeDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "taxidash_view_compute_duration_seconds",
			Help:    "Time spent recomputing a dashboard view",
			Buckets: prometheus.DefBuckets,
		},
	)

	tripsImported = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "taxidash_trips_imported_total",
			Help: "Trips stored by imports, by source",
		},
		[]string{"source"},
	)

	tripsSkipped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "taxidash_trips_skipped_total",
			Help: "Trip records rejected or deduplicated by imports, by source",
		},
		[]string{"source"},
	)
)
