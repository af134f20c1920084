// Package metrics defines Prometheus collectors for the refresh pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RefreshCycles counts refresh cycles by terminal status
	RefreshCycles = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "country_refresh_cycles_total",
			Help: "Total number of refresh cycles by outcome",
		},
		[]string{"status"},
	)

	// RefreshDuration tracks end-to-end refresh cycle time
	RefreshDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "country_refresh_duration_seconds",
			Help:    "Refresh cycle duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// UpstreamFailures counts failed fetches per upstream
	UpstreamFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "country_upstream_failures_total",
			Help: "Total number of failed upstream fetches",
		},
		[]string{"upstream"},
	)

	// RecordsUpserted counts per-record upsert outcomes within refresh batches
	RecordsUpserted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "country_records_upserted_total",
			Help: "Total number of country records processed by bulk upserts",
		},
		[]string{"op"},
	)

	// SummaryRenders counts summary image generations by outcome
	SummaryRenders = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "country_summary_renders_total",
			Help: "Total number of summary image render attempts",
		},
		[]string{"status"},
	)
)

// Label values used with the collectors above.
const (
	StatusSuccess = "success"
	StatusFailure = "failure"

	OpInserted = "inserted"
	OpModified = "modified"
	OpFailed   = "failed"
)
