package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics definitions
var (
	ParseDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "forensic_parse_seconds",
		Help:    "Time spent parsing and traversing a source document.",
		Buckets: prometheus.DefBuckets,
	}, []string{"language"})

	StructuralAnalysesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "forensic_structural_analyses_total",
		Help: "Structural analyses by language and outcome (ok, parse_failure, rejected, skipped).",
	}, []string{"language", "outcome"})

	JudgmentsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "forensic_judgments_total",
		Help: "Remote judgment calls by outcome (ok, quota, malformed, transport).",
	}, []string{"outcome"})

	JudgmentDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "forensic_judgment_seconds",
		Help:    "Latency of remote judgment calls.",
		Buckets: prometheus.DefBuckets,
	})

	WatcherEventsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "forensic_watcher_events_total",
		Help: "Total number of file system events received by the watcher.",
	})
)
