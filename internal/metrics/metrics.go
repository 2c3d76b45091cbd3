package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	ScanRuns           prometheus.Counter
	MessagesProcessed  prometheus.Counter
	MessagesAccepted   prometheus.Counter
	MessagesRejected   prometheus.Counter
	MessagesDuplicate  prometheus.Counter
	MessagesSuppressed prometheus.Counter
	ItemIngests        prometheus.Counter
	TierOutcomes       *prometheus.CounterVec
	ScanDuration       prometheus.Histogram
}

// NewMetrics creates new Prometheus metrics
func NewMetrics() *Metrics {
	return &Metrics{
		ScanRuns: promauto.NewCounter(prometheus.CounterOpts{
			Name: "stylescout_scan_runs_total",
			Help: "Total number of mail scan runs",
		}),
		MessagesProcessed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "stylescout_messages_processed_total",
			Help: "Total number of mail messages fetched and examined",
		}),
		MessagesAccepted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "stylescout_messages_accepted_total",
			Help: "Total number of messages persisted after filtering",
		}),
		MessagesRejected: promauto.NewCounter(prometheus.CounterOpts{
			Name: "stylescout_messages_rejected_total",
			Help: "Total number of messages rejected by the relevance filter",
		}),
		MessagesDuplicate: promauto.NewCounter(prometheus.CounterOpts{
			Name: "stylescout_messages_duplicate_total",
			Help: "Total number of messages skipped as already ingested",
		}),
		MessagesSuppressed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "stylescout_messages_suppressed_total",
			Help: "Total number of messages dropped for opted-out brands",
		}),
		ItemIngests: promauto.NewCounter(prometheus.CounterOpts{
			Name: "stylescout_item_ingests_total",
			Help: "Total number of catalog items created via ingestion",
		}),
		TierOutcomes: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "stylescout_extraction_tier_outcomes_total",
			Help: "Extraction tier attempts by tier and outcome",
		}, []string{"tier", "outcome"}),
		ScanDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "stylescout_scan_duration_seconds",
			Help:    "Time spent on one mail scan run",
			Buckets: prometheus.DefBuckets,
		}),
	}
}
