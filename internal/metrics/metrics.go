package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Reply sources.
const (
	SourceFAQ      = "faq"
	SourceFacts    = "facts"
	SourceLLM      = "llm"
	SourceFallback = "fallback"
)

var (
	RepliesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "autoskola_replies_total",
			Help: "Total number of chat replies by the component that produced them",
		},
		[]string{"source"},
	)

	StoreFetchFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "autoskola_store_fetch_failures_total",
			Help: "Total number of record store table fetches that failed and degraded to empty",
		},
		[]string{"table"},
	)

	CompletionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "autoskola_completion_duration_seconds",
			Help:    "Duration of completion API calls in seconds",
			Buckets: []float64{0.25, 0.5, 1, 2, 4, 8, 12, 16, 20, 30},
		},
	)

	FAQSyncs = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "autoskola_faq_syncs_total",
			Help: "Total number of FAQ search index sync attempts by result",
		},
		[]string{"result"},
	)
)
