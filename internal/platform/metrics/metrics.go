package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "ratefeed"

const (
	OutcomeSuccess = "success"
	OutcomeEmpty   = "empty"
)

var (
	// FetchTotal counts fetch attempts per source and outcome (success, empty or a failure kind).
	FetchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetch_total",
			Help:      "Fetch attempts per source and outcome",
		},
		[]string{"source", "outcome"},
	)

	RatesFetched = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rates_fetched_total",
			Help:      "Rate records produced per source",
		},
		[]string{"source"},
	)

	RatesStored = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rates_stored_total",
			Help:      "Rate records handed to storage",
		},
	)

	CycleDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "cycle_duration_seconds",
			Help:      "Duration of one aggregation cycle",
			Buckets:   prometheus.ExponentialBuckets(0.1, 2, 10),
		},
	)

	ErrorsReported = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_reported_total",
			Help:      "Errors passed to the error tracker per failure kind",
		},
		[]string{"kind"},
	)

	ErrorsDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_dropped_total",
			Help:      "Errors dropped because the tracker buffer was full",
		},
	)
)

// ObserveFetch records one fetch outcome and the number of records it produced.
func ObserveFetch(source, outcome string, produced int) {
	FetchTotal.WithLabelValues(source, outcome).Inc()
	if produced > 0 {
		RatesFetched.WithLabelValues(source).Add(float64(produced))
	}
}
