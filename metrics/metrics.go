package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	Requests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wer_requests_total",
		Help: "WER computations by outcome",
	}, []string{"outcome"})

	Ratio = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "wer_ratio",
		Help:    "Word error rate of each computed pair, as a fraction",
		Buckets: []float64{0, 0.05, 0.1, 0.2, 0.3, 0.5, 0.75, 1.0, 1.5, 2.0},
	})

	Distance = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "wer_distance",
		Help:    "Word level edit distance of each computed pair",
		Buckets: prometheus.ExponentialBuckets(1, 2, 10),
	})

	ComputeDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "wer_compute_duration_seconds",
		Help:    "Time to build the table, backtrack and render one pair",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0},
	})
)

// Outcome labels
const (
	OK        = "ok"
	Invalid   = "invalid_input"
	Undefined = "undefined_rate"
	Failed    = "error"
)
