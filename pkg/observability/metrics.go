package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Builder metrics
	WidgetsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gengui",
			Subsystem: "builder",
			Name:      "widgets_total",
			Help:      "Total number of widgets materialized, by kind",
		},
		[]string{"kind"},
	)

	Builds = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gengui",
			Subsystem: "builder",
			Name:      "builds_total",
			Help:      "Total number of tree builds, by result",
		},
		[]string{"result"},
	)

	BuildDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "gengui",
			Subsystem: "builder",
			Name:      "build_duration_seconds",
			Help:      "Tree build latency in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 12), // 100µs to ~200ms
		},
	)

	// Resolver metrics
	Lookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gengui",
			Subsystem: "resolver",
			Name:      "lookups_total",
			Help:      "Total number of name lookups, by result",
		},
		[]string{"result"},
	)

	// Watch metrics
	Reloads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gengui",
			Subsystem: "watch",
			Name:      "reloads_total",
			Help:      "Total number of document reloads, by result",
		},
		[]string{"result"},
	)
)

// Result label values.
const (
	ResultSuccess = "success"
	ResultError   = "error"
	ResultHit     = "hit"
	ResultMiss    = "miss"
)

// RecordBuild records one tree build.
func RecordBuild(seconds float64, err error) {
	BuildDuration.Observe(seconds)
	if err != nil {
		Builds.WithLabelValues(ResultError).Inc()
		return
	}
	Builds.WithLabelValues(ResultSuccess).Inc()
}

// RecordLookup records one name lookup.
func RecordLookup(found bool) {
	if found {
		Lookups.WithLabelValues(ResultHit).Inc()
		return
	}
	Lookups.WithLabelValues(ResultMiss).Inc()
}
