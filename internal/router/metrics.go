package router

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// matcherMetrics contains Prometheus metrics for the matcher.
type matcherMetrics struct {
	matchesTotal       *prometheus.CounterVec
	registrationsTotal *prometheus.CounterVec
}

var (
	matcherMetricsInstance *matcherMetrics
	matcherMetricsOnce     sync.Once
)

// getMatcherMetrics returns the singleton matcher metrics instance.
func getMatcherMetrics() *matcherMetrics {
	matcherMetricsOnce.Do(func() {
		matcherMetricsInstance = &matcherMetrics{
			matchesTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "router",
					Subsystem: "matcher",
					Name:      "matches_total",
					Help:      "Total number of lookups by resolving stage",
				},
				[]string{"stage"},
			),
			registrationsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "router",
					Subsystem: "matcher",
					Name:      "registrations_total",
					Help:      "Total number of route registrations by kind",
				},
				[]string{"kind"},
			),
		}
	})
	return matcherMetricsInstance
}
