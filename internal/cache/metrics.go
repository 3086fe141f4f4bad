package cache

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// cacheMetrics contains Prometheus metrics for the LRU caches,
// labeled by cache name.
type cacheMetrics struct {
	hitsTotal      *prometheus.CounterVec
	missesTotal    *prometheus.CounterVec
	evictionsTotal *prometheus.CounterVec
	sizeGauge      *prometheus.GaugeVec
}

var (
	cacheMetricsInstance *cacheMetrics
	cacheMetricsOnce     sync.Once
)

// getCacheMetrics returns the singleton cache metrics instance.
func getCacheMetrics() *cacheMetrics {
	cacheMetricsOnce.Do(func() {
		cacheMetricsInstance = &cacheMetrics{
			hitsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "router",
					Subsystem: "cache",
					Name:      "hits_total",
					Help:      "Total number of cache hits",
				},
				[]string{"cache"},
			),
			missesTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "router",
					Subsystem: "cache",
					Name:      "misses_total",
					Help:      "Total number of cache misses",
				},
				[]string{"cache"},
			),
			evictionsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "router",
					Subsystem: "cache",
					Name:      "evictions_total",
					Help:      "Total number of cache evictions",
				},
				[]string{"cache"},
			),
			sizeGauge: promauto.NewGaugeVec(
				prometheus.GaugeOpts{
					Namespace: "router",
					Subsystem: "cache",
					Name:      "size",
					Help:      "Current number of entries in the cache",
				},
				[]string{"cache"},
			),
		}
	})
	return cacheMetricsInstance
}
