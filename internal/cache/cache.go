package cache

import (
	"container/list"
	"context"
	"sync"
	"sync/atomic"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/vyrodovalexey/avrouter/internal/observability"
)

// DefaultCapacity is the number of entries a cache holds when no
// explicit capacity is configured.
const DefaultCapacity = 100

// tracerName is the OpenTelemetry tracer name for cache operations.
const tracerName = "avrouter/cache"

// LRU is a bounded least-recently-used cache. Get touches the entry as
// most recently used; Put evicts the least recently used entry once the
// capacity is exceeded. Both are safe for concurrent use.
type LRU[V any] struct {
	name     string
	logger   observability.Logger
	capacity int

	mu       sync.Mutex
	items    map[string]*list.Element
	eviction *list.List

	hits   int64
	misses int64
}

// entry is a cache entry. A negative entry records a known miss,
// distinct from a key that was never attempted.
type entry[V any] struct {
	key      string
	value    V
	negative bool
}

// Stats holds cache counters.
type Stats struct {
	Hits   int64
	Misses int64
	Size   int64
}

// New creates a bounded LRU cache. A non-positive capacity falls back
// to DefaultCapacity. The name labels the cache in logs and metrics.
func New[V any](name string, capacity int, logger observability.Logger) *LRU[V] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if logger == nil {
		logger = observability.NopLogger()
	}

	c := &LRU[V]{
		name:     name,
		logger:   logger,
		capacity: capacity,
		items:    make(map[string]*list.Element),
		eviction: list.New(),
	}

	logger.Info("lru cache initialized",
		observability.String("cache", name),
		observability.Int("capacity", capacity))

	return c
}

// Key builds the cache key for a (method, path) pair.
func Key(method, path string) string {
	return method + " " + path
}

// Get retrieves a value from the cache and marks it as most recently
// used. The negative return reports a stored negative marker; ok is
// false when the key was never attempted or has been evicted.
func (c *LRU[V]) Get(ctx context.Context, key string) (value V, negative bool, ok bool) {
	_, span := otel.Tracer(tracerName).Start(ctx, "cache.Get",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("cache.name", c.name),
			attribute.String("cache.key", key),
		),
	)
	defer span.End()

	c.mu.Lock()
	defer c.mu.Unlock()

	elem, exists := c.items[key]
	if !exists {
		atomic.AddInt64(&c.misses, 1)
		getCacheMetrics().missesTotal.WithLabelValues(c.name).Inc()
		span.SetAttributes(attribute.Bool("cache.hit", false))
		return value, false, false
	}

	c.eviction.MoveToFront(elem)

	e := elem.Value.(*entry[V])
	atomic.AddInt64(&c.hits, 1)
	getCacheMetrics().hitsTotal.WithLabelValues(c.name).Inc()
	span.SetAttributes(
		attribute.Bool("cache.hit", true),
		attribute.Bool("cache.negative", e.negative),
	)

	return e.value, e.negative, true
}

// Put inserts or overwrites a value, evicting the least recently used
// entry if the capacity is exceeded.
func (c *LRU[V]) Put(ctx context.Context, key string, value V) {
	c.put(ctx, key, value, false)
}

// PutNegative records a known miss for the key.
func (c *LRU[V]) PutNegative(ctx context.Context, key string) {
	var zero V
	c.put(ctx, key, zero, true)
}

func (c *LRU[V]) put(ctx context.Context, key string, value V, negative bool) {
	_, span := otel.Tracer(tracerName).Start(ctx, "cache.Put",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("cache.name", c.name),
			attribute.String("cache.key", key),
			attribute.Bool("cache.negative", negative),
		),
	)
	defer span.End()

	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, exists := c.items[key]; exists {
		c.eviction.MoveToFront(elem)
		elem.Value = &entry[V]{key: key, value: value, negative: negative}
	} else {
		elem := c.eviction.PushFront(&entry[V]{key: key, value: value, negative: negative})
		c.items[key] = elem

		for c.eviction.Len() > c.capacity {
			c.evictOldest()
		}
	}

	getCacheMetrics().sizeGauge.WithLabelValues(c.name).Set(float64(c.eviction.Len()))

	c.logger.Debug("cache put",
		observability.String("cache", c.name),
		observability.String("key", key),
		observability.Bool("negative", negative),
		observability.Int("size", c.eviction.Len()))
}

// Len returns the current number of entries.
func (c *LRU[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.eviction.Len()
}

// Capacity returns the fixed capacity.
func (c *LRU[V]) Capacity() int {
	return c.capacity
}

// Stats returns cache statistics.
func (c *LRU[V]) Stats() Stats {
	c.mu.Lock()
	size := int64(c.eviction.Len())
	c.mu.Unlock()

	return Stats{
		Hits:   atomic.LoadInt64(&c.hits),
		Misses: atomic.LoadInt64(&c.misses),
		Size:   size,
	}
}

// evictOldest removes the least recently used entry.
// Must be called with lock held.
func (c *LRU[V]) evictOldest() {
	elem := c.eviction.Back()
	if elem == nil {
		return
	}
	c.eviction.Remove(elem)
	delete(c.items, elem.Value.(*entry[V]).key)
	getCacheMetrics().evictionsTotal.WithLabelValues(c.name).Inc()
}
