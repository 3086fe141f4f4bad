package router

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/vyrodovalexey/avrouter/internal/cache"
	"github.com/vyrodovalexey/avrouter/internal/observability"
	"github.com/vyrodovalexey/avrouter/internal/util"
)

// tracerName is the OpenTelemetry tracer name for match operations.
const tracerName = "avrouter/router"

// Stage label values for the match metrics.
const (
	stageExact     = "exact"
	stageCache     = "cache"
	stageTrie      = "trie"
	stagePrefix    = "prefix"
	stageContains  = "contains"
	stageFallback  = "fallback"
	stageUnhandled = "unhandled"
)

// Router is the routing engine. Routes are registered single-threaded
// during startup; Match is then safe for concurrent use. The match
// cache is the only structure that mutates while serving.
type Router struct {
	logger observability.Logger

	exact     *exactIndex
	trie      *trie
	prefixes  *affixList
	contains  *affixList
	fallbacks map[string]http.Handler

	matches       *cache.LRU[*MatchResult]
	cacheCapacity int

	templatedRoutes int

	mu sync.RWMutex
}

// Option configures a Router.
type Option func(*Router)

// WithLogger sets the logger.
func WithLogger(logger observability.Logger) Option {
	return func(r *Router) {
		r.logger = logger
	}
}

// WithCacheCapacity sets the match cache capacity. Non-positive values
// fall back to cache.DefaultCapacity.
func WithCacheCapacity(capacity int) Option {
	return func(r *Router) {
		r.cacheCapacity = capacity
	}
}

// New creates a new router.
func New(opts ...Option) *Router {
	r := &Router{
		logger:    observability.NopLogger(),
		exact:     newExactIndex(),
		trie:      newTrie(),
		prefixes:  newPrefixList(),
		contains:  newContainsList(),
		fallbacks: make(map[string]http.Handler),
	}

	for _, opt := range opts {
		opt(r)
	}

	r.matches = cache.New[*MatchResult]("match", r.cacheCapacity, r.logger)

	return r
}

// AddExactRoute registers a handler for a literal path. Re-registering
// the same (method, path) overwrites the previous handler; last
// registration wins.
func (r *Router) AddExactRoute(method, path string, handler http.Handler) error {
	if err := checkRegistration(method, handler); err != nil {
		return err
	}
	if path == "" || path[0] != '/' {
		return util.NewPatternError(path, "", "must begin with a slash")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.exact.register(method, path, handler)
	getMatcherMetrics().registrationsTotal.WithLabelValues(KindExact.String()).Inc()

	r.logger.Debug("route registered",
		observability.String("kind", KindExact.String()),
		observability.String("method", method),
		observability.String("pattern", path))

	return nil
}

// AddRoute registers a handler for a pattern. Patterns containing
// {name} segments are classified as templated and inserted into the
// trie; all others are treated as exact routes. Classification happens
// once, here, and is never re-derived while serving.
func (r *Router) AddRoute(method, pattern string, handler http.Handler) error {
	if err := checkRegistration(method, handler); err != nil {
		return err
	}

	segments, templated, err := parsePattern(pattern)
	if err != nil {
		return err
	}

	if !templated {
		return r.AddExactRoute(method, pattern, handler)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.trie.insert(pattern, segments, method, handler); err != nil {
		return err
	}
	r.templatedRoutes++
	getMatcherMetrics().registrationsTotal.WithLabelValues(KindTemplated.String()).Inc()

	r.logger.Debug("route registered",
		observability.String("kind", KindTemplated.String()),
		observability.String("method", method),
		observability.String("pattern", pattern))

	return nil
}

// AddPrefixRoute registers a handler for any path beginning with
// prefix. Overlapping prefixes resolve first-registered-wins; register
// more specific prefixes first.
func (r *Router) AddPrefixRoute(method, prefix string, handler http.Handler) error {
	if err := checkRegistration(method, handler); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.prefixes.register(method, prefix, handler)
	getMatcherMetrics().registrationsTotal.WithLabelValues(KindPrefix.String()).Inc()

	r.logger.Debug("route registered",
		observability.String("kind", KindPrefix.String()),
		observability.String("method", method),
		observability.String("pattern", prefix))

	return nil
}

// AddContainsRoute registers a handler for any path containing the
// substring. Overlaps resolve first-registered-wins.
func (r *Router) AddContainsRoute(method, substring string, handler http.Handler) error {
	if err := checkRegistration(method, handler); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.contains.register(method, substring, handler)
	getMatcherMetrics().registrationsTotal.WithLabelValues(KindContains.String()).Inc()

	r.logger.Debug("route registered",
		observability.String("kind", KindContains.String()),
		observability.String("method", method),
		observability.String("pattern", substring))

	return nil
}

// SetFallback registers the catch-all handler for a method, invoked
// only when no other route matches. Setting it again overwrites the
// previous handler.
func (r *Router) SetFallback(method string, handler http.Handler) error {
	if err := checkRegistration(method, handler); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.fallbacks[method] = handler
	getMatcherMetrics().registrationsTotal.WithLabelValues(KindFallback.String()).Inc()

	return nil
}

// checkRegistration validates the shared registration inputs.
func checkRegistration(method string, handler http.Handler) error {
	if !IsValidMethod(method) {
		return util.NewConfigError("method", fmt.Sprintf("unknown HTTP method %q", method))
	}
	if handler == nil {
		return util.NewConfigError("handler", "nil handler")
	}
	return nil
}

// Match resolves the best-matching route for a (method, path) pair.
// An unhandled path returns (nil, nil); it is not an error. Errors are
// reserved for invalid input: an empty or relative path, or an unknown
// method.
func (r *Router) Match(ctx context.Context, method, path string) (*MatchResult, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "router.Match",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("http.method", method),
			attribute.String("url.path", path),
		),
	)
	defer span.End()

	if !IsValidMethod(method) {
		return nil, fmt.Errorf("%w: unknown HTTP method %q", util.ErrInvalidInput, method)
	}
	if path == "" || path[0] != '/' {
		return nil, fmt.Errorf("%w: path must begin with a slash", util.ErrInvalidInput)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	result := r.resolve(ctx, method, path)
	if result == nil {
		span.SetAttributes(attribute.String("router.stage", stageUnhandled))
		getMatcherMetrics().matchesTotal.WithLabelValues(stageUnhandled).Inc()
		return nil, nil
	}

	span.SetAttributes(
		attribute.String("router.kind", result.Kind.String()),
		attribute.String("router.pattern", result.Pattern),
	)

	return result, nil
}

// resolve runs the priority-ordered stages, short-circuiting on the
// first success.
func (r *Router) resolve(ctx context.Context, method, path string) *MatchResult {
	metrics := getMatcherMetrics()

	// Stage 1: exact index, O(1), bypasses the cache entirely.
	if h, ok := r.exact.lookup(method, path); ok {
		metrics.matchesTotal.WithLabelValues(stageExact).Inc()
		return &MatchResult{Handler: h, Kind: KindExact, Pattern: path}
	}

	// Stage 2: match cache. A cached negative means the trie is known
	// not to match; skip the walk but keep falling through, since
	// prefix, contains and fallback are evaluated independently.
	key := cache.Key(method, path)
	cached, negative, ok := r.matches.Get(ctx, key)
	switch {
	case ok && !negative:
		metrics.matchesTotal.WithLabelValues(stageCache).Inc()
		return cached
	case !ok:
		// Stage 3: trie traversal, memoized either way.
		if h, params, pattern, found := r.trie.traverse(method, splitPath(path)); found {
			result := &MatchResult{Handler: h, Params: params, Kind: KindTemplated, Pattern: pattern}
			r.matches.Put(ctx, key, result)
			metrics.matchesTotal.WithLabelValues(stageTrie).Inc()
			return result
		}
		r.matches.PutNegative(ctx, key)
	}

	// Stage 4: prefix list, first registered wins.
	if h, literal, found := r.prefixes.lookup(method, path); found {
		metrics.matchesTotal.WithLabelValues(stagePrefix).Inc()
		return &MatchResult{Handler: h, Kind: KindPrefix, Pattern: literal}
	}

	// Stage 5: contains list, first registered wins.
	if h, literal, found := r.contains.lookup(method, path); found {
		metrics.matchesTotal.WithLabelValues(stageContains).Inc()
		return &MatchResult{Handler: h, Kind: KindContains, Pattern: literal}
	}

	// Stage 6: per-method fallback.
	if h, found := r.fallbacks[method]; found {
		metrics.matchesTotal.WithLabelValues(stageFallback).Inc()
		return &MatchResult{Handler: h, Kind: KindFallback}
	}

	return nil
}

// Stats holds router counters for instrumentation and tests.
type Stats struct {
	ExactRoutes     int
	TemplatedRoutes int
	PrefixRoutes    int
	ContainsRoutes  int
	Fallbacks       int
	TrieTraversals  int64
	Cache           cache.Stats
}

// Stats returns a snapshot of the router counters.
func (r *Router) Stats() Stats {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return Stats{
		ExactRoutes:     r.exact.len(),
		TemplatedRoutes: r.templatedRoutes,
		PrefixRoutes:    r.prefixes.len(),
		ContainsRoutes:  r.contains.len(),
		Fallbacks:       len(r.fallbacks),
		TrieTraversals:  r.trie.traversalCount(),
		Cache:           r.matches.Stats(),
	}
}
