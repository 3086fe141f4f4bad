// Package router implements the request-routing engine: given an
// incoming (HTTP method, path) pair it resolves the single
// best-matching registered route and returns its handler together with
// any path variables extracted from the path.
//
// # Route kinds
//
//   - Exact: a literal path, resolved through a direct index in O(1).
//   - Templated: a pattern with {name} variable segments, resolved by
//     walking a segment trie with literal-first priority.
//   - Prefix: matches any path beginning with a literal string.
//   - Contains: matches any path containing a literal substring.
//
// A lookup probes the exact index first, then the bounded LRU match
// cache, then the trie, then the prefix and contains lists in
// registration order, and finally the per-method fallback handler.
// Templated resolutions (including known misses) are memoized in the
// match cache; exact lookups bypass it and prefix/contains scans are
// cheap enough to evaluate every time.
//
// # Path handling
//
// Paths and patterns must begin with a slash and are split on every
// slash without normalization: consecutive slashes produce empty
// literal segments that are matched literally, and a trailing slash
// changes the segment count. The same policy applies to registration
// and lookup.
//
// # Lifecycle
//
// All routes are registered single-threaded at startup; Match may then
// be called concurrently from any number of goroutines. The match
// cache is the only structure that mutates during serving.
package router
