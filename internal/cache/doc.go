// Package cache provides the bounded least-recently-used cache that
// memoizes templated route resolutions.
//
// The cache is keyed by the (method, path) pair and stores either a
// resolved match value or an explicit negative marker, so repeated
// misses do not re-walk the routing trie. Entries are only ever
// invalidated by capacity eviction; routes are registered once before
// traffic begins, so there is no explicit invalidation API.
//
// The cache is the only structure that mutates during the serving
// phase. A single mutex guards the map and the eviction order; every
// operation is O(1), so contention is short-lived.
package cache
