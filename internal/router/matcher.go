package router

import (
	"net/http"
	"strings"
)

// exactKey builds the index key for a (method, path) pair.
func exactKey(method, path string) string {
	return method + " " + path
}

// exactIndex maps (method, full literal path) to a handler for
// zero-traversal O(1) resolution of routes with no variable segments.
type exactIndex struct {
	entries map[string]http.Handler
}

func newExactIndex() *exactIndex {
	return &exactIndex{entries: make(map[string]http.Handler)}
}

// register stores the handler. Re-registering the same (method, path)
// overwrites the previous handler; last registration wins.
func (idx *exactIndex) register(method, path string, handler http.Handler) {
	idx.entries[exactKey(method, path)] = handler
}

// lookup is a direct map read.
func (idx *exactIndex) lookup(method, path string) (http.Handler, bool) {
	h, ok := idx.entries[exactKey(method, path)]
	return h, ok
}

func (idx *exactIndex) len() int {
	return len(idx.entries)
}

// affixRoute is one prefix or contains registration.
type affixRoute struct {
	literal string
	handler http.Handler
}

// affixList holds per-method route lists scanned linearly in
// registration order; the first matching entry wins. Callers needing
// specificity register more specific literals first. These lists are
// expected to stay small (static-asset namespaces, extension rules),
// which is why they are plain scans rather than trie residents.
type affixList struct {
	matches func(path, literal string) bool
	routes  map[string][]affixRoute
}

// newPrefixList creates the list for prefix routes.
func newPrefixList() *affixList {
	return &affixList{
		matches: strings.HasPrefix,
		routes:  make(map[string][]affixRoute),
	}
}

// newContainsList creates the list for substring routes.
func newContainsList() *affixList {
	return &affixList{
		matches: strings.Contains,
		routes:  make(map[string][]affixRoute),
	}
}

// register appends to the method's list, preserving registration order.
func (l *affixList) register(method, literal string, handler http.Handler) {
	l.routes[method] = append(l.routes[method], affixRoute{literal: literal, handler: handler})
}

// lookup scans the method's list in registration order and returns the
// first entry whose literal matches the path.
func (l *affixList) lookup(method, path string) (http.Handler, string, bool) {
	for _, r := range l.routes[method] {
		if l.matches(path, r.literal) {
			return r.handler, r.literal, true
		}
	}
	return nil, "", false
}

func (l *affixList) len() int {
	n := 0
	for _, rs := range l.routes {
		n += len(rs)
	}
	return n
}
