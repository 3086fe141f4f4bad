package router

import (
	"net/http"
	"strings"
)

// Kind identifies how a route matches. It is classified once at
// registration time and never re-derived on the serving path.
type Kind uint8

// Route kinds, in matching priority order.
const (
	KindExact Kind = iota
	KindTemplated
	KindPrefix
	KindContains
	KindFallback
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindExact:
		return "exact"
	case KindTemplated:
		return "templated"
	case KindPrefix:
		return "prefix"
	case KindContains:
		return "contains"
	case KindFallback:
		return "fallback"
	default:
		return "unknown"
	}
}

// knownMethods is the fixed set of supported HTTP methods.
var knownMethods = map[string]struct{}{
	http.MethodGet:     {},
	http.MethodPost:    {},
	http.MethodPut:     {},
	http.MethodDelete:  {},
	http.MethodPatch:   {},
	http.MethodOptions: {},
	http.MethodHead:    {},
}

// IsValidMethod reports whether method is one of the supported HTTP
// methods. Matching is case-sensitive; methods are uppercase per
// RFC 9110.
func IsValidMethod(method string) bool {
	_, ok := knownMethods[method]
	return ok
}

// Param is a single path variable binding.
type Param struct {
	Name  string
	Value string
}

// Params holds the path variables bound during a match, in declaration
// order of the matched pattern.
type Params []Param

// Get returns the value bound to name.
func (ps Params) Get(name string) (string, bool) {
	for _, p := range ps {
		if p.Name == name {
			return p.Value, true
		}
	}
	return "", false
}

// Map returns the bindings as a map.
func (ps Params) Map() map[string]string {
	if len(ps) == 0 {
		return nil
	}
	m := make(map[string]string, len(ps))
	for _, p := range ps {
		m[p.Name] = p.Value
	}
	return m
}

// String renders the bindings in declaration order for debugging.
func (ps Params) String() string {
	var b strings.Builder
	for i, p := range ps {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(p.Name)
		b.WriteByte('=')
		b.WriteString(p.Value)
	}
	return b.String()
}

// MatchResult is the outcome of a successful lookup: the handler to
// dispatch to, the variables bound during traversal, and the pattern
// that matched.
type MatchResult struct {
	Handler http.Handler
	Params  Params
	Kind    Kind
	Pattern string
}
