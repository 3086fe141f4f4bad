package router

import (
	"net/http"
	"sync/atomic"

	"github.com/vyrodovalexey/avrouter/internal/util"
)

// trieNode is one position in the segment trie. Literal children are
// keyed by exact segment text; at most one template child exists per
// node, binding any non-empty segment to its variable name. Handlers
// are recorded per HTTP method for routes terminating here.
type trieNode struct {
	literals  map[string]*trieNode
	template  *trieNode
	paramName string
	handlers  map[string]http.Handler
	patterns  map[string]string
}

func newTrieNode() *trieNode {
	return &trieNode{
		literals: make(map[string]*trieNode),
		handlers: make(map[string]http.Handler),
		patterns: make(map[string]string),
	}
}

// trie is the segment trie for templated routes. It is populated
// during the registration phase and read-only afterwards; the
// traversal counter is the only serving-phase mutation and exists for
// cache-effectiveness instrumentation.
type trie struct {
	root       *trieNode
	traversals atomic.Int64
}

func newTrie() *trie {
	return &trie{root: newTrieNode()}
}

// insert walks and creates nodes for the pattern segments and records
// the handler for the method at the terminal node. Re-registering the
// same (pattern, method) overwrites the handler. Registering a second
// variable name at an occupied template position is a conflict.
func (t *trie) insert(pattern string, segments []patternSegment, method string, handler http.Handler) error {
	n := t.root
	for _, seg := range segments {
		if seg.isParam {
			if n.template == nil {
				child := newTrieNode()
				child.paramName = seg.paramName
				n.template = child
			} else if n.template.paramName != seg.paramName {
				return util.NewRouteConflictError(pattern, n.template.paramName,
					"conflicting variable name at the same position")
			}
			n = n.template
			continue
		}

		child, ok := n.literals[seg.literal]
		if !ok {
			child = newTrieNode()
			n.literals[seg.literal] = child
		}
		n = child
	}

	n.handlers[method] = handler
	n.patterns[method] = pattern
	return nil
}

// traverse matches the segments against the trie for the method.
// Literal children are tried before the template child; the template
// branch is still explored when the literal subtree cannot complete
// the match. Bindings are returned in declaration order.
func (t *trie) traverse(method string, segments []string) (http.Handler, Params, string, bool) {
	t.traversals.Add(1)

	node, params := walk(t.root, method, segments, nil)
	if node == nil {
		return nil, nil, "", false
	}
	return node.handlers[method], params, node.patterns[method], true
}

// traversalCount returns the number of trie walks performed.
func (t *trie) traversalCount() int64 {
	return t.traversals.Load()
}

// walk descends one segment at a time. A path matches only if the full
// segment sequence is consumed and the terminal node has a handler for
// the requested method; handlers for other methods are a miss.
func walk(n *trieNode, method string, segments []string, params Params) (*trieNode, Params) {
	if len(segments) == 0 {
		if _, ok := n.handlers[method]; ok {
			return n, params
		}
		return nil, nil
	}

	seg := segments[0]
	if child, ok := n.literals[seg]; ok {
		if m, p := walk(child, method, segments[1:], params); m != nil {
			return m, p
		}
	}

	// Template edges bind any non-empty segment.
	if n.template != nil && seg != "" {
		bound := append(params[:len(params):len(params)],
			Param{Name: n.template.paramName, Value: seg})
		if m, p := walk(n.template, method, segments[1:], bound); m != nil {
			return m, p
		}
	}

	return nil, nil
}
