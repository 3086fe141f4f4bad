package router

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExactIndex(t *testing.T) {
	t.Parallel()

	idx := newExactIndex()
	get := &namedHandler{name: "get"}
	post := &namedHandler{name: "post"}

	idx.register(http.MethodGet, "/health", get)
	idx.register(http.MethodPost, "/health", post)

	h, ok := idx.lookup(http.MethodGet, "/health")
	require.True(t, ok)
	assert.Same(t, get, h)

	h, ok = idx.lookup(http.MethodPost, "/health")
	require.True(t, ok)
	assert.Same(t, post, h)

	_, ok = idx.lookup(http.MethodDelete, "/health")
	assert.False(t, ok)

	_, ok = idx.lookup(http.MethodGet, "/health/")
	assert.False(t, ok, "trailing slash is a different path")

	assert.Equal(t, 2, idx.len())
}

func TestExactIndexLastRegistrationWins(t *testing.T) {
	t.Parallel()

	idx := newExactIndex()
	old := &namedHandler{name: "old"}
	replacement := &namedHandler{name: "new"}

	idx.register(http.MethodGet, "/health", old)
	idx.register(http.MethodGet, "/health", replacement)

	h, ok := idx.lookup(http.MethodGet, "/health")
	require.True(t, ok)
	assert.Same(t, replacement, h)
	assert.Equal(t, 1, idx.len())
}

func TestPrefixListFirstRegisteredWins(t *testing.T) {
	t.Parallel()

	l := newPrefixList()
	api := &namedHandler{name: "api"}
	apiV2 := &namedHandler{name: "apiV2"}

	l.register(http.MethodGet, "/api/", api)
	l.register(http.MethodGet, "/api/v2/", apiV2)

	// Both prefixes match; the earlier registration wins even though
	// the later one is more specific.
	h, literal, ok := l.lookup(http.MethodGet, "/api/v2/users")
	require.True(t, ok)
	assert.Same(t, api, h)
	assert.Equal(t, "/api/", literal)

	_, _, ok = l.lookup(http.MethodGet, "/static/app.js")
	assert.False(t, ok)

	_, _, ok = l.lookup(http.MethodPost, "/api/v2/users")
	assert.False(t, ok, "lists are per method")
}

func TestPrefixListRootPrefix(t *testing.T) {
	t.Parallel()

	l := newPrefixList()
	root := &namedHandler{name: "root"}
	l.register(http.MethodGet, "", root)

	h, _, ok := l.lookup(http.MethodGet, "/anything/at/all")
	require.True(t, ok)
	assert.Same(t, root, h)
}

func TestContainsList(t *testing.T) {
	t.Parallel()

	l := newContainsList()
	favicon := &namedHandler{name: "favicon"}
	images := &namedHandler{name: "images"}

	l.register(http.MethodGet, "favicon", favicon)
	l.register(http.MethodGet, ".png", images)

	tests := []struct {
		name    string
		path    string
		handler http.Handler
		matched bool
	}{
		{name: "substring anywhere", path: "/assets/favicon.ico", handler: favicon, matched: true},
		{name: "second entry", path: "/img/logo.png", handler: images, matched: true},
		{name: "first registered wins on overlap", path: "/favicon.png", handler: favicon, matched: true},
		{name: "no substring", path: "/api/users", matched: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h, _, ok := l.lookup(http.MethodGet, tt.path)
			assert.Equal(t, tt.matched, ok)
			if tt.matched {
				assert.Same(t, tt.handler, h)
			}
		})
	}
}
