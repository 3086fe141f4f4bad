package util

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigError(t *testing.T) {
	t.Parallel()

	err := NewConfigError("cache.capacity", "must be non-negative")
	assert.Equal(t, "config error at cache.capacity: must be non-negative", err.Error())
	assert.ErrorIs(t, err, ErrConfigInvalid)
	assert.NoError(t, err.Unwrap())

	bare := NewConfigError("", "something broke")
	assert.Equal(t, "config error: something broke", bare.Error())
}

func TestConfigErrorWithCause(t *testing.T) {
	t.Parallel()

	cause := errors.New("yaml: line 3: mapping values are not allowed")
	err := NewConfigErrorWithCause("routes", "failed to parse", cause)

	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, ErrConfigInvalid)

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "routes", cfgErr.Field)
}

func TestPatternError(t *testing.T) {
	t.Parallel()

	err := NewPatternError("/api/{id", "{id", "unclosed brace")
	assert.Equal(t, `invalid pattern "/api/{id": segment "{id": unclosed brace`, err.Error())
	assert.ErrorIs(t, err, ErrConfigInvalid)

	var patternErr *PatternError
	assert.ErrorAs(t, err, &patternErr)

	noSegment := NewPatternError("api", "", "must begin with /")
	assert.Equal(t, `invalid pattern "api": must begin with /`, noSegment.Error())
}

func TestRouteConflictError(t *testing.T) {
	t.Parallel()

	err := NewRouteConflictError("/api/{name}", "/api/{id}", "conflicting variable name")
	assert.Equal(t, `route conflict for "/api/{name}" (existing "/api/{id}"): conflicting variable name`, err.Error())
	assert.ErrorIs(t, err, ErrConfigInvalid)

	var conflict *RouteConflictError
	assert.ErrorAs(t, err, &conflict)

	noExisting := NewRouteConflictError("/api/{name}", "", "conflict")
	assert.Equal(t, `route conflict for "/api/{name}": conflict`, noExisting.Error())
}

func TestWrapError(t *testing.T) {
	t.Parallel()

	assert.NoError(t, WrapError(nil, "context"))

	wrapped := WrapError(ErrNotFound, "loading route")
	require.Error(t, wrapped)
	assert.ErrorIs(t, wrapped, ErrNotFound)
	assert.Equal(t, "loading route: not found", wrapped.Error())
}
