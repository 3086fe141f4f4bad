package router

import (
	"strings"

	"github.com/vyrodovalexey/avrouter/internal/util"
)

// patternSegment is one slash-delimited piece of a route pattern.
type patternSegment struct {
	literal   string
	paramName string
	isParam   bool
}

// splitPath splits a leading-slash path into its segments. No
// normalization is applied: consecutive slashes yield empty literal
// segments and a trailing slash yields a trailing empty segment.
func splitPath(path string) []string {
	return strings.Split(path[1:], "/")
}

// parsePattern validates a route pattern and splits it into segments.
// The templated return reports whether the pattern contains at least
// one {name} variable segment.
func parsePattern(pattern string) (segments []patternSegment, templated bool, err error) {
	if pattern == "" {
		return nil, false, util.NewPatternError(pattern, "", "empty pattern")
	}
	if pattern[0] != '/' {
		return nil, false, util.NewPatternError(pattern, "", "must begin with a slash")
	}

	parts := splitPath(pattern)
	segments = make([]patternSegment, 0, len(parts))
	var seen map[string]struct{}

	for _, part := range parts {
		if !strings.ContainsAny(part, "{}") {
			segments = append(segments, patternSegment{literal: part})
			continue
		}

		if len(part) < 2 || part[0] != '{' || part[len(part)-1] != '}' ||
			strings.ContainsAny(part[1:len(part)-1], "{}") {
			return nil, false, util.NewPatternError(pattern, part, "unbalanced braces")
		}

		name := part[1 : len(part)-1]
		if name == "" {
			return nil, false, util.NewPatternError(pattern, part, "empty variable name")
		}

		if seen == nil {
			seen = make(map[string]struct{})
		}
		if _, dup := seen[name]; dup {
			return nil, false, util.NewPatternError(pattern, part, "duplicate variable name")
		}
		seen[name] = struct{}{}

		segments = append(segments, patternSegment{paramName: name, isParam: true})
		templated = true
	}

	return segments, templated, nil
}
