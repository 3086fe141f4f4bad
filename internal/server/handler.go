package server

import (
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/vyrodovalexey/avrouter/internal/config"
	"github.com/vyrodovalexey/avrouter/internal/router"
	"github.com/vyrodovalexey/avrouter/internal/util"
)

// statusRecorder captures the response status for request metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

// dispatch resolves each request through the matcher and invokes the
// matched handler. An unhandled path is a 404; invalid input is a 400.
func (s *Server) dispatch() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		if s.metrics != nil {
			s.metrics.RequestStarted(r.Method)
		}

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		route := s.serve(rec, r)

		if s.metrics != nil {
			s.metrics.RequestFinished(r.Method, route, rec.status, time.Since(start))
		}
	})
}

// serve performs the match and dispatch, returning the matched route
// pattern for metrics labeling.
func (s *Server) serve(w http.ResponseWriter, r *http.Request) string {
	result, err := s.router.Match(r.Context(), r.Method, r.URL.Path)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request")
		return ""
	}
	if result == nil {
		writeJSONError(w, http.StatusNotFound, "not found")
		return ""
	}

	ctx := router.ContextWithParams(r.Context(), result.Params)
	ctx = util.ContextWithRoute(ctx, result.Pattern)

	result.Handler.ServeHTTP(w, r.WithContext(ctx))
	return result.Pattern
}

// writeJSONError writes a minimal JSON error body.
func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, `{"error":"`+message+`"}`)
}

// staticHandler serves the configured response for a matched route.
// Occurrences of {name} in the body are replaced with the variable
// bound to name during the match.
type staticHandler struct {
	status      int
	contentType string
	body        string
}

func newStaticHandler(rc config.ResponseConfig) http.Handler {
	h := &staticHandler{
		status:      rc.Status,
		contentType: rc.ContentType,
		body:        rc.Body,
	}
	if h.status == 0 {
		h.status = http.StatusOK
	}
	if h.contentType == "" {
		h.contentType = "text/plain; charset=utf-8"
	}
	return h
}

// ServeHTTP writes the static response.
func (h *staticHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body := h.body
	if params := router.ParamsFromContext(r.Context()); len(params) > 0 {
		pairs := make([]string, 0, len(params)*2)
		for _, p := range params {
			pairs = append(pairs, "{"+p.Name+"}", p.Value)
		}
		body = strings.NewReplacer(pairs...).Replace(body)
	}

	w.Header().Set("Content-Type", h.contentType)
	w.WriteHeader(h.status)
	_, _ = io.WriteString(w, body)
}
