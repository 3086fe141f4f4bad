package middleware

import (
	"io"
	"net/http"
	"runtime/debug"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vyrodovalexey/avrouter/internal/observability"
)

var (
	panicsRecovered     prometheus.Counter
	panicsRecoveredOnce sync.Once
)

// getPanicsRecovered returns the singleton panic counter.
func getPanicsRecovered() prometheus.Counter {
	panicsRecoveredOnce.Do(func() {
		panicsRecovered = promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: "router",
				Subsystem: "middleware",
				Name:      "panics_recovered_total",
				Help:      "Total number of panics recovered in handlers",
			},
		)
	})
	return panicsRecovered
}

// Recovery returns a middleware that recovers from handler panics and
// responds with a 500.
func Recovery(logger observability.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic recovered",
						observability.String("path", r.URL.Path),
						observability.String("method", r.Method),
						observability.Any("error", err),
						observability.String("stack", string(debug.Stack())),
					)

					getPanicsRecovered().Inc()

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_, _ = io.WriteString(w, `{"error":"internal server error"}`)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
