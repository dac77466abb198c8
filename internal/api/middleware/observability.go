package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/wardwatch/statuspanel/internal/infrastructure/observability"
)

// ObservabilityMiddleware records request counts and latency. The
// pattern from the mux (method plus registered path) keeps label
// cardinality bounded; unmatched requests fall back to the raw path.
func ObservabilityMiddleware(metrics *observability.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			rw := &statusResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(rw, r)

			path := r.Pattern
			if path == "" {
				path = r.URL.Path
			}
			metrics.ObserveRequest(r.Method, path, strconv.Itoa(rw.statusCode), time.Since(start).Seconds())
		})
	}
}
