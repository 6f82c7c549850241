package middleware

import (
	"net/http"
	"time"

	"conferencecentral/internal/domain"
)

// Instrument records request count and latency under route, the registered mux pattern,
// so the label set stays bounded.
func Instrument(m domain.Metrics, route string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := wrapResponseWriter(w)
		next.ServeHTTP(wrapped, r)
		m.ObserveRequest(r.Method, route, wrapped.status, time.Since(start))
	})
}
