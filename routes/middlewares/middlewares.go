package middlewares

import (
	"net/http"
	"strconv"

	"github.com/felixge/httpsnoop"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mbolis/obwob/log"
	"github.com/mbolis/obwob/metrics"
)

// RequestLogger logs one line per request through the log package.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m := httpsnoop.CaptureMetrics(next, w, r)

		entry := log.WithFields(log.Fields{
			"request_id": middleware.GetReqID(r.Context()),
			"remote":     r.RemoteAddr,
			"status":     m.Code,
			"bytes":      m.Written,
			"duration":   m.Duration,
		})
		msg := r.Method + " " + r.URL.RequestURI()
		if m.Code >= http.StatusInternalServerError {
			entry.Warn(msg)
		} else {
			entry.Info(msg)
		}
	})
}

// Metrics counts requests by route pattern, so identifiers don't blow up
// the label space.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m := httpsnoop.CaptureMetrics(next, w, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		metrics.RequestCounter.WithLabelValues(r.Method, route, strconv.Itoa(m.Code)).Inc()
	})
}

// LimitBody caps request bodies at n bytes.
func LimitBody(n int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, n)
			next.ServeHTTP(w, r)
		})
	}
}
