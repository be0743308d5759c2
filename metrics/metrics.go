package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "obwob_http_requests_total",
			Help: "Total number of HTTP requests served",
		},
		[]string{"method", "route", "status"},
	)

	APICallCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "obwob_api_calls_total",
			Help: "Backend API calls by operation and outcome",
		},
		[]string{"operation", "outcome"},
	)

	APICallDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "obwob_api_call_duration_seconds",
			Help:    "Duration of backend API calls",
			Buckets: []float64{0.05, 0.1, 0.5, 1, 2, 5},
		},
		[]string{"operation"},
	)

	ScanCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "obwob_scans_total",
			Help: "Registration scan events by outcome",
		},
		[]string{"outcome"},
	)
)

var initOnce sync.Once

// Init registers the collectors with the default registry. Safe to call twice.
func Init() {
	initOnce.Do(func() {
		prometheus.MustRegister(RequestCounter, APICallCounter, APICallDuration, ScanCounter)
	})
}

func Handler() http.Handler {
	return promhttp.Handler()
}
