// Package metrics exposes Prometheus instrumentation shared by the gateway
// and the server.
package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rentshare",
			Name:      "http_requests_total",
			Help:      "HTTP requests by service, method and status.",
		},
		[]string{"service", "method", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "rentshare",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by service and method.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "method"},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(httpRequests, httpDuration)
	})
}

// Handler serves the Prometheus scrape endpoint.
func Handler() http.Handler {
	Register()
	return promhttp.Handler()
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(statusCode int) {
	r.status = statusCode
	r.ResponseWriter.WriteHeader(statusCode)
}

// WithHTTP records a counter and latency observation for every request.
func WithHTTP(service string, next http.Handler) http.Handler {
	Register()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)
		status := rec.status
		if status == 0 {
			status = http.StatusOK
		}
		httpRequests.WithLabelValues(service, r.Method, strconv.Itoa(status)).Inc()
		httpDuration.WithLabelValues(service, r.Method).Observe(time.Since(start).Seconds())
	})
}
