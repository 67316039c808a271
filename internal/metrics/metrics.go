package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"app", "method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"app", "method", "route"},
	)

	EventsPrunedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "events_pruned_total",
			Help: "Total number of activity events removed by retention",
		},
		[]string{"app"},
	)
)

// RecordHTTPRequest records one completed request.
func RecordHTTPRequest(app, method, route string, status int, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(app, method, route, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(app, method, route).Observe(duration.Seconds())
}

// Middleware instruments every request, labelled by the matched chi route
// pattern so path ids do not explode label cardinality.
func Middleware(app string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			route := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if pattern := rctx.RoutePattern(); pattern != "" {
					route = pattern
				}
			}
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			RecordHTTPRequest(app, r.Method, route, status, time.Since(start))
		})
	}
}
