package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "confguard",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "confguard",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "confguard",
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "Number of HTTP requests currently being served",
		},
	)

	// Deviation detection metrics
	deviationDetectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "confguard",
			Subsystem: "deviation",
			Name:      "detections_total",
			Help:      "Total number of snapshot ingestions by resulting severity",
		},
		[]string{"severity"},
	)

	deviationEvents = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "confguard",
			Subsystem: "deviation",
			Name:      "events_count",
			Help:      "Number of recorded deviation events by severity",
		},
		[]string{"severity"},
	)

	// Proposal workflow metrics
	proposalDecisionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "confguard",
			Subsystem: "proposal",
			Name:      "decisions_total",
			Help:      "Total number of proposal decisions by outcome",
		},
		[]string{"status"},
	)

	activeBaselines = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "confguard",
			Subsystem: "baseline",
			Name:      "active_count",
			Help:      "Number of devices with an active baseline",
		},
	)

	promoteContention = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "confguard",
			Subsystem: "baseline",
			Name:      "promote_contention_total",
			Help:      "Number of baseline promotions that hit per-device lock contention",
		},
	)
)

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Middleware returns a middleware that records Prometheus metrics
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		httpRequestsInFlight.Inc()
		defer httpRequestsInFlight.Dec()

		wrapped := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(wrapped, r)

		duration := time.Since(start).Seconds()

		// Use the chi route pattern so cardinality stays bounded
		routePattern := chi.RouteContext(r.Context()).RoutePattern()
		if routePattern == "" {
			routePattern = "unknown"
		}

		status := strconv.Itoa(wrapped.statusCode)

		httpRequestsTotal.WithLabelValues(r.Method, routePattern, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, routePattern, status).Observe(duration)
	})
}

// Handler returns the Prometheus metrics HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordDetection records a snapshot ingestion and its classified severity
func RecordDetection(severity string) {
	deviationDetectionsTotal.WithLabelValues(severity).Inc()
}

// SetDeviationEvents sets the gauge of stored deviation events for a severity
func SetDeviationEvents(severity string, count float64) {
	deviationEvents.WithLabelValues(severity).Set(count)
}

// RecordDecision records a proposal decision outcome
func RecordDecision(status string) {
	proposalDecisionsTotal.WithLabelValues(status).Inc()
}

// SetActiveBaselines sets the gauge of devices with an active baseline
func SetActiveBaselines(count float64) {
	activeBaselines.Set(count)
}

// RecordPromoteContention records a promotion that had to wait or failed
// on the per-device lock
func RecordPromoteContention() {
	promoteContention.Inc()
}
