package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Backend call outcomes.
const (
	OutcomeSuccess     = "success"
	OutcomeHTTPError   = "http_error"
	OutcomeUnreachable = "unreachable"
	OutcomeInvalid     = "invalid_response"
)

// Backend operations.
const (
	OpHealth    = "health"
	OpTranslate = "translate"
)

var (
	backendRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "translit_backend_requests_total",
			Help: "Total number of calls made to the translation backend",
		},
		[]string{"operation", "outcome"},
	)

	backendRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "translit_backend_request_duration_seconds",
			Help:    "Duration of calls to the translation backend in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1.0, 2.0, 5.0, 10.0, 30.0},
		},
		[]string{"operation"},
	)

	translationTextSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "translit_translation_text_size_bytes",
			Help:    "Size of text forwarded for translation in bytes",
			Buckets: []float64{8, 16, 32, 64, 100, 256, 1024, 4096},
		},
	)

	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "translit_http_requests_total",
			Help: "Total number of HTTP requests served",
		},
		[]string{"method", "route", "status"},
	)

	backendStatusChecks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "translit_ui_status_checks_total",
			Help: "Health refreshes triggered by UI sessions, by resulting status",
		},
		[]string{"status"},
	)
)

// ObserveBackendCall records one outbound call.
func ObserveBackendCall(operation, outcome string, duration time.Duration) {
	backendRequestsTotal.WithLabelValues(operation, outcome).Inc()
	backendRequestDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

func ObserveTextSize(n int) {
	translationTextSize.Observe(float64(n))
}

// ObserveHTTPRequest records a served request. route is the matched pattern,
// not the raw path.
func ObserveHTTPRequest(method, route string, status int) {
	if route == "" {
		route = "unmatched"
	}
	httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}

func ObserveStatusCheck(status string) {
	backendStatusChecks.WithLabelValues(status).Inc()
}
