package server

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/matzehuels/barsvg/pkg/observability"
)

var (
	// HTTP request metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "barsvg_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "barsvg_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// Render metrics
	encodeTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "barsvg_encode_total",
			Help: "Total number of encoder invocations",
		},
		[]string{"format", "status"},
	)

	encodeDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "barsvg_encode_duration_seconds",
			Help:    "Encoder duration in seconds",
			Buckets: []float64{.00001, .00005, .0001, .0005, .001, .005, .01},
		},
		[]string{"format"},
	)

	compileRects = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "barsvg_compile_rects",
			Help:    "Number of merged bar rectangles per compiled barcode",
			Buckets: []float64{1, 10, 25, 50, 100, 250},
		},
	)

	renderErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "barsvg_render_errors_total",
			Help: "Total number of render failures caught at the render boundary",
		},
		[]string{"format", "code"},
	)

	memoTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "barsvg_memo_total",
			Help: "Render boundary memo lookups",
		},
		[]string{"result"}, // result: hit, miss
	)

	// WebSocket metrics
	websocketConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "barsvg_websocket_active_connections",
			Help: "Number of active WebSocket connections",
		},
	)

	websocketMessagesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "barsvg_websocket_messages_total",
			Help: "Total number of WebSocket messages",
		},
		[]string{"direction"}, // direction: sent, received
	)
)

// metricsHooks forwards render and memo events to Prometheus.
type metricsHooks struct{}

// RegisterHooks installs the Prometheus hooks in the observability registry.
func RegisterHooks() {
	observability.SetRenderHooks(metricsHooks{})
	observability.SetMemoHooks(metricsHooks{})
}

func (metricsHooks) OnEncode(_ context.Context, format string, _ int, d time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	encodeTotal.WithLabelValues(format, status).Inc()
	encodeDuration.WithLabelValues(format).Observe(d.Seconds())
}

func (metricsHooks) OnCompile(_ context.Context, rects int, _ float64, _ time.Duration) {
	compileRects.Observe(float64(rects))
}

func (metricsHooks) OnRenderError(_ context.Context, format, code string) {
	renderErrorsTotal.WithLabelValues(format, code).Inc()
}

func (metricsHooks) OnMemoHit(context.Context)  { memoTotal.WithLabelValues("hit").Inc() }
func (metricsHooks) OnMemoMiss(context.Context) { memoTotal.WithLabelValues("miss").Inc() }
