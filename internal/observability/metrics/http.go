package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type HTTPServerMetrics struct {
	registry *prometheus.Registry

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestInFlight prometheus.Gauge

	rendersRequestedTotal *prometheus.CounterVec
	artifactsServedTotal  *prometheus.CounterVec
	settingsUpdatesTotal  *prometheus.CounterVec
}

func NewHTTPServerMetrics(service string) *HTTPServerMetrics {
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "maestro",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed.",
		},
		[]string{"service", "method", "path", "status"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "maestro",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)
	requestInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "maestro",
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Number of in-flight HTTP requests.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	rendersRequestedTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "maestro",
			Subsystem: "docgen",
			Name:      "renders_requested_total",
			Help:      "Total certificate render requests by outcome.",
		},
		[]string{"service", "outcome"},
	)
	artifactsServedTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "maestro",
			Subsystem: "docgen",
			Name:      "artifacts_served_total",
			Help:      "Total artifact bytes deliveries by channel.",
		},
		[]string{"service", "channel"},
	)
	settingsUpdatesTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "maestro",
			Subsystem: "docgen",
			Name:      "settings_updates_total",
			Help:      "Total document settings updates by kind.",
		},
		[]string{"service", "kind"},
	)

	registry.MustRegister(
		requestTotal,
		requestDuration,
		requestInFlight,
		rendersRequestedTotal,
		artifactsServedTotal,
		settingsUpdatesTotal,
	)

	return &HTTPServerMetrics{
		registry:              registry,
		requestTotal:          requestTotal,
		requestDuration:       requestDuration,
		requestInFlight:       requestInFlight,
		rendersRequestedTotal: rendersRequestedTotal,
		artifactsServedTotal:  artifactsServedTotal,
		settingsUpdatesTotal:  settingsUpdatesTotal,
	}
}

func (m *HTTPServerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveRequest records one finished HTTP exchange. The raw URL path is
// collapsed to a route template before it becomes a label value.
func (m *HTTPServerMetrics) ObserveRequest(service, method, rawPath string, status int, duration time.Duration) {
	path := normalizePath(rawPath)
	m.requestTotal.WithLabelValues(service, method, path, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(service, method, path).Observe(duration.Seconds())
}

// RequestStarted and RequestFinished bracket the in-flight gauge around a
// request that is being served.
func (m *HTTPServerMetrics) RequestStarted() { m.requestInFlight.Inc() }

func (m *HTTPServerMetrics) RequestFinished() { m.requestInFlight.Dec() }

// normalizePath collapses resource IDs so metric cardinality stays bounded.
func normalizePath(path string) string {
	switch {
	case strings.HasPrefix(path, "/v1/warranties/"):
		rest := strings.TrimPrefix(path, "/v1/warranties/")
		if i := strings.IndexByte(rest, '/'); i >= 0 {
			return "/v1/warranties/{id}/" + rest[i+1:]
		}
		return "/v1/warranties/{id}"
	case strings.HasPrefix(path, "/v1/artifacts/"):
		rest := strings.TrimPrefix(path, "/v1/artifacts/")
		if i := strings.IndexByte(rest, '/'); i >= 0 {
			return "/v1/artifacts/{id}/" + rest[i+1:]
		}
		return "/v1/artifacts/{id}"
	case strings.HasPrefix(path, "/v1/drafts/"):
		return "/v1/drafts/{id}"
	case strings.HasPrefix(path, "/v1/settings/"):
		return "/v1/settings/{kind}"
	default:
		return path
	}
}

func (m *HTTPServerMetrics) RecordRenderRequested(service, outcome string) {
	if outcome == "" {
		outcome = "unknown"
	}
	m.rendersRequestedTotal.WithLabelValues(service, outcome).Inc()
}

func (m *HTTPServerMetrics) RecordArtifactServed(service, channel string) {
	if channel == "" {
		channel = "unknown"
	}
	m.artifactsServedTotal.WithLabelValues(service, channel).Inc()
}

func (m *HTTPServerMetrics) RecordSettingsUpdate(service, kind string) {
	if kind == "" {
		kind = "all"
	}
	m.settingsUpdatesTotal.WithLabelValues(service, kind).Inc()
}
