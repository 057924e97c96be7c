package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type WorkerMetrics struct {
	registry *prometheus.Registry

	renderTotal    *prometheus.CounterVec
	renderDuration *prometheus.HistogramVec
	renderInFlight prometheus.Gauge
	queueLag       *prometheus.HistogramVec
	artifactBytes  *prometheus.HistogramVec
}

func NewWorkerMetrics(service string) *WorkerMetrics {
	registry := prometheus.NewRegistry()

	renderTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "maestro",
			Subsystem: "worker",
			Name:      "render_total",
			Help:      "Total rendered certificates by status.",
		},
		[]string{"service", "status"},
	)
	renderDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "maestro",
			Subsystem: "worker",
			Name:      "render_duration_seconds",
			Help:      "Certificate render duration in seconds by status.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "status"},
	)
	renderInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "maestro",
			Subsystem: "worker",
			Name:      "render_in_flight",
			Help:      "Number of in-flight certificate renders.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	queueLag := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "maestro",
			Subsystem: "worker",
			Name:      "queue_lag_seconds",
			Help:      "Delay between artifact creation and render start.",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120, 300, 600},
		},
		[]string{"service"},
	)
	artifactBytes := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "maestro",
			Subsystem: "worker",
			Name:      "artifact_bytes",
			Help:      "Size distribution of rendered artifacts.",
			Buckets:   prometheus.ExponentialBuckets(1024, 4, 8),
		},
		[]string{"service"},
	)

	registry.MustRegister(renderTotal, renderDuration, renderInFlight, queueLag, artifactBytes)

	return &WorkerMetrics{
		registry:       registry,
		renderTotal:    renderTotal,
		renderDuration: renderDuration,
		renderInFlight: renderInFlight,
		queueLag:       queueLag,
		artifactBytes:  artifactBytes,
	}
}

func (m *WorkerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *WorkerMetrics) StartRender() {
	m.renderInFlight.Inc()
}

func (m *WorkerMetrics) FinishRender(service string, duration time.Duration, err error) {
	m.renderInFlight.Dec()

	status := "success"
	if err != nil {
		status = "error"
	}

	m.renderTotal.WithLabelValues(service, status).Inc()
	m.renderDuration.WithLabelValues(service, status).Observe(duration.Seconds())
}

func (m *WorkerMetrics) ObserveQueueLag(service string, lag time.Duration) {
	if lag < 0 {
		return
	}
	m.queueLag.WithLabelValues(service).Observe(lag.Seconds())
}

func (m *WorkerMetrics) ObserveArtifactSize(service string, byteSize int64) {
	if byteSize <= 0 {
		return
	}
	m.artifactBytes.WithLabelValues(service).Observe(float64(byteSize))
}
