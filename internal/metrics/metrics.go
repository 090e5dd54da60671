// Package metrics provides Prometheus metrics for observability.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "meet_transcript"

// Metrics holds all Prometheus metrics for the service.
type Metrics struct {
	SessionsTotal  prometheus.Counter
	SessionsActive prometheus.Gauge

	FlushesTotal        prometheus.Counter
	AudioFramesReceived prometheus.Counter
	AudioBytesReceived  prometheus.Counter

	AdapterCalls   *prometheus.CounterVec // labels: adapter
	AdapterErrors  *prometheus.CounterVec // labels: adapter
	AdapterLatency *prometheus.HistogramVec

	SummariesGenerated prometheus.Counter
}

// Default is the global metrics instance.
var Default = New()

// NewAdapterTimer returns a timer observing latency for one adapter call.
func NewAdapterTimer(adapter string) *prometheus.Timer {
	return prometheus.NewTimer(Default.AdapterLatency.WithLabelValues(adapter))
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		SessionsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_total",
			Help:      "Total number of recording sessions started",
		}),
		SessionsActive: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sessions_active",
			Help:      "Number of currently active recording sessions",
		}),
		FlushesTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "flushes_total",
			Help:      "Total number of audio chunk flushes",
		}),
		AudioFramesReceived: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "audio_frames_received_total",
			Help:      "Total number of audio frame batches received",
		}),
		AudioBytesReceived: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "audio_bytes_received_total",
			Help:      "Total bytes of audio received",
		}),
		AdapterCalls: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "adapter_calls_total",
			Help:      "Total calls made to AI adapters",
		}, []string{"adapter"}),
		AdapterErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "adapter_errors_total",
			Help:      "Total failed calls to AI adapters",
		}, []string{"adapter"}),
		AdapterLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "adapter_latency_seconds",
			Help:      "Latency of AI adapter calls in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
		}, []string{"adapter"}),
		SummariesGenerated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "summaries_generated_total",
			Help:      "Total number of meeting summaries generated",
		}),
	}
}
