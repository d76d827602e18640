package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "court_review"

// Result labels.
const (
	ResultOK      = "ok"
	ResultError   = "error"
	ResultSkipped = "skipped"
)

// Metrics exposes queue and approval metrics. A nil *Metrics is a no-op.
type Metrics struct {
	registry         *prometheus.Registry
	loads            *prometheus.CounterVec
	approvals        *prometheus.CounterVec
	approvalDuration prometheus.Histogram
	pending          prometheus.Gauge
	inFlight         prometheus.Gauge
}

// New registers all metrics on a dedicated registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		loads: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "loads_total",
			Help:      "Pending request queue loads by result",
		}, []string{"result"}),
		approvals: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "approvals_total",
			Help:      "Approval attempts by result",
		}, []string{"result"}),
		approvalDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "approval_duration_seconds",
			Help:      "Duration of assign-reviewer calls",
			Buckets:   prometheus.DefBuckets,
		}),
		pending: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pending_requests",
			Help:      "Requests currently held in the queue",
		}),
		inFlight: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "approvals_in_flight",
			Help:      "Approvals currently awaiting the backend",
		}),
	}
}

// LoadFinished records a queue load.
func (m *Metrics) LoadFinished(result string) {
	if m == nil {
		return
	}
	m.loads.WithLabelValues(result).Inc()
}

// ApprovalFinished records an approval attempt.
func (m *Metrics) ApprovalFinished(result string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.approvals.WithLabelValues(result).Inc()
	if result != ResultSkipped {
		m.approvalDuration.Observe(elapsed.Seconds())
	}
}

// SetPending sets the queue size.
func (m *Metrics) SetPending(n int) {
	if m == nil {
		return
	}
	m.pending.Set(float64(n))
}

// SetInFlight sets the number of approvals in flight.
func (m *Metrics) SetInFlight(n int) {
	if m == nil {
		return
	}
	m.inFlight.Set(float64(n))
}

// Handler serves the registry in Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
