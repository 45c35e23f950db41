package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// SideWriteMetrics records outcomes of best-effort writes that run after a
// primary operation commits (merchant product counters, cache refreshes).
// These writes are allowed to fail; the counters make the drift observable.
type SideWriteMetrics struct {
	duration *prometheus.HistogramVec
	success  *prometheus.CounterVec
	failure  *prometheus.CounterVec
}

// NewSideWriteMetrics registers the side-write metrics on the provided registerer.
func NewSideWriteMetrics(reg prometheus.Registerer) *SideWriteMetrics {
	if reg == nil {
		return &SideWriteMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "side_write_duration_seconds",
		Help:    "Duration of best-effort side writes in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"op"})
	success := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "side_write_success",
		Help: "Successful best-effort side writes.",
	}, []string{"op"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "side_write_failure",
		Help: "Failed best-effort side writes (logged and swallowed).",
	}, []string{"op"})
	reg.MustRegister(duration, success, failure)
	return &SideWriteMetrics{
		duration: duration,
		success:  success,
		failure:  failure,
	}
}

// ObserveDuration records the duration for the named operation.
func (m *SideWriteMetrics) ObserveDuration(op string, duration time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	m.duration.WithLabelValues(normalizeLabel(op)).Observe(duration.Seconds())
}

// IncSuccess increments the success counter for the named operation.
func (m *SideWriteMetrics) IncSuccess(op string) {
	if m == nil || m.success == nil {
		return
	}
	m.success.WithLabelValues(normalizeLabel(op)).Inc()
}

// IncFailure increments the failure counter for the named operation.
func (m *SideWriteMetrics) IncFailure(op string) {
	if m == nil || m.failure == nil {
		return
	}
	m.failure.WithLabelValues(normalizeLabel(op)).Inc()
}

func normalizeLabel(op string) string {
	if op == "" {
		return "unknown"
	}
	return op
}
