// Package metrics provides an optional, injectable metrics capability for
// the storage engine. The core never reaches into a global registry;
// callers that want metrics pass a Recorder via anor.WithMetrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder records facade call counts and durations. NoopRecorder
// satisfies it with no-ops for callers that don't want metrics.
type Recorder interface {
	ObserveOpen(d time.Duration)
	ObserveClose(d time.Duration)
	ObserveOp(op string)
}

// NoopRecorder is the default Recorder used when no capability is
// injected.
type NoopRecorder struct{}

func (NoopRecorder) ObserveOpen(time.Duration) {}
func (NoopRecorder) ObserveClose(time.Duration) {}
func (NoopRecorder) ObserveOp(string)          {}

// PrometheusRecorder records facade activity as Prometheus collectors,
// registered against the Registerer supplied at construction rather than
// a package-global registry.
type PrometheusRecorder struct {
	openDuration  prometheus.Histogram
	closeDuration prometheus.Histogram
	opCount       *prometheus.CounterVec
}

// NewPrometheusRecorder registers and returns a PrometheusRecorder under
// the given namespace.
func NewPrometheusRecorder(reg prometheus.Registerer, namespace string) (*PrometheusRecorder, error) {
	r := &PrometheusRecorder{
		openDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "storage",
			Name:      "open_duration_seconds",
			Help:      "Duration of Storage.Open calls.",
		}),
		closeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "storage",
			Name:      "close_duration_seconds",
			Help:      "Duration of Storage.Close calls.",
		}),
		opCount: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "storage",
			Name:      "operations_total",
			Help:      "Count of storage facade operations by name.",
		}, []string{"op"}),
	}

	for _, c := range []prometheus.Collector{r.openDuration, r.closeDuration, r.opCount} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *PrometheusRecorder) ObserveOpen(d time.Duration) {
	r.openDuration.Observe(d.Seconds())
}

func (r *PrometheusRecorder) ObserveClose(d time.Duration) {
	r.closeDuration.Observe(d.Seconds())
}

func (r *PrometheusRecorder) ObserveOp(op string) {
	r.opCount.WithLabelValues(op).Inc()
}
