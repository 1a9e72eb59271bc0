package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "exportreadme"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	registry       *prom.Registry
	references     *prom.CounterVec
	exportDuration prom.Histogram
	exportOutcome  *prom.CounterVec
}

// NewPrometheusRecorder constructs and registers the exportreadme metrics on reg.
// A nil reg gets a fresh registry.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		registry: reg,
		references: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "references_total",
			Help:      "Matched link and resource references by kind and result",
		}, []string{"kind", "result"}),
		exportDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "export_duration_seconds",
			Help:      "Duration of a single read, rewrite and write cycle",
			Buckets:   prom.ExponentialBuckets(0.0005, 4, 8),
		}),
		exportOutcome: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "exports_total",
			Help:      "Exports by final outcome",
		}, []string{"outcome"}),
	}
	reg.MustRegister(pr.references, pr.exportDuration, pr.exportOutcome)
	return pr
}

// Registry returns the registry the metrics are registered on.
func (p *PrometheusRecorder) Registry() *prom.Registry {
	return p.registry
}

func (p *PrometheusRecorder) AddReferences(kind string, result ReferenceResult, n int) {
	if p == nil || n <= 0 {
		return
	}
	p.references.WithLabelValues(kind, string(result)).Add(float64(n))
}

func (p *PrometheusRecorder) ObserveExportDuration(d time.Duration) {
	if p == nil {
		return
	}
	p.exportDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncExportOutcome(outcome ResultLabel) {
	if p == nil {
		return
	}
	p.exportOutcome.WithLabelValues(string(outcome)).Inc()
}

// WriteTextfile writes every metric gathered from g to path in the Prometheus text
// format. The file is replaced atomically.
func WriteTextfile(g prom.Gatherer, path string) error {
	return prom.WriteToTextfile(path, g)
}
