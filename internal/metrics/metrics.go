// Package metrics counts compiles for the textfile collector.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"scenario-planner/internal/plan"
)

const namespace = "scenario_planner"

// Metrics implements plan.Observer.
type Metrics struct {
	registry        *prometheus.Registry
	CompilesTotal   *prometheus.CounterVec
	MappingsTotal   *prometheus.CounterVec
	NodesTotal      *prometheus.CounterVec
	DiagnosticTotal *prometheus.CounterVec
	CompileSeconds  prometheus.Histogram
}

// New registers the collectors on a private registry.
func New() *Metrics {
	r := prometheus.NewRegistry()
	m := &Metrics{
		registry: r,
		CompilesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "compiles_total",
			Help:      "Scenario compiles by outcome",
		}, []string{"outcome"}),
		MappingsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mappings_total",
			Help:      "Resolved captures by match kind",
		}, []string{"kind"}),
		NodesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "nodes_total",
			Help:      "Plan nodes emitted by kind",
		}, []string{"kind"}),
		DiagnosticTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "diagnostics_total",
			Help:      "Diagnostics by severity and code",
		}, []string{"severity", "code"}),
		CompileSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "compile_duration_seconds",
			Help:      "Wall time of a compile",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8),
		}),
	}
	r.MustRegister(m.CompilesTotal, m.MappingsTotal, m.NodesTotal, m.DiagnosticTotal, m.CompileSeconds)

	return m
}

// Registry returns the registry holding the collectors.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// ObserveCompile implements plan.Observer.
func (m *Metrics) ObserveCompile(res *plan.CompileResult, err error, elapsed time.Duration) {
	outcome := "success"
	if err != nil || res == nil || !res.Success {
		outcome = "failure"
	}

	m.CompilesTotal.WithLabelValues(outcome).Inc()
	m.CompileSeconds.Observe(elapsed.Seconds())

	if res == nil {
		return
	}

	for _, mp := range res.Mappings {
		m.MappingsTotal.WithLabelValues(mp.Kind.String()).Inc()
	}

	m.NodesTotal.WithLabelValues("sampler").Add(float64(res.SamplersCreated))
	m.NodesTotal.WithLabelValues("extractor").Add(float64(res.ExtractorsCreated))
	m.NodesTotal.WithLabelValues("assertion").Add(float64(res.AssertionsCreated))
	m.NodesTotal.WithLabelValues("loop").Add(float64(res.LoopsCreated))
	m.NodesTotal.WithLabelValues("delay").Add(float64(res.DelaysCreated))

	for _, d := range res.Diagnostics.Errors {
		m.DiagnosticTotal.WithLabelValues("error", d.Code).Inc()
	}

	for _, d := range res.Diagnostics.Warnings {
		m.DiagnosticTotal.WithLabelValues("warning", d.Code).Inc()
	}
}

// WriteFile writes the current values in text exposition format, for the
// node exporter textfile collector.
func (m *Metrics) WriteFile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
