package automap

// metrics.go is a thin abstraction over Prometheus so automap can be used
// with or without metrics. Passing a *prometheus.Registry to WithMetrics
// swaps in promMetrics; otherwise a no-op sink is used and the hot path
// does not pay for metric updates. Mirrors the teacher's pkg/metrics.go.
//
// ┌──────────────────────────────────┐
// │ Metric                    │ Type │
// ├────────────────────────────┼──────┤
// │ automap_builds_total       │ Ctr  │ (labels: path = "generic"|"typedarray")
// │ automap_build_duplicates_total │ Ctr  │
// │ automap_table_growths_total    │ Ctr  │
// │ automap_lookups_total      │ Ctr  │ (labels: result = "hit"|"miss")
// └──────────────────────────────────┘
//
// © 2025 automap authors. MIT License.

import (
	"github.com/prometheus/client_golang/prometheus"
)

// metricsSink is an internal interface abstracting the concrete backend
// (Prometheus vs. noop). Map/FrozenMap only know these methods.
type metricsSink interface {
	incBuild(path string)
	incBuildDuplicate()
	incTableGrowth()
	incLookup(hit bool)
}

/* ---------------- no-op implementation ---------------- */

type noopMetrics struct{}

func (noopMetrics) incBuild(string)     {}
func (noopMetrics) incBuildDuplicate()  {}
func (noopMetrics) incTableGrowth()     {}
func (noopMetrics) incLookup(bool)      {}

/* ---------------- Prometheus implementation ---------------- */

type promMetrics struct {
	builds           *prometheus.CounterVec
	buildDuplicates  prometheus.Counter
	tableGrowths     prometheus.Counter
	lookups          *prometheus.CounterVec
}

func newPromMetrics(reg *prometheus.Registry) *promMetrics {
	pm := &promMetrics{
		builds: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "automap",
				Name:      "builds_total",
				Help:      "Number of maps constructed, by construction path.",
			}, []string{"path"}),
		buildDuplicates: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "automap",
				Name:      "build_duplicates_total",
				Help:      "Number of duplicate keys rejected during construction.",
			}),
		tableGrowths: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "automap",
				Name:      "table_growths_total",
				Help:      "Number of times any map's table doubled capacity.",
			}),
		lookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "automap",
				Name:      "lookups_total",
				Help:      "Number of Get/Contains calls, by result.",
			}, []string{"result"}),
	}
	reg.MustRegister(pm.builds, pm.buildDuplicates, pm.tableGrowths, pm.lookups)
	return pm
}

func (m *promMetrics) incBuild(path string) {
	m.builds.WithLabelValues(path).Inc()
}
func (m *promMetrics) incBuildDuplicate() {
	m.buildDuplicates.Inc()
}
func (m *promMetrics) incTableGrowth() {
	m.tableGrowths.Inc()
}
func (m *promMetrics) incLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.lookups.WithLabelValues(result).Inc()
}
