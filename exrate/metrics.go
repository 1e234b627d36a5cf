package exrate

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Solve phases used as metric labels.
const (
	PhaseBase      = "base"
	PhaseExtension = "extension"
)

// Metrics holds the Prometheus counters, histograms and gauges of the engine.
// A nil *Metrics records nothing.
type Metrics struct {
	Computations       *prometheus.CounterVec   // labels: outcome={success,invalid_block_size,allocation_failure,invalid_input}
	CombinationsSolved *prometheus.CounterVec   // labels: phase={base,extension}
	SolveDuration      *prometheus.HistogramVec // labels: phase={base,extension}
	ExtensionRuns      prometheus.Counter
	Workers            prometheus.Gauge
}

func newMetrics() *Metrics {
	return &Metrics{
		Computations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "randfuel",
			Name:      "computations_total",
			Help:      "Spread-rate computations by outcome.",
		}, []string{"outcome"}),
		CombinationsSolved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "randfuel",
			Name:      "combinations_solved_total",
			Help:      "Fuel combinations whose maximum spread rate was solved, by phase.",
		}, []string{"phase"}),
		SolveDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "randfuel",
			Name:      "solve_duration_seconds",
			Help:      "Wall time of a solve phase.",
			Buckets:   []float64{0.0001, 0.001, 0.01, 0.1, 0.5, 1, 5, 30, 120},
		}, []string{"phase"}),
		ExtensionRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "randfuel",
			Name:      "extension_runs_total",
			Help:      "Extension chain runs, one per base combination.",
		}),
		Workers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "randfuel",
			Name:      "workers",
			Help:      "Worker goroutines used by the last computation.",
		}),
	}
}

// NewMetrics creates the engine metrics and registers them with reg
// (prometheus.DefaultRegisterer when nil). It panics on duplicate registration.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := newMetrics()
	reg.MustRegister(
		m.Computations,
		m.CombinationsSolved,
		m.SolveDuration,
		m.ExtensionRuns,
		m.Workers,
	)

	return m
}

// NewMetricsForTesting creates Metrics on a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return NewMetrics(prometheus.NewRegistry())
}

func (m *Metrics) outcome(k Kind) {
	if m == nil {
		return
	}
	m.Computations.WithLabelValues(k.String()).Inc()
}

func (m *Metrics) solved(phase string, n int, d time.Duration) {
	if m == nil {
		return
	}
	m.CombinationsSolved.WithLabelValues(phase).Add(float64(n))
	m.SolveDuration.WithLabelValues(phase).Observe(d.Seconds())
}

func (m *Metrics) runs(n int) {
	if m == nil {
		return
	}
	m.ExtensionRuns.Add(float64(n))
}

func (m *Metrics) workers(n int) {
	if m == nil {
		return
	}
	m.Workers.Set(float64(n))
}
