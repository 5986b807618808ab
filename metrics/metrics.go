// SPDX-License-Identifier: MIT

// Package metrics records assignment-run measurements.
//
// The engine reports through the Collector interface; Nop discards
// everything and Manager exports Prometheus series registered through
// promauto on a caller-chosen registry.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector receives one observation per phase outcome.
type Collector interface {
	// PhaseCompleted records a committed phase.
	PhaseCompleted(phase string, d time.Duration, demand, cost int64, assigned int)

	// PhaseFailed records a phase that aborted the run; reason is
	// "infeasible", "configuration" or "canceled".
	PhaseFailed(phase, reason string, shortfall int64)

	// RunCompleted records a run that reached its terminal state.
	RunCompleted(policy string, d time.Duration)
}

// Nop is a Collector that records nothing.
type Nop struct{}

func (Nop) PhaseCompleted(string, time.Duration, int64, int64, int) {}
func (Nop) PhaseFailed(string, string, int64)                      {}
func (Nop) RunCompleted(string, time.Duration)                     {}

// Manager is a Prometheus-backed Collector.
type Manager struct {
	namespace string
	subsystem string
	buckets   []float64
	registry  prometheus.Registerer

	phaseDuration *prometheus.HistogramVec
	phaseDemand   *prometheus.GaugeVec
	phaseCost     *prometheus.GaugeVec
	assignments   *prometheus.CounterVec
	failures      *prometheus.CounterVec
	shortfall     *prometheus.GaugeVec
	runs          *prometheus.CounterVec
	runDuration   prometheus.Histogram
}

var _ Collector = (*Manager)(nil)
var _ Collector = Nop{}

// NewManager creates and registers the series. Registering twice on the
// same registry panics, as promauto does.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace: "rosterflow",
		subsystem: "engine",
		buckets:   prometheus.DefBuckets,
		registry:  prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.init()

	return m
}

func (m *Manager) init() {
	auto := promauto.With(m.registry)

	m.phaseDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "phase_duration_seconds",
		Help:      "Wall time of a committed phase (network build plus solve).",
		Buckets:   m.buckets,
	}, []string{"phase"})

	m.phaseDemand = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "phase_demand_units",
		Help:      "Units of demand routed by the last committed phase.",
	}, []string{"phase"})

	m.phaseCost = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "phase_cost",
		Help:      "Total preference cost of the last committed phase.",
	}, []string{"phase"})

	m.assignments = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "assignments_total",
		Help:      "Participant placements committed, by phase.",
	}, []string{"phase"})

	m.failures = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "phase_failures_total",
		Help:      "Phases that aborted a run, by phase and reason.",
	}, []string{"phase", "reason"})

	m.shortfall = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "phase_shortfall_units",
		Help:      "Demand that could not be routed in the last failed phase.",
	}, []string{"phase"})

	m.runs = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "runs_total",
		Help:      "Runs that reached the terminal state, by policy.",
	}, []string{"policy"})

	m.runDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "run_duration_seconds",
		Help:      "Wall time of a complete run.",
		Buckets:   m.buckets,
	})
}

// PhaseCompleted implements Collector.
func (m *Manager) PhaseCompleted(phase string, d time.Duration, demand, cost int64, assigned int) {
	m.phaseDuration.WithLabelValues(phase).Observe(d.Seconds())
	m.phaseDemand.WithLabelValues(phase).Set(float64(demand))
	m.phaseCost.WithLabelValues(phase).Set(float64(cost))
	m.assignments.WithLabelValues(phase).Add(float64(assigned))
}

// PhaseFailed implements Collector.
func (m *Manager) PhaseFailed(phase, reason string, shortfall int64) {
	m.failures.WithLabelValues(phase, reason).Inc()
	m.shortfall.WithLabelValues(phase).Set(float64(shortfall))
}

// RunCompleted implements Collector.
func (m *Manager) RunCompleted(policy string, d time.Duration) {
	m.runs.WithLabelValues(policy).Inc()
	m.runDuration.Observe(d.Seconds())
}

// AssignmentsCounter exposes the per-phase placements counter, mainly for
// inspection with prometheus/testutil.
func (m *Manager) AssignmentsCounter(phase string) prometheus.Counter {
	return m.assignments.WithLabelValues(phase)
}
