// SPDX-License-Identifier: MIT

package engine

import (
	"go.uber.org/zap"

	"github.com/katalvlaran/rosterflow/cost"
	"github.com/katalvlaran/rosterflow/flow"
	"github.com/katalvlaran/rosterflow/metrics"
)

// DefaultTopChoices is how many leading preferences phase 1 considers.
const DefaultTopChoices = 3

// Option configures an Engine. Option constructors panic on meaningless
// values; the engine itself never panics.
type Option func(*settings)

type settings struct {
	policy     Policy
	topChoices int
	phase1     cost.Schedule
	phase2     cost.Schedule
	singlePass cost.Schedule
	logger     *zap.Logger
	metrics    metrics.Collector
	flowOpts   flow.FlowOptions
	runID      string
}

func newSettings(opts ...Option) settings {
	s := settings{
		policy:     TwoPhase,
		topChoices: DefaultTopChoices,
		phase1:     cost.Linear(),
		phase2:     cost.Linear(),
		singlePass: cost.Graduated(),
		logger:     zap.NewNop(),
		metrics:    metrics.Nop{},
		flowOpts:   flow.FlowOptions{},
	}
	for _, o := range opts {
		o(&s)
	}

	return s
}

// WithPolicy selects TwoPhase (default) or SinglePassPolicy.
func WithPolicy(p Policy) Option {
	if p != TwoPhase && p != SinglePassPolicy {
		panic("engine: WithPolicy(unknown)")
	}
	return func(s *settings) { s.policy = p }
}

// WithTopChoices sets how many leading preferences phase 1 offers (n ≥ 1).
// Every participant must rank at least n activities under TwoPhase.
func WithTopChoices(n int) Option {
	if n < 1 {
		panic("engine: WithTopChoices(n<1)")
	}
	return func(s *settings) { s.topChoices = n }
}

// WithPhase1Schedule sets the rank-to-cost schedule of phase 1.
func WithPhase1Schedule(c cost.Schedule) Option {
	if c == nil {
		panic("engine: WithPhase1Schedule(nil)")
	}
	return func(s *settings) { s.phase1 = c }
}

// WithPhase2Schedule sets the rank-to-cost schedule of phase 2.
func WithPhase2Schedule(c cost.Schedule) Option {
	if c == nil {
		panic("engine: WithPhase2Schedule(nil)")
	}
	return func(s *settings) { s.phase2 = c }
}

// WithSinglePassSchedule sets the rank-to-cost schedule of the single pass.
func WithSinglePassSchedule(c cost.Schedule) Option {
	if c == nil {
		panic("engine: WithSinglePassSchedule(nil)")
	}
	return func(s *settings) { s.singlePass = c }
}

// WithLogger sets the structured logger; nil keeps the no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetrics sets the metrics collector; nil keeps metrics.Nop.
func WithMetrics(c metrics.Collector) Option {
	return func(s *settings) {
		if c != nil {
			s.metrics = c
		}
	}
}

// WithFlowOptions passes solver options through. Ctx is replaced by the
// context of each phase call, and a nil Logger inherits the engine logger.
func WithFlowOptions(o flow.FlowOptions) Option {
	return func(s *settings) { s.flowOpts = o }
}

// WithRunID fixes the run identifier instead of generating a UUID.
func WithRunID(id string) Option {
	return func(s *settings) { s.runID = id }
}
