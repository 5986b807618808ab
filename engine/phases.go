// SPDX-License-Identifier: MIT

package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/katalvlaran/rosterflow/cost"
	"github.com/katalvlaran/rosterflow/flow"
	"github.com/katalvlaran/rosterflow/model"
	"github.com/katalvlaran/rosterflow/network"
	"github.com/katalvlaran/rosterflow/report"
)

// PhaseReport summarizes one committed phase.
type PhaseReport struct {
	Phase         Phase
	Participants  int   // eligible participants with positive demand
	Demand        int64 // units routed
	Cost          int64 // total edge cost of the flow
	Augmentations int
	Assignments   []model.Assignment
	Duration      time.Duration
}

// Phase1 places every participant once among their first TopChoices
// preferences. On success the granted activities leave the participants'
// remaining preferences and the state becomes Phase1Done.
func (e *Engine) Phase1(ctx context.Context) (*PhaseReport, error) {
	if err := e.expect(PhaseOne, TwoPhase, Unstarted); err != nil {
		return nil, err
	}

	demands := make([]network.Demand, 0, len(e.remaining))
	for _, p := range e.remaining {
		demands = append(demands, network.Demand{
			Participant: p.ID,
			Units:       1,
			Preferences: p.Preferences[:e.cfg.topChoices],
		})
	}

	rep, err := e.solve(ctx, PhaseOne, demands, e.cfg.phase1)
	if err != nil {
		return nil, e.fail(PhaseOne, err)
	}

	// Commit: preferences first, then capacities and table.
	granted := make(map[model.ParticipantID][]model.ActivityKey)
	for _, a := range rep.Assignments {
		granted[a.Participant] = append(granted[a.Participant], a.Activity)
	}
	for i, p := range e.remaining {
		if ks := granted[p.ID]; len(ks) > 0 {
			e.remaining[i] = p.Without(ks...)
		}
	}
	e.commit(rep, Phase1Done)

	return rep, nil
}

// Phase2 places the extra slots of participants who asked for more than one,
// over everything left in their preference lists. The state becomes
// Phase2Done.
func (e *Engine) Phase2(ctx context.Context) (*PhaseReport, error) {
	if err := e.expect(PhaseTwo, TwoPhase, Phase1Done); err != nil {
		return nil, err
	}

	var demands []network.Demand
	for _, p := range e.remaining {
		if p.Slots <= 1 {
			continue
		}
		demands = append(demands, network.Demand{
			Participant: p.ID,
			Units:       p.Slots - 1,
			Preferences: p.Preferences,
		})
	}

	rep, err := e.solve(ctx, PhaseTwo, demands, e.cfg.phase2)
	if err != nil {
		return nil, e.fail(PhaseTwo, err)
	}
	e.commit(rep, Phase2Done)

	return rep, nil
}

// SinglePass places every requested slot in one solve over complete
// preference lists and finishes the run.
func (e *Engine) SinglePass(ctx context.Context) (*Result, error) {
	if err := e.expect(PhaseSinglePass, SinglePassPolicy, Unstarted); err != nil {
		return nil, err
	}

	demands := make([]network.Demand, 0, len(e.remaining))
	for _, p := range e.remaining {
		demands = append(demands, network.Demand{
			Participant: p.ID,
			Units:       p.Slots,
			Preferences: p.Preferences,
		})
	}

	rep, err := e.solve(ctx, PhaseSinglePass, demands, e.cfg.singlePass)
	if err != nil {
		return nil, e.fail(PhaseSinglePass, err)
	}
	e.commit(rep, Terminal)

	return e.finish(), nil
}

// Finish ends a two-phase run after Phase1 or Phase2 and returns its Result.
// Stopping after Phase1 leaves the extra slots unassigned.
func (e *Engine) Finish() (*Result, error) {
	switch {
	case e.cfg.policy != TwoPhase:
		return nil, fmt.Errorf("%w: Finish under %s", ErrPolicyConflict, e.cfg.policy)
	case e.state != Phase1Done && e.state != Phase2Done:
		return nil, fmt.Errorf("%w: Finish in state %s", ErrInvalidState, e.state)
	}
	e.state = Terminal

	return e.finish(), nil
}

// Run executes the configured policy from Unstarted to Terminal.
func (e *Engine) Run(ctx context.Context) (*Result, error) {
	if e.cfg.policy == SinglePassPolicy {
		return e.SinglePass(ctx)
	}
	if _, err := e.Phase1(ctx); err != nil {
		return nil, err
	}
	if _, err := e.Phase2(ctx); err != nil {
		return nil, err
	}

	return e.Finish()
}

// expect guards a phase call: Terminal and Failed engines accept nothing,
// the phase must belong to the policy, and the state must match.
func (e *Engine) expect(p Phase, policy Policy, want State) error {
	if e.state == Terminal || e.state == Failed {
		return fmt.Errorf("%w: %s in state %s", ErrInvalidState, p, e.state)
	}
	if e.cfg.policy != policy {
		return fmt.Errorf("%w: %s under %s", ErrPolicyConflict, p, e.cfg.policy)
	}
	if e.state != want {
		return fmt.Errorf("%w: %s requires %s, engine is %s", ErrInvalidState, p, want, e.state)
	}
	if e.started.IsZero() {
		e.started = time.Now()
	}

	return nil
}

// solve builds the phase network over the current capacities and routes the
// full demand at minimum cost. Nothing in e is modified.
func (e *Engine) solve(ctx context.Context, p Phase, demands []network.Demand, s cost.Schedule) (*PhaseReport, error) {
	start := time.Now()
	log := e.logger.With(zap.Stringer("phase", p))

	n, err := network.Build([]network.Option{network.WithSchedule(s)},
		network.Activities(e.activities),
		network.Participants(demands),
	)
	if err != nil {
		return nil, &ConfigurationError{Phase: p, Err: err}
	}

	eligible := 0
	for _, d := range demands {
		if d.Units > 0 {
			eligible++
		}
	}
	stats := n.Graph.Stats()
	log.Info("phase started",
		zap.Int("participants", eligible),
		zap.Int("vertices", stats.VertexCount),
		zap.Int("edges", stats.EdgeCount),
		zap.Int64("demand", n.Demand()),
		zap.Int64("supply", n.Supply()),
		zap.Int("preference_edges", len(n.PreferenceEdges())))

	fo := e.cfg.flowOpts
	fo.Ctx = ctx
	res, err := flow.MinCostFlow(n.Graph, n.Source, n.Sink, n.Demand(), fo)
	if err != nil {
		if errors.Is(err, flow.ErrInfeasible) {
			return nil, e.diagnose(ctx, p, n, err)
		}
		return nil, fmt.Errorf("engine: %s: %w", p, err)
	}

	rep := &PhaseReport{
		Phase:         p,
		Participants:  eligible,
		Demand:        res.Value,
		Cost:          res.Cost,
		Augmentations: res.Augmentations,
		Assignments:   n.Decode(res.Flows),
		Duration:      time.Since(start),
	}
	log.Info("phase finished",
		zap.Int64("demand", rep.Demand),
		zap.Int64("cost", rep.Cost),
		zap.Int("assigned", len(rep.Assignments)),
		zap.Int("augmentations", rep.Augmentations),
		zap.Duration("duration", rep.Duration))

	return rep, nil
}

// commit applies a solved phase: table rows, capacity decrements, report.
func (e *Engine) commit(rep *PhaseReport, next State) {
	used := make(map[model.ActivityKey]int)
	for _, a := range rep.Assignments {
		used[a.Activity]++
	}
	for i := range e.activities {
		e.activities[i].Capacity -= used[e.activities[i].Key]
	}
	e.table.AddAll(rep.Assignments)
	e.reports = append(e.reports, *rep)
	e.state = next
	e.cfg.metrics.PhaseCompleted(rep.Phase.String(), rep.Duration, rep.Demand, rep.Cost, len(rep.Assignments))
}

// fail moves the engine to Failed and records why.
func (e *Engine) fail(p Phase, err error) error {
	e.state = Failed
	e.err = err

	reason := "error"
	var shortfall int64
	var ie *InfeasibleError
	switch {
	case errors.As(err, &ie):
		reason, shortfall = "infeasible", ie.Shortfall
	case errors.Is(err, ErrConfiguration):
		reason = "configuration"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		reason = "canceled"
	}
	e.cfg.metrics.PhaseFailed(p.String(), reason, shortfall)
	e.logger.Error("phase failed", zap.Stringer("phase", p), zap.String("reason", reason), zap.Error(err))

	return err
}

// finish computes the Result once the state is Terminal.
func (e *Engine) finish() *Result {
	var total int64
	for _, r := range e.reports {
		total += r.Cost
	}
	topN := e.cfg.topChoices
	if e.cfg.policy == SinglePassPolicy {
		topN = DefaultTopChoices
	}
	e.result = &Result{
		RunID:        e.runID,
		Policy:       e.cfg.policy,
		Assignments:  e.table.Clone(),
		Phases:       append([]PhaseReport(nil), e.reports...),
		Satisfaction: report.Satisfaction(e.original, e.table, topN),
		TotalCost:    total,
		Duration:     time.Since(e.started),
	}
	e.cfg.metrics.RunCompleted(e.cfg.policy.String(), e.result.Duration)
	for _, line := range e.result.Satisfaction.Lines() {
		e.logger.Info(line)
	}

	return e.result
}
