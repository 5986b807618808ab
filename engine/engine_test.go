// SPDX-License-Identifier: MIT

package engine_test

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/katalvlaran/rosterflow/cost"
	"github.com/katalvlaran/rosterflow/engine"
	"github.com/katalvlaran/rosterflow/metrics"
	"github.com/katalvlaran/rosterflow/model"
	"github.com/katalvlaran/rosterflow/network"
)

func keys(ks ...string) []model.ActivityKey {
	out := make([]model.ActivityKey, len(ks))
	for i, k := range ks {
		out[i] = model.ActivityKey(k)
	}
	return out
}

func ids(xs ...string) []model.ParticipantID {
	out := make([]model.ParticipantID, len(xs))
	for i, x := range xs {
		out[i] = model.ParticipantID(x)
	}
	return out
}

// scenario: X has three first-choice requests for two seats, Y one seat.
// The unique phase-1 optimum sends D to its second choice Z (cost 5); phase 2
// gives A and B their extra slot in Z (cost 2 each).
func scenario() ([]model.Participant, []model.Activity) {
	ps := []model.Participant{
		{ID: "A", Name: "Ann", Slots: 2, Preferences: keys("X", "Y", "Z")},
		{ID: "B", Name: "Bob", Slots: 2, Preferences: keys("X", "Y", "Z")},
		{ID: "C", Name: "Cat", Slots: 1, Preferences: keys("Y", "X", "Z")},
		{ID: "D", Name: "Dan", Slots: 1, Preferences: keys("X", "Z", "Y")},
	}
	acts := []model.Activity{{Key: "X", Capacity: 2}, {Key: "Y", Capacity: 1}, {Key: "Z", Capacity: 3}}

	return ps, acts
}

type EngineSuite struct {
	suite.Suite
	ctx context.Context
}

func (s *EngineSuite) SetupTest() { s.ctx = context.Background() }

// TestScenario walks the two-phase state machine by hand.
func (s *EngineSuite) TestScenario() {
	ps, acts := scenario()
	e, err := engine.New(ps, acts, engine.WithRunID("run-1"))
	require.NoError(s.T(), err)
	require.Equal(s.T(), engine.Unstarted, e.State())
	require.Equal(s.T(), "run-1", e.RunID())

	r1, err := e.Phase1(s.ctx)
	require.NoError(s.T(), err)
	require.Equal(s.T(), engine.Phase1Done, e.State())
	require.Equal(s.T(), int64(4), r1.Demand)
	require.Equal(s.T(), int64(5), r1.Cost)
	require.Equal(s.T(), []model.Assignment{
		{Participant: "A", Activity: "X", Rank: 1, Cost: 1},
		{Participant: "B", Activity: "X", Rank: 1, Cost: 1},
		{Participant: "C", Activity: "Y", Rank: 1, Cost: 1},
		{Participant: "D", Activity: "Z", Rank: 2, Cost: 2},
	}, r1.Assignments)

	// Granted keys leave the remaining preferences; capacities drop.
	rem, ok := e.Remaining("A")
	require.True(s.T(), ok)
	require.Equal(s.T(), keys("Y", "Z"), rem)
	rem, _ = e.Remaining("D")
	require.Equal(s.T(), keys("X", "Y"), rem)
	c, _ := e.Capacity("X")
	require.Zero(s.T(), c)
	c, _ = e.Capacity("Z")
	require.Equal(s.T(), 2, c)

	r2, err := e.Phase2(s.ctx)
	require.NoError(s.T(), err)
	require.Equal(s.T(), engine.Phase2Done, e.State())
	require.Equal(s.T(), 2, r2.Participants)
	require.Equal(s.T(), int64(4), r2.Cost)
	require.Equal(s.T(), []model.Assignment{
		{Participant: "A", Activity: "Z", Rank: 2, Cost: 2},
		{Participant: "B", Activity: "Z", Rank: 2, Cost: 2},
	}, r2.Assignments)

	_, err = e.Result()
	require.ErrorIs(s.T(), err, engine.ErrNotFinished)

	res, err := e.Finish()
	require.NoError(s.T(), err)
	require.Equal(s.T(), engine.Terminal, e.State())
	require.Equal(s.T(), int64(9), res.TotalCost)
	require.Equal(s.T(), ids("A", "B"), res.Assignments.Participants("X"))
	require.Equal(s.T(), ids("C"), res.Assignments.Participants("Y"))
	require.Equal(s.T(), ids("D", "A", "B"), res.Assignments.Participants("Z"))
	require.Equal(s.T(), []string{
		"Participants who got their 1st choice: 3/4 (75.00%)",
		"Participants who got their 2nd choice: 1/4 (25.00%)",
		"Participants who got their 3rd choice: 2/4 (50.00%)",
	}, res.Satisfaction.Lines())

	again, err := e.Result()
	require.NoError(s.T(), err)
	require.Same(s.T(), res, again)
}

// TestTwoActivities uses four single-slot participants and two activities of
// two seats each. With two preferences per participant phase 1 looks at both.
func (s *EngineSuite) TestTwoActivities() {
	acts := []model.Activity{{Key: "X", Capacity: 2}, {Key: "Y", Capacity: 2}}

	s.Run("first choices fit", func() {
		ps := []model.Participant{
			{ID: "A", Slots: 1, Preferences: keys("X", "Y")},
			{ID: "B", Slots: 1, Preferences: keys("Y", "X")},
			{ID: "C", Slots: 1, Preferences: keys("Y", "X")},
			{ID: "D", Slots: 1, Preferences: keys("X", "Y")},
		}
		e, err := engine.New(ps, acts, engine.WithTopChoices(2))
		require.NoError(s.T(), err)
		res, err := e.Run(s.ctx)
		require.NoError(s.T(), err)

		// Everyone ranks 1: 4 × 1.
		require.Equal(s.T(), int64(4), res.TotalCost)
		require.Equal(s.T(), ids("A", "D"), res.Assignments.Participants("X"))
		require.Equal(s.T(), ids("B", "C"), res.Assignments.Participants("Y"))
	})

	s.Run("one loser moves to its second choice", func() {
		ps := []model.Participant{
			{ID: "A", Slots: 1, Preferences: keys("X", "Y")},
			{ID: "B", Slots: 1, Preferences: keys("X", "Y")},
			{ID: "C", Slots: 1, Preferences: keys("X", "Y")},
			{ID: "D", Slots: 1, Preferences: keys("Y", "X")},
		}
		e, err := engine.New(ps, acts, engine.WithTopChoices(2))
		require.NoError(s.T(), err)
		res, err := e.Run(s.ctx)
		require.NoError(s.T(), err)

		// Three ask for two X seats: two pay 1, the third pays 2 in Y, D pays 1.
		require.Equal(s.T(), int64(5), res.TotalCost)
		require.Len(s.T(), res.Phases, 2)
		require.Zero(s.T(), res.Phases[1].Demand)

		inX := res.Assignments.Participants("X")
		inY := res.Assignments.Participants("Y")
		require.Len(s.T(), inX, 2)
		require.Len(s.T(), inY, 2)
		require.Contains(s.T(), inY, model.ParticipantID("D"))
		require.NotContains(s.T(), inX, model.ParticipantID("D"))
		require.ElementsMatch(s.T(), ids("A", "B", "C"), append(append([]model.ParticipantID{}, inX...), inY[0]))

		require.Equal(s.T(), []string{
			"Participants who got their 1st choice: 3/4 (75.00%)",
			"Participants who got their 2nd choice: 1/4 (25.00%)",
		}, res.Satisfaction.Lines())
	})
}

// TestInfeasiblePhase1: five participants, one activity with three seats.
func (s *EngineSuite) TestInfeasiblePhase1() {
	var ps []model.Participant
	for _, id := range []string{"p1", "p2", "p3", "p4", "p5"} {
		ps = append(ps, model.Participant{ID: model.ParticipantID(id), Slots: 1, Preferences: keys("solo", "shutA", "shutB")})
	}
	acts := []model.Activity{{Key: "solo", Capacity: 3}, {Key: "shutA"}, {Key: "shutB"}}

	e, err := engine.New(ps, acts)
	require.NoError(s.T(), err)

	_, err = e.Run(s.ctx)
	require.ErrorIs(s.T(), err, engine.ErrInfeasibleAssignment)
	var ie *engine.InfeasibleError
	require.True(s.T(), errors.As(err, &ie))
	require.Equal(s.T(), engine.PhaseOne, ie.Phase)
	require.Equal(s.T(), int64(5), ie.Demand)
	require.Equal(s.T(), int64(3), ie.MaxFlow)
	require.Equal(s.T(), int64(2), ie.Shortfall)
	require.Equal(s.T(), keys("solo"), ie.Saturated)
	require.Equal(s.T(), ids("p1", "p2", "p3", "p4", "p5"), ie.Constrained)

	// Nothing was committed.
	require.Equal(s.T(), engine.Failed, e.State())
	require.Same(s.T(), err, e.Err())
	require.Zero(s.T(), e.Assignments().Len())
	c, _ := e.Capacity("solo")
	require.Equal(s.T(), 3, c)

	_, err = e.Phase2(s.ctx)
	require.ErrorIs(s.T(), err, engine.ErrInvalidState)
}

// TestInfeasiblePhase2KeepsPhase1: phase 2 fails for lack of distinct
// activities; the phase-1 commit stays, phase 2 leaves no trace.
func (s *EngineSuite) TestInfeasiblePhase2KeepsPhase1() {
	ps := []model.Participant{{ID: "A", Slots: 3, Preferences: keys("X", "Y", "Z")}}
	acts := []model.Activity{{Key: "X", Capacity: 1}, {Key: "Y", Capacity: 1}, {Key: "Z"}}

	e, err := engine.New(ps, acts)
	require.NoError(s.T(), err)
	_, err = e.Phase1(s.ctx)
	require.NoError(s.T(), err)

	_, err = e.Phase2(s.ctx)
	var ie *engine.InfeasibleError
	require.True(s.T(), errors.As(err, &ie))
	require.Equal(s.T(), engine.PhaseTwo, ie.Phase)
	require.Equal(s.T(), int64(1), ie.Shortfall)
	require.Empty(s.T(), ie.Saturated)
	require.Equal(s.T(), ids("A"), ie.Constrained)

	tbl := e.Assignments()
	require.Equal(s.T(), 1, tbl.Len())
	require.True(s.T(), tbl.Contains("X", "A"))
	c, _ := e.Capacity("Y")
	require.Equal(s.T(), 1, c)
	require.Len(s.T(), e.Reports(), 1)
}

// TestSinglePass uses the graduated schedule over full lists.
func (s *EngineSuite) TestSinglePass() {
	ps := []model.Participant{
		{ID: "P1", Slots: 1, Preferences: keys("X", "Y")},
		{ID: "P2", Slots: 2, Preferences: keys("X", "Y")},
	}
	acts := []model.Activity{{Key: "X", Capacity: 1}, {Key: "Y", Capacity: 2}}

	e, err := engine.New(ps, acts, engine.WithPolicy(engine.SinglePassPolicy))
	require.NoError(s.T(), err)

	_, err = e.Phase1(s.ctx)
	require.ErrorIs(s.T(), err, engine.ErrPolicyConflict)

	res, err := e.Run(s.ctx)
	require.NoError(s.T(), err)
	require.Equal(s.T(), engine.Terminal, e.State())
	require.Equal(s.T(), int64(4), res.TotalCost)
	require.Equal(s.T(), ids("P2"), res.Assignments.Participants("X"))
	require.Equal(s.T(), ids("P1", "P2"), res.Assignments.Participants("Y"))
	require.Len(s.T(), res.Phases, 1)
	require.Equal(s.T(), engine.PhaseSinglePass, res.Phases[0].Phase)

	_, err = e.SinglePass(s.ctx)
	require.ErrorIs(s.T(), err, engine.ErrInvalidState)
}

// TestStateGuards covers out-of-order and cross-policy calls.
func (s *EngineSuite) TestStateGuards() {
	ps, acts := scenario()
	e, err := engine.New(ps, acts)
	require.NoError(s.T(), err)

	_, err = e.Phase2(s.ctx)
	require.ErrorIs(s.T(), err, engine.ErrInvalidState)
	_, err = e.Finish()
	require.ErrorIs(s.T(), err, engine.ErrInvalidState)
	_, err = e.SinglePass(s.ctx)
	require.ErrorIs(s.T(), err, engine.ErrPolicyConflict)
	require.Equal(s.T(), engine.Unstarted, e.State(), "guards do not change state")

	_, err = e.Phase1(s.ctx)
	require.NoError(s.T(), err)
	_, err = e.Phase1(s.ctx)
	require.ErrorIs(s.T(), err, engine.ErrInvalidState)

	// Stopping after phase 1 is allowed.
	res, err := e.Finish()
	require.NoError(s.T(), err)
	require.Equal(s.T(), int64(5), res.TotalCost)
	_, err = e.Phase2(s.ctx)
	require.ErrorIs(s.T(), err, engine.ErrInvalidState)
}

// TestConfigurationErrors are raised eagerly by New.
func (s *EngineSuite) TestConfigurationErrors() {
	acts := []model.Activity{{Key: "X", Capacity: 1}, {Key: "Y", Capacity: 1}, {Key: "Z", Capacity: 1}}
	good := model.Participant{ID: "a", Slots: 1, Preferences: keys("X", "Y", "Z")}

	cases := []struct {
		name  string
		ps    []model.Participant
		acts  []model.Activity
		opts  []engine.Option
		cause error
	}{
		{"unknown key", []model.Participant{{ID: "a", Slots: 1, Preferences: keys("X", "Y", "Q")}}, acts, nil, network.ErrUnknownActivity},
		{"too few preferences", []model.Participant{{ID: "a", Slots: 1, Preferences: keys("X", "Y")}}, acts, nil, engine.ErrTooFewPreferences},
		{"duplicate participant", []model.Participant{good, good}, acts, nil, network.ErrDuplicateParticipant},
		{"duplicate activity", []model.Participant{good}, append(acts, model.Activity{Key: "X"}), nil, network.ErrDuplicateActivity},
		{"invalid record", []model.Participant{{ID: "a", Slots: 0}}, acts, nil, model.ErrInvalidSlots},
		{"negative capacity", []model.Participant{good}, []model.Activity{{Key: "X", Capacity: -1}}, nil, model.ErrInvalidCapacity},
		{"bad schedule", []model.Participant{good}, acts,
			[]engine.Option{engine.WithPhase1Schedule(func(r int) int64 { return int64(5 - r) })}, cost.ErrBadSchedule},
		{"flat phase-1 schedule", []model.Participant{good}, acts,
			[]engine.Option{engine.WithPhase1Schedule(cost.Table(1, 1, 1))}, cost.ErrFlatSchedule},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			_, err := engine.New(tc.ps, tc.acts, tc.opts...)
			require.ErrorIs(s.T(), err, engine.ErrConfiguration)
			require.ErrorIs(s.T(), err, tc.cause)
			var ce *engine.ConfigurationError
			require.True(s.T(), errors.As(err, &ce))
		})
	}

	// Fewer than three preferences are fine when phase 1 looks at fewer, or
	// under the single-pass policy.
	short := []model.Participant{{ID: "a", Slots: 1, Preferences: keys("X")}}
	_, err := engine.New(short, acts, engine.WithTopChoices(1))
	require.NoError(s.T(), err)
	_, err = engine.New(short, acts, engine.WithPolicy(engine.SinglePassPolicy))
	require.NoError(s.T(), err)

	require.Panics(s.T(), func() { engine.WithTopChoices(0) })
	require.Panics(s.T(), func() { engine.WithPolicy(engine.Policy(9)) })
	require.Panics(s.T(), func() { engine.WithPhase2Schedule(nil) })
}

// TestInputsAreCopied: caller mutations after New do not leak in.
func (s *EngineSuite) TestInputsAreCopied() {
	ps, acts := scenario()
	e, err := engine.New(ps, acts)
	require.NoError(s.T(), err)
	ps[0].Preferences[0] = "Z"
	acts[0].Capacity = 0

	r1, err := e.Phase1(s.ctx)
	require.NoError(s.T(), err)
	require.Equal(s.T(), int64(5), r1.Cost)
}

// TestCancellation fails the phase and the run.
func (s *EngineSuite) TestCancellation() {
	ps, acts := scenario()
	e, err := engine.New(ps, acts)
	require.NoError(s.T(), err)

	ctx, cancel := context.WithCancel(s.ctx)
	cancel()
	_, err = e.Phase1(ctx)
	require.ErrorIs(s.T(), err, context.Canceled)
	require.Equal(s.T(), engine.Failed, e.State())
}

// TestObservability checks log lines and metrics of a full run.
func (s *EngineSuite) TestObservability() {
	core, logs := observer.New(zapcore.InfoLevel)
	reg := prometheus.NewRegistry()
	mgr := metrics.NewManager(metrics.WithRegistry(reg))

	ps, acts := scenario()
	e, err := engine.New(ps, acts, engine.WithLogger(zap.New(core)), engine.WithMetrics(mgr))
	require.NoError(s.T(), err)
	_, err = e.Run(s.ctx)
	require.NoError(s.T(), err)

	started := logs.FilterMessage("phase started").All()
	require.Len(s.T(), started, 2)
	// source, sink, 3 activities, 4 participants; 3 sink + 4 source + 12 preference edges.
	require.EqualValues(s.T(), 9, started[0].ContextMap()["vertices"])
	require.EqualValues(s.T(), 19, started[0].ContextMap()["edges"])

	finished := logs.FilterMessage("phase finished").All()
	require.Len(s.T(), finished, 2)
	require.Equal(s.T(), e.RunID(), finished[0].ContextMap()["run_id"])
	require.Equal(s.T(), "phase1", finished[0].ContextMap()["phase"])
	require.Equal(s.T(), 3, logs.FilterMessageSnippet("choice:").Len())

	require.Equal(s.T(), float64(4), testutil.ToFloat64(mgr.AssignmentsCounter("phase1")))
	require.Equal(s.T(), float64(2), testutil.ToFloat64(mgr.AssignmentsCounter("phase2")))
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineSuite))
}
