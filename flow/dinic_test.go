// SPDX-License-Identifier: MIT

package flow_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/rosterflow/core"
	"github.com/katalvlaran/rosterflow/flow"
)

// DinicSuite exercises Dinic's max-flow and its residual graph.
type DinicSuite struct {
	suite.Suite
}

// TestSingleEdge: S→T capacity 5.
func (s *DinicSuite) TestSingleEdge() {
	g := core.NewGraph()
	_, _ = g.AddEdge("S", "T", 5, 0)

	maxFlow, residual, err := flow.Dinic(g, "S", "T", flow.DefaultOptions())
	require.NoError(s.T(), err)
	require.Equal(s.T(), int64(5), maxFlow)

	// Forward capacity is exhausted; only the reverse arc T→S remains.
	require.False(s.T(), residual.HasEdge("S", "T"))
	require.True(s.T(), residual.HasEdge("T", "S"))
}

// TestParallelPaths sums two disjoint routes.
func (s *DinicSuite) TestParallelPaths() {
	g := core.NewGraph()
	_, _ = g.AddEdge("S", "A", 3, 0)
	_, _ = g.AddEdge("A", "T", 2, 0)
	_, _ = g.AddEdge("S", "B", 1, 0)
	_, _ = g.AddEdge("B", "T", 4, 0)

	maxFlow, _, err := flow.Dinic(g, "S", "T", flow.DefaultOptions())
	require.NoError(s.T(), err)
	require.Equal(s.T(), int64(3), maxFlow)
}

// TestBipartiteBottleneck: five unit participants share three unit slots.
func (s *DinicSuite) TestBipartiteBottleneck() {
	g := core.NewGraph()
	for _, p := range []string{"p1", "p2", "p3", "p4", "p5"} {
		_, _ = g.AddEdge("S", p, 1, 0)
		_, _ = g.AddEdge(p, "a", 1, 0)
	}
	_, _ = g.AddEdge("a", "T", 3, 0)

	maxFlow, residual, err := flow.Dinic(g, "S", "T", flow.DefaultOptions())
	require.NoError(s.T(), err)
	require.Equal(s.T(), int64(3), maxFlow)

	// Residual integrity: every residual edge has positive capacity and the
	// vertex set is unchanged.
	require.ElementsMatch(s.T(), g.Vertices(), residual.Vertices())
	for _, e := range residual.Edges() {
		require.Positive(s.T(), e.Capacity, "edge %s", e.ID)
	}
	require.False(s.T(), residual.HasEdge("a", "T"), "activity edge saturated")
}

// TestAgreesWithMinCostOnFeasibility: MinCostFlow at the Dinic value succeeds,
// one unit more is infeasible.
func (s *DinicSuite) TestAgreesWithMinCostOnFeasibility() {
	g := core.NewGraph()
	_, _ = g.AddEdge("S", "A", 2, 1)
	_, _ = g.AddEdge("S", "B", 2, 4)
	_, _ = g.AddEdge("A", "B", 1, 1)
	_, _ = g.AddEdge("A", "T", 1, 3)
	_, _ = g.AddEdge("B", "T", 2, 1)

	maxFlow, _, err := flow.Dinic(g, "S", "T", flow.DefaultOptions())
	require.NoError(s.T(), err)
	require.Equal(s.T(), int64(3), maxFlow)

	_, err = flow.MinCostFlow(g, "S", "T", maxFlow, flow.DefaultOptions())
	require.NoError(s.T(), err)
	_, err = flow.MinCostFlow(g, "S", "T", maxFlow+1, flow.DefaultOptions())
	require.ErrorIs(s.T(), err, flow.ErrInfeasible)
}

// TestLevelRebuildInterval gives the same value with forced rebuilds.
func (s *DinicSuite) TestLevelRebuildInterval() {
	g := core.NewGraph()
	for _, p := range []string{"p1", "p2", "p3"} {
		_, _ = g.AddEdge("S", p, 1, 0)
		_, _ = g.AddEdge(p, "x", 1, 0)
		_, _ = g.AddEdge(p, "y", 1, 0)
	}
	_, _ = g.AddEdge("x", "T", 2, 0)
	_, _ = g.AddEdge("y", "T", 2, 0)

	opts := flow.DefaultOptions()
	opts.LevelRebuildInterval = 1
	opts.Verbose = true
	maxFlow, _, err := flow.Dinic(g, "S", "T", opts)
	require.NoError(s.T(), err)
	require.Equal(s.T(), int64(3), maxFlow)
}

// TestErrors covers missing endpoints and cancellation.
func (s *DinicSuite) TestErrors() {
	g := core.NewGraph()
	_, _ = g.AddEdge("S", "T", 1, 0)

	_, _, err := flow.Dinic(g, "X", "T", flow.DefaultOptions())
	require.ErrorIs(s.T(), err, flow.ErrSourceNotFound)
	_, _, err = flow.Dinic(g, "S", "X", flow.DefaultOptions())
	require.ErrorIs(s.T(), err, flow.ErrSinkNotFound)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	opts := flow.DefaultOptions()
	opts.Ctx = ctx
	_, _, err = flow.Dinic(g, "S", "T", opts)
	require.ErrorIs(s.T(), err, context.Canceled)
}

func TestDinicSuite(t *testing.T) {
	suite.Run(t, new(DinicSuite))
}
