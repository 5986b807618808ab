// SPDX-License-Identifier: MIT

package engine

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/katalvlaran/rosterflow/bfs"
	"github.com/katalvlaran/rosterflow/flow"
	"github.com/katalvlaran/rosterflow/network"
)

// diagnose turns a min-cost infeasibility into an *InfeasibleError.
//
// Steps:
//  1. Dinic gives the maximum routable flow and its residual graph.
//  2. BFS from the source over positive residual capacity yields the source
//     side of a minimum cut.
//  3. Activity vertices on that side have their sink edge saturated;
//     participant vertices on it are the ones competing for them.
//
// If the diagnosis itself fails (e.g. ctx canceled), the error still carries
// the figures reported by the min-cost solver.
func (e *Engine) diagnose(ctx context.Context, p Phase, n *network.Network, cause error) error {
	ie := &InfeasibleError{Phase: p, Demand: n.Demand(), Err: cause}
	var fe *flow.InfeasibleError
	if errors.As(cause, &fe) {
		ie.MaxFlow = fe.Routed
	}

	fo := e.cfg.flowOpts
	fo.Ctx = ctx
	maxFlow, residual, err := flow.Dinic(n.Graph, n.Source, n.Sink, fo)
	if err == nil {
		ie.MaxFlow = maxFlow
		var side map[string]bool
		side, err = bfs.Reachable(residual, n.Source, bfs.WithContext(ctx))
		if err == nil {
			for _, v := range residual.Vertices() {
				if !side[v] {
					continue
				}
				if k, ok := n.ActivityOf(v); ok {
					ie.Saturated = append(ie.Saturated, k)
				} else if id, ok := n.ParticipantOf(v); ok {
					ie.Constrained = append(ie.Constrained, id)
				}
			}
		}
	}
	ie.Shortfall = ie.Demand - ie.MaxFlow
	if err != nil {
		e.logger.Warn("infeasibility diagnosis incomplete", zap.Error(err))
	}

	return ie
}
