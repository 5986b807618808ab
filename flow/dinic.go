// SPDX-License-Identifier: MIT

package flow

import (
	"context"
	"math"

	"go.uber.org/zap"

	"github.com/katalvlaran/rosterflow/core"
)

// Dinic computes the maximum flow from `source` to `sink` in `g` using
// Dinic's algorithm (level graph + blocking flows). Edge costs are ignored.
//
// It returns:
//   - maxFlow       : the total flow value
//   - residualGraph : a *core.Graph of remaining capacities (forward
//     leftovers and reverse arcs carrying the pushed flow), multi-edges allowed
//   - err           : ErrSourceNotFound, ErrSinkNotFound, EdgeError,
//     or context cancellation error
//
// Steps:
//  1. Normalize options and capture context (O(1)).
//  2. Validate that `source` and `sink` exist in `g` (O(1)).
//  3. Build the indexed residual network via buildResidual (O(V + E)).
//  4. Repeat until no more augmenting paths:
//     a. Check for cancellation (O(1)).
//     b. BFS to build the level graph (O(V + E)).
//     c. If sink unreachable, break.
//     d. DFS-based blocking flow pushes until none remains,
//     optionally rebuilding level graph every LevelRebuildInterval augmentations.
//  5. Render the residual network as a *core.Graph (O(V + E_res)).
//
// Complexity:
//
//	Time:   O(V² · E) in general; O(E · √V) on unit-capacity networks.
//	Memory: O(V + E).
func Dinic(
	g *core.Graph,
	source, sink string,
	opts FlowOptions,
) (maxFlow int64, residualGraph *core.Graph, err error) {
	// 1) Normalize options
	opts.normalize()
	ctx := opts.Ctx

	// 2) Validate presence of source and sink
	if !g.HasVertex(source) {
		return 0, nil, ErrSourceNotFound
	}
	if !g.HasVertex(sink) {
		return 0, nil, ErrSinkNotFound
	}

	// 3) Build residual network
	net, err := buildResidual(g)
	if err != nil {
		return 0, nil, err
	}
	s, t := net.index[source], net.index[sink]

	// 4) Main loop: level graph + blocking flows
	augmentCount := 0
	level := make([]int, len(net.ids))
	iter := make([]int, len(net.ids))
	for s != t {
		// 4a) Cancellation check before BFS
		if err = ctx.Err(); err != nil {
			return maxFlow, nil, err
		}

		// 4b) BFS to compute levels
		for i := range level {
			level[i] = -1
		}
		level[s] = 0
		queue := []int{s}
		for i := 0; i < len(queue); i++ {
			u := queue[i]
			for _, ai := range net.adj[u] {
				a := net.arcs[ai]
				if a.cap > 0 && level[a.to] < 0 {
					level[a.to] = level[u] + 1
					queue = append(queue, a.to)
				}
			}
		}
		// 4c) If sink unreachable in level graph, we're done
		if level[t] < 0 {
			break
		}

		// 4d) DFS-based blocking flow
		for i := range iter {
			iter[i] = 0
		}
		for {
			if err = ctx.Err(); err != nil {
				return maxFlow, nil, err
			}
			pushed := dfsDinicPush(ctx, net, level, iter, s, t, math.MaxInt64)
			if pushed == 0 {
				break
			}
			maxFlow += pushed
			augmentCount++
			if opts.Verbose {
				opts.Logger.Debug("dinic: pushed flow",
					zap.Int64("pushed", pushed),
					zap.Int64("total", maxFlow))
			}
			if opts.LevelRebuildInterval > 0 && augmentCount%opts.LevelRebuildInterval == 0 {
				break
			}
		}
	}

	// 5) Render the final residual graph
	residualGraph, err = net.toCoreResidual()
	if err != nil {
		return maxFlow, nil, err
	}

	return maxFlow, residualGraph, nil
}

// dfsDinicPush recursively pushes flow along the level graph.
// It respects cancellation via ctx, updates arc capacities in place,
// and returns the amount actually sent.
func dfsDinicPush(
	ctx context.Context,
	net *residualNet,
	level, iter []int,
	u, sink int,
	available int64,
) int64 {
	if ctx.Err() != nil {
		return 0
	}
	if u == sink {
		return available
	}
	// Iterate over admissible arcs, starting from iter[u]
	for ; iter[u] < len(net.adj[u]); iter[u]++ {
		ai := net.adj[u][iter[u]]
		a := net.arcs[ai]
		if a.cap <= 0 || level[a.to] != level[u]+1 {
			continue
		}
		send := available
		if a.cap < send {
			send = a.cap
		}
		pushed := dfsDinicPush(ctx, net, level, iter, a.to, sink, send)
		if pushed > 0 {
			net.push(ai, pushed)

			return pushed
		}
	}

	return 0
}
