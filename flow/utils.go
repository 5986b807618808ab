// SPDX-License-Identifier: MIT

package flow

import (
	"github.com/katalvlaran/rosterflow/core"
)

// arc is one direction of a residual edge. Arcs are stored in pairs: arcs[2k]
// is the forward copy of an original edge and arcs[2k+1] its reverse, so the
// partner of arc i is always i^1.
type arc struct {
	to     int    // head vertex index
	cap    int64  // remaining residual capacity
	cost   int64  // per-unit cost (negated on reverse arcs)
	edgeID string // original core edge ID (shared by both directions)
}

// residualNet is an index-based residual network. Vertex indices follow
// g.Vertices() order and adj[u] lists arc indices in edge insertion order, so
// every traversal over it is deterministic for a given construction order.
type residualNet struct {
	ids     []string       // index → vertex ID
	index   map[string]int // vertex ID → index
	adj     [][]int        // index → outgoing arc indices
	arcs    []arc
	initial []int64 // original capacity of each forward arc (by pair index)
}

// buildResidual converts g into a residualNet.
//
// Steps:
//  1. Index vertices in insertion order (O(V)).
//  2. For each edge in insertion order (O(E)):
//     a. Skip self-loops; they never lie on a shortest augmenting path.
//     b. Reject |cost| > maxAbsCost with EdgeError.
//     c. Append the forward arc (cap, cost) and reverse arc (0, −cost).
//
// Complexity: O(V + E) time and memory.
func buildResidual(g *core.Graph) (*residualNet, error) {
	ids := g.Vertices()
	n := &residualNet{
		ids:   ids,
		index: make(map[string]int, len(ids)),
		adj:   make([][]int, len(ids)),
	}
	for i, id := range ids {
		n.index[id] = i
	}

	for _, e := range g.Edges() {
		if e.From == e.To {
			continue
		}
		if e.Cost > maxAbsCost || e.Cost < -maxAbsCost {
			return nil, EdgeError{ID: e.ID, From: e.From, To: e.To, Cost: e.Cost}
		}
		u, v := n.index[e.From], n.index[e.To]
		n.adj[u] = append(n.adj[u], len(n.arcs))
		n.arcs = append(n.arcs, arc{to: v, cap: e.Capacity, cost: e.Cost, edgeID: e.ID})
		n.adj[v] = append(n.adj[v], len(n.arcs))
		n.arcs = append(n.arcs, arc{to: u, cap: 0, cost: -e.Cost, edgeID: e.ID})
		n.initial = append(n.initial, e.Capacity)
	}

	return n, nil
}

// push moves delta units over arc i, updating its partner.
func (n *residualNet) push(i int, delta int64) {
	n.arcs[i].cap -= delta
	n.arcs[i^1].cap += delta
}

// tail returns the tail vertex index of arc i (the head of its partner).
func (n *residualNet) tail(i int) int {
	return n.arcs[i^1].to
}

// flows reports, per original edge ID, the units of flow currently carried.
// Only edges with positive flow are included.
func (n *residualNet) flows() map[string]int64 {
	out := make(map[string]int64)
	for k, initCap := range n.initial {
		fwd := n.arcs[2*k]
		if f := initCap - fwd.cap; f > 0 {
			out[fwd.edgeID] += f
		}
	}

	return out
}

// toCoreResidual renders the residual network as a *core.Graph: every arc with
// positive residual capacity becomes an edge (parallel arcs are kept as
// parallel edges). Vertex order is preserved.
//
// Complexity: O(V + E).
func (n *residualNet) toCoreResidual() (*core.Graph, error) {
	residual := core.NewGraph(core.WithMultiEdges())
	for _, id := range n.ids {
		if err := residual.AddVertex(id); err != nil {
			return nil, err
		}
	}
	for u, list := range n.adj {
		for _, i := range list {
			a := n.arcs[i]
			if a.cap <= 0 {
				continue
			}
			if _, err := residual.AddEdge(n.ids[u], n.ids[a.to], a.cap, a.cost); err != nil {
				return nil, err
			}
		}
	}

	return residual, nil
}

// pathIDs renders a vertex path for verbose logging.
func (n *residualNet) pathIDs(path []int) []string {
	out := make([]string, len(path))
	for i, v := range path {
		out[i] = n.ids[v]
	}

	return out
}
