// SPDX-License-Identifier: MIT
//
// File: methods_clone.go
// Role: Cloning graph instances and read-only summaries.
// Determinism:
//   - CloneEmpty/Clone carry over nextEdgeID to keep textual edge IDs monotonic on the clone.
//   - Vertex and edge insertion order is preserved.

package core

import "sync/atomic"

// CloneEmpty returns a new Graph with identical configuration and vertices, but no edges.
// Complexity: O(V) to copy vertices.
func (g *Graph) CloneEmpty() *Graph {
	g.muVert.RLock()
	defer g.muVert.RUnlock()
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()

	return g.cloneEmptyLocked()
}

// cloneEmptyLocked assumes both read locks are held by the caller.
func (g *Graph) cloneEmptyLocked() *Graph {
	var opts []GraphOption
	if g.allowMulti {
		opts = append(opts, WithMultiEdges())
	}
	if g.allowLoops {
		opts = append(opts, WithLoops())
	}
	clone := NewGraph(opts...)
	atomic.StoreUint64(&clone.nextEdgeID, atomic.LoadUint64(&g.nextEdgeID))
	for _, id := range g.vertexOrder {
		clone.vertices[id] = &Vertex{ID: id}
		clone.vertexOrder = append(clone.vertexOrder, id)
	}

	return clone
}

// Clone returns a deep copy of the Graph: configuration, vertices, edges and adjacency.
// Edge IDs are preserved.
// Complexity: O(V + E)
func (g *Graph) Clone() *Graph {
	g.muVert.RLock()
	defer g.muVert.RUnlock()
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()

	clone := g.cloneEmptyLocked()
	for _, eid := range g.edgeOrder {
		e := g.edges[eid]
		ne := *e
		clone.edges[eid] = &ne
		clone.edgeOrder = append(clone.edgeOrder, eid)
		clone.adjacency[e.From] = append(clone.adjacency[e.From], eid)
		if clone.pairs[e.From] == nil {
			clone.pairs[e.From] = make(map[string]int)
		}
		clone.pairs[e.From][e.To]++
	}

	return clone
}

// Stats produces a deterministic, read-only snapshot of configuration flags
// and catalog sizes, plus the summed capacity and cost over all edges.
//
// Locks are taken one after the other, never nested, so a concurrent writer
// sees at most two short critical sections.
// Complexity: O(E)
func (g *Graph) Stats() *GraphStats {
	g.muVert.RLock()
	stats := GraphStats{
		AllowsMulti: g.allowMulti,
		AllowsLoops: g.allowLoops,
		VertexCount: len(g.vertices),
	}
	g.muVert.RUnlock()

	g.muEdgeAdj.RLock()
	stats.EdgeCount = len(g.edges)
	for _, e := range g.edges {
		stats.TotalCapacity += e.Capacity
		stats.TotalCost += e.Cost
	}
	g.muEdgeAdj.RUnlock()

	return &stats
}
