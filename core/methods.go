// SPDX-License-Identifier: MIT

// Package core: vertex and edge method implementations.
//
// Adjacency is an ordered slice of edge IDs per tail vertex, so iteration
// order always equals insertion order. A pair counter (pairs[from][to])
// answers HasEdge and the multi-edge policy in O(1).

package core

import (
	"fmt"
	"sync/atomic"
)

const (
	edgeIDPrefix = "e"
)

// AddVertex inserts a new vertex with the given ID into the Graph.
// Returns ErrEmptyVertexID if id is empty.
// If the vertex already exists, this is a no-op (idempotent).
// Complexity: O(1) amortized.
func (g *Graph) AddVertex(id string) error {
	// Validate input: empty IDs are not allowed
	if id == "" {
		return ErrEmptyVertexID
	}
	g.muVert.Lock()
	defer g.muVert.Unlock()

	if _, exists := g.vertices[id]; exists {
		return nil // no-op for existing vertex
	}
	g.vertices[id] = &Vertex{ID: id}
	g.vertexOrder = append(g.vertexOrder, id)

	return nil
}

// HasVertex reports whether a vertex with the given ID exists in the graph.
// Complexity: O(1).
func (g *Graph) HasVertex(id string) bool {
	if id == "" {
		return false
	}
	g.muVert.RLock()
	defer g.muVert.RUnlock()
	_, exists := g.vertices[id]

	return exists
}

// Vertices returns all vertex IDs in insertion order.
// Complexity: O(V)
func (g *Graph) Vertices() []string {
	g.muVert.RLock()
	defer g.muVert.RUnlock()
	out := make([]string, len(g.vertexOrder))
	copy(out, g.vertexOrder)

	return out
}

// VertexCount returns the number of vertices.
func (g *Graph) VertexCount() int {
	g.muVert.RLock()
	defer g.muVert.RUnlock()

	return len(g.vertices)
}

// AddEdge creates a new directed edge from→to with the given capacity and
// per-unit cost and returns its unique Edge.ID. Missing endpoints are created.
//
// Returns ErrEmptyVertexID, ErrNegativeCapacity, ErrLoopNotAllowed or
// ErrMultiEdgeNotAllowed.
// Complexity: O(1) amortized.
func (g *Graph) AddEdge(from, to string, capacity, cost int64) (string, error) {
	// 1) Input validation
	if from == "" || to == "" {
		return "", ErrEmptyVertexID
	}
	// 2) Capacity constraint
	if capacity < 0 {
		return "", fmt.Errorf("%w: %s→%s capacity=%d", ErrNegativeCapacity, from, to, capacity)
	}
	// 3) Loop constraint
	if from == to && !g.allowLoops {
		return "", ErrLoopNotAllowed
	}
	// 4) Ensure both endpoints exist (idempotent)
	if err := g.AddVertex(from); err != nil {
		return "", err
	}
	if err := g.AddVertex(to); err != nil {
		return "", err
	}

	g.muEdgeAdj.Lock()
	defer g.muEdgeAdj.Unlock()

	// 5) Multi-edge existence check
	if !g.allowMulti && g.pairs[from][to] > 0 {
		return "", ErrMultiEdgeNotAllowed
	}

	// 6) Generate a new atomic Edge.ID and store the edge
	eid := fmt.Sprintf("%s%d", edgeIDPrefix, atomic.AddUint64(&g.nextEdgeID, 1))
	g.edges[eid] = &Edge{ID: eid, From: from, To: to, Capacity: capacity, Cost: cost}
	g.edgeOrder = append(g.edgeOrder, eid)

	// 7) Record adjacency and pair counter
	g.adjacency[from] = append(g.adjacency[from], eid)
	if g.pairs[from] == nil {
		g.pairs[from] = make(map[string]int)
	}
	g.pairs[from][to]++

	return eid, nil
}

// HasEdge reports true if at least one edge from 'from' to 'to' exists.
// Complexity: O(1).
func (g *Graph) HasEdge(from, to string) bool {
	if from == "" || to == "" {
		return false
	}
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()

	return g.pairs[from][to] > 0
}

// Edge returns a copy of the edge with the given ID.
// Returns ErrEdgeNotFound if the ID is unknown.
func (g *Graph) Edge(eid string) (Edge, error) {
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()
	e, ok := g.edges[eid]
	if !ok {
		return Edge{}, fmt.Errorf("%w: %q", ErrEdgeNotFound, eid)
	}

	return *e, nil
}

// Edges returns copies of all edges in insertion order.
// Complexity: O(E)
func (g *Graph) Edges() []Edge {
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()
	out := make([]Edge, 0, len(g.edgeOrder))
	for _, eid := range g.edgeOrder {
		out = append(out, *g.edges[eid])
	}

	return out
}

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int {
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()

	return len(g.edges)
}

// Neighbors returns copies of the outgoing edges of vertex 'id' in insertion order.
// Complexity: O(d) where d is the out-degree.
func (g *Graph) Neighbors(id string) ([]Edge, error) {
	if id == "" {
		return nil, ErrEmptyVertexID
	}
	if !g.HasVertex(id) {
		return nil, ErrVertexNotFound
	}

	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()
	out := make([]Edge, 0, len(g.adjacency[id]))
	for _, eid := range g.adjacency[id] {
		out = append(out, *g.edges[eid])
	}

	return out, nil
}
