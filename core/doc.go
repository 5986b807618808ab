// SPDX-License-Identifier: MIT

// Package core provides the thread-safe, in-memory flow network used by every
// other rosterflow package.
//
// The Graph G = (V,E) is always directed. Every edge carries two integers:
//
//   - Capacity: the maximum number of flow units the edge can carry (≥ 0).
//   - Cost:     the per-unit cost of pushing flow over the edge (any sign).
//
// Behavior highlights:
//
//   - Deterministic iteration: Vertices(), Edges() and Neighbors() return
//     results in insertion order, so two graphs built by the same sequence of
//     calls are indistinguishable to the solvers.
//   - Collision-free atomic Edge.ID generation ("e1", "e2", …).
//   - Separate sync.RWMutex for vertices (muVert) and edges+adjacency
//     (muEdgeAdj) to keep lock contention low.
//   - Snapshots, not live views: Edges(), Neighbors() and Edge() return copies,
//     so a built network cannot be mutated through a read accessor.
//
// Configuration Options (GraphOption):
//
//	– WithMultiEdges()
//	    Allows multiple parallel edges between the same endpoints.
//	    Otherwise a second AddEdge(from,to) → ErrMultiEdgeNotAllowed.
//
//	– WithLoops()
//	    Permits self-loops (from == to); otherwise AddEdge(v,v) → ErrLoopNotAllowed.
//
// Errors:
//
//	ErrEmptyVertexID       - vertex ID is the empty string.
//	ErrVertexNotFound      - requested vertex does not exist.
//	ErrEdgeNotFound        - requested edge does not exist.
//	ErrNegativeCapacity    - AddEdge received a capacity < 0.
//	ErrLoopNotAllowed      - self-loop when loops are disabled.
//	ErrMultiEdgeNotAllowed - parallel edge when multi-edges are disabled.
//
// Example:
//
//	g := core.NewGraph()
//	_, _ = g.AddEdge("source", "p:ada", 1, 0)
//	_, _ = g.AddEdge("p:ada", "a:waltz", 1, 2)
//	_, _ = g.AddEdge("a:waltz", "sink", 4, 0)
package core
