// SPDX-License-Identifier: MIT

// Package bfs provides breadth-first search over a directed core.Graph,
// following only edges whose capacity meets a threshold.
//
// On a residual network returned by flow.Dinic, the vertices reachable from
// the source form the source side of a minimum cut. The engine uses that to
// name the activities that are full and the participants who could not be
// placed when a phase is infeasible.
//
// Result:
//   - Order: visit sequence
//   - Depth: vertex → distance (edges) from start
//   - Parent: vertex → predecessor in the BFS tree
//
// Options: WithContext, WithOnVisit, WithMaxDepth, WithMinCapacity,
// WithFilterEdge.
//
// Determinism:
//
//	core.Neighbors returns edges in insertion order and BFS enqueues heads in
//	that order, so the visit sequence is reproducible.
//
// Complexity: O(V + E) time, O(V) memory.
//
// Usage
//
//	cut, err := bfs.Reachable(residual, "source")
//	if err != nil {
//	    // ErrGraphNil, ErrStartVertexNotFound, ErrOptionViolation, ErrNeighbors, ctx error
//	}
package bfs
