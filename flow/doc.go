// SPDX-License-Identifier: MIT

// Package flow implements the network-flow solvers used by the assignment
// engine, operating on *core.Graph networks whose edges carry a Capacity and
// a per-unit Cost.
//
// The algorithms offered are:
//
//   - MinCostFlow
//
//   - Method: successive shortest augmenting paths. Initial potentials come
//     from Bellman–Ford (negative costs allowed), every later search is a
//     Dijkstra over reduced costs (Johnson reweighting).
//
//   - Time:   O(V·E + F·(V + E)·log V), F = number of augmentations ≤ demand.
//
//   - Memory: O(V + E).
//
//   - Use to route an exact demand at globally minimum cost.
//
//   - Dinic
//
//   - Method: level graph construction + blocking flow via DFS.
//
//   - Time:   O(E · √V) on unit-capacity networks.
//
//   - Memory: O(V + E).
//
//   - Use to learn the maximum routable value and the residual graph
//     (e.g. to size a shortfall or find a minimum cut).
//
// # Integrality
//
// All capacities, costs and demands are int64, so every flow produced is
// integral: on unit-capacity edges it is a 0/1 selection.
//
// # Determinism
//
// Both solvers index vertices in core insertion order and scan arcs in edge
// insertion order; heap ties break on vertex index. Building the same network
// the same way yields the same flows.
//
// # API
//
//	func MinCostFlow(g *core.Graph, source, sink string, demand int64, opts FlowOptions) (*MinCostResult, error)
//	func Dinic(g *core.Graph, source, sink string, opts FlowOptions) (maxFlow int64, residual *core.Graph, err error)
//
// # Errors
//
//	ErrSourceNotFound  - if the source vertex is missing in the input graph.
//	ErrSinkNotFound    - if the sink vertex is missing.
//	ErrNegativeDemand  - MinCostFlow demand < 0.
//	ErrNegativeCycle   - a negative-cost cycle is reachable from the source.
//	ErrInfeasible      - matched by *InfeasibleError{Demand, Routed}.
//	EdgeError          - an edge cost lies outside ±2^40.
//	context.Canceled / context.DeadlineExceeded - if opts.Ctx is canceled.
package flow
