// SPDX-License-Identifier: MIT

package flow

import (
	"container/heap"
	"math"

	"go.uber.org/zap"

	"github.com/katalvlaran/rosterflow/core"
)

// infDist marks a vertex as unreached in the shortest-path searches.
const infDist = int64(math.MaxInt64)

// MinCostResult is the outcome of a successful MinCostFlow call.
type MinCostResult struct {
	// Value is the routed flow; always equals the requested demand.
	Value int64

	// Cost is Σ flow(e)·cost(e) over all edges.
	Cost int64

	// Flows maps original edge IDs to the units they carry (zero-flow edges omitted).
	Flows map[string]int64

	// Augmentations counts the shortest augmenting paths used.
	Augmentations int
}

// MinCostFlow routes exactly `demand` units from `source` to `sink` at
// minimum total cost (successive shortest augmenting paths).
//
// Steps:
//  1. Normalize options; validate source, sink and demand.
//  2. Build the indexed residual network (O(V + E)).
//  3. Initial potentials by Bellman–Ford from source over positive-capacity
//     arcs; this tolerates negative edge costs and detects negative cycles.
//  4. Until `demand` units are routed:
//     a. Check ctx for cancellation.
//     b. Dijkstra on reduced costs c(u,v) + π(u) − π(v) ≥ 0 (Johnson reweighting).
//     c. If sink unreachable, fail with *InfeasibleError.
//     d. π(v) += dist(v) for every reached v.
//     e. Augment along the path by min(bottleneck, remaining demand).
//  5. Collect per-edge flows.
//
// Determinism:
//   - Vertices are indexed in insertion order, arcs are scanned in edge
//     insertion order, relaxations are strict (<), and heap ties are broken by
//     vertex index. Identical construction order ⇒ identical flows.
//
// Complexity:
//
//	Time:   O(V·E + F·(V + E)·log V) where F ≤ demand is the number of augmentations.
//	Memory: O(V + E).
func MinCostFlow(
	g *core.Graph,
	source, sink string,
	demand int64,
	opts FlowOptions,
) (*MinCostResult, error) {
	// 1) Normalize and validate
	opts.normalize()
	ctx := opts.Ctx
	if !g.HasVertex(source) {
		return nil, ErrSourceNotFound
	}
	if !g.HasVertex(sink) {
		return nil, ErrSinkNotFound
	}
	if demand < 0 {
		return nil, ErrNegativeDemand
	}
	res := &MinCostResult{Flows: map[string]int64{}}
	if demand == 0 {
		return res, nil
	}

	// 2) Residual network
	net, err := buildResidual(g)
	if err != nil {
		return nil, err
	}
	s, t := net.index[source], net.index[sink]
	if s == t {
		return nil, &InfeasibleError{Demand: demand}
	}

	// 3) Initial potentials
	pot, err := bellmanFord(net, s)
	if err != nil {
		return nil, err
	}

	// 4) Successive shortest paths
	sp := newPathSearch(len(net.ids))
	for res.Value < demand {
		if err = ctx.Err(); err != nil {
			return nil, err
		}

		sp.run(net, s, pot)
		if sp.dist[t] == infDist {
			return nil, &InfeasibleError{Demand: demand, Routed: res.Value}
		}
		for v, d := range sp.dist {
			if d != infDist {
				pot[v] += d
			}
		}

		// Bottleneck along the path, clamped to what is still owed.
		delta := demand - res.Value
		for v := t; v != s; {
			ai := sp.prevArc[v]
			if c := net.arcs[ai].cap; c < delta {
				delta = c
			}
			v = net.tail(ai)
		}

		var pathCost int64
		var path []int
		for v := t; v != s; {
			ai := sp.prevArc[v]
			net.push(ai, delta)
			pathCost += net.arcs[ai].cost
			if opts.Verbose {
				path = append(path, v)
			}
			v = net.tail(ai)
		}

		res.Value += delta
		res.Cost += delta * pathCost
		res.Augmentations++

		if opts.Verbose {
			path = append(path, s)
			for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
				path[i], path[j] = path[j], path[i]
			}
			opts.Logger.Debug("min-cost flow: augmenting path",
				zap.Strings("path", net.pathIDs(path)),
				zap.Int64("flow", delta),
				zap.Int64("unit_cost", pathCost),
				zap.Int64("routed", res.Value))
		}
	}

	// 5) Per-edge flows
	res.Flows = net.flows()

	return res, nil
}

// bellmanFord returns shortest distances from s over arcs with positive
// capacity, using 0 for unreachable vertices (they never become reachable
// later: augmentations only add arcs between already reached vertices).
// Returns ErrNegativeCycle if relaxation does not settle within V−1 rounds.
//
// Complexity: O(V · E).
func bellmanFord(net *residualNet, s int) ([]int64, error) {
	n := len(net.ids)
	dist := make([]int64, n)
	for i := range dist {
		dist[i] = infDist
	}
	dist[s] = 0

	for round := 0; round < n; round++ {
		changed := false
		for u := 0; u < n; u++ {
			if dist[u] == infDist {
				continue
			}
			for _, ai := range net.adj[u] {
				a := net.arcs[ai]
				if a.cap <= 0 {
					continue
				}
				if nd := dist[u] + a.cost; nd < dist[a.to] {
					dist[a.to] = nd
					changed = true
				}
			}
		}
		if !changed {
			for i := range dist {
				if dist[i] == infDist {
					dist[i] = 0
				}
			}
			return dist, nil
		}
	}

	return nil, ErrNegativeCycle
}

// pathSearch holds the reusable state of the reduced-cost Dijkstra.
type pathSearch struct {
	dist    []int64
	prevArc []int
	visited []bool
	pq      nodePQ
}

func newPathSearch(n int) *pathSearch {
	return &pathSearch{
		dist:    make([]int64, n),
		prevArc: make([]int, n),
		visited: make([]bool, n),
		pq:      make(nodePQ, 0, n),
	}
}

// run computes reduced-cost distances from s. prevArc[v] is the arc used to
// reach v on the shortest path tree (−1 for s and unreached vertices).
func (sp *pathSearch) run(net *residualNet, s int, pot []int64) {
	for i := range sp.dist {
		sp.dist[i] = infDist
		sp.prevArc[i] = -1
		sp.visited[i] = false
	}
	sp.pq = sp.pq[:0]
	sp.dist[s] = 0
	heap.Push(&sp.pq, &nodeItem{id: s, dist: 0})

	for sp.pq.Len() > 0 {
		item := heap.Pop(&sp.pq).(*nodeItem)
		u := item.id
		if sp.visited[u] {
			continue // stale entry
		}
		sp.visited[u] = true

		for _, ai := range net.adj[u] {
			a := net.arcs[ai]
			if a.cap <= 0 || sp.visited[a.to] {
				continue
			}
			nd := sp.dist[u] + a.cost + pot[u] - pot[a.to]
			if nd < sp.dist[a.to] {
				sp.dist[a.to] = nd
				sp.prevArc[a.to] = ai
				heap.Push(&sp.pq, &nodeItem{id: a.to, dist: nd})
			}
		}
	}
}

// nodeItem is a vertex index and its tentative reduced distance.
type nodeItem struct {
	id   int
	dist int64
}

// nodePQ is a min-heap of *nodeItem ordered by (dist, id). Stale entries are
// skipped on pop ("lazy decrease-key").
type nodePQ []*nodeItem

func (pq nodePQ) Len() int { return len(pq) }

func (pq nodePQ) Less(i, j int) bool {
	if pq[i].dist != pq[j].dist {
		return pq[i].dist < pq[j].dist
	}
	return pq[i].id < pq[j].id
}

func (pq nodePQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *nodePQ) Push(x interface{}) { *pq = append(*pq, x.(*nodeItem)) }

func (pq *nodePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]

	return item
}
