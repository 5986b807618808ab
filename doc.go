// SPDX-License-Identifier: MIT

// Package rosterflow assigns participants to capacity-limited activities by
// solving a sequence of minimum-cost flow problems.
//
// Every participant ranks the activities it would like to join and states how
// many slots it wants. Each activity accepts a bounded number of
// participants. The engine turns one assignment round into a flow network
// (source → participant → activity → sink), routes the full demand at minimum
// total preference cost and commits the result only when every requested
// unit could be placed.
//
// Two policies are available:
//
//   - Two-phase: phase 1 gives every participant one of its top choices,
//     phase 2 fills the remaining slots from the leftover capacity.
//   - Single pass: all slots are solved at once under a graduated cost
//     schedule that punishes low-ranked placements.
//
// When a round cannot be satisfied the engine reports the shortfall together
// with the saturated activities and the participants competing for them, as
// found by a max-flow / min-cut pass.
//
// Packages:
//
//	core     - directed graph with capacity and cost on every edge
//	flow     - MinCostFlow (successive shortest paths) and Dinic max-flow
//	bfs      - breadth-first reachability over residual graphs
//	model    - participants, activities, assignment tables
//	cost     - rank → cost schedules
//	network  - builds the per-phase flow network
//	engine   - the phase state machine
//	report   - satisfaction statistics
//	export   - sheet-style export of the final assignments
//	config   - koanf-backed configuration
//	logging  - zap logger construction
//	metrics  - Prometheus collectors
package rosterflow
