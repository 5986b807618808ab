// SPDX-License-Identifier: MIT

// Package engine runs the phased preference-to-capacity assignment.
//
// An Engine owns deep copies of the participants and activities it was given
// and moves through a fixed state machine:
//
//	two-phase:    Unstarted ─Phase1─▶ Phase1Done ─Phase2─▶ Phase2Done ─Finish─▶ Terminal
//	single-pass:  Unstarted ─SinglePass─────────────────────────────────────────▶ Terminal
//
// Any phase error moves the engine to Failed and ends the run.
//
// Phase 1 gives every participant one unit of demand over their first
// TopChoices preferences (default 3) at the phase-1 schedule (default
// 1, 2, 3). Each granted activity is removed from that participant's
// remaining preferences.
//
// Phase 2 gives every participant with Slots > 1 a demand of Slots−1 over all
// remaining preferences, costed by position in the remaining list starting at
// rank 1 (phase-2 schedule, default linear), against the capacities left by
// phase 1.
//
// SinglePass is the alternative policy: full Slots demand, the complete
// preference list, and the graduated schedule keyed by absolute rank.
//
// Every phase builds a fresh network, solves it with flow.MinCostFlow, and
// commits the decoded assignments, capacity decrements and preference
// removals only after the solve succeeds. On infeasibility the engine runs
// flow.Dinic and a residual BFS to report the routable maximum, the shortfall
// and the activities and participants on the source side of the minimum cut.
//
// Errors:
//
//	*ConfigurationError  (errors.Is ErrConfiguration)        bad records, unknown keys, too few preferences
//	*InfeasibleError     (errors.Is ErrInfeasibleAssignment)  demand exceeds what the network can route
//	ErrInvalidState      phase called out of order, or after Terminal/Failed
//	ErrPolicyConflict    two-phase call on a single-pass engine or vice versa
//	ErrNotFinished       Result requested before Terminal
//
// An Engine is not safe for concurrent use.
package engine
