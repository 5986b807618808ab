// SPDX-License-Identifier: MIT

// Package network builds the per-phase flow network of the assignment engine.
//
// A network is rebuilt from scratch for every phase and discarded afterwards:
//
//	source ──(Units, 0)──▶ p:<participant> ──(1, schedule(rank))──▶ a:<activity> ──(capacity, 0)──▶ sink
//
// It is assembled the way the graph builders it derives from are: Build
// creates the graph, resolves options into an immutable config and applies
// Constructors in order. Activities must run before Participants so that
// every preference key can be resolved against the catalog.
//
// Determinism: vertices and edges are added in input order, so identical
// inputs give an identical graph and, through flow.MinCostFlow, identical
// flows.
//
// Errors:
//
//	ErrUnknownActivity       - a preference names no declared activity.
//	ErrActivitiesFirst       - Participants ran before Activities.
//	ErrDuplicateActivity     - an activity key is declared twice.
//	ErrDuplicateParticipant  - a participant appears twice in one phase.
//	ErrNegativeUnits         - a demand asks for fewer than zero units.
//	ErrNilConstructor        - a nil Constructor was passed to Build.
package network
