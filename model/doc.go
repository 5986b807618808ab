// SPDX-License-Identifier: MIT

// Package model holds the record types the assignment engine works on:
// participants with ranked preferences and a requested number of slots,
// capacity-limited activities, and the Assignments table that accumulates
// results across phases.
//
// Identity is explicit: ParticipantID and ActivityKey are distinct named
// types, so a participant's display name never doubles as a map key and an
// activity key cannot be passed where a participant is expected.
//
// Validation:
//
//	Participant.Validate  - ErrEmptyID, ErrInvalidSlots, ErrEmptyPreference, ErrDuplicatePreference
//	Activity.Validate     - ErrEmptyID, ErrInvalidCapacity
//
// The Assignments table is not safe for concurrent mutation; the engine owns
// it exclusively for the duration of a run.
package model
