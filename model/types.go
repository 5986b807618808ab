// SPDX-License-Identifier: MIT

package model

import (
	"fmt"
)

// ParticipantID is the opaque identity of a participant (e.g. an email).
type ParticipantID string

func (id ParticipantID) String() string { return string(id) }

// ActivityKey is the identity of an activity.
type ActivityKey string

func (k ActivityKey) String() string { return string(k) }

// Participant is one person to be placed.
type Participant struct {
	ID   ParticipantID
	Name string

	// Slots is how many activities the participant wants in total (≥ 1).
	Slots int

	// Preferences lists activity keys, most desired first.
	Preferences []ActivityKey
}

// Validate checks identity, slot count and the preference list.
func (p Participant) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("participant %q: %w", p.Name, ErrEmptyID)
	}
	if p.Slots < 1 {
		return fmt.Errorf("participant %s: slots=%d: %w", p.ID, p.Slots, ErrInvalidSlots)
	}
	seen := make(map[ActivityKey]struct{}, len(p.Preferences))
	for i, k := range p.Preferences {
		if k == "" {
			return fmt.Errorf("participant %s: rank %d: %w", p.ID, i+1, ErrEmptyPreference)
		}
		if _, dup := seen[k]; dup {
			return fmt.Errorf("participant %s: %q: %w", p.ID, k, ErrDuplicatePreference)
		}
		seen[k] = struct{}{}
	}

	return nil
}

// Rank returns the 1-based position of key in the preference list.
func (p Participant) Rank(key ActivityKey) (int, bool) {
	for i, k := range p.Preferences {
		if k == key {
			return i + 1, true
		}
	}

	return 0, false
}

// Clone returns a copy whose preference slice is not shared.
func (p Participant) Clone() Participant {
	p.Preferences = append([]ActivityKey(nil), p.Preferences...)
	return p
}

// Without returns a copy with the given keys removed from the preference
// list, keeping the relative order of what remains.
func (p Participant) Without(keys ...ActivityKey) Participant {
	drop := make(map[ActivityKey]struct{}, len(keys))
	for _, k := range keys {
		drop[k] = struct{}{}
	}
	out := p
	out.Preferences = make([]ActivityKey, 0, len(p.Preferences))
	for _, k := range p.Preferences {
		if _, ok := drop[k]; !ok {
			out.Preferences = append(out.Preferences, k)
		}
	}

	return out
}

func (p Participant) String() string {
	return fmt.Sprintf("%s [%s] (%d slots): %v", p.Name, p.ID, p.Slots, p.Preferences)
}

// Activity is a capacity-limited offering. Capacity is the remaining number of
// seats; the engine decrements its own copy between phases.
type Activity struct {
	Key      ActivityKey
	Capacity int
}

// Validate checks the key and capacity.
func (a Activity) Validate() error {
	if a.Key == "" {
		return fmt.Errorf("activity: %w", ErrEmptyID)
	}
	if a.Capacity < 0 {
		return fmt.Errorf("activity %s: capacity=%d: %w", a.Key, a.Capacity, ErrInvalidCapacity)
	}

	return nil
}

func (a Activity) String() string {
	return fmt.Sprintf("%s [max capacity: %d]", a.Key, a.Capacity)
}

// Assignment is one granted (participant, activity) pair as decoded from a
// phase's flow, with the rank it had in the list the phase used and the edge
// cost paid for it.
type Assignment struct {
	Participant ParticipantID
	Activity    ActivityKey
	Rank        int
	Cost        int64
}
