// SPDX-License-Identifier: MIT

package model

// Assignments maps each activity to the participants placed in it, in the
// order they were added. Activity order is the declaration order given to
// NewAssignments, followed by any key first seen by Add.
type Assignments struct {
	order []ActivityKey
	lists map[ActivityKey][]ParticipantID
}

// NewAssignments returns an empty table with one (empty) column per key.
func NewAssignments(keys ...ActivityKey) *Assignments {
	t := &Assignments{lists: make(map[ActivityKey][]ParticipantID, len(keys))}
	for _, k := range keys {
		t.ensure(k)
	}

	return t
}

func (t *Assignments) ensure(k ActivityKey) {
	if _, ok := t.lists[k]; !ok {
		t.lists[k] = []ParticipantID{}
		t.order = append(t.order, k)
	}
}

// Add appends id to the list of activity k.
func (t *Assignments) Add(k ActivityKey, id ParticipantID) {
	t.ensure(k)
	t.lists[k] = append(t.lists[k], id)
}

// Participants returns a copy of the list for k (nil if k is unknown).
func (t *Assignments) Participants(k ActivityKey) []ParticipantID {
	l, ok := t.lists[k]
	if !ok {
		return nil
	}

	return append([]ParticipantID{}, l...)
}

// Contains reports whether id is placed in k.
func (t *Assignments) Contains(k ActivityKey, id ParticipantID) bool {
	for _, x := range t.lists[k] {
		if x == id {
			return true
		}
	}

	return false
}

// Count is the number of placements in k.
func (t *Assignments) Count(k ActivityKey) int { return len(t.lists[k]) }

// CountFor is the number of activities id is placed in.
func (t *Assignments) CountFor(id ParticipantID) int {
	n := 0
	for _, k := range t.order {
		for _, x := range t.lists[k] {
			if x == id {
				n++
			}
		}
	}

	return n
}

// Keys returns the activity keys in table order.
func (t *Assignments) Keys() []ActivityKey {
	return append([]ActivityKey{}, t.order...)
}

// Len is the total number of placements.
func (t *Assignments) Len() int {
	n := 0
	for _, l := range t.lists {
		n += len(l)
	}

	return n
}

// Clone returns a deep copy.
func (t *Assignments) Clone() *Assignments {
	c := NewAssignments(t.order...)
	for k, l := range t.lists {
		c.lists[k] = append(c.lists[k], l...)
	}

	return c
}

// Merge appends every placement of other, column by column in other's order.
func (t *Assignments) Merge(other *Assignments) {
	for _, k := range other.order {
		t.ensure(k)
		t.lists[k] = append(t.lists[k], other.lists[k]...)
	}
}

// AddAll records every assignment in order.
func (t *Assignments) AddAll(as []Assignment) {
	for _, a := range as {
		t.Add(a.Activity, a.Participant)
	}
}
