// SPDX-License-Identifier: MIT

// Package cost maps preference ranks to edge costs.
//
// A Schedule is injected into the network builder per phase, so the engine
// never hard-codes a penalty table. Two schedules are built in:
//
//	Linear     rank → rank            (1, 2, 3, ...)
//	Graduated  0, 2, 5, 15, 25, 30, 35, 40, 45; ranks past 9 cost 45
//
// Table builds a schedule from an explicit enumeration, e.g. one loaded from
// configuration.
package cost

import (
	"errors"
	"fmt"
)

// Sentinel errors for schedule checks.
var (
	// ErrBadSchedule indicates a schedule that is negative or decreasing.
	ErrBadSchedule = errors.New("cost: schedule must be non-negative and non-decreasing")

	// ErrFlatSchedule indicates two ranks that cost the same where every rank
	// must cost more than the one before it.
	ErrFlatSchedule = errors.New("cost: schedule must be strictly increasing")
)

// Schedule returns the cost of a 1-based preference rank.
type Schedule func(rank int) int64

// graduated is the rank-penalty table of the single-pass policy.
var graduated = []int64{0, 2, 5, 15, 25, 30, 35, 40, 45}

// Linear charges the rank itself.
func Linear() Schedule {
	return func(rank int) int64 { return int64(rank) }
}

// Graduated returns the nonlinear single-pass schedule.
func Graduated() Schedule {
	return Table(graduated...)
}

// Table returns a schedule that charges costs[rank-1], clamping ranks past
// the end to the last entry. Panics on an empty, negative or decreasing
// enumeration; callers holding untrusted input should check it with
// CheckTable first.
func Table(costs ...int64) Schedule {
	if err := CheckTable(costs); err != nil {
		panic(err.Error())
	}
	t := append([]int64(nil), costs...)

	return func(rank int) int64 {
		switch {
		case rank < 1:
			return t[0]
		case rank > len(t):
			return t[len(t)-1]
		default:
			return t[rank-1]
		}
	}
}

// CheckTable reports whether costs is usable by Table.
func CheckTable(costs []int64) error {
	if len(costs) == 0 {
		return fmt.Errorf("%w: empty table", ErrBadSchedule)
	}
	for i, c := range costs {
		if c < 0 {
			return fmt.Errorf("%w: rank %d costs %d", ErrBadSchedule, i+1, c)
		}
		if i > 0 && c < costs[i-1] {
			return fmt.Errorf("%w: rank %d costs %d < %d", ErrBadSchedule, i+1, c, costs[i-1])
		}
	}

	return nil
}

// Validate evaluates s for ranks 1..upTo and checks it is non-negative and
// non-decreasing. A nil schedule is rejected.
func Validate(s Schedule, upTo int) error {
	if s == nil {
		return fmt.Errorf("%w: nil schedule", ErrBadSchedule)
	}
	prev := int64(0)
	for r := 1; r <= upTo; r++ {
		c := s(r)
		if c < 0 || c < prev {
			return fmt.Errorf("%w: rank %d costs %d", ErrBadSchedule, r, c)
		}
		prev = c
	}

	return nil
}

// ValidateStrict is Validate plus a strictly increasing requirement over
// ranks 1..upTo. Phase 1 needs it: equal costs there would make a first and a
// third choice interchangeable.
func ValidateStrict(s Schedule, upTo int) error {
	if err := Validate(s, upTo); err != nil {
		return err
	}
	for r := 2; r <= upTo; r++ {
		if prev, c := s(r-1), s(r); c <= prev {
			return fmt.Errorf("%w: rank %d costs %d, rank %d costs %d", ErrFlatSchedule, r-1, prev, r, c)
		}
	}

	return nil
}
