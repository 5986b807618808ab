// SPDX-License-Identifier: MIT

package model

import "errors"

var (
	// ErrEmptyID indicates a participant ID or activity key is empty.
	ErrEmptyID = errors.New("model: empty identity")

	// ErrInvalidSlots indicates a participant requested fewer than one slot.
	ErrInvalidSlots = errors.New("model: requested slots must be positive")

	// ErrEmptyPreference indicates an empty key inside a preference list.
	ErrEmptyPreference = errors.New("model: empty preference key")

	// ErrDuplicatePreference indicates the same key ranked twice by one participant.
	ErrDuplicatePreference = errors.New("model: duplicate preference key")

	// ErrInvalidCapacity indicates a negative activity capacity.
	ErrInvalidCapacity = errors.New("model: capacity must be non-negative")
)
