// SPDX-License-Identifier: MIT

package network

import "errors"

// ErrUnknownActivity indicates a preference key that names no declared activity.
var ErrUnknownActivity = errors.New("network: unknown activity")

// ErrActivitiesFirst indicates Participants was applied before Activities.
var ErrActivitiesFirst = errors.New("network: activities must be added before participants")

// ErrDuplicateActivity indicates the same activity key declared twice.
var ErrDuplicateActivity = errors.New("network: duplicate activity")

// ErrDuplicateParticipant indicates a participant listed twice in one build.
var ErrDuplicateParticipant = errors.New("network: duplicate participant")

// ErrNegativeUnits indicates a demand with Units < 0.
var ErrNegativeUnits = errors.New("network: negative demand units")

// ErrNilConstructor indicates a nil Constructor passed to Build.
var ErrNilConstructor = errors.New("network: nil constructor")
