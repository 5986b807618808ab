// SPDX-License-Identifier: MIT

package engine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/katalvlaran/rosterflow/model"
)

var (
	// ErrConfiguration is matched by every *ConfigurationError.
	ErrConfiguration = errors.New("engine: configuration error")

	// ErrInfeasibleAssignment is matched by every *InfeasibleError.
	ErrInfeasibleAssignment = errors.New("engine: infeasible assignment")

	// ErrInvalidState indicates an operation not allowed in the current state.
	ErrInvalidState = errors.New("engine: invalid state")

	// ErrPolicyConflict indicates a phase that belongs to the other policy.
	ErrPolicyConflict = errors.New("engine: phase not part of configured policy")

	// ErrNotFinished indicates Result was requested before Terminal.
	ErrNotFinished = errors.New("engine: run not finished")

	// ErrTooFewPreferences indicates a participant ranking fewer activities
	// than phase 1 offers.
	ErrTooFewPreferences = errors.New("engine: too few preferences")
)

// ConfigurationError reports input that can never be solved as given. It is
// detected before any network is solved.
type ConfigurationError struct {
	Phase       Phase // zero when raised by New
	Participant model.ParticipantID
	Activity    model.ActivityKey
	Err         error
}

func (e *ConfigurationError) Error() string {
	var b strings.Builder
	b.WriteString("engine: configuration error")
	if e.Phase != 0 {
		fmt.Fprintf(&b, " in %s", e.Phase)
	}
	if e.Participant != "" {
		fmt.Fprintf(&b, ": participant %s", e.Participant)
	}
	if e.Activity != "" {
		fmt.Fprintf(&b, ": activity %q", e.Activity)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}

	return b.String()
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrConfiguration) match.
func (e *ConfigurationError) Is(target error) bool { return target == ErrConfiguration }

// InfeasibleError reports a phase whose demand cannot be routed.
type InfeasibleError struct {
	Phase Phase

	// Demand is the units the phase had to route; MaxFlow is the most the
	// network could route; Shortfall = Demand − MaxFlow.
	Demand    int64
	MaxFlow   int64
	Shortfall int64

	// Saturated lists the activities on the source side of the minimum cut:
	// all of their seats are taken in every maximum flow.
	Saturated []model.ActivityKey

	// Constrained lists the participants on the source side of the minimum
	// cut, i.e. those competing for the saturated activities or short of
	// acceptable alternatives.
	Constrained []model.ParticipantID

	Err error
}

func (e *InfeasibleError) Error() string {
	msg := fmt.Sprintf("engine: infeasible assignment in %s: demand %d, routable %d, short %d",
		e.Phase, e.Demand, e.MaxFlow, e.Shortfall)
	if len(e.Saturated) > 0 {
		keys := make([]string, len(e.Saturated))
		for i, k := range e.Saturated {
			keys[i] = string(k)
		}
		msg += fmt.Sprintf(" (full: %s)", strings.Join(keys, ", "))
	}

	return msg
}

func (e *InfeasibleError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrInfeasibleAssignment) match.
func (e *InfeasibleError) Is(target error) bool { return target == ErrInfeasibleAssignment }
