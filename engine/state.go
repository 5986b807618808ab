// SPDX-License-Identifier: MIT

package engine

import "fmt"

// State is the position of an Engine in its run.
type State int

const (
	Unstarted State = iota
	Phase1Done
	Phase2Done
	Terminal
	Failed
)

func (s State) String() string {
	switch s {
	case Unstarted:
		return "unstarted"
	case Phase1Done:
		return "phase1_done"
	case Phase2Done:
		return "phase2_done"
	case Terminal:
		return "terminal"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Phase identifies one solve of the run.
type Phase int

const (
	PhaseOne Phase = iota + 1
	PhaseTwo
	PhaseSinglePass
)

func (p Phase) String() string {
	switch p {
	case PhaseOne:
		return "phase1"
	case PhaseTwo:
		return "phase2"
	case PhaseSinglePass:
		return "single_pass"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Policy selects which phases make up a run.
type Policy int

const (
	// TwoPhase runs Phase1 then Phase2.
	TwoPhase Policy = iota

	// SinglePassPolicy runs one all-at-once solve with graduated costs.
	SinglePassPolicy
)

func (p Policy) String() string {
	switch p {
	case TwoPhase:
		return "two_phase"
	case SinglePassPolicy:
		return "single_pass"
	default:
		return fmt.Sprintf("policy(%d)", int(p))
	}
}

// ParsePolicy accepts "two_phase" and "single_pass".
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "two_phase":
		return TwoPhase, nil
	case "single_pass":
		return SinglePassPolicy, nil
	default:
		return 0, fmt.Errorf("engine: unknown policy %q", s)
	}
}
