// SPDX-License-Identifier: MIT

package engine

import (
	"time"

	"github.com/katalvlaran/rosterflow/model"
	"github.com/katalvlaran/rosterflow/report"
)

// Result is the terminal output of a run.
type Result struct {
	RunID        string
	Policy       Policy
	Assignments  *model.Assignments
	Phases       []PhaseReport
	Satisfaction report.Summary
	TotalCost    int64
	Duration     time.Duration
}

// Result returns the terminal result, or ErrNotFinished.
func (e *Engine) Result() (*Result, error) {
	if e.state != Terminal || e.result == nil {
		return nil, ErrNotFinished
	}

	return e.result, nil
}
