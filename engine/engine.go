// SPDX-License-Identifier: MIT

package engine

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/katalvlaran/rosterflow/cost"
	"github.com/katalvlaran/rosterflow/model"
	"github.com/katalvlaran/rosterflow/network"
)

// Engine carries one assignment run from Unstarted to Terminal.
type Engine struct {
	cfg    settings
	runID  string
	logger *zap.Logger

	original   []model.Participant // as given, for statistics
	remaining  []model.Participant // preferences narrowed by phase 1
	activities []model.Activity    // remaining capacities
	index      map[model.ParticipantID]int

	table   *model.Assignments
	state   State
	reports []PhaseReport
	started time.Time
	err     error
	result  *Result
}

// New validates the inputs and returns an Engine in state Unstarted. Inputs
// are deep-copied; later changes by the caller do not affect the run.
//
// Checks, all reported as *ConfigurationError:
//  1. Each record is valid (model.Participant.Validate, model.Activity.Validate).
//  2. Participant IDs and activity keys are unique.
//  3. Every preference key names a declared activity.
//  4. Under TwoPhase, every participant ranks at least TopChoices activities.
//  5. Every schedule of the policy is non-negative and non-decreasing over
//     the longest preference list.
func New(participants []model.Participant, activities []model.Activity, opts ...Option) (*Engine, error) {
	cfg := newSettings(opts...)
	e := &Engine{
		cfg:   cfg,
		runID: cfg.runID,
		index: make(map[model.ParticipantID]int, len(participants)),
	}
	if e.runID == "" {
		e.runID = uuid.NewString()
	}
	e.logger = cfg.logger.With(zap.String("run_id", e.runID), zap.Stringer("policy", cfg.policy))
	if e.cfg.flowOpts.Logger == nil {
		e.cfg.flowOpts.Logger = e.logger
	}

	// 1–2) Activities
	keys := make([]model.ActivityKey, 0, len(activities))
	declared := make(map[model.ActivityKey]struct{}, len(activities))
	for _, a := range activities {
		if err := a.Validate(); err != nil {
			return nil, &ConfigurationError{Activity: a.Key, Err: err}
		}
		if _, dup := declared[a.Key]; dup {
			return nil, &ConfigurationError{Activity: a.Key, Err: network.ErrDuplicateActivity}
		}
		declared[a.Key] = struct{}{}
		keys = append(keys, a.Key)
		e.activities = append(e.activities, a)
	}

	// 1–4) Participants
	longest := 0
	for i, p := range participants {
		if err := p.Validate(); err != nil {
			return nil, &ConfigurationError{Participant: p.ID, Err: err}
		}
		if _, dup := e.index[p.ID]; dup {
			return nil, &ConfigurationError{Participant: p.ID, Err: network.ErrDuplicateParticipant}
		}
		for _, k := range p.Preferences {
			if _, ok := declared[k]; !ok {
				return nil, &ConfigurationError{Participant: p.ID, Activity: k, Err: network.ErrUnknownActivity}
			}
		}
		if cfg.policy == TwoPhase && len(p.Preferences) < cfg.topChoices {
			return nil, &ConfigurationError{
				Participant: p.ID,
				Err:         fmt.Errorf("%w: has %d, phase 1 requires %d", ErrTooFewPreferences, len(p.Preferences), cfg.topChoices),
			}
		}
		if len(p.Preferences) > longest {
			longest = len(p.Preferences)
		}
		e.index[p.ID] = i
		e.original = append(e.original, p.Clone())
		e.remaining = append(e.remaining, p.Clone())
	}

	// 5) Schedules
	for _, s := range e.schedules() {
		if err := cost.Validate(s, longest); err != nil {
			return nil, &ConfigurationError{Err: err}
		}
	}
	if e.cfg.policy == TwoPhase {
		if err := cost.ValidateStrict(e.cfg.phase1, e.cfg.topChoices); err != nil {
			return nil, &ConfigurationError{Phase: PhaseOne, Err: err}
		}
	}

	e.table = model.NewAssignments(keys...)
	e.logger.Info("engine ready",
		zap.Int("participants", len(e.original)),
		zap.Int("activities", len(e.activities)))

	return e, nil
}

func (e *Engine) schedules() []cost.Schedule {
	if e.cfg.policy == SinglePassPolicy {
		return []cost.Schedule{e.cfg.singlePass}
	}

	return []cost.Schedule{e.cfg.phase1, e.cfg.phase2}
}

// RunID identifies this run in logs and results.
func (e *Engine) RunID() string { return e.runID }

// State returns the current state.
func (e *Engine) State() State { return e.state }

// Policy returns the configured policy.
func (e *Engine) Policy() Policy { return e.cfg.policy }

// Err returns the error that moved the engine to Failed, if any.
func (e *Engine) Err() error { return e.err }

// Capacity returns the remaining capacity of key.
func (e *Engine) Capacity(key model.ActivityKey) (int, bool) {
	for _, a := range e.activities {
		if a.Key == key {
			return a.Capacity, true
		}
	}

	return 0, false
}

// Remaining returns a copy of the preferences still on offer for id.
func (e *Engine) Remaining(id model.ParticipantID) ([]model.ActivityKey, bool) {
	i, ok := e.index[id]
	if !ok {
		return nil, false
	}

	return append([]model.ActivityKey(nil), e.remaining[i].Preferences...), true
}

// Assignments returns a copy of the table as committed so far.
func (e *Engine) Assignments() *model.Assignments { return e.table.Clone() }

// Reports returns the reports of the committed phases.
func (e *Engine) Reports() []PhaseReport { return append([]PhaseReport(nil), e.reports...) }
