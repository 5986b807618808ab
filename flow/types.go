// SPDX-License-Identifier: MIT

package flow

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// ErrSourceNotFound is returned when the specified source vertex is missing.
var ErrSourceNotFound = fmt.Errorf("flow: %w", errSourceNotFound)
var errSourceNotFound = errors.New("source vertex not found")

// ErrSinkNotFound is returned when the specified sink vertex is missing.
var ErrSinkNotFound = fmt.Errorf("flow: %w", errSinkNotFound)
var errSinkNotFound = errors.New("sink vertex not found")

// ErrInfeasible is matched (errors.Is) by *InfeasibleError: the requested
// demand cannot be routed from source to sink within the edge capacities.
var ErrInfeasible = errors.New("flow: demand exceeds routable capacity")

// ErrNegativeDemand is returned when MinCostFlow is asked for demand < 0.
var ErrNegativeDemand = errors.New("flow: negative demand")

// ErrNegativeCycle is returned when the initial residual network contains a
// negative-cost cycle reachable from the source; no minimum exists then.
var ErrNegativeCycle = errors.New("flow: negative-cost cycle reachable from source")

// maxAbsCost bounds |edge cost| so that path costs (≤ V·maxAbsCost) and
// totals (≤ demand·V·maxAbsCost) stay far from int64 overflow.
const maxAbsCost = int64(1) << 40

// EdgeError is returned when an edge carries a cost outside ±2^40.
type EdgeError struct {
	ID       string
	From, To string
	Cost     int64
}

func (e EdgeError) Error() string {
	return fmt.Sprintf("flow: cost out of range on edge %s %q→%q: %d", e.ID, e.From, e.To, e.Cost)
}

// InfeasibleError reports how much of the requested demand was routed before
// no augmenting path remained.
type InfeasibleError struct {
	Demand int64
	Routed int64
}

func (e *InfeasibleError) Error() string {
	return fmt.Sprintf("flow: demand %d exceeds routable capacity (routed %d, short %d)",
		e.Demand, e.Routed, e.Demand-e.Routed)
}

// Is lets errors.Is(err, ErrInfeasible) match.
func (e *InfeasibleError) Is(target error) bool { return target == ErrInfeasible }

// FlowOptions configures the max-flow and min-cost-flow algorithms.
//   - Ctx: cancellation is checked between augmentations.
//   - Verbose: if true, each augmentation is logged at debug level on Logger.
//   - Logger: defaults to a no-op logger.
//   - LevelRebuildInterval: for Dinic, rebuild level graph every N augmentations.
type FlowOptions struct {
	Ctx                  context.Context
	Verbose              bool
	Logger               *zap.Logger
	LevelRebuildInterval int
}

// DefaultOptions returns production-safe defaults: background context,
// quiet, no-op logger, no forced level rebuilds.
func DefaultOptions() FlowOptions {
	return FlowOptions{
		Ctx:    context.Background(),
		Logger: zap.NewNop(),
	}
}

// normalize fills zero-valued fields with defaults.
func (o *FlowOptions) normalize() {
	if o.Ctx == nil {
		o.Ctx = context.Background()
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
}
