// SPDX-License-Identifier: MIT

package engine_test

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/rosterflow/engine"
	"github.com/katalvlaran/rosterflow/model"
	"github.com/katalvlaran/rosterflow/report"
)

var activityKeys = keys("X", "Y", "Z")

// randomInstance draws ≤6 participants over 3 activities; every participant
// ranks all three in random order.
func randomInstance(r *rand.Rand) ([]model.Participant, []model.Activity) {
	var acts []model.Activity
	for _, k := range activityKeys {
		acts = append(acts, model.Activity{Key: k, Capacity: r.Intn(5)})
	}
	n := 1 + r.Intn(6)
	ps := make([]model.Participant, 0, n)
	for i := 0; i < n; i++ {
		perm := r.Perm(len(activityKeys))
		prefs := make([]model.ActivityKey, len(perm))
		for j, idx := range perm {
			prefs[j] = activityKeys[idx]
		}
		ps = append(ps, model.Participant{
			ID:          model.ParticipantID(fmt.Sprintf("p%d", i)),
			Slots:       1 + r.Intn(3),
			Preferences: prefs,
		})
	}

	return ps, acts
}

// bruteForce returns the minimum total cost of giving participant i exactly
// units[i] distinct activities, where costs[i][a] < 0 forbids activity a.
func bruteForce(units []int, costs [][]int64, caps []int) (int64, bool) {
	best := int64(math.MaxInt64)
	used := make([]int, len(caps))
	var rec func(i int, acc int64)
	rec = func(i int, acc int64) {
		if i == len(units) {
			if acc < best {
				best = acc
			}
			return
		}
		for mask := 0; mask < 1<<len(caps); mask++ {
			n, c, ok := 0, int64(0), true
			for a := range caps {
				if mask&(1<<a) == 0 {
					continue
				}
				if costs[i][a] < 0 || used[a] >= caps[a] {
					ok = false
					break
				}
				n++
				c += costs[i][a]
			}
			if !ok || n != units[i] {
				continue
			}
			for a := range caps {
				if mask&(1<<a) != 0 {
					used[a]++
				}
			}
			rec(i+1, acc+c)
			for a := range caps {
				if mask&(1<<a) != 0 {
					used[a]--
				}
			}
		}
	}
	rec(0, 0)

	return best, best != math.MaxInt64
}

func keyIndex(k model.ActivityKey) int {
	for i, x := range activityKeys {
		if x == k {
			return i
		}
	}
	return -1
}

// costRows prices each participant's list: rank r costs r (linear schedule).
func costRows(lists [][]model.ActivityKey) [][]int64 {
	rows := make([][]int64, len(lists))
	for i, l := range lists {
		row := []int64{-1, -1, -1}
		for r, k := range l {
			row[keyIndex(k)] = int64(r + 1)
		}
		rows[i] = row
	}
	return rows
}

// TestPhasesAreOptimal compares both phases with exhaustive enumeration.
func TestPhasesAreOptimal(t *testing.T) {
	r := rand.New(rand.NewSource(20250201))
	ctx := context.Background()
	solved := 0
	for trial := 0; trial < 300; trial++ {
		ps, acts := randomInstance(r)
		e, err := engine.New(ps, acts)
		require.NoError(t, err)

		// Phase 1: one unit each over the top three.
		units := make([]int, len(ps))
		lists := make([][]model.ActivityKey, len(ps))
		caps := make([]int, len(acts))
		for i, p := range ps {
			units[i] = 1
			lists[i] = p.Preferences[:3]
		}
		for i, a := range acts {
			caps[i] = a.Capacity
		}
		want, feasible := bruteForce(units, costRows(lists), caps)

		rep, err := e.Phase1(ctx)
		if !feasible {
			require.ErrorIs(t, err, engine.ErrInfeasibleAssignment, "trial %d", trial)
			continue
		}
		require.NoError(t, err, "trial %d", trial)
		require.Equal(t, want, rep.Cost, "trial %d phase 1", trial)

		// Phase 2: extra slots over remaining lists and capacities.
		units, lists = units[:0], lists[:0]
		for _, p := range ps {
			if p.Slots > 1 {
				rem, _ := e.Remaining(p.ID)
				units = append(units, p.Slots-1)
				lists = append(lists, rem)
			}
		}
		for i, a := range acts {
			caps[i], _ = e.Capacity(a.Key)
		}
		want, feasible = bruteForce(units, costRows(lists), caps)

		rep, err = e.Phase2(ctx)
		if !feasible {
			require.ErrorIs(t, err, engine.ErrInfeasibleAssignment, "trial %d", trial)
			continue
		}
		require.NoError(t, err, "trial %d", trial)
		require.Equal(t, want, rep.Cost, "trial %d phase 2", trial)
		solved++
	}
	require.Positive(t, solved)
}

// TestRunInvariants checks capacity, demand and preference validity on every
// successful random run.
func TestRunInvariants(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for trial := 0; trial < 300; trial++ {
		ps, acts := randomInstance(r)
		e, err := engine.New(ps, acts)
		require.NoError(t, err)
		res, err := e.Run(context.Background())
		if err != nil {
			require.ErrorIs(t, err, engine.ErrInfeasibleAssignment)
			continue
		}
		tbl := res.Assignments

		for _, a := range acts {
			require.LessOrEqual(t, tbl.Count(a.Key), a.Capacity, "capacity of %s", a.Key)
		}
		for _, p := range ps {
			require.LessOrEqual(t, tbl.CountFor(p.ID), p.Slots, "demand of %s", p.ID)
			for _, k := range tbl.Keys() {
				seen := 0
				for _, id := range tbl.Participants(k) {
					if id == p.ID {
						seen++
					}
				}
				require.LessOrEqual(t, seen, 1, "%s twice in %s", p.ID, k)
			}
		}

		byID := make(map[model.ParticipantID]model.Participant, len(ps))
		for _, p := range ps {
			byID[p.ID] = p
		}
		for _, a := range res.Phases[0].Assignments {
			rank, ok := byID[a.Participant].Rank(a.Activity)
			require.True(t, ok)
			require.LessOrEqual(t, rank, 3, "phase 1 is limited to the top three")
		}
		for _, a := range res.Phases[1].Assignments {
			_, ok := byID[a.Participant].Rank(a.Activity)
			require.True(t, ok)
			require.Greater(t, byID[a.Participant].Slots, 1, "phase 2 only serves multi-slot participants")
		}
	}
}

// TestDeterminism re-runs identical input.
func TestDeterminism(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	for trial := 0; trial < 50; trial++ {
		ps, acts := randomInstance(r)
		run := func() (*engine.Result, error) {
			e, err := engine.New(ps, acts, engine.WithRunID("fixed"))
			require.NoError(t, err)
			return e.Run(context.Background())
		}
		a, errA := run()
		b, errB := run()
		if errA != nil {
			require.Equal(t, errA.Error(), errB.Error())
			continue
		}
		require.NoError(t, errB)
		require.Equal(t, a.TotalCost, b.TotalCost)
		require.Equal(t, report.Occupancy(a.Assignments), report.Occupancy(b.Assignments))
		require.Equal(t, a.Assignments, b.Assignments)
	}
}
