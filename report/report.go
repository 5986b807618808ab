// SPDX-License-Identifier: MIT

// Package report derives satisfaction statistics from a finished assignment
// table.
package report

import (
	"fmt"

	"github.com/katalvlaran/rosterflow/model"
)

// RankStat is how many participants were placed in their rank-th choice.
type RankStat struct {
	Rank  int
	Count int
	Total int
}

// Fraction is Count/Total, or 0 for an empty population.
func (r RankStat) Fraction() float64 {
	if r.Total == 0 {
		return 0
	}

	return float64(r.Count) / float64(r.Total)
}

// Summary holds one RankStat per rank 1..N.
type Summary struct {
	Ranks []RankStat
}

// Satisfaction counts, for each rank r in 1..topN, the participants whose
// rank-r preference lists them under that activity in table. A participant
// with several slots can count toward several ranks.
//
// Complexity: O(P · topN · L) where L is the longest activity list.
func Satisfaction(participants []model.Participant, table *model.Assignments, topN int) Summary {
	s := Summary{Ranks: make([]RankStat, topN)}
	for i := range s.Ranks {
		s.Ranks[i] = RankStat{Rank: i + 1, Total: len(participants)}
	}
	for _, p := range participants {
		for i, k := range p.Preferences {
			if i >= topN {
				break
			}
			if table.Contains(k, p.ID) {
				s.Ranks[i].Count++
			}
		}
	}

	return s
}

// Lines renders the summary one rank per line, e.g.
// "Participants who got their 1st choice: 3/4 (75.00%)".
func (s Summary) Lines() []string {
	out := make([]string, 0, len(s.Ranks))
	for _, r := range s.Ranks {
		out = append(out, fmt.Sprintf("Participants who got their %s choice: %d/%d (%.2f%%)",
			Ordinal(r.Rank), r.Count, r.Total, r.Fraction()*100))
	}

	return out
}

// Ordinal renders 1 → "1st", 2 → "2nd", 11 → "11th", 23 → "23rd".
func Ordinal(n int) string {
	suffix := "th"
	switch n % 100 {
	case 11, 12, 13:
	default:
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}

	return fmt.Sprintf("%d%s", n, suffix)
}

// TotalCost sums the edge cost of every assignment.
func TotalCost(as []model.Assignment) int64 {
	var c int64
	for _, a := range as {
		c += a.Cost
	}

	return c
}

// Occupancy returns the number of placements per activity.
func Occupancy(table *model.Assignments) map[model.ActivityKey]int {
	out := make(map[model.ActivityKey]int)
	for _, k := range table.Keys() {
		out[k] = table.Count(k)
	}

	return out
}
