// SPDX-License-Identifier: MIT

// Package export turns a finished assignment table into workbook-shaped
// tables for the spreadsheet writer and encodes them deterministically.
//
// A Workbook has one combined sheet, "All Assignments", with one column per
// activity listing display names, followed by one sheet per activity with
// "Name" and "ID" columns. Sheet and column titles are the activity key cut
// at its first " (", so "Salsa (Beginner)" becomes "Salsa". When two keys cut
// to the same title the later one gets a numeric suffix ("Salsa 2").
package export

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/rosterflow/model"
)

// CombinedSheet is the title of the all-activities sheet.
const CombinedSheet = "All Assignments"

// ErrUnknownParticipant indicates a table entry with no matching participant.
var ErrUnknownParticipant = errors.New("export: unknown participant")

// Sheet is one rectangular table; rows may be shorter than Columns.
type Sheet struct {
	Title   string     `yaml:"title"`
	Columns []string   `yaml:"columns"`
	Rows    [][]string `yaml:"rows"`
}

// Workbook is an ordered list of sheets.
type Workbook struct {
	Sheets []Sheet `yaml:"sheets"`
}

// Sheet returns the sheet with the given title.
func (wb *Workbook) Sheet(title string) (Sheet, bool) {
	for _, s := range wb.Sheets {
		if s.Title == title {
			return s, true
		}
	}

	return Sheet{}, false
}

// Title cuts an activity key at its first " (".
func Title(k model.ActivityKey) string {
	s := string(k)
	if i := strings.Index(s, " ("); i >= 0 {
		return s[:i]
	}

	return s
}

// Build lays out table as a Workbook, resolving participant IDs to display
// names through participants.
func Build(table *model.Assignments, participants []model.Participant) (*Workbook, error) {
	byID := make(map[model.ParticipantID]model.Participant, len(participants))
	for _, p := range participants {
		byID[p.ID] = p
	}

	keys := table.Keys()
	combined := Sheet{Title: CombinedSheet, Columns: make([]string, len(keys))}
	perActivity := make([]Sheet, len(keys))
	height := 0

	titles := uniqueTitles(keys)
	for c, k := range keys {
		combined.Columns[c] = titles[c]
		s := Sheet{Title: titles[c], Columns: []string{"Name", "ID"}, Rows: [][]string{}}
		ids := table.Participants(k)
		for _, id := range ids {
			p, ok := byID[id]
			if !ok {
				return nil, fmt.Errorf("%w: %s in %q", ErrUnknownParticipant, id, k)
			}
			s.Rows = append(s.Rows, []string{p.Name, string(p.ID)})
		}
		if len(ids) > height {
			height = len(ids)
		}
		perActivity[c] = s
	}

	// Combined rows are column-major: row r holds the r-th name of each list.
	combined.Rows = make([][]string, height)
	for r := range combined.Rows {
		row := make([]string, len(keys))
		for c := range keys {
			if r < len(perActivity[c].Rows) {
				row[c] = perActivity[c].Rows[r][0]
			}
		}
		combined.Rows[r] = row
	}

	return &Workbook{Sheets: append([]Sheet{combined}, perActivity...)}, nil
}

// uniqueTitles returns one sheet title per key, suffixing " 2", " 3", ...
// onto titles already taken (including CombinedSheet).
func uniqueTitles(keys []model.ActivityKey) []string {
	taken := map[string]bool{CombinedSheet: true}
	out := make([]string, len(keys))
	for i, k := range keys {
		base := Title(k)
		title := base
		for n := 2; taken[title]; n++ {
			title = fmt.Sprintf("%s %d", base, n)
		}
		taken[title] = true
		out[i] = title
	}

	return out
}

// Encode writes wb as YAML. Identical workbooks encode to identical bytes.
func Encode(w io.Writer, wb *Workbook) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(wb); err != nil {
		return fmt.Errorf("export: encode: %w", err)
	}

	return enc.Close()
}

// Decode reads a workbook written by Encode.
func Decode(r io.Reader) (*Workbook, error) {
	var wb Workbook
	if err := yaml.NewDecoder(r).Decode(&wb); err != nil {
		return nil, fmt.Errorf("export: decode: %w", err)
	}

	return &wb, nil
}
