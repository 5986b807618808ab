// SPDX-License-Identifier: MIT

package network

import (
	"fmt"

	"github.com/katalvlaran/rosterflow/core"
	"github.com/katalvlaran/rosterflow/model"
)

// Fixed vertex IDs of the two synthetic endpoints.
const (
	Source = "source"
	Sink   = "sink"
)

// ParticipantVertex is the vertex ID of a participant.
func ParticipantVertex(id model.ParticipantID) string { return "p:" + string(id) }

// ActivityVertex is the vertex ID of an activity.
func ActivityVertex(k model.ActivityKey) string { return "a:" + string(k) }

// Demand is one participant's share of a phase: how many units it asks for
// and the preference list (rank 1 first) its edges are drawn from.
type Demand struct {
	Participant model.ParticipantID
	Units       int
	Preferences []model.ActivityKey
}

// PreferenceEdge records one participant→activity edge of the network.
type PreferenceEdge struct {
	EdgeID      string
	Participant model.ParticipantID
	Activity    model.ActivityKey
	Rank        int
	Cost        int64
}

// Network is a built flow network plus the bookkeeping needed to decode a
// flow back into assignments.
type Network struct {
	Graph  *core.Graph
	Source string
	Sink   string

	catalog      map[model.ActivityKey]int // declared key → capacity
	activities   bool
	participants map[model.ParticipantID]struct{}
	prefEdges    []PreferenceEdge
	demand       int64
	supply       int64
}

// Constructor mutates the network under construction.
type Constructor func(n *Network, cfg config) error

// Build creates an empty network with source and sink, resolves opts, and
// applies every constructor in order. The first constructor error is
// returned wrapped as "network.Build: %w".
//
// Complexity: O(V + E) over the constructors' output.
func Build(opts []Option, cons ...Constructor) (*Network, error) {
	n := &Network{
		Graph:        core.NewGraph(),
		Source:       Source,
		Sink:         Sink,
		catalog:      make(map[model.ActivityKey]int),
		participants: make(map[model.ParticipantID]struct{}),
	}
	if err := n.Graph.AddVertex(Source); err != nil {
		return nil, fmt.Errorf("network.Build: %w", err)
	}
	if err := n.Graph.AddVertex(Sink); err != nil {
		return nil, fmt.Errorf("network.Build: %w", err)
	}

	cfg := newConfig(opts...)
	for i, fn := range cons {
		if fn == nil {
			return nil, fmt.Errorf("network.Build: constructor %d: %w", i, ErrNilConstructor)
		}
		if err := fn(n, cfg); err != nil {
			return nil, fmt.Errorf("network.Build: %w", err)
		}
	}

	return n, nil
}

// Activities declares the activity catalog. Every key becomes resolvable;
// only activities with capacity > 0 get a vertex and an edge to the sink.
func Activities(acts []model.Activity) Constructor {
	return func(n *Network, _ config) error {
		for _, a := range acts {
			if err := a.Validate(); err != nil {
				return err
			}
			if _, dup := n.catalog[a.Key]; dup {
				return fmt.Errorf("%w: %q", ErrDuplicateActivity, a.Key)
			}
			n.catalog[a.Key] = a.Capacity
			if a.Capacity == 0 {
				continue
			}
			if _, err := n.Graph.AddEdge(ActivityVertex(a.Key), Sink, int64(a.Capacity), 0); err != nil {
				return fmt.Errorf("activity %q: %w", a.Key, err)
			}
			n.supply += int64(a.Capacity)
		}
		n.activities = true

		return nil
	}
}

// Participants adds one vertex per demand with Units > 0, its source edge,
// and an edge to each preferred activity that still has capacity, costed by
// cfg's schedule at the preference's rank in d.Preferences.
//
// Every preference key is resolved first, so an unknown key fails the build
// before any of that participant's edges are added.
func Participants(demands []Demand) Constructor {
	return func(n *Network, cfg config) error {
		if !n.activities {
			return ErrActivitiesFirst
		}
		for _, d := range demands {
			if d.Units < 0 {
				return fmt.Errorf("participant %s: units=%d: %w", d.Participant, d.Units, ErrNegativeUnits)
			}
			for _, k := range d.Preferences {
				if _, ok := n.catalog[k]; !ok {
					return fmt.Errorf("participant %s: preference %q: %w", d.Participant, k, ErrUnknownActivity)
				}
			}
			if _, dup := n.participants[d.Participant]; dup {
				return fmt.Errorf("%w: %s", ErrDuplicateParticipant, d.Participant)
			}
			n.participants[d.Participant] = struct{}{}
			if d.Units == 0 {
				continue
			}

			pv := ParticipantVertex(d.Participant)
			if _, err := n.Graph.AddEdge(Source, pv, int64(d.Units), 0); err != nil {
				return fmt.Errorf("participant %s: %w", d.Participant, err)
			}
			n.demand += int64(d.Units)

			for i, k := range d.Preferences {
				if n.catalog[k] == 0 {
					continue // exhausted; no vertex this phase
				}
				rank := i + 1
				c := cfg.schedule(rank)
				eid, err := n.Graph.AddEdge(pv, ActivityVertex(k), 1, c)
				if err != nil {
					return fmt.Errorf("participant %s: preference %q: %w", d.Participant, k, err)
				}
				n.prefEdges = append(n.prefEdges, PreferenceEdge{
					EdgeID:      eid,
					Participant: d.Participant,
					Activity:    k,
					Rank:        rank,
					Cost:        c,
				})
			}
		}

		return nil
	}
}

// Demand is the total capacity leaving the source.
func (n *Network) Demand() int64 { return n.demand }

// Supply is the total capacity entering the sink.
func (n *Network) Supply() int64 { return n.supply }

// PreferenceEdges returns the participant→activity edges in build order.
func (n *Network) PreferenceEdges() []PreferenceEdge {
	return append([]PreferenceEdge(nil), n.prefEdges...)
}

// Decode turns a per-edge flow map into the assignments it encodes, in build
// order. Edges with zero flow are skipped.
func (n *Network) Decode(flows map[string]int64) []model.Assignment {
	var out []model.Assignment
	for _, pe := range n.prefEdges {
		if flows[pe.EdgeID] <= 0 {
			continue
		}
		out = append(out, model.Assignment{
			Participant: pe.Participant,
			Activity:    pe.Activity,
			Rank:        pe.Rank,
			Cost:        pe.Cost,
		})
	}

	return out
}

// ActivityOf maps an activity vertex ID back to its key.
func (n *Network) ActivityOf(vertex string) (model.ActivityKey, bool) {
	if len(vertex) < 2 || vertex[:2] != "a:" {
		return "", false
	}
	k := model.ActivityKey(vertex[2:])
	_, ok := n.catalog[k]

	return k, ok
}

// ParticipantOf maps a participant vertex ID back to its identity.
func (n *Network) ParticipantOf(vertex string) (model.ParticipantID, bool) {
	if len(vertex) < 2 || vertex[:2] != "p:" {
		return "", false
	}
	id := model.ParticipantID(vertex[2:])
	_, ok := n.participants[id]

	return id, ok
}
