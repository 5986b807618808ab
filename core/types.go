// SPDX-License-Identifier: MIT

package core

import (
	"errors"
	"sync"
)

// Sentinel errors for core graph operations.
var (
	// ErrEmptyVertexID indicates that the provided vertex ID is empty.
	ErrEmptyVertexID = errors.New("core: vertex ID is empty")

	// ErrVertexNotFound indicates an operation referenced a non-existent vertex.
	ErrVertexNotFound = errors.New("core: vertex not found")

	// ErrEdgeNotFound indicates an operation referenced a non-existent edge.
	ErrEdgeNotFound = errors.New("core: edge not found")

	// ErrNegativeCapacity indicates AddEdge was called with a capacity below zero.
	ErrNegativeCapacity = errors.New("core: negative edge capacity")

	// ErrLoopNotAllowed indicates a self-loop was attempted when loops are disabled.
	ErrLoopNotAllowed = errors.New("core: self-loop not allowed")

	// ErrMultiEdgeNotAllowed indicates a parallel edge was attempted when multi-edges are disabled.
	ErrMultiEdgeNotAllowed = errors.New("core: multi-edges not allowed")
)

// Vertex represents a node in the network.
type Vertex struct {
	// ID is the unique identifier for this Vertex.
	ID string
}

// Edge is a directed arc From→To with a flow capacity and a per-unit cost.
type Edge struct {
	// ID uniquely identifies this edge in the Graph ("e1", "e2", …).
	ID string

	// From is the tail vertex ID.
	From string

	// To is the head vertex ID.
	To string

	// Capacity is the maximum flow the edge accepts. Never negative.
	Capacity int64

	// Cost is the price of one unit of flow over the edge.
	Cost int64
}

// GraphOption configures behavior of a Graph before creation.
type GraphOption func(g *Graph)

// WithMultiEdges permits parallel edges between the same vertices.
func WithMultiEdges() GraphOption {
	return func(g *Graph) { g.allowMulti = true }
}

// WithLoops permits self-loops (edges from a vertex to itself).
func WithLoops() GraphOption {
	return func(g *Graph) { g.allowLoops = true }
}

// Graph is the directed, capacitated, cost-weighted network.
//
// muVert protects the vertex catalog; muEdgeAdj protects the edge catalog,
// adjacency and pair counters. Lock order is always muVert before muEdgeAdj.
type Graph struct {
	muVert    sync.RWMutex // guards vertices, vertexOrder
	muEdgeAdj sync.RWMutex // guards edges, edgeOrder, adjacency, pairs

	// Configuration flags
	allowMulti bool // allow parallel edges
	allowLoops bool // allow self-loops

	// Storage
	nextEdgeID  uint64             // atomic edge ID generator
	vertices    map[string]*Vertex // vertex ID → Vertex
	vertexOrder []string           // vertex IDs in insertion order
	edges       map[string]*Edge   // edge ID → Edge
	edgeOrder   []string           // edge IDs in insertion order

	// adjacency[from] = outgoing edge IDs in insertion order
	adjacency map[string][]string
	// pairs[from][to] = number of parallel edges from→to
	pairs map[string]map[string]int
}

// NewGraph creates an empty directed Graph with the given options.
// By default, Graph has no loops and no multi-edges.
// Complexity: O(1)
func NewGraph(opts ...GraphOption) *Graph {
	g := &Graph{
		vertices:  make(map[string]*Vertex),
		edges:     make(map[string]*Edge),
		adjacency: make(map[string][]string),
		pairs:     make(map[string]map[string]int),
	}
	// Apply options
	for _, opt := range opts {
		opt(g)
	}

	return g
}

// GraphStats is a read-only snapshot of a graph's shape.
type GraphStats struct {
	AllowsMulti   bool
	AllowsLoops   bool
	VertexCount   int
	EdgeCount     int
	TotalCapacity int64
	TotalCost     int64
}
