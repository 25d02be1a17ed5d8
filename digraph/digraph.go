// SPDX-License-Identifier: MIT
// Package digraph: the DiGraph type, construction and edge lifecycle.

package digraph

import (
	"fmt"
	"sort"
)

// DiGraph is a directed acyclic graph over a fixed, sorted vertex-label set.
//
// The zero value is not usable; construct with New, FromEdgeList or
// FromAdjacencyMatrix. DiGraph is not safe for concurrent mutation; reads
// are safe to share once mutation has stopped (the fit/search contract).
type DiGraph struct {
	labels []string       // sorted vertex labels, immutable after New
	index  map[string]int // label → position in labels
	out    []map[int]struct{}
	in     []map[int]struct{}
	nEdges int
}

// New constructs a graph with the given vertices and no edges.
// Every label must be unique and non-empty; duplicates are rejected.
// The stored label order is sorted lexicographically regardless of input order.
func New(labels ...string) (*DiGraph, error) {
	if len(labels) == 0 {
		return nil, ErrNoVertices
	}

	// Copy and sort the labels to establish the canonical order.
	sorted := make([]string, len(labels))
	copy(sorted, labels)
	sort.Strings(sorted)

	g := &DiGraph{
		labels: sorted,
		index:  make(map[string]int, len(sorted)),
		out:    make([]map[int]struct{}, len(sorted)),
		in:     make([]map[int]struct{}, len(sorted)),
	}
	for i, l := range sorted {
		if l == "" {
			return nil, ErrEmptyLabel
		}
		if _, ok := g.index[l]; ok {
			return nil, fmt.Errorf("label %q: %w", l, ErrDuplicateLabel)
		}
		g.index[l] = i
		g.out[i] = make(map[int]struct{})
		g.in[i] = make(map[int]struct{})
	}

	return g, nil
}

// FromEdgeList constructs a graph from a vertex list and an edge list.
// Edge endpoints must be vertices of the graph; cycles are rejected.
func FromEdgeList(labels []string, edges [][2]string) (*DiGraph, error) {
	g, err := New(labels...)
	if err != nil {
		return nil, err
	}
	for _, e := range edges {
		if err := g.AddEdge(e[0], e[1]); err != nil {
			return nil, err
		}
	}

	return g, nil
}

// Order returns the number of vertices.
func (g *DiGraph) Order() int { return len(g.labels) }

// Size returns the number of edges.
func (g *DiGraph) Size() int { return g.nEdges }

// Labels returns the sorted vertex labels. The returned slice is a copy.
func (g *DiGraph) Labels() []string {
	out := make([]string, len(g.labels))
	copy(out, g.labels)

	return out
}

// Index reports the position of label in the canonical vertex order.
func (g *DiGraph) Index(label string) (int, bool) {
	i, ok := g.index[label]

	return i, ok
}

// Label returns the label at position i in the canonical vertex order.
// It panics if i is out of range (programmer error).
func (g *DiGraph) Label(i int) string { return g.labels[i] }

// HasVertex reports whether label is a vertex of the graph.
func (g *DiGraph) HasVertex(label string) bool {
	_, ok := g.index[label]

	return ok
}

// HasEdge reports whether the directed edge from→to is present.
func (g *DiGraph) HasEdge(from, to string) bool {
	u, ok := g.index[from]
	if !ok {
		return false
	}
	v, ok := g.index[to]
	if !ok {
		return false
	}
	_, ok = g.out[u][v]

	return ok
}

// AddEdge inserts the directed edge from→to.
//
// Errors, in priority order: ErrUnknownVertex if either endpoint is absent,
// ErrSelfLoop if the endpoints coincide, ErrDuplicateEdge if the edge is
// already present, ErrCyclicGraph if insertion would create a directed cycle.
func (g *DiGraph) AddEdge(from, to string) error {
	u, ok := g.index[from]
	if !ok {
		return fmt.Errorf("vertex %q: %w", from, ErrUnknownVertex)
	}
	v, ok := g.index[to]
	if !ok {
		return fmt.Errorf("vertex %q: %w", to, ErrUnknownVertex)
	}
	if u == v {
		return fmt.Errorf("vertex %q: %w", from, ErrSelfLoop)
	}
	if _, ok = g.out[u][v]; ok {
		return fmt.Errorf("edge %q→%q: %w", from, to, ErrDuplicateEdge)
	}
	// A cycle appears iff `from` is already reachable from `to`.
	if g.reaches(v, u) {
		return fmt.Errorf("edge %q→%q: %w", from, to, ErrCyclicGraph)
	}

	g.out[u][v] = struct{}{}
	g.in[v][u] = struct{}{}
	g.nEdges++

	return nil
}

// RemoveEdge deletes the directed edge from→to.
func (g *DiGraph) RemoveEdge(from, to string) error {
	u, ok := g.index[from]
	if !ok {
		return fmt.Errorf("vertex %q: %w", from, ErrUnknownVertex)
	}
	v, ok := g.index[to]
	if !ok {
		return fmt.Errorf("vertex %q: %w", to, ErrUnknownVertex)
	}
	if _, ok = g.out[u][v]; !ok {
		return fmt.Errorf("edge %q→%q: %w", from, to, ErrEdgeNotFound)
	}

	delete(g.out[u], v)
	delete(g.in[v], u)
	g.nEdges--

	return nil
}

// Edges returns every directed edge as a (from, to) pair, sorted
// lexicographically by from-label then to-label. Stable across calls.
func (g *DiGraph) Edges() [][2]string {
	edges := make([][2]string, 0, g.nEdges)
	for u := range g.labels {
		for v := range g.out[u] {
			edges = append(edges, [2]string{g.labels[u], g.labels[v]})
		}
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i][0] != edges[j][0] {
			return edges[i][0] < edges[j][0]
		}

		return edges[i][1] < edges[j][1]
	})

	return edges
}

// Parents returns the sorted labels of the direct predecessors of label.
func (g *DiGraph) Parents(label string) ([]string, error) {
	v, ok := g.index[label]
	if !ok {
		return nil, fmt.Errorf("vertex %q: %w", label, ErrUnknownVertex)
	}

	return g.toLabels(g.in[v]), nil
}

// Children returns the sorted labels of the direct successors of label.
func (g *DiGraph) Children(label string) ([]string, error) {
	v, ok := g.index[label]
	if !ok {
		return nil, fmt.Errorf("vertex %q: %w", label, ErrUnknownVertex)
	}

	return g.toLabels(g.out[v]), nil
}

// Clone returns an independent deep copy of the graph.
func (g *DiGraph) Clone() *DiGraph {
	c := &DiGraph{
		labels: g.labels, // immutable, shared
		index:  g.index,  // immutable, shared
		out:    make([]map[int]struct{}, len(g.out)),
		in:     make([]map[int]struct{}, len(g.in)),
		nEdges: g.nEdges,
	}
	for i := range g.out {
		c.out[i] = make(map[int]struct{}, len(g.out[i]))
		for v := range g.out[i] {
			c.out[i][v] = struct{}{}
		}
		c.in[i] = make(map[int]struct{}, len(g.in[i]))
		for v := range g.in[i] {
			c.in[i][v] = struct{}{}
		}
	}

	return c
}

// Equal reports whether g and h have identical vertex sets and edge sets.
func (g *DiGraph) Equal(h *DiGraph) bool {
	if h == nil || len(g.labels) != len(h.labels) || g.nEdges != h.nEdges {
		return false
	}
	for i, l := range g.labels {
		if h.labels[i] != l {
			return false
		}
	}
	for u := range g.out {
		if len(g.out[u]) != len(h.out[u]) {
			return false
		}
		for v := range g.out[u] {
			if _, ok := h.out[u][v]; !ok {
				return false
			}
		}
	}

	return true
}

// parentIdx returns the sorted parent indices of vertex v (internal form).
func (g *DiGraph) parentIdx(v int) []int {
	return sortedKeys(g.in[v])
}

// childIdx returns the sorted child indices of vertex v (internal form).
func (g *DiGraph) childIdx(v int) []int {
	return sortedKeys(g.out[v])
}

// toLabels converts an index set to a sorted label slice.
func (g *DiGraph) toLabels(set map[int]struct{}) []string {
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, g.labels[v])
	}
	sort.Strings(out)

	return out
}

func sortedKeys(set map[int]struct{}) []int {
	out := make([]int, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Ints(out)

	return out
}
