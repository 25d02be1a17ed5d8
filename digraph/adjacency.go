// SPDX-License-Identifier: MIT
// Package digraph: interchange with generic directed-graph representations.
// A labeled adjacency matrix uses 1 at (i, j) to mean an edge row→column;
// labels index rows and columns in the graph's canonical (sorted) order.

package digraph

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// FromAdjacencyMatrix constructs a graph from a label list and a square
// adjacency matrix with 1 meaning an edge row→column. Labels are sorted into
// canonical order first, and matrix rows/columns are interpreted in the
// caller-supplied label order, so the two agree regardless of input order.
// Non-zero off-diagonal entries are treated as edges; the usual acyclic
// discipline applies.
func FromAdjacencyMatrix(labels []string, adjacency mat.Matrix) (*DiGraph, error) {
	r, c := adjacency.Dims()
	if r != c || r != len(labels) {
		return nil, fmt.Errorf("%dx%d matrix for %d labels: %w", r, c, len(labels), ErrShapeMismatch)
	}

	g, err := New(labels...)
	if err != nil {
		return nil, err
	}
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if adjacency.At(i, j) == 0 {
				continue
			}
			if err := g.AddEdge(labels[i], labels[j]); err != nil {
				return nil, err
			}
		}
	}

	return g, nil
}

// AdjacencyMatrix exports the graph as a dense adjacency matrix in canonical
// label order: entry (i, j) is 1 iff the edge Labels()[i]→Labels()[j] exists.
func (g *DiGraph) AdjacencyMatrix() *mat.Dense {
	n := len(g.labels)
	m := mat.NewDense(n, n, nil)
	for u := range g.out {
		for v := range g.out[u] {
			m.Set(u, v, 1)
		}
	}

	return m
}
