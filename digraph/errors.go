// SPDX-License-Identifier: MIT
// Package digraph: sentinel error set.
// All operations MUST return these sentinels and tests MUST check them via
// errors.Is. No operation panics on user-triggered error conditions.

package digraph

import "errors"

var (
	// ErrNoVertices indicates construction with an empty vertex-label set.
	ErrNoVertices = errors.New("digraph: no vertices")

	// ErrEmptyLabel indicates a zero-length vertex label at construction.
	ErrEmptyLabel = errors.New("digraph: empty vertex label")

	// ErrDuplicateLabel indicates a repeated vertex label at construction.
	ErrDuplicateLabel = errors.New("digraph: duplicate vertex label")

	// ErrUnknownVertex indicates an operation referenced a label that is not
	// a vertex of the graph.
	ErrUnknownVertex = errors.New("digraph: unknown vertex")

	// ErrSelfLoop indicates an edge whose endpoints coincide.
	ErrSelfLoop = errors.New("digraph: self-loop not allowed")

	// ErrDuplicateEdge indicates insertion of an already-present edge.
	ErrDuplicateEdge = errors.New("digraph: duplicate edge")

	// ErrEdgeNotFound indicates removal of an edge that is not present.
	ErrEdgeNotFound = errors.New("digraph: edge not found")

	// ErrCyclicGraph indicates an insertion that would create a directed
	// cycle; the acyclic discipline rejects it at edge-insertion time.
	ErrCyclicGraph = errors.New("digraph: edge would create a cycle")

	// ErrNotDisjoint indicates a separation query whose X, Y, Z sets overlap.
	ErrNotDisjoint = errors.New("digraph: sets are not disjoint")

	// ErrEmptySet indicates a separation query with an empty X or Y set.
	ErrEmptySet = errors.New("digraph: empty vertex set")

	// ErrShapeMismatch indicates an adjacency matrix whose dimensions do not
	// match the label set.
	ErrShapeMismatch = errors.New("digraph: adjacency shape mismatch")
)
