// SPDX-License-Identifier: MIT
// Package digraph: reachability, ancestors/descendants and topological order.

package digraph

import (
	"fmt"
	"sort"
)

// reaches reports whether vertex `to` is reachable from vertex `from` by a
// directed path (forward DFS on internal indices; `from` reaches itself).
func (g *DiGraph) reaches(from, to int) bool {
	if from == to {
		return true
	}
	seen := make([]bool, len(g.labels))
	stack := []int{from}
	seen[from] = true
	for len(stack) > 0 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for w := range g.out[v] {
			if w == to {
				return true
			}
			if !seen[w] {
				seen[w] = true
				stack = append(stack, w)
			}
		}
	}

	return false
}

// Descendants returns the sorted labels of every vertex reachable from label
// by a directed path, label itself excluded.
func (g *DiGraph) Descendants(label string) ([]string, error) {
	v, ok := g.index[label]
	if !ok {
		return nil, fmt.Errorf("vertex %q: %w", label, ErrUnknownVertex)
	}

	return g.toLabels(g.closure(v, g.out)), nil
}

// Ancestors returns the sorted labels of every vertex from which label is
// reachable by a directed path, label itself excluded.
func (g *DiGraph) Ancestors(label string) ([]string, error) {
	v, ok := g.index[label]
	if !ok {
		return nil, fmt.Errorf("vertex %q: %w", label, ErrUnknownVertex)
	}

	return g.toLabels(g.closure(v, g.in)), nil
}

// closure computes the transitive closure of root under adj, root excluded.
func (g *DiGraph) closure(root int, adj []map[int]struct{}) map[int]struct{} {
	visited := make(map[int]struct{})
	stack := []int{root}
	for len(stack) > 0 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for w := range adj[v] {
			if _, ok := visited[w]; !ok {
				visited[w] = struct{}{}
				stack = append(stack, w)
			}
		}
	}
	delete(visited, root)

	return visited
}

// ancestralClosure returns roots ∪ all their ancestors, as an index set.
func (g *DiGraph) ancestralClosure(roots map[int]struct{}) map[int]struct{} {
	closed := make(map[int]struct{}, len(roots))
	stack := make([]int, 0, len(roots))
	for v := range roots {
		closed[v] = struct{}{}
		stack = append(stack, v)
	}
	for len(stack) > 0 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for p := range g.in[v] {
			if _, ok := closed[p]; !ok {
				closed[p] = struct{}{}
				stack = append(stack, p)
			}
		}
	}

	return closed
}

// TopologicalOrder returns the vertex labels in a topological order of the
// graph. Ties are broken by label order, so the result is deterministic
// (Kahn's algorithm with an index-ordered frontier).
//
// The acyclic discipline guarantees a total order always exists.
func (g *DiGraph) TopologicalOrder() []string {
	n := len(g.labels)
	indeg := make([]int, n)
	for v := range g.in {
		indeg[v] = len(g.in[v])
	}

	// Frontier of zero in-degree vertices, kept sorted for determinism.
	frontier := make([]int, 0, n)
	for v := 0; v < n; v++ {
		if indeg[v] == 0 {
			frontier = append(frontier, v)
		}
	}

	order := make([]string, 0, n)
	for len(frontier) > 0 {
		// Pop the smallest index (labels are sorted, so smallest label).
		v := frontier[0]
		frontier = frontier[1:]
		order = append(order, g.labels[v])
		released := make([]int, 0, len(g.out[v]))
		for w := range g.out[v] {
			indeg[w]--
			if indeg[w] == 0 {
				released = append(released, w)
			}
		}
		sort.Ints(released)
		frontier = mergeSorted(frontier, released)
	}

	return order
}

// mergeSorted merges two ascending int slices into one ascending slice.
func mergeSorted(a, b []int) []int {
	out := make([]int, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if a[i] <= b[j] {
			out = append(out, a[i])
			i++
		} else {
			out = append(out, b[j])
			j++
		}
	}
	out = append(out, a[i:]...)
	out = append(out, b[j:]...)

	return out
}
