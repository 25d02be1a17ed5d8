// SPDX-License-Identifier: MIT
// Package digraph: graphical-separation oracle (d-separation).
//
// IsSeparatorSet implements the moralized-ancestral-graph criterion:
//  1. restrict the graph to the ancestral closure of X ∪ Y ∪ Z,
//  2. moralize — connect the co-parents of every vertex, drop direction,
//  3. test classical undirected separation of X from Y by Z via BFS.
//
// The criterion is exact for arbitrary DAGs and is used both as a public
// query and internally by structure-search scoring shortcuts.

package digraph

import "fmt"

// IsSeparatorSet decides whether Z blocks every path between X and Y under
// d-separation. X and Y must be non-empty; X, Y, Z must be pairwise disjoint
// subsets of the vertex set. Z may be empty.
func (g *DiGraph) IsSeparatorSet(x, y, z []string) (bool, error) {
	// 1. Validate and convert the query sets.
	xs, err := g.toIndexSet(x)
	if err != nil {
		return false, err
	}
	ys, err := g.toIndexSet(y)
	if err != nil {
		return false, err
	}
	zs, err := g.toIndexSet(z)
	if err != nil {
		return false, err
	}
	if len(xs) == 0 || len(ys) == 0 {
		return false, ErrEmptySet
	}
	if intersects(xs, ys) || intersects(xs, zs) || intersects(ys, zs) {
		return false, ErrNotDisjoint
	}

	// 2. Ancestral closure of X ∪ Y ∪ Z.
	union := make(map[int]struct{}, len(xs)+len(ys)+len(zs))
	for v := range xs {
		union[v] = struct{}{}
	}
	for v := range ys {
		union[v] = struct{}{}
	}
	for v := range zs {
		union[v] = struct{}{}
	}
	closed := g.ancestralClosure(union)

	// 3. Moralized undirected adjacency restricted to the closure.
	//    Every parent of a vertex in the closure is itself in the closure,
	//    so only membership of the child needs checking.
	moral := make(map[int]map[int]struct{}, len(closed))
	link := func(u, v int) {
		if moral[u] == nil {
			moral[u] = make(map[int]struct{})
		}
		if moral[v] == nil {
			moral[v] = make(map[int]struct{})
		}
		moral[u][v] = struct{}{}
		moral[v][u] = struct{}{}
	}
	for v := range closed {
		pa := g.parentIdx(v)
		for _, p := range pa {
			link(p, v)
		}
		// Connect co-parents pairwise (the moralization fill-in).
		for i := 0; i < len(pa); i++ {
			for j := i + 1; j < len(pa); j++ {
				link(pa[i], pa[j])
			}
		}
	}

	// 4. Undirected BFS from X, never expanding through Z.
	queue := make([]int, 0, len(xs))
	visited := make(map[int]struct{}, len(closed))
	for v := range xs {
		queue = append(queue, v)
		visited[v] = struct{}{}
	}
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		if _, hit := ys[v]; hit {
			return false, nil
		}
		if _, blocked := zs[v]; blocked {
			continue
		}
		for w := range moral[v] {
			if _, ok := visited[w]; !ok {
				visited[w] = struct{}{}
				queue = append(queue, w)
			}
		}
	}

	return true, nil
}

// toIndexSet validates labels against the vertex set and converts them to an
// internal index set, rejecting unknown vertices.
func (g *DiGraph) toIndexSet(labels []string) (map[int]struct{}, error) {
	set := make(map[int]struct{}, len(labels))
	for _, l := range labels {
		v, ok := g.index[l]
		if !ok {
			return nil, fmt.Errorf("vertex %q: %w", l, ErrUnknownVertex)
		}
		set[v] = struct{}{}
	}

	return set, nil
}

func intersects(a, b map[int]struct{}) bool {
	if len(b) < len(a) {
		a, b = b, a
	}
	for v := range a {
		if _, ok := b[v]; ok {
			return true
		}
	}

	return false
}
