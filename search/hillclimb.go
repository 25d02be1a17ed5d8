// SPDX-License-Identifier: MIT
// Package search: greedy structure climbing. One move changes one edge, a
// move touches at most two families, and every iteration scores all legal
// moves concurrently before applying the single best strict improvement.
// Ties break lexicographically on (from, to, kind) with add < remove <
// reverse, so the search is deterministic.

package search

import (
	"fmt"
	"sync"

	"github.com/katalvlaran/causal/dataset"
	"github.com/katalvlaran/causal/digraph"
)

// improvementEps guards the strict-improvement test against float noise.
const improvementEps = 1e-9

// MoveKind enumerates the edge operations, in tie-break order.
type MoveKind int

const (
	// AddEdge inserts a missing edge.
	AddEdge MoveKind = iota
	// RemoveEdge deletes a present edge.
	RemoveEdge
	// ReverseEdge flips a present edge.
	ReverseEdge
)

// String implements fmt.Stringer.
func (k MoveKind) String() string {
	switch k {
	case AddEdge:
		return "add"
	case RemoveEdge:
		return "remove"
	case ReverseEdge:
		return "reverse"
	default:
		return fmt.Sprintf("MoveKind(%d)", int(k))
	}
}

// Move is one candidate edge operation.
type Move struct {
	From string
	To   string
	Kind MoveKind
}

// climbConfig collects the optional search switches.
type climbConfig struct {
	score      ScoreName
	maxParents int
	start      *digraph.DiGraph
}

// ClimbOption adjusts the hill climb.
type ClimbOption func(*climbConfig)

// WithScoreName selects the decomposable criterion driving the climb
// (default BIC).
func WithScoreName(s ScoreName) ClimbOption {
	return func(c *climbConfig) { c.score = s }
}

// WithMaxParents caps the in-degree of every vertex (0 means unlimited).
func WithMaxParents(n int) ClimbOption {
	return func(c *climbConfig) { c.maxParents = n }
}

// WithStart begins the climb from a given structure instead of the empty
// graph (required edges are still added).
func WithStart(g *digraph.DiGraph) ClimbOption {
	return func(c *climbConfig) { c.start = g }
}

// familyScorer scores one family: the child column and its parent columns.
type familyScorer func(child int, parents []int) float64

// HillClimbCat searches for the structure maximizing the selected score
// (default BIC) over a complete static table.
func HillClimbCat(table *dataset.CatTable, pk *PriorKnowledge, opts ...ClimbOption) (*digraph.DiGraph, float64, error) {
	scorerFor := func(s ScoreName) familyScorer {
		return func(child int, parents []int) float64 {
			return catFamilyScore(table, child, parents, s)
		}
	}

	return climb(table.Labels(), scorerFor, pk, opts)
}

// HillClimbCTBN searches for the structure maximizing the selected score
// (default BIC) over a trajectory collection.
func HillClimbCTBN(paths *dataset.Trajectories, pk *PriorKnowledge, opts ...ClimbOption) (*digraph.DiGraph, float64, error) {
	w, err := dataset.Uniform(paths)
	if err != nil {
		return nil, 0, err
	}

	return HillClimbCTBNWeighted(w, pk, opts...)
}

// HillClimbCTBNWeighted is HillClimbCTBN over importance-weighted
// trajectories; the structural-EM structure step uses it.
func HillClimbCTBNWeighted(w *dataset.WeightedTrajectories, pk *PriorKnowledge, opts ...ClimbOption) (*digraph.DiGraph, float64, error) {
	scorerFor := func(s ScoreName) familyScorer {
		return func(child int, parents []int) float64 {
			return trajFamilyScore(w, child, parents, s)
		}
	}

	return climb(w.Trajectories().Labels(), scorerFor, pk, opts)
}

// candidate pairs a move with its score delta and the recomputed family
// scores needed to apply it without re-scoring.
type candidate struct {
	move    Move
	delta   float64
	newTo   float64
	newFrom float64 // reverse only
}

func climb(labels []string, scorerFor func(ScoreName) familyScorer, pk *PriorKnowledge, opts []ClimbOption) (*digraph.DiGraph, float64, error) {
	cfg := climbConfig{score: BIC}
	for _, o := range opts {
		o(&cfg)
	}
	if !validScore(cfg.score) {
		return nil, 0, ErrUnknownScore
	}
	score := scorerFor(cfg.score)
	if pk == nil {
		pk = NewPriorKnowledge(labels)
	}
	if !labelsMatch(labels, pk.Labels()) {
		return nil, 0, ErrLabelMismatch
	}

	g, err := startGraph(labels, pk, cfg)
	if err != nil {
		return nil, 0, err
	}
	pos := positions(labels)

	// Current family scores.
	fam := make([]float64, len(labels))
	for j, child := range labels {
		parents, err := g.Parents(child)
		if err != nil {
			return nil, 0, err
		}
		fam[j] = score(j, indexSet(pos, parents))
	}

	for {
		candidates := legalMoves(g, pk, cfg.maxParents)
		if len(candidates) == 0 {
			break
		}

		// Score all candidates concurrently; each touches at most two
		// families.
		var wg sync.WaitGroup
		for i := range candidates {
			wg.Add(1)
			go func(c *candidate) {
				defer wg.Done()
				scoreMove(c, g, pos, fam, score)
			}(&candidates[i])
		}
		wg.Wait()

		best := -1
		for i, c := range candidates {
			if c.delta <= improvementEps {
				continue
			}
			if best < 0 || c.delta > candidates[best].delta+improvementEps {
				best = i
			}
			// Equal deltas keep the earlier candidate: generation order is
			// already lexicographic on (from, to, kind).
		}
		if best < 0 {
			break
		}

		c := candidates[best]
		switch c.move.Kind {
		case AddEdge:
			err = g.AddEdge(c.move.From, c.move.To)
		case RemoveEdge:
			err = g.RemoveEdge(c.move.From, c.move.To)
		case ReverseEdge:
			if err = g.RemoveEdge(c.move.From, c.move.To); err == nil {
				err = g.AddEdge(c.move.To, c.move.From)
			}
		}
		if err != nil {
			return nil, 0, err
		}
		fam[pos[c.move.To]] = c.newTo
		if c.move.Kind == ReverseEdge {
			fam[pos[c.move.From]] = c.newFrom
		}
	}

	total := 0.0
	for _, f := range fam {
		total += f
	}

	return g, total, nil
}

// startGraph builds the initial structure: the given start (or the empty
// graph) plus every required edge.
func startGraph(labels []string, pk *PriorKnowledge, cfg climbConfig) (*digraph.DiGraph, error) {
	var (
		g   *digraph.DiGraph
		err error
	)
	if cfg.start != nil {
		if !labelsMatch(labels, cfg.start.Labels()) {
			return nil, ErrLabelMismatch
		}
		g = cfg.start.Clone()
	} else if g, err = digraph.New(labels...); err != nil {
		return nil, err
	}
	for _, e := range pk.Required() {
		if g.HasEdge(e[0], e[1]) {
			continue
		}
		if err := g.AddEdge(e[0], e[1]); err != nil {
			return nil, fmt.Errorf("%s -> %s: %w", e[0], e[1], ErrRequiredCycle)
		}
	}

	return g, nil
}

// legalMoves enumerates the admissible moves in lexicographic (from, to,
// kind) order.
func legalMoves(g *digraph.DiGraph, pk *PriorKnowledge, maxParents int) []candidate {
	labels := g.Labels()
	var out []candidate
	for _, from := range labels {
		for _, to := range labels {
			if from == to {
				continue
			}
			if !g.HasEdge(from, to) {
				if pk.Allows(from, to) && inDegreeOK(g, to, maxParents, 1) && !createsCycle(g, from, to) {
					out = append(out, candidate{move: Move{From: from, To: to, Kind: AddEdge}})
				}

				continue
			}
			if pk.IsRequired(from, to) {
				continue
			}
			out = append(out, candidate{move: Move{From: from, To: to, Kind: RemoveEdge}})
			if pk.Allows(to, from) && inDegreeOK(g, from, maxParents, 1) && !reverseCreatesCycle(g, from, to) {
				out = append(out, candidate{move: Move{From: from, To: to, Kind: ReverseEdge}})
			}
		}
	}

	return out
}

// scoreMove fills a candidate's delta against the current family scores.
func scoreMove(c *candidate, g *digraph.DiGraph, pos map[string]int, fam []float64, score familyScorer) {
	to := pos[c.move.To]
	from := pos[c.move.From]
	parents, _ := g.Parents(c.move.To)
	pidx := indexSet(pos, parents)

	switch c.move.Kind {
	case AddEdge:
		c.newTo = score(to, insertSorted(pidx, from))
		c.delta = c.newTo - fam[to]
	case RemoveEdge:
		c.newTo = score(to, removeIdx(pidx, from))
		c.delta = c.newTo - fam[to]
	case ReverseEdge:
		c.newTo = score(to, removeIdx(pidx, from))
		fparents, _ := g.Parents(c.move.From)
		c.newFrom = score(from, insertSorted(indexSet(pos, fparents), to))
		c.delta = c.newTo + c.newFrom - fam[to] - fam[from]
	}
}

func inDegreeOK(g *digraph.DiGraph, label string, maxParents, extra int) bool {
	if maxParents <= 0 {
		return true
	}
	parents, err := g.Parents(label)
	if err != nil {
		return false
	}

	return len(parents)+extra <= maxParents
}

// createsCycle reports whether adding from → to closes a cycle: it does
// exactly when to already reaches from.
func createsCycle(g *digraph.DiGraph, from, to string) bool {
	desc, err := g.Descendants(to)
	if err != nil {
		return true
	}
	for _, d := range desc {
		if d == from {
			return true
		}
	}

	return false
}

// reverseCreatesCycle reports whether flipping from → to closes a cycle:
// it does exactly when from still reaches to through another path.
func reverseCreatesCycle(g *digraph.DiGraph, from, to string) bool {
	h := g.Clone()
	if err := h.RemoveEdge(from, to); err != nil {
		return true
	}

	return createsCycle(h, to, from)
}

// insertSorted returns the sorted parent index set with idx added.
func insertSorted(pidx []int, idx int) []int {
	out := make([]int, 0, len(pidx)+1)
	placed := false
	for _, p := range pidx {
		if !placed && idx < p {
			out = append(out, idx)
			placed = true
		}
		out = append(out, p)
	}
	if !placed {
		out = append(out, idx)
	}

	return out
}

// removeIdx returns the parent index set with idx dropped.
func removeIdx(pidx []int, idx int) []int {
	out := make([]int, 0, len(pidx))
	for _, p := range pidx {
		if p != idx {
			out = append(out, p)
		}
	}

	return out
}
