// SPDX-License-Identifier: MIT
// Package estimate: sufficient statistics. Counts and sojourn times are
// collected per child against the parent sets of a directed graph, in the
// shared Ravel configuration order, so every estimator and scorer reads
// the same row identity.

package estimate

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/causal/dataset"
	"github.com/katalvlaran/causal/digraph"
	"github.com/katalvlaran/causal/distribution"
)

// CatCounts holds the static sufficient statistics of one child: one count
// row per parent configuration, one column per child state.
type CatCounts struct {
	Child        string
	States       []string
	Parents      []string
	ParentStates [][]string
	Counts       *mat.Dense // ConfigCount(parent card) × len(States)
}

// TrajStats holds the continuous-time sufficient statistics of one child:
// per parent configuration a transition count matrix (off-diagonal cells)
// and per state the total sojourn time.
type TrajStats struct {
	Child        string
	States       []string
	Parents      []string
	ParentStates [][]string
	Transitions  []*mat.Dense // per configuration, k×k (diagonal zero)
	Sojourn      *mat.Dense   // configurations × k
}

// CollectCat counts child-state occurrences per parent configuration for
// every vertex of g over a complete table. The table and graph must share
// one sorted label set.
func CollectCat(table *dataset.CatTable, g *digraph.DiGraph) ([]CatCounts, error) {
	labels := table.Labels()
	if err := checkLabels(labels, g); err != nil {
		return nil, err
	}
	spaces := table.StateSpaces()

	out := make([]CatCounts, len(labels))
	for j, child := range labels {
		cc, err := newCatCounts(child, j, labels, spaces, g)
		if err != nil {
			return nil, err
		}
		card := parentCard(cc.ParentStates)
		pidx := indexAll(labels, cc.Parents)
		for r := 0; r < table.SampleSize(); r++ {
			u, err := ravelRow(table, r, pidx, card)
			if err != nil {
				return nil, err
			}
			cc.Counts.Set(u, table.At(r, j), cc.Counts.At(u, table.At(r, j))+1)
		}
		out[j] = cc
	}

	return out, nil
}

// CollectTrajectory accumulates transition counts and sojourn times for
// every vertex of g over a trajectory collection, each path with unit
// weight.
func CollectTrajectory(paths *dataset.Trajectories, g *digraph.DiGraph) ([]TrajStats, error) {
	w, err := dataset.Uniform(paths)
	if err != nil {
		return nil, err
	}

	return CollectTrajectoryWeighted(w, g)
}

// CollectTrajectoryWeighted is CollectTrajectory with per-path importance
// weights scaling every count and sojourn increment.
func CollectTrajectoryWeighted(weighted *dataset.WeightedTrajectories, g *digraph.DiGraph) ([]TrajStats, error) {
	paths := weighted.Trajectories()
	labels := paths.Labels()
	if err := checkLabels(labels, g); err != nil {
		return nil, err
	}
	spaces := paths.StateSpaces()

	out := make([]TrajStats, len(labels))
	for j, child := range labels {
		cc, err := newCatCounts(child, j, labels, spaces, g)
		if err != nil {
			return nil, err
		}
		k := len(cc.States)
		rows, _ := cc.Counts.Dims()
		ts := TrajStats{
			Child:        cc.Child,
			States:       cc.States,
			Parents:      cc.Parents,
			ParentStates: cc.ParentStates,
			Transitions:  make([]*mat.Dense, rows),
			Sojourn:      mat.NewDense(rows, k, nil),
		}
		for u := range ts.Transitions {
			ts.Transitions[u] = mat.NewDense(k, k, nil)
		}
		out[j] = ts
	}

	cards := make([][]int, len(labels))
	pidxs := make([][]int, len(labels))
	for j := range labels {
		cards[j] = parentCard(out[j].ParentStates)
		pidxs[j] = indexAll(labels, out[j].Parents)
	}

	for p := 0; p < paths.Len(); p++ {
		weight := weighted.Weight(p)
		if weight == 0 {
			continue
		}
		tr := paths.Path(p)
		for r := 0; r+1 < tr.Len(); r++ {
			dt := tr.TimeAt(r+1) - tr.TimeAt(r)
			for j := range labels {
				ts := &out[j]
				u, err := ravelTrajRow(tr, r, pidxs[j], cards[j])
				if err != nil {
					return nil, err
				}
				from := tr.At(r, j)
				ts.Sojourn.Set(u, from, ts.Sojourn.At(u, from)+weight*dt)
				if to := tr.At(r+1, j); to != from {
					ts.Transitions[u].Set(from, to, ts.Transitions[u].At(from, to)+weight)
				}
			}
		}
	}

	return out, nil
}

// newCatCounts prepares the zeroed statistics shell for one child.
func newCatCounts(child string, j int, labels []string, spaces [][]string, g *digraph.DiGraph) (CatCounts, error) {
	parents, err := g.Parents(child)
	if err != nil {
		return CatCounts{}, fmt.Errorf("%q: %w", child, ErrUnknownChild)
	}
	pstates := make([][]string, len(parents))
	for i, p := range parents {
		pi, _ := g.Index(p)
		pstates[i] = spaces[pi]
	}
	rows := distribution.ConfigCount(parentCard(pstates))

	return CatCounts{
		Child:        child,
		States:       spaces[j],
		Parents:      parents,
		ParentStates: pstates,
		Counts:       mat.NewDense(rows, len(spaces[j]), nil),
	}, nil
}

func checkLabels(labels []string, g *digraph.DiGraph) error {
	gl := g.Labels()
	if len(gl) != len(labels) {
		return ErrLabelMismatch
	}
	for i := range gl {
		if gl[i] != labels[i] {
			return fmt.Errorf("%q vs. %q: %w", gl[i], labels[i], ErrLabelMismatch)
		}
	}

	return nil
}

func parentCard(pstates [][]string) []int {
	card := make([]int, len(pstates))
	for i, s := range pstates {
		card[i] = len(s)
	}

	return card
}

// indexAll maps sorted parent labels onto their column indices in the
// sorted label set.
func indexAll(labels, parents []string) []int {
	pos := make(map[string]int, len(labels))
	for i, l := range labels {
		pos[l] = i
	}
	idx := make([]int, len(parents))
	for i, p := range parents {
		idx[i] = pos[p]
	}

	return idx
}

func ravelRow(table *dataset.CatTable, r int, pidx, card []int) (int, error) {
	states := make([]int, len(pidx))
	for i, j := range pidx {
		states[i] = table.At(r, j)
	}

	return distribution.Ravel(states, card)
}

func ravelTrajRow(tr *dataset.Trajectory, r int, pidx, card []int) (int, error) {
	states := make([]int, len(pidx))
	for i, j := range pidx {
		states[i] = tr.At(r, j)
	}

	return distribution.Ravel(states, card)
}
