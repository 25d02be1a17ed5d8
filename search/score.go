// SPDX-License-Identifier: MIT
// Package search: decomposable structure scores. Both criteria decompose
// over families (child plus parent set), which is what makes single-edge
// hill climbing cheap: a move re-scores only the families it touches.

package search

import (
	"math"

	"github.com/katalvlaran/causal/dataset"
	"github.com/katalvlaran/causal/digraph"
)

// ScoreName selects the structure score.
type ScoreName string

const (
	// BIC is the Bayesian information criterion: log-likelihood minus
	// 0.5 · free parameters · ln(sample size) per family.
	BIC ScoreName = "BIC"

	// AIC is the Akaike information criterion: log-likelihood minus the
	// free parameter count per family.
	AIC ScoreName = "AIC"
)

func validScore(s ScoreName) bool { return s == BIC || s == AIC }

// penalty is the per-family complexity charge of the selected criterion.
func penalty(score ScoreName, params, n float64) float64 {
	if score == AIC {
		return params
	}

	return 0.5 * params * math.Log(n)
}

// BICCat scores a structure against a complete static table, summed over
// families.
func BICCat(table *dataset.CatTable, g *digraph.DiGraph) (float64, error) {
	return ScoreCat(table, g, BIC)
}

// AICCat is BICCat under the Akaike criterion.
func AICCat(table *dataset.CatTable, g *digraph.DiGraph) (float64, error) {
	return ScoreCat(table, g, AIC)
}

// ScoreCat scores a structure against a complete static table under the
// named criterion.
func ScoreCat(table *dataset.CatTable, g *digraph.DiGraph, score ScoreName) (float64, error) {
	if !validScore(score) {
		return 0, ErrUnknownScore
	}
	labels := table.Labels()
	if !labelsMatch(labels, g.Labels()) {
		return 0, ErrLabelMismatch
	}
	pos := positions(labels)
	total := 0.0
	for j, child := range labels {
		parents, err := g.Parents(child)
		if err != nil {
			return 0, err
		}
		total += catFamilyScore(table, j, indexSet(pos, parents), score)
	}

	return total, nil
}

// BICCTBN scores a structure against a trajectory collection with unit
// path weights.
func BICCTBN(paths *dataset.Trajectories, g *digraph.DiGraph) (float64, error) {
	return ScoreCTBN(paths, g, BIC)
}

// AICCTBN is BICCTBN under the Akaike criterion.
func AICCTBN(paths *dataset.Trajectories, g *digraph.DiGraph) (float64, error) {
	return ScoreCTBN(paths, g, AIC)
}

// ScoreCTBN scores a structure against a trajectory collection with unit
// path weights under the named criterion.
func ScoreCTBN(paths *dataset.Trajectories, g *digraph.DiGraph, score ScoreName) (float64, error) {
	w, err := dataset.Uniform(paths)
	if err != nil {
		return 0, err
	}

	return ScoreCTBNWeighted(w, g, score)
}

// BICCTBNWeighted scores a structure against importance-weighted
// trajectories; the structural-EM M-step uses it.
func BICCTBNWeighted(w *dataset.WeightedTrajectories, g *digraph.DiGraph) (float64, error) {
	return ScoreCTBNWeighted(w, g, BIC)
}

// AICCTBNWeighted is BICCTBNWeighted under the Akaike criterion.
func AICCTBNWeighted(w *dataset.WeightedTrajectories, g *digraph.DiGraph) (float64, error) {
	return ScoreCTBNWeighted(w, g, AIC)
}

// ScoreCTBNWeighted scores a structure against importance-weighted
// trajectories under the named criterion.
func ScoreCTBNWeighted(w *dataset.WeightedTrajectories, g *digraph.DiGraph, score ScoreName) (float64, error) {
	if !validScore(score) {
		return 0, ErrUnknownScore
	}
	labels := w.Trajectories().Labels()
	if !labelsMatch(labels, g.Labels()) {
		return 0, ErrLabelMismatch
	}
	pos := positions(labels)
	total := 0.0
	for j, child := range labels {
		parents, err := g.Parents(child)
		if err != nil {
			return 0, err
		}
		total += trajFamilyScore(w, j, indexSet(pos, parents), score)
	}

	return total, nil
}

// catFamilyScore is the criterion contribution of one static family.
// Parent configurations flatten in the shared Ravel order; empty cells
// contribute nothing to the log-likelihood.
func catFamilyScore(table *dataset.CatTable, child int, parents []int, score ScoreName) float64 {
	card := table.Cardinality()
	k := card[child]
	configs := 1
	for _, p := range parents {
		configs *= card[p]
	}

	counts := make([]float64, configs*k)
	totals := make([]float64, configs)
	n := table.SampleSize()
	for r := 0; r < n; r++ {
		u := 0
		for _, p := range parents {
			u = u*card[p] + table.At(r, p)
		}
		counts[u*k+table.At(r, child)]++
		totals[u]++
	}

	ll := 0.0
	for u := 0; u < configs; u++ {
		if totals[u] == 0 {
			continue
		}
		for i := 0; i < k; i++ {
			c := counts[u*k+i]
			if c == 0 {
				continue
			}
			ll += c * math.Log(c/totals[u])
		}
	}

	params := float64(configs * (k - 1))

	return ll - penalty(score, params, float64(n))
}

// trajFamilyScore is the criterion contribution of one continuous-time
// family under maximum-likelihood rates. BIC's sample size is the weighted
// transition count of the child; a family with no transitions carries no
// penalty under either criterion.
func trajFamilyScore(w *dataset.WeightedTrajectories, child int, parents []int, score ScoreName) float64 {
	paths := w.Trajectories()
	card := paths.Cardinality()
	k := card[child]
	configs := 1
	for _, p := range parents {
		configs *= card[p]
	}

	trans := make([]float64, configs*k*k)
	sojourn := make([]float64, configs*k)
	jumps := 0.0
	for pi := 0; pi < paths.Len(); pi++ {
		weight := w.Weight(pi)
		if weight == 0 {
			continue
		}
		tr := paths.Path(pi)
		for r := 0; r+1 < tr.Len(); r++ {
			u := 0
			for _, p := range parents {
				u = u*card[p] + tr.At(r, p)
			}
			from := tr.At(r, child)
			dt := tr.TimeAt(r+1) - tr.TimeAt(r)
			sojourn[u*k+from] += weight * dt
			if to := tr.At(r+1, child); to != from {
				trans[(u*k+from)*k+to] += weight
				jumps += weight
			}
		}
	}

	ll := 0.0
	for u := 0; u < configs; u++ {
		for i := 0; i < k; i++ {
			t := sojourn[u*k+i]
			if t == 0 {
				continue
			}
			for j := 0; j < k; j++ {
				if j == i {
					continue
				}
				m := trans[(u*k+i)*k+j]
				if m == 0 {
					continue
				}
				// MLE rate m/t: m·ln(m/t) − m.
				ll += m*math.Log(m/t) - m
			}
		}
	}

	params := float64(configs * k * (k - 1))
	if jumps == 0 {
		return ll
	}

	return ll - penalty(score, params, jumps+1)
}

func labelsMatch(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

func positions(labels []string) map[string]int {
	pos := make(map[string]int, len(labels))
	for i, l := range labels {
		pos[l] = i
	}

	return pos
}

func indexSet(pos map[string]int, labels []string) []int {
	out := make([]int, len(labels))
	for i, l := range labels {
		out[i] = pos[l]
	}

	return out
}
