// SPDX-License-Identifier: MIT
// Package estimate: the expectation step of static EM. Each incomplete row
// is expanded into its completions; the completions are weighted by their
// joint probability under the current model, normalized per row, and the
// weights accumulate into fractional counts.

package estimate

import (
	"fmt"
	"math"

	"github.com/katalvlaran/causal/dataset"
	"github.com/katalvlaran/causal/digraph"
	"github.com/katalvlaran/causal/distribution"
)

// ExpectedCatCounts computes the expected sufficient statistics of an
// incomplete table under the current conditional tables, plus the
// observed-data log-likelihood. cpds must hold one table per graph vertex.
//
// Cost per row is the product of the cardinalities of its missing cells;
// rows without holes cost one evaluation.
func ExpectedCatCounts(table *dataset.IncompleteTable, g *digraph.DiGraph, cpds map[string]*distribution.CatCPD) ([]CatCounts, float64, error) {
	labels := table.Labels()
	if err := checkLabels(labels, g); err != nil {
		return nil, 0, err
	}
	spaces := table.StateSpaces()
	card := table.Cardinality()

	shells := make([]CatCounts, len(labels))
	cards := make([][]int, len(labels))
	pidxs := make([][]int, len(labels))
	for j, child := range labels {
		if _, ok := cpds[child]; !ok {
			return nil, 0, fmt.Errorf("%q: %w", child, ErrNoModel)
		}
		cc, err := newCatCounts(child, j, labels, spaces, g)
		if err != nil {
			return nil, 0, err
		}
		shells[j] = cc
		cards[j] = parentCard(cc.ParentStates)
		pidxs[j] = indexAll(labels, cc.Parents)
	}

	ll := 0.0
	row := make([]int, len(labels))
	for r := 0; r < table.SampleSize(); r++ {
		for j := range labels {
			row[j] = table.At(r, j)
		}
		missing := missingOf(row)

		// Enumerate completions with a mixed-radix counter over the
		// missing cells; weight each by its joint probability.
		completions := make([][]int, 0, 1)
		weights := make([]float64, 0, 1)
		total := 0.0
		counter := make([]int, len(missing))
		for {
			for i, j := range missing {
				row[j] = counter[i]
			}
			w, err := jointProb(row, labels, cpds, cards, pidxs)
			if err != nil {
				return nil, 0, err
			}
			if w > 0 {
				completions = append(completions, append([]int(nil), row...))
				weights = append(weights, w)
				total += w
			}
			if !advance(counter, missing, card) {
				break
			}
		}
		for _, j := range missing {
			row[j] = dataset.Missing
		}

		if total == 0 {
			// The row is impossible under the current model.
			ll = math.Inf(-1)

			continue
		}
		ll += math.Log(total)
		for c, comp := range completions {
			w := weights[c] / total
			for j := range labels {
				u, err := ravelCodes(comp, pidxs[j], cards[j])
				if err != nil {
					return nil, 0, err
				}
				shells[j].Counts.Set(u, comp[j], shells[j].Counts.At(u, comp[j])+w)
			}
		}
	}

	return shells, ll, nil
}

// jointProb multiplies the conditional probabilities of one complete row.
func jointProb(row []int, labels []string, cpds map[string]*distribution.CatCPD, cards, pidxs [][]int) (float64, error) {
	p := 1.0
	for j, child := range labels {
		u, err := ravelCodes(row, pidxs[j], cards[j])
		if err != nil {
			return 0, err
		}
		p *= cpds[child].Prob(u, row[j])
		if p == 0 {
			return 0, nil
		}
	}

	return p, nil
}

func ravelCodes(row []int, pidx, card []int) (int, error) {
	states := make([]int, len(pidx))
	for i, j := range pidx {
		states[i] = row[j]
	}

	return distribution.Ravel(states, card)
}

func missingOf(row []int) []int {
	var out []int
	for j, c := range row {
		if c == dataset.Missing {
			out = append(out, j)
		}
	}

	return out
}

// advance increments the mixed-radix counter over the missing cells; false
// once it wraps.
func advance(counter, missing, card []int) bool {
	for i := len(counter) - 1; i >= 0; i-- {
		counter[i]++
		if counter[i] < card[missing[i]] {
			return true
		}
		counter[i] = 0
	}

	return false
}
