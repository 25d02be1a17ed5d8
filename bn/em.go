// SPDX-License-Identifier: MIT
// Package bn: expectation-maximization over incomplete tables. The E-step
// expands rows into weighted completions under the current model, the
// M-step refits with Dirichlet smoothing so no configuration collapses to
// an empty row mid-run.

package bn

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/causal/dataset"
	"github.com/katalvlaran/causal/digraph"
	"github.com/katalvlaran/causal/distribution"
	"github.com/katalvlaran/causal/estimate"
)

// DefaultEMTolerance is the log-likelihood gain below which EM stops.
const DefaultEMTolerance = 1e-4

// EMStep records one iteration: the refitted model, the expected
// statistics that produced it, and the observed-data log-likelihood under
// the pre-step model.
type EMStep struct {
	Model         *CatBN
	Expectations  []estimate.CatCounts
	LogLikelihood float64
}

// EMResult is the outcome of an EM run. Converged is false when the
// iteration bound was hit first; the result is still usable.
type EMResult struct {
	Model     *CatBN
	History   []EMStep
	Converged bool
}

// emConfig collects the optional EM switches.
type emConfig struct {
	tolerance float64
	alpha     float64
}

// EMOption adjusts the EM run.
type EMOption func(*emConfig)

// WithTolerance sets the convergence threshold on log-likelihood gain
// (default DefaultEMTolerance).
func WithTolerance(tol float64) EMOption {
	return func(c *emConfig) { c.tolerance = tol }
}

// WithEMAlpha sets the Dirichlet hyperparameter of the M-step (default
// estimate.DefaultAlpha).
func WithEMAlpha(alpha float64) EMOption {
	return func(c *emConfig) { c.alpha = alpha }
}

// EM fits a categorical network to an incomplete table. The starting
// point is a random positive parameterization drawn from seed, so
// identical seeds reproduce identical runs; History holds at most maxIter
// steps.
func EM(table *dataset.IncompleteTable, g *digraph.DiGraph, maxIter int, seed uint64, opts ...EMOption) (*EMResult, error) {
	if maxIter <= 0 {
		return nil, ErrBadIterations
	}
	cfg := emConfig{tolerance: DefaultEMTolerance, alpha: estimate.DefaultAlpha}
	for _, o := range opts {
		o(&cfg)
	}

	current, err := randomCatBN(table, g, seed)
	if err != nil {
		return nil, err
	}

	result := &EMResult{}
	prevLL := math.Inf(-1)
	for i := 0; i < maxIter; i++ {
		stats, ll, err := estimate.ExpectedCatCounts(table, g, current.cpds)
		if err != nil {
			return nil, fmt.Errorf("bn: %w", err)
		}

		cpds := make(map[string]*distribution.CatCPD, len(stats))
		for _, cc := range stats {
			cpd, err := estimate.BayesCatCPD(cc, cfg.alpha)
			if err != nil {
				return nil, fmt.Errorf("bn: %w", err)
			}
			cpds[cc.Child] = cpd
		}
		next, err := NewCatBN(g, cpds)
		if err != nil {
			return nil, err
		}

		result.History = append(result.History, EMStep{
			Model:         next,
			Expectations:  stats,
			LogLikelihood: ll,
		})
		current = next

		if i > 0 && math.Abs(ll-prevLL) < cfg.tolerance {
			result.Converged = true

			break
		}
		prevLL = ll
	}
	result.Model = current

	return result, nil
}

// randomCatBN draws a positive random parameterization for the table's
// shape: each row is a normalized vector of exponential draws, a
// symmetric-Dirichlet sample.
func randomCatBN(table *dataset.IncompleteTable, g *digraph.DiGraph, seed uint64) (*CatBN, error) {
	labels := table.Labels()
	spaces := table.StateSpaces()
	gl := g.Labels()
	if !stringSlicesEqual(labels, gl) {
		return nil, ErrLabelMismatch
	}
	pos := make(map[string]int, len(labels))
	for i, l := range labels {
		pos[l] = i
	}

	rng := rand.New(rand.NewPCG(seed, 0))
	cpds := make(map[string]*distribution.CatCPD, len(labels))
	for j, child := range labels {
		parents, err := g.Parents(child)
		if err != nil {
			return nil, err
		}
		pstates := make([][]string, len(parents))
		card := make([]int, len(parents))
		for i, p := range parents {
			pstates[i] = spaces[pos[p]]
			card[i] = len(pstates[i])
		}
		rows := distribution.ConfigCount(card)
		k := len(spaces[j])
		probs := mat.NewDense(rows, k, nil)
		for u := 0; u < rows; u++ {
			sum := 0.0
			draws := make([]float64, k)
			for i := range draws {
				draws[i] = rng.ExpFloat64()
				sum += draws[i]
			}
			for i := range draws {
				probs.Set(u, i, draws[i]/sum)
			}
		}
		cpd, err := distribution.NewCatCPD(child, spaces[j], parents, pstates, probs)
		if err != nil {
			return nil, err
		}
		cpds[child] = cpd
	}

	return NewCatBN(g, cpds)
}
