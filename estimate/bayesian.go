// SPDX-License-Identifier: MIT
// Package estimate: Bayesian point estimators. Each one is the posterior
// mean (or mode) under a conjugate prior, so cells the data never touches
// fall back to the prior instead of failing.

package estimate

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/causal/dataset"
	"github.com/katalvlaran/causal/digraph"
	"github.com/katalvlaran/causal/distribution"
)

// Default hyperparameters, one pseudo-observation per cell and one pseudo
// time unit per state.
const (
	DefaultAlpha = 1.0
	DefaultTau   = 1.0
	DefaultRidge = 1.0
)

// BayesCatCPD smooths count rows with a symmetric Dirichlet prior:
//
//	θ[u][i] = (N[u][i] + alpha) / (N[u] + alpha·k).
func BayesCatCPD(cc CatCounts, alpha float64) (*distribution.CatCPD, error) {
	if alpha <= 0 || math.IsNaN(alpha) || math.IsInf(alpha, 0) {
		return nil, fmt.Errorf("alpha %v: %w", alpha, ErrBadPrior)
	}
	rows, cols := cc.Counts.Dims()
	table := mat.NewDense(rows, cols, nil)
	for u := 0; u < rows; u++ {
		total := alpha * float64(cols)
		for i := 0; i < cols; i++ {
			total += cc.Counts.At(u, i)
		}
		for i := 0; i < cols; i++ {
			table.Set(u, i, (cc.Counts.At(u, i)+alpha)/total)
		}
	}

	return distribution.NewCatCPD(cc.Child, cc.States, cc.Parents, cc.ParentStates, table)
}

// BayesCatCIM smooths rates with an (alpha, tau) prior:
//
//	Q[u][i][j] = (M[u][i][j] + alpha) / (T[u][i] + tau), j ≠ i.
func BayesCatCIM(ts TrajStats, alpha, tau float64) (*distribution.CatCIM, error) {
	if alpha <= 0 || math.IsNaN(alpha) || math.IsInf(alpha, 0) {
		return nil, fmt.Errorf("alpha %v: %w", alpha, ErrBadPrior)
	}
	if tau <= 0 || math.IsNaN(tau) || math.IsInf(tau, 0) {
		return nil, fmt.Errorf("tau %v: %w", tau, ErrBadPrior)
	}
	k := len(ts.States)
	matrices := make([]*mat.Dense, len(ts.Transitions))
	for u, m := range ts.Transitions {
		q := mat.NewDense(k, k, nil)
		for i := 0; i < k; i++ {
			t := ts.Sojourn.At(u, i) + tau
			rowSum := 0.0
			for j := 0; j < k; j++ {
				if j == i {
					continue
				}
				rate := (m.At(i, j) + alpha) / t
				q.Set(i, j, rate)
				rowSum += rate
			}
			q.Set(i, i, -rowSum)
		}
		matrices[u] = q
	}

	return distribution.NewCatCIM(ts.Child, ts.States, ts.Parents, ts.ParentStates, matrices)
}

// BayesGaussCPD is ridge-penalized least squares: the coefficient vector
// shrinks toward zero with strength lambda, the intercept is unpenalized.
func BayesGaussCPD(table *dataset.GaussTable, g *digraph.DiGraph, child string, lambda float64) (*distribution.GaussCPD, error) {
	if lambda <= 0 || math.IsNaN(lambda) || math.IsInf(lambda, 0) {
		return nil, fmt.Errorf("lambda %v: %w", lambda, ErrBadPrior)
	}

	return fitGauss(table, g, child, lambda)
}
