// SPDX-License-Identifier: MIT
// Package estimate: maximum-likelihood estimators. Strict by construction:
// an unobserved configuration or a zero sojourn cell is an error, because
// the likelihood surface gives those cells no maximizer. The Bayesian
// estimators absorb such cells through their priors.

package estimate

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/causal/dataset"
	"github.com/katalvlaran/causal/digraph"
	"github.com/katalvlaran/causal/distribution"
)

// MLECatCPD normalizes count rows into a conditional probability table.
// A configuration with zero total count fails with ErrZeroCount.
func MLECatCPD(cc CatCounts) (*distribution.CatCPD, error) {
	rows, cols := cc.Counts.Dims()
	table := mat.NewDense(rows, cols, nil)
	for u := 0; u < rows; u++ {
		total := 0.0
		for i := 0; i < cols; i++ {
			total += cc.Counts.At(u, i)
		}
		if total == 0 {
			return nil, fmt.Errorf("child %q configuration %d: %w", cc.Child, u, ErrZeroCount)
		}
		for i := 0; i < cols; i++ {
			table.Set(u, i, cc.Counts.At(u, i)/total)
		}
	}

	return distribution.NewCatCPD(cc.Child, cc.States, cc.Parents, cc.ParentStates, table)
}

// MLECatCIM estimates a conditional intensity matrix as rate = transition
// count over sojourn time, diagonals the negated row sums. Any state cell
// with zero sojourn fails with ErrZeroSojourn.
func MLECatCIM(ts TrajStats) (*distribution.CatCIM, error) {
	k := len(ts.States)
	matrices := make([]*mat.Dense, len(ts.Transitions))
	for u, m := range ts.Transitions {
		q := mat.NewDense(k, k, nil)
		for i := 0; i < k; i++ {
			t := ts.Sojourn.At(u, i)
			if t == 0 {
				return nil, fmt.Errorf("child %q configuration %d state %d: %w", ts.Child, u, i, ErrZeroSojourn)
			}
			rowSum := 0.0
			for j := 0; j < k; j++ {
				if j == i {
					continue
				}
				rate := m.At(i, j) / t
				q.Set(i, j, rate)
				rowSum += rate
			}
			q.Set(i, i, -rowSum)
		}
		matrices[u] = q
	}

	return distribution.NewCatCIM(ts.Child, ts.States, ts.Parents, ts.ParentStates, matrices)
}

// MLEGaussCPD fits one linear-Gaussian conditional by least squares over
// the child's parent columns: QR solve for [intercept, coefficients],
// residual variance from the fit. A rank-deficient design fails with
// ErrSingular.
func MLEGaussCPD(table *dataset.GaussTable, g *digraph.DiGraph, child string) (*distribution.GaussCPD, error) {
	return fitGauss(table, g, child, 0)
}

// fitGauss solves the (optionally ridge-penalized) normal equations via QR
// on the augmented design matrix.
func fitGauss(table *dataset.GaussTable, g *digraph.DiGraph, child string, lambda float64) (*distribution.GaussCPD, error) {
	labels := table.Labels()
	if err := checkLabels(labels, g); err != nil {
		return nil, err
	}
	ci, ok := g.Index(child)
	if !ok {
		return nil, fmt.Errorf("%q: %w", child, ErrUnknownChild)
	}
	parents, err := g.Parents(child)
	if err != nil {
		return nil, fmt.Errorf("%q: %w", child, ErrUnknownChild)
	}
	pidx := indexAll(labels, parents)

	n := table.SampleSize()
	p := len(parents)
	rows := n
	if lambda > 0 {
		// Ridge: append sqrt(lambda)·I rows for the coefficients (the
		// intercept stays unpenalized).
		rows += p
	}
	if rows < p+1 {
		// QR needs at least as many rows as unknowns; a wider-than-tall
		// design is under-determined.
		return nil, fmt.Errorf("child %q: %w", child, ErrSingular)
	}
	design := mat.NewDense(rows, p+1, nil)
	target := mat.NewVecDense(rows, nil)
	for r := 0; r < n; r++ {
		design.Set(r, 0, 1)
		for i, j := range pidx {
			design.Set(r, i+1, table.At(r, j))
		}
		target.SetVec(r, table.At(r, ci))
	}
	if lambda > 0 {
		s := math.Sqrt(lambda)
		for i := 0; i < p; i++ {
			design.Set(n+i, i+1, s)
		}
	}

	var qr mat.QR
	qr.Factorize(design)
	var beta mat.VecDense
	if err := qr.SolveVecTo(&beta, false, target); err != nil {
		return nil, fmt.Errorf("child %q: %w", child, ErrSingular)
	}

	// Residual variance over the data rows only.
	rss := 0.0
	for r := 0; r < n; r++ {
		fitted := beta.AtVec(0)
		for i, j := range pidx {
			fitted += beta.AtVec(i+1) * table.At(r, j)
		}
		d := table.At(r, ci) - fitted
		rss += d * d
	}
	variance := rss / float64(n)
	if variance == 0 {
		// A perfect fit still needs a proper density.
		variance = varianceFloor
	}

	coef := make([]float64, p)
	for i := range coef {
		coef[i] = beta.AtVec(i + 1)
	}

	return distribution.NewGaussCPD(child, parents, coef, beta.AtVec(0), variance)
}

// varianceFloor keeps degenerate residuals away from a zero-variance
// Gaussian.
const varianceFloor = 1e-12
