// SPDX-License-Identifier: MIT
// Package distribution: the linear-Gaussian conditional.

package distribution

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"
)

// GaussCPD is an immutable linear-Gaussian conditional:
//
//	child = intercept + Σ coefficients[i]·parent[i] + Normal(0, variance).
type GaussCPD struct {
	child        string
	parents      []string
	coefficients []float64 // aligned with parents
	intercept    float64
	variance     float64
}

// NewGaussCPD validates and freezes a conditional. variance must be finite
// and strictly positive; coefficients align with parents.
func NewGaussCPD(child string, parents []string, coefficients []float64, intercept, variance float64) (*GaussCPD, error) {
	if len(coefficients) != len(parents) {
		return nil, fmt.Errorf("child %q: %w", child, ErrShapeMismatch)
	}
	if variance <= 0 || math.IsNaN(variance) || math.IsInf(variance, 0) {
		return nil, fmt.Errorf("child %q variance %v: %w", child, variance, ErrBadVariance)
	}
	for i, b := range coefficients {
		if math.IsNaN(b) || math.IsInf(b, 0) {
			return nil, fmt.Errorf("child %q coefficient %d: %w", child, i, ErrBadVariance)
		}
	}
	if math.IsNaN(intercept) || math.IsInf(intercept, 0) {
		return nil, fmt.Errorf("child %q intercept: %w", child, ErrBadVariance)
	}

	return &GaussCPD{
		child:        child,
		parents:      append([]string(nil), parents...),
		coefficients: append([]float64(nil), coefficients...),
		intercept:    intercept,
		variance:     variance,
	}, nil
}

// Child returns the child label.
func (g *GaussCPD) Child() string { return g.child }

// Parents returns the parent labels in coefficient order.
func (g *GaussCPD) Parents() []string { return append([]string(nil), g.parents...) }

// Coefficients returns the regression weights aligned with Parents().
func (g *GaussCPD) Coefficients() []float64 { return append([]float64(nil), g.coefficients...) }

// Intercept returns the constant term.
func (g *GaussCPD) Intercept() float64 { return g.intercept }

// Variance returns the noise variance.
func (g *GaussCPD) Variance() float64 { return g.variance }

// Mean returns the conditional mean for one parent value vector.
func (g *GaussCPD) Mean(parents []float64) (float64, error) {
	if len(parents) != len(g.coefficients) {
		return 0, fmt.Errorf("child %q: %w", g.child, ErrShapeMismatch)
	}

	return g.intercept + floats.Dot(g.coefficients, parents), nil
}

// Sample draws one child value given parent values, using the source for
// the Gaussian noise.
func (g *GaussCPD) Sample(parents []float64, rng *rand.Rand) (float64, error) {
	mu, err := g.Mean(parents)
	if err != nil {
		return 0, err
	}
	n := distuv.Normal{Mu: mu, Sigma: math.Sqrt(g.variance), Src: rng}

	return n.Rand(), nil
}

// LogLikelihood scores one observation.
func (g *GaussCPD) LogLikelihood(child float64, parents []float64) (float64, error) {
	mu, err := g.Mean(parents)
	if err != nil {
		return 0, err
	}
	n := distuv.Normal{Mu: mu, Sigma: math.Sqrt(g.variance)}

	return n.LogProb(child), nil
}

// ParameterCount returns the free-parameter count: one coefficient per
// parent, the intercept, and the variance.
func (g *GaussCPD) ParameterCount() int { return len(g.coefficients) + 2 }

// EqualTol reports whether two conditionals share names and parameters
// within tol.
func (g *GaussCPD) EqualTol(o *GaussCPD, tol float64) bool {
	if g.child != o.child || !sliceEqual(g.parents, o.parents) {
		return false
	}
	if math.Abs(g.intercept-o.intercept) > tol || math.Abs(g.variance-o.variance) > tol {
		return false
	}
	for i := range g.coefficients {
		if math.Abs(g.coefficients[i]-o.coefficients[i]) > tol {
			return false
		}
	}

	return true
}
