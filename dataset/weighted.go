// SPDX-License-Identifier: MIT
// Package dataset: weighted trajectories, the currency of the importance
// imputation performed by continuous-time EM. Each path carries a
// non-negative finite weight; estimation scales counts and sojourn times
// by it.

package dataset

import (
	"fmt"
	"math"
)

// WeightedTrajectories pairs a trajectory collection with per-path
// importance weights.
type WeightedTrajectories struct {
	paths   *Trajectories
	weights []float64
}

// NewWeightedTrajectories validates the pairing: one weight per path, every
// weight finite and non-negative.
func NewWeightedTrajectories(paths *Trajectories, weights []float64) (*WeightedTrajectories, error) {
	if paths == nil || paths.Len() == 0 {
		return nil, ErrNoTrajectories
	}
	if len(weights) != paths.Len() {
		return nil, fmt.Errorf("weights vs. paths: %w", ErrLengthMismatch)
	}
	for i, w := range weights {
		if math.IsNaN(w) || math.IsInf(w, 0) || w < 0 {
			return nil, fmt.Errorf("path %d weight %v: %w", i, w, ErrBadWeight)
		}
	}

	return &WeightedTrajectories{
		paths:   paths,
		weights: append([]float64(nil), weights...),
	}, nil
}

// Uniform wraps a collection with unit weights.
func Uniform(paths *Trajectories) (*WeightedTrajectories, error) {
	if paths == nil || paths.Len() == 0 {
		return nil, ErrNoTrajectories
	}
	w := make([]float64, paths.Len())
	for i := range w {
		w[i] = 1
	}

	return &WeightedTrajectories{paths: paths, weights: w}, nil
}

// Trajectories returns the underlying collection.
func (w *WeightedTrajectories) Trajectories() *Trajectories { return w.paths }

// Weights returns a copy of the per-path weights.
func (w *WeightedTrajectories) Weights() []float64 { return append([]float64(nil), w.weights...) }

// Weight returns the weight of path i without copying.
func (w *WeightedTrajectories) Weight(i int) float64 { return w.weights[i] }

// Len returns the number of paths.
func (w *WeightedTrajectories) Len() int { return w.paths.Len() }

// TotalWeight returns the weight sum.
func (w *WeightedTrajectories) TotalWeight() float64 {
	s := 0.0
	for _, x := range w.weights {
		s += x
	}

	return s
}
