// SPDX-License-Identifier: MIT
// Package search: structural EM over interval evidence. Each iteration
// imputes weighted trajectories under the current model, climbs the
// structure on the imputed data, and refits the parameters on the winning
// structure. Convergence means the structure stopped moving and the score
// settled.

package search

import (
	"fmt"
	"math"

	"github.com/katalvlaran/causal/ctbn"
	"github.com/katalvlaran/causal/dataset"
	"github.com/katalvlaran/causal/digraph"
)

// CTHC names the continuous-time hill-climbing algorithm, the only
// structural-EM algorithm currently implemented.
const CTHC = "cthc"

// Default structural-EM controls.
const (
	DefaultSEMTolerance = 1e-3
	defaultHorizon      = 1.0 // evidence sets with zero span
)

// SEMStep records one iteration: the structure chosen on the imputed
// data, the refitted model, the structure's score on that data, and the
// mean evidence agreement of the imputation.
type SEMStep struct {
	Graph     *digraph.DiGraph
	Model     *ctbn.CatCTBN
	Score     float64
	Agreement float64
}

// SEMResult is the outcome of a structural-EM run. Converged is false
// when the iteration bound was hit first; the result is still usable.
type SEMResult struct {
	Model     *ctbn.CatCTBN
	Graph     *digraph.DiGraph
	History   []SEMStep
	Converged bool
}

// semConfig collects the optional switches.
type semConfig struct {
	score       ScoreName
	maxParents  int
	tolerance   float64
	imputations int
}

// SEMOption adjusts the structural-EM run.
type SEMOption func(*semConfig)

// WithScore selects the structure score, BIC or AIC (default BIC).
func WithScore(s ScoreName) SEMOption {
	return func(c *semConfig) { c.score = s }
}

// WithParentLimit caps the in-degree of every vertex during the structure
// step (0 means unlimited).
func WithParentLimit(n int) SEMOption {
	return func(c *semConfig) { c.maxParents = n }
}

// WithConvergence sets the score-settling threshold (default
// DefaultSEMTolerance).
func WithConvergence(tol float64) SEMOption {
	return func(c *semConfig) { c.tolerance = tol }
}

// WithImputationCount sets the candidate trajectories drawn per evidence
// element each iteration (default ctbn.DefaultImputations).
func WithImputationCount(k int) SEMOption {
	return func(c *semConfig) { c.imputations = k }
}

// SEM learns a continuous-time structure and parameters from interval
// evidence. algorithm must be CTHC. Iteration i imputes with seed+i, so
// identical calls reproduce identical runs; History holds at most maxIter
// steps.
func SEM(evidence *dataset.EvidenceSet, pk *PriorKnowledge, algorithm string, maxIter int, seed uint64, opts ...SEMOption) (*SEMResult, error) {
	if algorithm != CTHC {
		return nil, fmt.Errorf("%q: %w", algorithm, ErrUnknownAlgorithm)
	}
	if maxIter <= 0 {
		return nil, ErrBadIterations
	}
	cfg := semConfig{
		score:       BIC,
		tolerance:   DefaultSEMTolerance,
		imputations: ctbn.DefaultImputations,
	}
	for _, o := range opts {
		o(&cfg)
	}
	if !validScore(cfg.score) {
		return nil, fmt.Errorf("%q: %w", cfg.score, ErrUnknownScore)
	}

	labels := evidence.Labels()
	if pk == nil {
		pk = NewPriorKnowledge(labels)
	}
	if !labelsMatch(labels, pk.Labels()) {
		return nil, ErrLabelMismatch
	}

	start, err := startGraph(labels, pk, climbConfig{})
	if err != nil {
		return nil, err
	}
	current, err := ctbn.UnitRate(evidence, start)
	if err != nil {
		return nil, err
	}
	horizon := evidence.Horizon()
	if horizon <= 0 {
		horizon = defaultHorizon
	}

	result := &SEMResult{}
	prevScore := math.Inf(-1)
	var prevGraph *digraph.DiGraph
	for i := 0; i < maxIter; i++ {
		weighted, agree, err := ctbn.Impute(current, evidence, horizon, cfg.imputations, seed+uint64(i))
		if err != nil {
			return nil, err
		}

		g, best, err := HillClimbCTBNWeighted(weighted, pk,
			WithScoreName(cfg.score), WithMaxParents(cfg.maxParents))
		if err != nil {
			return nil, err
		}

		model, err := ctbn.FitWeighted(weighted, g, ctbn.Bayes)
		if err != nil {
			return nil, err
		}

		result.History = append(result.History, SEMStep{
			Graph:     g,
			Model:     model,
			Score:     best,
			Agreement: agree,
		})
		current = model

		if prevGraph != nil && g.Equal(prevGraph) && math.Abs(best-prevScore) < cfg.tolerance {
			result.Converged = true

			break
		}
		prevGraph = g
		prevScore = best
	}
	last := result.History[len(result.History)-1]
	result.Model = last.Model
	result.Graph = last.Graph

	return result, nil
}
