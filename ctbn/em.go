// SPDX-License-Identifier: MIT
// Package ctbn: learning from interval evidence. Exact continuous-time
// inference is intractable, so the E-step is Monte-Carlo imputation: per
// evidence element the current model proposes candidate trajectories, each
// candidate is weighted by how well it honors the asserted intervals, and
// the best candidate survives with its weight. The M-step refits with the
// (alpha, tau) prior so sparse imputations cannot zero out a rate.

package ctbn

import (
	"fmt"
	"math"

	"github.com/katalvlaran/causal/dataset"
	"github.com/katalvlaran/causal/digraph"
	"github.com/katalvlaran/causal/distribution"
	"github.com/katalvlaran/causal/estimate"
)

// Default EM controls.
const (
	DefaultEMTolerance  = 1e-4
	DefaultImputations  = 10
	defaultHorizonGuard = 1.0 // horizon for evidence sets with zero span
)

// EMStep records one iteration: the refitted model, the weighted
// statistics that produced it, and the mean imputation weight (the
// evidence-agreement score being maximized).
type EMStep struct {
	Model        *CatCTBN
	Expectations []estimate.TrajStats
	Score        float64
}

// EMResult is the outcome of an EM run. Converged is false when the
// iteration bound was hit first; the result is still usable.
type EMResult struct {
	Model     *CatCTBN
	History   []EMStep
	Converged bool
}

// emConfig collects the optional EM switches.
type emConfig struct {
	tolerance   float64
	imputations int
	alpha       float64
	tau         float64
}

// EMOption adjusts the EM run.
type EMOption func(*emConfig)

// WithTolerance sets the convergence threshold on score gain (default
// DefaultEMTolerance).
func WithTolerance(tol float64) EMOption {
	return func(c *emConfig) { c.tolerance = tol }
}

// WithImputations sets the candidate count per evidence element (default
// DefaultImputations).
func WithImputations(k int) EMOption {
	return func(c *emConfig) { c.imputations = k }
}

// WithEMAlpha sets the pseudo-transition count of the M-step prior.
func WithEMAlpha(alpha float64) EMOption {
	return func(c *emConfig) { c.alpha = alpha }
}

// WithEMTau sets the pseudo-sojourn time of the M-step prior.
func WithEMTau(tau float64) EMOption {
	return func(c *emConfig) { c.tau = tau }
}

// EM fits a continuous-time network to interval evidence. The starting
// model carries unit-rate intensities; iteration i samples imputations
// with seed+i so identical calls reproduce identical runs. History holds
// at most maxIter steps.
func EM(evidence *dataset.EvidenceSet, g *digraph.DiGraph, maxIter int, seed uint64, opts ...EMOption) (*EMResult, error) {
	if maxIter <= 0 {
		return nil, ErrBadIterations
	}
	cfg := emConfig{
		tolerance:   DefaultEMTolerance,
		imputations: DefaultImputations,
		alpha:       estimate.DefaultAlpha,
		tau:         estimate.DefaultTau,
	}
	for _, o := range opts {
		o(&cfg)
	}
	if cfg.imputations <= 0 {
		return nil, ErrBadImputations
	}
	if !stringSlicesEqual(evidence.Labels(), g.Labels()) {
		return nil, ErrLabelMismatch
	}

	current, err := UnitRate(evidence, g)
	if err != nil {
		return nil, err
	}
	horizon := evidence.Horizon()
	if horizon <= 0 {
		horizon = defaultHorizonGuard
	}

	result := &EMResult{}
	prevScore := math.Inf(-1)
	for i := 0; i < maxIter; i++ {
		weighted, score, err := Impute(current, evidence, horizon, cfg.imputations, seed+uint64(i))
		if err != nil {
			return nil, err
		}
		stats, err := estimate.CollectTrajectoryWeighted(weighted, g)
		if err != nil {
			return nil, fmt.Errorf("ctbn: %w", err)
		}
		next, err := fitFromStats(g, stats, Bayes, fitConfig{alpha: cfg.alpha, tau: cfg.tau})
		if err != nil {
			return nil, err
		}

		result.History = append(result.History, EMStep{Model: next, Expectations: stats, Score: score})
		current = next

		if i > 0 && math.Abs(score-prevScore) < cfg.tolerance {
			result.Converged = true

			break
		}
		prevScore = score
	}
	result.Model = current

	return result, nil
}

// Impute draws k candidate trajectories per evidence element from m and
// keeps the best-agreeing one, weighted by its agreement with the asserted
// intervals. It returns the kept paths and the mean kept weight. The
// structural search shares it with EM.
func Impute(m *CatCTBN, evidence *dataset.EvidenceSet, horizon float64, k int, seed uint64) (*dataset.WeightedTrajectories, float64, error) {
	kept := make([]*dataset.Trajectory, 0, evidence.Len())
	weights := make([]float64, 0, evidence.Len())
	sum := 0.0
	for e := 0; e < evidence.Len(); e++ {
		elem := evidence.Element(e)
		candidates, err := m.Sample(k, horizon, seed+uint64(e)*7919)
		if err != nil {
			return nil, 0, err
		}
		bestW := -1.0
		var best *dataset.Trajectory
		for c := 0; c < candidates.Len(); c++ {
			tr := candidates.Path(c)
			w := agreement(tr, elem, m.Labels())
			if w > bestW {
				bestW = w
				best = tr
			}
		}
		kept = append(kept, best)
		weights = append(weights, bestW)
		sum += bestW
	}

	paths, err := dataset.NewTrajectories(kept)
	if err != nil {
		return nil, 0, fmt.Errorf("ctbn: %w", err)
	}
	weighted, err := dataset.NewWeightedTrajectories(paths, weights)
	if err != nil {
		return nil, 0, fmt.Errorf("ctbn: %w", err)
	}

	return weighted, sum / float64(len(weights)), nil
}

// agreement scores a trajectory against one evidence element: the fraction
// of asserted interval time during which the trajectory matches the
// asserted state. An element with no assertions scores one.
func agreement(tr *dataset.Trajectory, elem *dataset.IntervalEvidence, labels []string) float64 {
	states := elem.StateSpaces()
	pos := make(map[string]int, len(labels))
	for i, l := range labels {
		pos[l] = i
	}

	asserted := 0.0
	matched := 0.0
	times := tr.Times()
	for li, label := range elem.Labels() {
		for _, rec := range elem.Records(label) {
			asserted += rec.End - rec.Start
			want := stateCode(rec.State, states[li])
			// Walk the trajectory segments overlapping [Start, End).
			for r := 0; r+1 < len(times); r++ {
				lo := math.Max(times[r], rec.Start)
				hi := math.Min(times[r+1], rec.End)
				if hi <= lo {
					continue
				}
				if tr.At(r, pos[label]) == want {
					matched += hi - lo
				}
			}
		}
	}
	if asserted == 0 {
		return 1
	}

	return matched / asserted
}

func stateCode(state string, states []string) int {
	for i, s := range states {
		if s == state {
			return i
		}
	}

	return dataset.Missing
}

// UnitRate builds the maximum-entropy starting model over the evidence's
// union state spaces: every vertex carries unit leaving rates with uniform
// destinations under every configuration.
func UnitRate(evidence *dataset.EvidenceSet, g *digraph.DiGraph) (*CatCTBN, error) {
	labels := evidence.Labels()
	spaces := evidence.StateSpaces()
	pos := make(map[string]int, len(labels))
	for i, l := range labels {
		pos[l] = i
	}

	cims := make(map[string]*distribution.CatCIM, len(labels))
	for j, child := range labels {
		parents, err := g.Parents(child)
		if err != nil {
			return nil, err
		}
		pstates := make([][]string, len(parents))
		for i, p := range parents {
			pstates[i] = spaces[pos[p]]
		}
		cim, err := distribution.UnitRateCIM(child, spaces[j], parents, pstates)
		if err != nil {
			return nil, fmt.Errorf("ctbn: %w", err)
		}
		cims[child] = cim
	}

	return NewCatCTBN(g, cims)
}
