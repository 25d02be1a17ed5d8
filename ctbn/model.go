// SPDX-License-Identifier: MIT
// Package ctbn: the model type and its estimators.

package ctbn

import (
	"fmt"

	"github.com/katalvlaran/causal/dataset"
	"github.com/katalvlaran/causal/digraph"
	"github.com/katalvlaran/causal/distribution"
	"github.com/katalvlaran/causal/estimate"
)

// Method selects the parameter estimator.
type Method string

const (
	// MLE is strict maximum likelihood (rate = transitions over sojourn).
	MLE Method = "mle"
	// Bayes smooths rates with an (alpha, tau) prior.
	Bayes Method = "bayes"
)

// CatCTBN is an immutable continuous-time categorical network: a directed
// acyclic graph and one conditional intensity matrix per vertex.
type CatCTBN struct {
	graph *digraph.DiGraph
	cims  map[string]*distribution.CatCIM
}

// fitConfig collects the optional estimation switches.
type fitConfig struct {
	alpha float64
	tau   float64
}

// FitOption adjusts estimation.
type FitOption func(*fitConfig)

// WithAlpha sets the pseudo-transition count of the Bayesian prior
// (default estimate.DefaultAlpha).
func WithAlpha(alpha float64) FitOption {
	return func(c *fitConfig) { c.alpha = alpha }
}

// WithTau sets the pseudo-sojourn time of the Bayesian prior (default
// estimate.DefaultTau).
func WithTau(tau float64) FitOption {
	return func(c *fitConfig) { c.tau = tau }
}

func newFitConfig(opts []FitOption) fitConfig {
	cfg := fitConfig{alpha: estimate.DefaultAlpha, tau: estimate.DefaultTau}
	for _, o := range opts {
		o(&cfg)
	}

	return cfg
}

// NewCatCTBN assembles a network from a graph and per-vertex intensity
// matrices, validating that every vertex is covered and parents match.
func NewCatCTBN(g *digraph.DiGraph, cims map[string]*distribution.CatCIM) (*CatCTBN, error) {
	for _, label := range g.Labels() {
		cim, ok := cims[label]
		if !ok {
			return nil, fmt.Errorf("vertex %q has no intensity matrix: %w", label, ErrLabelMismatch)
		}
		parents, err := g.Parents(label)
		if err != nil {
			return nil, err
		}
		if !stringSlicesEqual(parents, cim.Parents()) {
			return nil, fmt.Errorf("vertex %q parents: %w", label, ErrLabelMismatch)
		}
	}
	frozen := make(map[string]*distribution.CatCIM, len(cims))
	for _, label := range g.Labels() {
		frozen[label] = cims[label]
	}

	return &CatCTBN{graph: g.Clone(), cims: frozen}, nil
}

// Fit estimates one intensity matrix per vertex from a trajectory
// collection.
func Fit(paths *dataset.Trajectories, g *digraph.DiGraph, method Method, opts ...FitOption) (*CatCTBN, error) {
	cfg := newFitConfig(opts)
	stats, err := estimate.CollectTrajectory(paths, g)
	if err != nil {
		return nil, fmt.Errorf("ctbn: %w", err)
	}

	return fitFromStats(g, stats, method, cfg)
}

// FitWeighted is Fit over importance-weighted trajectories; the EM M-step
// uses it.
func FitWeighted(weighted *dataset.WeightedTrajectories, g *digraph.DiGraph, method Method, opts ...FitOption) (*CatCTBN, error) {
	cfg := newFitConfig(opts)
	stats, err := estimate.CollectTrajectoryWeighted(weighted, g)
	if err != nil {
		return nil, fmt.Errorf("ctbn: %w", err)
	}

	return fitFromStats(g, stats, method, cfg)
}

func fitFromStats(g *digraph.DiGraph, stats []estimate.TrajStats, method Method, cfg fitConfig) (*CatCTBN, error) {
	cims := make(map[string]*distribution.CatCIM, len(stats))
	for _, ts := range stats {
		var (
			cim *distribution.CatCIM
			err error
		)
		switch method {
		case MLE:
			cim, err = estimate.MLECatCIM(ts)
		case Bayes:
			cim, err = estimate.BayesCatCIM(ts, cfg.alpha, cfg.tau)
		default:
			return nil, fmt.Errorf("%q: %w", method, ErrUnknownMethod)
		}
		if err != nil {
			return nil, fmt.Errorf("ctbn: %w", err)
		}
		cims[ts.Child] = cim
	}

	return NewCatCTBN(g, cims)
}

// Graph returns a copy of the structure.
func (m *CatCTBN) Graph() *digraph.DiGraph { return m.graph.Clone() }

// Labels returns the sorted vertex labels.
func (m *CatCTBN) Labels() []string { return m.graph.Labels() }

// CIM returns the intensity matrix of one vertex.
func (m *CatCTBN) CIM(label string) (*distribution.CatCIM, bool) {
	cim, ok := m.cims[label]

	return cim, ok
}

// StateSpaces returns the state spaces aligned with Labels().
func (m *CatCTBN) StateSpaces() [][]string {
	labels := m.graph.Labels()
	out := make([][]string, len(labels))
	for i, l := range labels {
		out[i] = m.cims[l].States()
	}

	return out
}

// LogLikelihood scores a trajectory collection under the model.
func (m *CatCTBN) LogLikelihood(paths *dataset.Trajectories) (float64, error) {
	stats, err := estimate.CollectTrajectory(paths, m.graph)
	if err != nil {
		return 0, fmt.Errorf("ctbn: %w", err)
	}
	ll := 0.0
	for _, ts := range stats {
		part, err := m.cims[ts.Child].LogLikelihood(ts.Transitions, ts.Sojourn)
		if err != nil {
			return 0, fmt.Errorf("ctbn: %w", err)
		}
		ll += part
	}

	return ll, nil
}

// ParameterCount returns the free-parameter count of the whole network.
func (m *CatCTBN) ParameterCount() int {
	n := 0
	for _, cim := range m.cims {
		n += cim.ParameterCount()
	}

	return n
}

// EqualTol reports whether two networks share structure and rates within
// tol.
func (m *CatCTBN) EqualTol(o *CatCTBN, tol float64) bool {
	if !m.graph.Equal(o.graph) {
		return false
	}
	for l, cim := range m.cims {
		oc, ok := o.cims[l]
		if !ok || !cim.EqualTol(oc, tol) {
			return false
		}
	}

	return true
}

func stringSlicesEqual(a, b []string) bool {
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
