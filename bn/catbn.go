// SPDX-License-Identifier: MIT
// Package bn: the categorical network.

package bn

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/causal/dataset"
	"github.com/katalvlaran/causal/digraph"
	"github.com/katalvlaran/causal/distribution"
	"github.com/katalvlaran/causal/estimate"
)

// Method selects the parameter estimator.
type Method string

const (
	// MLE is strict maximum likelihood.
	MLE Method = "mle"
	// Bayes is the Dirichlet-smoothed posterior mean.
	Bayes Method = "bayes"
)

// CatBN is an immutable categorical network: a directed acyclic graph and
// one conditional probability table per vertex.
type CatBN struct {
	graph *digraph.DiGraph
	cpds  map[string]*distribution.CatCPD
}

// fitConfig collects the optional estimation switches.
type fitConfig struct {
	alpha float64
	ridge float64
}

// FitOption adjusts estimation.
type FitOption func(*fitConfig)

// WithAlpha sets the Dirichlet hyperparameter for Bayesian estimation
// (default estimate.DefaultAlpha).
func WithAlpha(alpha float64) FitOption {
	return func(c *fitConfig) { c.alpha = alpha }
}

// WithRidge sets the shrinkage strength for Bayesian Gaussian estimation
// (default estimate.DefaultRidge).
func WithRidge(lambda float64) FitOption {
	return func(c *fitConfig) { c.ridge = lambda }
}

func newFitConfig(opts []FitOption) fitConfig {
	cfg := fitConfig{alpha: estimate.DefaultAlpha, ridge: estimate.DefaultRidge}
	for _, o := range opts {
		o(&cfg)
	}

	return cfg
}

// NewCatBN assembles a network from a graph and per-vertex tables,
// validating that every vertex has a table whose parents match the graph.
func NewCatBN(g *digraph.DiGraph, cpds map[string]*distribution.CatCPD) (*CatBN, error) {
	for _, label := range g.Labels() {
		cpd, ok := cpds[label]
		if !ok {
			return nil, fmt.Errorf("vertex %q has no table: %w", label, ErrLabelMismatch)
		}
		parents, err := g.Parents(label)
		if err != nil {
			return nil, err
		}
		if !stringSlicesEqual(parents, cpd.Parents()) {
			return nil, fmt.Errorf("vertex %q parents: %w", label, ErrLabelMismatch)
		}
	}
	frozen := make(map[string]*distribution.CatCPD, len(cpds))
	for _, label := range g.Labels() {
		frozen[label] = cpds[label]
	}

	return &CatBN{graph: g.Clone(), cpds: frozen}, nil
}

// FitCat estimates one table per vertex from a complete table.
func FitCat(table *dataset.CatTable, g *digraph.DiGraph, method Method, opts ...FitOption) (*CatBN, error) {
	cfg := newFitConfig(opts)
	stats, err := estimate.CollectCat(table, g)
	if err != nil {
		return nil, fmt.Errorf("bn: %w", err)
	}

	cpds := make(map[string]*distribution.CatCPD, len(stats))
	for _, cc := range stats {
		var cpd *distribution.CatCPD
		switch method {
		case MLE:
			cpd, err = estimate.MLECatCPD(cc)
		case Bayes:
			cpd, err = estimate.BayesCatCPD(cc, cfg.alpha)
		default:
			return nil, fmt.Errorf("%q: %w", method, ErrUnknownMethod)
		}
		if err != nil {
			return nil, fmt.Errorf("bn: %w", err)
		}
		cpds[cc.Child] = cpd
	}

	return NewCatBN(g, cpds)
}

// Graph returns a copy of the structure.
func (m *CatBN) Graph() *digraph.DiGraph { return m.graph.Clone() }

// Labels returns the sorted vertex labels.
func (m *CatBN) Labels() []string { return m.graph.Labels() }

// CPD returns the table of one vertex.
func (m *CatBN) CPD(label string) (*distribution.CatCPD, bool) {
	cpd, ok := m.cpds[label]

	return cpd, ok
}

// StateSpaces returns the state spaces aligned with Labels().
func (m *CatBN) StateSpaces() [][]string {
	labels := m.graph.Labels()
	out := make([][]string, len(labels))
	for i, l := range labels {
		out[i] = m.cpds[l].States()
	}

	return out
}

// LogLikelihood scores a complete table under the model.
func (m *CatBN) LogLikelihood(table *dataset.CatTable) (float64, error) {
	stats, err := estimate.CollectCat(table, m.graph)
	if err != nil {
		return 0, fmt.Errorf("bn: %w", err)
	}
	ll := 0.0
	for _, cc := range stats {
		part, err := m.cpds[cc.Child].LogLikelihood(cc.Counts)
		if err != nil {
			return 0, fmt.Errorf("bn: %w", err)
		}
		ll += part
	}

	return ll, nil
}

// ParameterCount returns the free-parameter count of the whole network.
func (m *CatBN) ParameterCount() int {
	n := 0
	for _, cpd := range m.cpds {
		n += cpd.ParameterCount()
	}

	return n
}

// EqualTol reports whether two networks share structure and parameters
// within tol.
func (m *CatBN) EqualTol(o *CatBN, tol float64) bool {
	if !m.graph.Equal(o.graph) {
		return false
	}
	for l, cpd := range m.cpds {
		oc, ok := o.cpds[l]
		if !ok || !cpd.EqualTol(oc, tol) {
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

// tableOf is a small helper for tests and fixtures: it builds a dense
// probability table from rows.
func tableOf(rows ...[]float64) *mat.Dense {
	r := len(rows)
	c := len(rows[0])
	m := mat.NewDense(r, c, nil)
	for i, row := range rows {
		m.SetRow(i, row)
	}

	return m
}
