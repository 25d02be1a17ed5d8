// SPDX-License-Identifier: MIT
// Package bn: the linear-Gaussian network.

package bn

import (
	"fmt"

	"github.com/katalvlaran/causal/dataset"
	"github.com/katalvlaran/causal/digraph"
	"github.com/katalvlaran/causal/distribution"
	"github.com/katalvlaran/causal/estimate"
)

// GaussBN is an immutable linear-Gaussian network: a directed acyclic
// graph and one linear-Gaussian conditional per vertex.
type GaussBN struct {
	graph *digraph.DiGraph
	cpds  map[string]*distribution.GaussCPD
}

// NewGaussBN assembles a network, validating that every vertex has a
// conditional whose parents match the graph.
func NewGaussBN(g *digraph.DiGraph, cpds map[string]*distribution.GaussCPD) (*GaussBN, error) {
	for _, label := range g.Labels() {
		cpd, ok := cpds[label]
		if !ok {
			return nil, fmt.Errorf("vertex %q has no conditional: %w", label, ErrLabelMismatch)
		}
		parents, err := g.Parents(label)
		if err != nil {
			return nil, err
		}
		if !stringSlicesEqual(parents, cpd.Parents()) {
			return nil, fmt.Errorf("vertex %q parents: %w", label, ErrLabelMismatch)
		}
	}
	frozen := make(map[string]*distribution.GaussCPD, len(cpds))
	for _, label := range g.Labels() {
		frozen[label] = cpds[label]
	}

	return &GaussBN{graph: g.Clone(), cpds: frozen}, nil
}

// FitGauss estimates one conditional per vertex from a continuous table.
// MLE is plain least squares; Bayes applies ridge shrinkage with
// WithRidge's strength.
func FitGauss(table *dataset.GaussTable, g *digraph.DiGraph, method Method, opts ...FitOption) (*GaussBN, error) {
	cfg := newFitConfig(opts)
	cpds := make(map[string]*distribution.GaussCPD, len(g.Labels()))
	for _, label := range g.Labels() {
		var (
			cpd *distribution.GaussCPD
			err error
		)
		switch method {
		case MLE:
			cpd, err = estimate.MLEGaussCPD(table, g, label)
		case Bayes:
			cpd, err = estimate.BayesGaussCPD(table, g, label, cfg.ridge)
		default:
			return nil, fmt.Errorf("%q: %w", method, ErrUnknownMethod)
		}
		if err != nil {
			return nil, fmt.Errorf("bn: %w", err)
		}
		cpds[label] = cpd
	}

	return NewGaussBN(g, cpds)
}

// Graph returns a copy of the structure.
func (m *GaussBN) Graph() *digraph.DiGraph { return m.graph.Clone() }

// Labels returns the sorted vertex labels.
func (m *GaussBN) Labels() []string { return m.graph.Labels() }

// CPD returns the conditional of one vertex.
func (m *GaussBN) CPD(label string) (*distribution.GaussCPD, bool) {
	cpd, ok := m.cpds[label]

	return cpd, ok
}

// LogLikelihood scores a continuous table under the model row by row.
func (m *GaussBN) LogLikelihood(table *dataset.GaussTable) (float64, error) {
	labels := table.Labels()
	if !stringSlicesEqual(labels, m.graph.Labels()) {
		return 0, ErrLabelMismatch
	}
	pos := make(map[string]int, len(labels))
	for i, l := range labels {
		pos[l] = i
	}

	ll := 0.0
	for _, label := range labels {
		cpd := m.cpds[label]
		parents := cpd.Parents()
		ci := pos[label]
		pvals := make([]float64, len(parents))
		for r := 0; r < table.SampleSize(); r++ {
			for i, p := range parents {
				pvals[i] = table.At(r, pos[p])
			}
			part, err := cpd.LogLikelihood(table.At(r, ci), pvals)
			if err != nil {
				return 0, fmt.Errorf("bn: %w", err)
			}
			ll += part
		}
	}

	return ll, nil
}

// ParameterCount returns the free-parameter count of the whole network.
func (m *GaussBN) ParameterCount() int {
	n := 0
	for _, cpd := range m.cpds {
		n += cpd.ParameterCount()
	}

	return n
}

// EqualTol reports whether two networks share structure and parameters
// within tol.
func (m *GaussBN) EqualTol(o *GaussBN, tol float64) bool {
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
