// SPDX-License-Identifier: MIT
// Package bn: ancestral sampling. Vertices are visited in the graph's
// deterministic topological order, so one seed always reproduces one
// table.

package bn

import (
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/causal/dataset"
	"github.com/katalvlaran/causal/distribution"
)

// Sample draws n independent rows ancestrally and returns them as a
// canonical table carrying the model's state spaces.
func (m *CatBN) Sample(n int, seed uint64) (*dataset.CatTable, error) {
	if n <= 0 {
		return nil, ErrBadSampleSize
	}
	labels := m.graph.Labels()
	order := m.graph.TopologicalOrder()
	pos := make(map[string]int, len(labels))
	for i, l := range labels {
		pos[l] = i
	}

	rng := rand.New(rand.NewPCG(seed, 0))
	values := make([][]int, n)
	row := make([]int, len(labels))
	for r := 0; r < n; r++ {
		for _, label := range order {
			cpd := m.cpds[label]
			parents := cpd.Parents()
			pstates := make([]int, len(parents))
			for i, p := range parents {
				pstates[i] = row[pos[p]]
			}
			u, err := distribution.Ravel(pstates, cpd.ParentCard())
			if err != nil {
				return nil, fmt.Errorf("bn: %w", err)
			}
			row[pos[label]] = cpd.Sample(u, rng)
		}
		values[r] = append([]int(nil), row...)
	}

	table, err := dataset.FromCodes(labels, m.StateSpaces(), values)
	if err != nil {
		return nil, fmt.Errorf("bn: %w", err)
	}

	return table, nil
}

// Sample draws n independent rows ancestrally from the linear-Gaussian
// network.
func (m *GaussBN) Sample(n int, seed uint64) (*dataset.GaussTable, error) {
	if n <= 0 {
		return nil, ErrBadSampleSize
	}
	labels := m.graph.Labels()
	order := m.graph.TopologicalOrder()
	pos := make(map[string]int, len(labels))
	for i, l := range labels {
		pos[l] = i
	}

	rng := rand.New(rand.NewPCG(seed, 0))
	values := mat.NewDense(n, len(labels), nil)
	row := make([]float64, len(labels))
	for r := 0; r < n; r++ {
		for _, label := range order {
			cpd := m.cpds[label]
			parents := cpd.Parents()
			pvals := make([]float64, len(parents))
			for i, p := range parents {
				pvals[i] = row[pos[p]]
			}
			v, err := cpd.Sample(pvals, rng)
			if err != nil {
				return nil, fmt.Errorf("bn: %w", err)
			}
			row[pos[label]] = v
		}
		values.SetRow(r, row)
	}

	table, err := dataset.GaussFromMatrix(labels, values)
	if err != nil {
		return nil, fmt.Errorf("bn: %w", err)
	}

	return table, nil
}
