// SPDX-License-Identifier: MIT
// Package ctbn: competing-exponentials simulation. Every variable holds
// one exponential clock under its current configuration; the earliest
// clock fires, the winner jumps, and only the winner and its children
// re-draw (their configurations are the only ones that changed — the
// remaining clocks stay valid by memorylessness).

package ctbn

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/katalvlaran/causal/dataset"
	"github.com/katalvlaran/causal/distribution"
)

// Sample simulates n independent trajectories on [0, maxTime]. Each path
// starts from a uniform per-variable draw, records one row per jump, and
// closes with a terminal row at maxTime so the final sojourn is part of
// the sufficient statistics.
func (m *CatCTBN) Sample(n int, maxTime float64, seed uint64) (*dataset.Trajectories, error) {
	if n <= 0 {
		return nil, ErrBadSampleSize
	}
	if maxTime <= 0 || math.IsNaN(maxTime) || math.IsInf(maxTime, 0) {
		return nil, ErrBadHorizon
	}

	labels := m.graph.Labels()
	spaces := m.StateSpaces()
	pos := make(map[string]int, len(labels))
	for i, l := range labels {
		pos[l] = i
	}
	childIdx := make([][]int, len(labels))
	parentIdx := make([][]int, len(labels))
	for j, l := range labels {
		children, err := m.graph.Children(l)
		if err != nil {
			return nil, err
		}
		for _, c := range children {
			childIdx[j] = append(childIdx[j], pos[c])
		}
		for _, p := range m.cims[l].Parents() {
			parentIdx[j] = append(parentIdx[j], pos[p])
		}
	}

	rng := rand.New(rand.NewPCG(seed, 0))
	paths := make([]*dataset.Trajectory, n)
	for p := 0; p < n; p++ {
		tr, err := m.simulate(labels, spaces, childIdx, parentIdx, maxTime, rng)
		if err != nil {
			return nil, err
		}
		paths[p] = tr
	}

	collection, err := dataset.NewTrajectories(paths)
	if err != nil {
		return nil, fmt.Errorf("ctbn: %w", err)
	}

	return collection, nil
}

func (m *CatCTBN) simulate(labels []string, spaces [][]string, childIdx, parentIdx [][]int, maxTime float64, rng *rand.Rand) (*dataset.Trajectory, error) {
	nv := len(labels)
	state := make([]int, nv)
	for j := range state {
		state[j] = rng.IntN(len(spaces[j]))
	}

	config := func(j int) (int, error) {
		pstates := make([]int, len(parentIdx[j]))
		for i, pj := range parentIdx[j] {
			pstates[i] = state[pj]
		}

		return distribution.Ravel(pstates, m.cims[labels[j]].ParentCard())
	}

	clocks := make([]float64, nv)
	redraw := func(j int, now float64) error {
		u, err := config(j)
		if err != nil {
			return err
		}
		clocks[j] = now + m.cims[labels[j]].SampleHolding(u, state[j], rng)

		return nil
	}
	for j := 0; j < nv; j++ {
		if err := redraw(j, 0); err != nil {
			return nil, err
		}
	}

	times := []float64{0}
	rows := [][]int{append([]int(nil), state...)}
	for {
		// Earliest clock wins; ties break on the smallest vertex index.
		winner := 0
		for j := 1; j < nv; j++ {
			if clocks[j] < clocks[winner] {
				winner = j
			}
		}
		now := clocks[winner]
		if now >= maxTime || math.IsInf(now, 1) {
			break
		}

		u, err := config(winner)
		if err != nil {
			return nil, err
		}
		to, err := m.cims[labels[winner]].SampleTransition(u, state[winner], rng)
		if err != nil {
			return nil, fmt.Errorf("ctbn: %w", err)
		}
		state[winner] = to
		times = append(times, now)
		rows = append(rows, append([]int(nil), state...))

		if err := redraw(winner, now); err != nil {
			return nil, err
		}
		for _, c := range childIdx[winner] {
			if err := redraw(c, now); err != nil {
				return nil, err
			}
		}
	}

	// Terminal row: the final sojourn runs to the horizon.
	times = append(times, maxTime)
	rows = append(rows, append([]int(nil), state...))

	cols := make([]dataset.TrajectoryColumn, nv)
	for j, l := range labels {
		vals := make([]string, len(rows))
		for r := range rows {
			vals[r] = spaces[j][rows[r][j]]
		}
		cols[j] = dataset.TrajectoryColumn{Label: l, Values: vals, States: spaces[j]}
	}

	tr, err := dataset.NewTrajectory(times, cols, dataset.WithAllowRepeats())
	if err != nil {
		return nil, fmt.Errorf("ctbn: %w", err)
	}

	return tr, nil
}
