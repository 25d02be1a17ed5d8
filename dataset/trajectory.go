// SPDX-License-Identifier: MIT
// Package dataset: continuous-time sample paths. A trajectory is
// right-continuous and piecewise constant: row r holds on [times[r],
// times[r+1]), the final row holds from its time onward.

package dataset

import (
	"fmt"
	"math"
	"sort"
)

// TrajectoryColumn is one labeled column of raw categorical path values,
// aligned with a shared time axis.
type TrajectoryColumn struct {
	Label  string
	Values []string
	States []string
}

// Trajectory is an immutable single sample path: strictly increasing times
// and an aligned coded state matrix over sorted labels.
type Trajectory struct {
	labels []string
	states [][]string
	times  []float64
	values [][]int // row-major, len(times) rows × len(labels) cols
}

// trajConfig collects the optional validation switches.
type trajConfig struct {
	allowRepeats bool
}

// TrajectoryOption adjusts trajectory validation.
type TrajectoryOption func(*trajConfig)

// WithAllowRepeats disables the consecutive-repeated-state check; useful for
// paths recorded at fixed sampling instants rather than at transitions.
func WithAllowRepeats() TrajectoryOption {
	return func(c *trajConfig) { c.allowRepeats = true }
}

// NewTrajectory canonicalizes one raw sample path. times must be strictly
// increasing, non-negative, and finite; all columns must align with it. Two
// consecutive rows with an identical full state fail with ErrRepeatedState
// unless WithAllowRepeats is given.
func NewTrajectory(times []float64, columns []TrajectoryColumn, opts ...TrajectoryOption) (*Trajectory, error) {
	var cfg trajConfig
	for _, o := range opts {
		o(&cfg)
	}

	cat := make([]CategoricalColumn, len(columns))
	for i, col := range columns {
		cat[i] = CategoricalColumn{Label: col.Label, Values: col.Values, States: col.States}
	}
	labels, order, err := checkCatColumns(cat, false)
	if err != nil {
		return nil, err
	}
	if len(times) != len(columns[0].Values) {
		return nil, fmt.Errorf("times vs. rows: %w", ErrLengthMismatch)
	}
	for i, ti := range times {
		if math.IsNaN(ti) || math.IsInf(ti, 0) || ti < 0 {
			return nil, fmt.Errorf("time %v at row %d: %w", ti, i, ErrNonIncreasingTime)
		}
		if i > 0 && ti <= times[i-1] {
			return nil, fmt.Errorf("row %d: %w", i, ErrNonIncreasingTime)
		}
	}

	states := make([][]string, len(labels))
	coded := make([][]int, len(labels))
	for j, idx := range order {
		col := cat[idx]
		states[j] = canonStates(col.Values, col.States)
		coded[j] = encode(col.Values, states[j])
	}

	values := make([][]int, len(times))
	for r := range times {
		row := make([]int, len(labels))
		for j := range labels {
			row[j] = coded[j][r]
		}
		values[r] = row
	}

	if !cfg.allowRepeats {
		for r := 1; r < len(values); r++ {
			if intsEqual(values[r], values[r-1]) {
				return nil, fmt.Errorf("rows %d and %d: %w", r-1, r, ErrRepeatedState)
			}
		}
	}

	return &Trajectory{
		labels: labels,
		states: states,
		times:  append([]float64(nil), times...),
		values: values,
	}, nil
}

// Labels returns the sorted variable labels.
func (t *Trajectory) Labels() []string { return append([]string(nil), t.labels...) }

// States returns the canonical state space per label.
func (t *Trajectory) States() map[string][]string { return statesMap(t.labels, t.states) }

// StateSpaces returns the state spaces aligned with Labels().
func (t *Trajectory) StateSpaces() [][]string { return statesCopy(t.states) }

// Times returns a copy of the strictly increasing time axis.
func (t *Trajectory) Times() []float64 { return append([]float64(nil), t.times...) }

// Values returns a copy of the coded state matrix.
func (t *Trajectory) Values() [][]int { return intMatrixCopy(t.values) }

// Len returns the number of recorded instants.
func (t *Trajectory) Len() int { return len(t.times) }

// At returns the code at (row, col) without copying.
func (t *Trajectory) At(row, col int) int { return t.values[row][col] }

// TimeAt returns the instant of row without copying.
func (t *Trajectory) TimeAt(row int) float64 { return t.times[row] }

// StateAt returns the full coded state holding at time tau, by the
// right-continuous piecewise-constant reading. tau before the first instant
// returns the first row.
func (t *Trajectory) StateAt(tau float64) []int {
	r := sort.Search(len(t.times), func(i int) bool { return t.times[i] > tau })
	if r > 0 {
		r--
	}

	return append([]int(nil), t.values[r]...)
}

// Trajectories is an immutable collection of sample paths sharing one label
// set and one union state space.
type Trajectories struct {
	labels []string
	states [][]string
	paths  []*Trajectory
}

// NewTrajectories merges sample paths into a collection. Every path must
// carry the same sorted label set; state spaces are widened to the sorted
// union across paths and every path is re-coded into the union space.
func NewTrajectories(paths []*Trajectory) (*Trajectories, error) {
	if len(paths) == 0 {
		return nil, ErrNoTrajectories
	}
	labels := paths[0].labels
	for _, p := range paths[1:] {
		if !stringsEqual(labels, p.labels) {
			return nil, ErrLabelMismatch
		}
	}

	union := statesCopy(paths[0].states)
	for _, p := range paths[1:] {
		for j := range union {
			union[j] = unionStates(union[j], p.states[j])
		}
	}

	recoded := make([]*Trajectory, len(paths))
	for i, p := range paths {
		// Per-column code translation into the union space.
		cols := make([][]int, len(labels))
		for j := range labels {
			col := make([]int, len(p.values))
			for r := range p.values {
				col[r] = p.values[r][j]
			}
			cols[j] = recode(col, p.states[j], union[j])
		}
		values := make([][]int, len(p.values))
		for r := range p.values {
			row := make([]int, len(labels))
			for j := range labels {
				row[j] = cols[j][r]
			}
			values[r] = row
		}
		recoded[i] = &Trajectory{
			labels: append([]string(nil), labels...),
			states: statesCopy(union),
			times:  append([]float64(nil), p.times...),
			values: values,
		}
	}

	return &Trajectories{
		labels: append([]string(nil), labels...),
		states: union,
		paths:  recoded,
	}, nil
}

// Labels returns the shared sorted variable labels.
func (c *Trajectories) Labels() []string { return append([]string(nil), c.labels...) }

// States returns the union state space per label.
func (c *Trajectories) States() map[string][]string { return statesMap(c.labels, c.states) }

// StateSpaces returns the union state spaces aligned with Labels().
func (c *Trajectories) StateSpaces() [][]string { return statesCopy(c.states) }

// Cardinality returns the union state-space size per variable.
func (c *Trajectories) Cardinality() []int { return cardinality(c.states) }

// Len returns the number of paths.
func (c *Trajectories) Len() int { return len(c.paths) }

// Path returns the i-th path (already re-coded into the union space).
func (c *Trajectories) Path(i int) *Trajectory { return c.paths[i] }

// Paths returns the path slice. The returned paths must not be mutated.
func (c *Trajectories) Paths() []*Trajectory { return append([]*Trajectory(nil), c.paths...) }

func intsEqual(a, b []int) bool {
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

func stringsEqual(a, b []string) bool { return statesEqual(a, b) }
