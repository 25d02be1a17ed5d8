// SPDX-License-Identifier: MIT
// Package distribution: the categorical conditional probability table.

package distribution

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// stochasticTol bounds the acceptable deviation of a probability row sum
// from one.
const stochasticTol = 1e-6

// CatCPD is an immutable conditional probability table: for each parent
// configuration (a row), a probability distribution over the child states
// (the columns).
type CatCPD struct {
	child        string
	states       []string
	parents      []string
	parentStates [][]string
	table        *mat.Dense // ConfigCount(parentCard) × len(states)
}

// NewCatCPD validates and freezes a table. parents and parentStates are
// aligned; table rows follow the Ravel convention over the parent
// cardinalities. Every row must be non-negative and sum to one within
// tolerance.
func NewCatCPD(child string, states []string, parents []string, parentStates [][]string, table *mat.Dense) (*CatCPD, error) {
	if len(states) == 0 {
		return nil, fmt.Errorf("child %q: %w", child, ErrEmptyStates)
	}
	if len(parents) != len(parentStates) {
		return nil, fmt.Errorf("child %q parents: %w", child, ErrShapeMismatch)
	}
	card := make([]int, len(parents))
	for i, ps := range parentStates {
		if len(ps) == 0 {
			return nil, fmt.Errorf("parent %q: %w", parents[i], ErrEmptyStates)
		}
		card[i] = len(ps)
	}
	rows, cols := table.Dims()
	if rows != ConfigCount(card) || cols != len(states) {
		return nil, fmt.Errorf("child %q table %dx%d: %w", child, rows, cols, ErrShapeMismatch)
	}
	for r := 0; r < rows; r++ {
		row := table.RawRowView(r)
		sum := 0.0
		for _, p := range row {
			if p < 0 || math.IsNaN(p) {
				return nil, fmt.Errorf("child %q row %d: %w", child, r, ErrNotStochastic)
			}
			sum += p
		}
		if math.Abs(sum-1) > stochasticTol {
			return nil, fmt.Errorf("child %q row %d sums to %v: %w", child, r, sum, ErrNotStochastic)
		}
	}

	return &CatCPD{
		child:        child,
		states:       append([]string(nil), states...),
		parents:      append([]string(nil), parents...),
		parentStates: copyStates(parentStates),
		table:        mat.DenseCopyOf(table),
	}, nil
}

// Child returns the child label.
func (c *CatCPD) Child() string { return c.child }

// States returns the child state space.
func (c *CatCPD) States() []string { return append([]string(nil), c.states...) }

// Parents returns the parent labels in table order.
func (c *CatCPD) Parents() []string { return append([]string(nil), c.parents...) }

// ParentStates returns the parent state spaces aligned with Parents().
func (c *CatCPD) ParentStates() [][]string { return copyStates(c.parentStates) }

// ParentCard returns the parent cardinalities aligned with Parents().
func (c *CatCPD) ParentCard() []int {
	card := make([]int, len(c.parentStates))
	for i, ps := range c.parentStates {
		card[i] = len(ps)
	}

	return card
}

// ConfigCount returns the number of parent configurations (table rows).
func (c *CatCPD) ConfigCount() int {
	r, _ := c.table.Dims()

	return r
}

// Prob returns P(child = state | configuration config).
func (c *CatCPD) Prob(config, state int) float64 { return c.table.At(config, state) }

// Row returns a copy of the distribution for one parent configuration.
func (c *CatCPD) Row(config int) []float64 {
	return append([]float64(nil), c.table.RawRowView(config)...)
}

// Table returns the probability table. The returned matrix must not be
// mutated.
func (c *CatCPD) Table() mat.Matrix { return c.table }

// Sample draws one child state for a parent configuration using the given
// source. Deterministic given the source state.
func (c *CatCPD) Sample(config int, rng *rand.Rand) int {
	row := c.table.RawRowView(config)
	u := rng.Float64()
	acc := 0.0
	for i, p := range row {
		acc += p
		if u < acc {
			return i
		}
	}

	// Guard against accumulated rounding at the tail.
	return len(row) - 1
}

// LogLikelihood scores sufficient statistics against the table:
// sum over configurations u and states i of counts[u][i]·ln θ[u][i].
// A zero count contributes zero even where θ is zero.
func (c *CatCPD) LogLikelihood(counts *mat.Dense) (float64, error) {
	r1, c1 := counts.Dims()
	r2, c2 := c.table.Dims()
	if r1 != r2 || c1 != c2 {
		return 0, fmt.Errorf("counts %dx%d vs. table %dx%d: %w", r1, c1, r2, c2, ErrShapeMismatch)
	}
	ll := 0.0
	for u := 0; u < r1; u++ {
		for i := 0; i < c1; i++ {
			n := counts.At(u, i)
			if n == 0 {
				continue
			}
			ll += n * math.Log(c.table.At(u, i))
		}
	}

	return ll, nil
}

// ParameterCount returns the free-parameter count: configurations times
// (child cardinality − 1).
func (c *CatCPD) ParameterCount() int { return c.ConfigCount() * (len(c.states) - 1) }

// EqualTol reports whether two tables share names, state spaces and
// probabilities within tol.
func (c *CatCPD) EqualTol(o *CatCPD, tol float64) bool {
	if c.child != o.child || !sliceEqual(c.states, o.states) || !sliceEqual(c.parents, o.parents) {
		return false
	}
	if len(c.parentStates) != len(o.parentStates) {
		return false
	}
	for i := range c.parentStates {
		if !sliceEqual(c.parentStates[i], o.parentStates[i]) {
			return false
		}
	}

	return mat.EqualApprox(c.table, o.table, tol)
}

// UniformCatCPD builds the maximum-entropy table for the given shape; the
// EM and Structural-EM restarts start from it.
func UniformCatCPD(child string, states []string, parents []string, parentStates [][]string) (*CatCPD, error) {
	card := make([]int, len(parentStates))
	for i, ps := range parentStates {
		card[i] = len(ps)
	}
	rows := ConfigCount(card)
	if len(states) == 0 {
		return nil, fmt.Errorf("child %q: %w", child, ErrEmptyStates)
	}
	table := mat.NewDense(rows, len(states), nil)
	p := 1.0 / float64(len(states))
	for u := 0; u < rows; u++ {
		for i := range states {
			table.Set(u, i, p)
		}
	}

	return NewCatCPD(child, states, parents, parentStates, table)
}

// Normalize rescales each row of raw non-negative weights into a
// distribution; rows summing to zero are left to the caller and reported.
func Normalize(weights *mat.Dense) (zeroRows []int) {
	r, c := weights.Dims()
	for u := 0; u < r; u++ {
		row := weights.RawRowView(u)
		sum := floats.Sum(row)
		if sum == 0 {
			zeroRows = append(zeroRows, u)

			continue
		}
		for i := 0; i < c; i++ {
			weights.Set(u, i, weights.At(u, i)/sum)
		}
	}

	return zeroRows
}

func copyStates(states [][]string) [][]string {
	out := make([][]string, len(states))
	for i, s := range states {
		out[i] = append([]string(nil), s...)
	}

	return out
}

func sliceEqual(a, b []string) bool {
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
