// SPDX-License-Identifier: MIT
// Package distribution: the conditional intensity matrix. For each parent
// configuration the child follows a homogeneous continuous-time Markov
// chain whose generator row i has leaving rate q_i = −Q[i][i] and
// transition rates Q[i][j] ≥ 0 for j ≠ i, rows summing to zero.

package distribution

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// generatorTol bounds the acceptable deviation of a generator row sum from
// zero.
const generatorTol = 1e-6

// CatCIM is an immutable conditional intensity matrix: per parent
// configuration one generator over the child states.
type CatCIM struct {
	child        string
	states       []string
	parents      []string
	parentStates [][]string
	matrices     []*mat.Dense // ConfigCount(parentCard) generators, each k×k
}

// NewCatCIM validates and freezes the generators. matrices follow the Ravel
// convention over the parent cardinalities; each must be square over the
// child states with non-negative off-diagonal rates and zero row sums.
func NewCatCIM(child string, states []string, parents []string, parentStates [][]string, matrices []*mat.Dense) (*CatCIM, error) {
	k := len(states)
	if k == 0 {
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
	if len(matrices) != ConfigCount(card) {
		return nil, fmt.Errorf("child %q has %d matrices: %w", child, len(matrices), ErrShapeMismatch)
	}
	frozen := make([]*mat.Dense, len(matrices))
	for u, m := range matrices {
		r, c := m.Dims()
		if r != k || c != k {
			return nil, fmt.Errorf("child %q config %d is %dx%d: %w", child, u, r, c, ErrShapeMismatch)
		}
		for i := 0; i < k; i++ {
			sum := 0.0
			for j := 0; j < k; j++ {
				q := m.At(i, j)
				if math.IsNaN(q) || math.IsInf(q, 0) {
					return nil, fmt.Errorf("child %q config %d row %d: %w", child, u, i, ErrNotGenerator)
				}
				if i != j && q < 0 {
					return nil, fmt.Errorf("child %q config %d rate (%d,%d): %w", child, u, i, j, ErrNotGenerator)
				}
				sum += q
			}
			if math.Abs(sum) > generatorTol {
				return nil, fmt.Errorf("child %q config %d row %d sums to %v: %w", child, u, i, sum, ErrNotGenerator)
			}
		}
		frozen[u] = mat.DenseCopyOf(m)
	}

	return &CatCIM{
		child:        child,
		states:       append([]string(nil), states...),
		parents:      append([]string(nil), parents...),
		parentStates: copyStates(parentStates),
		matrices:     frozen,
	}, nil
}

// Child returns the child label.
func (c *CatCIM) Child() string { return c.child }

// States returns the child state space.
func (c *CatCIM) States() []string { return append([]string(nil), c.states...) }

// Parents returns the parent labels in matrix order.
func (c *CatCIM) Parents() []string { return append([]string(nil), c.parents...) }

// ParentStates returns the parent state spaces aligned with Parents().
func (c *CatCIM) ParentStates() [][]string { return copyStates(c.parentStates) }

// ParentCard returns the parent cardinalities aligned with Parents().
func (c *CatCIM) ParentCard() []int {
	card := make([]int, len(c.parentStates))
	for i, ps := range c.parentStates {
		card[i] = len(ps)
	}

	return card
}

// ConfigCount returns the number of parent configurations.
func (c *CatCIM) ConfigCount() int { return len(c.matrices) }

// Rate returns Q[from][to] under configuration config.
func (c *CatCIM) Rate(config, from, to int) float64 { return c.matrices[config].At(from, to) }

// LeavingRate returns q_from = −Q[from][from] under configuration config.
func (c *CatCIM) LeavingRate(config, from int) float64 { return -c.matrices[config].At(from, from) }

// Matrix returns the generator for one configuration. The returned matrix
// must not be mutated.
func (c *CatCIM) Matrix(config int) mat.Matrix { return c.matrices[config] }

// SampleHolding draws the exponential holding time in state under
// configuration config. An absorbing state (zero leaving rate) holds
// forever and returns +Inf.
func (c *CatCIM) SampleHolding(config, state int, rng *rand.Rand) float64 {
	q := c.LeavingRate(config, state)
	if q <= 0 {
		return math.Inf(1)
	}
	e := distuv.Exponential{Rate: q, Src: rng}

	return e.Rand()
}

// SampleTransition draws the destination state of a jump out of state under
// configuration config, proportional to the off-diagonal rates.
func (c *CatCIM) SampleTransition(config, state int, rng *rand.Rand) (int, error) {
	q := c.LeavingRate(config, state)
	if q <= 0 {
		return 0, fmt.Errorf("config %d state %d: %w", config, state, ErrAbsorbingState)
	}
	u := rng.Float64() * q
	acc := 0.0
	last := state
	for j := range c.states {
		if j == state {
			continue
		}
		acc += c.matrices[config].At(state, j)
		if u < acc {
			return j, nil
		}
		if c.matrices[config].At(state, j) > 0 {
			last = j
		}
	}

	return last, nil
}

// LogLikelihood scores continuous-time sufficient statistics:
//
//	Σ_u Σ_i ( −q_i·T[u][i] + Σ_{j≠i} M[u][i][j]·ln Q[u][i][j] )
//
// transitions holds one off-diagonal count matrix per configuration
// (diagonals ignored); sojourn is configurations × states.
func (c *CatCIM) LogLikelihood(transitions []*mat.Dense, sojourn *mat.Dense) (float64, error) {
	k := len(c.states)
	if len(transitions) != len(c.matrices) {
		return 0, fmt.Errorf("transitions: %w", ErrShapeMismatch)
	}
	sr, sc := sojourn.Dims()
	if sr != len(c.matrices) || sc != k {
		return 0, fmt.Errorf("sojourn %dx%d: %w", sr, sc, ErrShapeMismatch)
	}
	ll := 0.0
	for u, m := range transitions {
		r, cc := m.Dims()
		if r != k || cc != k {
			return 0, fmt.Errorf("transitions config %d: %w", u, ErrShapeMismatch)
		}
		for i := 0; i < k; i++ {
			ll -= c.LeavingRate(u, i) * sojourn.At(u, i)
			for j := 0; j < k; j++ {
				if j == i {
					continue
				}
				n := m.At(i, j)
				if n == 0 {
					continue
				}
				ll += n * math.Log(c.matrices[u].At(i, j))
			}
		}
	}

	return ll, nil
}

// ParameterCount returns the free-parameter count: per configuration, each
// of the k states carries k−1 free rates.
func (c *CatCIM) ParameterCount() int {
	k := len(c.states)

	return len(c.matrices) * k * (k - 1)
}

// EqualTol reports whether two intensity models share names, state spaces
// and rates within tol.
func (c *CatCIM) EqualTol(o *CatCIM, tol float64) bool {
	if c.child != o.child || !sliceEqual(c.states, o.states) || !sliceEqual(c.parents, o.parents) {
		return false
	}
	if len(c.matrices) != len(o.matrices) {
		return false
	}
	for u := range c.matrices {
		if !mat.EqualApprox(c.matrices[u], o.matrices[u], tol) {
			return false
		}
	}

	return true
}

// UnitRateCIM builds the maximum-entropy generator set for the given shape:
// leaving rate one from every state, uniform destinations. The EM restarts
// start from it.
func UnitRateCIM(child string, states []string, parents []string, parentStates [][]string) (*CatCIM, error) {
	k := len(states)
	if k == 0 {
		return nil, fmt.Errorf("child %q: %w", child, ErrEmptyStates)
	}
	card := make([]int, len(parentStates))
	for i, ps := range parentStates {
		card[i] = len(ps)
	}
	matrices := make([]*mat.Dense, ConfigCount(card))
	for u := range matrices {
		m := mat.NewDense(k, k, nil)
		for i := 0; i < k; i++ {
			for j := 0; j < k; j++ {
				if i == j {
					m.Set(i, j, -1)

					continue
				}
				if k > 1 {
					m.Set(i, j, 1/float64(k-1))
				}
			}
		}
		if k == 1 {
			m.Set(0, 0, 0)
		}
		matrices[u] = m
	}

	return NewCatCIM(child, states, parents, parentStates, matrices)
}
