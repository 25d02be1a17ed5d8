// SPDX-License-Identifier: MIT

package distribution

import "errors"

var (
	// ErrEmptyStates indicates a child or parent with no states.
	ErrEmptyStates = errors.New("distribution: empty state space")

	// ErrShapeMismatch indicates parameters whose dimensions disagree with
	// the declared child and parent state spaces.
	ErrShapeMismatch = errors.New("distribution: parameter shape mismatch")

	// ErrNotStochastic indicates a probability row that is negative or does
	// not sum to one within tolerance.
	ErrNotStochastic = errors.New("distribution: row not stochastic")

	// ErrNotGenerator indicates an intensity matrix violating the generator
	// constraints (negative off-diagonal rate, or row not summing to zero).
	ErrNotGenerator = errors.New("distribution: matrix not a generator")

	// ErrBadVariance indicates a non-positive or non-finite noise variance.
	ErrBadVariance = errors.New("distribution: bad variance")

	// ErrBadConfiguration indicates a parent configuration index or state
	// vector out of range.
	ErrBadConfiguration = errors.New("distribution: parent configuration out of range")

	// ErrAbsorbingState indicates a transition draw from a state with zero
	// total leaving rate.
	ErrAbsorbingState = errors.New("distribution: absorbing state has no transition")
)
