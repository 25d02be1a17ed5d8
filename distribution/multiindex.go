// SPDX-License-Identifier: MIT
// Package distribution: the parent-configuration multi-index. Parent states
// flatten row-major over the sorted parent order with the LAST parent
// fastest; every table in the system shares this convention, so estimators,
// samplers and persistence agree on row identity.

package distribution

import "fmt"

// ConfigCount returns the number of parent configurations, the product of
// the cardinalities. An empty cardinality list yields one (the root
// configuration).
func ConfigCount(card []int) int {
	n := 1
	for _, c := range card {
		n *= c
	}

	return n
}

// Ravel flattens a parent state vector into its configuration index.
func Ravel(states, card []int) (int, error) {
	if len(states) != len(card) {
		return 0, fmt.Errorf("states %d vs. cardinalities %d: %w", len(states), len(card), ErrShapeMismatch)
	}
	idx := 0
	for i, s := range states {
		if s < 0 || s >= card[i] {
			return 0, fmt.Errorf("state %d at position %d: %w", s, i, ErrBadConfiguration)
		}
		idx = idx*card[i] + s
	}

	return idx, nil
}

// Unravel expands a configuration index back into the parent state vector;
// the exact inverse of Ravel.
func Unravel(idx int, card []int) ([]int, error) {
	if idx < 0 || idx >= ConfigCount(card) {
		return nil, fmt.Errorf("index %d: %w", idx, ErrBadConfiguration)
	}
	states := make([]int, len(card))
	for i := len(card) - 1; i >= 0; i-- {
		states[i] = idx % card[i]
		idx /= card[i]
	}

	return states, nil
}
