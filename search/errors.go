// SPDX-License-Identifier: MIT

package search

import "errors"

var (
	// ErrUnknownLabel indicates a constraint naming a label outside the
	// variable set.
	ErrUnknownLabel = errors.New("search: unknown label")

	// ErrSelfLoop indicates a constraint on an edge from a vertex to
	// itself.
	ErrSelfLoop = errors.New("search: self-loop constraint")

	// ErrPriorConflict indicates an edge both required and forbidden.
	ErrPriorConflict = errors.New("search: conflicting prior knowledge")

	// ErrTierViolation indicates a required edge running against the tier
	// order.
	ErrTierViolation = errors.New("search: required edge violates tiers")

	// ErrRequiredCycle indicates required edges that already form a cycle.
	ErrRequiredCycle = errors.New("search: required edges form a cycle")

	// ErrUnknownAlgorithm indicates a structural-EM algorithm name other
	// than "cthc".
	ErrUnknownAlgorithm = errors.New("search: unknown algorithm")

	// ErrUnknownScore indicates a score name other than "BIC" or "AIC".
	ErrUnknownScore = errors.New("search: unknown score")

	// ErrBadIterations indicates a non-positive iteration bound.
	ErrBadIterations = errors.New("search: iteration bound must be positive")

	// ErrLabelMismatch indicates data and prior knowledge over different
	// label sets.
	ErrLabelMismatch = errors.New("search: label mismatch")
)
