// SPDX-License-Identifier: MIT
// Package dataset: sentinel error set (validation-first constructors).
// Constructors MUST return these sentinels and tests MUST check them via
// errors.Is. Wrapping with fmt.Errorf("ctx: %w", ErrX) is allowed at the
// boundary; callers still match with errors.Is.

package dataset

import "errors"

var (
	// ErrNoColumns indicates construction with an empty column set.
	ErrNoColumns = errors.New("dataset: no columns")

	// ErrEmptyLabel indicates a column with a zero-length label.
	ErrEmptyLabel = errors.New("dataset: empty column label")

	// ErrDuplicateColumn indicates two columns sharing one label.
	ErrDuplicateColumn = errors.New("dataset: duplicate column label")

	// ErrLengthMismatch indicates columns (or times vs. rows) of unequal length.
	ErrLengthMismatch = errors.New("dataset: column length mismatch")

	// ErrEmptyStateSpace indicates a categorical column with zero observed
	// categories and no declared superset: no state space can be inferred.
	ErrEmptyStateSpace = errors.New("dataset: empty state space")

	// ErrLabelMismatch indicates datasets or trajectories whose label sets
	// disagree where agreement is required.
	ErrLabelMismatch = errors.New("dataset: label mismatch")

	// ErrNonIncreasingTime indicates a trajectory whose time sequence is not
	// strictly increasing.
	ErrNonIncreasingTime = errors.New("dataset: time sequence not strictly increasing")

	// ErrRepeatedState indicates two consecutive trajectory rows with an
	// identical full state (disable the check with WithAllowRepeats).
	ErrRepeatedState = errors.New("dataset: repeated consecutive state")

	// ErrBadInterval indicates an evidence interval with end ≤ start, or a
	// negative start time.
	ErrBadInterval = errors.New("dataset: bad evidence interval")

	// ErrOverlappingEvidence indicates two evidence intervals for the same
	// label that overlap in time.
	ErrOverlappingEvidence = errors.New("dataset: overlapping evidence intervals")

	// ErrNoTrajectories indicates an empty trajectory collection.
	ErrNoTrajectories = errors.New("dataset: no trajectories")

	// ErrBadWeight indicates a non-finite or negative trajectory weight.
	ErrBadWeight = errors.New("dataset: bad trajectory weight")

	// ErrNonFiniteValue indicates a continuous cell that is NaN or infinite.
	ErrNonFiniteValue = errors.New("dataset: non-finite value")

	// ErrMissingCells indicates a conversion that requires a fully observed
	// table was attempted on one with remaining holes.
	ErrMissingCells = errors.New("dataset: table has missing cells")
)
