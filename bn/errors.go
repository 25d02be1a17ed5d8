// SPDX-License-Identifier: MIT

package bn

import "errors"

var (
	// ErrLabelMismatch indicates a dataset, graph or distribution set whose
	// labels disagree.
	ErrLabelMismatch = errors.New("bn: label mismatch")

	// ErrUnknownMethod indicates an estimation method other than MLE or
	// Bayes.
	ErrUnknownMethod = errors.New("bn: unknown estimation method")

	// ErrBadSampleSize indicates a non-positive sample size.
	ErrBadSampleSize = errors.New("bn: sample size must be positive")

	// ErrBadIterations indicates a non-positive EM iteration bound.
	ErrBadIterations = errors.New("bn: iteration bound must be positive")

	// ErrBadDocument indicates a persistence document that fails
	// validation.
	ErrBadDocument = errors.New("bn: bad document")
)
