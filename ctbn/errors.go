// SPDX-License-Identifier: MIT

package ctbn

import "errors"

var (
	// ErrLabelMismatch indicates a dataset, graph or intensity set whose
	// labels disagree.
	ErrLabelMismatch = errors.New("ctbn: label mismatch")

	// ErrUnknownMethod indicates an estimation method other than MLE or
	// Bayes.
	ErrUnknownMethod = errors.New("ctbn: unknown estimation method")

	// ErrBadSampleSize indicates a non-positive trajectory count.
	ErrBadSampleSize = errors.New("ctbn: sample size must be positive")

	// ErrBadHorizon indicates a non-positive or non-finite time horizon.
	ErrBadHorizon = errors.New("ctbn: horizon must be positive and finite")

	// ErrBadIterations indicates a non-positive EM iteration bound.
	ErrBadIterations = errors.New("ctbn: iteration bound must be positive")

	// ErrBadImputations indicates a non-positive imputation count.
	ErrBadImputations = errors.New("ctbn: imputation count must be positive")

	// ErrBadDocument indicates a persistence document that fails
	// validation.
	ErrBadDocument = errors.New("ctbn: bad document")
)
