// SPDX-License-Identifier: MIT

package estimate

import "errors"

var (
	// ErrLabelMismatch indicates a dataset and graph with different sorted
	// label sets.
	ErrLabelMismatch = errors.New("estimate: dataset and graph labels differ")

	// ErrZeroCount indicates a parent configuration with no observations
	// under maximum likelihood (use the Bayesian estimator instead).
	ErrZeroCount = errors.New("estimate: unobserved parent configuration")

	// ErrZeroSojourn indicates a state/configuration cell with zero sojourn
	// time under maximum likelihood (use the Bayesian estimator instead).
	ErrZeroSojourn = errors.New("estimate: zero sojourn time")

	// ErrSingular indicates a least-squares design matrix without full rank.
	ErrSingular = errors.New("estimate: singular design matrix")

	// ErrBadPrior indicates a negative or non-finite prior hyperparameter.
	ErrBadPrior = errors.New("estimate: bad prior hyperparameter")

	// ErrUnknownChild indicates a child label absent from the graph.
	ErrUnknownChild = errors.New("estimate: unknown child label")

	// ErrNoModel indicates an expectation step invoked without a
	// distribution for some vertex.
	ErrNoModel = errors.New("estimate: missing distribution for vertex")
)
