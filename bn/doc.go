// Package bn implements directed acyclic probabilistic networks over
// static data:
//
//   - CatBN   — one conditional probability table per vertex.
//   - GaussBN — one linear-Gaussian conditional per vertex.
//
// Both are fitted from canonical tables against a digraph (maximum
// likelihood or Bayesian), sampled ancestrally in topological order with
// an explicit seed, and scored by joint log-likelihood. CatBN additionally
// learns from incomplete tables via EM, and both serialize to a stable
// JSON document whose round trip is bit-exact.
//
// The fitted model always carries the graph's sorted label order; the
// state spaces come from the training data, so declared-but-unobserved
// states survive into sampling and persistence.
package bn
