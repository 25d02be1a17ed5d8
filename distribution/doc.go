// Package distribution implements the conditional model families attached
// to graph vertices:
//
//   - CatCPD  — conditional probability table for one categorical child
//     given categorical parents: one probability row per parent
//     configuration, rows summing to one.
//   - GaussCPD — linear-Gaussian conditional: child = intercept +
//     coefficients·parents + Normal(0, variance) noise.
//   - CatCIM  — conditional intensity matrix for one continuous-time
//     categorical variable given categorical parents: per parent
//     configuration one generator matrix (non-negative off-diagonal rates,
//     each diagonal the negated row sum).
//
// Parent configurations are flattened row-major over the sorted parent
// order, last parent fastest (Ravel/Unravel). All families expose
// log-likelihood of sufficient statistics and seeded sampling primitives;
// every operation is deterministic given the seed.
//
// Errors: see errors.go; constructors validate shape and stochasticity up
// front and the types are immutable afterwards.
package distribution
