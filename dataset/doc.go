// Package dataset implements the canonical data and evidence layer: it
// converts heterogeneous labeled input (static tabular rows, ordered
// trajectories, interval-based evidence records, with or without missing
// values) into fixed-shape, fully-ordered internal representations that the
// estimators consume.
//
// Canonicalization rules (invariants every component respects):
//
//   - Column ordering: labels are sorted lexicographically; the sorted label
//     order defines column ordering throughout the system.
//   - State spaces: per categorical column, the canonical state space is the
//     sorted union of observed values and any declared superset. Declared,
//     unobserved states are preserved through every round trip.
//   - Integer coding: categorical cells are integer codes into the canonical
//     state space; continuous cells are float64.
//   - Immutability: every dataset is immutable after construction. The
//     incremental path goes through TableBuilder, which finalizes an
//     immutable table (never post-construction mutation).
//
// Forms:
//
//   - CatTable        — static categorical table (rows × sorted columns).
//   - GaussTable      — static continuous table, stateless numerically.
//   - IncompleteTable — categorical table with missing-cell markers; missing
//     cells are excluded from direct counts and resolved by EM.
//   - Trajectory      — strictly increasing times + aligned state matrix,
//     a right-continuous piecewise-constant sample path.
//   - Trajectories    — a collection of paths with the union state space.
//   - IntervalEvidence / EvidenceSet — rows (label, state, start, end)
//     meaning "label held state on [start,end)"; per-label interval
//     non-overlap is validated and a sparse per-label timeline is exposed.
//   - WeightedTrajectories — trajectories with importance weights, the
//     E-step currency of EM and Structural-EM.
//
// Round trip: Columns() is the exact inverse of the constructors — it
// reproduces the original labeled values, with state spaces in canonical
// (sorted) order.
//
// Errors: see errors.go; all constructors validate first and allocate after.
package dataset
