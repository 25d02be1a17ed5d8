// Package search implements score-based structure learning under prior
// knowledge:
//
//   - PriorKnowledge — forbidden edges, required edges and temporal tiers
//     constraining every candidate structure.
//   - BIC / AIC      — decomposable family scores (static counts or
//     continuous-time statistics): log-likelihood minus a complexity
//     penalty (half the free parameters times the log sample size for
//     BIC, the free parameter count for AIC).
//   - HillClimbCat / HillClimbCTBN — greedy single-edge search over add,
//     remove and reverse moves. Candidates are scored concurrently; the
//     winner is picked by strict improvement with a deterministic
//     lexicographic tie-break, so one input always yields one structure.
//   - SEM            — structural EM over interval evidence: impute
//     weighted trajectories under the current model, climb the structure
//     on the imputed data, refit, repeat.
//
// Every search honors acyclicity, the prior knowledge and the optional
// parent-count cap at every step; required edges are present from the
// starting structure onward and are never removed or reversed.
package search
