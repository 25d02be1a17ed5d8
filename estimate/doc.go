// Package estimate implements parameter estimation: sufficient statistics
// collected against a directed graph, and the estimators that turn them
// into distribution objects.
//
//   - Statistics — CollectCat (static configuration/state counts),
//     CollectTrajectory (continuous-time transition counts and sojourn
//     times, optionally importance-weighted), both keyed by the shared
//     parent-configuration multi-index.
//   - Maximum likelihood — MLECatCPD (count normalization), MLEGaussCPD
//     (least squares via QR), MLECatCIM (rate = transitions over sojourn).
//     Maximum likelihood is strict: an unobserved configuration is an
//     error, not a silent uniform row.
//   - Bayesian — BayesCatCPD (Dirichlet smoothing), BayesCatCIM
//     (Gamma-style (alpha, tau) smoothing), BayesGaussCPD (ridge-penalized
//     least squares). Priors absorb the zero-observation cases.
//   - Expectation — ExpectedCatCounts computes fractional counts and the
//     observed-data log-likelihood of an incomplete table under a current
//     model, the E-step of static EM.
//
// Statistics collection requires the dataset and graph to agree on the
// sorted label set; ErrLabelMismatch otherwise.
package estimate
