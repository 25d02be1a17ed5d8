// Package ctbn implements continuous-time categorical networks: each
// vertex evolves as a Markov jump process whose intensity matrix is
// selected by the current states of its parents.
//
// Features:
//
//   - Fit        — conditional intensity estimation from trajectory
//     collections (maximum likelihood or Bayesian).
//   - Sample     — competing-exponentials simulation up to a time horizon:
//     every variable holds an exponential clock, the earliest clock fires,
//     the transitioned variable and its children re-draw their clocks.
//   - EM         — learning from interval evidence by importance-weighted
//     trajectory imputation and Bayesian refitting.
//   - Document   — stable JSON persistence with a bit-exact round trip.
//
// All sampling is driven by an explicit seed; one seed reproduces one
// collection. The initial state of every simulation is drawn uniformly
// per variable.
package ctbn
