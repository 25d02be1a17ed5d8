// Package causal is an in-memory engine for causal probabilistic graphical
// models: it represents, fits, samples from, and structurally learns
// directed models over both static (Bayesian network) and continuous-time
// (CTBN) processes, with categorical and Gaussian variable families.
//
// 🚀 What is causal?
//
//	A deterministic, seed-driven library that brings together:
//		• digraph/      — directed acyclic graphs over ordered labels + d-separation oracle
//		• dataset/      — canonical tables, trajectories and interval evidence
//		• distribution/ — CPDs, linear-Gaussian CPDs and conditional intensity matrices
//		• estimate/     — maximum-likelihood, Bayesian and EM parameter estimation
//		• bn/           — categorical & Gaussian Bayesian networks (fit / sample / persist)
//		• ctbn/         — continuous-time Bayesian networks (fit / simulate / EM)
//		• search/       — hill-climbing structure search and Structural-EM
//
// ✨ Why choose causal?
//
//   - Deterministic by construction – every stochastic entry point takes an
//     explicit seed; identical inputs and seed give identical outputs.
//   - Canonical data layer – labels are totally ordered and that order is an
//     invariant every component respects; datasets round-trip exactly.
//   - Rock-solid error discipline – sentinel errors per package, matched via
//     errors.Is; no partial, inconsistent model is ever returned.
//   - Pure Go numerics on gonum – no cgo, no global state.
//
// Control flow at a glance:
//
//	search ──▶ estimate ──▶ bn / ctbn ──(score feedback)──▶ search
//	                           │
//	                           ▼
//	                     sampled datasets ──▶ dataset (re-enter estimation)
//
// Quick ASCII example (the classic "asia" network lives in bn.Asia):
//
//	asia ─▶ tub ─▶ either ─▶ xray
//	smoke ─▶ lung ─▶ either ─▶ dysp ◀─ bronc ◀─ smoke
//
// Start with digraph.New and dataset.NewCatTable, then bn.FitCat or
// ctbn.Fit.
package causal
