// SPDX-License-Identifier: MIT
// Package dataset: state-space canonicalization shared by every categorical
// form. A state space is the sorted, deduplicated union of observed values
// and any declared superset; integer codes index into that canonical order.

package dataset

import "sort"

// canonStates returns the canonical state space for one column: the sorted,
// deduplicated union of observed and declared values.
func canonStates(observed, declared []string) []string {
	set := make(map[string]struct{}, len(observed)+len(declared))
	for _, s := range observed {
		set[s] = struct{}{}
	}
	for _, s := range declared {
		set[s] = struct{}{}
	}
	out := make([]string, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	sort.Strings(out)

	return out
}

// encode maps raw values onto integer codes in the canonical state space.
// Every observed value is, by construction of canonStates, present.
func encode(values, states []string) []int {
	index := make(map[string]int, len(states))
	for i, s := range states {
		index[s] = i
	}
	codes := make([]int, len(values))
	for i, v := range values {
		codes[i] = index[v]
	}

	return codes
}

// statesCopy deep-copies a per-column state-space table.
func statesCopy(states [][]string) [][]string {
	out := make([][]string, len(states))
	for i, s := range states {
		out[i] = append([]string(nil), s...)
	}

	return out
}

// statesEqual reports whether two state spaces are identical in content and
// order.
func statesEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

// unionStates merges two canonical (sorted) state spaces into one.
func unionStates(a, b []string) []string {
	return canonStates(a, b)
}

// recode translates codes from an old state space into a new superset space.
func recode(codes []int, old, new []string) []int {
	remap := make([]int, len(old))
	index := make(map[string]int, len(new))
	for i, s := range new {
		index[s] = i
	}
	for i, s := range old {
		remap[i] = index[s]
	}
	out := make([]int, len(codes))
	for i, c := range codes {
		if c == Missing {
			out[i] = Missing

			continue
		}
		out[i] = remap[c]
	}

	return out
}
