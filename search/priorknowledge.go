// SPDX-License-Identifier: MIT
// Package search: structural prior knowledge. Constraints are stated over
// a fixed label set; Allows is the single gate every candidate edge passes
// through during search.

package search

import (
	"fmt"
	"sort"
)

// PriorKnowledge holds forbidden edges, required edges and temporal tiers
// over a fixed label set. The zero constraints allow everything.
type PriorKnowledge struct {
	labels    []string
	index     map[string]struct{}
	forbidden map[[2]string]struct{}
	required  map[[2]string]struct{}
	tiers     map[string]int
}

// NewPriorKnowledge starts an empty constraint set over sorted labels.
func NewPriorKnowledge(labels []string) *PriorKnowledge {
	sorted := append([]string(nil), labels...)
	sort.Strings(sorted)
	index := make(map[string]struct{}, len(sorted))
	for _, l := range sorted {
		index[l] = struct{}{}
	}

	return &PriorKnowledge{
		labels:    sorted,
		index:     index,
		forbidden: make(map[[2]string]struct{}),
		required:  make(map[[2]string]struct{}),
		tiers:     make(map[string]int),
	}
}

// Labels returns the sorted label set.
func (pk *PriorKnowledge) Labels() []string { return append([]string(nil), pk.labels...) }

// Forbid bans the directed edge from → to. Requiring and forbidding the
// same edge is an ErrPriorConflict.
func (pk *PriorKnowledge) Forbid(from, to string) error {
	if err := pk.checkPair(from, to); err != nil {
		return err
	}
	if _, ok := pk.required[[2]string{from, to}]; ok {
		return fmt.Errorf("%s -> %s: %w", from, to, ErrPriorConflict)
	}
	pk.forbidden[[2]string{from, to}] = struct{}{}

	return nil
}

// Require pins the directed edge from → to into every structure. The
// accumulated required set must stay realizable: an edge closing a directed
// cycle through other required edges is an ErrRequiredCycle.
func (pk *PriorKnowledge) Require(from, to string) error {
	if err := pk.checkPair(from, to); err != nil {
		return err
	}
	if _, ok := pk.forbidden[[2]string{from, to}]; ok {
		return fmt.Errorf("%s -> %s: %w", from, to, ErrPriorConflict)
	}
	if !pk.tierAllows(from, to) {
		return fmt.Errorf("%s -> %s: %w", from, to, ErrTierViolation)
	}
	if pk.requiredReaches(to, from) {
		return fmt.Errorf("%s -> %s: %w", from, to, ErrRequiredCycle)
	}
	pk.required[[2]string{from, to}] = struct{}{}

	return nil
}

// requiredReaches reports whether the required edges alone carry a directed
// path from src to dst.
func (pk *PriorKnowledge) requiredReaches(src, dst string) bool {
	if src == dst {
		return true
	}
	seen := map[string]struct{}{src: {}}
	stack := []string{src}
	for len(stack) > 0 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for e := range pk.required {
			if e[0] != v {
				continue
			}
			if e[1] == dst {
				return true
			}
			if _, ok := seen[e[1]]; ok {
				continue
			}
			seen[e[1]] = struct{}{}
			stack = append(stack, e[1])
		}
	}

	return false
}

// SetTier assigns a temporal tier to one label. Edges may only run from a
// lower-or-equal tier to a higher-or-equal one; labels without a tier stay
// unconstrained. A tier assignment invalidating an already-required edge
// is an ErrTierViolation.
func (pk *PriorKnowledge) SetTier(label string, tier int) error {
	if _, ok := pk.index[label]; !ok {
		return fmt.Errorf("%q: %w", label, ErrUnknownLabel)
	}
	old, had := pk.tiers[label]
	pk.tiers[label] = tier
	for e := range pk.required {
		if !pk.tierAllows(e[0], e[1]) {
			if had {
				pk.tiers[label] = old
			} else {
				delete(pk.tiers, label)
			}

			return fmt.Errorf("%s -> %s: %w", e[0], e[1], ErrTierViolation)
		}
	}

	return nil
}

// Allows reports whether the edge from → to is admissible: known labels,
// no self-loop, not forbidden, tier order respected.
func (pk *PriorKnowledge) Allows(from, to string) bool {
	if from == to {
		return false
	}
	if _, ok := pk.index[from]; !ok {
		return false
	}
	if _, ok := pk.index[to]; !ok {
		return false
	}
	if _, ok := pk.forbidden[[2]string{from, to}]; ok {
		return false
	}

	return pk.tierAllows(from, to)
}

// IsRequired reports whether the edge from → to is pinned.
func (pk *PriorKnowledge) IsRequired(from, to string) bool {
	_, ok := pk.required[[2]string{from, to}]

	return ok
}

// Required returns the pinned edges in sorted order.
func (pk *PriorKnowledge) Required() [][2]string {
	out := make([][2]string, 0, len(pk.required))
	for e := range pk.required {
		out = append(out, e)
	}
	sort.Slice(out, func(a, b int) bool {
		if out[a][0] != out[b][0] {
			return out[a][0] < out[b][0]
		}

		return out[a][1] < out[b][1]
	})

	return out
}

func (pk *PriorKnowledge) checkPair(from, to string) error {
	if _, ok := pk.index[from]; !ok {
		return fmt.Errorf("%q: %w", from, ErrUnknownLabel)
	}
	if _, ok := pk.index[to]; !ok {
		return fmt.Errorf("%q: %w", to, ErrUnknownLabel)
	}
	if from == to {
		return fmt.Errorf("%q: %w", from, ErrSelfLoop)
	}

	return nil
}

func (pk *PriorKnowledge) tierAllows(from, to string) bool {
	tf, okf := pk.tiers[from]
	tt, okt := pk.tiers[to]
	if !okf || !okt {
		return true
	}

	return tf <= tt
}
