// SPDX-License-Identifier: MIT
// Package dataset: interval evidence. An evidence record asserts that one
// variable held one state over a half-open time window [Start, End); a
// record set over several variables forms one partially observed process,
// and a collection of such sets is the raw material for continuous-time EM.

package dataset

import (
	"fmt"
	"math"
	"sort"
)

// EvidenceRecord asserts "Label held State on [Start, End)".
type EvidenceRecord struct {
	Label string
	State string
	Start float64
	End   float64
}

// IntervalEvidence is an immutable set of evidence records over sorted
// labels; per label, intervals are sorted by start and pairwise disjoint.
type IntervalEvidence struct {
	labels  []string
	states  [][]string
	records map[string][]EvidenceRecord // per label, sorted by Start
	horizon float64
}

// evidenceConfig collects the optional constructor switches.
type evidenceConfig struct {
	declared map[string][]string
}

// EvidenceOption adjusts evidence canonicalization.
type EvidenceOption func(*evidenceConfig)

// WithDeclaredStates widens the state space of label with an explicit
// superset, so unobserved states survive into the canonical space.
func WithDeclaredStates(label string, states []string) EvidenceOption {
	return func(c *evidenceConfig) {
		if c.declared == nil {
			c.declared = make(map[string][]string)
		}
		c.declared[label] = append(c.declared[label], states...)
	}
}

// NewIntervalEvidence canonicalizes raw evidence records: labels become the
// sorted set of labels occurring in records or in declared supersets, state
// spaces are the sorted union of asserted and declared states, and per-label
// intervals are sorted and checked for disjointness.
func NewIntervalEvidence(records []EvidenceRecord, opts ...EvidenceOption) (*IntervalEvidence, error) {
	var cfg evidenceConfig
	for _, o := range opts {
		o(&cfg)
	}

	byLabel := make(map[string][]EvidenceRecord)
	observed := make(map[string][]string)
	horizon := 0.0
	for _, rec := range records {
		if rec.Label == "" {
			return nil, ErrEmptyLabel
		}
		if bad(rec.Start) || bad(rec.End) || rec.Start < 0 || rec.End <= rec.Start {
			return nil, fmt.Errorf("%q on [%v,%v): %w", rec.Label, rec.Start, rec.End, ErrBadInterval)
		}
		byLabel[rec.Label] = append(byLabel[rec.Label], rec)
		observed[rec.Label] = append(observed[rec.Label], rec.State)
		if rec.End > horizon {
			horizon = rec.End
		}
	}
	for l := range cfg.declared {
		if l == "" {
			return nil, ErrEmptyLabel
		}
		if _, ok := byLabel[l]; !ok {
			byLabel[l] = nil
		}
	}
	if len(byLabel) == 0 {
		return nil, ErrNoColumns
	}

	labels := make([]string, 0, len(byLabel))
	for l := range byLabel {
		labels = append(labels, l)
	}
	sort.Strings(labels)

	states := make([][]string, len(labels))
	for j, l := range labels {
		states[j] = canonStates(observed[l], cfg.declared[l])
		if len(states[j]) == 0 {
			return nil, fmt.Errorf("label %q: %w", l, ErrEmptyStateSpace)
		}
	}

	for _, l := range labels {
		recs := byLabel[l]
		sort.Slice(recs, func(a, b int) bool { return recs[a].Start < recs[b].Start })
		for i := 1; i < len(recs); i++ {
			if recs[i].Start < recs[i-1].End {
				return nil, fmt.Errorf("label %q at %v: %w", l, recs[i].Start, ErrOverlappingEvidence)
			}
		}
		byLabel[l] = recs
	}

	return &IntervalEvidence{labels: labels, states: states, records: byLabel, horizon: horizon}, nil
}

// Labels returns the sorted variable labels.
func (e *IntervalEvidence) Labels() []string { return append([]string(nil), e.labels...) }

// States returns the canonical state space per label.
func (e *IntervalEvidence) States() map[string][]string { return statesMap(e.labels, e.states) }

// StateSpaces returns the state spaces aligned with Labels().
func (e *IntervalEvidence) StateSpaces() [][]string { return statesCopy(e.states) }

// Horizon returns the largest interval end across all records (zero for a
// set built purely from declared labels).
func (e *IntervalEvidence) Horizon() float64 { return e.horizon }

// Records returns the per-label records sorted by start time.
func (e *IntervalEvidence) Records(label string) []EvidenceRecord {
	return append([]EvidenceRecord(nil), e.records[label]...)
}

// Len returns the total record count.
func (e *IntervalEvidence) Len() int {
	n := 0
	for _, recs := range e.records {
		n += len(recs)
	}

	return n
}

// StateAt returns the asserted state code of label at time tau, or Missing
// when no interval covers tau. Unknown labels also report Missing.
func (e *IntervalEvidence) StateAt(label string, tau float64) int {
	recs := e.records[label]
	i := sort.Search(len(recs), func(k int) bool { return recs[k].Start > tau })
	if i == 0 {
		return Missing
	}
	rec := recs[i-1]
	if tau >= rec.End {
		return Missing
	}
	j, ok := indexOf(e.labels, label)
	if !ok {
		return Missing
	}

	return encode([]string{rec.State}, e.states[j])[0]
}

// Timeline returns the sorted set of distinct interval endpoints across all
// labels; consecutive endpoints bound the homogeneous evidence segments.
func (e *IntervalEvidence) Timeline() []float64 {
	set := make(map[float64]struct{})
	for _, recs := range e.records {
		for _, rec := range recs {
			set[rec.Start] = struct{}{}
			set[rec.End] = struct{}{}
		}
	}
	out := make([]float64, 0, len(set))
	for t := range set {
		out = append(out, t)
	}
	sort.Float64s(out)

	return out
}

// EvidenceSet is an immutable collection of evidence over one shared label
// set and one union state space; each element describes one independent
// partially observed process.
type EvidenceSet struct {
	labels   []string
	states   [][]string
	elements []*IntervalEvidence
}

// NewEvidenceSet merges evidence elements. Every element must carry the
// same sorted label set; state spaces are widened to the union.
func NewEvidenceSet(elements []*IntervalEvidence) (*EvidenceSet, error) {
	if len(elements) == 0 {
		return nil, ErrNoTrajectories
	}
	labels := elements[0].labels
	for _, e := range elements[1:] {
		if !stringsEqual(labels, e.labels) {
			return nil, ErrLabelMismatch
		}
	}
	union := statesCopy(elements[0].states)
	for _, e := range elements[1:] {
		for j := range union {
			union[j] = unionStates(union[j], e.states[j])
		}
	}
	widened := make([]*IntervalEvidence, len(elements))
	for i, e := range elements {
		widened[i] = &IntervalEvidence{
			labels:  append([]string(nil), labels...),
			states:  statesCopy(union),
			records: e.records,
			horizon: e.horizon,
		}
	}

	return &EvidenceSet{
		labels:   append([]string(nil), labels...),
		states:   union,
		elements: widened,
	}, nil
}

// Labels returns the shared sorted variable labels.
func (s *EvidenceSet) Labels() []string { return append([]string(nil), s.labels...) }

// States returns the union state space per label.
func (s *EvidenceSet) States() map[string][]string { return statesMap(s.labels, s.states) }

// StateSpaces returns the union state spaces aligned with Labels().
func (s *EvidenceSet) StateSpaces() [][]string { return statesCopy(s.states) }

// Cardinality returns the union state-space size per variable.
func (s *EvidenceSet) Cardinality() []int { return cardinality(s.states) }

// Len returns the number of evidence elements.
func (s *EvidenceSet) Len() int { return len(s.elements) }

// Element returns the i-th evidence element (widened to the union space).
func (s *EvidenceSet) Element(i int) *IntervalEvidence { return s.elements[i] }

// Horizon returns the largest horizon across elements.
func (s *EvidenceSet) Horizon() float64 {
	h := 0.0
	for _, e := range s.elements {
		if e.horizon > h {
			h = e.horizon
		}
	}

	return h
}

func bad(v float64) bool { return math.IsNaN(v) || math.IsInf(v, 0) }

func indexOf(labels []string, label string) (int, bool) {
	i := sort.SearchStrings(labels, label)
	if i < len(labels) && labels[i] == label {
		return i, true
	}

	return 0, false
}
