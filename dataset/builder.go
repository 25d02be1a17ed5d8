// SPDX-License-Identifier: MIT
// Package dataset: incremental construction that finalizes an immutable
// table. Historical call patterns mutate a dataset's declared state space
// after construction; here declaration happens on the builder and Build is
// the single point where canonicalization invariants are enforced.

package dataset

import "fmt"

// TableBuilder accumulates labeled categorical columns and declared state
// supersets, then finalizes an immutable CatTable. The zero value is ready
// to use. Build may be called once; the builder is not safe for concurrent
// use.
type TableBuilder struct {
	columns  []CategoricalColumn
	declared map[string][]string
	built    bool
}

// NewTableBuilder returns an empty builder.
func NewTableBuilder() *TableBuilder {
	return &TableBuilder{declared: make(map[string][]string)}
}

// AddColumn appends one labeled column of raw values. Validation is
// deferred to Build.
func (b *TableBuilder) AddColumn(label string, values []string) *TableBuilder {
	b.columns = append(b.columns, CategoricalColumn{Label: label, Values: append([]string(nil), values...)})

	return b
}

// DeclareStates records an explicit, possibly-superset category list for a
// label. Later declarations for the same label replace earlier ones.
func (b *TableBuilder) DeclareStates(label string, states []string) *TableBuilder {
	if b.declared == nil {
		b.declared = make(map[string][]string)
	}
	b.declared[label] = append([]string(nil), states...)

	return b
}

// Build canonicalizes the accumulated columns into an immutable CatTable.
// A declared state space for an unknown label is an ErrLabelMismatch.
func (b *TableBuilder) Build() (*CatTable, error) {
	if b.built {
		return nil, fmt.Errorf("builder already finalized: %w", ErrNoColumns)
	}
	b.built = true

	known := make(map[string]struct{}, len(b.columns))
	cols := make([]CategoricalColumn, len(b.columns))
	for i, col := range b.columns {
		known[col.Label] = struct{}{}
		col.States = b.declared[col.Label]
		cols[i] = col
	}
	for l := range b.declared {
		if _, ok := known[l]; !ok {
			return nil, fmt.Errorf("declared states for %q: %w", l, ErrLabelMismatch)
		}
	}

	return NewCatTable(cols)
}
