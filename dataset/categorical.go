// SPDX-License-Identifier: MIT
// Package dataset: the static categorical table.

package dataset

import (
	"fmt"
	"sort"
)

// Missing is the integer code marking an unobserved categorical cell.
// Only IncompleteTable produces it; CatTable never contains it.
const Missing = -1

// CategoricalColumn is one labeled column of raw categorical input.
// States optionally declares an explicit, possibly-superset category list;
// declared states that never occur in Values are preserved by the table.
type CategoricalColumn struct {
	Label  string
	Values []string
	States []string
}

// CatTable is an immutable static categorical table: rows × sorted columns,
// cells coded into each column's canonical state space.
type CatTable struct {
	labels []string
	states [][]string // aligned with labels
	values [][]int    // row-major codes, len(values) rows × len(labels) cols
}

// NewCatTable canonicalizes raw labeled columns into a table: columns are
// sorted by label, state spaces are the sorted union of observed and
// declared values, and cells are re-coded to integers.
//
// All columns must share one length; every column needs at least one
// observed or declared state.
func NewCatTable(columns []CategoricalColumn) (*CatTable, error) {
	labels, order, err := checkCatColumns(columns, false)
	if err != nil {
		return nil, err
	}

	n := len(columns[0].Values)
	states := make([][]string, len(labels))
	coded := make([][]int, len(labels))
	for j, idx := range order {
		col := columns[idx]
		states[j] = canonStates(col.Values, col.States)
		coded[j] = encode(col.Values, states[j])
	}

	// Transpose into row-major storage.
	values := make([][]int, n)
	for r := 0; r < n; r++ {
		row := make([]int, len(labels))
		for j := range labels {
			row[j] = coded[j][r]
		}
		values[r] = row
	}

	return &CatTable{labels: labels, states: states, values: values}, nil
}

// Labels returns the sorted column labels.
func (t *CatTable) Labels() []string { return append([]string(nil), t.labels...) }

// States returns the canonical state space per label.
func (t *CatTable) States() map[string][]string { return statesMap(t.labels, t.states) }

// StateSpaces returns the state spaces aligned with Labels().
func (t *CatTable) StateSpaces() [][]string { return statesCopy(t.states) }

// Cardinality returns the state-space size per column, aligned with Labels().
func (t *CatTable) Cardinality() []int { return cardinality(t.states) }

// SampleSize returns the number of rows.
func (t *CatTable) SampleSize() int { return len(t.values) }

// Values returns a copy of the coded value matrix (rows × columns).
func (t *CatTable) Values() [][]int { return intMatrixCopy(t.values) }

// At returns the code at (row, col) without copying. Bounds are the
// caller's responsibility (hot path for the estimators).
func (t *CatTable) At(row, col int) int { return t.values[row][col] }

// Columns converts the table back to labeled raw columns; it is the exact
// inverse of NewCatTable up to canonical (sorted) state order.
func (t *CatTable) Columns() []CategoricalColumn {
	out := make([]CategoricalColumn, len(t.labels))
	for j, l := range t.labels {
		vals := make([]string, len(t.values))
		for r := range t.values {
			vals[r] = t.states[j][t.values[r][j]]
		}
		out[j] = CategoricalColumn{
			Label:  l,
			Values: vals,
			States: append([]string(nil), t.states[j]...),
		}
	}

	return out
}

// FromCodes constructs a table directly from canonical coded values; used by
// the samplers, which already produce canonical output. states must be
// canonical (sorted) per column and every code in range.
func FromCodes(labels []string, states [][]string, values [][]int) (*CatTable, error) {
	if len(labels) == 0 {
		return nil, ErrNoColumns
	}
	if len(states) != len(labels) {
		return nil, ErrLengthMismatch
	}
	if !sort.StringsAreSorted(labels) {
		return nil, fmt.Errorf("labels must be sorted: %w", ErrLabelMismatch)
	}
	for j, s := range states {
		if len(s) == 0 {
			return nil, fmt.Errorf("column %q: %w", labels[j], ErrEmptyStateSpace)
		}
	}
	for _, row := range values {
		if len(row) != len(labels) {
			return nil, ErrLengthMismatch
		}
	}

	return &CatTable{
		labels: append([]string(nil), labels...),
		states: statesCopy(states),
		values: intMatrixCopy(values),
	}, nil
}

// checkCatColumns validates raw categorical columns and returns the sorted
// labels plus the column permutation realizing that order. allowMissing
// permits empty-string cells (the IncompleteTable path).
func checkCatColumns(columns []CategoricalColumn, allowMissing bool) ([]string, []int, error) {
	if len(columns) == 0 {
		return nil, nil, ErrNoColumns
	}
	n := len(columns[0].Values)
	seen := make(map[string]int, len(columns))
	for i, col := range columns {
		if col.Label == "" {
			return nil, nil, ErrEmptyLabel
		}
		if _, dup := seen[col.Label]; dup {
			return nil, nil, fmt.Errorf("column %q: %w", col.Label, ErrDuplicateColumn)
		}
		seen[col.Label] = i
		if len(col.Values) != n {
			return nil, nil, fmt.Errorf("column %q: %w", col.Label, ErrLengthMismatch)
		}
		observed := 0
		for _, v := range col.Values {
			if v == "" {
				if !allowMissing {
					return nil, nil, fmt.Errorf("column %q has an empty value: %w", col.Label, ErrEmptyStateSpace)
				}

				continue
			}
			observed++
		}
		if observed == 0 && len(col.States) == 0 {
			return nil, nil, fmt.Errorf("column %q: %w", col.Label, ErrEmptyStateSpace)
		}
	}

	labels := make([]string, 0, len(columns))
	for l := range seen {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	order := make([]int, len(labels))
	for j, l := range labels {
		order[j] = seen[l]
	}

	return labels, order, nil
}

func statesMap(labels []string, states [][]string) map[string][]string {
	out := make(map[string][]string, len(labels))
	for j, l := range labels {
		out[l] = append([]string(nil), states[j]...)
	}

	return out
}

func cardinality(states [][]string) []int {
	out := make([]int, len(states))
	for i, s := range states {
		out[i] = len(s)
	}

	return out
}

func intMatrixCopy(values [][]int) [][]int {
	out := make([][]int, len(values))
	for i, row := range values {
		out[i] = append([]int(nil), row...)
	}

	return out
}
