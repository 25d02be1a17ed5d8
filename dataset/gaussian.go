// SPDX-License-Identifier: MIT
// Package dataset: the static continuous table.

package dataset

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// ContinuousColumn is one labeled column of raw continuous input.
type ContinuousColumn struct {
	Label  string
	Values []float64
}

// GaussTable is an immutable static continuous table: rows × sorted columns
// of float64 cells. It carries no state spaces; the numeric values are the
// representation.
type GaussTable struct {
	labels []string
	values *mat.Dense // rows × len(labels)
}

// NewGaussTable canonicalizes raw labeled continuous columns: columns are
// sorted by label and packed into a dense matrix. All columns must share one
// length and every cell must be finite.
func NewGaussTable(columns []ContinuousColumn) (*GaussTable, error) {
	if len(columns) == 0 {
		return nil, ErrNoColumns
	}
	n := len(columns[0].Values)
	seen := make(map[string]int, len(columns))
	for i, col := range columns {
		if col.Label == "" {
			return nil, ErrEmptyLabel
		}
		if _, dup := seen[col.Label]; dup {
			return nil, fmt.Errorf("column %q: %w", col.Label, ErrDuplicateColumn)
		}
		seen[col.Label] = i
		if len(col.Values) != n {
			return nil, fmt.Errorf("column %q: %w", col.Label, ErrLengthMismatch)
		}
		for _, v := range col.Values {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("column %q: %w", col.Label, ErrNonFiniteValue)
			}
		}
	}

	labels := make([]string, 0, len(columns))
	for l := range seen {
		labels = append(labels, l)
	}
	sort.Strings(labels)

	values := mat.NewDense(n, len(labels), nil)
	for j, l := range labels {
		col := columns[seen[l]]
		for r := 0; r < n; r++ {
			values.Set(r, j, col.Values[r])
		}
	}

	return &GaussTable{labels: labels, values: values}, nil
}

// Labels returns the sorted column labels.
func (t *GaussTable) Labels() []string { return append([]string(nil), t.labels...) }

// SampleSize returns the number of rows.
func (t *GaussTable) SampleSize() int {
	r, _ := t.values.Dims()

	return r
}

// Values returns the value matrix. The returned matrix must not be mutated.
func (t *GaussTable) Values() mat.Matrix { return t.values }

// At returns the cell at (row, col) without copying.
func (t *GaussTable) At(row, col int) float64 { return t.values.At(row, col) }

// Column returns a copy of one column by canonical index.
func (t *GaussTable) Column(col int) []float64 {
	return mat.Col(nil, col, t.values)
}

// Columns converts the table back to labeled raw columns; the exact inverse
// of NewGaussTable.
func (t *GaussTable) Columns() []ContinuousColumn {
	out := make([]ContinuousColumn, len(t.labels))
	for j, l := range t.labels {
		out[j] = ContinuousColumn{Label: l, Values: mat.Col(nil, j, t.values)}
	}

	return out
}

// GaussFromMatrix constructs a table directly from a sorted label set and a
// dense matrix; used by the ancestral sampler.
func GaussFromMatrix(labels []string, values *mat.Dense) (*GaussTable, error) {
	if len(labels) == 0 {
		return nil, ErrNoColumns
	}
	if !sort.StringsAreSorted(labels) {
		return nil, fmt.Errorf("labels must be sorted: %w", ErrLabelMismatch)
	}
	_, c := values.Dims()
	if c != len(labels) {
		return nil, ErrLengthMismatch
	}
	cp := mat.DenseCopyOf(values)

	return &GaussTable{labels: append([]string(nil), labels...), values: cp}, nil
}
