// SPDX-License-Identifier: MIT
// Package dataset: the incomplete categorical table. Missing cells are the
// empty string on input and the Missing code internally; direct counts skip
// them, EM resolves them.

package dataset

// IncompleteTable is a static categorical table whose cells may be
// unobserved. It shares the canonicalization rules of CatTable; an
// unobserved cell is coded Missing.
type IncompleteTable struct {
	labels []string
	states [][]string
	values [][]int // row-major, Missing marks unobserved cells
}

// NewIncompleteTable canonicalizes raw labeled columns where the empty
// string marks an unobserved cell. A column that is entirely missing must
// declare its state space explicitly.
func NewIncompleteTable(columns []CategoricalColumn) (*IncompleteTable, error) {
	labels, order, err := checkCatColumns(columns, true)
	if err != nil {
		return nil, err
	}

	n := len(columns[0].Values)
	states := make([][]string, len(labels))
	coded := make([][]int, len(labels))
	for j, idx := range order {
		col := columns[idx]
		observed := make([]string, 0, len(col.Values))
		for _, v := range col.Values {
			if v != "" {
				observed = append(observed, v)
			}
		}
		states[j] = canonStates(observed, col.States)
		codes := make([]int, n)
		index := make(map[string]int, len(states[j]))
		for i, s := range states[j] {
			index[s] = i
		}
		for r, v := range col.Values {
			if v == "" {
				codes[r] = Missing

				continue
			}
			codes[r] = index[v]
		}
		coded[j] = codes
	}

	values := make([][]int, n)
	for r := 0; r < n; r++ {
		row := make([]int, len(labels))
		for j := range labels {
			row[j] = coded[j][r]
		}
		values[r] = row
	}

	return &IncompleteTable{labels: labels, states: states, values: values}, nil
}

// Labels returns the sorted column labels.
func (t *IncompleteTable) Labels() []string { return append([]string(nil), t.labels...) }

// States returns the canonical state space per label.
func (t *IncompleteTable) States() map[string][]string { return statesMap(t.labels, t.states) }

// StateSpaces returns the state spaces aligned with Labels().
func (t *IncompleteTable) StateSpaces() [][]string { return statesCopy(t.states) }

// Cardinality returns the state-space size per column, aligned with Labels().
func (t *IncompleteTable) Cardinality() []int { return cardinality(t.states) }

// SampleSize returns the number of rows.
func (t *IncompleteTable) SampleSize() int { return len(t.values) }

// Values returns a copy of the coded value matrix; Missing marks holes.
func (t *IncompleteTable) Values() [][]int { return intMatrixCopy(t.values) }

// At returns the code at (row, col) without copying; may be Missing.
func (t *IncompleteTable) At(row, col int) int { return t.values[row][col] }

// Observed reports whether the cell at (row, col) is observed.
func (t *IncompleteTable) Observed(row, col int) bool { return t.values[row][col] != Missing }

// MissingCells returns, per row, the sorted column indices of unobserved
// cells. Rows with no holes map to a nil slice.
func (t *IncompleteTable) MissingCells() [][]int {
	out := make([][]int, len(t.values))
	for r, row := range t.values {
		for j, c := range row {
			if c == Missing {
				out[r] = append(out[r], j)
			}
		}
	}

	return out
}

// Complete reports whether the table contains no missing cells.
func (t *IncompleteTable) Complete() bool {
	for _, row := range t.values {
		for _, c := range row {
			if c == Missing {
				return false
			}
		}
	}

	return true
}

// AsComplete converts a table with no missing cells into a CatTable.
func (t *IncompleteTable) AsComplete() (*CatTable, error) {
	if !t.Complete() {
		return nil, ErrMissingCells
	}

	return &CatTable{
		labels: append([]string(nil), t.labels...),
		states: statesCopy(t.states),
		values: intMatrixCopy(t.values),
	}, nil
}

// IncompleteFromCodes constructs a table directly from canonical coded
// values, Missing allowed; the EM imputation path uses it.
func IncompleteFromCodes(labels []string, states [][]string, values [][]int) (*IncompleteTable, error) {
	base, err := FromCodes(labels, states, values)
	if err != nil {
		return nil, err
	}

	return &IncompleteTable{labels: base.labels, states: base.states, values: base.values}, nil
}
