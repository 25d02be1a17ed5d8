// SPDX-License-Identifier: MIT
// Package ctbn: JSON persistence. Vertices in sorted label order, one
// generator per parent configuration in Ravel order; encoding a decoded
// document is bit-exact.

package ctbn

import (
	"encoding/json"
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/causal/digraph"
	"github.com/katalvlaran/causal/distribution"
)

const docKind = "categorical_ctbn"

// Document is the persistence form of a continuous-time network. Name and
// Description are free-text document metadata; the model itself carries
// neither.
type Document struct {
	Kind        string      `json:"kind"`
	Name        string      `json:"name,omitempty"`
	Description string      `json:"description,omitempty"`
	Edges       [][2]string `json:"edges"`
	Vertices    []VertexDoc `json:"vertices"`
}

// VertexDoc carries one vertex: its state space and its generator per
// parent configuration, each generator row-major.
type VertexDoc struct {
	Label    string        `json:"label"`
	States   []string      `json:"states"`
	Parents  []string      `json:"parents"`
	Matrices [][][]float64 `json:"matrices"`
}

// Document converts the network to its persistence form.
func (m *CatCTBN) Document() *Document {
	labels := m.graph.Labels()
	doc := &Document{Kind: docKind, Edges: m.graph.Edges(), Vertices: make([]VertexDoc, len(labels))}
	for i, l := range labels {
		cim := m.cims[l]
		k := len(cim.States())
		matrices := make([][][]float64, cim.ConfigCount())
		for u := range matrices {
			rows := make([][]float64, k)
			for r := 0; r < k; r++ {
				row := make([]float64, k)
				for c := 0; c < k; c++ {
					row[c] = cim.Rate(u, r, c)
				}
				rows[r] = row
			}
			matrices[u] = rows
		}
		doc.Vertices[i] = VertexDoc{
			Label:    l,
			States:   cim.States(),
			Parents:  cim.Parents(),
			Matrices: matrices,
		}
	}

	return doc
}

// FromDocument rebuilds a network from its persistence form.
func FromDocument(doc *Document) (*CatCTBN, error) {
	if doc.Kind != docKind {
		return nil, fmt.Errorf("kind %q: %w", doc.Kind, ErrBadDocument)
	}
	labels := make([]string, len(doc.Vertices))
	states := make(map[string][]string, len(doc.Vertices))
	for i, v := range doc.Vertices {
		labels[i] = v.Label
		states[v.Label] = v.States
	}
	g, err := digraph.FromEdgeList(labels, doc.Edges)
	if err != nil {
		return nil, fmt.Errorf("ctbn: %w", err)
	}

	cims := make(map[string]*distribution.CatCIM, len(doc.Vertices))
	for _, v := range doc.Vertices {
		pstates := make([][]string, len(v.Parents))
		for i, p := range v.Parents {
			ps, ok := states[p]
			if !ok {
				return nil, fmt.Errorf("vertex %q parent %q: %w", v.Label, p, ErrBadDocument)
			}
			pstates[i] = ps
		}
		k := len(v.States)
		matrices := make([]*mat.Dense, len(v.Matrices))
		for u, rows := range v.Matrices {
			if len(rows) != k {
				return nil, fmt.Errorf("vertex %q config %d: %w", v.Label, u, ErrBadDocument)
			}
			q := mat.NewDense(k, k, nil)
			for r, row := range rows {
				if len(row) != k {
					return nil, fmt.Errorf("vertex %q config %d row %d: %w", v.Label, u, r, ErrBadDocument)
				}
				q.SetRow(r, row)
			}
			matrices[u] = q
		}
		cim, err := distribution.NewCatCIM(v.Label, v.States, v.Parents, pstates, matrices)
		if err != nil {
			return nil, fmt.Errorf("ctbn: %w", err)
		}
		cims[v.Label] = cim
	}

	return NewCatCTBN(g, cims)
}

// MarshalJSON encodes the document form.
func (m *CatCTBN) MarshalJSON() ([]byte, error) { return json.Marshal(m.Document()) }

// UnmarshalJSON decodes the document form in place.
func (m *CatCTBN) UnmarshalJSON(data []byte) error {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("ctbn: %w", err)
	}
	decoded, err := FromDocument(&doc)
	if err != nil {
		return err
	}
	*m = *decoded

	return nil
}
