// SPDX-License-Identifier: MIT
// Package bn: JSON persistence. The document layout is stable: vertices in
// sorted label order, edges in sorted order, probability rows in Ravel
// configuration order. Encoding a decoded document reproduces it byte for
// byte.

package bn

import (
	"encoding/json"
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/causal/digraph"
	"github.com/katalvlaran/causal/distribution"
)

const (
	catDocKind   = "categorical_bn"
	gaussDocKind = "gaussian_bn"
)

// CatDocument is the persistence form of a categorical network. Name and
// Description are free-text document metadata; the model itself carries
// neither.
type CatDocument struct {
	Kind        string         `json:"kind"`
	Name        string         `json:"name,omitempty"`
	Description string         `json:"description,omitempty"`
	Edges       [][2]string    `json:"edges"`
	Vertices    []CatVertexDoc `json:"vertices"`
}

// CatVertexDoc carries one vertex: its state space and its probability
// table, rows in configuration order over the sorted parents.
type CatVertexDoc struct {
	Label   string      `json:"label"`
	States  []string    `json:"states"`
	Parents []string    `json:"parents"`
	Table   [][]float64 `json:"table"`
}

// GaussDocument is the persistence form of a linear-Gaussian network. Name
// and Description are free-text document metadata; the model itself carries
// neither.
type GaussDocument struct {
	Kind        string           `json:"kind"`
	Name        string           `json:"name,omitempty"`
	Description string           `json:"description,omitempty"`
	Edges       [][2]string      `json:"edges"`
	Vertices    []GaussVertexDoc `json:"vertices"`
}

// GaussVertexDoc carries one vertex's regression parameters.
type GaussVertexDoc struct {
	Label        string    `json:"label"`
	Parents      []string  `json:"parents"`
	Coefficients []float64 `json:"coefficients"`
	Intercept    float64   `json:"intercept"`
	Variance     float64   `json:"variance"`
}

// Document converts the network to its persistence form.
func (m *CatBN) Document() *CatDocument {
	labels := m.graph.Labels()
	doc := &CatDocument{Kind: catDocKind, Edges: m.graph.Edges(), Vertices: make([]CatVertexDoc, len(labels))}
	for i, l := range labels {
		cpd := m.cpds[l]
		rows := cpd.ConfigCount()
		table := make([][]float64, rows)
		for u := 0; u < rows; u++ {
			table[u] = cpd.Row(u)
		}
		doc.Vertices[i] = CatVertexDoc{
			Label:   l,
			States:  cpd.States(),
			Parents: cpd.Parents(),
			Table:   table,
		}
	}

	return doc
}

// CatFromDocument rebuilds a network from its persistence form.
func CatFromDocument(doc *CatDocument) (*CatBN, error) {
	if doc.Kind != catDocKind {
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
		return nil, fmt.Errorf("bn: %w", err)
	}

	cpds := make(map[string]*distribution.CatCPD, len(doc.Vertices))
	for _, v := range doc.Vertices {
		pstates := make([][]string, len(v.Parents))
		for i, p := range v.Parents {
			ps, ok := states[p]
			if !ok {
				return nil, fmt.Errorf("vertex %q parent %q: %w", v.Label, p, ErrBadDocument)
			}
			pstates[i] = ps
		}
		if len(v.Table) == 0 {
			return nil, fmt.Errorf("vertex %q has no table: %w", v.Label, ErrBadDocument)
		}
		table := mat.NewDense(len(v.Table), len(v.Table[0]), nil)
		for u, row := range v.Table {
			if len(row) != len(v.Table[0]) {
				return nil, fmt.Errorf("vertex %q row %d: %w", v.Label, u, ErrBadDocument)
			}
			table.SetRow(u, row)
		}
		cpd, err := distribution.NewCatCPD(v.Label, v.States, v.Parents, pstates, table)
		if err != nil {
			return nil, fmt.Errorf("bn: %w", err)
		}
		cpds[v.Label] = cpd
	}

	return NewCatBN(g, cpds)
}

// MarshalJSON encodes the document form.
func (m *CatBN) MarshalJSON() ([]byte, error) { return json.Marshal(m.Document()) }

// UnmarshalJSON decodes the document form in place.
func (m *CatBN) UnmarshalJSON(data []byte) error {
	var doc CatDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("bn: %w", err)
	}
	decoded, err := CatFromDocument(&doc)
	if err != nil {
		return err
	}
	*m = *decoded

	return nil
}

// Document converts the network to its persistence form.
func (m *GaussBN) Document() *GaussDocument {
	labels := m.graph.Labels()
	doc := &GaussDocument{Kind: gaussDocKind, Edges: m.graph.Edges(), Vertices: make([]GaussVertexDoc, len(labels))}
	for i, l := range labels {
		cpd := m.cpds[l]
		doc.Vertices[i] = GaussVertexDoc{
			Label:        l,
			Parents:      cpd.Parents(),
			Coefficients: cpd.Coefficients(),
			Intercept:    cpd.Intercept(),
			Variance:     cpd.Variance(),
		}
	}

	return doc
}

// GaussFromDocument rebuilds a network from its persistence form.
func GaussFromDocument(doc *GaussDocument) (*GaussBN, error) {
	if doc.Kind != gaussDocKind {
		return nil, fmt.Errorf("kind %q: %w", doc.Kind, ErrBadDocument)
	}
	labels := make([]string, len(doc.Vertices))
	for i, v := range doc.Vertices {
		labels[i] = v.Label
	}
	g, err := digraph.FromEdgeList(labels, doc.Edges)
	if err != nil {
		return nil, fmt.Errorf("bn: %w", err)
	}

	cpds := make(map[string]*distribution.GaussCPD, len(doc.Vertices))
	for _, v := range doc.Vertices {
		cpd, err := distribution.NewGaussCPD(v.Label, v.Parents, v.Coefficients, v.Intercept, v.Variance)
		if err != nil {
			return nil, fmt.Errorf("bn: %w", err)
		}
		cpds[v.Label] = cpd
	}

	return NewGaussBN(g, cpds)
}

// MarshalJSON encodes the document form.
func (m *GaussBN) MarshalJSON() ([]byte, error) { return json.Marshal(m.Document()) }

// UnmarshalJSON decodes the document form in place.
func (m *GaussBN) UnmarshalJSON(data []byte) error {
	var doc GaussDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("bn: %w", err)
	}
	decoded, err := GaussFromDocument(&doc)
	if err != nil {
		return err
	}
	*m = *decoded

	return nil
}
