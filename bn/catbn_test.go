// SPDX-License-Identifier: MIT

package bn

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/causal/dataset"
	"github.com/katalvlaran/causal/digraph"
	"github.com/katalvlaran/causal/distribution"
)

func xyGraph(t *testing.T) *digraph.DiGraph {
	t.Helper()
	g, err := digraph.New("x", "y")
	require.NoError(t, err)
	require.NoError(t, g.AddEdge("x", "y"))

	return g
}

// copyModel is x → y with y a perfect copy of x.
func copyModel(t *testing.T) *CatBN {
	t.Helper()
	ab := []string{"a", "b"}
	x, err := distribution.NewCatCPD("x", ab, nil, nil, tableOf([]float64{0.5, 0.5}))
	require.NoError(t, err)
	y, err := distribution.NewCatCPD("y", ab, []string{"x"}, [][]string{ab},
		tableOf([]float64{1, 0}, []float64{0, 1}))
	require.NoError(t, err)

	m, err := NewCatBN(xyGraph(t), map[string]*distribution.CatCPD{"x": x, "y": y})
	require.NoError(t, err)

	return m
}

func TestNewCatBN_Validation(t *testing.T) {
	g := xyGraph(t)
	x, err := distribution.NewCatCPD("x", []string{"a", "b"}, nil, nil, tableOf([]float64{0.5, 0.5}))
	require.NoError(t, err)

	// Missing table for y.
	if _, err := NewCatBN(g, map[string]*distribution.CatCPD{"x": x}); !errors.Is(err, ErrLabelMismatch) {
		t.Fatalf("want ErrLabelMismatch, got %v", err)
	}

	// y's table ignores its parent.
	y, err := distribution.NewCatCPD("y", []string{"a", "b"}, nil, nil, tableOf([]float64{0.5, 0.5}))
	require.NoError(t, err)
	if _, err := NewCatBN(g, map[string]*distribution.CatCPD{"x": x, "y": y}); !errors.Is(err, ErrLabelMismatch) {
		t.Fatalf("want ErrLabelMismatch, got %v", err)
	}
}

func TestFitCat_MLE(t *testing.T) {
	tbl, err := dataset.NewCatTable([]dataset.CategoricalColumn{
		{Label: "x", Values: []string{"a", "a", "b", "b"}},
		{Label: "y", Values: []string{"u", "u", "u", "v"}},
	})
	require.NoError(t, err)

	m, err := FitCat(tbl, xyGraph(t), MLE)
	require.NoError(t, err)

	x, _ := m.CPD("x")
	assert.InDelta(t, 0.5, x.Prob(0, 0), 1e-12)
	y, _ := m.CPD("y")
	assert.InDelta(t, 1.0, y.Prob(0, 0), 1e-12) // y=u | x=a
	assert.InDelta(t, 0.5, y.Prob(1, 0), 1e-12) // y=u | x=b
}

func TestFitCat_UnknownMethod(t *testing.T) {
	tbl, err := dataset.NewCatTable([]dataset.CategoricalColumn{
		{Label: "x", Values: []string{"a", "b"}},
		{Label: "y", Values: []string{"u", "v"}},
	})
	require.NoError(t, err)

	if _, err := FitCat(tbl, xyGraph(t), Method("map")); !errors.Is(err, ErrUnknownMethod) {
		t.Fatalf("want ErrUnknownMethod, got %v", err)
	}
}

func TestCatBN_SampleDeterministic(t *testing.T) {
	m := Asia()

	a, err := m.Sample(40, 11)
	require.NoError(t, err)
	b, err := m.Sample(40, 11)
	require.NoError(t, err)
	assert.Equal(t, a.Values(), b.Values(), "one seed, one table")

	c, err := m.Sample(40, 12)
	require.NoError(t, err)
	assert.NotEqual(t, a.Values(), c.Values(), "different seeds must diverge")

	if _, err := m.Sample(0, 1); !errors.Is(err, ErrBadSampleSize) {
		t.Fatalf("want ErrBadSampleSize, got %v", err)
	}
}

func TestCatBN_SamplePreservesDependence(t *testing.T) {
	m := copyModel(t)

	tbl, err := m.Sample(100, 3)
	require.NoError(t, err)
	for r := 0; r < tbl.SampleSize(); r++ {
		if tbl.At(r, 0) != tbl.At(r, 1) {
			t.Fatalf("row %d: y must copy x", r)
		}
	}
}

func TestCatBN_FitSampleRoundTrip(t *testing.T) {
	m := Asia()
	tbl, err := m.Sample(500, 7)
	require.NoError(t, err)

	// Bayesian refit over the sample never fails, even for rare
	// configurations, and keeps the state spaces intact.
	refit, err := FitCat(tbl, m.Graph(), Bayes)
	require.NoError(t, err)
	assert.Equal(t, m.StateSpaces(), refit.StateSpaces())
	assert.True(t, refit.Graph().Equal(m.Graph()))
}

func TestCatBN_LogLikelihood(t *testing.T) {
	m := copyModel(t)

	tbl, err := dataset.NewCatTable([]dataset.CategoricalColumn{
		{Label: "x", Values: []string{"a", "b"}},
		{Label: "y", Values: []string{"a", "b"}},
	})
	require.NoError(t, err)

	ll, err := m.LogLikelihood(tbl)
	require.NoError(t, err)
	// Two rows, each P(x)·P(y|x) = 0.5·1.
	assert.InDelta(t, 2*math.Log(0.5), ll, 1e-12)
}

func TestAsia_Shape(t *testing.T) {
	m := Asia()

	require.Equal(t, []string{"asia", "bronc", "dysp", "either", "lung", "smoke", "tub", "xray"}, m.Labels())
	assert.Equal(t, 8, m.Graph().Size())

	either, ok := m.CPD("either")
	require.True(t, ok)
	assert.Equal(t, []string{"lung", "tub"}, either.Parents())
	// Deterministic OR: either=yes whenever lung or tub is yes.
	assert.Equal(t, 1.0, either.Prob(0, 0))
	assert.Equal(t, 1.0, either.Prob(1, 1))
	assert.Equal(t, 1.0, either.Prob(2, 1))
	assert.Equal(t, 1.0, either.Prob(3, 1))

	// 2·1 + 2·2·2 + 2·4 + ... free parameters: each binary vertex carries
	// one free parameter per configuration row.
	assert.Equal(t, 1+1+2+2+2+4+2+4, m.ParameterCount())
}
