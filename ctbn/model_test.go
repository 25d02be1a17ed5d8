// SPDX-License-Identifier: MIT

package ctbn

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/causal/dataset"
	"github.com/katalvlaran/causal/digraph"
	"github.com/katalvlaran/causal/distribution"
)

// flipModel is a single two-state variable with asymmetric rates.
func flipModel(t *testing.T, up, down float64) *CatCTBN {
	t.Helper()
	g, err := digraph.New("x")
	require.NoError(t, err)
	cim, err := distribution.NewCatCIM("x", []string{"off", "on"}, nil, nil, []*mat.Dense{
		mat.NewDense(2, 2, []float64{-up, up, down, -down}),
	})
	require.NoError(t, err)
	m, err := NewCatCTBN(g, map[string]*distribution.CatCIM{"x": cim})
	require.NoError(t, err)

	return m
}

func TestNewCatCTBN_Validation(t *testing.T) {
	g, err := digraph.New("x", "y")
	require.NoError(t, err)
	cim, err := distribution.NewCatCIM("x", []string{"a", "b"}, nil, nil, []*mat.Dense{
		mat.NewDense(2, 2, []float64{-1, 1, 1, -1}),
	})
	require.NoError(t, err)

	if _, err := NewCatCTBN(g, map[string]*distribution.CatCIM{"x": cim}); !errors.Is(err, ErrLabelMismatch) {
		t.Fatalf("want ErrLabelMismatch, got %v", err)
	}
}

func TestFit_KnownRates(t *testing.T) {
	// 3 units in a with 2 jumps out, 3 units in b with 1 jump out.
	tr, err := dataset.NewTrajectory([]float64{0, 2, 5, 6},
		[]dataset.TrajectoryColumn{{Label: "x", Values: []string{"a", "b", "a", "b"}}})
	require.NoError(t, err)
	paths, err := dataset.NewTrajectories([]*dataset.Trajectory{tr})
	require.NoError(t, err)
	g, err := digraph.New("x")
	require.NoError(t, err)

	m, err := Fit(paths, g, MLE)
	require.NoError(t, err)

	cim, ok := m.CIM("x")
	require.True(t, ok)
	assert.InDelta(t, 2.0/3, cim.Rate(0, 0, 1), 1e-12)
	assert.InDelta(t, 1.0/3, cim.Rate(0, 1, 0), 1e-12)
}

func TestFit_UnknownMethod(t *testing.T) {
	tr, err := dataset.NewTrajectory([]float64{0, 1},
		[]dataset.TrajectoryColumn{{Label: "x", Values: []string{"a", "b"}}})
	require.NoError(t, err)
	paths, err := dataset.NewTrajectories([]*dataset.Trajectory{tr})
	require.NoError(t, err)
	g, err := digraph.New("x")
	require.NoError(t, err)

	if _, err := Fit(paths, g, Method("map")); !errors.Is(err, ErrUnknownMethod) {
		t.Fatalf("want ErrUnknownMethod, got %v", err)
	}
}

func TestCatCTBN_LogLikelihood(t *testing.T) {
	m := flipModel(t, 2, 0.5)

	// One unit in off, then a jump, then one unit in on before the
	// terminal row.
	tr, err := dataset.NewTrajectory([]float64{0, 1, 2},
		[]dataset.TrajectoryColumn{{Label: "x", Values: []string{"off", "on", "on"}}},
		dataset.WithAllowRepeats())
	require.NoError(t, err)
	paths, err := dataset.NewTrajectories([]*dataset.Trajectory{tr})
	require.NoError(t, err)

	ll, err := m.LogLikelihood(paths)
	require.NoError(t, err)
	// −2·1 + ln 2 − 0.5·1.
	assert.InDelta(t, -2+0.6931471805599453-0.5, ll, 1e-9)
}

func TestCatCTBN_SampleFitRoundTrip(t *testing.T) {
	m := flipModel(t, 2, 0.5)

	paths, err := m.Sample(20, 10, 17)
	require.NoError(t, err)

	refit, err := Fit(paths, m.Graph(), Bayes)
	require.NoError(t, err)

	cim, ok := refit.CIM("x")
	require.True(t, ok)
	assert.Greater(t, cim.Rate(0, 0, 1), 0.0)
	assert.Greater(t, cim.Rate(0, 1, 0), 0.0)
	assert.Equal(t, m.StateSpaces(), refit.StateSpaces())
}
