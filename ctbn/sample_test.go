// SPDX-License-Identifier: MIT

package ctbn

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/causal/digraph"
	"github.com/katalvlaran/causal/distribution"
)

func TestSample_HorizonBound(t *testing.T) {
	m := flipModel(t, 2, 0.5)

	paths, err := m.Sample(5, 3, 29)
	require.NoError(t, err)
	require.Equal(t, 5, paths.Len())

	for p := 0; p < paths.Len(); p++ {
		tr := paths.Path(p)
		times := tr.Times()
		require.GreaterOrEqual(t, tr.Len(), 2)
		assert.Equal(t, 0.0, times[0])
		assert.Equal(t, 3.0, times[len(times)-1], "terminal row must sit on the horizon")
		for _, ti := range times {
			if ti < 0 || ti > 3 {
				t.Fatalf("time %v outside [0, 3]", ti)
			}
		}
		// The terminal row repeats the final state.
		last := tr.Len() - 1
		assert.Equal(t, tr.At(last, 0), tr.At(last-1, 0))
	}
}

func TestSample_Deterministic(t *testing.T) {
	m := flipModel(t, 2, 0.5)

	a, err := m.Sample(4, 5, 101)
	require.NoError(t, err)
	b, err := m.Sample(4, 5, 101)
	require.NoError(t, err)

	require.Equal(t, a.Len(), b.Len())
	for p := 0; p < a.Len(); p++ {
		assert.Equal(t, a.Path(p).Times(), b.Path(p).Times())
		assert.Equal(t, a.Path(p).Values(), b.Path(p).Values())
	}
}

func TestSample_Validation(t *testing.T) {
	m := flipModel(t, 1, 1)

	if _, err := m.Sample(0, 1, 1); !errors.Is(err, ErrBadSampleSize) {
		t.Fatalf("want ErrBadSampleSize, got %v", err)
	}
	if _, err := m.Sample(1, 0, 1); !errors.Is(err, ErrBadHorizon) {
		t.Fatalf("zero horizon: want ErrBadHorizon, got %v", err)
	}
	if _, err := m.Sample(1, math.Inf(1), 1); !errors.Is(err, ErrBadHorizon) {
		t.Fatalf("infinite horizon: want ErrBadHorizon, got %v", err)
	}
}

func TestSample_AbsorbingChain(t *testing.T) {
	// Once in state b the chain never leaves: every path ends flat and the
	// simulation still terminates.
	g, err := digraph.New("x")
	require.NoError(t, err)
	cim, err := distribution.NewCatCIM("x", []string{"a", "b"}, nil, nil, []*mat.Dense{
		mat.NewDense(2, 2, []float64{-5, 5, 0, 0}),
	})
	require.NoError(t, err)
	m, err := NewCatCTBN(g, map[string]*distribution.CatCIM{"x": cim})
	require.NoError(t, err)

	paths, err := m.Sample(10, 100, 3)
	require.NoError(t, err)
	for p := 0; p < paths.Len(); p++ {
		tr := paths.Path(p)
		assert.Equal(t, 1, tr.At(tr.Len()-1, 0), "every path must end absorbed")
	}
}

func TestSample_ParentModulatedRates(t *testing.T) {
	// y flips fast while x is on, never while x is off; x itself is
	// frozen. Paths starting with x=off must show no y jumps.
	g, err := digraph.New("x", "y")
	require.NoError(t, err)
	require.NoError(t, g.AddEdge("x", "y"))

	frozen, err := distribution.NewCatCIM("x", []string{"off", "on"}, nil, nil, []*mat.Dense{
		mat.NewDense(2, 2, []float64{0, 0, 0, 0}),
	})
	require.NoError(t, err)
	gated, err := distribution.NewCatCIM("y", []string{"p", "q"},
		[]string{"x"}, [][]string{{"off", "on"}},
		[]*mat.Dense{
			mat.NewDense(2, 2, []float64{0, 0, 0, 0}),
			mat.NewDense(2, 2, []float64{-4, 4, 4, -4}),
		})
	require.NoError(t, err)

	m, err := NewCatCTBN(g, map[string]*distribution.CatCIM{"x": frozen, "y": gated})
	require.NoError(t, err)

	paths, err := m.Sample(30, 2, 71)
	require.NoError(t, err)

	sawGatedJump := false
	for p := 0; p < paths.Len(); p++ {
		tr := paths.Path(p)
		x0 := tr.At(0, 0)
		jumps := 0
		for r := 1; r < tr.Len(); r++ {
			if tr.At(r, 1) != tr.At(r-1, 1) {
				jumps++
			}
		}
		if x0 == 0 && jumps != 0 {
			t.Fatalf("path %d: y jumped %d times with x off", p, jumps)
		}
		if x0 == 1 && jumps > 0 {
			sawGatedJump = true
		}
	}
	assert.True(t, sawGatedJump, "some path with x on must show y activity")
}
