// SPDX-License-Identifier: MIT

package distribution

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func twoStateCIM(t *testing.T, up, down float64) *CatCIM {
	t.Helper()
	c, err := NewCatCIM("x", []string{"off", "on"}, nil, nil, []*mat.Dense{
		mat.NewDense(2, 2, []float64{
			-up, up,
			down, -down,
		}),
	})
	require.NoError(t, err)

	return c
}

func TestNewCatCIM_Validation(t *testing.T) {
	if _, err := NewCatCIM("x", nil, nil, nil, nil); !errors.Is(err, ErrEmptyStates) {
		t.Fatalf("want ErrEmptyStates, got %v", err)
	}
	if _, err := NewCatCIM("x", []string{"a", "b"}, nil, nil, []*mat.Dense{
		mat.NewDense(2, 2, []float64{-1, 0.5, 1, -1}),
	}); !errors.Is(err, ErrNotGenerator) {
		t.Fatalf("bad row sum: want ErrNotGenerator, got %v", err)
	}
	if _, err := NewCatCIM("x", []string{"a", "b"}, nil, nil, []*mat.Dense{
		mat.NewDense(2, 2, []float64{1, -1, 1, -1}),
	}); !errors.Is(err, ErrNotGenerator) {
		t.Fatalf("negative rate: want ErrNotGenerator, got %v", err)
	}
	if _, err := NewCatCIM("x", []string{"a", "b"}, []string{"p"}, [][]string{{"u", "v"}}, []*mat.Dense{
		mat.NewDense(2, 2, []float64{-1, 1, 1, -1}),
	}); !errors.Is(err, ErrShapeMismatch) {
		t.Fatalf("matrices vs configs: want ErrShapeMismatch, got %v", err)
	}
}

func TestCatCIM_Rates(t *testing.T) {
	c := twoStateCIM(t, 2, 0.5)

	assert.Equal(t, 2.0, c.Rate(0, 0, 1))
	assert.Equal(t, 2.0, c.LeavingRate(0, 0))
	assert.Equal(t, 0.5, c.LeavingRate(0, 1))
	assert.Equal(t, 2, c.ParameterCount())
}

func TestCatCIM_SampleHolding(t *testing.T) {
	c := twoStateCIM(t, 2, 0.5)

	draw := func() []float64 {
		rng := rand.New(rand.NewPCG(3, 0))
		out := make([]float64, 10)
		for i := range out {
			out[i] = c.SampleHolding(0, 0, rng)
		}

		return out
	}
	a, b := draw(), draw()
	assert.Equal(t, a, b, "same seed must reproduce holding times")
	for _, h := range a {
		if h <= 0 || math.IsInf(h, 0) {
			t.Fatalf("holding time %v out of range", h)
		}
	}
}

func TestCatCIM_AbsorbingState(t *testing.T) {
	c, err := NewCatCIM("x", []string{"a", "b"}, nil, nil, []*mat.Dense{
		mat.NewDense(2, 2, []float64{0, 0, 1, -1}),
	})
	require.NoError(t, err)

	rng := rand.New(rand.NewPCG(1, 0))
	if h := c.SampleHolding(0, 0, rng); !math.IsInf(h, 1) {
		t.Fatalf("absorbing holding = %v, want +Inf", h)
	}
	if _, err := c.SampleTransition(0, 0, rng); !errors.Is(err, ErrAbsorbingState) {
		t.Fatalf("want ErrAbsorbingState, got %v", err)
	}
}

func TestCatCIM_SampleTransition(t *testing.T) {
	// Three states, state 0 only ever jumps to state 2.
	c, err := NewCatCIM("x", []string{"a", "b", "c"}, nil, nil, []*mat.Dense{
		mat.NewDense(3, 3, []float64{
			-3, 0, 3,
			1, -2, 1,
			2, 0, -2,
		}),
	})
	require.NoError(t, err)

	rng := rand.New(rand.NewPCG(5, 0))
	for i := 0; i < 50; i++ {
		to, err := c.SampleTransition(0, 0, rng)
		require.NoError(t, err)
		if to != 2 {
			t.Fatalf("jump to %d, want 2", to)
		}
	}
}

func TestCatCIM_LogLikelihood(t *testing.T) {
	c := twoStateCIM(t, 2, 0.5)

	trans := []*mat.Dense{mat.NewDense(2, 2, []float64{
		0, 3,
		1, 0,
	})}
	sojourn := mat.NewDense(1, 2, []float64{1.5, 4})

	ll, err := c.LogLikelihood(trans, sojourn)
	require.NoError(t, err)
	want := -2*1.5 + 3*math.Log(2) - 0.5*4 + 1*math.Log(0.5)
	assert.InDelta(t, want, ll, 1e-12)
}

func TestUnitRateCIM(t *testing.T) {
	c, err := UnitRateCIM("x", []string{"a", "b", "c"}, []string{"p"}, [][]string{{"0", "1"}})
	require.NoError(t, err)

	assert.Equal(t, 2, c.ConfigCount())
	for u := 0; u < 2; u++ {
		for i := 0; i < 3; i++ {
			assert.InDelta(t, 1.0, c.LeavingRate(u, i), 1e-12)
		}
	}
}
