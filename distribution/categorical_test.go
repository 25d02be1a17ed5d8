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

func coin(t *testing.T, pHeads float64) *CatCPD {
	t.Helper()
	c, err := NewCatCPD("coin", []string{"heads", "tails"}, nil, nil,
		mat.NewDense(1, 2, []float64{pHeads, 1 - pHeads}))
	require.NoError(t, err)

	return c
}

func TestNewCatCPD_Validation(t *testing.T) {
	if _, err := NewCatCPD("x", nil, nil, nil, mat.NewDense(1, 1, []float64{1})); !errors.Is(err, ErrEmptyStates) {
		t.Fatalf("want ErrEmptyStates, got %v", err)
	}
	if _, err := NewCatCPD("x", []string{"a", "b"}, []string{"p"}, [][]string{{"u", "v"}},
		mat.NewDense(1, 2, []float64{0.5, 0.5})); !errors.Is(err, ErrShapeMismatch) {
		t.Fatalf("rows vs configs: want ErrShapeMismatch, got %v", err)
	}
	if _, err := NewCatCPD("x", []string{"a", "b"}, nil, nil,
		mat.NewDense(1, 2, []float64{0.7, 0.7})); !errors.Is(err, ErrNotStochastic) {
		t.Fatalf("bad sum: want ErrNotStochastic, got %v", err)
	}
	if _, err := NewCatCPD("x", []string{"a", "b"}, nil, nil,
		mat.NewDense(1, 2, []float64{-0.5, 1.5})); !errors.Is(err, ErrNotStochastic) {
		t.Fatalf("negative: want ErrNotStochastic, got %v", err)
	}
}

func TestCatCPD_Accessors(t *testing.T) {
	c, err := NewCatCPD("y", []string{"lo", "hi"},
		[]string{"a", "b"}, [][]string{{"0", "1"}, {"0", "1", "2"}},
		mat.NewDense(6, 2, []float64{
			0.9, 0.1,
			0.8, 0.2,
			0.7, 0.3,
			0.6, 0.4,
			0.5, 0.5,
			0.4, 0.6,
		}))
	require.NoError(t, err)

	assert.Equal(t, 6, c.ConfigCount())
	assert.Equal(t, []int{2, 3}, c.ParentCard())
	assert.Equal(t, 6, c.ParameterCount())
	assert.InDelta(t, 0.3, c.Prob(2, 1), 1e-12)
	assert.Equal(t, []float64{0.6, 0.4}, c.Row(3))
}

func TestCatCPD_SampleDeterministic(t *testing.T) {
	c := coin(t, 0.3)

	draw := func() []int {
		rng := rand.New(rand.NewPCG(7, 0))
		out := make([]int, 20)
		for i := range out {
			out[i] = c.Sample(0, rng)
		}

		return out
	}
	assert.Equal(t, draw(), draw(), "same seed must reproduce the stream")

	// A degenerate row always yields its single support point.
	d := coin(t, 1)
	rng := rand.New(rand.NewPCG(1, 0))
	for i := 0; i < 50; i++ {
		if s := d.Sample(0, rng); s != 0 {
			t.Fatalf("degenerate draw = %d, want 0", s)
		}
	}
}

func TestCatCPD_LogLikelihood(t *testing.T) {
	c := coin(t, 0.25)

	counts := mat.NewDense(1, 2, []float64{3, 1})
	ll, err := c.LogLikelihood(counts)
	require.NoError(t, err)
	want := 3*math.Log(0.25) + 1*math.Log(0.75)
	assert.InDelta(t, want, ll, 1e-12)

	// Zero count against zero probability contributes nothing.
	d := coin(t, 1)
	ll, err = d.LogLikelihood(mat.NewDense(1, 2, []float64{5, 0}))
	require.NoError(t, err)
	assert.InDelta(t, 0, ll, 1e-12)

	if _, err := c.LogLikelihood(mat.NewDense(2, 2, nil)); !errors.Is(err, ErrShapeMismatch) {
		t.Fatalf("want ErrShapeMismatch, got %v", err)
	}
}

func TestUniformCatCPD(t *testing.T) {
	c, err := UniformCatCPD("x", []string{"a", "b", "c"}, []string{"p"}, [][]string{{"u", "v"}})
	require.NoError(t, err)

	for u := 0; u < c.ConfigCount(); u++ {
		for i := 0; i < 3; i++ {
			assert.InDelta(t, 1.0/3, c.Prob(u, i), 1e-12)
		}
	}
}

func TestCatCPD_EqualTol(t *testing.T) {
	a := coin(t, 0.3)
	b := coin(t, 0.3+1e-9)
	c := coin(t, 0.4)

	assert.True(t, a.EqualTol(b, 1e-6))
	assert.False(t, a.EqualTol(c, 1e-6))
}

func TestNormalize(t *testing.T) {
	w := mat.NewDense(2, 2, []float64{3, 1, 0, 0})
	zero := Normalize(w)

	assert.Equal(t, []int{1}, zero)
	assert.InDelta(t, 0.75, w.At(0, 0), 1e-12)
	assert.InDelta(t, 0.25, w.At(0, 1), 1e-12)
}
