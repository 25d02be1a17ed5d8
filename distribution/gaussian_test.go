// SPDX-License-Identifier: MIT

package distribution

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGaussCPD_Validation(t *testing.T) {
	if _, err := NewGaussCPD("x", []string{"p"}, nil, 0, 1); !errors.Is(err, ErrShapeMismatch) {
		t.Fatalf("want ErrShapeMismatch, got %v", err)
	}
	if _, err := NewGaussCPD("x", nil, nil, 0, 0); !errors.Is(err, ErrBadVariance) {
		t.Fatalf("zero variance: want ErrBadVariance, got %v", err)
	}
	if _, err := NewGaussCPD("x", nil, nil, 0, -1); !errors.Is(err, ErrBadVariance) {
		t.Fatalf("negative variance: want ErrBadVariance, got %v", err)
	}
	if _, err := NewGaussCPD("x", nil, nil, math.NaN(), 1); !errors.Is(err, ErrBadVariance) {
		t.Fatalf("NaN intercept: want ErrBadVariance, got %v", err)
	}
}

func TestGaussCPD_Mean(t *testing.T) {
	g, err := NewGaussCPD("y", []string{"a", "b"}, []float64{2, -1}, 0.5, 1)
	require.NoError(t, err)

	mu, err := g.Mean([]float64{1, 3})
	require.NoError(t, err)
	assert.InDelta(t, 0.5+2*1-1*3, mu, 1e-12)

	if _, err := g.Mean([]float64{1}); !errors.Is(err, ErrShapeMismatch) {
		t.Fatalf("want ErrShapeMismatch, got %v", err)
	}
}

func TestGaussCPD_SampleDeterministic(t *testing.T) {
	g, err := NewGaussCPD("y", nil, nil, 10, 4)
	require.NoError(t, err)

	draw := func() []float64 {
		rng := rand.New(rand.NewPCG(42, 0))
		out := make([]float64, 10)
		for i := range out {
			v, err := g.Sample(nil, rng)
			if err != nil {
				t.Fatalf("Sample: %v", err)
			}
			out[i] = v
		}

		return out
	}
	assert.Equal(t, draw(), draw())
}

func TestGaussCPD_LogLikelihood(t *testing.T) {
	g, err := NewGaussCPD("y", nil, nil, 0, 1)
	require.NoError(t, err)

	ll, err := g.LogLikelihood(0, nil)
	require.NoError(t, err)
	// Standard normal density at zero.
	assert.InDelta(t, -0.5*math.Log(2*math.Pi), ll, 1e-12)
}
