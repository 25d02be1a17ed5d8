// SPDX-License-Identifier: MIT

package dataset

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustTrajectory(t *testing.T, times []float64, cols []TrajectoryColumn, opts ...TrajectoryOption) *Trajectory {
	t.Helper()
	tr, err := NewTrajectory(times, cols, opts...)
	if err != nil {
		t.Fatalf("NewTrajectory: %v", err)
	}

	return tr
}

func TestNewTrajectory_Canonical(t *testing.T) {
	tr := mustTrajectory(t,
		[]float64{0, 0.5, 1.25},
		[]TrajectoryColumn{
			{Label: "b", Values: []string{"on", "off", "on"}},
			{Label: "a", Values: []string{"lo", "lo", "hi"}},
		})

	assert.Equal(t, []string{"a", "b"}, tr.Labels())
	assert.Equal(t, []float64{0, 0.5, 1.25}, tr.Times())
	assert.Equal(t, [][]int{{1, 1}, {1, 0}, {0, 1}}, tr.Values())
}

func TestNewTrajectory_TimeValidation(t *testing.T) {
	cols := []TrajectoryColumn{{Label: "x", Values: []string{"a", "b"}}}

	if _, err := NewTrajectory([]float64{0, 0}, cols); !errors.Is(err, ErrNonIncreasingTime) {
		t.Fatalf("equal times: want ErrNonIncreasingTime, got %v", err)
	}
	if _, err := NewTrajectory([]float64{1, 0.5}, cols); !errors.Is(err, ErrNonIncreasingTime) {
		t.Fatalf("decreasing: want ErrNonIncreasingTime, got %v", err)
	}
	if _, err := NewTrajectory([]float64{-1, 0}, cols); !errors.Is(err, ErrNonIncreasingTime) {
		t.Fatalf("negative: want ErrNonIncreasingTime, got %v", err)
	}
	if _, err := NewTrajectory([]float64{0}, cols); !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("times vs rows: want ErrLengthMismatch, got %v", err)
	}
}

func TestNewTrajectory_RepeatedState(t *testing.T) {
	cols := []TrajectoryColumn{{Label: "x", Values: []string{"a", "a", "b"}}}

	if _, err := NewTrajectory([]float64{0, 1, 2}, cols); !errors.Is(err, ErrRepeatedState) {
		t.Fatal("expected ErrRepeatedState for a no-op transition")
	}
	if _, err := NewTrajectory([]float64{0, 1, 2}, cols, WithAllowRepeats()); err != nil {
		t.Fatalf("WithAllowRepeats: %v", err)
	}
}

func TestTrajectory_StateAt(t *testing.T) {
	tr := mustTrajectory(t,
		[]float64{0, 1, 2},
		[]TrajectoryColumn{{Label: "x", Values: []string{"a", "b", "a"}}})

	// Right-continuous piecewise-constant reading.
	assert.Equal(t, []int{0}, tr.StateAt(0))
	assert.Equal(t, []int{0}, tr.StateAt(0.99))
	assert.Equal(t, []int{1}, tr.StateAt(1))
	assert.Equal(t, []int{0}, tr.StateAt(7.5))
}

func TestNewTrajectories_UnionStateSpace(t *testing.T) {
	p1 := mustTrajectory(t, []float64{0, 1},
		[]TrajectoryColumn{{Label: "x", Values: []string{"a", "b"}}})
	p2 := mustTrajectory(t, []float64{0, 1},
		[]TrajectoryColumn{{Label: "x", Values: []string{"c", "a"}}})

	coll, err := NewTrajectories([]*Trajectory{p1, p2})
	require.NoError(t, err)

	assert.Equal(t, [][]string{{"a", "b", "c"}}, coll.StateSpaces())
	// p2's "c" was code 1 locally; in the union space it must be 2.
	assert.Equal(t, [][]int{{2}, {0}}, coll.Path(1).Values())
	assert.Equal(t, [][]int{{0}, {1}}, coll.Path(0).Values())
}

func TestNewTrajectories_Errors(t *testing.T) {
	if _, err := NewTrajectories(nil); !errors.Is(err, ErrNoTrajectories) {
		t.Fatalf("want ErrNoTrajectories, got %v", err)
	}

	p1 := mustTrajectory(t, []float64{0, 1},
		[]TrajectoryColumn{{Label: "x", Values: []string{"a", "b"}}})
	p2 := mustTrajectory(t, []float64{0, 1},
		[]TrajectoryColumn{{Label: "y", Values: []string{"a", "b"}}})
	if _, err := NewTrajectories([]*Trajectory{p1, p2}); !errors.Is(err, ErrLabelMismatch) {
		t.Fatalf("want ErrLabelMismatch, got %v", err)
	}
}

func TestWeightedTrajectories(t *testing.T) {
	p := mustTrajectory(t, []float64{0, 1},
		[]TrajectoryColumn{{Label: "x", Values: []string{"a", "b"}}})
	coll, err := NewTrajectories([]*Trajectory{p, p})
	require.NoError(t, err)

	w, err := NewWeightedTrajectories(coll, []float64{0.25, 0.75})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, w.TotalWeight(), 1e-12)
	assert.Equal(t, 0.25, w.Weight(0))

	if _, err := NewWeightedTrajectories(coll, []float64{1}); !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("want ErrLengthMismatch, got %v", err)
	}
	if _, err := NewWeightedTrajectories(coll, []float64{1, -1}); !errors.Is(err, ErrBadWeight) {
		t.Fatalf("want ErrBadWeight, got %v", err)
	}

	u, err := Uniform(coll)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 1}, u.Weights())
}
