// SPDX-License-Identifier: MIT

package search

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/causal/dataset"
	"github.com/katalvlaran/causal/digraph"
)

// gatedPaths builds trajectories where y flips rapidly while x is on and
// never while x is off, so the edge x → y dominates the score.
func gatedPaths(t *testing.T) *dataset.Trajectories {
	t.Helper()

	// Path A: x on throughout, y alternates every half unit over [0, 10].
	n := 21
	times := make([]float64, n)
	xs := make([]string, n)
	ys := make([]string, n)
	for r := 0; r < n; r++ {
		times[r] = 0.5 * float64(r)
		xs[r] = "on"
		if r%2 == 0 {
			ys[r] = "p"
		} else {
			ys[r] = "q"
		}
	}
	active, err := dataset.NewTrajectory(times, []dataset.TrajectoryColumn{
		{Label: "x", Values: xs, States: []string{"off", "on"}},
		{Label: "y", Values: ys, States: []string{"p", "q"}},
	})
	require.NoError(t, err)

	// Path B: x off throughout, y frozen over [0, 10].
	quiet, err := dataset.NewTrajectory([]float64{0, 10}, []dataset.TrajectoryColumn{
		{Label: "x", Values: []string{"off", "off"}, States: []string{"off", "on"}},
		{Label: "y", Values: []string{"p", "p"}, States: []string{"p", "q"}},
	}, dataset.WithAllowRepeats())
	require.NoError(t, err)

	paths, err := dataset.NewTrajectories([]*dataset.Trajectory{active, quiet})
	require.NoError(t, err)

	return paths
}

func TestHillClimbCat_RecoversDependence(t *testing.T) {
	table := copyTable(t, 20)

	g, score, err := HillClimbCat(table, nil)
	require.NoError(t, err)

	// Both orientations tie, and the lexicographically earlier add wins.
	assert.Equal(t, 1, g.Size())
	assert.True(t, g.HasEdge("x", "y"))

	want, err := BICCat(table, g)
	require.NoError(t, err)
	assert.InDelta(t, want, score, 1e-9)
}

func TestHillClimbCat_IndependentStaysEmpty(t *testing.T) {
	table := independentTable(t, 5)

	g, score, err := HillClimbCat(table, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, g.Size())

	empty, err := digraph.New("x", "y")
	require.NoError(t, err)
	want, err := BICCat(table, empty)
	require.NoError(t, err)
	assert.InDelta(t, want, score, 1e-9)
}

func TestHillClimbCat_ForbiddenStaysOut(t *testing.T) {
	table := copyTable(t, 20)
	pk := NewPriorKnowledge([]string{"x", "y"})
	require.NoError(t, pk.Forbid("x", "y"))
	require.NoError(t, pk.Forbid("y", "x"))

	g, _, err := HillClimbCat(table, pk)
	require.NoError(t, err)
	assert.Equal(t, 0, g.Size(), "forbidding both orientations must leave the graph empty")
}

func TestHillClimbCat_RequiredStaysIn(t *testing.T) {
	table := independentTable(t, 5)
	pk := NewPriorKnowledge([]string{"x", "y"})
	require.NoError(t, pk.Require("x", "y"))

	g, _, err := HillClimbCat(table, pk)
	require.NoError(t, err)
	assert.True(t, g.HasEdge("x", "y"), "required edges survive even when they hurt the score")
}

func TestHillClimbCat_RequiredCycleWithStart(t *testing.T) {
	// The required set alone is acyclic, but pinning it onto the start
	// graph closes a cycle.
	table := copyTable(t, 4)
	pk := NewPriorKnowledge([]string{"x", "y"})
	require.NoError(t, pk.Require("x", "y"))

	start, err := digraph.New("x", "y")
	require.NoError(t, err)
	require.NoError(t, start.AddEdge("y", "x"))

	if _, _, err := HillClimbCat(table, pk, WithStart(start)); !errors.Is(err, ErrRequiredCycle) {
		t.Fatalf("want ErrRequiredCycle, got %v", err)
	}
}

func TestHillClimbCat_UnknownScore(t *testing.T) {
	table := copyTable(t, 4)

	if _, _, err := HillClimbCat(table, nil, WithScoreName("MDL")); !errors.Is(err, ErrUnknownScore) {
		t.Fatalf("want ErrUnknownScore, got %v", err)
	}
}

func TestHillClimbCat_AIC(t *testing.T) {
	table := copyTable(t, 20)

	g, score, err := HillClimbCat(table, nil, WithScoreName(AIC))
	require.NoError(t, err)
	assert.True(t, g.HasEdge("x", "y"))

	want, err := AICCat(table, g)
	require.NoError(t, err)
	assert.InDelta(t, want, score, 1e-9)
}

func TestHillClimbCat_Deterministic(t *testing.T) {
	table := copyTable(t, 20)

	a, sa, err := HillClimbCat(table, nil)
	require.NoError(t, err)
	b, sb, err := HillClimbCat(table, nil)
	require.NoError(t, err)

	assert.True(t, a.Equal(b), "the climb must be reproducible")
	assert.Equal(t, sa, sb)
}

func TestHillClimbCat_LabelMismatch(t *testing.T) {
	table := copyTable(t, 4)
	pk := NewPriorKnowledge([]string{"x", "z"})

	if _, _, err := HillClimbCat(table, pk); !errors.Is(err, ErrLabelMismatch) {
		t.Fatalf("want ErrLabelMismatch, got %v", err)
	}
}

func TestHillClimbCTBN_RecoversGate(t *testing.T) {
	paths := gatedPaths(t)

	g, score, err := HillClimbCTBN(paths, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, g.Size())
	assert.True(t, g.HasEdge("x", "y"), "the gate x -> y must be found")

	want, err := BICCTBN(paths, g)
	require.NoError(t, err)
	assert.InDelta(t, want, score, 1e-9)
}

func TestHillClimbCTBN_MaxParents(t *testing.T) {
	paths := gatedPaths(t)

	g, _, err := HillClimbCTBN(paths, nil, WithMaxParents(1))
	require.NoError(t, err)
	for _, l := range g.Labels() {
		parents, err := g.Parents(l)
		require.NoError(t, err)
		assert.LessOrEqual(t, len(parents), 1)
	}
}

func TestHillClimb_WithStart(t *testing.T) {
	table := independentTable(t, 5)
	start, err := digraph.New("x", "y")
	require.NoError(t, err)
	require.NoError(t, start.AddEdge("y", "x"))

	// From a spurious start on independent data the climb removes the edge.
	g, _, err := HillClimbCat(table, nil, WithStart(start))
	require.NoError(t, err)
	assert.Equal(t, 0, g.Size())
	assert.Equal(t, 1, start.Size(), "the start graph must not be mutated")
}

func TestMoveKind_String(t *testing.T) {
	assert.Equal(t, "add", AddEdge.String())
	assert.Equal(t, "remove", RemoveEdge.String())
	assert.Equal(t, "reverse", ReverseEdge.String())
}
