// Package digraph_test contains unit tests for graph construction, edge
// lifecycle, traversal queries and the acyclic discipline.
package digraph_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/katalvlaran/causal/digraph"
)

// ------------------------------------------------------------------------
// 1. Construction
// ------------------------------------------------------------------------

func TestNew_SortsLabels(t *testing.T) {
	g, err := digraph.New("c", "a", "b")
	if err != nil {
		t.Fatalf("New: unexpected error %v", err)
	}
	want := []string{"a", "b", "c"}
	if got := g.Labels(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Labels() = %v, want %v", got, want)
	}
}

func TestNew_Empty(t *testing.T) {
	if _, err := digraph.New(); !errors.Is(err, digraph.ErrNoVertices) {
		t.Fatalf("expected ErrNoVertices, got %v", err)
	}
}

func TestNew_DuplicateLabel(t *testing.T) {
	if _, err := digraph.New("a", "a"); !errors.Is(err, digraph.ErrDuplicateLabel) {
		t.Fatalf("expected ErrDuplicateLabel, got %v", err)
	}
}

func TestNew_EmptyLabel(t *testing.T) {
	if _, err := digraph.New("a", ""); !errors.Is(err, digraph.ErrEmptyLabel) {
		t.Fatalf("expected ErrEmptyLabel, got %v", err)
	}
}

// ------------------------------------------------------------------------
// 2. Edge lifecycle
// ------------------------------------------------------------------------

func TestAddEdge_UnknownVertex(t *testing.T) {
	g, _ := digraph.New("a", "b")
	if err := g.AddEdge("a", "x"); !errors.Is(err, digraph.ErrUnknownVertex) {
		t.Fatalf("expected ErrUnknownVertex, got %v", err)
	}
	if err := g.AddEdge("x", "a"); !errors.Is(err, digraph.ErrUnknownVertex) {
		t.Fatalf("expected ErrUnknownVertex, got %v", err)
	}
}

func TestAddEdge_SelfLoop(t *testing.T) {
	g, _ := digraph.New("a", "b")
	if err := g.AddEdge("a", "a"); !errors.Is(err, digraph.ErrSelfLoop) {
		t.Fatalf("expected ErrSelfLoop, got %v", err)
	}
}

func TestAddEdge_Duplicate(t *testing.T) {
	g, _ := digraph.New("a", "b")
	if err := g.AddEdge("a", "b"); err != nil {
		t.Fatalf("AddEdge: %v", err)
	}
	if err := g.AddEdge("a", "b"); !errors.Is(err, digraph.ErrDuplicateEdge) {
		t.Fatalf("expected ErrDuplicateEdge, got %v", err)
	}
}

func TestAddEdge_CycleRejected(t *testing.T) {
	g, _ := digraph.New("a", "b", "c")
	mustAdd(t, g, "a", "b")
	mustAdd(t, g, "b", "c")
	if err := g.AddEdge("c", "a"); !errors.Is(err, digraph.ErrCyclicGraph) {
		t.Fatalf("expected ErrCyclicGraph, got %v", err)
	}
	// The rejected insertion must leave the graph untouched.
	if g.Size() != 2 {
		t.Fatalf("Size() = %d after rejected insertion, want 2", g.Size())
	}
	// Direct two-cycle too.
	if err := g.AddEdge("b", "a"); !errors.Is(err, digraph.ErrCyclicGraph) {
		t.Fatalf("expected ErrCyclicGraph for reverse edge, got %v", err)
	}
}

func TestRemoveEdge(t *testing.T) {
	g, _ := digraph.New("a", "b")
	mustAdd(t, g, "a", "b")
	if err := g.RemoveEdge("a", "b"); err != nil {
		t.Fatalf("RemoveEdge: %v", err)
	}
	if err := g.RemoveEdge("a", "b"); !errors.Is(err, digraph.ErrEdgeNotFound) {
		t.Fatalf("expected ErrEdgeNotFound, got %v", err)
	}
}

func TestEdges_SortedStable(t *testing.T) {
	g, _ := digraph.New("a", "b", "c")
	mustAdd(t, g, "b", "c")
	mustAdd(t, g, "a", "c")
	mustAdd(t, g, "a", "b")
	want := [][2]string{{"a", "b"}, {"a", "c"}, {"b", "c"}}
	for i := 0; i < 3; i++ { // stability across calls
		if got := g.Edges(); !reflect.DeepEqual(got, want) {
			t.Fatalf("Edges() = %v, want %v", got, want)
		}
	}
}

// ------------------------------------------------------------------------
// 3. Structural queries
// ------------------------------------------------------------------------

func TestParentsChildren(t *testing.T) {
	g := chain(t, "a", "b", "c") // a→b→c
	pa, err := g.Parents("b")
	if err != nil {
		t.Fatalf("Parents: %v", err)
	}
	if !reflect.DeepEqual(pa, []string{"a"}) {
		t.Fatalf("Parents(b) = %v, want [a]", pa)
	}
	ch, err := g.Children("b")
	if err != nil {
		t.Fatalf("Children: %v", err)
	}
	if !reflect.DeepEqual(ch, []string{"c"}) {
		t.Fatalf("Children(b) = %v, want [c]", ch)
	}
}

func TestAncestorsDescendants(t *testing.T) {
	g := chain(t, "a", "b", "c", "d") // a→b→c→d
	de, err := g.Descendants("b")
	if err != nil {
		t.Fatalf("Descendants: %v", err)
	}
	if !reflect.DeepEqual(de, []string{"c", "d"}) {
		t.Fatalf("Descendants(b) = %v, want [c d]", de)
	}
	an, err := g.Ancestors("c")
	if err != nil {
		t.Fatalf("Ancestors: %v", err)
	}
	if !reflect.DeepEqual(an, []string{"a", "b"}) {
		t.Fatalf("Ancestors(c) = %v, want [a b]", an)
	}
	if _, err = g.Ancestors("zzz"); !errors.Is(err, digraph.ErrUnknownVertex) {
		t.Fatalf("expected ErrUnknownVertex, got %v", err)
	}
}

func TestTopologicalOrder_Deterministic(t *testing.T) {
	// Diamond: a→b, a→c, b→d, c→d. Valid orders exist; ties must break by label.
	g, _ := digraph.New("a", "b", "c", "d")
	mustAdd(t, g, "a", "b")
	mustAdd(t, g, "a", "c")
	mustAdd(t, g, "b", "d")
	mustAdd(t, g, "c", "d")
	want := []string{"a", "b", "c", "d"}
	if got := g.TopologicalOrder(); !reflect.DeepEqual(got, want) {
		t.Fatalf("TopologicalOrder() = %v, want %v", got, want)
	}
}

func TestCloneEqual(t *testing.T) {
	g := chain(t, "a", "b", "c")
	c := g.Clone()
	if !g.Equal(c) {
		t.Fatal("clone must equal original")
	}
	if err := c.RemoveEdge("a", "b"); err != nil {
		t.Fatalf("RemoveEdge on clone: %v", err)
	}
	if g.Equal(c) {
		t.Fatal("mutating the clone must not affect the original")
	}
	if !g.HasEdge("a", "b") {
		t.Fatal("original lost an edge after clone mutation")
	}
}

// ------------------------------------------------------------------------
// helpers
// ------------------------------------------------------------------------

func mustAdd(t *testing.T, g *digraph.DiGraph, from, to string) {
	t.Helper()
	if err := g.AddEdge(from, to); err != nil {
		t.Fatalf("AddEdge(%s→%s): %v", from, to, err)
	}
}

// chain builds l0→l1→...→ln.
func chain(t *testing.T, labels ...string) *digraph.DiGraph {
	t.Helper()
	g, err := digraph.New(labels...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for i := 0; i+1 < len(labels); i++ {
		mustAdd(t, g, labels[i], labels[i+1])
	}

	return g
}
