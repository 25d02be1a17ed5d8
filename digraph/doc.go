// Package digraph implements a directed acyclic graph over a fixed, totally
// ordered set of string vertex labels, together with the structural queries a
// probabilistic graphical model needs: parents, children, ancestors,
// descendants, topological order, and a graphical-separation oracle.
//
// Key properties:
//
//   - Fixed vertex set: vertices are declared once at construction and sorted
//     lexicographically; this label order defines array/column ordering for
//     every downstream component and never changes.
//   - Acyclic discipline: AddEdge rejects any edge whose insertion would
//     create a directed cycle with ErrCyclicGraph. All BN/CTBN graphs are
//     DAGs by construction.
//   - Deterministic iteration: Labels(), Edges(), Parents(), Children(),
//     Ancestors(), Descendants() all return sorted results.
//   - Immutability by convention: estimators receive the graph for the
//     duration of one call and never mutate it; Clone() produces an
//     independent deep copy when a caller needs to branch.
//
// Separation oracle:
//
//	IsSeparatorSet(X, Y, Z) decides whether every path between X and Y is
//	blocked by Z under the moralized-ancestral-graph criterion: restrict to
//	the ancestral closure of X∪Y∪Z, moralize (connect co-parents, drop
//	direction), and test classical undirected separation of X from Y by Z.
//
// Complexity:
//
//   - AddEdge/RemoveEdge: O(V+E) (cycle check on insertion) / O(1).
//   - Ancestors/Descendants: O(V+E) reverse/forward traversal.
//   - IsSeparatorSet: O(V+E+F) where F is the number of co-parent fill-in
//     pairs introduced by moralization.
//
// Errors:
//
//   - ErrNoVertices, ErrEmptyLabel, ErrDuplicateLabel – invalid construction.
//   - ErrUnknownVertex      – an operation referenced a label outside the graph.
//   - ErrSelfLoop           – edge endpoints coincide.
//   - ErrDuplicateEdge      – edge already present.
//   - ErrEdgeNotFound       – removal of an absent edge.
//   - ErrCyclicGraph        – insertion would create a directed cycle.
//   - ErrNotDisjoint        – separation query sets overlap.
//   - ErrEmptySet           – separation query with empty X or Y.
//   - ErrShapeMismatch      – adjacency matrix dimensions disagree with labels.
package digraph
