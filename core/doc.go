// Package core provides the thread-safe, typed in-memory Graph used for the
// two graphs every annotated sentence carries:
//
//   - the dependency graph: directed links between tokens labeled with a
//     dependency type ("nsubj", "dobj", ...);
//   - the interaction graph: directed multigraph of gold relations between
//     entity-head tokens labeled with a relation type ("Binding", ...).
//
// Storage:
//
//   - Constant-time edge operations via nested maps:
//     adjacencyList[from][to][edgeID] = struct{}{}
//   - Collision-free atomic Edge.ID generation ("e1", "e2", …)
//   - Separate sync.RWMutex for vertices (muVert) and edges+adjacency (muEdgeAdj)
//
// Configuration Options (GraphOption):
//
//	– WithDirected(directed bool)
//	    Directed graphs store only "from→to" pointers; undirected graphs
//	    mirror edges in adjacencyList[to][from].
//
//	– WithMultiEdges()
//	    Allows multiple parallel edges between the same endpoints.
//	    Otherwise a second AddEdge(from,to) → ErrMultiEdgeNotAllowed.
//
//	– WithLoops()
//	    Permits self-loops (from == to); otherwise AddEdge(v,v) → ErrLoopNotAllowed.
//
// Core Methods:
//
//	AddVertex(id string) error                    // O(1)
//	HasVertex(id string) bool                     // O(1)
//	AddEdge(from, to, typ string) (string, error) // O(1)†
//	HasEdge(from, to string) bool                 // O(1)
//	EdgesBetween(from, to string) []*Edge         // all parallel edges, insertion order
//	Neighbors(id string) ([]*Edge, error)         // O(d·log d)
//	NeighborIDs(id string) ([]string, error)      // O(d·log d), unique, sorted
//	Vertices() []string                           // O(V·log V)
//	Edges() []*Edge                               // O(E·log E)
//	UndirectedView(g) *Graph                      // O(V+E) projection
//
// Determinism:
//
//	Vertices() and NeighborIDs() are sorted lexicographically; Edges(),
//	Neighbors() and EdgesBetween() follow insertion order. Traversals built on
//	top of these (see package bfs) are therefore fully reproducible.
package core
