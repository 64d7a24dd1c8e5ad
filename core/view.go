// File: view.go
// Role: Non-mutating graph views (copying topology with altered properties).
// Determinism:
//   - Preserves vertex IDs, edge IDs, edge types and insertion order.
// Concurrency:
//   - Read locks on source; result is a fresh graph instance.

package core

import "sync/atomic"

// UndirectedView returns a new Graph with the same vertices and edges, where
// every edge is bidirectional. Parallel edges and self-loops are kept, so the
// view always allows both. The input graph is not mutated.
//
// This is the projection used for shortest-path search over dependency
// graphs: a path may traverse a dependency link against its direction.
//
// Complexity: O(V + E). Concurrency: read locks only on source.
func UndirectedView(g *Graph) *Graph {
	out := NewGraph(WithDirected(false), WithMultiEdges(), WithLoops())

	g.muVert.RLock()
	for id := range g.vertices {
		out.vertices[id] = &Vertex{ID: id}
		out.ensureAdjID(id)
	}
	g.muVert.RUnlock()

	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()
	for eid, e := range g.edges {
		ne := &Edge{ID: eid, From: e.From, To: e.To, Type: e.Type, Directed: false, seq: e.seq}
		out.edges[eid] = ne
		out.ensureAdjMap(ne.From, ne.To)
		out.adjacencyList[ne.From][ne.To][eid] = struct{}{}
		if ne.From != ne.To {
			out.ensureAdjMap(ne.To, ne.From)
			out.adjacencyList[ne.To][ne.From][eid] = struct{}{}
		}
	}
	// Continue ID generation strictly after the source's last ID.
	atomic.StoreUint64(&out.nextEdgeID, atomic.LoadUint64(&g.nextEdgeID))

	return out
}
