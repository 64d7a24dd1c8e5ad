// Package bfs provides breadth-first search over a core.Graph,
// returning unweighted shortest-path distances, parent links, and visit order.
//
// What
//
//   - Explore vertices in non-decreasing distance (edge count) from a start vertex.
//   - Returns a Result containing:
//   - Order: visit sequence
//   - Depth: map from vertex → distance (edges) from start
//   - Parent: map from vertex → its predecessor in the BFS tree
//   - OnVisit hook (may abort with an error).
//   - Filtering of individual neighbor steps via WithFilterNeighbor.
//   - Hop cutoff via WithMaxDepth (d>0) or explicit "no limit" (d==0).
//
// Determinism
//
//	core.NeighborIDs returns neighbors sorted by ID and BFS enqueues them in
//	that order, so the visit sequence and the parent tree are reproducible.
//	When several shortest paths exist, PathTo returns the first one found;
//	callers must not rely on which one that is beyond "same length".
//
// Complexity (V = |Vertices|, E = |Edges|)
//
//   - Time:   O(V + E·log d)  (neighbor lists are sorted per vertex)
//   - Memory: O(V)            (queue, Depth map, Parent map, visited set)
//
// Usage
//
//	res, err := bfs.BFS(g, "bt_0", bfs.WithMaxDepth(999))
//	if err != nil {
//		// ErrGraphNil, ErrStartVertexNotFound, ErrOptionViolation, ErrNeighbors, or hook errors
//	}
//	path, err := res.PathTo("bt_7")
package bfs
