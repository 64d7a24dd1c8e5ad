package bfs_test

import (
	"fmt"

	"github.com/lrxzhy/TEES/bfs"
	"github.com/lrxzhy/TEES/core"
)

// ExampleBFS finds the fewest-hop path between two tokens of a dependency
// parse, walking links in either direction.
func ExampleBFS() {
	// "STAT3 phosphorylation requires JAK2"
	deps := core.NewGraph(core.WithDirected(true))
	_, _ = deps.AddEdge("bt_1", "bt_0", "nn")
	_, _ = deps.AddEdge("bt_2", "bt_1", "nsubj")
	_, _ = deps.AddEdge("bt_2", "bt_3", "dobj")

	res, err := bfs.BFS(core.UndirectedView(deps), "bt_0", bfs.WithMaxDepth(999))
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	path, _ := res.PathTo("bt_3")
	fmt.Println(path, "hops:", res.Depth["bt_3"])

	// Output:
	// [bt_0 bt_1 bt_2 bt_3] hops: 3
}
