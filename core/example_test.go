package core_test

import (
	"fmt"

	"github.com/lrxzhy/TEES/core"
)

// ExampleGraph builds a small dependency graph and inspects it.
func ExampleGraph() {
	// "Protein binds DNA": binds is the head of both arguments.
	g := core.NewGraph(core.WithDirected(true))
	_, _ = g.AddEdge("bt_1", "bt_0", "nsubj")
	_, _ = g.AddEdge("bt_1", "bt_2", "dobj")

	fmt.Println("Vertices:", g.Vertices())
	fmt.Println("bt_1 → bt_0?", g.HasEdge("bt_1", "bt_0"))
	fmt.Println("bt_0 → bt_1?", g.HasEdge("bt_0", "bt_1"))

	u := core.UndirectedView(g)
	ids, _ := u.NeighborIDs("bt_0")
	fmt.Println("undirected neighbors of bt_0:", ids)

	// Output:
	// Vertices: [bt_0 bt_1 bt_2]
	// bt_1 → bt_0? true
	// bt_0 → bt_1? false
	// undirected neighbors of bt_0: [bt_1]
}
