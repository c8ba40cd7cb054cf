package forest_test

import (
	"fmt"

	"github.com/katalvlaran/starlane/adjacency"
	"github.com/katalvlaran/starlane/builder"
	"github.com/katalvlaran/starlane/forest"
)

// ExampleNew shows the lower bound tightening after a jump on
// the route gets cheaper.
func ExampleNew() {
	g, _ := builder.BuildGalaxy(nil, builder.Path(5, 10))
	store, _ := builder.ToStore(g)

	f, _ := forest.New(store, forest.KindPacked)
	_ = f.ExpandForest([]int{0})
	fmt.Println(f.LowerBound(0, 4), f.UpperBound(1, 3))

	_ = store.LightenEdge(1, 2, 1)
	stats, _ := f.UpdateEdges([]adjacency.EdgeKey{{U: 1, V: 2}})
	fmt.Println(f.LowerBound(0, 4), stats.NodesRelabeled)
	// Output:
	// 40 40
	// 31 3
}
