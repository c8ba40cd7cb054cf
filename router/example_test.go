package router_test

import (
	"context"
	"fmt"

	"github.com/katalvlaran/starlane/builder"
	"github.com/katalvlaran/starlane/galaxy"
	"github.com/katalvlaran/starlane/router"
)

// ExampleRouter_RouteAll routes one query and shows the reinforced cost.
func ExampleRouter_RouteAll() {
	g, _ := builder.BuildGalaxy(nil, builder.Path(5, 10))
	r, _ := router.New(g)
	ctx := context.Background()
	if err := r.Prepare(ctx, nil); err != nil {
		fmt.Println("error:", err)
		return
	}

	rep, err := r.RouteAll(ctx, []galaxy.Query{{Source: 0, Target: 4, Trade: 1}})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(rep.Found(), rep.Routes[0].Path, rep.Routes[0].Cost)

	j, _ := g.Jump(0, 1)
	fmt.Println(j.Count, j.Trade)
	// Output:
	// 1 [0 1 2 3 4] 40
	// 1 1
}
