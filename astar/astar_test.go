package astar_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/starlane/adjacency"
	"github.com/katalvlaran/starlane/astar"
	"github.com/katalvlaran/starlane/builder"
	"github.com/katalvlaran/starlane/forest"
)

func pathStore(t testing.TB) *adjacency.Store {
	t.Helper()
	g, err := builder.BuildGalaxy(nil, builder.Path(5, 10))
	require.NoError(t, err)
	s, err := builder.ToStore(g)
	require.NoError(t, err)

	return s
}

func sectorStore(t testing.TB, seed int64) *adjacency.Store {
	t.Helper()
	g, err := builder.BuildGalaxy(
		[]builder.BuilderOption{
			builder.WithSeed(seed),
			builder.WithWeightFn(func(r *rand.Rand, d float64) float64 { return d * (1 + 4*r.Float64()) }),
		},
		builder.RandomSector(80, 6, 2),
	)
	require.NoError(t, err)
	s, err := builder.ToStore(g)
	require.NoError(t, err)

	return s
}

func landmarkForest(t testing.TB, g adjacency.View, eps float64, seeds ...int) forest.Forest {
	t.Helper()
	f, err := forest.New(g, forest.KindPacked, forest.WithEpsilon(eps))
	require.NoError(t, err)
	for _, s := range seeds {
		require.NoError(t, f.ExpandForest([]int{s}))
	}

	return f
}

// allPairs is the brute-force reference distance matrix.
func allPairs(g adjacency.View) [][]float64 {
	n := g.NodeCount()
	d := make([][]float64, n)
	for i := range d {
		d[i] = make([]float64, n)
		for j := range d[i] {
			d[i][j] = math.Inf(1)
		}
		d[i][i] = 0
		nb, ws := g.Neighbors(i)
		for k, v := range nb {
			d[i][v] = ws[k]
		}
	}
	for k := 0; k < n; k++ {
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				if c := d[i][k] + d[k][j]; c < d[i][j] {
					d[i][j] = c
				}
			}
		}
	}

	return d
}

func TestPathGraphRoute(t *testing.T) {
	g := pathStore(t)
	f := landmarkForest(t, g, 0, 0)

	res, err := astar.Search(g, f, 0, 4)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, res.Path)
	assert.Equal(t, 40.0, res.Cost)

	// exact heuristic: one push per node, no detours
	d := res.Diagnostics
	assert.Equal(t, 4, d.Expanded)
	assert.Equal(t, 5, d.Queued)
	assert.Zero(t, d.Revisited)
	assert.Zero(t, d.Pruned)
	assert.Greater(t, d.BranchingFactor, 1.05)
	assert.Less(t, d.BranchingFactor, 1.1)

	back, err := astar.Search(g, f, 4, 0)
	require.NoError(t, err)
	assert.Equal(t, []int{4, 3, 2, 1, 0}, back.Path)
	assert.InDelta(t, res.Cost, back.Cost, 1e-10)
}

func TestSourceIsTarget(t *testing.T) {
	g := pathStore(t)
	res, err := astar.Search(g, nil, 3, 3)
	require.NoError(t, err)
	assert.Equal(t, []int{3}, res.Path)
	assert.Zero(t, res.Cost)
	assert.Zero(t, res.Diagnostics.BranchingFactor)
}

func TestSearchErrors(t *testing.T) {
	g, err := adjacency.New(4, []adjacency.Edge{{U: 0, V: 1, Weight: 1}, {U: 2, V: 3, Weight: 1}})
	require.NoError(t, err)

	_, err = astar.Search(g, nil, -1, 2)
	assert.ErrorIs(t, err, astar.ErrNodeRange)
	_, err = astar.Search(g, nil, 0, 4)
	assert.ErrorIs(t, err, astar.ErrNodeRange)

	_, err = astar.Search(g, nil, 0, 3)
	assert.ErrorIs(t, err, astar.ErrNoPath)

	// A landmark in the other component gives h = 0 here and must not hide the route.
	f := landmarkForest(t, g, 0, 2)
	res, err := astar.Search(g, f, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 0}, res.Path)
}

func TestUpperBound(t *testing.T) {
	g := pathStore(t)

	res, err := astar.Search(g, nil, 0, 4, astar.WithUpperBound(40))
	require.NoError(t, err)
	assert.Equal(t, 40.0, res.Cost)

	_, err = astar.Search(g, nil, 0, 4, astar.WithUpperBound(39))
	assert.ErrorIs(t, err, astar.ErrNoPath)

	assert.Panics(t, func() { astar.WithUpperBound(-1) })
	assert.Panics(t, func() { astar.WithUpperBound(math.NaN()) })
}

func TestMatchesFloyd(t *testing.T) {
	variants := map[string][]astar.Option{
		"scalar":      nil,
		"bulk":        {astar.WithBulkExpansion()},
		"floors":      {astar.WithCostFloors()},
		"bulk+floors": {astar.WithBulkExpansion(), astar.WithCostFloors()},
	}
	for _, seed := range []int64{1, 2, 3} {
		g := sectorStore(t, seed)
		want := allPairs(g)
		n := g.NodeCount()
		for _, eps := range []float64{0, 0.2} {
			f := landmarkForest(t, g, eps, 0, n-1, n/2)
			for name, opts := range variants {
				s := astar.NewSearcher(g, f)
				for u := 0; u < n; u += 7 {
					for v := 0; v < n; v += 5 {
						if math.IsInf(want[u][v], 1) {
							_, err := s.Search(u, v, opts...)
							assert.ErrorIs(t, err, astar.ErrNoPath, "%s %d->%d", name, u, v)
							continue
						}
						// ±ub from the forest is always a valid seed
						all := append([]astar.Option{astar.WithUpperBound(f.UpperBound(u, v))}, opts...)
						res, err := s.Search(u, v, all...)
						require.NoError(t, err, "%s %d->%d", name, u, v)
						assert.InDelta(t, want[u][v], res.Cost, 1e-9, "%s eps=%g %d->%d", name, eps, u, v)
						require.NoError(t, astar.ValidatePath(g, res.Path))
						c, err := astar.PathCost(g, res.Path)
						require.NoError(t, err)
						assert.InDelta(t, res.Cost, c, 1e-9)
						assert.Equal(t, u, res.Path[0])
						assert.Equal(t, v, res.Path[len(res.Path)-1])
					}
				}
			}
		}
	}
}

func TestDijkstraFallback(t *testing.T) {
	g := sectorStore(t, 9)
	want := allPairs(g)
	s := astar.NewSearcher(g, nil)
	for v := 1; v < g.NodeCount(); v += 3 {
		res, err := s.Search(0, v)
		if math.IsInf(want[0][v], 1) {
			assert.ErrorIs(t, err, astar.ErrNoPath)
			continue
		}
		require.NoError(t, err)
		assert.InDelta(t, want[0][v], res.Cost, 1e-9)
	}
}

func TestRouteAfterLightening(t *testing.T) {
	g := pathStore(t)
	f := landmarkForest(t, g, 0, 0)
	require.NoError(t, g.LightenEdge(1, 2, 1))
	_, err := f.UpdateEdges([]adjacency.EdgeKey{{U: 1, V: 2}})
	require.NoError(t, err)

	res, err := astar.Search(g, f, 0, 4, astar.WithBulkExpansion())
	require.NoError(t, err)
	assert.Equal(t, 31.0, res.Cost)
}

func TestValidatePath(t *testing.T) {
	g := pathStore(t)
	cases := []struct {
		name string
		path []int
		want error
	}{
		{"ok", []int{0, 1, 2}, nil},
		{"single", []int{2}, nil},
		{"empty", nil, astar.ErrBrokenPath},
		{"gap", []int{0, 2}, astar.ErrBrokenPath},
		{"range", []int{0, 9}, astar.ErrNodeRange},
		{"revisit", []int{0, 1, 0}, astar.ErrRevisitedNode},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := astar.ValidatePath(g, tc.path)
			if tc.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.want)
		})
	}

	c, err := astar.PathCost(g, []int{4, 3, 2})
	require.NoError(t, err)
	assert.Equal(t, 20.0, c)
	_, err = astar.PathCost(g, []int{0, 3})
	assert.ErrorIs(t, err, astar.ErrBrokenPath)
	_, err = astar.PathCost(g, nil)
	assert.ErrorIs(t, err, astar.ErrBrokenPath)
}

func TestDiagnosticsAdd(t *testing.T) {
	var d astar.Diagnostics
	d.Add(astar.Diagnostics{Expanded: 1, Queued: 2, Revisited: 3, Pruned: 4, BranchingFactor: 5})
	d.Add(astar.Diagnostics{Expanded: 1, Queued: 1})
	assert.Equal(t, astar.Diagnostics{Expanded: 2, Queued: 3, Revisited: 3, Pruned: 4}, d)
}
