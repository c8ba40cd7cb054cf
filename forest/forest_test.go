package forest_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/starlane/adjacency"
	"github.com/katalvlaran/starlane/builder"
	"github.com/katalvlaran/starlane/forest"
)

var kinds = []forest.Kind{forest.KindTrees, forest.KindPacked}

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
		builder.RandomSector(70, 6, 2),
	)
	require.NoError(t, err)
	s, err := builder.ToStore(g)
	require.NoError(t, err)

	return s
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

type ForestSuite struct {
	suite.Suite
	kind forest.Kind
}

func TestForestTrees(t *testing.T)  { suite.Run(t, &ForestSuite{kind: forest.KindTrees}) }
func TestForestPacked(t *testing.T) { suite.Run(t, &ForestSuite{kind: forest.KindPacked}) }

func (s *ForestSuite) newForest(g adjacency.View, opts ...forest.Option) forest.Forest {
	f, err := forest.New(g, s.kind, opts...)
	s.Require().NoError(err)
	s.Equal(s.kind, f.Kind())

	return f
}

func (s *ForestSuite) TestLandmarkAtMiddle() {
	g := pathStore(s.T())
	f := s.newForest(g)
	s.Require().NoError(f.ExpandForest([]int{2}))
	s.Equal(0.0, f.LowerBound(0, 4))
	s.Equal(40.0, f.UpperBound(0, 4))
}

func (s *ForestSuite) TestLandmarkAtEnd() {
	g := pathStore(s.T())
	f := s.newForest(g)
	s.Require().NoError(f.ExpandForest([]int{0}))
	s.Equal(40.0, f.LowerBound(0, 4))
	s.Equal(40.0, f.LowerBound(4, 0))
	s.Equal(0.0, f.LowerBound(3, 3))
	s.Equal(0.0, f.UpperBound(3, 3))
}

func (s *ForestSuite) TestLightenRepairsOnlyAffectedLabels() {
	g := pathStore(s.T())
	f := s.newForest(g)
	s.Require().NoError(f.ExpandForest([]int{0}))
	s.Require().NoError(f.ExpandForest([]int{4}))

	s.Require().NoError(g.LightenEdge(1, 2, 1))
	stats, err := f.UpdateEdges([]adjacency.EdgeKey{{U: 1, V: 2}})
	s.Require().NoError(err)
	s.Equal(2, stats.TreesTouched)
	s.Equal(2, stats.DirtyEdges)
	s.Equal(3+2, stats.NodesRelabeled)

	s.Equal(31.0, f.LowerBound(0, 4))
	s.Equal([]float64{0, 10, 11, 21, 31}, f.Tree(0).Dist)
	s.Equal([]float64{31, 21, 20, 10, 0}, f.Tree(1).Dist)
}

func (s *ForestSuite) TestSmallDecreaseLeavesTreeAlone() {
	g := pathStore(s.T())
	f := s.newForest(g)
	s.Require().NoError(f.ExpandForest([]int{0}))

	s.Require().NoError(g.LightenEdge(3, 4, 10))
	stats, err := f.UpdateEdges([]adjacency.EdgeKey{{U: 3, V: 4}})
	s.Require().NoError(err)
	s.Equal(forest.RepairStats{}, stats)

	_, err = f.UpdateEdges([]adjacency.EdgeKey{{U: 0, V: 4}})
	s.ErrorIs(err, forest.ErrEdgeNotFound)
}

func (s *ForestSuite) TestUnreachedAndEmpty() {
	g, err := adjacency.New(4, []adjacency.Edge{{U: 0, V: 1, Weight: 2}, {U: 2, V: 3, Weight: 2}})
	s.Require().NoError(err)
	f := s.newForest(g)
	s.Equal(forest.Unbounded, f.UpperBound(0, 1))
	s.Equal(0.0, f.LowerBound(0, 1))

	s.Require().NoError(f.ExpandForest([]int{0}))
	s.Equal(2.0, f.LowerBound(0, 1))
	s.Equal(0.0, f.LowerBound(2, 3))
	s.Equal(forest.Unbounded, f.UpperBound(0, 2))
	s.Equal(forest.Unbounded, f.UpperBoundBulk(3, nil)[2])
}

func (s *ForestSuite) TestExpandErrors() {
	g := pathStore(s.T())
	f := s.newForest(g)
	s.ErrorIs(f.ExpandForest(nil), forest.ErrNoSeeds)
	s.ErrorIs(f.ExpandForest([]int{9}), forest.ErrSeedRange)
	s.Equal(0, f.Len())
}

func (s *ForestSuite) TestBoundsBracketDistance() {
	for _, eps := range []float64{0, 0.1, 0.5} {
		g := sectorStore(s.T(), 11)
		f := s.newForest(g, forest.WithEpsilon(eps))
		for _, seed := range []int{0, 17, 42, 69} {
			s.Require().NoError(f.ExpandForest([]int{seed}))
		}
		s.Equal(eps, f.Epsilon())
		ref := allPairs(g)
		for u := 0; u < g.NodeCount(); u++ {
			for v := 0; v < g.NodeCount(); v++ {
				d := ref[u][v]
				lb, ub := f.LowerBound(u, v), f.UpperBound(u, v)
				s.Equal(lb, f.LowerBound(v, u))
				s.Equal(ub, f.UpperBound(v, u))
				if math.IsInf(d, 1) {
					continue
				}
				s.LessOrEqual(lb, d+1e-9, "lb eps=%g u=%d v=%d", eps, u, v)
				s.GreaterOrEqual(ub, d-1e-9, "ub eps=%g u=%d v=%d", eps, u, v)
			}
		}
	}
}

func (s *ForestSuite) TestBoundsSurviveLightening() {
	g := sectorStore(s.T(), 5)
	f := s.newForest(g, forest.WithEpsilon(0.2))
	for _, seed := range []int{3, 30, 60} {
		s.Require().NoError(f.ExpandForest([]int{seed}))
	}
	rng := rand.New(rand.NewSource(9))
	edges := g.Edges()
	for round := 0; round < 8; round++ {
		batch := make([]adjacency.EdgeKey, 0, 4)
		for k := 0; k < 4; k++ {
			e := edges[rng.Intn(len(edges))]
			w, _ := g.Weight(e.U, e.V)
			s.Require().NoError(g.LightenEdge(e.U, e.V, w*rng.Float64()))
			batch = append(batch, adjacency.EdgeKey{U: e.U, V: e.V})
		}
		_, err := f.UpdateEdges(batch)
		s.Require().NoError(err)

		ref := allPairs(g)
		for u := 0; u < g.NodeCount(); u += 3 {
			for v := 0; v < g.NodeCount(); v++ {
				if math.IsInf(ref[u][v], 1) {
					continue
				}
				s.LessOrEqual(f.LowerBound(u, v), ref[u][v]+1e-9)
				s.GreaterOrEqual(f.UpperBound(u, v), ref[u][v]-1e-9)
			}
		}
	}
}

func (s *ForestSuite) TestBulkMatchesScalar() {
	g := sectorStore(s.T(), 3)
	f := s.newForest(g, forest.WithEpsilon(0.3))
	s.Require().NoError(f.ExpandForest([]int{1}))
	s.Require().NoError(f.ExpandForest([]int{50, 51}))
	buf := make([]float64, 0, g.NodeCount())
	for _, target := range []int{0, 33, 69} {
		lbs := f.LowerBoundBulk(target, buf)
		ubs := append([]float64(nil), f.UpperBoundBulk(target, nil)...)
		for v := 0; v < g.NodeCount(); v++ {
			s.Equal(f.LowerBound(v, target), lbs[v])
			s.Equal(f.UpperBound(v, target), ubs[v])
		}
	}
}

func (s *ForestSuite) TestCloneIsIndependent() {
	g := pathStore(s.T())
	f := s.newForest(g)
	s.Require().NoError(f.ExpandForest([]int{0}))

	snap := g.Snapshot()
	c, err := f.Clone(snap)
	s.Require().NoError(err)
	s.Equal(f.Kind(), c.Kind())

	s.Require().NoError(g.LightenEdge(1, 2, 1))
	_, err = f.UpdateEdges([]adjacency.EdgeKey{{U: 1, V: 2}})
	s.Require().NoError(err)
	s.Equal(31.0, f.LowerBound(0, 4))
	s.Equal(40.0, c.LowerBound(0, 4))

	small, err := adjacency.New(2, []adjacency.Edge{{U: 0, V: 1, Weight: 1}})
	s.Require().NoError(err)
	_, err = f.Clone(small)
	s.ErrorIs(err, forest.ErrTreeLength)
}

// TestKindsAgree drives both implementations through the same expand and
// repair sequence and requires bit-identical bounds.
func TestKindsAgree(t *testing.T) {
	build := func() (*adjacency.Store, []forest.Forest) {
		g := sectorStore(t, 21)
		var fs []forest.Forest
		for _, k := range kinds {
			f, err := forest.New(g, k, forest.WithEpsilon(0.25))
			require.NoError(t, err)
			fs = append(fs, f)
		}
		return g, fs
	}
	g, fs := build()
	rng := rand.New(rand.NewSource(4))
	edges := g.Edges()

	for step := 0; step < 12; step++ {
		if step%3 == 0 {
			seed := rng.Intn(g.NodeCount())
			for _, f := range fs {
				require.NoError(t, f.ExpandForest([]int{seed}))
			}
			continue
		}
		e := edges[rng.Intn(len(edges))]
		w, _ := g.Weight(e.U, e.V)
		require.NoError(t, g.LightenEdge(e.U, e.V, w/2))
		var stats []forest.RepairStats
		for _, f := range fs {
			st, err := f.UpdateEdges([]adjacency.EdgeKey{{U: e.U, V: e.V}})
			require.NoError(t, err)
			stats = append(stats, st)
		}
		assert.Equal(t, stats[0], stats[1])

		for u := 0; u < g.NodeCount(); u++ {
			for v := 0; v < g.NodeCount(); v += 7 {
				require.Equal(t, fs[0].LowerBound(u, v), fs[1].LowerBound(u, v))
				require.Equal(t, fs[0].UpperBound(u, v), fs[1].UpperBound(u, v))
			}
		}
		target := rng.Intn(g.NodeCount())
		assert.Equal(t, fs[0].LowerBoundBulk(target, nil), fs[1].LowerBoundBulk(target, nil))
		assert.Equal(t, fs[0].UpperBoundBulk(target, nil), fs[1].UpperBoundBulk(target, nil))
	}
}

func TestParseKind(t *testing.T) {
	k, err := forest.ParseKind("packed")
	require.NoError(t, err)
	assert.Equal(t, forest.KindPacked, k)
	assert.Equal(t, "packed", k.String())

	k, err = forest.ParseKind("")
	require.NoError(t, err)
	assert.Equal(t, forest.KindTrees, k)

	_, err = forest.ParseKind("matrix")
	assert.ErrorIs(t, err, forest.ErrUnknownKind)

	_, err = forest.New(pathStore(t), forest.Kind(7))
	assert.ErrorIs(t, err, forest.ErrUnknownKind)

	assert.Panics(t, func() { forest.WithEpsilon(-1) })
}
