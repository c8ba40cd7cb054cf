package builder_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/starlane/builder"
	"github.com/katalvlaran/starlane/galaxy"
)

func TestPath(t *testing.T) {
	g, err := builder.BuildGalaxy(nil, builder.Path(5, 10))
	require.NoError(t, err)
	require.Equal(t, 5, g.StarCount())
	require.Equal(t, 4, g.JumpCount())
	for i, j := range g.Jumps() {
		assert.Equal(t, i, j.U)
		assert.Equal(t, i+1, j.V)
		assert.Equal(t, 10.0, j.Weight)
		assert.Equal(t, 10.0, j.Distance)
	}
	s, err := g.Star(3)
	require.NoError(t, err)
	assert.Equal(t, "S3", s.Name)
	assert.Equal(t, "R0.0", s.Region)
}

func TestValidation(t *testing.T) {
	cases := []struct {
		name string
		con  builder.Constructor
		want error
	}{
		{"path short", builder.Path(1, 1), builder.ErrTooFewStars},
		{"path distance", builder.Path(3, 0), builder.ErrBadParameter},
		{"grid", builder.HexGrid(1, 1), builder.ErrTooFewStars},
		{"sector rng", builder.RandomSector(4, 2, 1), builder.ErrNeedRandSource},
		{"sector size", builder.RandomSector(20, 2, 1), builder.ErrBadParameter},
		{"sector reach", builder.RandomSector(3, 2, 0), builder.ErrBadParameter},
		{"clusters", builder.Clusters(2, 1, 3), builder.ErrTooFewStars},
		{"nil", nil, builder.ErrConstructFailed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := builder.BuildGalaxy(nil, tc.con)
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestHexGridDegrees(t *testing.T) {
	g, err := builder.BuildGalaxy(nil, builder.HexGrid(3, 3))
	require.NoError(t, err)
	require.Equal(t, 9, g.StarCount())
	// 3 rows of 2 horizontal + 2 rows of 3 vertical + 2 rows of 2 diagonal
	assert.Equal(t, 6+6+4, g.JumpCount())
	for _, j := range g.Jumps() {
		a, _ := g.Star(j.U)
		b, _ := g.Star(j.V)
		assert.Equal(t, 1, a.Hex.Distance(b.Hex))
	}
	require.Len(t, g.Components(), 1)
}

func TestRandomSectorDeterministic(t *testing.T) {
	build := func() *galaxy.Graph {
		g, err := builder.BuildGalaxy([]builder.BuilderOption{builder.WithSeed(7)},
			builder.RandomSector(40, 6, 2))
		require.NoError(t, err)
		return g
	}
	a, b := build(), build()
	assert.Equal(t, a.Stars(), b.Stars())
	assert.Equal(t, a.Jumps(), b.Jumps())

	seen := map[galaxy.Hex]bool{}
	for _, s := range a.Stars() {
		assert.False(t, seen[s.Hex], "hex %v reused", s.Hex)
		seen[s.Hex] = true
		assert.LessOrEqual(t, s.Hex.Distance(galaxy.Hex{}), 6)
	}
	for _, j := range a.Jumps() {
		assert.LessOrEqual(t, j.Distance, 2.0)
	}
}

func TestClusters(t *testing.T) {
	g, err := builder.BuildGalaxy(nil, builder.Clusters(3, 4, 0))
	require.NoError(t, err)
	require.Equal(t, 12, g.StarCount())
	assert.Len(t, g.Components(), 3)
	s, _ := g.Star(5)
	assert.Equal(t, "C1", s.Region)

	bridged, err := builder.BuildGalaxy(nil, builder.Clusters(3, 4, 5))
	require.NoError(t, err)
	assert.Len(t, bridged.Components(), 1)
	j, err := bridged.Jump(0, 4)
	require.NoError(t, err)
	assert.Equal(t, 5.0, j.Distance)
}

func TestComposeAndOptions(t *testing.T) {
	opts := []builder.BuilderOption{
		builder.WithRand(rand.New(rand.NewSource(1))),
		builder.WithNameScheme(func(i int) string { return "x" }),
		builder.WithRegionScheme(func(galaxy.Hex) string { return "core" }),
		builder.WithWeightFn(func(_ *rand.Rand, d float64) float64 { return 3 * d }),
		builder.WithPriorityFn(func(_ *rand.Rand, i int) float64 { return float64(i) }),
	}
	g, err := builder.BuildGalaxy(opts, builder.Path(3, 2), builder.Path(2, 1))
	require.NoError(t, err)
	require.Equal(t, 5, g.StarCount())
	j, err := g.Jump(3, 4)
	require.NoError(t, err)
	assert.Equal(t, 3.0, j.Weight)
	assert.Equal(t, 1.0, j.Distance)
	s, _ := g.Star(4)
	assert.Equal(t, "core", s.Region)
	assert.Equal(t, 4.0, s.Priority)
	_, err = g.Jump(2, 3)
	assert.ErrorIs(t, err, galaxy.ErrJumpNotFound)

	assert.Panics(t, func() { builder.WithNameScheme(nil) })
	assert.Panics(t, func() { builder.WithRand(nil) })
}

func TestToStore(t *testing.T) {
	g, err := builder.BuildGalaxy(nil, builder.Path(4, 5))
	require.NoError(t, err)
	s, err := builder.ToStore(g)
	require.NoError(t, err)
	assert.Equal(t, 4, s.NodeCount())
	assert.Equal(t, 3, s.EdgeCount())
	w, ok := s.Weight(2, 1)
	require.True(t, ok)
	assert.Equal(t, 5.0, w)
}

func TestSubsector(t *testing.T) {
	assert.Equal(t, "R0.0", builder.Subsector(galaxy.Hex{Q: 7, R: 9}))
	assert.Equal(t, "R1.0", builder.Subsector(galaxy.Hex{Q: 8, R: 0}))
	assert.Equal(t, "R-1.-1", builder.Subsector(galaxy.Hex{Q: -1, R: -10}))
}
