package galaxy_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/starlane/galaxy"
)

func TestHexDistance(t *testing.T) {
	a := galaxy.Hex{Q: 0, R: 0}
	b := galaxy.Hex{Q: 2, R: -1}
	assert.Equal(t, -1, b.S())
	assert.Equal(t, 2, a.Distance(b))
	assert.Equal(t, a.Distance(b), b.Distance(a))
	assert.Equal(t, 0, b.Distance(b))
}

func TestAddJumpValidation(t *testing.T) {
	g := galaxy.NewGraph()
	a := g.AddStar(galaxy.Star{Name: "A"})
	b := g.AddStar(galaxy.Star{Name: "B"})

	require.NoError(t, g.AddJump(a, b, 1, 3))
	assert.True(t, errors.Is(g.AddJump(b, a, 1, 3), galaxy.ErrDuplicateJump))
	assert.True(t, errors.Is(g.AddJump(a, a, 1, 3), galaxy.ErrSelfJump))
	assert.True(t, errors.Is(g.AddJump(a, 7, 1, 3), galaxy.ErrStarNotFound))
	assert.True(t, errors.Is(g.AddJump(a, b, -1, 3), galaxy.ErrBadWeight))

	j, err := g.Jump(b, a)
	require.NoError(t, err)
	assert.Equal(t, a, j.U)
	assert.Equal(t, b, j.V)
	assert.Equal(t, 3.0, j.Weight)
}

func TestRecordUsage(t *testing.T) {
	g := galaxy.NewGraph()
	a := g.AddStar(galaxy.Star{})
	b := g.AddStar(galaxy.Star{})
	require.NoError(t, g.AddJump(a, b, 2, 2))

	require.NoError(t, g.RecordUsage(b, a, 5))
	require.NoError(t, g.RecordUsage(a, b, 1.5))
	j, err := g.Jump(a, b)
	require.NoError(t, err)
	assert.Equal(t, 6.5, j.Trade)
	assert.Equal(t, 2, j.Count)

	assert.True(t, errors.Is(g.RecordUsage(a, a, 1), galaxy.ErrJumpNotFound))
}

func TestCalculateComponents(t *testing.T) {
	// 0-1-2   3-4   5
	g := galaxy.NewGraph()
	for i := 0; i < 6; i++ {
		g.AddStar(galaxy.Star{})
	}
	require.NoError(t, g.AddJump(0, 1, 1, 1))
	require.NoError(t, g.AddJump(1, 2, 1, 1))
	require.NoError(t, g.AddJump(3, 4, 1, 1))

	labels := g.CalculateComponents()
	assert.Equal(t, []int{0, 0, 0, 1, 1, 2}, labels)
	assert.Equal(t, [][]int{{0, 1, 2}, {3, 4}, {5}}, g.Components())

	s, err := g.Star(4)
	require.NoError(t, err)
	assert.Equal(t, 1, s.Component)

	// joining two components invalidates the cache
	require.NoError(t, g.AddJump(2, 3, 1, 1))
	assert.Equal(t, []int{0, 0, 0, 0, 0, 1}, g.CalculateComponents())
}

func TestStarBeforeComponents(t *testing.T) {
	g := galaxy.NewGraph()
	i := g.AddStar(galaxy.Star{Name: "Regina", Component: 42})
	s, err := g.Star(i)
	require.NoError(t, err)
	assert.Equal(t, galaxy.NoComponent, s.Component)

	_, err = g.Star(3)
	assert.True(t, errors.Is(err, galaxy.ErrStarNotFound))
}
