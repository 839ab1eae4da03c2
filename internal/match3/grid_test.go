package match3

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGridHasNoMatches(t *testing.T) {
	for colors := MinColors; colors <= 6; colors++ {
		for seed := int64(1); seed <= 50; seed++ {
			g, err := NewGrid(DefaultSize, colors, rand.New(rand.NewSource(seed)))
			require.NoError(t, err)
			assert.Empty(t, FindAllMatches(g), "colors=%d seed=%d\n%s", colors, seed, g)
			assert.Zero(t, g.EmptyCount())
		}
	}
}

func TestNewGridDeterministic(t *testing.T) {
	a, err := NewGrid(DefaultSize, 5, rand.New(rand.NewSource(42)))
	require.NoError(t, err)
	b, err := NewGrid(DefaultSize, 5, rand.New(rand.NewSource(42)))
	require.NoError(t, err)
	assert.True(t, a.Equal(b))
}

func TestNewGridDegenerateSource(t *testing.T) {
	g, err := NewGrid(DefaultSize, 3, &seqRand{vals: []int{0}})
	require.NoError(t, err)
	assert.Empty(t, FindAllMatches(g))
}

func TestNewGridInvalidConfiguration(t *testing.T) {
	tests := []struct {
		name   string
		size   int
		colors int
	}{
		{"two colors", 8, 2},
		{"zero colors", 8, 0},
		{"tiny board", 4, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGrid(tt.size, tt.colors, rand.New(rand.NewSource(1)))
			assert.ErrorIs(t, err, ErrInvalidConfiguration)
		})
	}
}

func TestFromRowsRejectsRagged(t *testing.T) {
	_, err := FromRows([][]int{{0, 1}, {1}})
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
	_, err = FromRows(nil)
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
}

func TestGridBounds(t *testing.T) {
	g := NewEmptyGrid(DefaultSize)
	_, err := g.At(At(8, 0))
	assert.ErrorIs(t, err, ErrInvalidCoordinate)
	_, err = g.At(At(0, -1))
	assert.ErrorIs(t, err, ErrInvalidCoordinate)
	assert.ErrorIs(t, g.Set(At(-1, 2), Token(1)), ErrInvalidCoordinate)
	assert.ErrorIs(t, g.Swap(At(0, 0), At(0, 8)), ErrInvalidCoordinate)

	g.Clear([]Coord{At(99, 99)})
	assert.Equal(t, 64, g.EmptyCount())
}

func TestApplyGravityColumn(t *testing.T) {
	g := NewEmptyGrid(DefaultSize)
	plant(t, g, 1, At(0, 3))
	plant(t, g, 2, At(2, 3))
	plant(t, g, 3, At(5, 3))

	passes := g.ApplyGravity()
	assert.Equal(t, 5, passes)

	want := []int{-1, -1, -1, -1, -1, 1, 2, 3}
	for row, color := range want {
		cell, err := g.At(At(row, 3))
		require.NoError(t, err)
		assert.Equal(t, color, cell.Color, "row %d", row)
	}
	assert.Equal(t, 61, g.EmptyCount())
}

func TestApplyGravityKeepsPowerUps(t *testing.T) {
	g := NewEmptyGrid(DefaultSize)
	require.NoError(t, g.Set(At(1, 0), Cell{Color: 2, PowerUp: PowerUpMega}))
	g.ApplyGravity()
	cell, err := g.At(At(7, 0))
	require.NoError(t, err)
	assert.Equal(t, Cell{Color: 2, PowerUp: PowerUpMega}, cell)
}

func TestRefillColumnMajor(t *testing.T) {
	g := board(t, 0)
	g.Clear([]Coord{At(5, 1), At(0, 0), At(2, 0)})
	filled := g.Refill(4, &seqRand{vals: []int{3}})
	assert.Equal(t, []Coord{At(0, 0), At(2, 0), At(5, 1)}, filled)
	assert.Zero(t, g.EmptyCount())
}

func TestCloneIsIndependent(t *testing.T) {
	g := board(t, 0)
	c := g.Clone()
	require.True(t, g.Equal(c))
	plant(t, c, 5, At(0, 0))
	assert.False(t, g.Equal(c))
}

func TestGridString(t *testing.T) {
	g, err := FromRows([][]int{
		{0, 1, -1, 2, 0},
		{1, 0, 1, 0, 1},
		{0, 1, 0, 1, 0},
		{1, 0, 1, 0, 1},
		{0, 1, 0, 1, 0},
	})
	require.NoError(t, err)
	g.setPowerUp(At(0, 0), PowerUpRow)
	assert.Equal(t, "Ab.ca\nbabab\nababa\nbabab\nababa\n", g.String())
}
