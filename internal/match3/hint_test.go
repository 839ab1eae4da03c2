package match3

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindPossibleMoveNone(t *testing.T) {
	g := board(t, 0)
	_, ok := FindPossibleMove(g)
	assert.False(t, ok)
	assert.False(t, HasPossibleMove(g))
	assert.Empty(t, PossibleMoves(g))
}

func TestFindPossibleMoveSingle(t *testing.T) {
	g := swappable(t)
	before := g.Clone()

	mv, ok := FindPossibleMove(g)
	require.True(t, ok)
	assert.Equal(t, Move{A: At(6, 2), B: At(7, 2)}, mv)
	assert.Equal(t, []Move{mv}, PossibleMoves(g))
	assert.True(t, g.Equal(before))
}

func TestFindPossibleMoveIsFirstInScanOrder(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		g, err := NewGrid(DefaultSize, 4, rand.New(rand.NewSource(seed)))
		require.NoError(t, err)
		all := PossibleMoves(g)
		mv, ok := FindPossibleMove(g)
		if len(all) == 0 {
			assert.False(t, ok)
			continue
		}
		require.True(t, ok)
		assert.Equal(t, all[0], mv)
		assert.True(t, mv.A.Adjacent(mv.B))
		assert.True(t, SwapCreatesMatch(g, mv.A, mv.B))
	}
}
