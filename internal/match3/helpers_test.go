package match3

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// seqRand replays a fixed sequence of draws.
type seqRand struct {
	vals []int
	i    int
}

func (r *seqRand) Intn(n int) int {
	v := r.vals[r.i%len(r.vals)] % n
	r.i++
	return v
}

// stalemateRows returns an 8x8 four-color board without matches or legal
// moves: color(r, c) = (r + 2c) mod 4.
func stalemateRows() [][]int {
	rows := make([][]int, DefaultSize)
	for r := range rows {
		rows[r] = make([]int, DefaultSize)
		for c := range rows[r] {
			rows[r][c] = (r + 2*c) % 4
		}
	}
	return rows
}

// board builds the stalemate board with the given color planted on coords.
func board(t *testing.T, color int, coords ...Coord) *Grid {
	t.Helper()
	rows := stalemateRows()
	for _, c := range coords {
		rows[c.Row][c.Col] = color
	}
	g, err := FromRows(rows)
	require.NoError(t, err)
	return g
}

func plant(t *testing.T, g *Grid, color int, coords ...Coord) {
	t.Helper()
	for _, c := range coords {
		require.NoError(t, g.Set(c, Token(color)))
	}
}

// movesSettings allows six colors: fixtures plant colors 4 and 5 on the
// four-color stalemate board.
func movesSettings(t *testing.T, moves, target int) Settings {
	t.Helper()
	s, err := Resolve(ModeMoves, Medium)
	require.NoError(t, err)
	s.ColorCount = 6
	s.MoveLimit = moves
	s.ScoreTarget = target
	return s
}

// swappable returns a board where swapping (6,2) with (7,2) completes a run
// of three in row 7.
func swappable(t *testing.T) *Grid {
	return board(t, 4, At(7, 0), At(7, 1), At(6, 2))
}
