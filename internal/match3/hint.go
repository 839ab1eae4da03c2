package match3

// Move is a pair of adjacent coordinates to swap.
type Move struct {
	A Coord `json:"a"`
	B Coord `json:"b"`
}

// FindPossibleMove scans row-major and, for each slot, tries the right
// neighbor then the bottom neighbor. It returns the first swap that creates
// a match, or false on a stalemated board. The board is left unchanged.
func FindPossibleMove(g *Grid) (Move, bool) {
	var found Move
	ok := false
	eachCandidate(g, func(m Move) bool {
		if SwapCreatesMatch(g, m.A, m.B) {
			found, ok = m, true
			return false
		}
		return true
	})
	return found, ok
}

// HasPossibleMove reports whether the board is not stalemated.
func HasPossibleMove(g *Grid) bool {
	_, ok := FindPossibleMove(g)
	return ok
}

// PossibleMoves lists every matching swap in scan order.
func PossibleMoves(g *Grid) []Move {
	var moves []Move
	eachCandidate(g, func(m Move) bool {
		if SwapCreatesMatch(g, m.A, m.B) {
			moves = append(moves, m)
		}
		return true
	})
	return moves
}

func eachCandidate(g *Grid, fn func(Move) bool) {
	n := g.size
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			a := At(row, col)
			if col < n-1 && !fn(Move{A: a, B: At(row, col+1)}) {
				return
			}
			if row < n-1 && !fn(Move{A: a, B: At(row+1, col)}) {
				return
			}
		}
	}
}
