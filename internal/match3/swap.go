package match3

import "fmt"

// SwapCreatesMatch tentatively exchanges a and b, checks both endpoints and
// restores the board. Coordinates must be in bounds.
func SwapCreatesMatch(g *Grid, a, b Coord) bool {
	g.swap(a, b)
	defer g.swap(a, b)
	return len(FindMatchesAt(g, a)) > 0 || len(FindMatchesAt(g, b)) > 0
}

// TrySwap applies the swap of two adjacent slots when it creates a match and
// returns the union of the matches at both endpoints as the cascade seed.
// A non-adjacent pair or a swap without a match leaves the board untouched
// and reports false without an error.
func TrySwap(g *Grid, a, b Coord) (Match, bool, error) {
	if !g.InBounds(a) {
		return nil, false, fmt.Errorf("%w: %s", ErrInvalidCoordinate, a)
	}
	if !g.InBounds(b) {
		return nil, false, fmt.Errorf("%w: %s", ErrInvalidCoordinate, b)
	}
	if !a.Adjacent(b) {
		return nil, false, nil
	}

	g.swap(a, b)
	seed := FindMatchesAt(g, a).Union(FindMatchesAt(g, b))
	if len(seed) == 0 {
		g.swap(a, b)
		return nil, false, nil
	}
	return seed, true, nil
}
