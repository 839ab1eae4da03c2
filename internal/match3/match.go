package match3

// Match is a set of unique board coordinates kept in row-major order.
type Match []Coord

// Contains reports whether c is part of the match.
func (m Match) Contains(c Coord) bool {
	for _, x := range m {
		if x == c {
			return true
		}
	}
	return false
}

// SameRow reports whether every coordinate shares one row.
func (m Match) SameRow() bool {
	for _, c := range m {
		if c.Row != m[0].Row {
			return false
		}
	}
	return len(m) > 0
}

// Union merges two row-major matches into a new row-major match without duplicates.
func (m Match) Union(other Match) Match {
	out := make(Match, 0, len(m)+len(other))
	i, j := 0, 0
	for i < len(m) && j < len(other) {
		switch {
		case m[i] == other[j]:
			out = append(out, m[i])
			i++
			j++
		case m[i].before(other[j]):
			out = append(out, m[i])
			i++
		default:
			out = append(out, other[j])
			j++
		}
	}
	out = append(out, m[i:]...)
	out = append(out, other[j:]...)
	return out
}

// FindMatchesAt returns the horizontal run through c when it is at least
// MinRun long, united with the vertical run through c under the same rule.
// An empty or out-of-bounds origin yields nil.
func FindMatchesAt(g *Grid, c Coord) Match {
	if !g.InBounds(c) {
		return nil
	}
	color := g.cell(c).Color
	if color < 0 {
		return nil
	}

	left, right := c.Col, c.Col
	for left > 0 && g.colorAt(c.Row, left-1) == color {
		left--
	}
	for right < g.size-1 && g.colorAt(c.Row, right+1) == color {
		right++
	}
	top, bottom := c.Row, c.Row
	for top > 0 && g.colorAt(top-1, c.Col) == color {
		top--
	}
	for bottom < g.size-1 && g.colorAt(bottom+1, c.Col) == color {
		bottom++
	}

	horizontal := right-left+1 >= MinRun
	vertical := bottom-top+1 >= MinRun
	if !horizontal && !vertical {
		return nil
	}

	var m Match
	if vertical {
		for row := top; row < c.Row; row++ {
			m = append(m, At(row, c.Col))
		}
	}
	if horizontal {
		for col := left; col <= right; col++ {
			m = append(m, At(c.Row, col))
		}
	} else {
		m = append(m, c)
	}
	if vertical {
		for row := c.Row + 1; row <= bottom; row++ {
			m = append(m, At(row, c.Col))
		}
	}
	return m
}

// FindAllMatches unites FindMatchesAt over every occupied slot.
// The result is row-major and does not modify the board.
func FindAllMatches(g *Grid) Match {
	marked := make([]bool, len(g.cells))
	found := false
	for row := 0; row < g.size; row++ {
		for col := 0; col < g.size; col++ {
			if marked[g.index(row, col)] {
				continue
			}
			for _, c := range FindMatchesAt(g, At(row, col)) {
				marked[g.index(c.Row, c.Col)] = true
				found = true
			}
		}
	}
	if !found {
		return nil
	}
	var m Match
	for i, ok := range marked {
		if ok {
			m = append(m, At(i/g.size, i%g.size))
		}
	}
	return m
}
