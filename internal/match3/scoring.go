package match3

// Scoring holds the base points for a cleared group by size.
type Scoring struct {
	Match3 int
	Match4 int
	Match5 int
}

// DefaultScoring is the standard points table.
var DefaultScoring = Scoring{Match3: 10, Match4: 25, Match5: 50}

// ForGroup returns the base points for a group of the given total size.
// Sizes outside the table score five points per token.
func (s Scoring) ForGroup(size int) int {
	switch {
	case size == 3:
		return s.Match3
	case size == 4:
		return s.Match4
	case size >= 5:
		return s.Match5
	default:
		return size * 5
	}
}

// ScoreForGroup scores a group with DefaultScoring.
func ScoreForGroup(size int) int {
	return DefaultScoring.ForGroup(size)
}
