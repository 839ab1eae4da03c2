package match3

import "fmt"

// Outcome is the terminal state of a session.
type Outcome int

const (
	OutcomePlaying Outcome = iota
	OutcomeWin
	OutcomeLose
)

func (o Outcome) String() string {
	switch o {
	case OutcomeWin:
		return "win"
	case OutcomeLose:
		return "lose"
	default:
		return "playing"
	}
}

// MarshalText lets outcomes appear by name in JSON reports.
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// Session tracks counters for one game. Combo starts at 1.
type Session struct {
	Settings

	MovesUsed int
	Score     int
	Combo     int

	outcome  Outcome
	reported bool
}

// NewSession starts a session with zeroed counters.
func NewSession(s Settings) *Session {
	return &Session{Settings: s, Combo: 1}
}

// RecordMove consumes one move. Endless sessions do not count moves.
func (s *Session) RecordMove() {
	if s.Mode == ModeMoves {
		s.MovesUsed++
	}
}

// MovesLeft returns the remaining moves, or -1 in endless mode.
func (s *Session) MovesLeft() int {
	if s.Mode != ModeMoves {
		return -1
	}
	if left := s.MoveLimit - s.MovesUsed; left > 0 {
		return left
	}
	return 0
}

// Evaluate checks for a terminal outcome after a move settled. The win check
// runs before the move-limit check. The second return value is true only on
// the call that first reaches a terminal outcome.
func (s *Session) Evaluate() (Outcome, bool) {
	if s.reported {
		return s.outcome, false
	}
	if s.Mode != ModeMoves {
		return OutcomePlaying, false
	}
	switch {
	case s.Score >= s.ScoreTarget:
		s.outcome = OutcomeWin
	case s.MovesUsed >= s.MoveLimit:
		s.outcome = OutcomeLose
	default:
		return OutcomePlaying, false
	}
	s.reported = true
	return s.outcome, true
}

// Outcome returns the last evaluated outcome.
func (s *Session) Outcome() Outcome {
	return s.outcome
}

// Terminal reports whether the session has ended.
func (s *Session) Terminal() bool {
	return s.reported
}

func (s *Session) scoring() Scoring {
	if s.Scoring == (Scoring{}) {
		return DefaultScoring
	}
	return s.Scoring
}

// FinalScore is what a session reports for high-score bookkeeping.
type FinalScore struct {
	Mode       Mode       `json:"mode"`
	Difficulty Difficulty `json:"difficulty"`
	Score      int        `json:"score"`
}

// Key returns the high-score key of the result.
func (f FinalScore) Key() string {
	return HighScoreKey(f.Mode, f.Difficulty)
}

// Final returns the session's result for high-score bookkeeping.
func (s *Session) Final() FinalScore {
	return FinalScore{Mode: s.Mode, Difficulty: s.Difficulty, Score: s.Score}
}

// HighScoreKey returns the persistence key for a (mode, difficulty) pair.
func HighScoreKey(mode Mode, difficulty Difficulty) string {
	return fmt.Sprintf("highscore_%s_%s", mode, difficulty)
}

// IsNewHighScore reports whether score beats the previous best.
func IsNewHighScore(score, previous int) bool {
	return score > previous
}
