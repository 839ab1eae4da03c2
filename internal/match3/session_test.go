package match3

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		mode       Mode
		difficulty Difficulty
		want       Settings
	}{
		{ModeMoves, Easy, Settings{ModeMoves, Easy, 8, 3, 40, 500, DefaultScoring}},
		{ModeMoves, Medium, Settings{ModeMoves, Medium, 8, 4, 30, 600, DefaultScoring}},
		{ModeMoves, Hard, Settings{ModeMoves, Hard, 8, 5, 25, 750, DefaultScoring}},
		{ModeEndless, Hard, Settings{ModeEndless, Hard, 8, 5, 0, 0, DefaultScoring}},
	}
	for _, tt := range tests {
		got, err := Resolve(tt.mode, tt.difficulty)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestResolveUnknown(t *testing.T) {
	_, err := Resolve("arcade", Easy)
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
	_, err = Resolve(ModeMoves, "nightmare")
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
}

func TestParseModeAndDifficulty(t *testing.T) {
	m, err := ParseMode(" Endless ")
	require.NoError(t, err)
	assert.Equal(t, ModeEndless, m)
	d, err := ParseDifficulty("HARD")
	require.NoError(t, err)
	assert.Equal(t, Hard, d)
	_, err = ParseDifficulty("extreme")
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
}

func TestSessionEvaluate(t *testing.T) {
	tests := []struct {
		name  string
		moves int
		score int
		want  Outcome
	}{
		{"still playing", 5, 100, OutcomePlaying},
		{"target reached", 5, 600, OutcomeWin},
		{"out of moves", 30, 100, OutcomeLose},
		{"win beats lose on the last move", 30, 600, OutcomeWin},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSession(movesSettings(t, 30, 600))
			s.MovesUsed = tt.moves
			s.Score = tt.score
			got, fired := s.Evaluate()
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want != OutcomePlaying, fired)
		})
	}
}

func TestSessionOutcomeReportedOnce(t *testing.T) {
	s := NewSession(movesSettings(t, 1, 600))
	s.RecordMove()
	got, fired := s.Evaluate()
	require.Equal(t, OutcomeLose, got)
	require.True(t, fired)

	s.Score = 1000
	got, fired = s.Evaluate()
	assert.Equal(t, OutcomeLose, got)
	assert.False(t, fired)
	assert.True(t, s.Terminal())
}

func TestEndlessNeverEnds(t *testing.T) {
	settings, err := Resolve(ModeEndless, Easy)
	require.NoError(t, err)
	s := NewSession(settings)
	for range 500 {
		s.RecordMove()
	}
	s.Score = 1 << 20
	got, fired := s.Evaluate()
	assert.Equal(t, OutcomePlaying, got)
	assert.False(t, fired)
	assert.Zero(t, s.MovesUsed)
	assert.Equal(t, -1, s.MovesLeft())
}

func TestHighScoreKey(t *testing.T) {
	assert.Equal(t, "highscore_moves_easy", HighScoreKey(ModeMoves, Easy))
	assert.Equal(t, "highscore_endless_hard", HighScoreKey(ModeEndless, Hard))

	s := NewSession(movesSettings(t, 30, 600))
	s.Score = 420
	final := s.Final()
	assert.Equal(t, "highscore_moves_medium", final.Key())
	assert.Equal(t, 420, final.Score)

	assert.True(t, IsNewHighScore(421, 420))
	assert.False(t, IsNewHighScore(420, 420))
}
