package autoplay

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/three-in-a-row/internal/match3"
)

func TestPlayMovesModeEnds(t *testing.T) {
	settings, err := match3.Resolve(match3.ModeMoves, match3.Easy)
	require.NoError(t, err)

	res, err := Play(settings, 1, Options{Reshuffle: true})
	require.NoError(t, err)

	assert.NotEqual(t, match3.OutcomePlaying, res.Outcome)
	assert.LessOrEqual(t, res.Moves, settings.MoveLimit)
	assert.Positive(t, res.Score)
	assert.GreaterOrEqual(t, res.Steps, res.Moves, "every valid move scores at least one step")
	if res.Outcome == match3.OutcomeLose {
		assert.Equal(t, settings.MoveLimit, res.Moves)
	}
}

func TestPlayEndlessStopsAtCap(t *testing.T) {
	settings, err := match3.Resolve(match3.ModeEndless, match3.Medium)
	require.NoError(t, err)

	res, err := Play(settings, 3, Options{MaxMoves: 25, Reshuffle: true})
	require.NoError(t, err)

	assert.Equal(t, 25, res.Moves)
	assert.Equal(t, match3.OutcomePlaying, res.Outcome)
	assert.False(t, res.Stuck)
}

func TestPlayIsDeterministic(t *testing.T) {
	settings, err := match3.Resolve(match3.ModeMoves, match3.Hard)
	require.NoError(t, err)

	a, err := Play(settings, 77, Options{Reshuffle: true})
	require.NoError(t, err)
	b, err := Play(settings, 77, Options{Reshuffle: true})
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestPlayRejectsBadSettings(t *testing.T) {
	_, err := Play(match3.Settings{Mode: match3.ModeMoves, Size: 3, ColorCount: 4, MoveLimit: 1, ScoreTarget: 1}, 1, Options{})
	assert.ErrorIs(t, err, match3.ErrInvalidConfiguration)
}

func TestRunMatchesSequentialPlay(t *testing.T) {
	settings, err := match3.Resolve(match3.ModeMoves, match3.Medium)
	require.NoError(t, err)
	seeds := Seeds(10, 8)

	results, err := Run(context.Background(), settings, seeds, Options{Workers: 3, Reshuffle: true})
	require.NoError(t, err)
	require.Len(t, results, len(seeds))

	for i, seed := range seeds {
		want, err := Play(settings, seed, Options{Reshuffle: true})
		require.NoError(t, err)
		assert.Equal(t, want, results[i], "seed %d", seed)
	}
}

func TestRunCanceled(t *testing.T) {
	settings, err := match3.Resolve(match3.ModeMoves, match3.Medium)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Run(ctx, settings, Seeds(1, 4), Options{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSummarize(t *testing.T) {
	results := []Result{
		{Seed: 1, Score: 300, Moves: 10, Outcome: match3.OutcomeLose, MaxCombo: 2},
		{Seed: 2, Score: 700, Moves: 20, Outcome: match3.OutcomeWin, MaxCombo: 4, Reshuffles: 1},
		{Seed: 3, Score: 500, Moves: 30, Outcome: match3.OutcomeLose, Stuck: true},
	}

	s := Summarize(results)
	assert.Equal(t, 3, s.Games)
	assert.Equal(t, 1, s.Wins)
	assert.Equal(t, 2, s.Losses)
	assert.Equal(t, 1, s.Stuck)
	assert.Equal(t, 500.0, s.MeanScore)
	assert.Equal(t, 500, s.MedianScore)
	assert.Equal(t, 700, s.BestScore)
	assert.Equal(t, int64(2), s.BestSeed)
	assert.Equal(t, 20.0, s.MeanMoves)
	assert.Equal(t, 4, s.MaxCombo)
	assert.Equal(t, 1, s.Reshuffles)

	assert.Equal(t, Summary{}, Summarize(nil))
}

func TestSeeds(t *testing.T) {
	assert.Equal(t, []int64{5, 6, 7}, Seeds(5, 3))
	assert.Empty(t, Seeds(5, 0))
}
