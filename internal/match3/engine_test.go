package match3

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T, g *Grid, moves, target int) *Engine {
	t.Helper()
	e, err := NewEngineWithGrid(movesSettings(t, moves, target), g, rand.New(rand.NewSource(7)))
	require.NoError(t, err)
	return e
}

func TestNewEngine(t *testing.T) {
	for _, d := range Difficulties {
		settings, err := Resolve(ModeMoves, d)
		require.NoError(t, err)
		e, err := NewEngine(settings, 99)
		require.NoError(t, err)
		assert.Equal(t, DefaultSize, e.Grid().Size())
		assert.Empty(t, FindAllMatches(e.Grid()))
		assert.Equal(t, 1, e.Session().Combo)
	}

	_, err := NewEngine(Settings{Mode: ModeMoves, Size: 8, ColorCount: 2, MoveLimit: 1, ScoreTarget: 1}, 1)
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
}

func TestAttemptSwapInvalidIsReversible(t *testing.T) {
	g := board(t, 0)
	e := newTestEngine(t, g, 30, 600)
	before := g.Clone()

	for _, m := range []Move{{At(0, 0), At(0, 1)}, {At(3, 3), At(4, 3)}, {At(7, 6), At(7, 7)}} {
		res, err := e.AttemptSwap(m.A, m.B)
		require.NoError(t, err)
		assert.False(t, res.Valid)
		assert.True(t, res.Adjacent)
		assert.Empty(t, res.Steps)
		assert.True(t, res.Grid.Equal(before))
	}
	assert.True(t, g.Equal(before))
	assert.Zero(t, e.Session().MovesUsed)
	assert.Zero(t, e.Session().Score)
}

func TestAttemptSwapNonAdjacent(t *testing.T) {
	g := swappable(t)
	e := newTestEngine(t, g, 30, 600)
	before := g.Clone()

	res, err := e.AttemptSwap(At(6, 2), At(7, 3))
	require.NoError(t, err)
	assert.False(t, res.Valid)
	assert.False(t, res.Adjacent)
	assert.True(t, g.Equal(before))
	assert.Zero(t, e.Session().MovesUsed)
}

func TestAttemptSwapOutOfBounds(t *testing.T) {
	e := newTestEngine(t, swappable(t), 30, 600)
	_, err := e.AttemptSwap(At(7, 7), At(8, 7))
	assert.ErrorIs(t, err, ErrInvalidCoordinate)
	_, err = e.AttemptSwap(At(-1, 0), At(0, 0))
	assert.ErrorIs(t, err, ErrInvalidCoordinate)
}

func TestAttemptSwapValid(t *testing.T) {
	e := newTestEngine(t, swappable(t), 30, 600)

	res, err := e.AttemptSwap(At(6, 2), At(7, 2))
	require.NoError(t, err)
	require.True(t, res.Valid)
	assert.Equal(t, Match{At(7, 0), At(7, 1), At(7, 2)}, res.Seed)
	require.NotEmpty(t, res.Steps)
	assert.Equal(t, res.Seed, res.Steps[0].Matched)
	assert.Equal(t, 10, res.Steps[0].Score)
	assert.Equal(t, 1, res.Combos[0])
	assert.Len(t, res.Combos, len(res.Steps))

	total := 0
	for i, st := range res.Steps {
		assert.Equal(t, i+1, st.Combo)
		total += st.Score
	}
	assert.Equal(t, total, res.ScoreDelta)
	assert.Equal(t, total, e.Session().Score)
	assert.Equal(t, 1, e.Session().MovesUsed)
	assert.Equal(t, 1, e.Session().Combo)
	assert.Equal(t, OutcomePlaying, res.Outcome)
	assert.Empty(t, FindAllMatches(res.Grid))
	assert.Zero(t, res.Grid.EmptyCount())
	assert.Equal(t, !HasPossibleMove(e.Grid()), res.Stalemate)
}

func TestAttemptSwapOutcomes(t *testing.T) {
	tests := []struct {
		name   string
		moves  int
		target int
		want   Outcome
	}{
		{"win", 30, 10, OutcomeWin},
		{"lose", 1, 10000, OutcomeLose},
		{"win checked before lose", 1, 10, OutcomeWin},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(t, swappable(t), tt.moves, tt.target)
			res, err := e.AttemptSwap(At(6, 2), At(7, 2))
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Outcome)
			assert.True(t, res.OutcomeFired)

			_, err = e.AttemptSwap(At(0, 0), At(0, 1))
			assert.ErrorIs(t, err, ErrGameOver)
		})
	}
}

func TestStepDrivenMatchesSynchronous(t *testing.T) {
	sync := newTestEngine(t, swappable(t), 30, 600)
	stepped := newTestEngine(t, swappable(t), 30, 600)
	stepped.RecordFrames = true

	want, err := sync.AttemptSwap(At(6, 2), At(7, 2))
	require.NoError(t, err)

	c, ok, err := stepped.BeginSwap(At(6, 2), At(7, 2))
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, stepped.InFlight())
	var steps []StepResult
	for {
		st := c.Step()
		if st.Settled {
			break
		}
		assert.NotEmpty(t, st.Frames)
		steps = append(steps, st)
	}
	fin, err := stepped.Finish(c)
	require.NoError(t, err)
	assert.False(t, stepped.InFlight())

	assert.Len(t, steps, len(want.Steps))
	assert.True(t, want.Grid.Equal(stepped.Grid()))
	assert.Equal(t, sync.Session().Score, stepped.Session().Score)
	assert.Equal(t, want.Stalemate, fin.Stalemate)
}

func TestBeginSwapConcurrent(t *testing.T) {
	e := newTestEngine(t, swappable(t), 30, 600)
	c, ok, err := e.BeginSwap(At(6, 2), At(7, 2))
	require.NoError(t, err)
	require.True(t, ok)

	_, _, err = e.BeginSwap(At(0, 0), At(0, 1))
	assert.ErrorIs(t, err, ErrConcurrentResolution)
	_, err = e.AttemptSwap(At(0, 0), At(0, 1))
	assert.ErrorIs(t, err, ErrConcurrentResolution)
	assert.ErrorIs(t, e.Reshuffle(), ErrConcurrentResolution)

	_, err = e.Finish(&Cascade{})
	assert.ErrorIs(t, err, ErrNoResolution)

	_, err = e.Finish(c)
	require.NoError(t, err)
	_, err = e.Finish(c)
	assert.ErrorIs(t, err, ErrNoResolution)
}

func TestAbortDropsCascade(t *testing.T) {
	e := newTestEngine(t, swappable(t), 30, 600)
	c, ok, err := e.BeginSwap(At(6, 2), At(7, 2))
	require.NoError(t, err)
	require.True(t, ok)
	c.Step()
	require.Equal(t, 2, e.Session().Combo)
	score := e.Session().Score

	e.Abort()
	assert.False(t, e.InFlight())
	assert.Equal(t, 1, e.Session().Combo)
	assert.Equal(t, score, e.Session().Score)
	assert.Empty(t, FindAllMatches(e.Grid()))
	assert.Zero(t, e.Grid().EmptyCount())
	_, err = e.Finish(c)
	assert.ErrorIs(t, err, ErrNoResolution)
}

func TestAbortLeavesPendingRunUnscored(t *testing.T) {
	e := newTestEngine(t, comboBoard(t), 30, 600)
	e.active = newCascade(e.grid, e.session, e.rng, nil, false)

	first := e.active.Step()
	require.Equal(t, 10, first.Score)
	require.NotEmpty(t, FindAllMatches(e.Grid()), "second run should be pending")

	e.Abort()
	assert.Equal(t, 1, e.Session().Combo)
	assert.Equal(t, 10, e.Session().Score)
	assert.Empty(t, FindAllMatches(e.Grid()))
	assert.Zero(t, e.Grid().EmptyCount())

	e.Abort()
	assert.Equal(t, 1, e.Session().Combo)
}

func TestNewEngineWithGridRejectsForeignColors(t *testing.T) {
	settings := movesSettings(t, 30, 600)
	settings.ColorCount = 4
	_, err := NewEngineWithGrid(settings, board(t, 4, At(0, 0)), rand.New(rand.NewSource(1)))
	assert.ErrorIs(t, err, ErrInvalidConfiguration)

	_, err = NewEngineWithGrid(settings, board(t, 0), rand.New(rand.NewSource(1)))
	assert.NoError(t, err)
}

func TestReshuffleBreaksStalemate(t *testing.T) {
	e := newTestEngine(t, board(t, 0), 30, 600)
	_, ok := e.Hint()
	require.False(t, ok)

	require.NoError(t, e.Reshuffle())
	_, ok = e.Hint()
	assert.True(t, ok)
	assert.Empty(t, FindAllMatches(e.Grid()))
}
