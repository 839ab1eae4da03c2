package match3

import (
	"fmt"
	"math/rand"
)

const maxReshuffles = 100

// SwapResult is the full outcome of a synchronously resolved swap.
type SwapResult struct {
	Valid        bool
	Adjacent     bool
	Seed         Match
	Steps        []StepResult
	ScoreDelta   int
	Combos       []int
	Grid         *Grid
	Outcome      Outcome
	OutcomeFired bool
	Stalemate    bool
}

// Resolution is reported once a cascade has been finished.
type Resolution struct {
	Outcome      Outcome
	OutcomeFired bool
	Stalemate    bool
}

// Engine owns one session, its board and its random source.
// It is not safe for concurrent use; at most one resolution is in flight.
type Engine struct {
	session *Session
	grid    *Grid
	rng     Rand
	active  *Cascade

	// RecordFrames makes cascades keep intermediate boards for animation.
	RecordFrames bool
}

// NewEngine generates a matchless board from a seeded source.
func NewEngine(settings Settings, seed int64) (*Engine, error) {
	return NewEngineWithRand(settings, rand.New(rand.NewSource(seed)))
}

// NewEngineWithRand generates a matchless board from rng. The first board
// always has at least one legal move.
func NewEngineWithRand(settings Settings, rng Rand) (*Engine, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	g, err := NewGrid(settings.Size, settings.ColorCount, rng)
	if err != nil {
		return nil, err
	}
	e := &Engine{session: NewSession(settings), grid: g, rng: rng}
	if !HasPossibleMove(g) {
		if err := e.Reshuffle(); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// NewEngineWithGrid starts a session on an existing board. The board size
// overrides settings.Size; every token color must be below settings.ColorCount.
func NewEngineWithGrid(settings Settings, g *Grid, rng Rand) (*Engine, error) {
	if g == nil {
		return nil, fmt.Errorf("%w: nil board", ErrInvalidConfiguration)
	}
	settings.Size = g.Size()
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	if err := g.checkColors(settings.ColorCount); err != nil {
		return nil, err
	}
	return &Engine{session: NewSession(settings), grid: g, rng: rng}, nil
}

// Grid returns the live board. Callers must not mutate it.
func (e *Engine) Grid() *Grid {
	return e.grid
}

// Session returns the live session counters.
func (e *Engine) Session() *Session {
	return e.session
}

// InFlight reports whether a cascade has been started but not finished.
func (e *Engine) InFlight() bool {
	return e.active != nil
}

// BeginSwap validates and applies a swap. On success it consumes a move and
// returns the cascade to drive step by step; Finish must be called once it
// settles. An invalid or non-adjacent swap returns false and leaves the board
// unchanged.
func (e *Engine) BeginSwap(a, b Coord) (*Cascade, bool, error) {
	if e.active != nil {
		return nil, false, ErrConcurrentResolution
	}
	if e.session.Terminal() {
		return nil, false, ErrGameOver
	}
	seed, ok, err := TrySwap(e.grid, a, b)
	if err != nil || !ok {
		return nil, false, err
	}
	e.session.RecordMove()
	e.active = newCascade(e.grid, e.session, e.rng, seed, e.RecordFrames)
	return e.active, true, nil
}

// Finish completes the in-flight cascade, running any remaining steps, then
// evaluates the session outcome and checks the board for a stalemate.
func (e *Engine) Finish(c *Cascade) (Resolution, error) {
	if c == nil || c != e.active {
		return Resolution{}, ErrNoResolution
	}
	for !c.Settled() {
		c.Step()
	}
	e.active = nil
	outcome, fired := e.session.Evaluate()
	return Resolution{
		Outcome:      outcome,
		OutcomeFired: fired,
		Stalemate:    !HasPossibleMove(e.grid),
	}, nil
}

// AttemptSwap resolves a swap synchronously, cascade included.
func (e *Engine) AttemptSwap(a, b Coord) (SwapResult, error) {
	res := SwapResult{Adjacent: a.Adjacent(b)}
	before := e.session.Score

	c, ok, err := e.BeginSwap(a, b)
	if err != nil {
		return res, err
	}
	if !ok {
		res.Grid = e.grid.Clone()
		res.Outcome = e.session.Outcome()
		return res, nil
	}

	res.Valid = true
	res.Seed = c.Seed()
	res.Steps = c.Run()
	for _, st := range res.Steps {
		res.Combos = append(res.Combos, st.Combo)
	}
	fin, err := e.Finish(c)
	if err != nil {
		return res, err
	}
	res.ScoreDelta = e.session.Score - before
	res.Outcome = fin.Outcome
	res.OutcomeFired = fin.OutcomeFired
	res.Stalemate = fin.Stalemate
	res.Grid = e.grid.Clone()
	return res, nil
}

// Hint returns the first legal matching swap on the current board.
func (e *Engine) Hint() (Move, bool) {
	return FindPossibleMove(e.grid)
}

// Reshuffle replaces the board with a fresh matchless board that has at
// least one legal move. Power-ups on the old board are lost.
func (e *Engine) Reshuffle() error {
	if e.active != nil {
		return ErrConcurrentResolution
	}
	for range maxReshuffles {
		g, err := NewGrid(e.grid.size, e.session.ColorCount, e.rng)
		if err != nil {
			return err
		}
		if HasPossibleMove(g) {
			copy(e.grid.cells, g.cells)
			return nil
		}
	}
	return ErrNoMovesAvailable
}

// Abort drops an in-flight cascade. Matches left on the board are cleared
// without scoring and the combo returns to 1, so the next swap starts from a
// stable board.
func (e *Engine) Abort() {
	if e.active != nil {
		e.active.drain()
		e.active = nil
	}
	e.session.Combo = 1
}
