package threerow

import "github.com/vovakirdan/three-in-a-row/internal/match3"

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StateAnimating   GameStateType = "animating"
	StatePaused      GameStateType = "paused"
	StateGameOver    GameStateType = "game_over"
	StateStuck       GameStateType = "stuck"
	StatePausedSmall GameStateType = "paused_small_window"
	StateError       GameStateType = "error"
)

// Snapshot captures the game state for determinism tests and replays.
type Snapshot struct {
	Tick       uint64
	Mode       string
	Difficulty string
	Score      int
	MovesUsed  int
	MovesLeft  int // -1 in endless mode
	Combo      int
	Board      [][]int
	Cursor     match3.Coord
	Selected   *match3.Coord
	Phase      string
	State      GameStateType
	Outcome    string
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:       g.tick,
		Mode:       string(g.mode),
		Difficulty: string(g.difficulty),
		Cursor:     g.cursor,
		Phase:      g.anim.phase.String(),
		Outcome:    g.outcome.String(),
		State:      g.stateType(),
	}
	if g.engine == nil {
		return snap
	}

	s := g.engine.Session()
	snap.Score = s.Score
	snap.MovesUsed = s.MovesUsed
	snap.MovesLeft = s.MovesLeft()
	snap.Combo = g.combo
	snap.Board = g.engine.Grid().Colors()
	if c, ok := g.selector.Selected(); ok {
		snap.Selected = &c
	}
	return snap
}

func (g *Game) stateType() GameStateType {
	switch {
	case g.err != nil:
		return StateError
	case g.tooSmall:
		return StatePausedSmall
	case g.stuck:
		return StateStuck
	case g.gameOver:
		return StateGameOver
	case g.paused:
		return StatePaused
	case g.anim.active():
		return StateAnimating
	}
	return StatePlaying
}
