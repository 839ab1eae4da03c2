// Package threerow is the playable three-in-a-row game: a cursor-driven
// front end over the match3 engine that paces swaps and cascades by ticks.
package threerow

import (
	"errors"
	"time"

	"github.com/vovakirdan/three-in-a-row/internal/config"
	"github.com/vovakirdan/three-in-a-row/internal/core"
	"github.com/vovakirdan/three-in-a-row/internal/match3"
	"github.com/vovakirdan/three-in-a-row/internal/registry"
)

const (
	IDMoves   = "threerow"
	IDEndless = "threerow_endless"

	messageDuration = 2 * time.Second
)

// configPath and difficulty are set from the CLI before games are created.
var (
	configPath string
	difficulty = match3.Medium
)

// SetConfigPath sets a custom config path for games created by the registry.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficulty sets the difficulty of games created by the registry.
func SetDifficulty(d match3.Difficulty) {
	difficulty = d
}

func init() {
	registry.Register(IDMoves, func() registry.Game { return New() })
	registry.Register(IDEndless, func() registry.Game { return NewEndless() })
}

// Game implements registry.Game.
type Game struct {
	mode       match3.Mode
	difficulty match3.Difficulty
	cfg        config.ThreeRowConfig
	haveCfg    bool
	runtime    core.RuntimeConfig

	engine   *match3.Engine
	selector *match3.Selector
	tick     uint64

	cursor match3.Coord
	anim   animator

	hint      *match3.Move
	hintTicks int
	idleTicks int

	combo        int
	lastGain     int
	message      string
	messageTicks int

	paused   bool
	tooSmall bool
	gameOver bool
	stuck    bool
	outcome  match3.Outcome
	report   *highScoreReport
	err      error
}

type highScoreReport struct {
	previous int
	isNew    bool
}

// New creates a moves-mode game using the package-level difficulty and config path.
func New() *Game {
	return &Game{mode: match3.ModeMoves, difficulty: difficulty}
}

// NewEndless creates an endless game using the package-level difficulty and config path.
func NewEndless() *Game {
	return &Game{mode: match3.ModeEndless, difficulty: difficulty}
}

// NewGame creates a game with explicit settings, independent of package state.
func NewGame(mode match3.Mode, d match3.Difficulty, cfg config.ThreeRowConfig) *Game {
	return &Game{mode: mode, difficulty: d, cfg: cfg, haveCfg: true}
}

func (g *Game) ID() string {
	if g.mode == match3.ModeEndless {
		return IDEndless
	}
	return IDMoves
}

func (g *Game) Title() string {
	if g.mode == match3.ModeEndless {
		return "Three in a Row (Endless)"
	}
	return "Three in a Row"
}

// Reset starts a new board. A configuration or engine error leaves the game
// over with the error shown on screen.
func (g *Game) Reset(rt core.RuntimeConfig) {
	g.runtime = rt
	if !g.haveCfg {
		cfg, err := config.LoadThreeRow(configPath)
		if err != nil {
			cfg = config.DefaultThreeRowConfig()
		}
		g.cfg = cfg
	}

	g.tick = 0
	g.cursor = match3.At(0, 0)
	g.anim = animator{}
	g.hint = nil
	g.hintTicks, g.idleTicks = 0, 0
	g.combo, g.lastGain = 1, 0
	g.message, g.messageTicks = "", 0
	g.paused, g.gameOver, g.stuck = false, false, false
	g.outcome = match3.OutcomePlaying
	g.report = nil
	g.err = nil

	settings, err := g.cfg.Settings(g.mode, g.difficulty)
	if err == nil {
		g.engine, err = match3.NewEngine(settings, rt.Seed)
	}
	if err != nil {
		g.err = err
		g.gameOver = true
		return
	}
	g.engine.RecordFrames = true
	g.selector = match3.NewSelector(settings.Size)
	g.cursor = match3.At(settings.Size/2, settings.Size/2)
	g.anim.display = g.engine.Grid().Clone()
	g.checkScreenSize()
}

// Resize implements registry.Resizer.
func (g *Game) Resize(width, height int) {
	g.runtime.ScreenW, g.runtime.ScreenH = width, height
	if g.engine != nil {
		g.checkScreenSize()
	}
}

func (g *Game) checkScreenSize() {
	w, h := layoutSize(g.engine.Grid().Size())
	g.tooSmall = g.runtime.ScreenW < w || g.runtime.ScreenH < h
}

// Step advances one tick. Pausing stops input intake only: a swap already
// in flight keeps animating until its cascade settles.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++
	if g.tooSmall || g.err != nil {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && !g.gameOver {
		g.paused = !g.paused
	}

	if g.anim.active() {
		g.advance()
	}
	if g.messageTicks > 0 {
		g.messageTicks--
		if g.messageTicks == 0 {
			g.message = ""
		}
	}
	if g.paused || g.gameOver {
		return core.StepResult{State: g.State()}
	}

	if in.Empty() {
		g.idle()
	} else {
		g.idleTicks = 0
		g.handleInput(in)
	}
	return core.StepResult{State: g.State()}
}

func (g *Game) handleInput(in core.InputFrame) {
	size := g.engine.Grid().Size()
	switch {
	case in.Has(core.ActionUp):
		g.cursor.Row = core.Clamp(g.cursor.Row-1, 0, size-1)
	case in.Has(core.ActionDown):
		g.cursor.Row = core.Clamp(g.cursor.Row+1, 0, size-1)
	case in.Has(core.ActionLeft):
		g.cursor.Col = core.Clamp(g.cursor.Col-1, 0, size-1)
	case in.Has(core.ActionRight):
		g.cursor.Col = core.Clamp(g.cursor.Col+1, 0, size-1)
	}

	if g.anim.active() {
		return
	}
	switch {
	case in.Has(core.ActionHint):
		g.showHint()
	case in.Has(core.ActionCancel):
		g.selector.Cancel()
	case in.Has(core.ActionSelect):
		g.selectAt(g.cursor)
	}
}

func (g *Game) selectAt(c match3.Coord) {
	click, err := g.selector.Click(c)
	if err != nil {
		return
	}
	if click.Kind == match3.ClickSwap {
		g.hint, g.hintTicks = nil, 0
		g.startSwap(click.From, click.To)
	}
}

// idle counts inactivity and reveals a hint once the delay has passed.
func (g *Game) idle() {
	if g.anim.active() || !g.cfg.Hint.Enabled {
		return
	}
	if g.hint != nil {
		g.hintTicks--
		if g.hintTicks <= 0 {
			g.hint = nil
			g.idleTicks = 0
		}
		return
	}
	g.idleTicks++
	if g.idleTicks >= g.runtime.Ticks(g.cfg.Hint.Delay()) {
		g.showHint()
	}
}

func (g *Game) showHint() {
	mv, ok := g.engine.Hint()
	if !ok {
		return
	}
	g.hint = &mv
	g.hintTicks = g.runtime.Ticks(g.cfg.Hint.Show())
}

// finish closes a settled cascade and applies the outcome or stalemate policy.
func (g *Game) finish(c *match3.Cascade) {
	res, err := g.engine.Finish(c)
	if err != nil {
		g.err = err
		g.gameOver = true
		return
	}
	g.combo = 1
	g.anim.display = g.engine.Grid().Clone()

	if res.OutcomeFired {
		g.gameOver = true
		g.outcome = res.Outcome
		return
	}
	if !res.Stalemate {
		return
	}
	if g.cfg.Stalemate == config.StalemateStuck {
		g.stuck = true
		g.gameOver = true
		return
	}
	if err := g.engine.Reshuffle(); err != nil {
		if errors.Is(err, match3.ErrNoMovesAvailable) {
			g.stuck = true
			g.gameOver = true
			return
		}
		g.err = err
		g.gameOver = true
		return
	}
	g.anim.display = g.engine.Grid().Clone()
	g.flash("No moves left - board reshuffled")
}

func (g *Game) flash(msg string) {
	g.message = msg
	g.messageTicks = g.runtime.Ticks(messageDuration)
}

// ScoreKey implements registry.ScoreReporter.
func (g *Game) ScoreKey() (string, string) {
	return string(g.mode), string(g.difficulty)
}

// ReportHighScore implements registry.ScoreReporter.
func (g *Game) ReportHighScore(previous int, isNew bool) {
	g.report = &highScoreReport{previous: previous, isNew: isNew}
}

// Final returns the result of the current session.
func (g *Game) Final() match3.FinalScore {
	if g.engine == nil {
		return match3.FinalScore{Mode: g.mode, Difficulty: g.difficulty}
	}
	return g.engine.Session().Final()
}

func (g *Game) State() core.GameState {
	score := 0
	if g.engine != nil {
		score = g.engine.Session().Score
	}
	return core.GameState{
		Score:    score,
		GameOver: g.gameOver,
		Paused:   g.paused || g.tooSmall,
	}
}
