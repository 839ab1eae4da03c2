package threerow

import (
	"errors"

	"github.com/vovakirdan/three-in-a-row/internal/match3"
)

type phase int

const (
	phaseIdle phase = iota
	phaseSwap
	phaseRevert
	phaseCascade
)

var phaseNames = [...]string{"idle", "swap", "revert", "cascade"}

func (p phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return "unknown"
}

// frame is one board picture held on screen for a number of ticks.
type frame struct {
	grid      *match3.Grid
	highlight match3.Match
	ticks     int
}

// animator plays back a swap and its cascade. The engine resolves each step
// at once; the animator only decides how long each intermediate board stays
// visible.
type animator struct {
	phase     phase
	display   *match3.Grid
	highlight match3.Match
	queue     []frame
	wait      int

	from, to match3.Coord
	cascade  *match3.Cascade
}

func (a *animator) active() bool {
	return a.phase != phaseIdle
}

func (a *animator) push(g *match3.Grid, highlight match3.Match, ticks int) {
	a.queue = append(a.queue, frame{grid: g, highlight: highlight, ticks: ticks})
}

// startSwap shows the two tokens exchanged, then asks the engine whether
// the swap stands.
func (g *Game) startSwap(a, b match3.Coord) {
	swapped := g.engine.Grid().Clone()
	_ = swapped.Swap(a, b)

	g.anim.phase = phaseSwap
	g.anim.from, g.anim.to = a, b
	g.anim.queue = g.anim.queue[:0]
	g.anim.wait = 0
	g.anim.push(swapped, nil, g.runtime.Ticks(g.cfg.Pacing.Swap()))
	g.pump()
}

// advance consumes one tick of the current frame.
func (g *Game) advance() {
	if g.anim.wait > 0 {
		g.anim.wait--
	}
	g.pump()
}

// pump moves through frames until one needs to stay on screen. With zero
// pacing the whole swap resolves inside a single call.
func (g *Game) pump() {
	for g.anim.wait == 0 && g.anim.active() {
		if len(g.anim.queue) > 0 {
			f := g.anim.queue[0]
			g.anim.queue = g.anim.queue[1:]
			g.anim.display = f.grid
			g.anim.highlight = f.highlight
			g.anim.wait = f.ticks
			continue
		}

		switch g.anim.phase {
		case phaseSwap:
			g.resolveSwap()
		case phaseRevert:
			g.anim.phase = phaseIdle
		case phaseCascade:
			if g.anim.cascade.Settled() {
				c := g.anim.cascade
				g.anim.cascade = nil
				g.anim.phase = phaseIdle
				g.anim.highlight = nil
				g.finish(c)
				continue
			}
			g.queueStep()
		}
	}
}

func (g *Game) resolveSwap() {
	c, ok, err := g.engine.BeginSwap(g.anim.from, g.anim.to)
	if err != nil {
		g.anim.phase = phaseIdle
		g.selector.Reset()
		if !errors.Is(err, match3.ErrGameOver) {
			g.err = err
		}
		g.gameOver = true
		return
	}
	if !ok {
		if !g.completeSelection(false) {
			return
		}
		g.anim.phase = phaseRevert
		g.anim.push(g.engine.Grid().Clone(), nil, g.runtime.Ticks(g.cfg.Pacing.Swap()))
		return
	}
	g.anim.phase = phaseCascade
	if !g.completeSelection(true) {
		return
	}
	g.anim.cascade = c
	g.queueStep()
}

// completeSelection closes the selector's validating state. A selector out
// of step with the animation is an internal error: any cascade is dropped and
// the game stops with the error on screen.
func (g *Game) completeSelection(valid bool) bool {
	if err := g.selector.Complete(valid); err != nil {
		g.engine.Abort()
		g.selector.Reset()
		g.anim = animator{display: g.engine.Grid().Clone()}
		g.err = err
		g.gameOver = true
		return false
	}
	return true
}

// queueStep runs one cascade step and queues its frames: the matched board
// first, then each gravity pass, then the refilled board.
func (g *Game) queueStep() {
	res := g.anim.cascade.Step()
	if res.Settled {
		g.anim.push(g.engine.Grid().Clone(), nil, g.runtime.Ticks(g.cfg.Pacing.Settle()))
		return
	}

	g.combo = res.Combo
	g.lastGain = res.Score
	matchTicks := g.runtime.Ticks(g.cfg.Pacing.Match())
	gravityTicks := g.runtime.Ticks(g.cfg.Pacing.Gravity())
	for i, f := range res.Frames {
		switch i {
		case 0:
			g.anim.push(f, res.Matched, matchTicks)
		default:
			g.anim.push(f, nil, gravityTicks)
		}
	}
	if len(res.Frames) == 0 {
		g.anim.push(g.engine.Grid().Clone(), nil, gravityTicks)
	}
}
