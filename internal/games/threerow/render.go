package threerow

import (
	"fmt"
	"unicode/utf8"

	"github.com/vovakirdan/three-in-a-row/internal/core"
	"github.com/vovakirdan/three-in-a-row/internal/match3"
)

const (
	cellWidth = 3
	hudHeight = 4
	minWidth  = 44
)

// layoutSize returns the smallest screen that fits a board of the given size.
func layoutSize(size int) (w, h int) {
	return max(size*cellWidth+2, minWidth), hudHeight + size + 2 + 3
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.err != nil {
		g.drawOverlay(dst, dst.Width()/2, dst.Height()/2, "ERROR", g.err.Error())
		return
	}
	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	size := g.engine.Grid().Size()
	boardW := size*cellWidth + 2
	boardH := size + 2
	boardX := (dst.Width() - boardW) / 2
	boardY := hudHeight

	g.renderHUD(dst, boardX, boardW)
	g.renderBoard(dst, boardX, boardY)
	g.renderFooter(dst, boardY+boardH)
	g.renderOverlays(dst, boardX+boardW/2, boardY+boardH/2)
}

func (g *Game) renderTooSmall(dst *core.Screen) {
	y := dst.Height() / 2
	dst.DrawTextCentered(y, "Window too small", core.ColorDefault)
	dst.DrawTextCentered(y+1, "Please resize terminal", core.ColorGray)
}

func (g *Game) renderHUD(dst *core.Screen, boardX, boardW int) {
	s := g.engine.Session()
	dst.DrawTextCentered(0, g.Title(), core.ColorWhite)

	dst.DrawText(boardX, 1, fmt.Sprintf("Score: %d", s.Score))
	var info string
	if s.Mode == match3.ModeEndless {
		info = "Endless"
	} else {
		info = fmt.Sprintf("Moves: %d/%d", s.MovesUsed, s.MoveLimit)
	}
	drawRight(dst, boardX+boardW, 1, info)

	if s.Mode == match3.ModeMoves {
		dst.DrawText(boardX, 2, fmt.Sprintf("Target: %d", s.ScoreTarget))
	}
	dst.DrawTextColored(boardX+(boardW-len(s.Difficulty))/2, 2, string(s.Difficulty), core.ColorGray)
	if g.combo > 1 && g.anim.active() {
		drawRight(dst, boardX+boardW, 2, fmt.Sprintf("Combo x%d +%d", g.combo, g.lastGain))
	}
}

func drawRight(dst *core.Screen, right, y int, text string) {
	dst.DrawText(right-utf8.RuneCountInString(text), y, text)
}

// glyph picks the token symbol; power-ups get their own shapes.
func glyph(c match3.Cell) rune {
	switch c.PowerUp {
	case match3.PowerUpRow:
		return '↔'
	case match3.PowerUpColumn:
		return '↕'
	case match3.PowerUpMega:
		return '◆'
	}
	return '●'
}

func (g *Game) renderBoard(dst *core.Screen, boardX, boardY int) {
	grid := g.anim.display
	if grid == nil {
		grid = g.engine.Grid()
	}
	size := grid.Size()
	dst.DrawBox(core.NewRect(boardX, boardY, size*cellWidth+2, size+2), core.ColorGray)

	var hint match3.Match
	if g.hint != nil {
		hint = match3.Match{g.hint.A, g.hint.B}
	}
	selected, hasSelected := g.selector.Selected()

	for r := range size {
		for c := range size {
			pos := match3.At(r, c)
			x := boardX + 1 + c*cellWidth
			y := boardY + 1 + r

			cell, _ := grid.At(pos)
			switch {
			case cell.IsEmpty():
				dst.SetColored(x+1, y, '·', core.ColorGray)
			case g.anim.highlight.Contains(pos):
				dst.SetColored(x+1, y, '*', core.ColorWhite)
			default:
				dst.SetColored(x+1, y, glyph(cell), core.PaletteColor(cell.Color))
			}

			switch {
			case pos == g.cursor:
				dst.SetColored(x, y, '[', core.ColorWhite)
				dst.SetColored(x+2, y, ']', core.ColorWhite)
			case hint.Contains(pos):
				dst.SetColored(x, y, '(', core.ColorYellow)
				dst.SetColored(x+2, y, ')', core.ColorYellow)
			}
			if hasSelected && pos == selected {
				for i := range cellWidth {
					dst.Highlight(x+i, y, core.ColorHighlight)
				}
			}
		}
	}
}

func (g *Game) renderFooter(dst *core.Screen, y int) {
	if g.message != "" {
		dst.DrawTextCentered(y, g.message, core.ColorYellow)
	}
	dst.DrawTextCentered(y+1, g.Controls(), core.ColorGray)
}

func (g *Game) renderOverlays(dst *core.Screen, centerX, centerY int) {
	if g.paused {
		g.drawOverlay(dst, centerX, centerY, "PAUSED", "Press P to resume")
		return
	}
	if !g.gameOver {
		return
	}

	score := fmt.Sprintf("Score: %d", g.engine.Session().Score)
	lines := []string{"GAME OVER", score}
	switch {
	case g.stuck:
		lines[0] = "NO MOVES LEFT"
	case g.outcome == match3.OutcomeWin:
		lines[0] = "YOU WIN!"
	case g.outcome == match3.OutcomeLose:
		lines[0] = "OUT OF MOVES"
	}
	if g.report != nil {
		if g.report.isNew {
			lines = append(lines, "New high score!")
		} else {
			lines = append(lines, fmt.Sprintf("Best: %d", g.report.previous))
		}
	}
	lines = append(lines, "Press R to restart")
	g.drawOverlay(dst, centerX, centerY, lines...)
}

// drawOverlay draws a centered box of text over the board.
func (g *Game) drawOverlay(dst *core.Screen, centerX, centerY int, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, utf8.RuneCountInString(line))
	}

	boxW := maxLen + 4
	boxH := len(lines) + 2
	box := core.NewRect(centerX-boxW/2, centerY-boxH/2, boxW, boxH)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box, core.ColorWhite)

	for i, line := range lines {
		x := centerX - utf8.RuneCountInString(line)/2
		dst.DrawText(x, box.Y+1+i, line)
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows: Move | Space: Select | H: Hint | P: Pause | R: Restart"
}
