package tui

import (
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/three-in-a-row/internal/core"
)

// terminalColors maps core colors to ANSI 256 codes.
var terminalColors = map[core.Color]lipgloss.Color{
	core.ColorRed:       lipgloss.Color("9"),
	core.ColorGreen:     lipgloss.Color("10"),
	core.ColorYellow:    lipgloss.Color("11"),
	core.ColorBlue:      lipgloss.Color("12"),
	core.ColorMagenta:   lipgloss.Color("13"),
	core.ColorCyan:      lipgloss.Color("14"),
	core.ColorWhite:     lipgloss.Color("15"),
	core.ColorOrange:    lipgloss.Color("208"),
	core.ColorGray:      lipgloss.Color("245"),
	core.ColorHighlight: lipgloss.Color("57"),
}

type colorPair struct {
	fg, bg core.Color
}

// styleCache is shared by every SSH session.
var (
	styleMu    sync.Mutex
	styleCache = map[colorPair]lipgloss.Style{}
)

func styleFor(fg, bg core.Color) lipgloss.Style {
	styleMu.Lock()
	defer styleMu.Unlock()

	key := colorPair{fg, bg}
	if s, ok := styleCache[key]; ok {
		return s
	}
	s := lipgloss.NewStyle()
	if c, ok := terminalColors[fg]; ok {
		s = s.Foreground(c)
	}
	if c, ok := terminalColors[bg]; ok {
		s = s.Background(c)
	}
	styleCache[key] = s
	return s
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Adjacent cells with the same colors share one styled run.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			start := s.GetCell(x, y)

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Fg != start.Fg || cell.Bg != start.Bg {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			if start.Fg == core.ColorDefault && start.Bg == core.ColorDefault {
				sb.WriteString(run.String())
				continue
			}
			sb.WriteString(styleFor(start.Fg, start.Bg).Render(run.String()))
		}
	}
	return sb.String()
}
