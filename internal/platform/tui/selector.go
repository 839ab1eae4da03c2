package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/three-in-a-row/internal/core"
	"github.com/vovakirdan/three-in-a-row/internal/match3"
	"github.com/vovakirdan/three-in-a-row/internal/storage"
)

// Selection is the mode and difficulty picked in the selector.
type Selection struct {
	Mode       match3.Mode
	Difficulty match3.Difficulty
}

var modeLabels = map[match3.Mode]string{
	match3.ModeMoves:   "Moves - reach the target score",
	match3.ModeEndless: "Endless - play without limits",
}

var titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))

// SelectorModel lets the user choose a mode, then a difficulty.
type SelectorModel struct {
	config         core.RuntimeConfig
	keys           KeyMap
	presets        map[match3.Difficulty]match3.Preset
	best           map[string]int
	modeCursor     int
	diffCursor     int
	inDifficulty   bool
	selection      *Selection
	openScoreboard bool
	quitting       bool
}

// NewSelectorModel creates a selector showing the given difficulty table,
// or the built-in one when presets is nil. Best scores are read from scores
// when it is not nil.
func NewSelectorModel(scores storage.HighScores, presets map[match3.Difficulty]match3.Preset, cfg core.RuntimeConfig) SelectorModel {
	if presets == nil {
		presets = match3.Presets
	}
	m := SelectorModel{
		config:  cfg,
		keys:    DefaultKeyMap(),
		presets: presets,
		best:    map[string]int{},
		// medium is the default difficulty
		diffCursor: 1,
	}
	if scores != nil {
		ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
		defer cancel()
		if rows, err := storage.Scoreboard(ctx, scores); err == nil {
			for _, r := range rows {
				m.best[r.Key] = r.Best
			}
		}
	}
	return m
}

// Init initializes the model.
func (m SelectorModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m SelectorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
	}
	return m, nil
}

func (m SelectorModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keys.MenuAction(msg)
	if action == MenuActionQuit {
		m.quitting = true
		return m, tea.Quit
	}
	if action == MenuActionScores {
		m.openScoreboard = true
		return m, tea.Quit
	}

	if !m.inDifficulty {
		switch action {
		case MenuActionUp:
			m.modeCursor = core.Clamp(m.modeCursor-1, 0, len(match3.Modes)-1)
		case MenuActionDown:
			m.modeCursor = core.Clamp(m.modeCursor+1, 0, len(match3.Modes)-1)
		case MenuActionSelect:
			m.inDifficulty = true
		case MenuActionBack:
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	switch action {
	case MenuActionUp:
		m.diffCursor = core.Clamp(m.diffCursor-1, 0, len(match3.Difficulties)-1)
	case MenuActionDown:
		m.diffCursor = core.Clamp(m.diffCursor+1, 0, len(match3.Difficulties)-1)
	case MenuActionSelect:
		m.selection = &Selection{
			Mode:       match3.Modes[m.modeCursor],
			Difficulty: match3.Difficulties[m.diffCursor],
		}
		return m, tea.Quit
	case MenuActionBack:
		m.inDifficulty = false
	}
	return m, nil
}

// View renders the selector.
func (m SelectorModel) View() string {
	if m.quitting {
		return ""
	}
	width := m.config.ScreenW
	mode := match3.Modes[m.modeCursor]

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("T H R E E   I N   A   R O W"), width))
	b.WriteString("\n\n")

	if !m.inDifficulty {
		b.WriteString(centerText("Select game mode:", width))
		b.WriteString("\n\n")
		for i, md := range match3.Modes {
			b.WriteString(centerText(cursorLine(i == m.modeCursor, modeLabels[md]), width))
			b.WriteString("\n")
		}
	} else {
		b.WriteString(centerText(fmt.Sprintf("%s - select difficulty:", mode), width))
		b.WriteString("\n\n")
		for i, d := range match3.Difficulties {
			p := m.presets[d]
			line := fmt.Sprintf("%-6s %d colors", d, p.Colors)
			if mode == match3.ModeMoves {
				line += fmt.Sprintf(", %d moves, target %d", p.Moves, p.Target)
			}
			if best := m.best[match3.HighScoreKey(mode, d)]; best > 0 {
				line += fmt.Sprintf("  (best %d)", best)
			}
			b.WriteString(centerText(cursorLine(i == m.diffCursor, line), width))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Select  |  Esc: Back  |  Tab: Scores  |  Q: Quit", width))
	return b.String()
}

func cursorLine(active bool, text string) string {
	if active {
		return "> " + text
	}
	return "  " + text
}

// centerText centers text within the given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// Selected returns the selection, or nil if the user has not chosen yet.
func (m SelectorModel) Selected() *Selection {
	return m.selection
}

// IsQuitting reports whether the user quit.
func (m SelectorModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard reports whether the user asked for the scoreboard.
func (m SelectorModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the runtime config with the latest window size.
func (m SelectorModel) Config() core.RuntimeConfig {
	return m.config
}

// SelectorResult holds the result of running the selector.
type SelectorResult struct {
	Selection       *Selection
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunSelector runs the mode and difficulty selector.
func RunSelector(scores storage.HighScores, presets map[match3.Difficulty]match3.Preset, cfg core.RuntimeConfig) (SelectorResult, error) {
	p := tea.NewProgram(NewSelectorModel(scores, presets, cfg), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return SelectorResult{Config: cfg}, err
	}
	m, ok := final.(SelectorModel)
	if !ok {
		return SelectorResult{Config: cfg, Quit: true}, nil
	}

	result := SelectorResult{Config: m.Config(), Selection: m.Selected()}
	switch {
	case m.WantsScoreboard():
		result.WantsScoreboard = true
	case m.IsQuitting(), result.Selection == nil:
		result.Quit = true
	}
	return result, nil
}
