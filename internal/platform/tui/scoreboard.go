package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/three-in-a-row/internal/storage"
)

const historyLimit = 10

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Back key.Binding
	Quit key.Binding
}

// ShortHelp implements help.KeyMap.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Back, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Back, k.Quit}}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b", "tab"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel shows the best score of every (mode, difficulty) pair and
// the recent top scores of the highlighted one.
type ScoreboardModel struct {
	scores    storage.HighScores
	rows      []storage.BoardRow
	history   []storage.ScoreEntry
	loadErr   error
	table     table.Model
	help      help.Model
	keys      ScoreboardKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates a scoreboard. scores may be nil.
func NewScoreboardModel(scores storage.HighScores, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		scores: scores,
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.load()
	return m
}

func (m *ScoreboardModel) createTable() table.Model {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Mode", Width: 9},
			{Title: "Difficulty", Width: 11},
			{Title: "Best", Width: 8},
		}),
		table.WithFocused(true),
		table.WithHeight(8),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

func (m *ScoreboardModel) load() {
	if m.scores == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
	defer cancel()

	rows, err := storage.Scoreboard(ctx, m.scores)
	if err != nil {
		m.loadErr = err
		return
	}
	m.rows = rows

	tableRows := make([]table.Row, len(rows))
	for i, r := range rows {
		best := "-"
		if r.Best > 0 {
			best = fmt.Sprintf("%d", r.Best)
		}
		tableRows[i] = table.Row{string(r.Mode), string(r.Difficulty), best}
	}
	m.table.SetRows(tableRows)
	m.loadHistory()
}

// loadHistory reads the top scores of the highlighted row.
func (m *ScoreboardModel) loadHistory() {
	m.history = nil
	i := m.table.Cursor()
	if m.scores == nil || i < 0 || i >= len(m.rows) {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
	defer cancel()

	r := m.rows[i]
	entries, err := m.scores.TopScores(ctx, r.Mode, r.Difficulty, historyLimit)
	if err != nil {
		m.loadErr = err
		return
	}
	m.history = entries
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			m.loadHistory()
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("HIGH SCORES"), m.width))
	b.WriteString("\n\n")

	panel := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	switch {
	case m.scores == nil:
		b.WriteString(centerText(emptyStyle.Render("Score storage is not available."), m.width))
	case m.loadErr != nil:
		b.WriteString(centerText(emptyStyle.Render("Could not load scores: "+m.loadErr.Error()), m.width))
	default:
		body := lipgloss.JoinHorizontal(lipgloss.Top,
			panel.Render(m.table.View()),
			"  ",
			panel.Render(m.renderHistory()),
		)
		for _, line := range strings.Split(body, "\n") {
			b.WriteString(centerText(line, m.width))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render(m.help.View(m.keys)))
	return b.String()
}

var emptyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true)

func (m ScoreboardModel) renderHistory() string {
	if len(m.history) == 0 {
		return emptyStyle.Render("No scores recorded yet.\nPlay a game to set a high score!")
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%-4s  %-8s  %s\n", "Rank", "Score", "Date"))
	for i, e := range m.history {
		date := "-"
		if !e.CreatedAt.IsZero() {
			date = e.CreatedAt.Format("Jan 02 15:04")
		}
		b.WriteString(fmt.Sprintf("#%-3d  %-8d  %s\n", i+1, e.Score, date))
	}
	return strings.TrimRight(b.String(), "\n")
}

// IsGoingBack reports whether the user wants to return to the selector.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting reports whether the user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen and reports whether the user
// went back rather than quitting.
func RunScoreboard(scores storage.HighScores, width, height int) (bool, error) {
	p := tea.NewProgram(NewScoreboardModel(scores, width, height), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
