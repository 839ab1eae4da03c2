package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/three-in-a-row/internal/core"
	"github.com/vovakirdan/three-in-a-row/internal/match3"
	"github.com/vovakirdan/three-in-a-row/internal/registry"
	"github.com/vovakirdan/three-in-a-row/internal/storage"
)

const recordTimeout = 5 * time.Second

// scoreRecordedMsg carries the result of saving a final score.
// round identifies the game it belongs to, so a reply that arrives after a
// restart is dropped.
type scoreRecordedMsg struct {
	round  int
	result storage.HighScoreResult
	err    error
}

// Model is the Bubble Tea model that runs one game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	scores     storage.HighScores
	logger     *log.Logger
	config     core.RuntimeConfig
	keys       KeyMap
	inputFrame core.InputFrame
	gameState  core.GameState
	quitOnBack bool
	quitting   bool
	backToMenu bool
	scoreSaved bool // score already recorded for the current game over
	round      int  // bumped on every restart
}

// NewModel creates a model for the given game. scores and logger may be nil.
func NewModel(game registry.Game, scores storage.HighScores, cfg core.RuntimeConfig, logger *log.Logger) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.Default()
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		scores:     scores,
		logger:     logger,
		config:     cfg,
		keys:       DefaultKeyMap(),
		inputFrame: core.NewInputFrame(),
	}
}

// Init resets the game and starts the tick loop.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()

	case scoreRecordedMsg:
		m.handleScoreRecorded(msg)
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	switch action := m.keys.Action(msg); action {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionBack:
		if m.gameState.GameOver || m.gameState.Paused {
			m.backToMenu = true
			if m.quitOnBack {
				return m, tea.Quit
			}
		}
	case core.ActionNone:
	default:
		m.inputFrame.Set(action)
	}
	return m, nil
}

// handleResize updates the screen. Games that can resize in place keep
// their state; others restart unless the round is already over.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(registry.Resizer); ok {
		r.Resize(msg.Width, msg.Height)
		return m, nil
	}
	if !m.gameState.GameOver {
		m.game.Reset(m.config)
		m.gameState = m.game.State()
	}
	return m, nil
}

func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.inputFrame.Has(core.ActionRestart) {
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.scoreSaved = false
		m.round++
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	if m.gameState.GameOver && !m.scoreSaved {
		m.scoreSaved = true
		if cmd := m.recordScore(); cmd != nil {
			return m, tea.Batch(tickCmd(m.config.TickRate), cmd)
		}
	}
	return m, tickCmd(m.config.TickRate)
}

// recordScore saves the final score in the background. Games that do not
// report a score key are not recorded.
func (m Model) recordScore() tea.Cmd {
	reporter, ok := m.game.(registry.ScoreReporter)
	if !ok || m.scores == nil || m.gameState.Score <= 0 {
		return nil
	}
	mode, difficulty := reporter.ScoreKey()
	final := match3.FinalScore{
		Mode:       match3.Mode(mode),
		Difficulty: match3.Difficulty(difficulty),
		Score:      m.gameState.Score,
	}
	scores, round := m.scores, m.round
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
		defer cancel()
		res, err := scores.RecordHighScore(ctx, final)
		return scoreRecordedMsg{round: round, result: res, err: err}
	}
}

func (m Model) handleScoreRecorded(msg scoreRecordedMsg) {
	if msg.err != nil {
		m.logger.Warn("could not record score", "error", msg.err)
		return
	}
	if msg.round != m.round {
		m.logger.Debug("dropping score reply from a previous game", "key", msg.result.Key)
		return
	}
	m.logger.Debug("score recorded",
		"key", msg.result.Key,
		"score", msg.result.Score,
		"previous", msg.result.Previous,
		"new", msg.result.IsNew,
	)
	if reporter, ok := m.game.(registry.ScoreReporter); ok {
		reporter.ReportHighScore(msg.result.Previous, msg.result.IsNew)
	}
}

// saveScreenshot writes the current screen as text to ~/.threerow/screenshots.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("screenshot failed", "error", err)
		return
	}
	dir := filepath.Join(home, ".threerow", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot failed", "error", err)
		return
	}

	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	if err := os.WriteFile(filepath.Join(dir, filename), []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "error", err)
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting reports whether the user asked to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu reports whether the user asked to return to the selector.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run plays one game until the user quits or goes back. It reports whether
// the user went back rather than quitting.
func Run(game registry.Game, scores storage.HighScores, cfg core.RuntimeConfig, logger *log.Logger) (bool, error) {
	model := NewModel(game, scores, cfg, logger)
	model.quitOnBack = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(Model)
	return ok && m.BackToMenu(), nil
}
