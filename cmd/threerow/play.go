package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/three-in-a-row/internal/core"
	"github.com/vovakirdan/three-in-a-row/internal/games/threerow"
	"github.com/vovakirdan/three-in-a-row/internal/match3"
	"github.com/vovakirdan/three-in-a-row/internal/platform/tui"
	"github.com/vovakirdan/three-in-a-row/internal/registry"
	"github.com/vovakirdan/three-in-a-row/internal/storage"
)

var (
	flagMode       string
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play Three in a Row",
	Long: `Start the game. Without --mode or --difficulty a selector lets you
pick both, and you return to it after each game.

Modes:
  moves    - reach the target score within the move limit
  endless  - no limit, play for the high score

Difficulties:
  easy     - 3 colors, 40 moves, target 500
  medium   - 4 colors, 30 moves, target 600
  hard     - 5 colors, 25 moves, target 750

Controls:
  Arrows/WASD  - Move cursor
  Enter/Space  - Select a token, then a neighbor to swap
  X            - Cancel selection
  H            - Show a hint
  P            - Pause
  R            - Restart
  Esc          - Back to the selector (when paused or over)
  Q/Ctrl+C     - Quit

Examples:
  threerow play
  threerow play --mode endless
  threerow play --difficulty hard --seed 42`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagMode, "mode", "", "Game mode: moves, endless")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty: easy, medium, hard")
}

func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// parseSelection reads --mode and --difficulty, defaulting the one left out.
func parseSelection() (tui.Selection, error) {
	sel := tui.Selection{Mode: match3.ModeMoves, Difficulty: match3.Medium}
	if flagMode != "" {
		mode, err := match3.ParseMode(flagMode)
		if err != nil {
			return sel, err
		}
		sel.Mode = mode
	}
	if flagDifficulty != "" {
		d, err := match3.ParseDifficulty(flagDifficulty)
		if err != nil {
			return sel, err
		}
		sel.Difficulty = d
	}
	return sel, nil
}

// createGame builds a game through the registry.
func createGame(sel tui.Selection) (registry.Game, error) {
	threerow.SetDifficulty(sel.Difficulty)
	id := threerow.IDMoves
	if sel.Mode == match3.ModeEndless {
		id = threerow.IDEndless
	}
	return registry.Create(id)
}

func runPlay(_ *cobra.Command, _ []string) error {
	cfg := runtimeConfig()
	scores := openScoresOrWarn()
	defer closeScores(scores)

	if flagMode != "" || flagDifficulty != "" {
		sel, err := parseSelection()
		if err != nil {
			return err
		}
		_, err = playOnce(sel, scores, cfg)
		return err
	}

	for {
		result, err := tui.RunSelector(scores, gameCfg.Presets(), cfg)
		if err != nil {
			return err
		}
		cfg = result.Config

		switch {
		case result.WantsScoreboard:
			back, err := tui.RunScoreboard(scores, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				return err
			}
			if !back {
				return nil
			}
			continue
		case result.Quit:
			return nil
		}

		back, err := playOnce(*result.Selection, scores, cfg)
		if err != nil {
			return err
		}
		if !back {
			return nil
		}
	}
}

func playOnce(sel tui.Selection, scores storage.HighScores, cfg core.RuntimeConfig) (bool, error) {
	game, err := createGame(sel)
	if err != nil {
		return false, fmt.Errorf("cannot create game: %w", err)
	}
	logger.Debug("starting game", "id", game.ID(), "difficulty", sel.Difficulty)
	return tui.Run(game, scores, cfg, logger)
}
