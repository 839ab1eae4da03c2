// threerow is a terminal match-3 game: swap neighboring tokens to line up
// three or more of a color, chain cascades, and chase the score target.
//
// Usage:
//
//	threerow play            - Pick a mode and difficulty, then play
//	threerow serve           - Start SSH server for remote play
//	threerow scores          - Show best scores per mode and difficulty
//	threerow hint            - Print a seeded board and its first hint
//	threerow simulate        - Autoplay seeded games and report statistics
//	threerow list            - List registered games
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible boards
//	--db <path>         - Set database path (default: ~/.threerow/scores.db)
//	--redis <addr>      - Keep scores in Redis instead of SQLite
//	--config <path>     - Custom game config YAML
//	--log-level <level> - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/three-in-a-row/internal/config"
	"github.com/vovakirdan/three-in-a-row/internal/games/threerow"
)

var (
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagRedis    string
	flagConfig   string
	flagLogLevel string
)

var (
	logger  *log.Logger
	gameCfg config.ThreeRowConfig
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "threerow",
	Short: "Three in a Row - a match-3 puzzle for your terminal",
	Long: `Three in a Row is a terminal match-3 game. Swap two neighboring
tokens to line up three or more of the same color. Cleared tokens fall,
new ones drop in, and every follow-up match in a cascade scores more.

Available commands:
  play      - Pick a mode and difficulty, then play
  serve     - Start SSH server for remote play
  scores    - Show best scores
  hint      - Print a seeded board and its first legal move
  simulate  - Autoplay seeded games and report statistics
  list      - Show registered games

Examples:
  threerow play
  threerow play --mode endless --difficulty hard
  threerow serve --ssh :2222
  threerow simulate --games 100 --difficulty easy --json`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.threerow/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagRedis, "redis", "", "Redis address (host:port) for shared high scores")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(hintCmd)
	rootCmd.AddCommand(simulateCmd)
}

// setup configures logging and loads the game config for every command.
func setup(_ *cobra.Command, _ []string) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "threerow",
		Level:           level,
	})

	gameCfg, err = config.LoadThreeRow(flagConfig)
	if err != nil {
		return err
	}
	threerow.SetConfigPath(flagConfig)
	logger.Debug("config loaded",
		"board", gameCfg.Board.Size,
		"stalemate", gameCfg.Stalemate,
		"path", flagConfig,
	)
	return nil
}
