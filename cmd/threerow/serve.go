package main

import (
	"fmt"
	"net"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/automaxprocs/maxprocs"

	"github.com/vovakirdan/three-in-a-row/internal/games/threerow"
	"github.com/vovakirdan/three-in-a-row/internal/platform/tui"
	"github.com/vovakirdan/three-in-a-row/internal/registry"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH server",
	Long: `Start an SSH server so players can connect and play.

Each connection gets its own session with the mode selector. All sessions
share one score store: the local SQLite database, or Redis with --redis so
several servers can share a scoreboard.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.threerow/host_key

Examples:
  threerow serve
  threerow serve --ssh :2222
  threerow serve --redis localhost:6379

Players connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) error {
	undo, err := maxprocs.Set(maxprocs.Logger(logger.Infof))
	if err != nil {
		logger.Warn("could not set GOMAXPROCS", "error", err)
	}
	defer undo()

	scores := openScoresOrWarn()
	defer closeScores(scores)

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = flagHostKey
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	cfg.TickRate = flagFPS

	newGame := func(sel tui.Selection) registry.Game {
		return threerow.NewGame(sel.Mode, sel.Difficulty, gameCfg)
	}
	server, err := tui.NewSSHServer(cfg, scores, gameCfg.Presets(), newGame, logger.WithPrefix("threerow-ssh"))
	if err != nil {
		return fmt.Errorf("cannot create server: %w", err)
	}

	if _, port, err := net.SplitHostPort(cfg.Address); err == nil {
		logger.Info("players can connect with", "cmd", "ssh localhost -p "+port)
	}
	return server.ListenAndServe()
}
