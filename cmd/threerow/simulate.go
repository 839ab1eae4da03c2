package main

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/three-in-a-row/internal/autoplay"
	"github.com/vovakirdan/three-in-a-row/internal/config"
)

var (
	flagGames    int
	flagMaxMoves int
	flagWorkers  int
	flagResults  bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Autoplay seeded games and report statistics",
	Long: `Play games headlessly, always taking the first hinted move, and
report win rate and score statistics. Game i uses seed --seed + i, so runs
are reproducible. Useful for tuning the difficulty table in a custom config.

Examples:
  threerow simulate --games 200
  threerow simulate --games 50 --difficulty hard --seed 1000
  threerow simulate --mode endless --max-moves 300 --json --results`,
	Args: cobra.NoArgs,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().StringVar(&flagMode, "mode", "", "Game mode: moves, endless")
	simulateCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty: easy, medium, hard")
	simulateCmd.Flags().IntVar(&flagGames, "games", 100, "Number of games")
	simulateCmd.Flags().IntVar(&flagMaxMoves, "max-moves", 500, "Move cap per game")
	simulateCmd.Flags().IntVar(&flagWorkers, "workers", 0, "Concurrent games (0 = GOMAXPROCS)")
	simulateCmd.Flags().BoolVar(&flagJSON, "json", false, "Print JSON")
	simulateCmd.Flags().BoolVar(&flagResults, "results", false, "Include per-game results")
}

type simulateReport struct {
	Mode       string            `json:"mode"`
	Difficulty string            `json:"difficulty"`
	FirstSeed  int64             `json:"first_seed"`
	Elapsed    string            `json:"elapsed"`
	Summary    autoplay.Summary  `json:"summary"`
	Results    []autoplay.Result `json:"results,omitempty"`
}

func runSimulate(cmd *cobra.Command, _ []string) error {
	if flagGames <= 0 {
		return fmt.Errorf("--games must be positive, got %d", flagGames)
	}
	sel, err := parseSelection()
	if err != nil {
		return err
	}
	settings, err := gameCfg.Settings(sel.Mode, sel.Difficulty)
	if err != nil {
		return err
	}

	workers := flagWorkers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	opts := autoplay.Options{
		MaxMoves:  flagMaxMoves,
		Reshuffle: gameCfg.Stalemate == config.StalemateReshuffle,
		Workers:   workers,
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	start := time.Now()
	logger.Info("simulating", "games", flagGames, "mode", sel.Mode, "difficulty", sel.Difficulty, "workers", workers)
	results, err := autoplay.Run(ctx, settings, autoplay.Seeds(flagSeed, flagGames), opts)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)
	summary := autoplay.Summarize(results)
	logger.Debug("simulation done", "elapsed", elapsed)

	if flagJSON {
		report := simulateReport{
			Mode:       string(sel.Mode),
			Difficulty: string(sel.Difficulty),
			FirstSeed:  flagSeed,
			Elapsed:    elapsed.Round(time.Millisecond).String(),
			Summary:    summary,
		}
		if flagResults {
			report.Results = results
		}
		return printJSON(report)
	}

	fmt.Printf("Simulated %d games (%s, %s) in %s\n\n", summary.Games, sel.Mode, sel.Difficulty, elapsed.Round(time.Millisecond))
	fmt.Printf("  Wins        %d (%.1f%%)\n", summary.Wins, percent(summary.Wins, summary.Games))
	fmt.Printf("  Losses      %d\n", summary.Losses)
	fmt.Printf("  Stuck       %d\n", summary.Stuck)
	fmt.Printf("  Mean score  %.1f\n", summary.MeanScore)
	fmt.Printf("  Median      %d\n", summary.MedianScore)
	fmt.Printf("  Best        %d (seed %d)\n", summary.BestScore, summary.BestSeed)
	fmt.Printf("  Mean moves  %.1f\n", summary.MeanMoves)
	fmt.Printf("  Max combo   x%d\n", summary.MaxCombo)
	fmt.Printf("  Reshuffles  %d\n", summary.Reshuffles)

	if flagResults {
		fmt.Println()
		fmt.Printf("  %-8s  %-7s  %-6s  %-5s  %s\n", "Seed", "Outcome", "Score", "Moves", "Combo")
		for _, r := range results {
			fmt.Printf("  %-8d  %-7s  %-6d  %-5d  x%d\n", r.Seed, r.Outcome, r.Score, r.Moves, r.MaxCombo)
		}
	}
	return nil
}

func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return 100 * float64(n) / float64(total)
}
