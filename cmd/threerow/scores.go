package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/three-in-a-row/internal/storage"
)

var flagClear bool

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores",
	Long: `Display the best score of every mode and difficulty. With --mode
and --difficulty, list the top 10 scores of that pair instead.

Examples:
  threerow scores
  threerow scores --mode moves --difficulty hard
  threerow scores --redis localhost:6379`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().StringVar(&flagMode, "mode", "", "Game mode: moves, endless")
	scoresCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty: easy, medium, hard")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the history of the selected pair (SQLite only)")
}

func runScores(_ *cobra.Command, _ []string) error {
	scores, err := openScores()
	if err != nil {
		return fmt.Errorf("cannot open scores: %w", err)
	}
	defer closeScores(scores)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if flagMode == "" && flagDifficulty == "" {
		return printScoreboard(ctx, scores)
	}
	return printTopScores(ctx, scores)
}

func printScoreboard(ctx context.Context, scores storage.HighScores) error {
	rows, err := storage.Scoreboard(ctx, scores)
	if err != nil {
		return err
	}

	fmt.Println("High Scores - Three in a Row")
	fmt.Println()
	fmt.Printf("  %-8s  %-10s  %s\n", "Mode", "Difficulty", "Best")
	fmt.Printf("  %-8s  %-10s  %s\n", "----", "----------", "----")
	for _, r := range rows {
		best := "-"
		if r.Best > 0 {
			best = fmt.Sprintf("%d", r.Best)
		}
		fmt.Printf("  %-8s  %-10s  %s\n", r.Mode, r.Difficulty, best)
	}
	return nil
}

func printTopScores(ctx context.Context, scores storage.HighScores) error {
	sel, err := parseSelection()
	if err != nil {
		return err
	}

	if flagClear {
		store, ok := scores.(*storage.Store)
		if !ok {
			return errors.New("--clear is only supported with the SQLite store")
		}
		if err := store.ClearScores(ctx, sel.Mode, sel.Difficulty); err != nil {
			return err
		}
		fmt.Printf("Cleared scores for %s / %s\n", sel.Mode, sel.Difficulty)
		return nil
	}

	entries, err := scores.TopScores(ctx, sel.Mode, sel.Difficulty, 10)
	if err != nil {
		return err
	}

	fmt.Printf("High Scores - %s / %s\n", sel.Mode, sel.Difficulty)
	fmt.Println()
	if len(entries) == 0 {
		fmt.Println("No scores recorded yet.")
		return nil
	}

	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")
	for i, e := range entries {
		fmt.Printf("  %-4d  %-10d  %s\n", i+1, e.Score, e.CreatedAt.Format("2006-01-02 15:04"))
	}

	if store, ok := scores.(*storage.Store); ok {
		stats, err := store.GetGameStats(ctx, sel.Mode, sel.Difficulty)
		if err == nil {
			fmt.Println()
			fmt.Printf("Games: %d  Best: %d  Average: %.0f  Last played: %s\n",
				stats.GamesCount, stats.HighScore, stats.AvgScore, stats.LastPlayed.Format("2006-01-02 15:04"))
		}
	}
	return nil
}
