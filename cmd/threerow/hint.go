package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/three-in-a-row/internal/match3"
)

var (
	flagJSON bool
	flagAll  bool
)

var hintCmd = &cobra.Command{
	Use:   "hint",
	Short: "Print a seeded board and its first legal move",
	Long: `Generate the opening board for a seed and print the first legal
swap found by the hint finder (row by row, right neighbor before the one
below). Colors print as letters starting at 'a'.

Examples:
  threerow hint --seed 42
  threerow hint --seed 42 --difficulty hard --all
  threerow hint --seed 7 --json`,
	Args: cobra.NoArgs,
	RunE: runHint,
}

func init() {
	hintCmd.Flags().StringVar(&flagMode, "mode", "", "Game mode: moves, endless")
	hintCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty: easy, medium, hard")
	hintCmd.Flags().BoolVar(&flagJSON, "json", false, "Print JSON")
	hintCmd.Flags().BoolVar(&flagAll, "all", false, "List every legal move")
}

type hintReport struct {
	Seed  int64         `json:"seed"`
	Board [][]int       `json:"board"`
	Hint  *match3.Move  `json:"hint"`
	Moves []match3.Move `json:"moves,omitempty"`
}

func runHint(_ *cobra.Command, _ []string) error {
	sel, err := parseSelection()
	if err != nil {
		return err
	}
	settings, err := gameCfg.Settings(sel.Mode, sel.Difficulty)
	if err != nil {
		return err
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	engine, err := match3.NewEngine(settings, seed)
	if err != nil {
		return err
	}

	report := hintReport{Seed: seed, Board: engine.Grid().Colors()}
	if mv, ok := engine.Hint(); ok {
		report.Hint = &mv
	}
	if flagAll {
		report.Moves = match3.PossibleMoves(engine.Grid())
	}

	if flagJSON {
		return printJSON(report)
	}

	fmt.Printf("Seed %d (%s, %s)\n\n", seed, sel.Mode, sel.Difficulty)
	fmt.Print(engine.Grid())
	fmt.Println()
	if report.Hint == nil {
		fmt.Println("No legal move.")
		return nil
	}
	fmt.Printf("Hint: swap %s with %s\n", report.Hint.A, report.Hint.B)
	for _, mv := range report.Moves {
		fmt.Printf("  %s - %s\n", mv.A, mv.B)
	}
	return nil
}
