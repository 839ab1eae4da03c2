// Package autoplay plays games headlessly by always taking the first hinted
// move. It backs the simulate command and doubles as a soak test of the
// engine.
package autoplay

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/three-in-a-row/internal/match3"
)

// Result summarizes one autoplayed game.
type Result struct {
	Seed       int64          `json:"seed"`
	Mode       match3.Mode    `json:"mode"`
	Difficulty string         `json:"difficulty"`
	Score      int            `json:"score"`
	Moves      int            `json:"moves"`
	Steps      int            `json:"cascade_steps"`
	MaxCombo   int            `json:"max_combo"`
	PowerUps   int            `json:"power_ups"`
	Reshuffles int            `json:"reshuffles"`
	Outcome    match3.Outcome `json:"outcome"`
	Stuck      bool           `json:"stuck"`
}

// Options controls a simulation.
type Options struct {
	// MaxMoves caps each game; endless games need it. Zero means 500.
	MaxMoves int
	// Reshuffle applies a reshuffle on stalemate instead of stopping.
	Reshuffle bool
	// Workers bounds concurrent games. Zero means one per game.
	Workers int
}

const defaultMaxMoves = 500

// Play runs one game to its end, to a stalemate it cannot recover from, or
// to MaxMoves.
func Play(settings match3.Settings, seed int64, opts Options) (Result, error) {
	res := Result{Seed: seed, Mode: settings.Mode, Difficulty: string(settings.Difficulty)}

	e, err := match3.NewEngine(settings, seed)
	if err != nil {
		return res, err
	}
	maxMoves := opts.MaxMoves
	if maxMoves <= 0 {
		maxMoves = defaultMaxMoves
	}

	for res.Moves < maxMoves {
		mv, ok := e.Hint()
		if !ok {
			if !opts.Reshuffle {
				res.Stuck = true
				break
			}
			if err := e.Reshuffle(); err != nil {
				if errors.Is(err, match3.ErrNoMovesAvailable) {
					res.Stuck = true
					break
				}
				return res, err
			}
			res.Reshuffles++
			continue
		}

		sr, err := e.AttemptSwap(mv.A, mv.B)
		if err != nil {
			return res, fmt.Errorf("autoplay: seed %d move %d: %w", seed, res.Moves+1, err)
		}
		if !sr.Valid {
			return res, fmt.Errorf("autoplay: seed %d: hint %v-%v rejected", seed, mv.A, mv.B)
		}
		res.Moves++
		res.Steps += len(sr.Steps)
		for _, st := range sr.Steps {
			res.MaxCombo = max(res.MaxCombo, st.Combo)
			if st.PowerUp != nil {
				res.PowerUps++
			}
		}
		if sr.OutcomeFired {
			break
		}
	}

	res.Score = e.Session().Score
	res.Outcome = e.Session().Outcome()
	return res, nil
}

// Run plays one game per seed concurrently and returns results in seed
// order. The first error cancels the remaining games.
func Run(ctx context.Context, settings match3.Settings, seeds []int64, opts Options) ([]Result, error) {
	results := make([]Result, len(seeds))

	g, ctx := errgroup.WithContext(ctx)
	if opts.Workers > 0 {
		g.SetLimit(opts.Workers)
	}
	for i, seed := range seeds {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := Play(settings, seed, opts)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Summary aggregates a batch of results.
type Summary struct {
	Games       int     `json:"games"`
	Wins        int     `json:"wins"`
	Losses      int     `json:"losses"`
	Stuck       int     `json:"stuck"`
	MeanScore   float64 `json:"mean_score"`
	MedianScore int     `json:"median_score"`
	BestScore   int     `json:"best_score"`
	BestSeed    int64   `json:"best_seed"`
	MeanMoves   float64 `json:"mean_moves"`
	MaxCombo    int     `json:"max_combo"`
	Reshuffles  int     `json:"reshuffles"`
}

// Summarize aggregates results.
func Summarize(results []Result) Summary {
	s := Summary{Games: len(results)}
	if len(results) == 0 {
		return s
	}

	scores := make([]int, 0, len(results))
	totalScore, totalMoves := 0, 0
	for i, r := range results {
		switch r.Outcome {
		case match3.OutcomeWin:
			s.Wins++
		case match3.OutcomeLose:
			s.Losses++
		}
		if r.Stuck {
			s.Stuck++
		}
		if i == 0 || r.Score > s.BestScore {
			s.BestScore, s.BestSeed = r.Score, r.Seed
		}
		s.MaxCombo = max(s.MaxCombo, r.MaxCombo)
		s.Reshuffles += r.Reshuffles
		totalScore += r.Score
		totalMoves += r.Moves
		scores = append(scores, r.Score)
	}

	slices.Sort(scores)
	s.MedianScore = scores[len(scores)/2]
	s.MeanScore = float64(totalScore) / float64(len(results))
	s.MeanMoves = float64(totalMoves) / float64(len(results))
	return s
}

// Seeds returns n consecutive seeds starting at first.
func Seeds(first int64, n int) []int64 {
	seeds := make([]int64, n)
	for i := range seeds {
		seeds[i] = first + int64(i)
	}
	return seeds
}
