// Package storage persists high scores per (mode, difficulty) key.
// SQLite keeps the full score history locally; Redis keeps best scores for
// deployments where several game servers share one scoreboard.
package storage

import (
	"context"
	"time"

	"github.com/vovakirdan/three-in-a-row/internal/match3"
)

// GameID tags rows written by this game.
const GameID = "threerow"

// HighScoreResult is the outcome of recording a final score.
type HighScoreResult struct {
	Key      string
	Score    int
	Previous int
	IsNew    bool
}

// ScoreEntry is a single recorded score.
type ScoreEntry struct {
	ID         int64
	Mode       match3.Mode
	Difficulty match3.Difficulty
	Score      int
	CreatedAt  time.Time
}

// HighScores is the persistence contract used by the platform.
type HighScores interface {
	// HighScore returns the best score for the pair, or 0 if none exists.
	HighScore(ctx context.Context, mode match3.Mode, difficulty match3.Difficulty) (int, error)
	// RecordHighScore stores a final score and reports whether it beat the previous best.
	RecordHighScore(ctx context.Context, final match3.FinalScore) (HighScoreResult, error)
	// TopScores lists the best recorded scores for the pair, highest first.
	TopScores(ctx context.Context, mode match3.Mode, difficulty match3.Difficulty, limit int) ([]ScoreEntry, error)
	Close() error
}

// BoardRow is one line of the scoreboard.
type BoardRow struct {
	Mode       match3.Mode
	Difficulty match3.Difficulty
	Key        string
	Best       int
}

// Scoreboard reads the best score of every (mode, difficulty) pair in
// display order.
func Scoreboard(ctx context.Context, hs HighScores) ([]BoardRow, error) {
	rows := make([]BoardRow, 0, len(match3.Modes)*len(match3.Difficulties))
	for _, mode := range match3.Modes {
		for _, d := range match3.Difficulties {
			best, err := hs.HighScore(ctx, mode, d)
			if err != nil {
				return nil, err
			}
			rows = append(rows, BoardRow{Mode: mode, Difficulty: d, Key: match3.HighScoreKey(mode, d), Best: best})
		}
	}
	return rows, nil
}
