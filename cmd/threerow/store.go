package main

import (
	"context"
	"time"

	"github.com/vovakirdan/three-in-a-row/internal/storage"
)

// openScores opens Redis when --redis is set and SQLite otherwise.
func openScores() (storage.HighScores, error) {
	if flagRedis != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		store, err := storage.OpenRedis(ctx, flagRedis)
		if err != nil {
			return nil, err
		}
		logger.Debug("using redis scores", "addr", flagRedis)
		return store, nil
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return nil, err
	}
	logger.Debug("using sqlite scores", "path", flagDBPath)
	return store, nil
}

// openScoresOrWarn keeps the game playable when storage is unavailable.
func openScoresOrWarn() storage.HighScores {
	scores, err := openScores()
	if err != nil {
		logger.Warn("could not open scores, playing without high scores", "error", err)
		return nil
	}
	return scores
}

func closeScores(scores storage.HighScores) {
	if scores == nil {
		return
	}
	if err := scores.Close(); err != nil {
		logger.Warn("could not close scores", "error", err)
	}
}
