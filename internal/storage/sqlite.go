package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // pure Go driver, no CGO

	"github.com/vovakirdan/three-in-a-row/internal/match3"
)

const sqliteTime = "2006-01-02 15:04:05"

// Store keeps score history in SQLite.
type Store struct {
	db *sql.DB
}

var _ HighScores = (*Store)(nil)

// GameStats aggregates the history of one (mode, difficulty) pair.
type GameStats struct {
	Key        string
	GamesCount int
	HighScore  int
	AvgScore   float64
	TotalScore int64
	LastPlayed time.Time
}

// Open creates or opens a database at dbPath, creating parent directories
// and the schema as needed. A leading ~ expands to the home directory.
func Open(dbPath string) (*Store, error) {
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// One writer keeps RecordHighScore's read-then-insert atomic.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}
	return store, nil
}

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			mode TEXT NOT NULL,
			difficulty TEXT NOT NULL,
			score INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_scores_key ON scores(game_id, mode, difficulty);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(game_id, mode, difficulty, score DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveScore appends a final score to the history and returns its row ID.
func (s *Store) SaveScore(ctx context.Context, final match3.FinalScore) (int64, error) {
	return saveScore(ctx, s.db, final)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func saveScore(ctx context.Context, db execer, final match3.FinalScore) (int64, error) {
	result, err := db.ExecContext(ctx,
		"INSERT INTO scores (game_id, mode, difficulty, score) VALUES (?, ?, ?, ?)",
		GameID, string(final.Mode), string(final.Difficulty), final.Score,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// HighScore returns the best score for the pair, or 0 when none exists.
func (s *Store) HighScore(ctx context.Context, mode match3.Mode, difficulty match3.Difficulty) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRowContext(ctx,
		"SELECT MAX(score) FROM scores WHERE game_id = ? AND mode = ? AND difficulty = ?",
		GameID, string(mode), string(difficulty),
	).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// RecordHighScore stores the score and compares it with the best score
// recorded before it, inside one transaction.
func (s *Store) RecordHighScore(ctx context.Context, final match3.FinalScore) (HighScoreResult, error) {
	res := HighScoreResult{Key: final.Key(), Score: final.Score}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return res, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var prev sql.NullInt64
	err = tx.QueryRowContext(ctx,
		"SELECT MAX(score) FROM scores WHERE game_id = ? AND mode = ? AND difficulty = ?",
		GameID, string(final.Mode), string(final.Difficulty),
	).Scan(&prev)
	if err != nil {
		return res, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	if prev.Valid {
		res.Previous = int(prev.Int64)
	}

	if _, err := saveScore(ctx, tx, final); err != nil {
		return res, err
	}
	if err := tx.Commit(); err != nil {
		return res, fmt.Errorf("storage: cannot commit score: %w", err)
	}
	res.IsNew = match3.IsNewHighScore(final.Score, res.Previous)
	return res, nil
}

// TopScores lists the best scores for the pair, highest first.
// A non-positive limit defaults to 10.
func (s *Store) TopScores(ctx context.Context, mode match3.Mode, difficulty match3.Difficulty, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, mode, difficulty, score, created_at
		 FROM scores
		 WHERE game_id = ? AND mode = ? AND difficulty = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		GameID, string(mode), string(difficulty), limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var m, d string
		var createdAt any
		if err := rows.Scan(&e.ID, &m, &d, &e.Score, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Mode, e.Difficulty = match3.Mode(m), match3.Difficulty(d)
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// ClearScores deletes the history of one pair.
func (s *Store) ClearScores(ctx context.Context, mode match3.Mode, difficulty match3.Difficulty) error {
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM scores WHERE game_id = ? AND mode = ? AND difficulty = ?",
		GameID, string(mode), string(difficulty),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// GetGameStats aggregates the history of one pair.
func (s *Store) GetGameStats(ctx context.Context, mode match3.Mode, difficulty match3.Difficulty) (*GameStats, error) {
	stats := &GameStats{Key: match3.HighScoreKey(mode, difficulty)}

	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0), COALESCE(SUM(score), 0)
		 FROM scores WHERE game_id = ? AND mode = ? AND difficulty = ?`,
		GameID, string(mode), string(difficulty),
	).Scan(&stats.GamesCount, &stats.HighScore, &stats.AvgScore, &stats.TotalScore)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get game stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRowContext(ctx,
		`SELECT created_at FROM scores
		 WHERE game_id = ? AND mode = ? AND difficulty = ?
		 ORDER BY created_at DESC, id DESC LIMIT 1`,
		GameID, string(mode), string(difficulty),
	).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}
	return stats, nil
}

// parseTime accepts both driver-native times and SQLite text timestamps.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(sqliteTime, t); err == nil {
			return parsed
		}
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
