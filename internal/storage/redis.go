package storage

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vovakirdan/three-in-a-row/internal/match3"
)

// leaderboardSize bounds the per-key sorted set of recent top scores.
const leaderboardSize = 100

// recordScript stores ARGV[1] under KEYS[1] when it beats the current value
// and returns {previous, replaced}. It also adds the score to the
// leaderboard set KEYS[2] under member ARGV[2] and trims it to ARGV[3].
var recordScript = redis.NewScript(`
local prev = tonumber(redis.call('GET', KEYS[1]) or '0')
local score = tonumber(ARGV[1])
redis.call('ZADD', KEYS[2], score, ARGV[2])
redis.call('ZREMRANGEBYRANK', KEYS[2], 0, -tonumber(ARGV[3]) - 1)
if score > prev then
	redis.call('SET', KEYS[1], ARGV[1])
	return {prev, 1}
end
return {prev, 0}
`)

// RedisStore keeps best scores in Redis under the keys
// highscore_{mode}_{difficulty}, with a bounded leaderboard per key.
type RedisStore struct {
	rdb *redis.Client
	now func() time.Time
}

var _ HighScores = (*RedisStore)(nil)

// NewRedisStore wraps an existing client.
func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb, now: time.Now}
}

// OpenRedis connects to addr and verifies the connection.
func OpenRedis(ctx context.Context, addr string) (*RedisStore, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("storage: cannot reach redis at %s: %w", addr, err)
	}
	return NewRedisStore(rdb), nil
}

func leaderboardKey(key string) string {
	return "leaderboard_" + key
}

// HighScore returns the stored best score, or 0 when the key is absent.
func (s *RedisStore) HighScore(ctx context.Context, mode match3.Mode, difficulty match3.Difficulty) (int, error) {
	v, err := s.rdb.Get(ctx, match3.HighScoreKey(mode, difficulty)).Int()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot read high score: %w", err)
	}
	return v, nil
}

// RecordHighScore compares and sets the best score atomically.
func (s *RedisStore) RecordHighScore(ctx context.Context, final match3.FinalScore) (HighScoreResult, error) {
	key := final.Key()
	res := HighScoreResult{Key: key, Score: final.Score}

	member := strconv.FormatInt(s.now().UnixNano(), 10)
	out, err := recordScript.Run(ctx, s.rdb,
		[]string{key, leaderboardKey(key)},
		final.Score, member, leaderboardSize,
	).Slice()
	if err != nil {
		return res, fmt.Errorf("storage: cannot record high score: %w", err)
	}
	if len(out) != 2 {
		return res, fmt.Errorf("storage: unexpected script reply %v", out)
	}
	prev, _ := out[0].(int64)
	replaced, _ := out[1].(int64)
	res.Previous = int(prev)
	res.IsNew = replaced == 1
	return res, nil
}

// TopScores lists the leaderboard for the pair, highest first.
func (s *RedisStore) TopScores(ctx context.Context, mode match3.Mode, difficulty match3.Difficulty, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	key := leaderboardKey(match3.HighScoreKey(mode, difficulty))
	zs, err := s.rdb.ZRevRangeWithScores(ctx, key, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("storage: cannot read leaderboard: %w", err)
	}

	entries := make([]ScoreEntry, 0, len(zs))
	for _, z := range zs {
		e := ScoreEntry{Mode: mode, Difficulty: difficulty, Score: int(z.Score)}
		if member, ok := z.Member.(string); ok {
			if nanos, err := strconv.ParseInt(member, 10, 64); err == nil {
				e.ID = nanos
				e.CreatedAt = time.Unix(0, nanos)
			}
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// Close closes the client.
func (s *RedisStore) Close() error {
	return s.rdb.Close()
}
