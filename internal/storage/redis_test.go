package storage

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/three-in-a-row/internal/match3"
)

func newTestRedis(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	store := NewRedisStore(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	var tick int64
	store.now = func() time.Time {
		tick++
		return time.Unix(0, tick)
	}
	t.Cleanup(func() { store.Close() })
	return store, mr
}

func TestRedisRecordHighScore(t *testing.T) {
	store, mr := newTestRedis(t)
	ctx := context.Background()

	best, err := store.HighScore(ctx, match3.ModeMoves, match3.Hard)
	require.NoError(t, err)
	assert.Zero(t, best)

	res, err := store.RecordHighScore(ctx, final(match3.ModeMoves, match3.Hard, 500))
	require.NoError(t, err)
	assert.Equal(t, HighScoreResult{Key: "highscore_moves_hard", Score: 500, Previous: 0, IsNew: true}, res)

	res, err = store.RecordHighScore(ctx, final(match3.ModeMoves, match3.Hard, 400))
	require.NoError(t, err)
	assert.Equal(t, 500, res.Previous)
	assert.False(t, res.IsNew)

	res, err = store.RecordHighScore(ctx, final(match3.ModeMoves, match3.Hard, 500))
	require.NoError(t, err)
	assert.False(t, res.IsNew, "ties do not replace the best score")

	res, err = store.RecordHighScore(ctx, final(match3.ModeMoves, match3.Hard, 900))
	require.NoError(t, err)
	assert.True(t, res.IsNew)

	raw, err := mr.Get("highscore_moves_hard")
	require.NoError(t, err)
	assert.Equal(t, "900", raw)

	best, err = store.HighScore(ctx, match3.ModeMoves, match3.Hard)
	require.NoError(t, err)
	assert.Equal(t, 900, best)
}

func TestRedisTopScores(t *testing.T) {
	store, _ := newTestRedis(t)
	ctx := context.Background()

	for _, s := range []int{30, 90, 10, 60} {
		_, err := store.RecordHighScore(ctx, final(match3.ModeEndless, match3.Easy, s))
		require.NoError(t, err)
	}

	top, err := store.TopScores(ctx, match3.ModeEndless, match3.Easy, 3)
	require.NoError(t, err)
	require.Len(t, top, 3)
	assert.Equal(t, []int{90, 60, 30}, []int{top[0].Score, top[1].Score, top[2].Score})
	assert.False(t, top[0].CreatedAt.IsZero())

	empty, err := store.TopScores(ctx, match3.ModeMoves, match3.Easy, 0)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestRedisHighScoreCorruptValue(t *testing.T) {
	store, mr := newTestRedis(t)
	require.NoError(t, mr.Set("highscore_moves_easy", "not-a-number"))

	_, err := store.HighScore(context.Background(), match3.ModeMoves, match3.Easy)
	assert.Error(t, err)
}

func TestOpenRedisUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := OpenRedis(ctx, addr)
	assert.Error(t, err)
}
