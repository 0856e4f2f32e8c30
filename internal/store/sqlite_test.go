package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yusufk/chefmate/internal/llm"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "chefmate.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestCurriculumCache_RoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_, ok, err := s.Get(ctx, "k1")
	require.NoError(t, err)
	assert.False(t, ok, "empty cache should miss")

	require.NoError(t, s.Put(ctx, "k1", "ramen", "cfg", "# Module 1: Broth\nbody"))

	raw, ok, err := s.Get(ctx, "k1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "# Module 1: Broth\nbody", raw)
}

func TestCurriculumCache_PutReplaces(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "k1", "ramen", "cfg", "old"))
	require.NoError(t, s.Put(ctx, "k1", "ramen", "cfg", "new"))

	raw, ok, err := s.Get(ctx, "k1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "new", raw)

	entries, err := s.ListCurricula(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestClearCurricula(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "k1", "ramen", "cfg", "a"))
	require.NoError(t, s.Put(ctx, "k2", "tacos", "cfg", "b"))

	n, err := s.ClearCurricula(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	_, ok, err := s.Get(ctx, "k1")
	require.NoError(t, err)
	assert.False(t, ok, "entry survived clear")
}

func TestAppendRequest(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	recs := []llm.RequestRecord{
		{Purpose: "curriculum", Provider: "anthropic", Model: "m", InputTokens: 10, OutputTokens: 200, LatencyMs: 1200, Success: true},
		{Purpose: "quiz", Provider: "anthropic", Model: "m", Success: false, ErrorMessage: "rate limited"},
	}
	for _, rec := range recs {
		require.NoError(t, s.AppendRequest(ctx, rec))
	}

	n, err := s.RequestCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	events, err := s.ListRequests(ctx, 10)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "quiz", events[0].Purpose)
	assert.False(t, events[0].Success)
	assert.Equal(t, "rate limited", events[0].Error)
	assert.Equal(t, "curriculum", events[1].Purpose)
	assert.True(t, events[1].Success)
}
