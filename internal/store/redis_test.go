package store

import (
	"context"
	"strconv"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisStore_PushAndRange(t *testing.T) {
	s, mr := testRedisStore(t)

	require.NoError(t, s.Push(context.Background(), "10:00:00"))
	require.NoError(t, s.Push(context.Background(), "11:00:00"))

	values, err := s.Range(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"11:00:00", "10:00:00"}, values)

	stored, err := mr.List("times")
	require.NoError(t, err)
	assert.Equal(t, []string{"11:00:00", "10:00:00"}, stored)
}

func TestRedisStore_RangeOfMissingKeyIsEmpty(t *testing.T) {
	s, _ := testRedisStore(t)

	values, err := s.Range(context.Background())
	require.NoError(t, err)
	assert.Empty(t, values)
}

func TestRedisStore_IncludesExistingEntries(t *testing.T) {
	s, mr := testRedisStore(t)
	mr.Lpush("times", "09:00:00")

	values, err := s.PushAndRange(context.Background(), "10:00:00")
	require.NoError(t, err)
	assert.Equal(t, []string{"10:00:00", "09:00:00"}, values)
}

func TestRedisStore_UsesConfiguredKey(t *testing.T) {
	mr := miniredis.RunT(t)
	s := NewRedisStore(testRedisOptions(t, mr, "visits"))
	t.Cleanup(func() { s.Close() })

	require.NoError(t, s.Push(context.Background(), "10:00:00"))

	assert.True(t, mr.Exists("visits"))
	assert.False(t, mr.Exists("times"))
}

func TestRedisStore_Unavailable(t *testing.T) {
	s, mr := testRedisStore(t)
	mr.Close()

	assert.Error(t, s.Ping(context.Background()))
	assert.Error(t, s.Push(context.Background(), "10:00:00"))

	_, err := s.Range(context.Background())
	assert.Error(t, err)

	_, err = s.PushAndRange(context.Background(), "10:00:00")
	assert.Error(t, err)
}

func TestRedisOptions_Addr(t *testing.T) {
	assert.Equal(t, "redis:6379", RedisOptions{Host: "redis", Port: 6379}.Addr())
	assert.Equal(t, "[::1]:6380", RedisOptions{Host: "::1", Port: 6380}.Addr())
}

// Helpers

func testRedisStore(t testing.TB) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	s := NewRedisStore(testRedisOptions(t, mr, "times"))
	t.Cleanup(func() { s.Close() })

	require.NoError(t, s.Ping(context.Background()))
	return s, mr
}

func testRedisOptions(t testing.TB, mr *miniredis.Miniredis, key string) RedisOptions {
	t.Helper()

	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)

	return RedisOptions{Host: mr.Host(), Port: port, Key: key}
}
