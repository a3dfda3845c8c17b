package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_PushAddsToHead(t *testing.T) {
	s := NewMemoryStore("09:00:00")

	require.NoError(t, s.Push(context.Background(), "10:00:00"))
	require.NoError(t, s.Push(context.Background(), "11:00:00"))

	values, err := s.Range(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"11:00:00", "10:00:00", "09:00:00"}, values)
}

func TestMemoryStore_RangeReturnsACopy(t *testing.T) {
	s := NewMemoryStore("10:00:00")

	values, err := s.Range(context.Background())
	require.NoError(t, err)
	values[0] = "changed"

	values, err = s.Range(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"10:00:00"}, values)
}

func TestMemoryStore_PushAndRange(t *testing.T) {
	s := NewMemoryStore()

	values, err := s.PushAndRange(context.Background(), "10:00:00")
	require.NoError(t, err)
	assert.Equal(t, []string{"10:00:00"}, values)

	values, err = s.PushAndRange(context.Background(), "10:00:01")
	require.NoError(t, err)
	assert.Equal(t, []string{"10:00:01", "10:00:00"}, values)
}

func TestMemoryStore_Failure(t *testing.T) {
	s := NewMemoryStore("10:00:00")
	s.SetFailure(ErrorUnavailable)

	assert.ErrorIs(t, s.Push(context.Background(), "11:00:00"), ErrorUnavailable)
	assert.ErrorIs(t, s.Ping(context.Background()), ErrorUnavailable)

	_, err := s.Range(context.Background())
	assert.ErrorIs(t, err, ErrorUnavailable)

	s.SetFailure(nil)

	values, err := s.Range(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"10:00:00"}, values, "failed push must not be recorded")
}

func TestMemoryStore_CancelledContext(t *testing.T) {
	s := NewMemoryStore()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, s.Push(ctx, "10:00:00"), context.Canceled)
}
