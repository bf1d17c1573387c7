package idempotency

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	s := NewMemoryStore(5*time.Minute, 500)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "k1", []byte(`{"sale":"abc"}`)))

	body, ok, err := s.Lookup(ctx, "k1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte(`{"sale":"abc"}`), body)
}

func TestMemoryStoreUnknownKey(t *testing.T) {
	s := NewMemoryStore(5*time.Minute, 500)

	_, ok, err := s.Lookup(context.Background(), "missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStoreExpiry(t *testing.T) {
	s := NewMemoryStore(5*time.Minute, 500)
	ctx := context.Background()

	base := time.Now()
	s.now = func() time.Time { return base }
	require.NoError(t, s.Save(ctx, "k1", []byte("v1")))

	s.now = func() time.Time { return base.Add(5*time.Minute + time.Second) }
	_, ok, err := s.Lookup(ctx, "k1")
	require.NoError(t, err)
	assert.False(t, ok)

	// Expired entries are evicted on access, not just hidden.
	s.mu.Lock()
	_, present := s.entries["k1"]
	s.mu.Unlock()
	assert.False(t, present)
}

func TestMemoryStoreCapEvictsOldestInserted(t *testing.T) {
	s := NewMemoryStore(5*time.Minute, 500)
	ctx := context.Background()

	for i := 0; i < 501; i++ {
		require.NoError(t, s.Save(ctx, fmt.Sprintf("k%03d", i), []byte("v")))
	}

	s.mu.Lock()
	size := len(s.entries)
	s.mu.Unlock()
	assert.Equal(t, 500, size)

	// The earliest-inserted key is gone, the second-earliest survives.
	_, ok, err := s.Lookup(ctx, "k000")
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = s.Lookup(ctx, "k001")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMemoryStoreSaveSweepsExpired(t *testing.T) {
	s := NewMemoryStore(5*time.Minute, 500)
	ctx := context.Background()

	base := time.Now()
	s.now = func() time.Time { return base }
	require.NoError(t, s.Save(ctx, "old1", []byte("v")))
	require.NoError(t, s.Save(ctx, "old2", []byte("v")))

	s.now = func() time.Time { return base.Add(10 * time.Minute) }
	require.NoError(t, s.Save(ctx, "fresh", []byte("v")))

	s.mu.Lock()
	size := len(s.entries)
	s.mu.Unlock()
	assert.Equal(t, 1, size)
}

func TestMemoryStoreOverwriteKeepsSingleEntry(t *testing.T) {
	s := NewMemoryStore(5*time.Minute, 500)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "k1", []byte("first")))
	require.NoError(t, s.Save(ctx, "k1", []byte("second")))

	body, ok, err := s.Lookup(ctx, "k1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("second"), body)

	s.mu.Lock()
	size := len(s.entries)
	order := len(s.order)
	s.mu.Unlock()
	assert.Equal(t, 1, size)
	assert.Equal(t, 1, order)
}
