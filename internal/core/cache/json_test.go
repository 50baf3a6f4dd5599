package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// A nil *Cache degrades to calling the loader directly, which is how the
// binaries run when no redis address is configured.
func TestGetOrLoadJSONNilCache(t *testing.T) {
	calls := 0
	load := func(ctx context.Context) (*payload, error) {
		calls++
		return &payload{ID: "p1", Name: "first"}, nil
	}

	got, err := GetOrLoadJSON[payload](nil, context.Background(), "k", time.Minute, load)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "p1", got.ID)
	assert.Equal(t, 1, calls)

	// every call goes through the loader
	_, err = GetOrLoadJSON[payload](nil, context.Background(), "k", time.Minute, load)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestGetOrLoadJSONNilCacheMiss(t *testing.T) {
	got, err := GetOrLoadJSON[payload](nil, context.Background(), "k", time.Minute,
		func(ctx context.Context) (*payload, error) { return nil, nil })
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestGetOrLoadJSONNilCachePropagatesError(t *testing.T) {
	_, err := GetOrLoadJSON[payload](nil, context.Background(), "k", time.Minute,
		func(ctx context.Context) (*payload, error) { return nil, assert.AnError })
	assert.ErrorIs(t, err, assert.AnError)
}
