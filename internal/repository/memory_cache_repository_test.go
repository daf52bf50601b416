package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/classroom-gateway/pkg/errors"
)

func TestMemoryCacheRepositoryRoundTripAndExpiry(t *testing.T) {
	repo := NewMemoryCacheRepository()
	now := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "status:1:7:3", map[string]bool{"submitted": true}, time.Minute))
	var got map[string]bool
	require.NoError(t, repo.Get(ctx, "status:1:7:3", &got))
	assert.True(t, got["submitted"])

	now = now.Add(time.Minute)
	require.ErrorIs(t, repo.Get(ctx, "status:1:7:3", &got), appErrors.ErrCacheMiss)
	assert.Zero(t, repo.Len())
}

func TestMemoryCacheRepositoryDeleteByPattern(t *testing.T) {
	repo := NewMemoryCacheRepository()
	ctx := context.Background()
	require.NoError(t, repo.Set(ctx, "status:1:7:3", true, 0))
	require.NoError(t, repo.Set(ctx, "status:2:7:3", true, 0))
	require.NoError(t, repo.Set(ctx, "other:1", true, 0))

	require.NoError(t, repo.DeleteByPattern(ctx, "status:*"))
	assert.Equal(t, 1, repo.Len())

	require.NoError(t, repo.Delete(ctx, "other:1"))
	assert.Zero(t, repo.Len())
}
