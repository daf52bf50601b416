package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/classroom-gateway/internal/models"
	"github.com/noah-isme/classroom-gateway/internal/repository"
)

func TestCacheServiceGetSetDelete(t *testing.T) {
	metrics := NewMetricsService()
	svc := NewCacheService(repository.NewMemoryCacheRepository(), metrics, time.Minute, zap.NewNop(), true)
	ctx := context.Background()

	var status models.SubmissionStatus
	hit, err := svc.Get(ctx, "k", &status)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, svc.Set(ctx, "k", models.SubmissionStatus{Submitted: true, SubmissionID: submissionID(42)}, 0))
	hit, err = svc.Get(ctx, "k", &status)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.True(t, status.HasSubmission())

	require.NoError(t, svc.Delete(ctx, "k"))
	hit, _ = svc.Get(ctx, "k", &status)
	assert.False(t, hit)

	snapshot := metrics.Snapshot()
	assert.Equal(t, uint64(1), snapshot.CacheHits)
	assert.Equal(t, uint64(2), snapshot.CacheMisses)
}

func TestCacheServiceDisabled(t *testing.T) {
	repo := repository.NewMemoryCacheRepository()
	svc := NewCacheService(repo, nil, time.Minute, zap.NewNop(), false)

	require.NoError(t, svc.Set(context.Background(), "k", "v", time.Minute))
	assert.Equal(t, 0, repo.Len())

	var nilSvc *CacheService
	assert.False(t, nilSvc.Enabled())
	hit, err := nilSvc.Get(context.Background(), "k", new(string))
	require.NoError(t, err)
	assert.False(t, hit)
}
