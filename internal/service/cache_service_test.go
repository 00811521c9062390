package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/booking-api/internal/models"
)

func TestCacheServiceDisabledIsNoop(t *testing.T) {
	repo := newMemoryCacheRepo()
	svc := NewCacheService(repo, nil, 0, nil, false)

	require.NoError(t, svc.Set(context.Background(), "k", []models.TimeSlot{}, 0))
	var dest []models.TimeSlot
	hit, err := svc.Get(context.Background(), "k", &dest)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Empty(t, repo.entries)

	var nilSvc *CacheService
	assert.False(t, nilSvc.Enabled())
}

func TestCacheServiceRoundTripRecordsMetrics(t *testing.T) {
	metrics := NewMetricsService()
	svc := NewCacheService(newMemoryCacheRepo(), metrics, time.Minute, nil, true)

	var dest []models.TimeSlot
	hit, err := svc.Get(context.Background(), "slots:2024-06-11:all", &dest)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, svc.Set(context.Background(), "slots:2024-06-11:all", sampleSlots, 0))
	hit, err = svc.Get(context.Background(), "slots:2024-06-11:all", &dest)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, sampleSlots, dest)
}
