package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"tripvoice-service/internal/domain/entity"
	"tripvoice-service/internal/domain/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummaryCacheSaveAndGet(t *testing.T) {
	cache := NewSummaryCache()
	ctx := context.Background()

	summary := &entity.CallSummary{CallID: "call-1", Summary: "first call"}
	require.NoError(t, cache.Save(ctx, summary))

	got, err := cache.GetByCallID(ctx, "call-1")
	require.NoError(t, err)
	assert.Equal(t, "first call", got.Summary)
	assert.False(t, got.CreatedAt.IsZero())

	_, err = cache.GetByCallID(ctx, "call-unknown")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSummaryCacheLatestFallback(t *testing.T) {
	cache := NewSummaryCache()
	ctx := context.Background()

	_, err := cache.GetLatest(ctx)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	cache.Save(ctx, &entity.CallSummary{CallID: "call-1", Summary: "first"})
	cache.Save(ctx, &entity.CallSummary{CallID: "call-2", Summary: "second"})

	latest, err := cache.GetLatest(ctx)
	require.NoError(t, err)
	assert.Equal(t, "call-2", latest.CallID)

	// A summary without a call id still becomes the latest
	cache.Save(ctx, &entity.CallSummary{Summary: "anonymous"})
	latest, err = cache.GetLatest(ctx)
	require.NoError(t, err)
	assert.Equal(t, "anonymous", latest.Summary)
	assert.Equal(t, 2, cache.Len())
}

func TestSummaryCacheConcurrentAccess(t *testing.T) {
	cache := NewSummaryCache()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			cache.Save(ctx, &entity.CallSummary{CallID: fmt.Sprintf("call-%d", i)})
		}(i)
		go func(i int) {
			defer wg.Done()
			cache.GetByCallID(ctx, fmt.Sprintf("call-%d", i))
			cache.GetLatest(ctx)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 50, cache.Len())
}

func TestLayeredSummaryStoreFallsThrough(t *testing.T) {
	ctx := context.Background()
	primary := NewSummaryCache()
	secondary := NewSummaryCache()
	secondary.Save(ctx, &entity.CallSummary{CallID: "cold", Summary: "persisted"})

	store := NewLayeredSummaryStore(primary, secondary)

	// Cache miss falls through to the persistent layer
	got, err := store.GetByCallID(ctx, "cold")
	require.NoError(t, err)
	assert.Equal(t, "persisted", got.Summary)

	// Writes land in both layers
	require.NoError(t, store.Save(ctx, &entity.CallSummary{CallID: "warm", Summary: "fresh"}))
	fromCache, err := primary.GetByCallID(ctx, "warm")
	require.NoError(t, err)
	assert.Equal(t, "fresh", fromCache.Summary)
	fromPersistent, err := secondary.GetByCallID(ctx, "warm")
	require.NoError(t, err)
	assert.Equal(t, "fresh", fromPersistent.Summary)
}

func TestLayeredSummaryStoreWithoutPersistence(t *testing.T) {
	ctx := context.Background()
	store := NewLayeredSummaryStore(NewSummaryCache(), nil)

	require.NoError(t, store.Save(ctx, &entity.CallSummary{CallID: "only-cache"}))

	_, err := store.GetByCallID(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	latest, err := store.GetLatest(ctx)
	require.NoError(t, err)
	assert.Equal(t, "only-cache", latest.CallID)
}
