package repository

import (
	"context"
	"sync"
	"time"

	"tripvoice-service/internal/domain/entity"
	"tripvoice-service/internal/domain/repository"
)

// SummaryCache is an in-memory CallSummaryRepository. Webhook processing
// and dashboard polling run concurrently, so access is guarded by a
// RWMutex. The latest summary is tracked separately so clients that never
// learned their call id can still fetch something.
type SummaryCache struct {
	mu        sync.RWMutex
	summaries map[string]*entity.CallSummary
	latest    *entity.CallSummary
}

// NewSummaryCache creates an empty cache
func NewSummaryCache() *SummaryCache {
	return &SummaryCache{
		summaries: make(map[string]*entity.CallSummary),
	}
}

// Save stores a summary and marks it as the latest
func (c *SummaryCache) Save(ctx context.Context, summary *entity.CallSummary) error {
	if summary.CreatedAt.IsZero() {
		summary.CreatedAt = time.Now()
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if summary.CallID != "" {
		c.summaries[summary.CallID] = summary
	}
	c.latest = summary
	return nil
}

// GetByCallID returns the cached summary for a call
func (c *SummaryCache) GetByCallID(ctx context.Context, callID string) (*entity.CallSummary, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	summary, ok := c.summaries[callID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return summary, nil
}

// GetLatest returns the most recently saved summary
func (c *SummaryCache) GetLatest(ctx context.Context) (*entity.CallSummary, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.latest == nil {
		return nil, repository.ErrNotFound
	}
	return c.latest, nil
}

// Len returns the number of cached summaries
func (c *SummaryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.summaries)
}

// LayeredSummaryStore pairs the in-memory cache with a persistent
// repository. Reads hit the cache first; writes go to both, and only a
// persistence failure is reported.
type LayeredSummaryStore struct {
	cache      *SummaryCache
	persistent repository.CallSummaryRepository
}

// NewLayeredSummaryStore creates a layered store. The persistent layer
// may be nil when the service runs without MongoDB.
func NewLayeredSummaryStore(cache *SummaryCache, persistent repository.CallSummaryRepository) *LayeredSummaryStore {
	return &LayeredSummaryStore{
		cache:      cache,
		persistent: persistent,
	}
}

// Save writes the summary to both layers
func (s *LayeredSummaryStore) Save(ctx context.Context, summary *entity.CallSummary) error {
	s.cache.Save(ctx, summary)
	if s.persistent == nil {
		return nil
	}
	return s.persistent.Save(ctx, summary)
}

// GetByCallID reads from the cache, then the persistent layer
func (s *LayeredSummaryStore) GetByCallID(ctx context.Context, callID string) (*entity.CallSummary, error) {
	summary, err := s.cache.GetByCallID(ctx, callID)
	if err == nil {
		return summary, nil
	}
	if s.persistent == nil {
		return nil, err
	}
	return s.persistent.GetByCallID(ctx, callID)
}

// GetLatest reads from the cache, then the persistent layer
func (s *LayeredSummaryStore) GetLatest(ctx context.Context) (*entity.CallSummary, error) {
	summary, err := s.cache.GetLatest(ctx)
	if err == nil {
		return summary, nil
	}
	if s.persistent == nil {
		return nil, err
	}
	return s.persistent.GetLatest(ctx)
}
