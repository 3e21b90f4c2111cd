package repository

import (
	"context"
	"tripvoice-service/internal/domain/entity"
)

// CallSummaryRepository defines the interface for call summary storage
type CallSummaryRepository interface {
	Save(ctx context.Context, summary *entity.CallSummary) error
	GetByCallID(ctx context.Context, callID string) (*entity.CallSummary, error)
	// GetLatest returns the most recent summary, the fallback for
	// widgets that never learned their call id
	GetLatest(ctx context.Context) (*entity.CallSummary, error)
}
