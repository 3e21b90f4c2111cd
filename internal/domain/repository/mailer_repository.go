package repository

import (
	"context"
	"tripvoice-service/internal/domain/entity"
)

// SummaryMailer defines the interface for sending call summaries by email
type SummaryMailer interface {
	SendCallSummary(ctx context.Context, toEmail string, summary *entity.CallSummary) error
}
