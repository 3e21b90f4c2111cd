package repository

import (
	"context"
	"tripvoice-service/internal/domain/entity"
)

// DialogueEngine defines the interface for natural language understanding
type DialogueEngine interface {
	// ExtractQuery turns a free-form utterance into a structured flight
	// query. Returns ErrUnparseable from the implementation when the
	// engine output cannot be interpreted.
	ExtractQuery(ctx context.Context, message string) (*entity.FlightQuery, error)

	// GenerateReply produces a short natural language response about the
	// given flight options
	GenerateReply(ctx context.Context, message string, flights []entity.Flight, extra string) (string, error)
}
