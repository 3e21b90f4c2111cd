package repository

import (
	"context"
	"tripvoice-service/internal/domain/entity"
)

// TranscriptRepository defines the interface for transcript storage
type TranscriptRepository interface {
	Append(ctx context.Context, callID, roomName string, utterances []entity.Utterance) error
	GetByCallID(ctx context.Context, callID string) (*entity.Transcript, error)
}
