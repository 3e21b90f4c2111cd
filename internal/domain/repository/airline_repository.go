package repository

import (
	"context"

	"tripvoice-service/internal/domain/entity"
)

// AirlineRepository defines the interface for airline reference data
type AirlineRepository interface {
	GetByCode(ctx context.Context, code string) (*entity.Airline, error)
	GetByName(ctx context.Context, name string) (*entity.Airline, error)
}
