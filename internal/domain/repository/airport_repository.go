package repository

import (
	"context"
	"tripvoice-service/internal/domain/entity"
)

// AirportRepository defines the interface for airport reference data
type AirportRepository interface {
	GetByAirportCode(ctx context.Context, code string) (*entity.Airport, error)
}
