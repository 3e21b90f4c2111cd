package repository

import (
	"context"
	"tripvoice-service/internal/domain/entity"
)

// FlightInventory defines the interface for flight availability search
type FlightInventory interface {
	Search(ctx context.Context, query *entity.FlightQuery) ([]entity.Flight, error)
	GetByID(ctx context.Context, flightID string) (*entity.Flight, error)
}
