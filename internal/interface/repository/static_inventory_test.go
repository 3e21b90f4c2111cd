package repository

import (
	"context"
	"testing"

	"tripvoice-service/internal/domain/entity"
	"tripvoice-service/internal/domain/repository"
	"tripvoice-service/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticInventorySearchKnownRoute(t *testing.T) {
	inv := NewStaticInventory(logger.NewNopLogger())

	flights, err := inv.Search(context.Background(), &entity.FlightQuery{
		Origin:        "Bangalore",
		Destination:   "Jeddah",
		DepartureDate: "2025-12-28",
	})
	require.NoError(t, err)
	require.Len(t, flights, 6)

	for _, f := range flights {
		assert.Equal(t, "BLR", f.OriginCode)
		assert.Equal(t, "JED", f.DestCode)
		assert.Equal(t, "2025-12-28", f.DepartureDate)
		assert.Greater(t, f.Price, 0)
	}
	assert.Equal(t, "IX 881", flights[0].FlightNumber)
}

func TestStaticInventorySearchNormalizesAliases(t *testing.T) {
	inv := NewStaticInventory(logger.NewNopLogger())

	// Widget-style input with trailing airport code
	flights, err := inv.Search(context.Background(), &entity.FlightQuery{
		Origin:      "Bengaluru BLR",
		Destination: "dxb",
	})
	require.NoError(t, err)
	require.Len(t, flights, 6)
	assert.Equal(t, "Bangalore", flights[0].Origin)
	assert.Equal(t, "Dubai", flights[0].Destination)
}

func TestStaticInventorySearchUnknownRoute(t *testing.T) {
	inv := NewStaticInventory(logger.NewNopLogger())

	flights, err := inv.Search(context.Background(), &entity.FlightQuery{
		Origin:      "Paris",
		Destination: "Tokyo",
	})
	require.NoError(t, err)
	assert.Empty(t, flights)
}

func TestStaticInventorySearchDoesNotMutateTable(t *testing.T) {
	inv := NewStaticInventory(logger.NewNopLogger())
	ctx := context.Background()

	first, err := inv.Search(ctx, &entity.FlightQuery{
		Origin: "Bangalore", Destination: "Jeddah", DepartureDate: "2025-12-28",
	})
	require.NoError(t, err)
	first[0].Price = 1

	second, err := inv.Search(ctx, &entity.FlightQuery{
		Origin: "Bangalore", Destination: "Jeddah", DepartureDate: "2026-01-05",
	})
	require.NoError(t, err)
	assert.Equal(t, 28450, second[0].Price)
	assert.Equal(t, "2026-01-05", second[0].DepartureDate)
}

func TestStaticInventoryGetByID(t *testing.T) {
	inv := NewStaticInventory(logger.NewNopLogger())

	flight, err := inv.GetByID(context.Background(), "BLR-DXB-005")
	require.NoError(t, err)
	assert.Equal(t, "FlyDubai", flight.Airline)
	assert.Equal(t, 17650, flight.Price)

	_, err = inv.GetByID(context.Background(), "XXX-YYY-999")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
