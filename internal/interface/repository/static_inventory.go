package repository

import (
	"context"
	"fmt"

	"tripvoice-service/internal/domain/entity"
	"tripvoice-service/internal/domain/repository"
	"tripvoice-service/pkg/logger"
	"tripvoice-service/pkg/parser"
)

// StaticInventory is an in-memory FlightInventory with guaranteed
// availability on the supported routes. It backs the service when no
// external flight data provider is configured.
type StaticInventory struct {
	routes map[string][]entity.Flight
	logger logger.Logger
}

// NewStaticInventory creates the inventory with its built-in route table
func NewStaticInventory(logger logger.Logger) repository.FlightInventory {
	return &StaticInventory{
		routes: buildRouteTable(),
		logger: logger,
	}
}

// Search returns the flights for a route, stamped with the requested
// departure date. An unsupported route yields an empty result, not an
// error.
func (s *StaticInventory) Search(ctx context.Context, query *entity.FlightQuery) ([]entity.Flight, error) {
	originCity := parser.NormalizeCity(query.Origin)
	destCity := parser.NormalizeCity(query.Destination)
	originCode := parser.AirportCode(originCity)
	destCode := parser.AirportCode(destCity)
	routeKey := fmt.Sprintf("%s-%s", originCode, destCode)

	s.logger.Info("Searching static inventory",
		"origin", query.Origin,
		"originCode", originCode,
		"destination", query.Destination,
		"destCode", destCode,
		"departureDate", query.DepartureDate)

	flights, ok := s.routes[routeKey]
	if !ok {
		s.logger.Warn("Route not in static inventory", "route", routeKey)
		return []entity.Flight{}, nil
	}

	// Copy so callers never mutate the table
	results := make([]entity.Flight, len(flights))
	copy(results, flights)

	for i := range results {
		results[i].Origin = originCity
		results[i].Destination = destCity
		results[i].DepartureDate = query.DepartureDate
	}

	s.logger.Info("Found flights in static inventory", "route", routeKey, "count", len(results))
	return results, nil
}

// GetByID finds a single flight by its inventory id
func (s *StaticInventory) GetByID(ctx context.Context, flightID string) (*entity.Flight, error) {
	for _, flights := range s.routes {
		for _, flight := range flights {
			if flight.ID == flightID {
				result := flight
				return &result, nil
			}
		}
	}
	return nil, repository.ErrNotFound
}

func buildRouteTable() map[string][]entity.Flight {
	checked30 := entity.Baggage{Checked: "30kg", Cabin: "7kg"}
	checked23 := entity.Baggage{Checked: "23kg", Cabin: "7kg"}
	checked20 := entity.Baggage{Checked: "20kg", Cabin: "7kg"}

	return map[string][]entity.Flight{
		"BLR-JED": {
			{ID: "BLR-JED-001", Airline: "Air India Express", FlightNumber: "IX 881", Origin: "Bangalore", Destination: "Jeddah", OriginCode: "BLR", DestCode: "JED", DepartureTime: "02:15", ArrivalTime: "05:30", Duration: "5h 45m", Stops: 0, Price: 28450, Currency: "INR", CabinClass: "Economy", SeatsAvailable: 42, Baggage: checked30},
			{ID: "BLR-JED-002", Airline: "IndiGo", FlightNumber: "6E 77", Origin: "Bangalore", Destination: "Jeddah", OriginCode: "BLR", DestCode: "JED", DepartureTime: "03:55", ArrivalTime: "07:15", Duration: "5h 50m", Stops: 0, Price: 27890, Currency: "INR", CabinClass: "Economy", SeatsAvailable: 38, Baggage: checked30},
			{ID: "BLR-JED-003", Airline: "Air India", FlightNumber: "AI 969", Origin: "Bangalore", Destination: "Jeddah", OriginCode: "BLR", DestCode: "JED", DepartureTime: "13:45", ArrivalTime: "17:00", Duration: "5h 45m", Stops: 0, Price: 29100, Currency: "INR", CabinClass: "Economy", SeatsAvailable: 45, Baggage: checked30},
			{ID: "BLR-JED-004", Airline: "Saudia", FlightNumber: "SV 759", Origin: "Bangalore", Destination: "Jeddah", OriginCode: "BLR", DestCode: "JED", DepartureTime: "14:35", ArrivalTime: "17:50", Duration: "5h 45m", Stops: 0, Price: 31200, Currency: "INR", CabinClass: "Economy", SeatsAvailable: 50, Baggage: checked30},
			{ID: "BLR-JED-005", Airline: "Air India Express", FlightNumber: "IX 885", Origin: "Bangalore", Destination: "Jeddah", OriginCode: "BLR", DestCode: "JED", DepartureTime: "21:10", ArrivalTime: "00:30", Duration: "5h 50m", Stops: 0, Price: 28950, Currency: "INR", CabinClass: "Economy", SeatsAvailable: 40, Baggage: checked30},
			{ID: "BLR-JED-006", Airline: "IndiGo", FlightNumber: "6E 73", Origin: "Bangalore", Destination: "Jeddah", OriginCode: "BLR", DestCode: "JED", DepartureTime: "22:40", ArrivalTime: "02:00", Duration: "5h 50m", Stops: 0, Price: 27650, Currency: "INR", CabinClass: "Economy", SeatsAvailable: 35, Baggage: checked30},
		},
		"BLR-RUH": {
			{ID: "BLR-RUH-001", Airline: "Air India Express", FlightNumber: "IX 883", Origin: "Bangalore", Destination: "Riyadh", OriginCode: "BLR", DestCode: "RUH", DepartureTime: "02:00", ArrivalTime: "05:10", Duration: "5h 40m", Stops: 0, Price: 27890, Currency: "INR", CabinClass: "Economy", SeatsAvailable: 44, Baggage: checked30},
			{ID: "BLR-RUH-002", Airline: "IndiGo", FlightNumber: "6E 65", Origin: "Bangalore", Destination: "Riyadh", OriginCode: "BLR", DestCode: "RUH", DepartureTime: "04:10", ArrivalTime: "07:25", Duration: "5h 45m", Stops: 0, Price: 26950, Currency: "INR", CabinClass: "Economy", SeatsAvailable: 40, Baggage: checked30},
			{ID: "BLR-RUH-003", Airline: "Air India", FlightNumber: "AI 963", Origin: "Bangalore", Destination: "Riyadh", OriginCode: "BLR", DestCode: "RUH", DepartureTime: "09:25", ArrivalTime: "12:35", Duration: "5h 40m", Stops: 0, Price: 28550, Currency: "INR", CabinClass: "Economy", SeatsAvailable: 48, Baggage: checked30},
			{ID: "BLR-RUH-004", Airline: "Saudia", FlightNumber: "SV 753", Origin: "Bangalore", Destination: "Riyadh", OriginCode: "BLR", DestCode: "RUH", DepartureTime: "15:00", ArrivalTime: "18:15", Duration: "5h 45m", Stops: 0, Price: 30200, Currency: "INR", CabinClass: "Economy", SeatsAvailable: 52, Baggage: checked30},
			{ID: "BLR-RUH-005", Airline: "Air India Express", FlightNumber: "IX 887", Origin: "Bangalore", Destination: "Riyadh", OriginCode: "BLR", DestCode: "RUH", DepartureTime: "21:30", ArrivalTime: "00:45", Duration: "5h 45m", Stops: 0, Price: 28100, Currency: "INR", CabinClass: "Economy", SeatsAvailable: 38, Baggage: checked30},
			{ID: "BLR-RUH-006", Airline: "IndiGo", FlightNumber: "6E 61", Origin: "Bangalore", Destination: "Riyadh", OriginCode: "BLR", DestCode: "RUH", DepartureTime: "23:10", ArrivalTime: "02:25", Duration: "5h 45m", Stops: 0, Price: 27200, Currency: "INR", CabinClass: "Economy", SeatsAvailable: 36, Baggage: checked30},
		},
		"BLR-DXB": {
			{ID: "BLR-DXB-001", Airline: "Emirates", FlightNumber: "EK 501", Origin: "Bangalore", Destination: "Dubai", OriginCode: "BLR", DestCode: "DXB", DepartureTime: "01:00", ArrivalTime: "03:30", Duration: "4h 30m", Stops: 0, Price: 18500, Currency: "INR", CabinClass: "Economy", SeatsAvailable: 50, Baggage: checked23},
			{ID: "BLR-DXB-002", Airline: "Air India Express", FlightNumber: "IX 431", Origin: "Bangalore", Destination: "Dubai", OriginCode: "BLR", DestCode: "DXB", DepartureTime: "06:15", ArrivalTime: "08:45", Duration: "4h 30m", Stops: 0, Price: 17900, Currency: "INR", CabinClass: "Economy", SeatsAvailable: 45, Baggage: checked23},
			{ID: "BLR-DXB-003", Airline: "IndiGo", FlightNumber: "6E 91", Origin: "Bangalore", Destination: "Dubai", OriginCode: "BLR", DestCode: "DXB", DepartureTime: "09:45", ArrivalTime: "12:15", Duration: "4h 30m", Stops: 0, Price: 18200, Currency: "INR", CabinClass: "Economy", SeatsAvailable: 48, Baggage: checked23},
			{ID: "BLR-DXB-004", Airline: "Saudia", FlightNumber: "SV 401", Origin: "Bangalore", Destination: "Dubai", OriginCode: "BLR", DestCode: "DXB", DepartureTime: "13:20", ArrivalTime: "15:50", Duration: "4h 30m", Stops: 0, Price: 19500, Currency: "INR", CabinClass: "Economy", SeatsAvailable: 52, Baggage: checked23},
			{ID: "BLR-DXB-005", Airline: "FlyDubai", FlightNumber: "FZ 151", Origin: "Bangalore", Destination: "Dubai", OriginCode: "BLR", DestCode: "DXB", DepartureTime: "16:00", ArrivalTime: "18:30", Duration: "4h 30m", Stops: 0, Price: 17650, Currency: "INR", CabinClass: "Economy", SeatsAvailable: 40, Baggage: checked20},
			{ID: "BLR-DXB-006", Airline: "Air India", FlightNumber: "AI 441", Origin: "Bangalore", Destination: "Dubai", OriginCode: "BLR", DestCode: "DXB", DepartureTime: "19:30", ArrivalTime: "22:00", Duration: "4h 30m", Stops: 0, Price: 19800, Currency: "INR", CabinClass: "Economy", SeatsAvailable: 46, Baggage: checked23},
		},
	}
}
