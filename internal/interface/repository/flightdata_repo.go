package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"tripvoice-service/internal/domain/entity"
	"tripvoice-service/internal/domain/repository"
	"tripvoice-service/pkg/logger"
)

// FlightDataRepository queries an external flight data provider over HTTP
type FlightDataRepository struct {
	logger      logger.Logger
	endpoint    string
	bearerToken string
	client      *http.Client
}

// NewFlightDataRepository creates a new flight data client
func NewFlightDataRepository(endpoint, bearerToken string, logger logger.Logger) repository.FlightInventory {
	return &FlightDataRepository{
		logger:      logger,
		endpoint:    endpoint,
		bearerToken: bearerToken,
		client:      &http.Client{Timeout: 30 * time.Second},
	}
}

// Search sends the query to the provider and maps the response
func (r *FlightDataRepository) Search(ctx context.Context, query *entity.FlightQuery) ([]entity.Flight, error) {
	jsonData, err := json.Marshal(query)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal search request: %w", err)
	}

	r.logger.Info("Querying flight data provider",
		"origin", query.Origin,
		"destination", query.Destination,
		"departureDate", query.DepartureDate)

	url := fmt.Sprintf("%s/api/v1/flights/search", r.endpoint)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+r.bearerToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errorBody map[string]interface{}
		json.NewDecoder(resp.Body).Decode(&errorBody)
		return nil, fmt.Errorf("flight data provider returned status %d: %v", resp.StatusCode, errorBody)
	}

	var response struct {
		Success         bool            `json:"success"`
		OutboundFlights []entity.Flight `json:"outbound_flights"`
		Message         string          `json:"message"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if !response.Success {
		return nil, fmt.Errorf("flight data provider search failed: %s", response.Message)
	}

	r.logger.Info("Provider returned flights", "count", len(response.OutboundFlights))
	return response.OutboundFlights, nil
}

// GetByID fetches a single flight from the provider
func (r *FlightDataRepository) GetByID(ctx context.Context, flightID string) (*entity.Flight, error) {
	url := fmt.Sprintf("%s/api/v1/flights/%s", r.endpoint, flightID)
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+r.bearerToken)

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, repository.ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("flight data provider returned status %d", resp.StatusCode)
	}

	var flight entity.Flight
	if err := json.NewDecoder(resp.Body).Decode(&flight); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &flight, nil
}

// FallbackInventory tries the primary inventory and falls back to the
// secondary when the primary errors or comes back empty. Used to front a
// flaky external provider with the static table.
type FallbackInventory struct {
	primary   repository.FlightInventory
	secondary repository.FlightInventory
	logger    logger.Logger
}

// NewFallbackInventory composes two inventories
func NewFallbackInventory(primary, secondary repository.FlightInventory, logger logger.Logger) repository.FlightInventory {
	return &FallbackInventory{
		primary:   primary,
		secondary: secondary,
		logger:    logger,
	}
}

// Search queries the primary inventory first
func (f *FallbackInventory) Search(ctx context.Context, query *entity.FlightQuery) ([]entity.Flight, error) {
	flights, err := f.primary.Search(ctx, query)
	if err == nil && len(flights) > 0 {
		return flights, nil
	}
	if err != nil {
		f.logger.Warn("Primary inventory failed, falling back", "error", err)
	}
	return f.secondary.Search(ctx, query)
}

// GetByID checks the primary inventory first
func (f *FallbackInventory) GetByID(ctx context.Context, flightID string) (*entity.Flight, error) {
	flight, err := f.primary.GetByID(ctx, flightID)
	if err == nil {
		return flight, nil
	}
	return f.secondary.GetByID(ctx, flightID)
}
