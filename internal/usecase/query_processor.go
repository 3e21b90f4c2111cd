package usecase

import (
	"context"
	"fmt"
	"time"

	"tripvoice-service/internal/domain/entity"
	"tripvoice-service/internal/domain/repository"
	"tripvoice-service/pkg/logger"
	"tripvoice-service/pkg/metrics"
	"tripvoice-service/pkg/parser"
	"tripvoice-service/templates"
)

// QueryResult is the full answer to a natural language flight query
type QueryResult struct {
	Intent  string               `json:"intent"`
	Query   *entity.FlightQuery  `json:"query,omitempty"`
	Flights []entity.Flight      `json:"flights"`
	Cards   *entity.CardResponse `json:"cards,omitempty"`
	Reply   string               `json:"reply"`
}

// QueryProcessor turns free-form flight queries into search results with
// display cards and a spoken reply
type QueryProcessor struct {
	engine         repository.DialogueEngine
	inventory      repository.FlightInventory
	dates          *parser.DateNormalizer
	metrics        *metrics.Metrics
	logger         logger.Logger
	cardLimit      int
	bookingURLBase string
}

// NewQueryProcessor creates a new query processor
func NewQueryProcessor(
	engine repository.DialogueEngine,
	inventory repository.FlightInventory,
	dates *parser.DateNormalizer,
	metrics *metrics.Metrics,
	logger logger.Logger,
	cardLimit int,
	bookingURLBase string,
) *QueryProcessor {
	return &QueryProcessor{
		engine:         engine,
		inventory:      inventory,
		dates:          dates,
		metrics:        metrics,
		logger:         logger,
		cardLimit:      cardLimit,
		bookingURLBase: bookingURLBase,
	}
}

// ProcessQuery extracts a structured query from the message, searches the
// inventory and builds the widget payload
func (p *QueryProcessor) ProcessQuery(ctx context.Context, message string) (*QueryResult, error) {
	query, err := p.engine.ExtractQuery(ctx, message)
	if err != nil {
		p.metrics.ErrorsCount.WithLabelValues("extract_query").Inc()
		return nil, fmt.Errorf("failed to extract query: %w", err)
	}

	p.metrics.QueriesProcessed.Inc()

	if query.Intent != entity.IntentSearchFlights {
		reply, _ := p.engine.GenerateReply(ctx, message, nil, "")
		return &QueryResult{
			Intent:  query.Intent,
			Query:   query,
			Flights: []entity.Flight{},
			Reply:   reply,
		}, nil
	}

	if query.Origin == "" || query.Destination == "" {
		p.logger.Info("Query missing route details",
			"origin", query.Origin,
			"destination", query.Destination)
		return &QueryResult{
			Intent:  query.Intent,
			Query:   query,
			Flights: []entity.Flight{},
			Reply:   "I need both an origin and a destination to search for flights. Where are you flying from and to?",
		}, nil
	}

	flights, cards, err := p.SearchFlights(ctx, query)
	if err != nil {
		return nil, err
	}

	reply, _ := p.engine.GenerateReply(ctx, message, flights, "")

	return &QueryResult{
		Intent:  query.Intent,
		Query:   query,
		Flights: flights,
		Cards:   cards,
		Reply:   reply,
	}, nil
}

// SearchFlights normalizes the query, runs the inventory search and
// formats the results as display cards. Used both by ProcessQuery and by
// the direct search endpoints.
func (p *QueryProcessor) SearchFlights(ctx context.Context, query *entity.FlightQuery) ([]entity.Flight, *entity.CardResponse, error) {
	query.Origin = parser.NormalizeCity(query.Origin)
	query.Destination = parser.NormalizeCity(query.Destination)

	normalized, fellBack := p.dates.Normalize(query.DepartureDate, time.Now())
	if fellBack {
		p.metrics.DateFallbacks.Inc()
	}
	query.DepartureDate = normalized

	if query.Passengers <= 0 {
		query.Passengers = 1
	}

	flights, err := p.inventory.Search(ctx, query)
	if err != nil {
		p.metrics.ErrorsCount.WithLabelValues("inventory_search").Inc()
		return nil, nil, fmt.Errorf("inventory search failed: %w", err)
	}

	cards := &entity.CardResponse{
		Type:  "cards",
		Cards: templates.FlightCards(flights, p.cardLimit, p.bookingURLBase),
	}

	p.logger.Info("Flight search completed",
		"origin", query.Origin,
		"destination", query.Destination,
		"departureDate", query.DepartureDate,
		"results", len(flights))

	return flights, cards, nil
}
