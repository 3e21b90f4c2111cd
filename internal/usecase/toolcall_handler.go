package usecase

import (
	"context"
	"encoding/json"

	"tripvoice-service/internal/domain/entity"
	"tripvoice-service/pkg/logger"
)

// ToolCallHandler answers function calls issued by the voice assistant
// mid-conversation
type ToolCallHandler struct {
	queries *QueryProcessor
	logger  logger.Logger
}

// NewToolCallHandler creates a new tool call handler
func NewToolCallHandler(queries *QueryProcessor, logger logger.Logger) *ToolCallHandler {
	return &ToolCallHandler{
		queries: queries,
		logger:  logger,
	}
}

// CanHandle determines if this handler can process the given event type
func (h *ToolCallHandler) CanHandle(eventType string) bool {
	switch eventType {
	case "function-call", "tool-call", "tool-calls":
		return true
	}
	return false
}

// Process runs the requested function and returns its result in the shape
// the voice platform expects
func (h *ToolCallHandler) Process(ctx context.Context, event *WebhookEvent) (interface{}, error) {
	name, params := extractFunctionCall(event)
	h.logger.Info("Function call received", "function", name, "callId", event.CallID)

	if name != "search_flights" {
		h.logger.Warn("Unknown function requested", "function", name)
		return map[string]interface{}{
			"success": false,
			"error":   "Unknown function: " + name,
		}, nil
	}

	query := &entity.FlightQuery{
		Origin:        stringField(params, "origin"),
		Destination:   stringField(params, "destination"),
		DepartureDate: stringField(params, "departure_date"),
		ReturnDate:    stringField(params, "return_date"),
		Passengers:    intField(params, "passengers"),
		CabinClass:    stringField(params, "cabin_class"),
		Intent:        entity.IntentSearchFlights,
	}

	if query.Origin == "" || query.Destination == "" {
		h.logger.Error("Function call missing route",
			"origin", query.Origin,
			"destination", query.Destination)
		return map[string]interface{}{
			"result": "I need a valid origin and destination to search for flights.",
		}, nil
	}

	_, cards, err := h.queries.SearchFlights(ctx, query)
	if err != nil {
		h.logger.Error("Flight search failed for function call", "error", err)
		// Empty cards keep the widget rendering
		return &entity.CardResponse{Type: "cards", Cards: []entity.DisplayCard{}}, nil
	}

	h.logger.Info("Returning flight cards", "count", len(cards.Cards))
	return cards, nil
}

// extractFunctionCall digs the function name and arguments out of the
// several payload shapes the platform uses
func extractFunctionCall(event *WebhookEvent) (string, map[string]interface{}) {
	functionCall, _ := event.Payload["functionCall"].(map[string]interface{})
	if functionCall == nil {
		functionCall, _ = event.Payload["toolCall"].(map[string]interface{})
	}
	if functionCall == nil && event.Message != nil {
		functionCall, _ = event.Message["toolCall"].(map[string]interface{})
		if functionCall == nil {
			if calls, ok := event.Message["toolCalls"].([]interface{}); ok && len(calls) > 0 {
				functionCall, _ = calls[0].(map[string]interface{})
			}
		}
	}

	var nested map[string]interface{}
	if functionCall != nil {
		nested, _ = functionCall["function"].(map[string]interface{})
	}

	name := stringField(functionCall, "name")
	if name == "" {
		name = stringField(nested, "name")
	}
	if name == "" {
		name = stringField(event.Payload, "function")
	}
	if name == "" {
		name = stringField(event.Payload, "tool")
	}

	var params interface{}
	if functionCall != nil {
		params = functionCall["parameters"]
		if params == nil {
			params = functionCall["arguments"]
		}
	}
	if params == nil && nested != nil {
		params = nested["arguments"]
	}
	if params == nil {
		params = event.Payload["parameters"]
	}

	return name, coerceParams(params)
}

// coerceParams accepts both object and JSON-string argument encodings
func coerceParams(raw interface{}) map[string]interface{} {
	switch v := raw.(type) {
	case map[string]interface{}:
		return v
	case string:
		var parsed map[string]interface{}
		if err := json.Unmarshal([]byte(v), &parsed); err != nil {
			return map[string]interface{}{}
		}
		return parsed
	default:
		return map[string]interface{}{}
	}
}

func intField(m map[string]interface{}, key string) int {
	if m == nil {
		return 0
	}
	switch v := m[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case json.Number:
		n, _ := v.Int64()
		return int(n)
	}
	return 0
}
