package usecase

import (
	"context"
	"testing"

	"tripvoice-service/internal/domain/entity"
	"tripvoice-service/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestToolCallHandler(inventory *fakeInventory) *ToolCallHandler {
	engine := &fakeEngine{query: &entity.FlightQuery{Intent: entity.IntentSearchFlights}}
	return NewToolCallHandler(newTestQueryProcessor(engine, inventory), logger.NewNopLogger())
}

func TestToolCallHandlerCanHandle(t *testing.T) {
	h := newTestToolCallHandler(&fakeInventory{})

	assert.True(t, h.CanHandle("tool-calls"))
	assert.True(t, h.CanHandle("function-call"))
	assert.True(t, h.CanHandle("tool-call"))
	assert.False(t, h.CanHandle("call.ended"))
}

func TestToolCallSearchFlights(t *testing.T) {
	inventory := &fakeInventory{
		flights: []entity.Flight{
			{ID: "BLR-JED-001", Airline: "Air India Express", Origin: "Bangalore", Destination: "Jeddah", Price: 28450},
		},
	}
	h := newTestToolCallHandler(inventory)

	event := ParseWebhookEvent(map[string]interface{}{
		"type": "tool-calls",
		"functionCall": map[string]interface{}{
			"name": "search_flights",
			"parameters": map[string]interface{}{
				"origin":         "Bengaluru BLR",
				"destination":    "Jeddah JED",
				"departure_date": "20251228",
			},
		},
	})

	result, err := h.Process(context.Background(), event)
	require.NoError(t, err)

	cards, ok := result.(*entity.CardResponse)
	require.True(t, ok)
	assert.Equal(t, "cards", cards.Type)
	assert.Len(t, cards.Cards, 1)

	assert.Equal(t, "Bangalore", inventory.lastQuery.Origin)
	assert.Equal(t, "Jeddah", inventory.lastQuery.Destination)
	assert.Equal(t, "2025-12-28", inventory.lastQuery.DepartureDate)
}

func TestToolCallStringArguments(t *testing.T) {
	inventory := &fakeInventory{}
	h := newTestToolCallHandler(inventory)

	// Arguments arrive as a JSON string in the nested toolCalls shape
	event := ParseWebhookEvent(map[string]interface{}{
		"message": map[string]interface{}{
			"type": "tool-calls",
			"toolCalls": []interface{}{
				map[string]interface{}{
					"function": map[string]interface{}{
						"name":      "search_flights",
						"arguments": `{"origin":"Riyadh","destination":"Dubai","passengers":2}`,
					},
				},
			},
		},
	})

	_, err := h.Process(context.Background(), event)
	require.NoError(t, err)
	require.NotNil(t, inventory.lastQuery)
	assert.Equal(t, "Riyadh", inventory.lastQuery.Origin)
	assert.Equal(t, "Dubai", inventory.lastQuery.Destination)
	assert.Equal(t, 2, inventory.lastQuery.Passengers)
}

func TestToolCallMissingRoute(t *testing.T) {
	inventory := &fakeInventory{}
	h := newTestToolCallHandler(inventory)

	event := ParseWebhookEvent(map[string]interface{}{
		"type": "tool-calls",
		"functionCall": map[string]interface{}{
			"name":       "search_flights",
			"parameters": map[string]interface{}{"origin": "Bangalore"},
		},
	})

	result, err := h.Process(context.Background(), event)
	require.NoError(t, err)
	assert.Nil(t, inventory.lastQuery)

	body, ok := result.(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, body["result"], "origin and destination")
}

func TestToolCallUnknownFunction(t *testing.T) {
	h := newTestToolCallHandler(&fakeInventory{})

	event := ParseWebhookEvent(map[string]interface{}{
		"type": "tool-calls",
		"functionCall": map[string]interface{}{
			"name": "book_hotel",
		},
	})

	result, err := h.Process(context.Background(), event)
	require.NoError(t, err)

	body, ok := result.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, false, body["success"])
	assert.Contains(t, body["error"], "book_hotel")
}

func TestToolCallInventoryErrorReturnsEmptyCards(t *testing.T) {
	inventory := &fakeInventory{err: assert.AnError}
	h := newTestToolCallHandler(inventory)

	event := ParseWebhookEvent(map[string]interface{}{
		"type": "tool-calls",
		"functionCall": map[string]interface{}{
			"name":       "search_flights",
			"parameters": map[string]interface{}{"origin": "Bangalore", "destination": "Jeddah"},
		},
	})

	result, err := h.Process(context.Background(), event)
	require.NoError(t, err)

	cards, ok := result.(*entity.CardResponse)
	require.True(t, ok)
	assert.Empty(t, cards.Cards)
}
