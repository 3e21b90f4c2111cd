package usecase

import (
	"context"
)

// WebhookEvent is the normalized envelope of a voice platform webhook.
// The platform delivers the same event in several shapes, so the raw
// payload and the nested message object are both kept.
type WebhookEvent struct {
	Type    string
	CallID  string
	Payload map[string]interface{}
	Message map[string]interface{}
}

// EventHandler defines the interface for webhook event handlers
type EventHandler interface {
	// CanHandle determines if this handler can process the given event type
	CanHandle(eventType string) bool

	// Process processes the event and returns the response body for the
	// webhook caller
	Process(ctx context.Context, event *WebhookEvent) (interface{}, error)
}

// ParseWebhookEvent normalizes a raw webhook payload. The event type may
// be top-level ("type" or "event") or nested under "message.type", and the
// call id hides in several places.
func ParseWebhookEvent(payload map[string]interface{}) *WebhookEvent {
	message, _ := payload["message"].(map[string]interface{})

	eventType := stringField(payload, "type")
	if eventType == "" {
		eventType = stringField(payload, "event")
	}
	if eventType == "" && message != nil {
		eventType = stringField(message, "type")
	}

	callID := stringField(payload, "callId")
	if callID == "" {
		callID = stringField(payload, "call_id")
	}
	if callID == "" && message != nil {
		if call, ok := message["call"].(map[string]interface{}); ok {
			callID = stringField(call, "id")
		}
		if callID == "" {
			callID = stringField(message, "callId")
		}
		if callID == "" {
			callID = stringField(message, "id")
		}
	}

	return &WebhookEvent{
		Type:    eventType,
		CallID:  callID,
		Payload: payload,
		Message: message,
	}
}

func stringField(m map[string]interface{}, key string) string {
	if m == nil {
		return ""
	}
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}
