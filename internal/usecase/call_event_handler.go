package usecase

import (
	"context"
	"fmt"
	"time"

	"tripvoice-service/internal/domain/entity"
	"tripvoice-service/pkg/logger"
)

// CallEventHandler processes call lifecycle webhook events
type CallEventHandler struct {
	processor *CallProcessor
	logger    logger.Logger
}

// NewCallEventHandler creates a new call event handler
func NewCallEventHandler(processor *CallProcessor, logger logger.Logger) *CallEventHandler {
	return &CallEventHandler{
		processor: processor,
		logger:    logger,
	}
}

// CanHandle determines if this handler can process the given event type
func (h *CallEventHandler) CanHandle(eventType string) bool {
	switch eventType {
	case "call.started", "call.ended", "end-of-call-report":
		return true
	}
	return false
}

// Process processes a call lifecycle event
func (h *CallEventHandler) Process(ctx context.Context, event *WebhookEvent) (interface{}, error) {
	if event.Type == "call.started" {
		h.logger.Info("Call started", "callId", event.CallID)
		return map[string]interface{}{"status": "received"}, nil
	}

	report := h.buildReport(event)
	h.logger.Info("Call ended",
		"callId", report.CallID,
		"utterances", len(report.Utterances),
		"timestamp", report.Timestamp)

	summary, err := h.processor.ProcessCallEnd(ctx, report)
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"status":  "processed",
		"call_id": report.CallID,
		"summary": summary.Structured,
	}, nil
}

// buildReport normalizes the two call-end payload shapes into a CallReport
func (h *CallEventHandler) buildReport(event *WebhookEvent) *CallReport {
	report := &CallReport{
		CallID: event.CallID,
	}

	callData, _ := event.Payload["data"].(map[string]interface{})
	metadata, _ := event.Payload["metadata"].(map[string]interface{})

	var timestampRaw interface{}

	if event.Type == "end-of-call-report" && event.Message != nil {
		artifact, _ := event.Message["artifact"].(map[string]interface{})
		callObj, _ := event.Message["call"].(map[string]interface{})

		if artifact != nil {
			report.Utterances = parseUtterances(artifact["messages"])
		}

		timestampRaw = event.Message["timestamp"]
		if timestampRaw == nil {
			timestampRaw = event.Message["createdAt"]
		}
		if timestampRaw == nil && callObj != nil {
			timestampRaw = callObj["createdAt"]
		}
		if metadata == nil && callObj != nil {
			metadata, _ = callObj["metadata"].(map[string]interface{})
		}
	} else if callData != nil {
		report.Utterances = parseUtterances(callData["transcript"])

		timestampRaw = callData["timestamp"]
		if timestampRaw == nil {
			timestampRaw = callData["createdAt"]
		}
		if timestampRaw == nil {
			timestampRaw = event.Payload["timestamp"]
		}
	}

	report.Timestamp = formatTimestamp(timestampRaw)

	report.UserEmail = stringField(metadata, "user_email")
	if report.UserEmail == "" {
		report.UserEmail = stringField(callData, "customer_email")
	}
	report.UserName = stringField(metadata, "user_name")
	if report.UserName == "" {
		report.UserName = stringField(callData, "customer_name")
	}
	if report.UserName == "" {
		report.UserName = "Traveler"
	}

	return report
}

// parseUtterances converts the loosely typed transcript array into
// utterances, accepting both "message" and "text" content keys
func parseUtterances(raw interface{}) []entity.Utterance {
	items, ok := raw.([]interface{})
	if !ok {
		return nil
	}

	utterances := make([]entity.Utterance, 0, len(items))
	for _, item := range items {
		msg, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		u := entity.Utterance{
			Role:    stringField(msg, "role"),
			Message: stringField(msg, "message"),
		}
		if u.Message == "" {
			u.Message = stringField(msg, "text")
		}
		if u.Message == "" {
			u.Message = stringField(msg, "content")
		}
		if ts, ok := msg["timestamp"]; ok {
			u.Timestamp = formatTimestamp(ts)
		}
		utterances = append(utterances, u)
	}
	return utterances
}

// formatTimestamp renders epoch timestamps (seconds or milliseconds) as a
// readable date; strings pass through unchanged
func formatTimestamp(raw interface{}) string {
	switch v := raw.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		seconds := v
		if v > 1e12 {
			// Milliseconds
			seconds = v / 1000
		}
		return time.Unix(int64(seconds), 0).Format("January 2, 2006 at 3:04 PM")
	case int64:
		if v > 1e12 {
			return time.Unix(v/1000, 0).Format("January 2, 2006 at 3:04 PM")
		}
		return time.Unix(v, 0).Format("January 2, 2006 at 3:04 PM")
	default:
		return fmt.Sprintf("%v", v)
	}
}
