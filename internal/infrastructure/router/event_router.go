package router

import (
	"tripvoice-service/internal/usecase"
	"tripvoice-service/pkg/logger"
)

// EventRouter routes webhook events to appropriate handlers based on
// event type
type EventRouter struct {
	handlers []usecase.EventHandler
	logger   logger.Logger
}

// NewEventRouter creates a new event router
func NewEventRouter(logger logger.Logger) *EventRouter {
	return &EventRouter{
		handlers: make([]usecase.EventHandler, 0),
		logger:   logger,
	}
}

// Register registers a handler for specific event types
func (r *EventRouter) Register(handler usecase.EventHandler) {
	r.handlers = append(r.handlers, handler)
	r.logger.Info("Registered handler", "handler", handler)
}

// GetHandler returns the appropriate handler for a given event type
func (r *EventRouter) GetHandler(eventType string) usecase.EventHandler {
	for _, handler := range r.handlers {
		if handler.CanHandle(eventType) {
			return handler
		}
	}
	return nil
}
