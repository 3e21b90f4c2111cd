package httpapi

import (
	"errors"
	"net/http"

	"tripvoice-service/internal/domain/entity"
	"tripvoice-service/internal/domain/repository"
	"tripvoice-service/internal/infrastructure/router"
	"tripvoice-service/internal/usecase"
	"tripvoice-service/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Handlers carries the dependencies of the HTTP API
type Handlers struct {
	events      *router.EventRouter
	queries     *usecase.QueryProcessor
	summaries   repository.CallSummaryRepository
	bookings    repository.BookingRepository
	inventory   repository.FlightInventory
	transcripts repository.TranscriptRepository
	tokens      *usecase.RoomTokenService
	airlines    repository.AirlineRepository
	airports    repository.AirportRepository
	logger      logger.Logger
	version     string
}

// NewHandlers creates the HTTP handler set
func NewHandlers(
	events *router.EventRouter,
	queries *usecase.QueryProcessor,
	summaries repository.CallSummaryRepository,
	bookings repository.BookingRepository,
	inventory repository.FlightInventory,
	transcripts repository.TranscriptRepository,
	tokens *usecase.RoomTokenService,
	airlines repository.AirlineRepository,
	airports repository.AirportRepository,
	logger logger.Logger,
	version string,
) *Handlers {
	return &Handlers{
		events:      events,
		queries:     queries,
		summaries:   summaries,
		bookings:    bookings,
		inventory:   inventory,
		transcripts: transcripts,
		tokens:      tokens,
		airlines:    airlines,
		airports:    airports,
		logger:      logger,
		version:     version,
	}
}

// Root reports the service name and version
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": "tripvoice-service",
		"version": h.version,
		"status":  "running",
	})
}

// Health is the liveness probe
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// VoiceWebhook receives events from the voice platform and dispatches
// them to the registered handler
func (h *Handlers) VoiceWebhook(c *gin.Context) {
	var payload map[string]interface{}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON payload"})
		return
	}

	event := usecase.ParseWebhookEvent(payload)
	h.logger.Info("Voice webhook received", "type", event.Type, "callId", event.CallID)

	handler := h.events.GetHandler(event.Type)
	if handler == nil {
		// Unhandled event types are acknowledged, not errored
		c.JSON(http.StatusOK, gin.H{"status": "received"})
		return
	}

	result, err := handler.Process(c.Request.Context(), event)
	if err != nil {
		h.logger.Error("Webhook processing failed", "type", event.Type, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// CallSummary returns the stored summary for a call
func (h *Handlers) CallSummary(c *gin.Context) {
	callID := c.Param("id")

	summary, err := h.summaries.GetByCallID(c.Request.Context(), callID)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "no summary for call", "call_id": callID})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, summary)
}

// LatestCallSummary returns the most recent summary for widgets that do
// not know their call id
func (h *Handlers) LatestCallSummary(c *gin.Context) {
	summary, err := h.summaries.GetLatest(c.Request.Context())
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "no summaries available"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, summary)
}

type processQueryRequest struct {
	Message string `json:"message" binding:"required"`
}

// ProcessQuery answers a free-form flight query
func (h *Handlers) ProcessQuery(c *gin.Context) {
	var req processQueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
		return
	}

	result, err := h.queries.ProcessQuery(c.Request.Context(), req.Message)
	if err != nil {
		h.logger.Error("Query processing failed", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// SearchFlights runs a structured flight search
func (h *Handlers) SearchFlights(c *gin.Context) {
	var query entity.FlightQuery
	if err := c.ShouldBindJSON(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid search request"})
		return
	}

	if query.Origin == "" || query.Destination == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "origin and destination are required"})
		return
	}

	flights, cards, err := h.queries.SearchFlights(c.Request.Context(), &query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		"outbound_flights": flights,
		"cards":            cards,
		"search_criteria":  query,
	})
}

// FlightByID returns a single flight offer
func (h *Handlers) FlightByID(c *gin.Context) {
	flightID := c.Param("id")

	flight, err := h.inventory.GetByID(c.Request.Context(), flightID)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "flight not found", "flight_id": flightID})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, flight)
}

// BookingStatus looks up a booking by its reference
func (h *Handlers) BookingStatus(c *gin.Context) {
	ref := c.Query("booking_reference")
	if ref == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "booking_reference is required"})
		return
	}

	booking, err := h.bookings.FindByBookingID(c.Request.Context(), ref)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "booking not found", "booking_reference": ref})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, booking)
}

type cancelBookingRequest struct {
	BookingReference string `json:"booking_reference" binding:"required"`
}

// CancelBooking marks a booking as cancelled
func (h *Handlers) CancelBooking(c *gin.Context) {
	var req cancelBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "booking_reference is required"})
		return
	}

	err := h.bookings.UpdateStatus(c.Request.Context(), req.BookingReference, entity.BookingCancelled)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "booking not found", "booking_reference": req.BookingReference})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.logger.Info("Booking cancelled", "bookingId", req.BookingReference)
	c.JSON(http.StatusOK, gin.H{
		"booking_reference": req.BookingReference,
		"status":            entity.BookingCancelled,
	})
}

// CustomerBookings lists all bookings for a customer email
func (h *Handlers) CustomerBookings(c *gin.Context) {
	email := c.Param("email")

	bookings, err := h.bookings.FindByCustomerEmail(c.Request.Context(), email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"email":    email,
		"bookings": bookings,
		"count":    len(bookings),
	})
}

type transcriptRequest struct {
	CallID     string             `json:"call_id" binding:"required"`
	RoomName   string             `json:"room_name"`
	Utterances []entity.Utterance `json:"utterances" binding:"required"`
}

// IngestTranscript appends utterances to a call transcript
func (h *Handlers) IngestTranscript(c *gin.Context) {
	var req transcriptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "call_id and utterances are required"})
		return
	}

	err := h.transcripts.Append(c.Request.Context(), req.CallID, req.RoomName, req.Utterances)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "stored",
		"call_id": req.CallID,
		"count":   len(req.Utterances),
	})
}

// AirlineByCode returns airline master data by two-letter code
func (h *Handlers) AirlineByCode(c *gin.Context) {
	if h.airlines == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "master data store not configured"})
		return
	}

	airline, err := h.airlines.GetByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "airline not found", "code": c.Param("code")})
		return
	}

	c.JSON(http.StatusOK, airline)
}

// AirportByCode returns airport master data by IATA code
func (h *Handlers) AirportByCode(c *gin.Context) {
	if h.airports == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "master data store not configured"})
		return
	}

	airport, err := h.airports.GetByAirportCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "airport not found", "code": c.Param("code")})
		return
	}

	c.JSON(http.StatusOK, airport)
}

type roomTokenRequest struct {
	RoomName string `json:"room_name" binding:"required"`
	Identity string `json:"identity"`
}

// RoomToken mints a room access token for the voice widget
func (h *Handlers) RoomToken(c *gin.Context) {
	var req roomTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "room_name is required"})
		return
	}

	if req.Identity == "" {
		req.Identity = "guest-" + uuid.NewString()[:8]
	}

	token, err := h.tokens.MintToken(req.RoomName, req.Identity)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":    token,
		"room":     req.RoomName,
		"identity": req.Identity,
	})
}
