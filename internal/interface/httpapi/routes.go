package httpapi

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter builds the gin engine with all routes and middleware
func NewRouter(h *Handlers, allowedOrigins []string) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if len(allowedOrigins) == 1 && allowedOrigins[0] == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = allowedOrigins
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	engine.Use(cors.New(corsConfig))

	engine.GET("/", h.Root)
	engine.GET("/health", h.Health)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	engine.POST("/webhooks/voice", h.VoiceWebhook)

	api := engine.Group("/api")
	{
		api.GET("/call-summary/:id", h.CallSummary)
		api.GET("/call-summary-latest", h.LatestCallSummary)
		api.POST("/process-query", h.ProcessQuery)
		api.POST("/search-flights", h.SearchFlights)
		api.GET("/flight/:id", h.FlightByID)
		api.GET("/booking-status", h.BookingStatus)
		api.POST("/cancel-booking", h.CancelBooking)
		api.GET("/customer-bookings/:email", h.CustomerBookings)
		api.POST("/transcript", h.IngestTranscript)
		api.POST("/room-token", h.RoomToken)
		api.GET("/airline/:code", h.AirlineByCode)
		api.GET("/airport/:code", h.AirportByCode)
	}

	return engine
}
