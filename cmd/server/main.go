package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tripvoice-service/internal/domain/repository"
	"tripvoice-service/internal/infrastructure/config"
	"tripvoice-service/internal/infrastructure/oauth"
	"tripvoice-service/internal/infrastructure/persistence"
	"tripvoice-service/internal/infrastructure/router"
	"tripvoice-service/internal/interface/dialogue"
	"tripvoice-service/internal/interface/httpapi"
	"tripvoice-service/internal/interface/mailer"
	interfaceRepo "tripvoice-service/internal/interface/repository"
	"tripvoice-service/internal/usecase"
	"tripvoice-service/pkg/logger"
	"tripvoice-service/pkg/metrics"
	"tripvoice-service/pkg/parser"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	// Create logger
	log := logger.NewLogger()
	log.Info("Starting TripVoice Service")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := metrics.NewMetrics("tripvoice")

	// Set up MongoDB connection
	log.Info("Connecting to MongoDB")
	mongoClient, db, err := persistence.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", "error", err)
	}

	// PostgreSQL holds airline and airport master data; the service runs
	// without it
	var airlineRepository repository.AirlineRepository
	var airportRepository repository.AirportRepository
	if cfg.PostgresURI != "" {
		gormDB, err := gorm.Open(postgres.Open(cfg.PostgresURI), &gorm.Config{})
		if err != nil {
			log.Fatal("Failed to connect to PostgreSQL", "error", err)
		}
		airlineRepository = interfaceRepo.NewGormAirlineRepository(gormDB)
		airportRepository = interfaceRepo.NewGormAirportRepository(gormDB)
	} else {
		log.Warn("POSTGRES_DSN not set, master data endpoints disabled")
	}

	// Set up repositories
	bookingRepo := interfaceRepo.NewMongoBookingRepository(db)
	transcriptRepo := interfaceRepo.NewMongoTranscriptRepository(db)
	summaryStore := interfaceRepo.NewLayeredSummaryStore(
		interfaceRepo.NewSummaryCache(),
		interfaceRepo.NewMongoCallSummaryRepository(db),
	)

	// Flight inventory: external provider fronted by the static table
	var inventory repository.FlightInventory = interfaceRepo.NewStaticInventory(log)
	if cfg.FlightDataEndpoint != "" {
		remote := interfaceRepo.NewFlightDataRepository(cfg.FlightDataEndpoint, cfg.FlightDataToken, log)
		inventory = interfaceRepo.NewFallbackInventory(remote, inventory, log)
	}

	// Dialogue engine and transcript mining
	engine := dialogue.NewOpenAIEngine(cfg.OpenAIAPIKey, cfg.OpenAIModel, log)
	dates := parser.NewDateNormalizer(cfg.DefaultDepartureDate, log)
	extractor := parser.NewExtractor(log)
	summarizer := parser.NewSummarizer(cfg.AgencyName, log)

	queryProcessor := usecase.NewQueryProcessor(engine, inventory, dates, m, log, cfg.CardLimit, cfg.BookingURLBase)

	// Summary mailer via Gmail, optional
	var summaryMailer repository.SummaryMailer
	if cfg.GmailClientID != "" && cfg.GmailClientSecret != "" && cfg.GmailRefreshToken != "" {
		gmailOAuth := oauth.NewGmailOAuth(
			cfg.GmailClientID,
			cfg.GmailClientSecret,
			cfg.GmailRefreshToken,
			log,
		)
		tokenSource := gmailOAuth.GetTokenSource(ctx)

		summaryMailer, err = mailer.NewGmailMailer(ctx, tokenSource, cfg.GmailSender, cfg.AgencyName, log)
		if err != nil {
			log.Fatal("Failed to create Gmail mailer", "error", err)
		}
	} else {
		log.Warn("Gmail credentials not set, summary emails disabled")
	}

	callProcessor := usecase.NewCallProcessor(
		extractor,
		summarizer,
		bookingRepo,
		summaryStore,
		summaryMailer,
		m,
		log,
		cfg.DefaultSummaryEmail,
	)

	// Webhook event routing
	eventRouter := router.NewEventRouter(log)
	eventRouter.Register(usecase.NewCallEventHandler(callProcessor, log))
	eventRouter.Register(usecase.NewToolCallHandler(queryProcessor, log))

	tokenService := usecase.NewRoomTokenService(cfg.RoomAPIKey, cfg.RoomAPISecret, cfg.RoomTokenTTL, log)

	handlers := httpapi.NewHandlers(
		eventRouter,
		queryProcessor,
		summaryStore,
		bookingRepo,
		inventory,
		transcriptRepo,
		tokenService,
		airlineRepository,
		airportRepository,
		log,
		cfg.AppVersion,
	)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      httpapi.NewRouter(handlers, cfg.AllowedOrigins),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Received signal", "signal", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	// Disconnect from MongoDB
	if err := mongoClient.Disconnect(shutdownCtx); err != nil {
		log.Error("MongoDB disconnect error", "error", err)
	}

	cancel() // Cancel the context to stop all goroutines

	log.Info("TripVoice Service stopped")
}
