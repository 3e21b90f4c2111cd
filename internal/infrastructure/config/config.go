// internal/infrastructure/config/config.go
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// App
	AppVersion string
	AgencyName string

	// Server
	Port           string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	AllowedOrigins []string

	// MongoDB
	MongoURI string
	MongoDB  string

	// PostgreSQL (airline and airport reference data)
	PostgresURI string

	// Dialogue engine
	OpenAIAPIKey string
	OpenAIModel  string

	// Flight data provider, optional. Empty means static inventory only.
	FlightDataEndpoint string
	FlightDataToken    string

	// Gmail
	GmailClientID       string
	GmailClientSecret   string
	GmailRefreshToken   string
	GmailSender         string
	DefaultSummaryEmail string

	// Room access tokens
	RoomAPIKey    string
	RoomAPISecret string
	RoomTokenTTL  time.Duration

	// Normalization and formatting policy
	DefaultDepartureDate string
	CardLimit            int
	BookingURLBase       string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	// Set defaults and override with env vars
	config := &Config{
		AppVersion: getEnv("APP_VERSION", "1.0.0"),
		AgencyName: getEnv("AGENCY_NAME", "Attar Travel Agency"),

		Port:           getEnv("PORT", "8080"),
		ReadTimeout:    time.Duration(getEnvAsInt("READ_TIMEOUT", 30)) * time.Second,
		WriteTimeout:   time.Duration(getEnvAsInt("WRITE_TIMEOUT", 30)) * time.Second,
		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),

		MongoURI: getEnv("MONGODB_DSN", "mongodb://localhost:27017"),
		MongoDB:  getEnv("MONGO_DB", "tripvoice"),

		PostgresURI: getEnv("POSTGRES_DSN", ""),

		OpenAIAPIKey: getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:  getEnv("OPENAI_MODEL", "gpt-4o"),

		FlightDataEndpoint: getEnv("FLIGHT_DATA_ENDPOINT", ""),
		FlightDataToken:    getEnv("FLIGHT_DATA_TOKEN", ""),

		GmailClientID:       getEnv("GMAIL_CLIENT_ID", ""),
		GmailClientSecret:   getEnv("GMAIL_CLIENT_SECRET", ""),
		GmailRefreshToken:   getEnv("GMAIL_REFRESH_TOKEN", ""),
		GmailSender:         getEnv("GMAIL_SENDER", "me"),
		DefaultSummaryEmail: getEnv("DEFAULT_SUMMARY_EMAIL", ""),

		RoomAPIKey:    getEnv("ROOM_API_KEY", ""),
		RoomAPISecret: getEnv("ROOM_API_SECRET", ""),
		RoomTokenTTL:  time.Duration(getEnvAsInt("ROOM_TOKEN_TTL", 3600)) * time.Second,

		DefaultDepartureDate: getEnv("DEFAULT_DEPARTURE_DATE", "2025-12-20"),
		CardLimit:            getEnvAsInt("CARD_LIMIT", 6),
		BookingURLBase:       getEnv("BOOKING_URL_BASE", "https://booking.example.com"),
	}

	return config, nil
}

// Helper functions to get environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}
