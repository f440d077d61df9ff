package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all configuration for the application.
type Config struct {
	Server   ServerConfig
	Gateways GatewayConfig
	Bank     BankConfig
	Hold     HoldConfig
	JWT      JWTConfig
	CORS     CORSConfig
	Ledger   LedgerConfig
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Port        string `envconfig:"PORT" default:"8080"`
	Environment string `envconfig:"ENVIRONMENT" default:"development"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
}

// GatewayConfig holds the base URLs of the five remote services.
type GatewayConfig struct {
	APIGatewayURL    string `envconfig:"API_GATEWAY_URL" default:"https://apigateway-hyaw.onrender.com/api"`
	CatalogURL       string `envconfig:"CATALOG_SERVICE_URL" default:"https://catalogos-service.onrender.com/api"`
	RoomsGraphQLURL  string `envconfig:"ROOMS_GRAPHQL_URL" default:"https://habitaciones-service.onrender.com/graphql"`
	UsersPaymentsURL string `envconfig:"USERS_PAYMENTS_URL" default:"https://usuarios-pagos-service.onrender.com/api"`
	BankURL          string `envconfig:"BANK_API_URL" default:"http://mibanca.runasp.net/api"`
	Timeout          time.Duration `envconfig:"GATEWAY_TIMEOUT" default:"30s"`
}

// BankConfig holds the two fixed external account numbers the booking flow
// settles between.
type BankConfig struct {
	CustomerAccount string `envconfig:"BANK_CUSTOMER_ACCOUNT" default:"0707001320"`
	HotelAccount    string `envconfig:"BANK_HOTEL_ACCOUNT" default:"0707001310"`
}

// HoldConfig holds pre-reserve hold behaviour.
type HoldConfig struct {
	// RequestedSeconds is what we ask the reservations service for.
	RequestedSeconds int `envconfig:"HOLD_REQUESTED_SECONDS" default:"1800"`
	// DefaultSeconds applies when the server omits the granted duration.
	DefaultSeconds int `envconfig:"HOLD_DEFAULT_SECONDS" default:"180"`
}

// JWTConfig holds session token configuration.
type JWTConfig struct {
	Secret      string        `envconfig:"JWT_SECRET" default:"dev-session-secret"`
	TokenExpiry time.Duration `envconfig:"JWT_TOKEN_EXPIRY" default:"24h"`
}

// CORSConfig holds CORS-related configuration.
type CORSConfig struct {
	AllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:4200"`
}

// LedgerConfig holds the local hold ledger location.
type LedgerConfig struct {
	Path string `envconfig:"LEDGER_PATH" default:"holds.db"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists (for local development)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}

	if cfg.Hold.DefaultSeconds <= 0 {
		return nil, fmt.Errorf("HOLD_DEFAULT_SECONDS must be positive")
	}
	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("JWT_SECRET must not be empty")
	}

	return &cfg, nil
}
