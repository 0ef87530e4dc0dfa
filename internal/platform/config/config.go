package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	// RateLimit is the request rate applied to the API, in ulule/limiter
	// formatted notation ("100-M" is 100 requests per minute).
	RateLimit string

	// AllowedOrigins is the comma-free list of origins allowed by CORS.
	AllowedOrigins []string

	// DefaultCurrencyID is the currency assumed for organisations that have
	// not picked one yet.
	DefaultCurrencyID string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("RATE_LIMIT", "300-M")
	viper.SetDefault("ALLOWED_ORIGINS", []string{"http://localhost:3000"})
	viper.SetDefault("DEFAULT_CURRENCY_ID", "USD")

	// Environment variables override defaults and .env values.
	viper.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:       viper.GetString("PGSQL_URL"),
		Port:              viper.GetString("PORT"),
		IsProduction:      viper.GetBool("IS_PRODUCTION"),
		EnableDBCheck:     viper.GetBool("ENABLE_DB_CHECK"),
		RateLimit:         viper.GetString("RATE_LIMIT"),
		AllowedOrigins:    viper.GetStringSlice("ALLOWED_ORIGINS"),
		DefaultCurrencyID: viper.GetString("DEFAULT_CURRENCY_ID"),
	}

	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	return cfg, nil
}
