package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost             string
	DBUser             string
	DBPassword         string
	DBName             string
	DBPort             string
	AppPort            string
	PaymentServiceURL  string
	PaymentAPIKey      string
	AddressVerifierURL string
	SessionTTL         time.Duration
	AppEnv             string
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		DBHost:             os.Getenv("DB_HOST"),
		DBUser:             os.Getenv("DB_USER"),
		DBPassword:         os.Getenv("DB_PASSWORD"),
		DBName:             os.Getenv("DB_NAME"),
		DBPort:             os.Getenv("DB_PORT"),
		AppPort:            os.Getenv("APP_PORT"),
		PaymentServiceURL:  os.Getenv("PAYMENT_SERVICE_URL"),
		PaymentAPIKey:      os.Getenv("PAYMENT_APIKEY"),
		AddressVerifierURL: os.Getenv("ADDRESS_VERIFIER_URL"),
		SessionTTL:         loadSessionTTL(),
		AppEnv:             os.Getenv("APP_ENV"),
	}

	if cfg.DBHost == "" {
		log.Fatal("Environment variables not loaded properly")
	}

	return cfg
}

// loadSessionTTL reads SESSION_TTL_MINUTES, defaulting to 30 minutes.
func loadSessionTTL() time.Duration {
	raw := os.Getenv("SESSION_TTL_MINUTES")
	if raw == "" {
		return 30 * time.Minute
	}

	minutes, err := strconv.Atoi(raw)
	if err != nil || minutes <= 0 {
		log.Printf("invalid SESSION_TTL_MINUTES %q, falling back to 30m", raw)
		return 30 * time.Minute
	}

	return time.Duration(minutes) * time.Minute
}
