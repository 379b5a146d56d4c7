package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config is read once at process start. ExternalAPIURL may legitimately
// be empty: /load-products reports that at request time with a 500.
type Config struct {
	Port           string
	DatabaseDSN    string
	ExternalAPIURL string
}

// Load reads .env (if present) and the environment. DATABASE_URL wins;
// otherwise the DSN is assembled from the discrete DB_* variables.
func Load() Config {
	_ = godotenv.Load()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			os.Getenv("DB_HOST"),
			os.Getenv("DB_USER"),
			os.Getenv("DB_PASSWORD"),
			os.Getenv("DB_NAME"),
			os.Getenv("DB_PORT"),
		)
	}

	cfg := Config{
		Port:           port,
		DatabaseDSN:    dsn,
		ExternalAPIURL: os.Getenv("EXTERNAL_API_URL"),
	}
	log.Printf("[config] PORT=%s EXTERNAL_API_URL=%s", cfg.Port, cfg.ExternalAPIURL)
	return cfg
}
