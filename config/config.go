package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the runtime configuration, read from environment
// variables with an optional .env file.
type Config struct {
	Port     string
	LogLevel string

	// StoreBackend is "memory" (default) or "mongo".
	StoreBackend  string
	MongoURI      string
	MongoDatabase string

	// TickerInterval is the period of the background price ticker.
	// Zero disables it.
	TickerInterval time.Duration

	// RandomSeed makes the planner and simulator deterministic when
	// non-zero. Zero seeds from the clock.
	RandomSeed int64
}

// Load reads configuration from the environment. A missing .env file is
// not an error.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:           getEnv("PORT", "8080"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		StoreBackend:   getEnv("STORE_BACKEND", "memory"),
		MongoURI:       os.Getenv("MONGODB_URI"),
		MongoDatabase:  getEnv("DATABASE_NAME", "portfolio-simulator"),
		TickerInterval: getEnvDuration("TICKER_INTERVAL", 0),
		RandomSeed:     getEnvInt64("RANDOM_SEED", 0),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func getEnvInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}
