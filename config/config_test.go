package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "LOG_LEVEL", "STORE_BACKEND", "MONGODB_URI", "DATABASE_NAME", "TICKER_INTERVAL", "RANDOM_SEED"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("Port=%q want 8080", cfg.Port)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel=%q want info", cfg.LogLevel)
	}
	if cfg.StoreBackend != "memory" {
		t.Errorf("StoreBackend=%q want memory", cfg.StoreBackend)
	}
	if cfg.TickerInterval != 0 {
		t.Errorf("TickerInterval=%v want 0", cfg.TickerInterval)
	}
	if cfg.RandomSeed != 0 {
		t.Errorf("RandomSeed=%v want 0", cfg.RandomSeed)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9191")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("STORE_BACKEND", "mongo")
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("DATABASE_NAME", "sims")
	t.Setenv("TICKER_INTERVAL", "3s")
	t.Setenv("RANDOM_SEED", "12345")

	cfg := Load()

	if cfg.Port != "9191" || cfg.LogLevel != "debug" || cfg.StoreBackend != "mongo" {
		t.Errorf("got %+v", cfg)
	}
	if cfg.MongoURI != "mongodb://localhost:27017" || cfg.MongoDatabase != "sims" {
		t.Errorf("mongo config not read: %+v", cfg)
	}
	if cfg.TickerInterval != 3*time.Second {
		t.Errorf("TickerInterval=%v want 3s", cfg.TickerInterval)
	}
	if cfg.RandomSeed != 12345 {
		t.Errorf("RandomSeed=%v want 12345", cfg.RandomSeed)
	}
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("TICKER_INTERVAL", "soon")
	t.Setenv("RANDOM_SEED", "not-a-number")

	cfg := Load()

	if cfg.TickerInterval != 0 {
		t.Errorf("TickerInterval=%v want fallback 0", cfg.TickerInterval)
	}
	if cfg.RandomSeed != 0 {
		t.Errorf("RandomSeed=%v want fallback 0", cfg.RandomSeed)
	}
}
