package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"crypto-signal-analyzer/internal/analysis"
	"crypto-signal-analyzer/internal/fetch"
	"crypto-signal-analyzer/internal/logger"
	"crypto-signal-analyzer/internal/market"
	"crypto-signal-analyzer/internal/store"
	"crypto-signal-analyzer/internal/trace"

	"github.com/joho/godotenv"
)

// initializeSystem initializes environment, logger, and tracer
func initializeSystem() error {
	// Load environment variables
	_ = godotenv.Load()

	// Initialize logger
	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	// Initialize tracer
	if err := trace.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize tracer: %v\n", err)
	} else if trace.Enabled() {
		logger.Info(context.Background(), "Tracing enabled")
	}

	return nil
}

// loadConfig loads the configuration file, falling back to built-in defaults
// when the default path has no file. An explicitly given path must exist.
func loadConfig(ctx context.Context, path string, explicit bool) (*store.Config, error) {
	cfg, err := store.LoadConfig(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			logger.Info(ctx, "No config file found, using defaults", "path", path)
			return store.DefaultConfig(), nil
		}
		logger.ErrorWithErr(ctx, "Failed to load config", err)
		return nil, err
	}
	return cfg, nil
}

// resolveAPIKey returns the model credential from the env var the config
// names. The key never lives in the YAML file.
func resolveAPIKey(cfg *store.Config) string {
	return os.Getenv(cfg.LLM.APIKeyEnv)
}

// clients bundles the outbound-facing pieces main wires together.
type clients struct {
	market   *market.Client
	fetcher  *fetch.Client
	analyzer analysis.Analyzer
}

// initializeClients builds the market, fetch, and analysis clients from config
func initializeClients(ctx context.Context, cfg *store.Config) clients {
	prices := market.NewClient(cfg)

	switch cfg.LLM.Provider {
	case "OPENAI":
		logger.Info(ctx, "Using OpenAI analyzer", "model", cfg.LLM.Model)
	default:
		logger.Info(ctx, "Using Gemini analyzer", "model", cfg.LLM.Model)
	}

	return clients{
		market:   prices,
		fetcher:  fetch.NewClient(cfg),
		analyzer: analysis.NewAnalyzer(cfg, prices),
	}
}
