package store

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config must validate: %v", err)
	}
	if cfg.LLM.Provider != "GEMINI" || cfg.LLM.Model != "gemini-1.5-flash" {
		t.Errorf("unexpected LLM defaults: %s / %s", cfg.LLM.Provider, cfg.LLM.Model)
	}
	if cfg.LLM.APIKeyEnv != "GEMINI_API_KEY" {
		t.Errorf("expected GEMINI_API_KEY, got %s", cfg.LLM.APIKeyEnv)
	}
	if cfg.HistorySize != 50 {
		t.Errorf("expected history size 50, got %d", cfg.HistorySize)
	}
	if !cfg.Settings.Notifications {
		t.Error("notifications should default on")
	}
	if cfg.Limits.MinContentChars != 50 || cfg.Limits.MaxContentChars != 5000 {
		t.Errorf("unexpected content limits: %d/%d", cfg.Limits.MinContentChars, cfg.Limits.MaxContentChars)
	}
}

func TestLoadConfigAppliesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("llm:\n  provider: OPENAI\nmarket:\n  refresh_seconds: 15\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.LLM.APIKeyEnv != "OPENAI_API_KEY" {
		t.Errorf("provider-specific key env not applied, got %s", cfg.LLM.APIKeyEnv)
	}
	if cfg.Market.RefreshSeconds != 15 {
		t.Errorf("explicit value overridden, got %d", cfg.Market.RefreshSeconds)
	}
	if cfg.Market.CacheSeconds != 60 {
		t.Errorf("default not applied, got %d", cfg.Market.CacheSeconds)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad provider", func(c *Config) { c.LLM.Provider = "MISTRAL" }},
		{"bad prompt mode", func(c *Config) { c.LLM.PromptMode = "verbose" }},
		{"inverted limits", func(c *Config) { c.Limits.MinContentChars = 6000 }},
		{"bad timeframe", func(c *Config) { c.Settings.DefaultTimeframe = "2h" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
