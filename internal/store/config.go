package store

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"crypto-signal-analyzer/internal/types"
)

type Config struct {
	LLM struct {
		Provider    string  `yaml:"provider"`    // GEMINI or OPENAI
		Model       string  `yaml:"model"`
		Endpoint    string  `yaml:"endpoint"`    // base URL override
		APIKeyEnv   string  `yaml:"api_key_env"` // env var holding the credential
		Temperature float32 `yaml:"temperature"`
		MaxTokens   int     `yaml:"max_tokens"`
		TopP        float32 `yaml:"top_p"`
		TopK        int     `yaml:"top_k"`
		PromptMode  string  `yaml:"prompt_mode"` // legacy or extended
	} `yaml:"llm"`
	Market struct {
		Endpoint          string `yaml:"endpoint"`
		RefreshSeconds    int    `yaml:"refresh_seconds"`
		CacheSeconds      int    `yaml:"cache_seconds"`
		RequestsPerMinute int    `yaml:"requests_per_minute"`
	} `yaml:"market"`
	Fetch struct {
		ProxyEndpoint  string `yaml:"proxy_endpoint"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
		ExtractArticle bool   `yaml:"extract_article"`
		DirectFallback bool   `yaml:"direct_fallback"`
	} `yaml:"fetch"`
	Limits struct {
		MinContentChars int `yaml:"min_content_chars"`
		MaxContentChars int `yaml:"max_content_chars"`
	} `yaml:"limits"`
	HistorySize int `yaml:"history_size"`
	Settings    struct {
		Notifications    bool   `yaml:"notifications"`
		DefaultTimeframe string `yaml:"default_timeframe"`
		RiskTolerance    string `yaml:"risk_tolerance"`
	} `yaml:"settings"`
}

func (c *Config) Validate() error {
	if c.LLM.Provider != "GEMINI" && c.LLM.Provider != "OPENAI" {
		return fmt.Errorf("invalid llm.provider '%s': must be 'GEMINI' or 'OPENAI'", c.LLM.Provider)
	}
	if c.LLM.PromptMode != "legacy" && c.LLM.PromptMode != "extended" {
		return fmt.Errorf("llm.prompt_mode must be 'legacy' or 'extended', got '%s'", c.LLM.PromptMode)
	}
	if c.Limits.MinContentChars >= c.Limits.MaxContentChars {
		return fmt.Errorf("limits.min_content_chars (%d) must be below max_content_chars (%d)",
			c.Limits.MinContentChars, c.Limits.MaxContentChars)
	}
	valid := map[string]bool{}
	for _, tf := range types.Timeframes {
		valid[tf] = true
	}
	if !valid[c.Settings.DefaultTimeframe] {
		return fmt.Errorf("settings.default_timeframe must be one of %v, got '%s'",
			types.Timeframes, c.Settings.DefaultTimeframe)
	}
	return nil
}

func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}
	c.applyDefaults()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &c, nil
}

// DefaultConfig returns a config with all defaults applied, used when no
// config file is present.
func DefaultConfig() *Config {
	var c Config
	c.applyDefaults()
	c.Settings.Notifications = true
	return &c
}

func (c *Config) applyDefaults() {
	if c.LLM.Provider == "" {
		c.LLM.Provider = "GEMINI"
	}
	if c.LLM.Model == "" {
		c.LLM.Model = "gemini-1.5-flash"
	}
	if c.LLM.APIKeyEnv == "" {
		if c.LLM.Provider == "OPENAI" {
			c.LLM.APIKeyEnv = "OPENAI_API_KEY"
		} else {
			c.LLM.APIKeyEnv = "GEMINI_API_KEY"
		}
	}
	if c.LLM.Temperature == 0 {
		c.LLM.Temperature = 0.7
	}
	if c.LLM.MaxTokens == 0 {
		c.LLM.MaxTokens = 800
	}
	if c.LLM.TopP == 0 {
		c.LLM.TopP = 0.8
	}
	if c.LLM.TopK == 0 {
		c.LLM.TopK = 40
	}
	if c.LLM.PromptMode == "" {
		c.LLM.PromptMode = "extended"
	}
	if c.Market.Endpoint == "" {
		c.Market.Endpoint = "https://api.coingecko.com/api/v3"
	}
	if c.Market.RefreshSeconds == 0 {
		c.Market.RefreshSeconds = 60
	}
	if c.Market.CacheSeconds == 0 {
		c.Market.CacheSeconds = 60
	}
	if c.Market.RequestsPerMinute == 0 {
		c.Market.RequestsPerMinute = 30
	}
	if c.Fetch.ProxyEndpoint == "" {
		c.Fetch.ProxyEndpoint = "https://api.allorigins.win/get"
	}
	if c.Fetch.TimeoutSeconds == 0 {
		c.Fetch.TimeoutSeconds = 30
	}
	if c.Limits.MinContentChars == 0 {
		c.Limits.MinContentChars = 50
	}
	if c.Limits.MaxContentChars == 0 {
		c.Limits.MaxContentChars = 5000
	}
	if c.HistorySize == 0 {
		c.HistorySize = 50
	}
	if c.Settings.DefaultTimeframe == "" {
		c.Settings.DefaultTimeframe = types.Timeframe1H
	}
	if c.Settings.RiskTolerance == "" {
		c.Settings.RiskTolerance = "medium"
	}
}
