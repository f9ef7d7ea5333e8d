package analysis

import (
	"context"
	"strings"
	"time"

	"crypto-signal-analyzer/internal/api"
	"crypto-signal-analyzer/internal/logger"
	"crypto-signal-analyzer/internal/store"
	"crypto-signal-analyzer/internal/trace"
	"crypto-signal-analyzer/internal/types"
)

const defaultOpenAIEndpoint = "https://api.openai.com/v1"

// OpenAIAnalyzer calls an OpenAI-compatible chat completions API with the
// credential as a bearer header.
type OpenAIAnalyzer struct {
	cfg    *store.Config
	api    *api.Client
	prices PriceSource
}

func NewOpenAIAnalyzer(cfg *store.Config, prices PriceSource) *OpenAIAnalyzer {
	endpoint := cfg.LLM.Endpoint
	if endpoint == "" {
		endpoint = defaultOpenAIEndpoint
	}
	return &OpenAIAnalyzer{
		cfg:    cfg,
		prices: prices,
		api: api.NewClient(
			api.WithBaseURL(endpoint),
			api.WithTimeout(time.Duration(cfg.Fetch.TimeoutSeconds)*time.Second),
			api.WithLogging(logger.IsDebugEnabled()),
		),
	}
}

func (a *OpenAIAnalyzer) Analyze(ctx context.Context, content, apiKey string) (types.AnalysisResult, error) {
	ctx, span := trace.StartSpan(ctx, "openai-api-call")
	defer span.End()

	if strings.TrimSpace(content) == "" {
		return types.AnalysisResult{}, errEmptyContent
	}

	body := map[string]any{
		"model": a.cfg.LLM.Model,
		"messages": []map[string]string{
			{"role": "user", "content": BuildPrompt(a.cfg.LLM.PromptMode, content)},
		},
		"temperature": a.cfg.LLM.Temperature,
		"max_tokens":  a.cfg.LLM.MaxTokens,
	}

	resp, err := a.api.PostJSONWithHeaders(ctx, "/chat/completions", body, map[string]string{
		"Authorization": "Bearer " + apiKey,
	})
	if err != nil {
		return types.AnalysisResult{}, &AnalysisError{Kind: ErrProviderError, Err: err}
	}

	if resp.StatusCode == 429 {
		return types.AnalysisResult{}, &AnalysisError{Kind: ErrQuotaExceeded, Status: resp.StatusCode}
	}
	if !resp.OK() {
		return types.AnalysisResult{}, &AnalysisError{
			Kind:    ErrProviderError,
			Status:  resp.StatusCode,
			Message: providerErrorMessage(resp.Body),
		}
	}

	var r struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := resp.DecodeJSON(&r); err != nil {
		return types.AnalysisResult{}, &AnalysisError{Kind: ErrBadEnvelope, Err: err}
	}
	if len(r.Choices) == 0 {
		return types.AnalysisResult{}, &AnalysisError{Kind: ErrBadEnvelope}
	}

	text := r.Choices[0].Message.Content
	logger.Debug(ctx, "Model response received", "provider", "openai", "chars", len(text))

	return finish(ctx, a.prices, text)
}
