package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"crypto-signal-analyzer/internal/api"
	"crypto-signal-analyzer/internal/logger"
	"crypto-signal-analyzer/internal/store"
	"crypto-signal-analyzer/internal/trace"
	"crypto-signal-analyzer/internal/types"
)

const defaultGeminiEndpoint = "https://generativelanguage.googleapis.com/v1beta"

// GeminiAnalyzer calls the Gemini generateContent API. The credential rides
// as a query parameter; that is this provider's contract, not ours.
type GeminiAnalyzer struct {
	cfg    *store.Config
	api    *api.Client
	prices PriceSource
}

func NewGeminiAnalyzer(cfg *store.Config, prices PriceSource) *GeminiAnalyzer {
	endpoint := cfg.LLM.Endpoint
	if endpoint == "" {
		endpoint = defaultGeminiEndpoint
	}
	return &GeminiAnalyzer{
		cfg:    cfg,
		prices: prices,
		api: api.NewClient(
			api.WithBaseURL(endpoint),
			api.WithTimeout(time.Duration(cfg.Fetch.TimeoutSeconds)*time.Second),
			api.WithLogging(logger.IsDebugEnabled()),
		),
	}
}

func (a *GeminiAnalyzer) Analyze(ctx context.Context, content, apiKey string) (types.AnalysisResult, error) {
	ctx, span := trace.StartSpan(ctx, "gemini-api-call")
	defer span.End()

	if strings.TrimSpace(content) == "" {
		return types.AnalysisResult{}, errEmptyContent
	}

	body := map[string]any{
		"contents": []map[string]any{
			{"parts": []map[string]string{
				{"text": BuildPrompt(a.cfg.LLM.PromptMode, content)},
			}},
		},
		"generationConfig": map[string]any{
			"temperature":     a.cfg.LLM.Temperature,
			"maxOutputTokens": a.cfg.LLM.MaxTokens,
			"topP":            a.cfg.LLM.TopP,
			"topK":            a.cfg.LLM.TopK,
		},
	}

	path := fmt.Sprintf("/models/%s:generateContent?key=%s", a.cfg.LLM.Model, url.QueryEscape(apiKey))
	resp, err := a.api.PostJSON(ctx, path, body)
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
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := resp.DecodeJSON(&r); err != nil {
		return types.AnalysisResult{}, &AnalysisError{Kind: ErrBadEnvelope, Err: err}
	}
	if len(r.Candidates) == 0 || len(r.Candidates[0].Content.Parts) == 0 {
		return types.AnalysisResult{}, &AnalysisError{Kind: ErrBadEnvelope}
	}

	text := r.Candidates[0].Content.Parts[0].Text
	logger.Debug(ctx, "Model response received", "provider", "gemini", "chars", len(text))

	return finish(ctx, a.prices, text)
}

// providerErrorMessage pulls the human-readable message out of a provider
// error body, best effort.
func providerErrorMessage(body []byte) string {
	var e struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &e); err != nil {
		return ""
	}
	return e.Error.Message
}
