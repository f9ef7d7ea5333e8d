package analysis

import (
	"context"
	"errors"
	"time"

	"crypto-signal-analyzer/internal/store"
	"crypto-signal-analyzer/internal/types"
)

// errEmptyContent guards the one input constraint this client enforces
// itself; length limits are the caller's job.
var errEmptyContent = errors.New("content must not be empty")

// Analyzer turns article content into a structured trading signal result.
type Analyzer interface {
	Analyze(ctx context.Context, content, apiKey string) (types.AnalysisResult, error)
}

// NewAnalyzer returns the provider implementation selected by config.
func NewAnalyzer(cfg *store.Config, prices PriceSource) Analyzer {
	switch cfg.LLM.Provider {
	case "OPENAI":
		return NewOpenAIAnalyzer(cfg, prices)
	default:
		return NewGeminiAnalyzer(cfg, prices)
	}
}

// finish runs the shared post-call pipeline: fence cleanup, parse with shape
// discrimination, per-token enrichment, timestamp.
func finish(ctx context.Context, prices PriceSource, rawText string) (types.AnalysisResult, error) {
	res, err := ParseResult(StripFences(rawText))
	if err != nil {
		return types.AnalysisResult{}, err
	}
	enrichTokens(ctx, prices, &res)
	res.Timestamp = time.Now()
	return res, nil
}
