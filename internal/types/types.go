package types

import "time"

// Timeframe identifiers used across prompts, parsing and rendering.
const (
	Timeframe15Min = "15min"
	Timeframe1H    = "1h"
	Timeframe4H    = "4h"
	Timeframe1Day  = "1day"
)

// Timeframes lists the four fixed prediction horizons in display order.
var Timeframes = []string{Timeframe15Min, Timeframe1H, Timeframe4H, Timeframe1Day}

// TimeframeSignal is the action/confidence/risk bundle for one timeframe.
// Every field is optional; absent values render as neutral placeholders.
type TimeframeSignal struct {
	Action             string   `json:"action,omitempty"`
	Confidence         float64  `json:"confidence,omitempty"`
	EntryPrice         string   `json:"entry_price,omitempty"`
	TargetPrice        string   `json:"target_price,omitempty"`
	StopLoss           string   `json:"stop_loss,omitempty"`
	PricePrediction    string   `json:"price_prediction,omitempty"`
	KeyFactors         []string `json:"key_factors,omitempty"`
	RiskLevel          string   `json:"risk_level,omitempty"`
	SentimentScore     float64  `json:"sentiment_score,omitempty"`
	VolumeImpact       string   `json:"volume_impact,omitempty"`
	TimeframeReasoning string   `json:"timeframe_reasoning,omitempty"`
}

// TokenRef identifies a cryptocurrency named or affected by the news.
// CurrentPriceEstimate is the model's guess; the numeric fields are
// populated by live enrichment and RealPriceData marks which one applies.
type TokenRef struct {
	Symbol               string  `json:"symbol"`
	Name                 string  `json:"name,omitempty"`
	MentionedInNews      bool    `json:"mentioned_in_news"`
	CurrentPriceEstimate string  `json:"current_price_estimate,omitempty"`
	CurrentPrice         float64 `json:"current_price,omitempty"`
	PriceChange24H       float64 `json:"price_change_24h,omitempty"`
	MarketCap            float64 `json:"market_cap,omitempty"`
	Volume24H            float64 `json:"volume_24h,omitempty"`
	RealPriceData        bool    `json:"real_price_data"`
}

// Recommendation is one entry of the model's ranked trade list.
// Lower priority is more important; ties keep their original order.
type Recommendation struct {
	Token     string `json:"token"`
	Timeframe string `json:"timeframe"`
	Action    string `json:"action"`
	Reason    string `json:"reason"`
	Priority  int    `json:"priority"`
}

// ResultShape discriminates the two response shapes the model produces.
// It is computed once at parse time, never re-probed at render time.
type ResultShape string

const (
	// ShapeLegacy is the flat per-timeframe response.
	ShapeLegacy ResultShape = "legacy"
	// ShapeExtended is the multi-token response with per-token analysis.
	ShapeExtended ResultShape = "extended"
)

// EnrichmentOutcome records the result of one per-token price lookup.
// A non-nil Err means the token kept its estimate-only fields.
type EnrichmentOutcome struct {
	Symbol string
	Err    error
}

// AnalysisResult is the root entity produced by one analyze call.
// It is immutable once produced and replaced wholesale on each run.
type AnalysisResult struct {
	Shape      ResultShape `json:"-"`
	Timestamp  time.Time   `json:"timestamp"`
	SourceText string      `json:"source_text,omitempty"`
	SourceURL  string      `json:"source_url,omitempty"`

	// Legacy shape: signals keyed by timeframe identifier.
	Timeframes map[string]TimeframeSignal `json:"timeframes,omitempty"`

	// Extended shape.
	IdentifiedTokens      []TokenRef                            `json:"identified_tokens,omitempty"`
	TokenAnalysis         map[string]map[string]TimeframeSignal `json:"token_analysis,omitempty"`
	OverallMarketAnalysis map[string]TimeframeSignal            `json:"overall_market_analysis,omitempty"`
	TopRecommendations    []Recommendation                      `json:"top_recommendations,omitempty"`

	OverallSummary string `json:"overall_summary,omitempty"`
	RiskWarning    string `json:"risk_warning,omitempty"`

	// Enrichment outcomes, one per identified token, in token order.
	Enrichment []EnrichmentOutcome `json:"-"`
}

// PricePoint is one symbol's live market data in USD.
type PricePoint struct {
	USD          float64 `json:"usd"`
	USD24HChange float64 `json:"usd_24h_change"`
	USDMarketCap float64 `json:"usd_market_cap"`
	USD24HVol    float64 `json:"usd_24h_vol"`
}

// Settings holds user preferences. Configuration only, never persisted here.
type Settings struct {
	Notifications    bool
	DefaultTimeframe string
	RiskTolerance    string
}
