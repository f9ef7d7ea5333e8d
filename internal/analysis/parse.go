package analysis

import (
	"encoding/json"
	"strings"

	"crypto-signal-analyzer/internal/types"
)

// rawEnvelope covers both response shapes; the discriminant is computed
// once here, never probed again at render time.
type rawEnvelope struct {
	Analysis15Min *types.TimeframeSignal `json:"15min_analysis"`
	Analysis1H    *types.TimeframeSignal `json:"1h_analysis"`
	Analysis4H    *types.TimeframeSignal `json:"4h_analysis"`
	Analysis1Day  *types.TimeframeSignal `json:"1day_analysis"`

	IdentifiedTokens      []types.TokenRef                            `json:"identified_tokens"`
	TokenAnalysis         map[string]map[string]types.TimeframeSignal `json:"token_analysis"`
	OverallMarketAnalysis map[string]types.TimeframeSignal            `json:"overall_market_analysis"`
	TopRecommendations    []types.Recommendation                      `json:"top_recommendations"`

	OverallSummary string `json:"overall_summary"`
	RiskWarning    string `json:"risk_warning"`
}

// ParseResult parses cleaned model output into a tagged AnalysisResult.
// Parse failure is terminal: no partial recovery, no best-effort field
// extraction.
func ParseResult(cleaned string) (types.AnalysisResult, error) {
	var raw rawEnvelope
	if err := json.Unmarshal([]byte(cleaned), &raw); err != nil {
		return types.AnalysisResult{}, &AnalysisError{Kind: ErrUnparseableResponse, Err: err}
	}

	res := types.AnalysisResult{
		OverallSummary: raw.OverallSummary,
		RiskWarning:    raw.RiskWarning,
	}

	if len(raw.IdentifiedTokens) > 0 || len(raw.TokenAnalysis) > 0 {
		res.Shape = types.ShapeExtended
		res.IdentifiedTokens = normalizeTokens(raw.IdentifiedTokens)
		res.TokenAnalysis = make(map[string]map[string]types.TimeframeSignal, len(raw.TokenAnalysis))
		for symbol, signals := range raw.TokenAnalysis {
			res.TokenAnalysis[strings.ToUpper(symbol)] = normalizeSignalMap(signals)
		}
		res.OverallMarketAnalysis = normalizeSignalMap(raw.OverallMarketAnalysis)
		res.TopRecommendations = raw.TopRecommendations
		return res, nil
	}

	res.Shape = types.ShapeLegacy
	res.Timeframes = map[string]types.TimeframeSignal{}
	for tf, sig := range map[string]*types.TimeframeSignal{
		types.Timeframe15Min: raw.Analysis15Min,
		types.Timeframe1H:    raw.Analysis1H,
		types.Timeframe4H:    raw.Analysis4H,
		types.Timeframe1Day:  raw.Analysis1Day,
	} {
		if sig != nil {
			res.Timeframes[tf] = normalizeSignal(*sig)
		}
	}
	return res, nil
}

// normalizeSignalMap rewrites "<tf>_analysis" keys to bare timeframe keys
// and normalizes enum casing.
func normalizeSignalMap(signals map[string]types.TimeframeSignal) map[string]types.TimeframeSignal {
	if signals == nil {
		return nil
	}
	out := make(map[string]types.TimeframeSignal, len(signals))
	for key, sig := range signals {
		tf := strings.TrimSuffix(key, "_analysis")
		out[tf] = normalizeSignal(sig)
	}
	return out
}

func normalizeSignal(sig types.TimeframeSignal) types.TimeframeSignal {
	sig.Action = strings.ToUpper(strings.TrimSpace(sig.Action))
	sig.RiskLevel = strings.ToUpper(strings.TrimSpace(sig.RiskLevel))
	sig.VolumeImpact = strings.ToUpper(strings.TrimSpace(sig.VolumeImpact))
	return sig
}

func normalizeTokens(tokens []types.TokenRef) []types.TokenRef {
	out := make([]types.TokenRef, len(tokens))
	copy(out, tokens)
	for i := range out {
		out[i].Symbol = strings.ToUpper(strings.TrimSpace(out[i].Symbol))
	}
	return out
}
