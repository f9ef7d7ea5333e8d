package signal

import (
	"fmt"
	"sort"

	"crypto-signal-analyzer/internal/format"
	"crypto-signal-analyzer/internal/types"
)

// View is the unified render model over both response shapes. The shape is
// resolved here once; consumers never probe field presence again.
type View struct {
	Shape types.ResultShape

	// Timeframes holds the market-wide signals: the flat legacy signals or
	// the extended overall_market_analysis.
	Timeframes map[string]types.TimeframeSignal

	Tokens          []types.TokenRef
	TokenSignals    map[string]map[string]types.TimeframeSignal
	Recommendations []types.Recommendation

	Summary     string
	RiskWarning string
}

// Reconcile maps a result of either shape onto the unified view.
func Reconcile(res types.AnalysisResult) View {
	v := View{
		Shape:       res.Shape,
		Summary:     res.OverallSummary,
		RiskWarning: res.RiskWarning,
	}

	if res.Shape == types.ShapeExtended {
		v.Timeframes = res.OverallMarketAnalysis
		v.Tokens = res.IdentifiedTokens
		v.TokenSignals = res.TokenAnalysis
		v.Recommendations = sortRecommendations(res.TopRecommendations)
		return v
	}

	v.Timeframes = res.Timeframes
	return v
}

// Signal returns the market-wide signal for a timeframe. Absent signals
// come back as an empty record; display helpers turn that into placeholders.
func (v View) Signal(timeframe string) (types.TimeframeSignal, bool) {
	sig, ok := v.Timeframes[timeframe]
	return sig, ok
}

// TokenSignal returns one token's signal for a timeframe.
func (v View) TokenSignal(symbol, timeframe string) (types.TimeframeSignal, bool) {
	signals, ok := v.TokenSignals[symbol]
	if !ok {
		return types.TimeframeSignal{}, false
	}
	sig, ok := signals[timeframe]
	return sig, ok
}

// sortRecommendations orders by priority ascending, stable on input order
// for ties (the source defines no tie-break).
func sortRecommendations(recs []types.Recommendation) []types.Recommendation {
	out := make([]types.Recommendation, len(recs))
	copy(out, recs)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority < out[j].Priority
	})
	return out
}

// Display helpers. Absent values render as neutral placeholders, never errors.

func DisplayAction(sig types.TimeframeSignal) string {
	if sig.Action == "" {
		return format.Placeholder
	}
	return sig.Action
}

func DisplayConfidence(sig types.TimeframeSignal) string {
	if sig.Confidence == 0 {
		return format.Placeholder
	}
	return fmt.Sprintf("%.0f/10", sig.Confidence)
}

func DisplayRiskLevel(sig types.TimeframeSignal) string {
	if sig.RiskLevel == "" {
		return format.Placeholder
	}
	return sig.RiskLevel
}

func DisplaySentiment(sig types.TimeframeSignal) string {
	if sig.SentimentScore == 0 {
		return format.Placeholder
	}
	return fmt.Sprintf("%.0f/100", sig.SentimentScore)
}

func DisplayVolumeImpact(sig types.TimeframeSignal) string {
	if sig.VolumeImpact == "" {
		return format.Placeholder
	}
	return sig.VolumeImpact
}

func DisplayText(s string) string {
	if s == "" {
		return format.Placeholder
	}
	return s
}
