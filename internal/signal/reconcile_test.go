package signal

import (
	"testing"

	"crypto-signal-analyzer/internal/types"
)

func TestReconcileLegacy(t *testing.T) {
	res := types.AnalysisResult{
		Shape: types.ShapeLegacy,
		Timeframes: map[string]types.TimeframeSignal{
			types.Timeframe1H: {Action: "BUY", Confidence: 7},
		},
		OverallSummary: "summary",
		RiskWarning:    "warning",
	}

	v := Reconcile(res)

	if v.Shape != types.ShapeLegacy {
		t.Fatalf("shape should carry over, got %s", v.Shape)
	}
	sig, ok := v.Signal(types.Timeframe1H)
	if !ok || sig.Action != "BUY" {
		t.Errorf("expected 1h BUY, got %+v ok=%v", sig, ok)
	}
	if len(v.Tokens) != 0 || len(v.Recommendations) != 0 {
		t.Error("legacy view has no tokens or recommendations")
	}
	if v.Summary != "summary" || v.RiskWarning != "warning" {
		t.Error("summary fields should carry over")
	}
}

func TestReconcileExtended(t *testing.T) {
	res := types.AnalysisResult{
		Shape:            types.ShapeExtended,
		IdentifiedTokens: []types.TokenRef{{Symbol: "BTC"}},
		TokenAnalysis: map[string]map[string]types.TimeframeSignal{
			"BTC": {types.Timeframe1Day: {Action: "BUY"}},
		},
		OverallMarketAnalysis: map[string]types.TimeframeSignal{
			types.Timeframe1H: {Action: "HOLD"},
		},
	}

	v := Reconcile(res)

	if sig, ok := v.Signal(types.Timeframe1H); !ok || sig.Action != "HOLD" {
		t.Errorf("overall market analysis should feed the timeframe view, got %+v", sig)
	}
	if sig, ok := v.TokenSignal("BTC", types.Timeframe1Day); !ok || sig.Action != "BUY" {
		t.Errorf("expected BTC 1day BUY, got %+v", sig)
	}
	if _, ok := v.TokenSignal("ETH", types.Timeframe1Day); ok {
		t.Error("unknown token should report absent")
	}
}

func TestMissingTimeframeRendersPlaceholders(t *testing.T) {
	v := Reconcile(types.AnalysisResult{Shape: types.ShapeLegacy})

	sig, ok := v.Signal(types.Timeframe4H)
	if ok {
		t.Fatal("absent timeframe should report !ok")
	}
	if DisplayAction(sig) != "N/A" {
		t.Errorf("absent action should render N/A, got %q", DisplayAction(sig))
	}
	if DisplayConfidence(sig) != "N/A" {
		t.Errorf("absent confidence should render N/A, got %q", DisplayConfidence(sig))
	}
	if DisplayRiskLevel(sig) != "N/A" || DisplaySentiment(sig) != "N/A" || DisplayVolumeImpact(sig) != "N/A" {
		t.Error("all absent fields should render N/A")
	}
}

func TestDisplayHelpersWithValues(t *testing.T) {
	sig := types.TimeframeSignal{
		Action:         "SELL",
		Confidence:     8,
		RiskLevel:      "HIGH",
		SentimentScore: 32,
		VolumeImpact:   "MEDIUM",
	}

	if DisplayAction(sig) != "SELL" {
		t.Error("action should render verbatim")
	}
	if DisplayConfidence(sig) != "8/10" {
		t.Errorf("confidence should render as X/10, got %q", DisplayConfidence(sig))
	}
	if DisplaySentiment(sig) != "32/100" {
		t.Errorf("sentiment should render as X/100, got %q", DisplaySentiment(sig))
	}
}

func TestRecommendationsSortStable(t *testing.T) {
	res := types.AnalysisResult{
		Shape:            types.ShapeExtended,
		IdentifiedTokens: []types.TokenRef{{Symbol: "BTC"}},
		TopRecommendations: []types.Recommendation{
			{Token: "ETH", Priority: 2},
			{Token: "BTC", Priority: 1},
			{Token: "SOL", Priority: 2},
		},
	}

	v := Reconcile(res)

	got := make([]string, len(v.Recommendations))
	for i, r := range v.Recommendations {
		got[i] = r.Token
	}
	want := []string{"BTC", "ETH", "SOL"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected stable priority order %v, got %v", want, got)
		}
	}

	// Input slice must be untouched.
	if res.TopRecommendations[0].Token != "ETH" {
		t.Error("Reconcile must not mutate its input")
	}
}
