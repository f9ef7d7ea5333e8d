package analysis

import (
	"context"
	"errors"
	"testing"

	"crypto-signal-analyzer/internal/types"
)

// stubPrices fakes the market client for enrichment tests.
type stubPrices struct {
	points map[string]*types.PricePoint
	errs   map[string]error
	calls  []string
}

func (s *stubPrices) GetPrice(_ context.Context, symbol string) (*types.PricePoint, error) {
	s.calls = append(s.calls, symbol)
	if err, ok := s.errs[symbol]; ok {
		return nil, err
	}
	return s.points[symbol], nil
}

func extendedResult(symbols ...string) types.AnalysisResult {
	res := types.AnalysisResult{Shape: types.ShapeExtended}
	for _, sym := range symbols {
		res.IdentifiedTokens = append(res.IdentifiedTokens, types.TokenRef{
			Symbol:               sym,
			CurrentPriceEstimate: "$100",
		})
	}
	return res
}

func TestEnrichTokensMergesLiveData(t *testing.T) {
	prices := &stubPrices{points: map[string]*types.PricePoint{
		"BTC": {USD: 65000, USD24HChange: 2.5, USDMarketCap: 1.2e12, USD24HVol: 3.1e10},
	}}
	res := extendedResult("BTC")

	enrichTokens(context.Background(), prices, &res)

	token := res.IdentifiedTokens[0]
	if !token.RealPriceData {
		t.Fatal("expected RealPriceData flag set")
	}
	if token.CurrentPrice != 65000 || token.MarketCap != 1.2e12 {
		t.Errorf("live fields not merged: %+v", token)
	}
	if len(res.Enrichment) != 1 || res.Enrichment[0].Err != nil {
		t.Errorf("expected one successful outcome, got %v", res.Enrichment)
	}
}

func TestEnrichTokensSwallowsFailures(t *testing.T) {
	transport := errors.New("connection reset")
	prices := &stubPrices{
		points: map[string]*types.PricePoint{"ETH": {USD: 3500}},
		errs:   map[string]error{"BTC": transport},
	}
	res := extendedResult("BTC", "ETH")

	enrichTokens(context.Background(), prices, &res)

	// Failed token keeps its estimate, the rest still enrich.
	if res.IdentifiedTokens[0].RealPriceData {
		t.Error("failed token must keep estimate-only fields")
	}
	if res.IdentifiedTokens[0].CurrentPriceEstimate != "$100" {
		t.Error("estimate should be untouched")
	}
	if !res.IdentifiedTokens[1].RealPriceData {
		t.Error("second token should still enrich")
	}

	if len(res.Enrichment) != 2 {
		t.Fatalf("expected outcome per token, got %d", len(res.Enrichment))
	}
	var eerr *EnrichmentError
	if !errors.As(res.Enrichment[0].Err, &eerr) {
		t.Fatalf("expected *EnrichmentError, got %T", res.Enrichment[0].Err)
	}
	if !errors.Is(eerr, transport) {
		t.Error("underlying cause should be preserved")
	}
}

func TestEnrichTokensUnlistedSymbol(t *testing.T) {
	prices := &stubPrices{points: map[string]*types.PricePoint{}}
	res := extendedResult("NOSUCH")

	enrichTokens(context.Background(), prices, &res)

	if res.IdentifiedTokens[0].RealPriceData {
		t.Error("unlisted symbol must not be marked as live data")
	}
	if !errors.Is(res.Enrichment[0].Err, ErrSymbolNotListed) {
		t.Errorf("expected ErrSymbolNotListed, got %v", res.Enrichment[0].Err)
	}
}

func TestEnrichTokensEmptySymbol(t *testing.T) {
	prices := &stubPrices{}
	res := extendedResult("")

	enrichTokens(context.Background(), prices, &res)

	if len(prices.calls) != 0 {
		t.Error("empty symbol must not trigger a lookup")
	}
	if !errors.Is(res.Enrichment[0].Err, ErrNoSymbol) {
		t.Errorf("expected ErrNoSymbol, got %v", res.Enrichment[0].Err)
	}
}

func TestEnrichTokensLegacyShapeNoop(t *testing.T) {
	prices := &stubPrices{}
	res := types.AnalysisResult{Shape: types.ShapeLegacy}

	enrichTokens(context.Background(), prices, &res)

	if len(prices.calls) != 0 {
		t.Error("legacy results have nothing to enrich")
	}
	if res.Enrichment != nil {
		t.Error("no outcomes expected for legacy shape")
	}
}
