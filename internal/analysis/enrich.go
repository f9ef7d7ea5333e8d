package analysis

import (
	"context"
	"errors"

	"crypto-signal-analyzer/internal/logger"
	"crypto-signal-analyzer/internal/types"
)

// ErrSymbolNotListed marks a token the price provider does not know.
var ErrSymbolNotListed = errors.New("symbol not listed on price provider")

// ErrNoSymbol marks a token record the model emitted without a symbol.
var ErrNoSymbol = errors.New("token has no symbol")

// PriceSource is the part of the market client enrichment needs.
type PriceSource interface {
	GetPrice(ctx context.Context, symbol string) (*types.PricePoint, error)
}

// enrichTokens merges live price data into each identified token. A failed
// lookup is recorded and swallowed; the token keeps its estimate-only fields
// and the overall analysis never fails because of enrichment.
func enrichTokens(ctx context.Context, prices PriceSource, res *types.AnalysisResult) {
	if res.Shape != types.ShapeExtended || prices == nil {
		return
	}

	outcomes := make([]types.EnrichmentOutcome, 0, len(res.IdentifiedTokens))
	for i := range res.IdentifiedTokens {
		token := &res.IdentifiedTokens[i]
		outcome := types.EnrichmentOutcome{Symbol: token.Symbol}

		switch point, err := lookup(ctx, prices, token.Symbol); {
		case err != nil:
			outcome.Err = &EnrichmentError{Symbol: token.Symbol, Err: err}
			logger.Warn(ctx, "Token enrichment failed, keeping estimate",
				"symbol", token.Symbol, "error", err)
		default:
			token.CurrentPrice = point.USD
			token.PriceChange24H = point.USD24HChange
			token.MarketCap = point.USDMarketCap
			token.Volume24H = point.USD24HVol
			token.RealPriceData = true
		}
		outcomes = append(outcomes, outcome)
	}
	res.Enrichment = outcomes
}

func lookup(ctx context.Context, prices PriceSource, symbol string) (*types.PricePoint, error) {
	if symbol == "" {
		return nil, ErrNoSymbol
	}
	point, err := prices.GetPrice(ctx, symbol)
	if err != nil {
		return nil, err
	}
	if point == nil {
		return nil, ErrSymbolNotListed
	}
	return point, nil
}
