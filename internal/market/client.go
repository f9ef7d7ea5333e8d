package market

import (
	"context"
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

// FlagshipSymbols are always present in the fallback mapping so the price
// header never renders an empty value.
var FlagshipSymbols = []string{"BTC", "ETH"}

// commonTokenIDs maps common ticker symbols to provider-internal coin ids.
// Symbols outside this table go through a search-then-price lookup.
var commonTokenIDs = map[string]string{
	"BTC":   "bitcoin",
	"ETH":   "ethereum",
	"BNB":   "binancecoin",
	"SOL":   "solana",
	"XRP":   "ripple",
	"ADA":   "cardano",
	"DOGE":  "dogecoin",
	"AVAX":  "avalanche-2",
	"DOT":   "polkadot",
	"MATIC": "matic-network",
	"LINK":  "chainlink",
	"UNI":   "uniswap",
	"LTC":   "litecoin",
	"ATOM":  "cosmos",
	"XLM":   "stellar",
	"NEAR":  "near",
	"ARB":   "arbitrum",
	"OP":    "optimism",
	"SHIB":  "shiba-inu",
	"TRX":   "tron",
}

// Client fetches live price data from a CoinGecko-style endpoint.
type Client struct {
	api     *api.Client
	cache   *priceCache
	limiter *RateLimiter
}

// NewClient creates a market data client from config.
func NewClient(cfg *store.Config) *Client {
	refill := time.Minute / time.Duration(cfg.Market.RequestsPerMinute)
	return &Client{
		api: api.NewClient(
			api.WithBaseURL(cfg.Market.Endpoint),
			api.WithTimeout(time.Duration(cfg.Fetch.TimeoutSeconds)*time.Second),
			api.WithHeader("Accept", "application/json"),
			api.WithLogging(logger.IsDebugEnabled()),
		),
		cache:   newPriceCache(time.Duration(cfg.Market.CacheSeconds) * time.Second),
		limiter: NewRateLimiter(cfg.Market.RequestsPerMinute, refill),
	}
}

// GetPrices fetches current price data for the given symbols in one call.
// It never fails: on any transport or HTTP error it returns a mapping with
// zeroed entries for the flagship symbols so callers always have something
// to render.
func (c *Client) GetPrices(ctx context.Context, symbols ...string) map[string]types.PricePoint {
	ctx, span := trace.StartSpan(ctx, "market.GetPrices")
	defer span.End()

	if len(symbols) == 0 {
		symbols = FlagshipSymbols
	}

	ids := make([]string, 0, len(symbols))
	idToSymbol := make(map[string]string, len(symbols))
	for _, sym := range symbols {
		sym = strings.ToUpper(strings.TrimSpace(sym))
		id, ok := commonTokenIDs[sym]
		if !ok {
			continue
		}
		ids = append(ids, id)
		idToSymbol[id] = sym
	}

	raw, err := c.simplePrice(ctx, ids)
	if err != nil {
		logger.ErrorWithErr(ctx, "Bulk price fetch failed, using fallback", err, "symbols", symbols)
		return fallbackPrices()
	}

	result := make(map[string]types.PricePoint, len(raw))
	for id, point := range raw {
		sym, ok := idToSymbol[id]
		if !ok {
			continue
		}
		result[sym] = point
		c.cache.set(sym, point)
	}
	return result
}

// GetPrice fetches live data for a single symbol. It returns (nil, nil) when
// the symbol cannot be resolved to a listed coin. Unlike GetPrices it does
// propagate transport errors; callers doing enrichment swallow them.
func (c *Client) GetPrice(ctx context.Context, symbol string) (*types.PricePoint, error) {
	ctx, span := trace.StartSpan(ctx, "market.GetPrice")
	defer span.End()

	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, nil
	}

	if cached, ok := c.cache.get(symbol); ok {
		return &cached, nil
	}

	id, ok := commonTokenIDs[symbol]
	if !ok {
		resolved, err := c.searchCoinID(ctx, symbol)
		if err != nil {
			return nil, err
		}
		if resolved == "" {
			logger.Debug(ctx, "Symbol not found via search", "symbol", symbol)
			return nil, nil
		}
		id = resolved
	}

	raw, err := c.simplePrice(ctx, []string{id})
	if err != nil {
		return nil, err
	}
	point, ok := raw[id]
	if !ok {
		return nil, nil
	}

	c.cache.set(symbol, point)
	return &point, nil
}

// simplePrice calls the bulk simple/price endpoint for the given coin ids.
func (c *Client) simplePrice(ctx context.Context, ids []string) (map[string]types.PricePoint, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	path := fmt.Sprintf(
		"/simple/price?ids=%s&vs_currencies=usd&include_24hr_change=true&include_market_cap=true&include_24hr_vol=true",
		url.QueryEscape(strings.Join(ids, ",")),
	)
	resp, err := c.api.Get(ctx, path)
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, fmt.Errorf("price API returned status %d", resp.StatusCode)
	}

	var raw map[string]types.PricePoint
	if err := resp.DecodeJSON(&raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// searchCoinID resolves an unknown symbol to a coin id via the search
// endpoint. Returns "" when search yields nothing.
func (c *Client) searchCoinID(ctx context.Context, symbol string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	resp, err := c.api.Get(ctx, "/search?query="+url.QueryEscape(symbol))
	if err != nil {
		return "", err
	}
	if !resp.OK() {
		return "", fmt.Errorf("search API returned status %d", resp.StatusCode)
	}

	var r struct {
		Coins []struct {
			ID     string `json:"id"`
			Symbol string `json:"symbol"`
		} `json:"coins"`
	}
	if err := resp.DecodeJSON(&r); err != nil {
		return "", err
	}
	if len(r.Coins) == 0 {
		return "", nil
	}

	// Prefer an exact symbol match over search ranking.
	for _, coin := range r.Coins {
		if strings.EqualFold(coin.Symbol, symbol) {
			return coin.ID, nil
		}
	}
	return r.Coins[0].ID, nil
}

// fallbackPrices returns zeroed flagship entries used when the bulk call fails.
func fallbackPrices() map[string]types.PricePoint {
	fallback := make(map[string]types.PricePoint, len(FlagshipSymbols))
	for _, sym := range FlagshipSymbols {
		fallback[sym] = types.PricePoint{}
	}
	return fallback
}
