package main

import (
	"fmt"
	"io"
	"time"

	"crypto-signal-analyzer/internal/format"
	"crypto-signal-analyzer/internal/market"
	"crypto-signal-analyzer/internal/signal"
	"crypto-signal-analyzer/internal/types"
)

func priceSymbols() []string {
	return market.FlagshipSymbols
}

// renderStatusLine redraws the watch-mode status line in place: a live clock
// plus the latest flagship prices. No trailing newline; each tick overwrites
// the previous line.
func renderStatusLine(w io.Writer, now time.Time, prices map[string]types.PricePoint) {
	fmt.Fprintf(w, "\r[%s]", now.Format("15:04:05"))
	for _, sym := range priceSymbols() {
		p := prices[sym]
		fmt.Fprintf(w, "  %s %s (%s)", sym, format.Price(p.USD), format.Change(p.USD24HChange))
	}
}

// renderResult prints the full analysis as plain text, driven by the unified
// view so both response shapes share one path.
func renderResult(w io.Writer, result types.AnalysisResult) {
	v := signal.Reconcile(result)

	fmt.Fprintf(w, "\nAnalysis at %s\n", result.Timestamp.Format("2006-01-02 15:04:05"))
	if result.SourceURL != "" {
		fmt.Fprintf(w, "Source: %s\n", result.SourceURL)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Market outlook")
	for _, tf := range types.Timeframes {
		sig, ok := v.Signal(tf)
		if !ok {
			fmt.Fprintf(w, "  %-6s %s\n", tf, format.Placeholder)
			continue
		}
		renderSignal(w, tf, sig)
	}

	if v.Shape == types.ShapeExtended {
		renderTokens(w, v, result)
		renderRecommendations(w, v)
	}

	if v.Summary != "" {
		fmt.Fprintf(w, "\nSummary: %s\n", v.Summary)
	}
	if v.RiskWarning != "" {
		fmt.Fprintf(w, "Risk warning: %s\n", v.RiskWarning)
	}
}

func renderSignal(w io.Writer, label string, sig types.TimeframeSignal) {
	fmt.Fprintf(w, "  %-6s %-4s confidence %s, risk %s, sentiment %s, volume %s\n",
		label,
		signal.DisplayAction(sig),
		signal.DisplayConfidence(sig),
		signal.DisplayRiskLevel(sig),
		signal.DisplaySentiment(sig),
		signal.DisplayVolumeImpact(sig),
	)
	if sig.EntryPrice != "" || sig.TargetPrice != "" || sig.StopLoss != "" {
		fmt.Fprintf(w, "         entry %s, target %s, stop %s\n",
			signal.DisplayText(sig.EntryPrice),
			signal.DisplayText(sig.TargetPrice),
			signal.DisplayText(sig.StopLoss),
		)
	}
	if sig.TimeframeReasoning != "" {
		fmt.Fprintf(w, "         %s\n", sig.TimeframeReasoning)
	}
}

func renderTokens(w io.Writer, v signal.View, result types.AnalysisResult) {
	if len(v.Tokens) == 0 {
		return
	}

	failures := map[string]error{}
	for _, out := range result.Enrichment {
		if out.Err != nil {
			failures[out.Symbol] = out.Err
		}
	}

	fmt.Fprintln(w, "\nTokens")
	for _, tok := range v.Tokens {
		fmt.Fprintf(w, "  %s", tok.Symbol)
		if tok.Name != "" {
			fmt.Fprintf(w, " (%s)", tok.Name)
		}
		if tok.RealPriceData {
			fmt.Fprintf(w, "  %s (%s)  mcap %s  vol %s",
				format.Price(tok.CurrentPrice),
				format.Change(tok.PriceChange24H),
				format.MarketCap(tok.MarketCap),
				format.Volume(tok.Volume24H),
			)
		} else if tok.CurrentPriceEstimate != "" {
			fmt.Fprintf(w, "  ~%s (model estimate)", tok.CurrentPriceEstimate)
		}
		fmt.Fprintln(w)

		if err := failures[tok.Symbol]; err != nil {
			fmt.Fprintf(w, "    live price unavailable: %v\n", err)
		}

		for _, tf := range types.Timeframes {
			if sig, ok := v.TokenSignal(tok.Symbol, tf); ok {
				renderSignal(w, "  "+tf, sig)
			}
		}
	}
}

func renderRecommendations(w io.Writer, v signal.View) {
	if len(v.Recommendations) == 0 {
		return
	}
	fmt.Fprintln(w, "\nTop recommendations")
	for i, rec := range v.Recommendations {
		fmt.Fprintf(w, "  %d. %s %s (%s)", i+1, rec.Action, rec.Token, rec.Timeframe)
		if rec.Reason != "" {
			fmt.Fprintf(w, " - %s", rec.Reason)
		}
		fmt.Fprintln(w)
	}
}
