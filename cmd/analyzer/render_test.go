package main

import (
	"strings"
	"testing"
	"time"

	"crypto-signal-analyzer/internal/types"
)

func TestRenderStatusLine(t *testing.T) {
	var buf strings.Builder
	prices := map[string]types.PricePoint{
		"BTC": {USD: 65000, USD24HChange: 2.5},
		"ETH": {USD: 3500, USD24HChange: -1.2},
	}
	now := time.Date(2026, 8, 31, 10, 30, 5, 0, time.UTC)

	renderStatusLine(&buf, now, prices)
	out := buf.String()

	if !strings.HasPrefix(out, "\r") {
		t.Error("status line must rewrite in place with a carriage return")
	}
	if strings.Contains(out, "\n") {
		t.Error("status line must not emit newlines")
	}
	if !strings.Contains(out, "10:30:05") {
		t.Errorf("clock should render, got %q", out)
	}
	if !strings.Contains(out, "BTC $65,000 (+2.50%)") {
		t.Errorf("BTC quote should render, got %q", out)
	}
	if !strings.Contains(out, "ETH $3,500 (-1.20%)") {
		t.Errorf("ETH quote should render, got %q", out)
	}
}

func TestRenderStatusLineMissingPrices(t *testing.T) {
	var buf strings.Builder
	renderStatusLine(&buf, time.Now(), map[string]types.PricePoint{})

	if !strings.Contains(buf.String(), "BTC N/A") {
		t.Errorf("absent prices should render placeholders, got %q", buf.String())
	}
}
