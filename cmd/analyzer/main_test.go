package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"crypto-signal-analyzer/internal/state"
	"crypto-signal-analyzer/internal/store"
	"crypto-signal-analyzer/internal/validate"
)

func TestRunAnalysisChecksCredentialBeforeFetching(t *testing.T) {
	fetched := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fetched = true
	}))
	defer server.Close()

	cfg := store.DefaultConfig()
	cfg.Fetch.ProxyEndpoint = server.URL
	cfg.Fetch.DirectFallback = false
	cl := initializeClients(context.Background(), cfg)
	st := state.New(cfg)
	st.SetAPIKey("")

	err := runAnalysis(context.Background(), cfg, cl, st, "https://example.com/news", "", "")
	var verr *validate.ValidationError
	if !errors.As(err, &verr) || verr.Field != "api_key" {
		t.Fatalf("expected api_key validation error, got %v", err)
	}
	if fetched {
		t.Error("missing credential must fail before any network call")
	}
}

func TestRunAnalysisRejectsBadURLWithoutFetching(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("malformed URL must not reach the proxy")
	}))
	defer server.Close()

	cfg := store.DefaultConfig()
	cfg.Fetch.ProxyEndpoint = server.URL
	cfg.Fetch.DirectFallback = false
	cl := initializeClients(context.Background(), cfg)
	st := state.New(cfg)
	st.SetAPIKey("test-key")

	err := runAnalysis(context.Background(), cfg, cl, st, "not-a-url", "", "")
	var verr *validate.ValidationError
	if !errors.As(err, &verr) || verr.Field != "url" {
		t.Fatalf("expected url validation error, got %v", err)
	}
}
