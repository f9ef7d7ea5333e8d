package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"crypto-signal-analyzer/internal/logger"
	"crypto-signal-analyzer/internal/state"
	"crypto-signal-analyzer/internal/store"
	"crypto-signal-analyzer/internal/trace"
	"crypto-signal-analyzer/internal/validate"
)

func must(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func main() {
	configPath := flag.String("config", "config.yaml", "path to the config file")
	urlFlag := flag.String("url", "", "news article URL to fetch and analyze")
	textFlag := flag.String("text", "", "news text to analyze")
	fileFlag := flag.String("file", "", "file holding news text to analyze")
	extended := flag.Bool("extended", false, "request the extended per-token response shape")
	watch := flag.Bool("watch", false, "keep running and refresh market prices on an interval")
	flag.Parse()

	must(initializeSystem())
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		_ = trace.Shutdown(shutdownCtx)
	}()

	explicitConfig := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "config" {
			explicitConfig = true
		}
	})

	cfg, err := loadConfig(ctx, *configPath, explicitConfig)
	must(err)
	if *extended {
		cfg.LLM.PromptMode = "extended"
	}

	cl := initializeClients(ctx, cfg)
	st := state.New(cfg)
	st.SetAPIKey(resolveAPIKey(cfg))

	hasInput := *urlFlag != "" || *textFlag != "" || *fileFlag != ""
	if !hasInput && !*watch {
		fmt.Fprintln(os.Stderr, "nothing to do: pass -url, -text, or -file (or -watch)")
		flag.Usage()
		os.Exit(2)
	}

	if hasInput {
		must(runAnalysis(ctx, cfg, cl, st, *urlFlag, *textFlag, *fileFlag))
	}

	if *watch {
		runWatch(ctx, cfg, cl)
	}
}

// runAnalysis is the one-shot path: resolve content, validate, call the
// model, apply the result to the store, render.
func runAnalysis(ctx context.Context, cfg *store.Config, cl clients, st *state.Store, url, text, file string) error {
	// Credential check comes first: a missing key must fail before any
	// network call is made.
	apiKey := st.Snapshot().APIKey
	if err := validate.APIKey(apiKey); err != nil {
		return fmt.Errorf("%w (set %s)", err, cfg.LLM.APIKeyEnv)
	}

	content, err := resolveContent(ctx, cl, st, url, text, file)
	if err != nil {
		return err
	}
	if err := validate.Content(content, cfg.Limits.MinContentChars, cfg.Limits.MaxContentChars); err != nil {
		return err
	}

	seq := st.BeginAnalysis()
	logger.Info(ctx, "Starting analysis",
		"provider", cfg.LLM.Provider,
		"mode", cfg.LLM.PromptMode,
		"content_chars", len(content),
	)

	result, err := cl.analyzer.Analyze(ctx, content, apiKey)
	if err != nil {
		st.FailAnalysis(seq)
		logger.ErrorWithErr(ctx, "Analysis failed", err)
		return err
	}

	result.SourceText = summarizeSource(content)
	result.SourceURL = url
	if !st.CompleteAnalysis(seq, result) {
		logger.Warn(ctx, "Discarding stale analysis result")
		return nil
	}

	renderResult(os.Stdout, result)
	return nil
}

// summarizeSource keeps only the head of the analyzed text in history.
func summarizeSource(content string) string {
	if len(content) <= 200 {
		return content
	}
	return content[:200] + "..."
}

// resolveContent picks the input source: inline text, a local file, or a
// fetched article.
func resolveContent(ctx context.Context, cl clients, st *state.Store, url, text, file string) (string, error) {
	switch {
	case text != "":
		st.SetInputText(text)
		return text, nil
	case file != "":
		b, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("failed to read input file: %w", err)
		}
		content := string(b)
		st.SetInputText(content)
		return content, nil
	default:
		if err := validate.URL(url); err != nil {
			return "", err
		}
		st.SetInputURL(url)
		content, err := cl.fetcher.FetchArticle(ctx, url)
		if err != nil {
			logger.ErrorWithErr(ctx, "Failed to fetch article", err)
			return "", err
		}
		st.SetInputText(content)
		return content, nil
	}
}

// runWatch refreshes flagship market prices on the configured interval until
// interrupted. A once-a-second clock tick redraws the status line in place so
// the displayed time stays current between refreshes.
func runWatch(ctx context.Context, cfg *store.Config, cl clients) {
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)

	refresh := time.NewTicker(time.Duration(cfg.Market.RefreshSeconds) * time.Second)
	defer refresh.Stop()
	clock := time.NewTicker(time.Second)
	defer clock.Stop()

	logger.Info(ctx, "Watching market prices",
		"interval_seconds", cfg.Market.RefreshSeconds,
		"symbols", strings.Join(priceSymbols(), ", "),
	)

	prices := cl.market.GetPrices(ctx)
	renderStatusLine(os.Stdout, time.Now(), prices)

	for {
		select {
		case <-clock.C:
			renderStatusLine(os.Stdout, time.Now(), prices)
		case <-refresh.C:
			prices = cl.market.GetPrices(ctx)
			renderStatusLine(os.Stdout, time.Now(), prices)
		case <-sigc:
			fmt.Fprintln(os.Stdout)
			logger.Info(ctx, "Shutting down...")
			return
		case <-ctx.Done():
			fmt.Fprintln(os.Stdout)
			return
		}
	}
}
