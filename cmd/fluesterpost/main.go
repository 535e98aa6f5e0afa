// Command fluesterpost turns a recorded dictation into clean, paste-ready
// text: speech-to-text transcription, LLM cleanup, dictionary substitution.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/skoschel/fluesterpost/internal/config"
	"github.com/skoschel/fluesterpost/internal/dictation"
	"github.com/skoschel/fluesterpost/internal/history"
	"github.com/skoschel/fluesterpost/internal/observe"
	"github.com/skoschel/fluesterpost/pkg/provider/llm"
	groqllm "github.com/skoschel/fluesterpost/pkg/provider/llm/groq"
	groqstt "github.com/skoschel/fluesterpost/pkg/provider/stt/groq"
)

func main() {
	os.Exit(run())
}

func run() int {
	// ── CLI flags ──────────────────────────────────────────────────────────────
	configPath := flag.String("config", "config.yaml", "path to the YAML configuration file")
	audioPath := flag.String("audio", "", "path to the recorded audio file to dictate")
	modeID := flag.String("mode", dictation.ModeStandard, "dictation mode ID")
	language := flag.String("language", "", "expected language hint, overrides the config value")
	sessionID := flag.String("session", "", "session ID; concurrent runs with the same ID share one result")
	rawOnly := flag.Bool("raw", false, "print the raw transcript without LLM cleanup")
	checkKey := flag.Bool("check-key", false, "verify the configured API key and exit")
	listModes := flag.Bool("list-modes", false, "print the available modes and exit")
	listModels := flag.Bool("list-models", false, "print the curated model catalog and exit")
	showStats := flag.Bool("stats", false, "print history statistics and exit")
	flag.Parse()

	// ── Load configuration ────────────────────────────────────────────────────
	cfg, err := config.Load(*configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "fluesterpost: config file %q not found — copy configs/example.yaml to get started\n", *configPath)
		} else {
			fmt.Fprintf(os.Stderr, "fluesterpost: %v\n", err)
		}
		return 1
	}

	// ── Logger ────────────────────────────────────────────────────────────────
	slog.SetDefault(newLogger(cfg.LogLevel))

	// ── Local commands (no providers needed) ──────────────────────────────────
	modes := dictation.MergeModes(cfg.DictationModes())
	switch {
	case *listModes:
		printModes(modes)
		return 0
	case *listModels:
		printModels()
		return 0
	case *showStats:
		return printStats(cfg)
	}

	// ── Signal context ────────────────────────────────────────────────────────
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ── Telemetry ─────────────────────────────────────────────────────────────
	shutdown, err := observe.InitProvider(ctx, observe.ProviderConfig{})
	if err != nil {
		slog.Error("failed to initialise telemetry", "err", err)
		return 1
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			slog.Warn("telemetry shutdown error", "err", err)
		}
	}()

	// ── Providers ─────────────────────────────────────────────────────────────
	llmProvider, err := groqllm.New(cfg.Providers.LLM.APIKey, cfg.Providers.LLM.Model,
		llmOptions(cfg.Providers.LLM)...)
	if err != nil {
		slog.Error("failed to create llm provider", "err", err)
		return 1
	}

	if *checkKey {
		return runCheckKey(ctx, llmProvider)
	}

	transcriber, err := groqstt.New(cfg.Providers.STT.APIKey, sttOptions(cfg.Providers.STT)...)
	if err != nil {
		slog.Error("failed to create stt provider", "err", err)
		return 1
	}

	// ── Dictation ─────────────────────────────────────────────────────────────
	if *audioPath == "" {
		fmt.Fprintln(os.Stderr, "fluesterpost: -audio is required (or use -check-key, -list-modes, -list-models, -stats)")
		return 2
	}

	mode, ok := dictation.FindMode(modes, *modeID)
	if !ok {
		fmt.Fprintf(os.Stderr, "fluesterpost: unknown mode %q — use -list-modes\n", *modeID)
		return 2
	}

	audio, err := os.ReadFile(*audioPath)
	if err != nil {
		slog.Error("failed to read audio file", "path", *audioPath, "err", err)
		return 1
	}

	lang := cfg.Language
	if *language != "" {
		lang = *language
	}

	assembler := dictation.NewAssembler(dictation.WithPrimaryLanguage(cfg.PrimaryLanguage))
	var cleanupProvider llm.Provider = llmProvider
	if *rawOnly {
		cleanupProvider = failingProvider{}
	}
	cleaner := dictation.NewCleaner(cleanupProvider, assembler,
		dictation.WithModel(cfg.Providers.LLM.Model))
	pipeline := dictation.NewPipeline(transcriber, cleaner)

	result, err := pipeline.Run(ctx, dictation.Request{
		SessionID:  *sessionID,
		Audio:      audio,
		Filename:   filepath.Base(*audioPath),
		Mode:       mode,
		Dictionary: cfg.DictationDictionary(),
		Language:   lang,
	})
	if err != nil {
		slog.Error("dictation failed", "err", err)
		return 1
	}

	fmt.Println(result.Text)

	// ── History ───────────────────────────────────────────────────────────────
	if cfg.History.Path != "" {
		store := history.NewStore(cfg.History.Path, history.WithLimit(cfg.History.Limit))
		if err := store.Append(history.Entry{
			Text:     result.Text,
			RawText:  result.RawText,
			Language: result.Language,
			Mode:     result.ModeID,
		}); err != nil {
			slog.Warn("failed to append history", "err", err)
		}
	}

	return 0
}

// failingProvider makes the cleanup stage take its fallback path, so -raw
// prints the transcript with only the dictionary applied.
type failingProvider struct{}

var errCleanupDisabled = errors.New("cleanup disabled")

func (failingProvider) Complete(context.Context, llm.CompletionRequest) (*llm.CompletionResponse, error) {
	return nil, errCleanupDisabled
}

// ── Subcommands ───────────────────────────────────────────────────────────────

func runCheckKey(ctx context.Context, checker llm.KeyChecker) int {
	if err := checker.CheckKey(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "fluesterpost: API key rejected: %v\n", err)
		return 1
	}
	fmt.Println("API key ok")
	return 0
}

func printModes(modes []dictation.Mode) {
	for _, m := range modes {
		fmt.Printf("%-12s %s %s (%s)\n", m.ID, m.Icon, m.Name, m.Type)
	}
}

func printModels() {
	fmt.Println("Transcription models ($/audio hour):")
	for _, m := range dictation.TranscriptionModels() {
		fmt.Printf("  %-28s %-24s $%.2f\n", m.ID, m.Name, m.PricePerHour)
	}
	fmt.Println("Cleanup models ($/1M tokens in/out):")
	for _, m := range dictation.LLMModels() {
		fmt.Printf("  %-28s %-24s $%.2f / $%.2f\n", m.ID, m.Name, m.InputPrice, m.OutputPrice)
	}
}

func printStats(cfg *config.Config) int {
	if cfg.History.Path == "" {
		fmt.Fprintln(os.Stderr, "fluesterpost: history.path is not configured")
		return 2
	}
	store := history.NewStore(cfg.History.Path, history.WithLimit(cfg.History.Limit))
	stats, err := store.Stats()
	if err != nil {
		slog.Error("failed to read history", "err", err)
		return 1
	}
	fmt.Printf("Transcriptions : %d\n", stats.TotalTranscriptions)
	fmt.Printf("Characters     : %d\n", stats.TotalChars)
	fmt.Printf("Time saved     : %s (at 200 chars/min typing)\n", stats.SavedTime.Round(time.Second))
	return 0
}

// ── Provider wiring ───────────────────────────────────────────────────────────

func sttOptions(entry config.ProviderEntry) []groqstt.Option {
	var opts []groqstt.Option
	if entry.Model != "" {
		opts = append(opts, groqstt.WithModel(entry.Model))
	}
	if entry.BaseURL != "" {
		opts = append(opts, groqstt.WithBaseURL(entry.BaseURL))
	}
	return opts
}

func llmOptions(entry config.ProviderEntry) []groqllm.Option {
	var opts []groqllm.Option
	if entry.BaseURL != "" {
		opts = append(opts, groqllm.WithBaseURL(entry.BaseURL))
	}
	return opts
}

// ── Logger ─────────────────────────────────────────────────────────────────────

func newLogger(level config.LogLevel) *slog.Logger {
	var lvl slog.Level
	switch level {
	case config.LogDebug:
		lvl = slog.LevelDebug
	case config.LogWarn:
		lvl = slog.LevelWarn
	case config.LogError:
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
