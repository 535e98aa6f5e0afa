package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/skoschel/fluesterpost/internal/dictation"
)

// ValidProviderNames lists known provider names per provider kind.
// Used by [Validate] to warn about unrecognised provider names.
var ValidProviderNames = map[string][]string{
	"stt": {"groq"},
	"llm": {"groq"},
}

// Load reads the YAML configuration file at path and returns a validated
// [Config]. It is a convenience wrapper around [LoadFromReader].
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	cfg, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader decodes a YAML config from r, applies defaults, and
// validates the result. Useful in tests where configs are constructed from
// string literals.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := &Config{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}
	applyDefaults(cfg)
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyDefaults fills in the zero-value fields that have documented defaults.
func applyDefaults(cfg *Config) {
	if cfg.LogLevel == "" {
		cfg.LogLevel = LogInfo
	}
	if cfg.Language == "" {
		cfg.Language = "auto"
	}
	if cfg.PrimaryLanguage == "" {
		cfg.PrimaryLanguage = dictation.DefaultPrimaryLanguage
	}
	if cfg.Providers.STT.Model == "" {
		cfg.Providers.STT.Model = dictation.DefaultTranscriptionModel
	}
	if cfg.Providers.LLM.Model == "" {
		cfg.Providers.LLM.Model = dictation.DefaultLLMModel
	}
	if cfg.History.Limit == 0 {
		cfg.History.Limit = 100
	}
}

// Validate checks that cfg contains a coherent set of values.
// It returns a joined error listing all validation failures found.
func Validate(cfg *Config) error {
	var errs []error

	if cfg.LogLevel != "" && !cfg.LogLevel.IsValid() {
		errs = append(errs, fmt.Errorf("log_level %q is invalid; valid values: debug, info, warn, error", cfg.LogLevel))
	}

	// Provider name validation — warn for unknown provider names.
	validateProviderName("stt", cfg.Providers.STT.Name)
	validateProviderName("llm", cfg.Providers.LLM.Name)

	// Provider availability warnings. A missing key only fails later, at
	// the first request, so surface it at startup.
	if cfg.Providers.STT.Name != "" && cfg.Providers.STT.APIKey == "" {
		slog.Warn("providers.stt.api_key is empty; transcription requests will be rejected")
	}
	if cfg.Providers.LLM.Name != "" && cfg.Providers.LLM.APIKey == "" {
		slog.Warn("providers.llm.api_key is empty; cleanup will fall back to the raw transcript")
	}

	// Model catalog warnings — an unknown model may be valid upstream, so
	// warn rather than fail.
	validateModel("stt", cfg.Providers.STT.Model, transcriptionModelIDs())
	validateModel("llm", cfg.Providers.LLM.Model, llmModelIDs())

	if cfg.History.Limit < 0 {
		errs = append(errs, fmt.Errorf("history.limit %d is negative", cfg.History.Limit))
	}

	// Custom mode duplicate ID detection.
	modeIDsSeen := make(map[string]int, len(cfg.Modes))
	for i, m := range cfg.Modes {
		prefix := fmt.Sprintf("modes[%d]", i)
		if m.ID == "" {
			errs = append(errs, fmt.Errorf("%s.id is required", prefix))
		} else {
			if prev, ok := modeIDsSeen[m.ID]; ok {
				errs = append(errs, fmt.Errorf("%s.id %q is a duplicate of modes[%d]", prefix, m.ID, prev))
			}
			modeIDsSeen[m.ID] = i
		}
		if m.Prompt == "" {
			errs = append(errs, fmt.Errorf("%s.prompt is required", prefix))
		}
		for j, ex := range m.Examples {
			if ex.Input == "" || ex.Output == "" {
				errs = append(errs, fmt.Errorf("%s.examples[%d] needs both input and output", prefix, j))
			}
		}
	}

	// Dictionary entries.
	for i, e := range cfg.Dictionary {
		prefix := fmt.Sprintf("dictionary[%d]", i)
		if e.Written == "" {
			errs = append(errs, fmt.Errorf("%s.written is required", prefix))
		}
		if e.Spoken == "" && len(e.Variations) == 0 {
			errs = append(errs, fmt.Errorf("%s needs a spoken form or at least one variation", prefix))
		}
	}

	return errors.Join(errs...)
}

// validateProviderName logs a warning if name is non-empty and not found in
// the [ValidProviderNames] list for the given kind.
func validateProviderName(kind, name string) {
	if name == "" {
		return
	}
	known, ok := ValidProviderNames[kind]
	if !ok {
		return
	}
	if slices.Contains(known, name) {
		return
	}
	slog.Warn("unknown provider name — may be a typo or third-party provider",
		"kind", kind,
		"name", name,
		"known", known,
	)
}

// validateModel logs a warning if model is non-empty and not in the curated
// catalog for the given kind.
func validateModel(kind, model string, known []string) {
	if model == "" || slices.Contains(known, model) {
		return
	}
	slog.Warn("model not in the curated catalog — cost estimates will be unavailable",
		"kind", kind,
		"model", model,
		"known", known,
	)
}

func transcriptionModelIDs() []string {
	models := dictation.TranscriptionModels()
	ids := make([]string, 0, len(models))
	for _, m := range models {
		ids = append(ids, m.ID)
	}
	return ids
}

func llmModelIDs() []string {
	models := dictation.LLMModels()
	ids := make([]string, 0, len(models))
	for _, m := range models {
		ids = append(ids, m.ID)
	}
	return ids
}
