// Package config provides the configuration schema and loader for the
// Flüsterpost dictation pipeline.
package config

import "github.com/skoschel/fluesterpost/internal/dictation"

// LogLevel controls log verbosity.
type LogLevel string

const (
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// IsValid reports whether l is a recognised log level.
func (l LogLevel) IsValid() bool {
	switch l {
	case LogDebug, LogInfo, LogWarn, LogError:
		return true
	}
	return false
}

// Config is the root configuration structure. It is typically loaded from a
// YAML file using [Load] or [LoadFromReader].
type Config struct {
	// LogLevel controls verbosity. Default: info.
	LogLevel LogLevel `yaml:"log_level"`

	// Language is the expected dictation language hint sent to the
	// transcriber ("auto", "de", "en", ...). Default: auto.
	Language string `yaml:"language"`

	// PrimaryLanguage is the language assumed when detection yields "auto"
	// or nothing. Default: de.
	PrimaryLanguage string `yaml:"primary_language"`

	Providers  ProvidersConfig   `yaml:"providers"`
	History    HistoryConfig     `yaml:"history"`
	Modes      []ModeConfig      `yaml:"modes"`
	Dictionary []DictionaryEntry `yaml:"dictionary"`
}

// ProvidersConfig declares which provider implementation to use for each
// pipeline stage.
type ProvidersConfig struct {
	STT ProviderEntry `yaml:"stt"`
	LLM ProviderEntry `yaml:"llm"`
}

// ProviderEntry is the common configuration block shared by both provider
// kinds.
type ProviderEntry struct {
	// Name selects the provider implementation (e.g., "groq").
	Name string `yaml:"name"`

	// APIKey is the authentication key for the provider's API. The key is
	// held in memory only; nothing in the pipeline writes it to disk.
	APIKey string `yaml:"api_key"`

	// BaseURL overrides the provider's default API endpoint.
	// Leave empty to use the provider's built-in default.
	BaseURL string `yaml:"base_url"`

	// Model selects a specific model within the provider
	// (e.g., "whisper-large-v3", "llama-3.3-70b-versatile").
	Model string `yaml:"model"`
}

// HistoryConfig controls the local dictation history store.
type HistoryConfig struct {
	// Path is the history file location. Empty disables history.
	Path string `yaml:"path"`

	// Limit caps the number of retained entries. Default: 100.
	Limit int `yaml:"limit"`
}

// ModeConfig is a user-defined dictation mode. An ID matching a built-in
// mode overrides that mode's prompt and examples.
type ModeConfig struct {
	ID       string          `yaml:"id"`
	Name     string          `yaml:"name"`
	Icon     string          `yaml:"icon"`
	Prompt   string          `yaml:"prompt"`
	Examples []ExampleConfig `yaml:"examples"`
}

// ExampleConfig is a few-shot input/output pair for a custom mode.
type ExampleConfig struct {
	Input  string `yaml:"input"`
	Output string `yaml:"output"`
}

// DictionaryEntry is one spoken-form → written-form substitution rule.
type DictionaryEntry struct {
	ID         string   `yaml:"id"`
	Spoken     string   `yaml:"spoken"`
	Variations []string `yaml:"variations"`
	Written    string   `yaml:"written"`
}

// DictationModes converts the configured custom modes into the dictation
// package's representation.
func (c *Config) DictationModes() []dictation.Mode {
	modes := make([]dictation.Mode, 0, len(c.Modes))
	for _, m := range c.Modes {
		examples := make([]dictation.Example, 0, len(m.Examples))
		for _, ex := range m.Examples {
			examples = append(examples, dictation.Example{Input: ex.Input, Output: ex.Output})
		}
		modes = append(modes, dictation.Mode{
			ID:       m.ID,
			Name:     m.Name,
			Icon:     m.Icon,
			Prompt:   m.Prompt,
			Examples: examples,
		})
	}
	return modes
}

// DictationDictionary converts the configured dictionary into the dictation
// package's representation, preserving order.
func (c *Config) DictationDictionary() []dictation.DictionaryEntry {
	entries := make([]dictation.DictionaryEntry, 0, len(c.Dictionary))
	for _, e := range c.Dictionary {
		entries = append(entries, dictation.DictionaryEntry{
			ID:         e.ID,
			Spoken:     e.Spoken,
			Variations: e.Variations,
			Written:    e.Written,
		})
	}
	return entries
}
