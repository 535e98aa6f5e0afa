package dictation

import (
	"context"
	"log/slog"
	"strings"

	"github.com/skoschel/fluesterpost/pkg/provider/llm"
)

const (
	defaultCleanupTemperature = 0.1
	defaultCleanupMaxTokens   = 2000
)

// CleanerOption is a functional option for configuring a [Cleaner].
type CleanerOption func(*Cleaner)

// WithTemperature sets the sampling temperature for cleanup requests.
// Lower values produce more deterministic edits. Default: 0.1.
func WithTemperature(temp float64) CleanerOption {
	return func(c *Cleaner) {
		c.temperature = temp
	}
}

// WithMaxTokens caps the completion length of cleanup requests.
// Default: 2000.
func WithMaxTokens(n int) CleanerOption {
	return func(c *Cleaner) {
		c.maxTokens = n
	}
}

// WithModel records the model ID the provider is configured with, used only
// for per-request cost logging. Default: [DefaultLLMModel].
func WithModel(modelID string) CleanerOption {
	return func(c *Cleaner) {
		if modelID != "" {
			c.model = modelID
		}
	}
}

// Cleaner runs the LLM cleanup stage: it sends the raw transcript through a
// chat model with the assembled mode prompt, strips meta-commentary from the
// reply, and applies the user dictionary.
//
// Cleanup failures never propagate. Whatever goes wrong — network, rate
// limit, server error, missing content — the raw transcript is returned
// with the dictionary applied, because unpolished real words beat nothing.
// Exactly one request is attempted per call; retrying is left to the user
// re-dictating.
//
// Cleaner is safe for concurrent use.
type Cleaner struct {
	llm         llm.Provider
	assembler   *Assembler
	temperature float64
	maxTokens   int
	model       string
}

// NewCleaner returns a new [Cleaner] backed by the given provider and
// prompt assembler.
func NewCleaner(provider llm.Provider, assembler *Assembler, opts ...CleanerOption) *Cleaner {
	c := &Cleaner{
		llm:         provider,
		assembler:   assembler,
		temperature: defaultCleanupTemperature,
		maxTokens:   defaultCleanupMaxTokens,
		model:       DefaultLLMModel,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Clean transforms rawText according to the mode rules and dictionary.
//
// Empty or whitespace-only input short-circuits to "" without a request.
// On success the model's reply is stripped of meta-commentary and the
// dictionary is applied; on any failure the dictionary is applied to the
// raw text instead. The dictionary pass always runs last.
func (c *Cleaner) Clean(
	ctx context.Context,
	rawText string,
	customRules string,
	dict []DictionaryEntry,
	language string,
	examples []Example,
) string {
	if strings.TrimSpace(rawText) == "" {
		return ""
	}

	systemPrompt, messages := c.assembler.Assemble(customRules, language, examples)
	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: rawText})

	resp, err := c.llm.Complete(ctx, llm.CompletionRequest{
		SystemPrompt: systemPrompt,
		Messages:     messages,
		Temperature:  c.temperature,
		MaxTokens:    c.maxTokens,
	})
	if err != nil {
		slog.Warn("cleanup request failed, falling back to raw transcript",
			"error", err)
		return ApplyDictionary(rawText, dict)
	}

	slog.Debug("cleanup complete",
		"total_tokens", resp.Usage.TotalTokens,
		"estimated_cost_usd", EstimateLLMCost(c.model, resp.Usage))

	content := resp.Content
	if content == "" {
		content = rawText
	}

	return ApplyDictionary(StripMetaCommentary(content), dict)
}
