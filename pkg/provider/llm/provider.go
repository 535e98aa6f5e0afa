// Package llm defines the Provider interface for chat-completion backends.
//
// A provider wraps a remote chat-completion API (Groq in the reference
// deployment) and exposes the single non-streaming operation the cleanup
// stage needs. Model selection follows the one-provider-per-model pattern:
// construct the provider with the model configured rather than overriding
// per request.
//
// Implementations must be safe for concurrent use.
package llm

import "context"

// Usage holds token accounting information returned by the backend.
type Usage struct {
	// PromptTokens is the number of tokens consumed by the input messages
	// and system prompt.
	PromptTokens int

	// CompletionTokens is the number of tokens generated in the response.
	CompletionTokens int

	// TotalTokens is PromptTokens + CompletionTokens.
	TotalTokens int
}

// CompletionRequest carries everything the model needs to produce a response.
type CompletionRequest struct {
	// SystemPrompt is injected before the conversation as a "system" message.
	SystemPrompt string

	// Messages is the ordered conversation: few-shot user/assistant pairs
	// followed by the final user message carrying the raw transcript.
	Messages []Message

	// Temperature controls output randomness. The cleanup stage uses a low
	// value (0.1) for near-deterministic edits.
	Temperature float64

	// MaxTokens caps the completion length. Zero means provider default.
	MaxTokens int
}

// CompletionResponse is the full (non-streaming) model reply.
type CompletionResponse struct {
	// Content is the text of the first choice's message. Empty when the
	// backend returned a choice without content.
	Content string

	// Usage contains token accounting for this request/response pair.
	Usage Usage
}

// Provider is the abstraction over any chat-completion backend.
//
// Implementations must be safe for concurrent use and must propagate context
// cancellation promptly.
type Provider interface {
	// Complete sends req to the model and waits for the full response.
	// Failures are returned classified so apierr.KindOf works on them; the
	// provider itself performs no retries — the caller owns that decision.
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)
}

// KeyChecker is implemented by providers that can cheaply validate their
// credentials, typically via a models-list request.
type KeyChecker interface {
	// CheckKey verifies the configured API key against the backend.
	// A nil return means the key is accepted.
	CheckKey(ctx context.Context) error
}
