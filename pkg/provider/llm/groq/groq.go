// Package groq provides a chat-completion provider backed by the Groq API.
//
// Groq exposes an OpenAI-compatible wire format, so the client is built on
// the openai-go SDK pointed at the Groq base URL. SDK-internal retries are
// disabled: the cleanup stage deliberately makes exactly one attempt and
// falls back to the raw transcript on failure.
package groq

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	oai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/param"
	"github.com/openai/openai-go/shared"

	"github.com/skoschel/fluesterpost/pkg/provider/apierr"
	"github.com/skoschel/fluesterpost/pkg/provider/llm"
)

const defaultBaseURL = "https://api.groq.com/openai/v1"

// config holds optional configuration for the client.
type config struct {
	baseURL    string
	httpClient *http.Client
}

// Option is a functional option for the Client.
type Option func(*config)

// WithBaseURL overrides the default Groq API base URL.
func WithBaseURL(url string) Option {
	return func(c *config) {
		c.baseURL = url
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *config) {
		c.httpClient = hc
	}
}

// Client implements llm.Provider using the Groq chat-completion API.
type Client struct {
	client oai.Client
	model  string
}

// Compile-time interface assertions.
var (
	_ llm.Provider   = (*Client)(nil)
	_ llm.KeyChecker = (*Client)(nil)
)

// New constructs a new Groq chat-completion Client.
func New(apiKey, model string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("groq: apiKey must not be empty")
	}
	if model == "" {
		return nil, errors.New("groq: model must not be empty")
	}

	cfg := &config{baseURL: defaultBaseURL}
	for _, o := range opts {
		o(cfg)
	}

	reqOpts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithBaseURL(cfg.baseURL),
		// The caller owns retry and fallback semantics.
		option.WithMaxRetries(0),
	}
	if cfg.httpClient != nil {
		reqOpts = append(reqOpts, option.WithHTTPClient(cfg.httpClient))
	}

	return &Client{client: oai.NewClient(reqOpts...), model: model}, nil
}

// Complete implements llm.Provider.
func (c *Client) Complete(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	params, err := c.buildParams(req)
	if err != nil {
		return nil, fmt.Errorf("groq: build params: %w", err)
	}

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, classify(err)
	}
	if len(resp.Choices) == 0 {
		return nil, apierr.Malformed(errors.New("empty choices in response"))
	}

	return &llm.CompletionResponse{
		Content: resp.Choices[0].Message.Content,
		Usage: llm.Usage{
			PromptTokens:     int(resp.Usage.PromptTokens),
			CompletionTokens: int(resp.Usage.CompletionTokens),
			TotalTokens:      int(resp.Usage.TotalTokens),
		},
	}, nil
}

// CheckKey implements llm.KeyChecker with a lightweight models-list request.
func (c *Client) CheckKey(ctx context.Context) error {
	if _, err := c.client.Models.List(ctx); err != nil {
		return classify(err)
	}
	return nil
}

// buildParams converts a CompletionRequest into SDK params.
func (c *Client) buildParams(req llm.CompletionRequest) (oai.ChatCompletionNewParams, error) {
	var messages []oai.ChatCompletionMessageParamUnion

	if req.SystemPrompt != "" {
		messages = append(messages, oai.SystemMessage(req.SystemPrompt))
	}

	for _, m := range req.Messages {
		switch m.Role {
		case llm.RoleSystem:
			messages = append(messages, oai.SystemMessage(m.Content))
		case llm.RoleUser:
			messages = append(messages, oai.UserMessage(m.Content))
		case llm.RoleAssistant:
			messages = append(messages, oai.AssistantMessage(m.Content))
		default:
			return oai.ChatCompletionNewParams{}, fmt.Errorf("unknown message role %q", m.Role)
		}
	}

	params := oai.ChatCompletionNewParams{
		Model:    shared.ChatModel(c.model),
		Messages: messages,
	}
	if req.Temperature != 0 {
		params.Temperature = param.NewOpt(req.Temperature)
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = param.NewOpt(int64(req.MaxTokens))
	}
	return params, nil
}

// classify maps an SDK error to the shared apierr taxonomy.
func classify(err error) error {
	var apiErr *oai.Error
	if errors.As(err, &apiErr) {
		return apierr.FromStatus(apiErr.StatusCode, apiErr.Message)
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return apierr.Network(err)
}
