// Package groq provides a Groq-backed STT transcriber using the
// OpenAI-compatible audio transcription REST API. It implements the
// stt.Transcriber interface.
package groq

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/skoschel/fluesterpost/pkg/provider/apierr"
	"github.com/skoschel/fluesterpost/pkg/provider/stt"
)

const (
	defaultBaseURL  = "https://api.groq.com/openai/v1"
	defaultModel    = "whisper-large-v3"
	defaultFilename = "audio.webm"

	// maxAttempts is the total request budget: one initial attempt plus up
	// to two retries.
	maxAttempts = 3

	// defaultBackoffBase is the delay before the first retry; doubled before
	// each further one.
	defaultBackoffBase = time.Second
)

// Option is a functional option for configuring the Client.
type Option func(*Client)

// WithModel sets the transcription model (e.g. "whisper-large-v3").
func WithModel(model string) Option {
	return func(c *Client) {
		c.model = model
	}
}

// WithBaseURL overrides the default Groq API base URL. Useful for tests and
// for other OpenAI-compatible endpoints.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBackoffBase overrides the first retry delay. Tests use this to avoid
// real sleeps.
func WithBackoffBase(d time.Duration) Option {
	return func(c *Client) {
		c.backoffBase = d
	}
}

// Client implements stt.Transcriber backed by the Groq Whisper API.
type Client struct {
	apiKey      string
	model       string
	baseURL     string
	httpClient  *http.Client
	backoffBase time.Duration
}

// Compile-time interface assertion.
var _ stt.Transcriber = (*Client)(nil)

// New creates a new Groq transcription Client. apiKey must be non-empty.
func New(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("groq: apiKey must not be empty")
	}
	c := &Client{
		apiKey:      apiKey,
		model:       defaultModel,
		baseURL:     defaultBaseURL,
		httpClient:  &http.Client{},
		backoffBase: defaultBackoffBase,
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// transcriptionResponse is the verbose_json payload returned by the API.
type transcriptionResponse struct {
	Text     string `json:"text"`
	Language string `json:"language"`
}

// errorResponse is the error envelope returned on non-2xx statuses.
type errorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Transcribe uploads the recording and returns text plus detected language.
//
// Retry policy: up to three attempts total. Invalid-key errors (HTTP 401)
// abort immediately; all other failures are retried with exponential backoff
// (1s, 2s). When the budget is exhausted the last error is returned wrapped
// in a "transcription failed" error that still unwraps to its apierr kind.
func (c *Client) Transcribe(ctx context.Context, req stt.Request) (*stt.Result, error) {
	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		result, err := c.doRequest(ctx, req)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if !apierr.Retryable(err) {
			return nil, err
		}
		if attempt == maxAttempts {
			break
		}

		delay := c.backoffBase << (attempt - 1)
		slog.Warn("transcription attempt failed, retrying",
			"attempt", attempt, "delay", delay, "error", err)

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	return nil, fmt.Errorf("transcription failed: %w", lastErr)
}

// doRequest performs a single multipart upload attempt.
func (c *Client) doRequest(ctx context.Context, req stt.Request) (*stt.Result, error) {
	body, contentType, err := c.buildForm(req)
	if err != nil {
		return nil, fmt.Errorf("groq: build form: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/audio/transcriptions", body)
	if err != nil {
		return nil, fmt.Errorf("groq: build request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", contentType)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, apierr.Network(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, readAPIError(resp)
	}

	var tr transcriptionResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return nil, apierr.Malformed(err)
	}

	return &stt.Result{Text: tr.Text, Language: tr.Language}, nil
}

// buildForm assembles the multipart/form-data request body. The language
// field is omitted for "auto" so the service performs detection itself.
func (c *Client) buildForm(req stt.Request) (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	filename := req.Filename
	if filename == "" {
		filename = defaultFilename
	}
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(req.Audio); err != nil {
		return nil, "", err
	}

	fields := map[string]string{
		"model":           c.model,
		"response_format": "verbose_json",
		"temperature":     "0",
	}
	if req.Language != "" && req.Language != "auto" {
		fields["language"] = req.Language
	}
	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf, w.FormDataContentType(), nil
}

// readAPIError drains a non-2xx response into a classified apierr.Error,
// preferring the provider's error.message field when the body parses.
func readAPIError(resp *http.Response) error {
	var msg string
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err == nil {
		var er errorResponse
		if json.Unmarshal(body, &er) == nil {
			msg = er.Error.Message
		}
	}
	return apierr.FromStatus(resp.StatusCode, msg)
}
