package dictation_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/skoschel/fluesterpost/internal/dictation"
	"github.com/skoschel/fluesterpost/pkg/provider/llm"
	llmmock "github.com/skoschel/fluesterpost/pkg/provider/llm/mock"
)

func jiraDict() []dictation.DictionaryEntry {
	return []dictation.DictionaryEntry{
		{ID: "1", Spoken: "giro", Variations: []string{"jiro", "gyro"}, Written: "Jira"},
	}
}

func TestCleaner_StripsAndAppliesDictionary(t *testing.T) {
	t.Parallel()

	provider := &llmmock.Provider{
		CompleteResponse: &llm.CompletionResponse{
			Content: "Hier ist der bereinigte Text: Das giro Ticket ist fertig.",
		},
	}
	c := dictation.NewCleaner(provider, dictation.NewAssembler())

	got := c.Clean(context.Background(), "das giro ticket ist ähm fertig", "", jiraDict(), "de", nil)
	if want := "Das Jira Ticket ist fertig."; got != want {
		t.Errorf("Clean=%q, want %q", got, want)
	}
	if provider.CallCount() != 1 {
		t.Errorf("provider called %d times, want 1", provider.CallCount())
	}
}

func TestCleaner_FallbackAppliesDictionary(t *testing.T) {
	t.Parallel()

	provider := &llmmock.Provider{CompleteErr: errors.New("server error (status 500)")}
	c := dictation.NewCleaner(provider, dictation.NewAssembler())

	got := c.Clean(context.Background(), "Fallback Text giro", "", jiraDict(), "de", nil)
	if want := "Fallback Text Jira"; got != want {
		t.Errorf("Clean=%q, want %q", got, want)
	}
}

func TestCleaner_EmptyInputSkipsRequest(t *testing.T) {
	t.Parallel()

	provider := &llmmock.Provider{}
	c := dictation.NewCleaner(provider, dictation.NewAssembler())

	for _, in := range []string{"", "   ", "\n\t"} {
		if got := c.Clean(context.Background(), in, "", nil, "de", nil); got != "" {
			t.Errorf("Clean(%q)=%q, want empty", in, got)
		}
	}
	if provider.CallCount() != 0 {
		t.Errorf("provider called %d times, want 0", provider.CallCount())
	}
}

func TestCleaner_EmptyResponseFallsBackToRawText(t *testing.T) {
	t.Parallel()

	provider := &llmmock.Provider{CompleteResponse: &llm.CompletionResponse{Content: ""}}
	c := dictation.NewCleaner(provider, dictation.NewAssembler())

	got := c.Clean(context.Background(), "original giro text", "", jiraDict(), "de", nil)
	if want := "original Jira text"; got != want {
		t.Errorf("Clean=%q, want %q", got, want)
	}
}

func TestCleaner_RequestCarriesPromptAndTranscript(t *testing.T) {
	t.Parallel()

	provider := &llmmock.Provider{
		CompleteResponse: &llm.CompletionResponse{Content: "Fertig."},
	}
	c := dictation.NewCleaner(provider, dictation.NewAssembler(),
		dictation.WithTemperature(0.3), dictation.WithMaxTokens(512))

	c.Clean(context.Background(), "mein transkript", "- Keine Füllwörter.", nil, "de", nil)

	calls := provider.CompleteCalls
	if len(calls) != 1 {
		t.Fatalf("got %d calls, want 1", len(calls))
	}
	req := calls[0].Req
	if !strings.Contains(req.SystemPrompt, "USER RULES:") ||
		!strings.Contains(req.SystemPrompt, "- Keine Füllwörter.") {
		t.Errorf("system prompt missing mode rules: %q", req.SystemPrompt)
	}
	if req.Temperature != 0.3 {
		t.Errorf("temperature=%v, want 0.3", req.Temperature)
	}
	if req.MaxTokens != 512 {
		t.Errorf("max tokens=%d, want 512", req.MaxTokens)
	}
	last := req.Messages[len(req.Messages)-1]
	if last.Role != llm.RoleUser || last.Content != "mein transkript" {
		t.Errorf("final message=%+v, want user message with raw transcript", last)
	}
}
