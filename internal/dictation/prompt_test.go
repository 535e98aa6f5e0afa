package dictation_test

import (
	"strings"
	"testing"

	"github.com/skoschel/fluesterpost/internal/dictation"
	"github.com/skoschel/fluesterpost/pkg/provider/llm"
)

func TestAssembler_EffectiveLanguage(t *testing.T) {
	t.Parallel()

	a := dictation.NewAssembler()
	tests := []struct {
		detected string
		want     string
	}{
		{"", "de"},
		{"auto", "de"},
		{"de", "de"},
		{"en", "en"},
		{"fr", "fr"},
	}
	for _, tt := range tests {
		if got := a.EffectiveLanguage(tt.detected); got != tt.want {
			t.Errorf("EffectiveLanguage(%q)=%q, want %q", tt.detected, got, tt.want)
		}
	}

	en := dictation.NewAssembler(dictation.WithPrimaryLanguage("en"))
	if got := en.EffectiveLanguage("auto"); got != "en" {
		t.Errorf("EffectiveLanguage(auto) with en primary=%q, want en", got)
	}
}

func TestAssembler_GermanPromptWithLock(t *testing.T) {
	t.Parallel()

	a := dictation.NewAssembler()
	system, messages := a.Assemble("- Regel eins.", "de", nil)

	if !strings.Contains(system, "Bleibe STRIKT bei DEUTSCH") {
		t.Errorf("missing German base prompt: %q", system)
	}
	if !strings.Contains(system, "Bleibe bei dieser Sprache") {
		t.Errorf("missing language lock: %q", system)
	}
	if !strings.Contains(system, "USER RULES:\n- Regel eins.") {
		t.Errorf("missing mode rules: %q", system)
	}

	// Built-in German few-shot: one user/assistant pair.
	if len(messages) != 2 {
		t.Fatalf("got %d few-shot messages, want 2", len(messages))
	}
	if messages[0].Role != llm.RoleUser || messages[1].Role != llm.RoleAssistant {
		t.Errorf("few-shot roles wrong: %v, %v", messages[0].Role, messages[1].Role)
	}
	if !strings.Contains(messages[0].Content, "ähm") {
		t.Errorf("expected German built-in example, got %q", messages[0].Content)
	}
}

func TestAssembler_EnglishPrompt(t *testing.T) {
	t.Parallel()

	a := dictation.NewAssembler()
	system, messages := a.Assemble("", "en", nil)

	if !strings.Contains(system, "Remain STRICTLY in ENGLISH") {
		t.Errorf("missing English base prompt: %q", system)
	}
	if !strings.Contains(system, "Keep this language") {
		t.Errorf("missing English language lock: %q", system)
	}
	if strings.Contains(system, "USER RULES") {
		t.Errorf("empty rules must not add a rules block: %q", system)
	}
	if len(messages) != 2 || !strings.Contains(messages[0].Content, "uh") {
		t.Errorf("expected English built-in example, got %+v", messages)
	}
}

func TestAssembler_TranslationSuppressesLanguageLock(t *testing.T) {
	t.Parallel()

	a := dictation.NewAssembler()
	for _, rules := range []string{
		"Übersetze den Text ins Englische (translate).",
		"- Übersetzen nach Englisch.",
		"- Output in English.",
	} {
		system, _ := a.Assemble(rules, "de", nil)
		if strings.Contains(system, "Bleibe bei dieser Sprache") {
			t.Errorf("rules %q: language lock present despite translation intent", rules)
		}
		if !strings.Contains(system, rules) {
			t.Errorf("rules %q missing from system prompt", rules)
		}
	}
}

func TestAssembler_CustomExamplesReplaceBuiltins(t *testing.T) {
	t.Parallel()

	a := dictation.NewAssembler()
	custom := []dictation.Example{
		{Input: "My Custom Input", Output: "My Custom Output"},
	}
	_, messages := a.Assemble("", "de", custom)

	if len(messages) != 2 {
		t.Fatalf("got %d messages, want 2", len(messages))
	}
	if messages[0].Content != "My Custom Input" || messages[1].Content != "My Custom Output" {
		t.Errorf("custom example not used: %+v", messages)
	}
	for _, m := range messages {
		if strings.Contains(m.Content, "ähm") {
			t.Errorf("built-in example leaked alongside custom ones: %q", m.Content)
		}
	}
}

func TestAssembler_CustomExamplesCappedAtThree(t *testing.T) {
	t.Parallel()

	a := dictation.NewAssembler()
	custom := []dictation.Example{
		{Input: "a", Output: "A"},
		{Input: "b", Output: "B"},
		{Input: "c", Output: "C"},
		{Input: "d", Output: "D"},
	}
	_, messages := a.Assemble("", "de", custom)

	if len(messages) != 6 {
		t.Fatalf("got %d messages, want 6 (three pairs)", len(messages))
	}
	for _, m := range messages {
		if m.Content == "d" || m.Content == "D" {
			t.Errorf("fourth example must be dropped, got %q", m.Content)
		}
	}
}

func TestAssembler_RegionalGermanCodes(t *testing.T) {
	t.Parallel()

	a := dictation.NewAssembler()
	for _, lang := range []string{"de-DE", "de-AT", "deutsch", "German"} {
		system, _ := a.Assemble("", lang, nil)
		want := lang != "German" // "German" has no "de" prefix
		got := strings.Contains(system, "DEUTSCH")
		if got != want {
			t.Errorf("language %q: german prompt=%v, want %v", lang, got, want)
		}
	}
}
