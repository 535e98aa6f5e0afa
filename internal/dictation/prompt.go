package dictation

import (
	"strings"

	"github.com/skoschel/fluesterpost/pkg/provider/llm"
)

// Example is a single few-shot input/output pair shown to the model before
// the real transcript to demonstrate the desired transformation style.
type Example struct {
	// Input is the raw transcript side of the pair.
	Input string `yaml:"input"`

	// Output is the cleaned result the model should imitate.
	Output string `yaml:"output"`
}

// DefaultPrimaryLanguage is the language assumed when detection yields
// "auto" or nothing. The reference deployment is German-first.
const DefaultPrimaryLanguage = "de"

// maxCustomExamples caps how many caller-supplied few-shot pairs are sent.
const maxCustomExamples = 3

// Base system prompts per language. The model is told to process the next
// user message immediately and to answer with nothing but the result —
// the stripper catches the cases where it disobeys anyway.
const (
	systemPromptDE = `Du bist ein Text-Optimierer. Deine Aufgabe ist es, den FOLGENDEN Text zu bereinigen.

REGELN:
1. Sprache: Bleibe STRIKT bei DEUTSCH.
2. Prozess: Der nächste User-Input ist DEIN QUELLTEXT. Verarbeite ihn SOFORT.
3. Output: Gib NUR den optimierten Text zurück. Keine Bestätigung ("Ich bin bereit").
4. Anti-Kommentar: Kein "Hier ist der Text". Nur das Ergebnis.`

	systemPromptEN = `You are a text optimizer. Your task is to clean the FOLLOWING text.

RULES:
1. Language: Remain STRICTLY in ENGLISH.
2. Process: The next user input is YOUR SOURCE TEXT. Process it IMMEDIATELY.
3. Output: Return ONLY the optimized text. No confirmation ("I am ready").
4. Anti-Commentary: No "Here is the text". Just the result.`
)

// Language-lock sentences appended unless the mode explicitly requests a
// translation.
const (
	languageLockDE = "\nZUSATZ: Der Input ist als 'Deutsch' erkannt worden. Bleibe bei dieser Sprache."
	languageLockEN = "\nADDITION: Input detected as 'English'. Keep this language."
)

// translationKeywords mark a mode as intentionally changing the output
// language; their presence suppresses the language lock.
var translationKeywords = []string{"translate", "übersetzen", "english", "englisch"}

// Built-in few-shot examples per language: a single pair each, enough to
// establish the pattern without contaminating the context.
var (
	fewShotDE = []Example{{
		Input:  "das ist ähm ein test eins zwei drei",
		Output: "Das ist ein Test, eins, zwei, drei.",
	}}
	fewShotEN = []Example{{
		Input:  "this is uh a test one two three",
		Output: "This is a test, one, two, three.",
	}}
)

// Assembler builds the system prompt and few-shot message sequence for the
// cleanup request. It is pure and safe for concurrent use.
type Assembler struct {
	primaryLanguage string
}

// AssemblerOption is a functional option for the Assembler.
type AssemblerOption func(*Assembler)

// WithPrimaryLanguage sets the language assumed when detection yields
// "auto" or nothing. Default: "de".
func WithPrimaryLanguage(lang string) AssemblerOption {
	return func(a *Assembler) {
		if lang != "" {
			a.primaryLanguage = lang
		}
	}
}

// NewAssembler constructs an Assembler with the supplied options.
func NewAssembler(opts ...AssemblerOption) *Assembler {
	a := &Assembler{primaryLanguage: DefaultPrimaryLanguage}
	for _, o := range opts {
		o(a)
	}
	return a
}

// EffectiveLanguage resolves the language the cleanup will operate in:
// the detected language unless it is empty or "auto", in which case the
// configured primary language applies.
func (a *Assembler) EffectiveLanguage(detected string) string {
	if detected == "" || detected == "auto" {
		return a.primaryLanguage
	}
	return detected
}

// isGerman reports whether lang selects the German prompt set. Any code
// with prefix "de" counts ("de", "de-DE", "deutsch"); everything else falls
// back to English.
func isGerman(lang string) bool {
	return strings.HasPrefix(strings.ToLower(lang), "de")
}

// wantsTranslation scans the mode rules for translation intent.
func wantsTranslation(customRules string) bool {
	rules := strings.ToLower(customRules)
	for _, kw := range translationKeywords {
		if strings.Contains(rules, kw) {
			return true
		}
	}
	return false
}

// Assemble builds the full system prompt and the few-shot message sequence
// for one cleanup request.
//
// The system prompt is: base prompt for the effective language, then —
// unless customRules request a translation — a language-lock sentence, then
// the mode's rules in a delimited block. The returned messages are the
// few-shot user/assistant pairs; the caller appends the final user message
// carrying the raw transcript.
func (a *Assembler) Assemble(customRules, detectedLanguage string, examples []Example) (string, []llm.Message) {
	lang := a.EffectiveLanguage(detectedLanguage)
	german := isGerman(lang)

	var sb strings.Builder
	if german {
		sb.WriteString(systemPromptDE)
	} else {
		sb.WriteString(systemPromptEN)
	}

	if !wantsTranslation(customRules) {
		if german {
			sb.WriteString(languageLockDE)
		} else {
			sb.WriteString(languageLockEN)
		}
	}

	if customRules != "" {
		sb.WriteString("\n\nUSER RULES:\n")
		sb.WriteString(customRules)
	}

	effective := examples
	if len(effective) > 0 {
		if len(effective) > maxCustomExamples {
			effective = effective[:maxCustomExamples]
		}
	} else if german {
		effective = fewShotDE
	} else {
		effective = fewShotEN
	}

	messages := make([]llm.Message, 0, 2*len(effective))
	for _, ex := range effective {
		messages = append(messages,
			llm.Message{Role: llm.RoleUser, Content: ex.Input},
			llm.Message{Role: llm.RoleAssistant, Content: ex.Output},
		)
	}

	return sb.String(), messages
}
