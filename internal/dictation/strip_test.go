package dictation_test

import (
	"testing"

	"github.com/skoschel/fluesterpost/internal/dictation"
)

func TestStripMetaCommentary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "german prefix and change list",
			in:   "Hier ist der bereinigte Text: Clean content\n\nÄnderungen:\n- Füllwörter entfernt",
			want: "Clean content",
		},
		{
			name: "plain text untouched",
			in:   "Das ist ein ganz normaler Satz.",
			want: "Das ist ein ganz normaler Satz.",
		},
		{
			name: "english prefix",
			in:   "Here is the cleaned text: All good now.",
			want: "All good now.",
		},
		{
			name: "der bereinigte text lautet",
			in:   "Der bereinigte Text lautet: Hallo Welt.",
			want: "Hallo Welt.",
		},
		{
			name: "ergebnis prefix",
			in:   "Ergebnis: Fertig.",
			want: "Fertig.",
		},
		{
			name: "fully quoted response unwrapped",
			in:   `"Das ist das Ergebnis."`,
			want: "Das ist das Ergebnis.",
		},
		{
			name: "german low quotes unwrapped",
			in:   "„Guten Tag zusammen.“",
			want: "Guten Tag zusammen.",
		},
		{
			name: "trailing ich habe sentence",
			in:   "Der Satz ist fertig. Ich habe drei Füllwörter entfernt",
			want: "Der Satz ist fertig.",
		},
		{
			name: "numbered change list",
			in:   "Alles klar.\n\n1. Entfernt: ähm\n2. Korrigiert: Grammatik",
			want: "Alles klar.",
		},
		{
			name: "bulleted change list",
			in:   "Alles klar.\n\n- Füllwörter entfernt\n- Grammatik korrigiert",
			want: "Alles klar.",
		},
		{
			name: "changes suffix english",
			in:   "Done and dusted.\n\nChanges:\n- removed fillers",
			want: "Done and dusted.",
		},
		{
			name: "conversational reply dropped entirely",
			in:   "Ja, das kann ich gerne machen.",
			want: "",
		},
		{
			name: "whitespace trimmed",
			in:   "   Hallo Welt.   ",
			want: "Hallo Welt.",
		},
		{
			name: "multiline content preserved",
			in:   "Ausgabe: Erster Absatz.\n\nZweiter Absatz.",
			want: "Erster Absatz.\n\nZweiter Absatz.",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := dictation.StripMetaCommentary(tt.in); got != tt.want {
				t.Errorf("StripMetaCommentary(%q)=%q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

// Each prefix rule fires at most once, but several distinct rules may fire
// cumulatively on the same call.
func TestStripMetaCommentary_CumulativePrefixRules(t *testing.T) {
	t.Parallel()

	in := `Hier ist der bereinigte Text: "Nur der Inhalt."`
	if got := dictation.StripMetaCommentary(in); got != "Nur der Inhalt." {
		t.Errorf("got %q", got)
	}
}

func TestStripMetaCommentary_NonEmptyStaysNonEmpty(t *testing.T) {
	t.Parallel()

	// Inputs that carry real content must never be stripped to nothing.
	inputs := []string{
		"Test.",
		"Der Test war erfolgreich.",
		"Meeting um drei Uhr, bitte Unterlagen mitbringen.",
	}
	for _, in := range inputs {
		if got := dictation.StripMetaCommentary(in); got == "" {
			t.Errorf("StripMetaCommentary(%q) produced empty output", in)
		}
	}
}
