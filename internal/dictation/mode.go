package dictation

// ModeType describes the provenance of a mode.
type ModeType string

const (
	// ModeTypeSystem marks a built-in mode with a fixed prompt.
	ModeTypeSystem ModeType = "system"

	// ModeTypeCustom marks a user-created mode.
	ModeTypeCustom ModeType = "custom"

	// ModeTypeSystemOverride marks a built-in mode whose prompt and
	// examples a user mode has replaced. The ID stays the built-in one.
	ModeTypeSystemOverride ModeType = "system-override"
)

// Mode is a named text-transformation profile: the rules appended to the
// cleanup system prompt plus optional few-shot examples. The pipeline only
// ever reads modes; creating and editing them is the caller's concern.
type Mode struct {
	// ID uniquely identifies the mode ("standard", "email", …).
	ID string

	// Name is the display name.
	Name string

	// Icon is the display glyph.
	Icon string

	// Prompt is the rules text appended to the base system prompt.
	Prompt string

	// Examples are optional few-shot pairs overriding the built-in set.
	Examples []Example

	// Type records whether the mode is built-in, custom, or an override.
	Type ModeType
}

// ModeStandard is the ID of the default dictation mode.
const ModeStandard = "standard"

// BuiltinModes returns the immutable system mode catalog in display order.
// The prompts are German because the reference deployment is German-first;
// each one instructs the model to keep the input's language, so English
// dictation works through them unchanged.
func BuiltinModes() []Mode {
	return []Mode{
		{
			ID:   ModeStandard,
			Name: "Standard (Diktat)",
			Icon: "🎤",
			Type: ModeTypeSystem,
			Prompt: `- Behalte die Sprache des Inputs STRIKT bei (Input Englisch = Output Englisch).
- Entferne NUR Füllwörter (äh, ähm, also, sozusagen) und Stottern.
- Korrigiere Grammatik und Zeichensetzung präzise.
- Ändere NIEMALS den Wortlaut oder Stil, wenn es nicht grammatikalisch notwendig ist.
- Gib NUR den bereinigten Text zurück.`,
		},
		{
			ID:   "email",
			Name: "E-Mail",
			Icon: "✉️",
			Type: ModeTypeSystem,
			Prompt: `- Sprache: Wie Input.
- Formatiere den Text als professionelle E-Mail mit Absätzen.
- Korrigiere Grammatik und Ausdruck.
- Füge eine zum Kontext passende Anrede und Grußformel hinzu (falls nicht diktiert).
- Tonalität: Höflich, professionell, klar.
- Gib NUR den E-Mail-Body zurück (keine Betreff-Vorschläge, keine Meta-Texte).`,
		},
		{
			ID:   "jira",
			Name: "Jira Ticket",
			Icon: "🎫",
			Type: ModeTypeSystem,
			Prompt: `- Sprache: Wie Input.
- Strukturiere den Inhalt professionell in ein Jira-Ticket um.
- Versuche, die folgenden Abschnitte zu füllen (falls Informationen vorhanden sind):
  **Zusammenfassung**
  (Ein prägnanter Titel)

  **Beschreibung**
  (Detaillierte Problembeschreibung oder Anforderung)

  **Akzeptanzkriterien**
  (Liste der Anforderungen als Bullet Points)
- Tonalität: Technisch, sachlich, präzise (Entwickler-Sprache).
- Entferne Füllwörter komplett.
- Formatiere Code-Snippets oder Fehlermeldungen in Markdown-Codeblöcken.`,
		},
		{
			ID:   "chat",
			Name: "Chat",
			Icon: "💬",
			Type: ModeTypeSystem,
			Prompt: `- Sprache: Wie Input.
- Entferne nur grobe Füllwörter (äh, ähm).
- Behalte die lockere, gesprochene Umgangssprache bei ("Du"-Form).
- Verwende Emojis, wenn es zum Kontext passt (aber sparsam).
- Korrigiere keine saloppen Formulierungen (z.B. "is nich" statt "ist nicht"), um den Chat-Charakter zu wahren.
- Gib NUR den Text zurück.`,
		},
	}
}

// MergeModes combines the built-in catalog with the user's custom modes.
// A custom mode whose ID matches a built-in replaces that mode's name,
// icon, prompt, and examples in place and is marked as a system override;
// all other custom modes are appended in their given order.
func MergeModes(custom []Mode) []Mode {
	modes := BuiltinModes()

	index := make(map[string]int, len(modes))
	for i, m := range modes {
		index[m.ID] = i
	}

	for _, c := range custom {
		if i, ok := index[c.ID]; ok {
			c.Type = ModeTypeSystemOverride
			modes[i] = c
			continue
		}
		c.Type = ModeTypeCustom
		modes = append(modes, c)
	}
	return modes
}

// FindMode looks up a mode by ID. The second return value reports whether
// the ID was found.
func FindMode(modes []Mode, id string) (Mode, bool) {
	for _, m := range modes {
		if m.ID == id {
			return m, true
		}
	}
	return Mode{}, false
}
