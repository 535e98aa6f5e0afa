// Package dictation implements the text post-processing pipeline that turns
// a raw speech transcript into the final, paste-ready string.
//
// Raw speech-to-text output is rarely what the user wants to paste: it
// carries filler words, missing punctuation, and mangled domain vocabulary
// (product names, ticket prefixes, colleagues' names). The pipeline applies
// three stages:
//
//  1. LLM cleanup ([Cleaner]): a chat model removes fillers and fixes
//     grammar according to the active [Mode]'s rules, guided by few-shot
//     examples from the [Assembler].
//  2. Meta-commentary stripping ([StripMetaCommentary]): deterministic
//     removal of the explanatory wrappers models sometimes add around the
//     actual answer.
//  3. Dictionary substitution ([ApplyDictionary]): deterministic
//     spoken-form → written-form replacement of the user's vocabulary.
//
// Stages 2 and 3 are pure functions; every correction they make is
// reproducible. Stage 1 degrades gracefully — when the model call fails the
// raw transcript still passes through stage 3, so the user always receives
// their own words with the dictionary applied.
package dictation

import (
	"regexp"
	"strings"
)

// DictionaryEntry is a single spoken-form → written-form substitution rule.
// Matching is case-insensitive and word-boundary anchored; Variations are
// alternate spoken forms that map to the same written form.
type DictionaryEntry struct {
	// ID uniquely identifies the entry in the user's dictionary.
	ID string

	// Spoken is the primary trigger as the STT service tends to hear it.
	Spoken string

	// Variations are additional triggers (common mishearings).
	Variations []string

	// Written is the replacement text.
	Written string
}

// Triggers returns the full trigger set for the entry: Spoken followed by
// all Variations, whitespace-trimmed, empties dropped.
func (e DictionaryEntry) Triggers() []string {
	triggers := make([]string, 0, 1+len(e.Variations))
	for _, t := range append([]string{e.Spoken}, e.Variations...) {
		t = strings.TrimSpace(t)
		if t != "" {
			triggers = append(triggers, t)
		}
	}
	return triggers
}

// ApplyDictionary replaces every case-insensitive, whole-word occurrence of
// each entry's triggers with the entry's written form. With no entries the
// text is returned unchanged.
//
// Entries are applied in slice order against the current (possibly already
// modified) text, so a later entry may match text inserted by an earlier
// replacement. That cascading behaviour is intentional: users chain entries
// (e.g. expanding an abbreviation an earlier rule produced).
func ApplyDictionary(text string, entries []DictionaryEntry) string {
	if len(entries) == 0 {
		return text
	}

	result := text
	for _, entry := range entries {
		for _, trigger := range entry.Triggers() {
			re, err := compileTrigger(trigger)
			if err != nil {
				// QuoteMeta makes this unreachable for any non-empty
				// trigger; skip rather than corrupt the text.
				continue
			}
			result = re.ReplaceAllLiteralString(result, entry.Written)
		}
	}
	return result
}

// compileTrigger builds the case-insensitive whole-word matcher for a
// trigger, escaping any regex metacharacters it contains.
func compileTrigger(trigger string) (*regexp.Regexp, error) {
	return regexp.Compile(`(?i)\b` + regexp.QuoteMeta(trigger) + `\b`)
}
