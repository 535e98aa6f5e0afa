package dictation

import (
	"regexp"
	"strings"
)

// prefixRule removes a meta-commentary lead-in from the start of the text.
// When unwrap is set, the text is replaced by the rule's first capture group
// instead of having the match deleted (used for quote unwrapping).
type prefixRule struct {
	re     *regexp.Regexp
	unwrap bool
}

// prefixRules is the ordered list of lead-in removals. Each rule fires at
// most once per call, against the text as modified by the rules before it.
// Order matters: the most specific phrasings come first so that the generic
// "Text:" rule cannot eat part of a longer lead-in.
var prefixRules = []prefixRule{
	{re: regexp.MustCompile(`(?i)^hier ist der bereinigte text:?\s*`)},
	{re: regexp.MustCompile(`(?i)^der bereinigte text( lautet)?:?\s*`)},
	{re: regexp.MustCompile(`(?i)^ich habe (den text |die |folgende )?.*?(bereinigt|korrigiert|angepasst|entfernt).*?:?\s*`)},
	{re: regexp.MustCompile(`(?i)^bereinigter text:?\s*`)},
	{re: regexp.MustCompile(`(?i)^korrigierter text:?\s*`)},
	{re: regexp.MustCompile(`(?i)^here is the (cleaned|corrected) text:?\s*`)},
	{re: regexp.MustCompile(`(?i)^the cleaned text( is)?:?\s*`)},
	{re: regexp.MustCompile(`(?i)^the answer is:?\s*`)},
	{re: regexp.MustCompile(`(?i)^ausgabe:?\s*`)},
	{re: regexp.MustCompile(`(?i)^ergebnis:?\s*`)},
	{re: regexp.MustCompile(`(?i)^output:?\s*`)},
	{re: regexp.MustCompile(`(?i)^result:?\s*`)},
	{re: regexp.MustCompile(`(?i)^text:?\s*`)},
	{re: regexp.MustCompile(`(?i)^die antwort .*?:?\s*`)},
	// Conversational replies mean the model answered the content instead of
	// cleaning it; drop the reply line entirely.
	{re: regexp.MustCompile(`(?i)^(?:ja|nein|natürlich), [^\n]*`)},
	{re: regexp.MustCompile(`(?i)^(?:yes|no|of course), [^\n]*`)},
	// A fully quoted response unwraps to its inner content.
	{re: regexp.MustCompile(`(?s)^["„“](.*)["“”]$`), unwrap: true},
}

// suffixRules strips trailing self-describing change lists. Unlike the
// prefix list, every rule is applied.
var suffixRules = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\s*ich habe [^\n]*?(entfernt|korrigiert|bereinigt)[^\n]*$`),
	regexp.MustCompile(`(?is)\s*änderungen:.*$`),
	regexp.MustCompile(`(?is)\s*changes:.*$`),
	regexp.MustCompile(`(?i)\s*\(füllwörter[^\n]*?entfernt\)[^\n]*$`),
	regexp.MustCompile(`(?is)\n\n?(änderungen|changes):?\s*\n.*$`),
	regexp.MustCompile(`(?is)\n\n?\d+\.\s*(entfernt|korrigiert|geändert|hinzugefügt|removed|corrected|changed).*$`),
	regexp.MustCompile(`(?is)\n\n?-\s*(füllwörter|grammatik|zeichensetzung|filler|grammar|punctuation).*$`),
}

// StripMetaCommentary removes model-generated wrappers around the actual
// answer: "Here is the cleaned text:" style lead-ins, a fully quoted
// response, and trailing change lists ("Änderungen: …").
//
// The rule lists are plain data so they can be extended without touching
// control flow. A result may legitimately be empty when the entire input was
// meta-commentary (e.g. a bare conversational reply).
func StripMetaCommentary(text string) string {
	result := strings.TrimSpace(text)

	for _, rule := range prefixRules {
		m := rule.re.FindStringSubmatch(result)
		if m == nil {
			continue
		}
		if rule.unwrap {
			result = m[1]
		} else {
			result = result[len(m[0]):]
		}
	}

	for _, re := range suffixRules {
		result = re.ReplaceAllString(result, "")
	}

	return strings.TrimSpace(result)
}
