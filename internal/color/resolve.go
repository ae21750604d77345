package color

import (
	"regexp"
	"strings"
	"unicode"
)

var hexInText = regexp.MustCompile(`(?i)#[0-9a-f]{6}`)

// fold maps every rune to the lower case of its upper case, so two runes
// compare equal when either case mapping makes them equal ("İ" and "ı" fold
// to "i"). Runes are mapped one to one: "ß" stays "ß".
func fold(s string) string {
	return strings.Map(foldRune, s)
}

func foldRune(r rune) rune {
	return unicode.ToLower(unicode.ToUpper(r))
}

// Resolve maps an utterance to a colour code using the default table.
func Resolve(utterance string) (string, bool) {
	return Default.Resolve(utterance)
}

// Resolve returns the hex code of the first entry whose name occurs anywhere
// in the utterance, ignoring case. Containment is plain substring matching,
// so "morado" matches inside "enamorado". When no name matches, the first
// literal "#RRGGBB" in the utterance is returned as written.
func (t *Table) Resolve(utterance string) (string, bool) {
	if utterance == "" {
		return "", false
	}

	text := fold(utterance)
	for i, name := range t.folded {
		if strings.Contains(text, name) {
			return t.entries[i].Hex, true
		}
	}

	if m := hexInText.FindString(utterance); m != "" {
		return m, true
	}
	return "", false
}

// Lookup returns the entry that a resolution would pick, if the utterance
// resolves through a name rather than the hex fallback.
func (t *Table) Lookup(utterance string) (Entry, bool) {
	text := fold(utterance)
	for i, name := range t.folded {
		if strings.Contains(text, name) {
			return t.entries[i], true
		}
	}
	return Entry{}, false
}
