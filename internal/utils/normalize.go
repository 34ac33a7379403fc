package utils

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	nonWordRe   = regexp.MustCompile(`[^a-z0-9]+`)
	stripMarks  = runes.Remove(runes.In(unicode.Mn))
	letterFixes = strings.NewReplacer("đ", "d", "ß", "ss", "ł", "l", "ø", "o")
)

// Normalize lower-cases text, strips diacritics (č→c, š→s, đ→d ...), turns every
// non-alphanumeric run into a single space and trims the result.
// Normalize(Normalize(x)) == Normalize(x) for every x.
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	lower := letterFixes.Replace(strings.ToLower(text))

	t := transform.Chain(norm.NFD, stripMarks, norm.NFC)
	stripped, _, err := transform.String(t, lower)
	if err != nil {
		stripped = lower
	}

	return strings.TrimSpace(nonWordRe.ReplaceAllString(stripped, " "))
}

// Words splits text into normalized words.
func Words(text string) []string {
	n := Normalize(text)
	if n == "" {
		return []string{}
	}
	return strings.Fields(n)
}

// MeaningfulTokens returns the distinct normalized words of length >= 3.
// Shorter tokens (je, i, za, u ...) carry no signal for overlap scoring.
func MeaningfulTokens(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range Words(text) {
		if len(w) < 3 {
			continue
		}
		set[w] = struct{}{}
	}
	return set
}

// ContainsStem reports whether any word of the normalized text starts with one
// of the given stems. Multi-word stems ("prva pomoc") are matched at a word
// boundary as well. text must already be normalized.
func ContainsStem(text string, stems ...string) bool {
	padded := " " + text
	for _, stem := range stems {
		if stem == "" {
			continue
		}
		if strings.Contains(padded, " "+stem) {
			return true
		}
	}
	return false
}
