package utils

import (
	"regexp"
	"strings"
)

// Category codes in match priority order. Coded categories come first so a
// short code never matches inside a longer label, then two-character codes
// before their single-letter prefixes.
var categoryCodes = []struct {
	code    string
	pattern *regexp.Regexp
}{
	{"KOD 95", regexp.MustCompile(`\bkod ?95\b`)},
	{"KOD 96", regexp.MustCompile(`\bkod ?96\b`)},
	{"AM", regexp.MustCompile(`\bam\b`)},
	{"A1", regexp.MustCompile(`\ba1\b`)},
	{"A2", regexp.MustCompile(`\ba2\b`)},
	{"BE", regexp.MustCompile(`\bbe\b`)},
	{"CE", regexp.MustCompile(`\bce\b`)},
	{"A", regexp.MustCompile(`\ba\b`)},
	{"B", regexp.MustCompile(`\bb\b`)},
	{"C", regexp.MustCompile(`\bc\b`)},
	{"D", regexp.MustCompile(`\bd\b`)},
	{"F", regexp.MustCompile(`\bf\b`)},
	{"G", regexp.MustCompile(`\bg\b`)},
}

var (
	comboFix = strings.NewReplacer("b+e", "be", "c+e", "ce", "b + e", "be", "c + e", "ce")
	// Normalizing "C+E" yields "c e"; fold it back for already-normalized input.
	normalizedCombo = regexp.MustCompile(`\b([bc]) e\b`)
)

// Single letters that are also words or abbreviations in free text ("a" is a
// conjunction, "d.o.o." a company suffix) count only next to "kategorija".
var contextOnly = map[string]*regexp.Regexp{
	"A": categoryContext("a"),
	"D": categoryContext("d"),
	"F": categoryContext("f"),
	"G": categoryContext("g"),
}

func categoryContext(letter string) *regexp.Regexp {
	return regexp.MustCompile(`\b(kategorij\w*|kat) ` + letter + `\b|\b` + letter + ` kategorij`)
}

// KnownCategories lists every code NormalizeCategory can return.
func KnownCategories() []string {
	out := make([]string, 0, len(categoryCodes))
	for _, c := range categoryCodes {
		out = append(out, c.code)
	}
	return out
}

// NormalizeCategory maps a free-text category label ("Kategorija B",
// "kod 96", "B+E") to a known code. It returns "" when no code is recognized.
func NormalizeCategory(raw string) string {
	n := Normalize(comboFix.Replace(strings.ToLower(raw)))
	if n == "" {
		return ""
	}
	for _, c := range categoryCodes {
		if c.pattern.MatchString(n) {
			return c.code
		}
	}
	return ""
}

// DetectCategory finds a category code mentioned in a user message. Unlike
// NormalizeCategory it ignores bare A, D, F and G. It accepts raw or
// normalized text.
func DetectCategory(message string) string {
	n := Normalize(comboFix.Replace(strings.ToLower(message)))
	if n == "" {
		return ""
	}
	n = normalizedCombo.ReplaceAllString(n, "${1}e")
	for _, c := range categoryCodes {
		if re, ok := contextOnly[c.code]; ok {
			if re.MatchString(n) {
				return c.code
			}
			continue
		}
		if c.pattern.MatchString(n) {
			return c.code
		}
	}
	return ""
}
