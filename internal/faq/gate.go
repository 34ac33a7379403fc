package faq

import (
	"regexp"

	"github.com/Conversly/autoskola-bot/internal/utils"
)

// Business vocabulary that marks a structured-data question: prices, hours,
// fees, packages, age and enrollment terms, fleet and lessons.
var categoryPriceRe = regexp.MustCompile(`\b(` +
	`cijen\w*|kost\w*|kosta|eur\w*|kun\w*|kn|` +
	`sat|sati|sata|satnic\w*|` +
	`pristojb\w*|naknad\w*|taks\w*|` +
	`paket\w*|` +
	`minimaln\w*|dob|godin\w*|` +
	`upis\w*|uvjet\w*|` +
	`flot\w*|vozil\w*|automobil\w*|` +
	`cas|casov\w*|lekcij\w*|` +
	`teorij\w*|prakti\w*|praks\w*|` +
	`voznj\w*|vozit\w*|` +
	`dodatn\w*|kategorij\w*` +
	`)\b`)

// IsCategoryOrPriceQuery reports whether text asks about category data or
// pricing. Such questions are answered from the authoritative tables, so the
// FAQ matcher is skipped for them.
func IsCategoryOrPriceQuery(text string) bool {
	n := utils.Normalize(text)
	if n == "" {
		return false
	}
	if utils.DetectCategory(n) != "" {
		return true
	}
	return categoryPriceRe.MatchString(n)
}
