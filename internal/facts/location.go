package facts

import (
	"strings"

	"github.com/Conversly/autoskola-bot/internal/types"
	"github.com/Conversly/autoskola-bot/internal/utils"
)

const (
	keywordWeight    = 2
	kindPrefixWeight = 2
)

// FindBestLocation scores every active location record against the keyword
// set and returns the best one, or nil when nothing scores. A keyword found
// anywhere in the record's text earns 2 points; a location kind that starts
// with the keyword earns 2 more. Equal scores keep the earlier record.
func FindBestLocation(records []types.Record, keywords []string) types.Record {
	var (
		best      types.Record
		bestScore int
	)
	for _, r := range records {
		if !r.IsActive() {
			continue
		}
		if s := LocationScore(r, keywords); s > bestScore {
			best = r
			bestScore = s
		}
	}
	return best
}

// LocationScore is the weighted keyword score used by FindBestLocation.
func LocationScore(r types.Record, keywords []string) int {
	kind := utils.Normalize(r.Get(types.FieldLocationKind))
	haystack := utils.Normalize(strings.Join([]string{
		r.Get(types.FieldLocationKind),
		r.Get(types.FieldName),
		r.Get(types.FieldAddress),
		r.Get(types.FieldCity),
		r.Get(types.FieldNote),
	}, " "))

	score := 0
	for _, kw := range keywords {
		kw = utils.Normalize(kw)
		if kw == "" {
			continue
		}
		if strings.Contains(haystack, kw) {
			score += keywordWeight
		}
		if strings.HasPrefix(kind, kw) {
			score += kindPrefixWeight
		}
	}
	return score
}

// FormatLocation renders a location record under header.
func FormatLocation(header string, r types.Record) string {
	var b strings.Builder
	b.WriteString(header)
	b.WriteString(":\n")

	title := r.Get(types.FieldName)
	if title == "" {
		title = r.Get(types.FieldLocationKind)
	}
	if title != "" {
		b.WriteString(title)
		b.WriteString("\n")
	}

	address := r.Get(types.FieldAddress)
	if city := r.Get(types.FieldCity); city != "" && !strings.Contains(utils.Normalize(address), utils.Normalize(city)) {
		if address != "" {
			address += ", "
		}
		address += city
	}
	writeLine(&b, "Adresa", address)
	writeLine(&b, "Telefon", r.Get(types.FieldPhone))
	writeLine(&b, "Karta", r.Get(types.FieldMapLink))
	writeLine(&b, "Napomena", r.Get(types.FieldNote))

	return strings.TrimRight(b.String(), "\n")
}

func writeLine(b *strings.Builder, label, value string) {
	if value == "" {
		return
	}
	b.WriteString(label)
	b.WriteString(": ")
	b.WriteString(value)
	b.WriteString("\n")
}
