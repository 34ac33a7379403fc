package facts

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/Conversly/autoskola-bot/internal/utils"
)

// KunaPerEuro is the fixed HRK→EUR conversion rate.
const KunaPerEuro = 7.5345

// InstallmentMonths is the term used for the monthly installment estimate.
const InstallmentMonths = 12

var numberRe = regexp.MustCompile(`\d[\d.,\s]*\d|\d`)

// Amount is a parsed price cell.
type Amount struct {
	Raw      string
	Value    float64
	Currency string // EUR or HRK
	EUR      float64
}

// Monthly is the rounded monthly installment in euro.
func (a Amount) Monthly() int {
	return int(math.Round(a.EUR / InstallmentMonths))
}

// ParseAmount reads "6000 kn", "1.200,00 €", "850" and similar cells. Values
// without a kuna marker are taken as euro.
func ParseAmount(raw string) (Amount, bool) {
	raw = strings.TrimSpace(raw)
	match := numberRe.FindString(raw)
	if match == "" {
		return Amount{Raw: raw}, false
	}
	value, err := parseNumber(match)
	if err != nil {
		return Amount{Raw: raw}, false
	}

	a := Amount{Raw: raw, Value: value, Currency: "EUR", EUR: value}
	if isKuna(raw) {
		a.Currency = "HRK"
		a.EUR = value / KunaPerEuro
	}
	return a, true
}

func isKuna(raw string) bool {
	n := utils.Normalize(raw)
	return utils.ContainsStem(n, "kn", "hrk", "kun")
}

// parseNumber handles both 1.200,50 and 1,200.50 style separators.
func parseNumber(s string) (float64, error) {
	s = strings.ReplaceAll(s, " ", "")
	lastDot := strings.LastIndex(s, ".")
	lastComma := strings.LastIndex(s, ",")

	switch {
	case lastDot >= 0 && lastComma >= 0:
		if lastComma > lastDot {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case lastComma >= 0:
		s = normalizeSingleSeparator(s, ",")
	case lastDot >= 0:
		s = normalizeSingleSeparator(s, ".")
	}
	return strconv.ParseFloat(s, 64)
}

// A lone separator followed by exactly three digits is a thousands separator.
func normalizeSingleSeparator(s, sep string) string {
	parts := strings.Split(s, sep)
	if len(parts) > 2 || len(parts[len(parts)-1]) == 3 {
		return strings.Join(parts, "")
	}
	return strings.Join(parts, ".")
}

// FormatEUR renders 796.34 as "796,34 €".
func FormatEUR(v float64) string {
	return strings.Replace(fmt.Sprintf("%.2f", v), ".", ",", 1) + " €"
}

// formatPrice renders a price cell in euro, keeping the original kuna amount
// for reference.
func formatPrice(raw string, withInstallment bool) string {
	a, ok := ParseAmount(raw)
	if !ok {
		return raw
	}
	out := FormatEUR(a.EUR)
	if a.Currency == "HRK" {
		out += fmt.Sprintf(" (%s)", a.Raw)
	}
	if withInstallment && a.EUR > 0 {
		out += fmt.Sprintf(" | rata cca %d €/mj (%d rata)", a.Monthly(), InstallmentMonths)
	}
	return out
}
