package facts

import (
	"fmt"
	"strings"

	"github.com/Conversly/autoskola-bot/internal/loaders"
	"github.com/Conversly/autoskola-bot/internal/types"
	"github.com/Conversly/autoskola-bot/internal/utils"
)

// BuildCategorySummary assembles everything known about one category: hours
// and conditions, prices, fees, payment terms and extra services, in that
// order. Empty sections are left out; if every section is empty the result is "".
func BuildCategorySummary(category string, data *loaders.TenantData) string {
	code := utils.NormalizeCategory(category)
	if code == "" || data == nil {
		return ""
	}

	sections := []struct {
		title string
		body  string
	}{
		{"SATI I UVJETI", hoursBlock(forCategory(data.Categories, code, false))},
		{"CIJENE", priceList(forCategory(data.Prices, code, false))},
		{"PRISTOJBE", feeList(forCategory(data.Fees, code, true))},
		{"PLAĆANJE", FormatPayment(firstActive(data.Payments))},
		{"DODATNE USLUGE", extrasList(forCategory(data.Extras, code, true))},
	}

	var b strings.Builder
	filled := 0
	for _, s := range sections {
		if s.body == "" {
			continue
		}
		// Payment terms alone say nothing about the category.
		if s.title != "PLAĆANJE" {
			filled++
		}
		fmt.Fprintf(&b, "\n\n%s:\n%s", s.title, s.body)
	}
	if filled == 0 {
		return ""
	}
	return fmt.Sprintf("KATEGORIJA %s – SVE INFORMACIJE", code) + b.String()
}

// forCategory keeps active records whose category label normalizes to code.
// With includeShared, records without any category apply to every category.
func forCategory(records []types.Record, code string, includeShared bool) []types.Record {
	var out []types.Record
	for _, r := range records {
		if !r.IsActive() {
			continue
		}
		label := r.Get(types.FieldCategory)
		if label == "" {
			if includeShared {
				out = append(out, r)
			}
			continue
		}
		if utils.NormalizeCategory(label) == code {
			out = append(out, r)
		}
	}
	return out
}

func hoursBlock(records []types.Record) string {
	var lines []string
	for _, r := range records {
		var parts []string
		if v := r.Get(types.FieldTheoryHours); v != "" {
			parts = append(parts, "Teorija: "+withUnit(v, "h"))
		}
		if v := r.Get(types.FieldPracticeHours); v != "" {
			parts = append(parts, "Praksa: "+withUnit(v, "h"))
		}
		if v := r.Get(types.FieldMinAge); v != "" {
			parts = append(parts, "Minimalna dob: "+v)
		}
		if v := r.Get(types.FieldConditions); v != "" {
			parts = append(parts, "Uvjeti: "+v)
		}
		if len(parts) > 0 {
			lines = append(lines, strings.Join(parts, " | "))
		}
	}
	return strings.Join(lines, "\n")
}

func priceList(records []types.Record) string {
	var lines []string
	for _, r := range records {
		raw := r.Get(types.FieldAmount)
		if raw == "" {
			continue
		}
		name := r.Get(types.FieldPackage)
		if name == "" {
			name = "Osnovni paket"
		}
		line := fmt.Sprintf("- %s: %s", name, formatPrice(raw, true))
		if note := r.Get(types.FieldNote); note != "" {
			line += " | " + note
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func feeList(records []types.Record) string {
	var lines []string
	for _, r := range records {
		name := r.Get(types.FieldFeeName)
		raw := r.Get(types.FieldAmount)
		if name == "" && raw == "" {
			continue
		}
		line := "- " + name
		if raw != "" {
			line += ": " + formatPrice(raw, false)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func extrasList(records []types.Record) string {
	var lines []string
	for _, r := range records {
		name := r.Get(types.FieldServiceName)
		if name == "" {
			continue
		}
		line := "- " + name
		if raw := r.Get(types.FieldAmount); raw != "" {
			line += ": " + formatPrice(raw, false)
		}
		if note := r.Get(types.FieldNote); note != "" {
			line += " | " + note
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// FormatPayment renders a payment terms record. An explicit description wins;
// otherwise the key facts are pipe-joined.
func FormatPayment(r types.Record) string {
	if r == nil {
		return ""
	}
	if d := r.Get(types.FieldDescription); d != "" {
		return d
	}
	var parts []string
	if v := r.Get(types.FieldPaymentMethod); v != "" {
		parts = append(parts, "Način plaćanja: "+v)
	}
	if v := r.Get(types.FieldInstallments); v != "" {
		parts = append(parts, "Rate: "+v)
	}
	if v := r.Get(types.FieldDeposit); v != "" {
		parts = append(parts, "Akontacija: "+v)
	}
	if v := r.Get(types.FieldNote); v != "" {
		parts = append(parts, "Napomena: "+v)
	}
	return strings.Join(parts, " | ")
}

func activeOnly(records []types.Record) []types.Record {
	return filterRecords(records, types.Record.IsActive)
}

// firstActive implements the single-active-record convention.
func firstActive(records []types.Record) types.Record {
	for _, r := range records {
		if r.IsActive() {
			return r
		}
	}
	return nil
}

func withUnit(v, unit string) string {
	if strings.HasSuffix(strings.ToLower(v), unit) {
		return v
	}
	if _, err := parseNumber(v); err == nil {
		return v + " " + unit
	}
	return v
}
