// Package prompt assembles the system prompt for the completion fallback.
package prompt

import (
	"fmt"
	"strings"

	"github.com/Conversly/autoskola-bot/internal/facts"
	"github.com/Conversly/autoskola-bot/internal/loaders"
	"github.com/Conversly/autoskola-bot/internal/types"
	"github.com/Conversly/autoskola-bot/internal/utils"
)

// NoData marks an empty section. Sections are never omitted so the model
// always sees the same structure.
const NoData = "(nema podataka)"

const defaultPersona = "Ti si ljubazni asistent autoškole. Odgovaraš na hrvatskom jeziku, kratko i točno."

var practiceGroundKeywords = []string{"poligon", "vjezbaliste"}

// Build renders the system prompt for one request. factsText is the output of
// the fact router (may be empty) and hints are optional search-index excerpts.
func Build(school types.School, data *loaders.TenantData, factsText string, hints []string) string {
	if data == nil {
		data = &loaders.TenantData{}
	}

	var b strings.Builder

	persona := school.Persona
	if persona == "" {
		persona = defaultPersona
	}
	b.WriteString(persona)
	b.WriteString("\n")
	if school.Name != "" {
		fmt.Fprintf(&b, "Predstavljaš autoškolu %s.\n", school.Name)
	}
	if school.Tone != "" {
		fmt.Fprintf(&b, "Ton: %s\n", school.Tone)
	}
	if school.Style != "" {
		fmt.Fprintf(&b, "Stil: %s\n", school.Style)
	}

	b.WriteString("\n**Pravila**:\n")
	b.WriteString("1. Koristi isključivo podatke iz ovog uputa. Ako podatak nedostaje, reci to i uputi na kontakt autoškole.\n")
	b.WriteString("2. Cijene navodi u eurima.\n")
	b.WriteString("3. Ne izmišljaj termine, cijene ni imena instruktora.\n")
	if school.Rules != "" {
		b.WriteString(strings.TrimSpace(school.Rules))
		b.WriteString("\n")
	}

	if f := strings.TrimSpace(factsText); f != "" {
		b.WriteString("\n## ČINJENICE (PRIORITET)\n")
		b.WriteString("Sljedeći podaci izravno odgovaraju na pitanje. Odgovori na temelju njih i ne proturječi im.\n")
		b.WriteString(f)
		b.WriteString("\n")
	}

	section(&b, "KONTAKT", contactBlock(school))
	section(&b, "KATEGORIJE", categoriesBlock(data.Categories))
	section(&b, "CIJENE", pricesBlock(data.Prices))
	section(&b, "PRISTOJBE", feesBlock(data.Fees))
	section(&b, "PLAĆANJE", paymentBlock(data.Payments))
	section(&b, "DODATNE USLUGE", extrasBlock(data.Extras))
	section(&b, "INSTRUKTORI", instructorsBlock(data.Instructors))
	section(&b, "VOZNI PARK", fleetBlock(data.Vehicles))
	section(&b, "POLIGON", practiceGroundBlock(data.Locations))

	for i, h := range hints {
		h = strings.TrimSpace(h)
		if h == "" {
			continue
		}
		fmt.Fprintf(&b, "\n## DODATNI KONTEKST %d\n%s\n", i+1, h)
	}

	return strings.TrimRight(b.String(), "\n")
}

func section(b *strings.Builder, title, body string) {
	if strings.TrimSpace(body) == "" {
		body = NoData
	}
	fmt.Fprintf(b, "\n## %s\n%s\n", title, body)
}

func contactBlock(s types.School) string {
	var lines []string
	add := func(label, v string) {
		if v != "" {
			lines = append(lines, label+": "+v)
		}
	}
	add("Telefon", s.Phone)
	add("Email", s.Email)
	add("Web", s.Web)
	add("Radno vrijeme", s.Hours)
	add("Lokacija", s.Location)
	return strings.Join(lines, "\n")
}

func categoriesBlock(records []types.Record) string {
	var lines []string
	for _, r := range records {
		if !r.IsActive() {
			continue
		}
		label := categoryLabel(r)
		if label == "" {
			continue
		}
		parts := []string{label}
		if v := r.Get(types.FieldTheoryHours); v != "" {
			parts = append(parts, "teorija "+v)
		}
		if v := r.Get(types.FieldPracticeHours); v != "" {
			parts = append(parts, "praksa "+v)
		}
		if v := r.Get(types.FieldMinAge); v != "" {
			parts = append(parts, "min. dob "+v)
		}
		if v := r.Get(types.FieldConditions); v != "" {
			parts = append(parts, "uvjeti: "+v)
		}
		lines = append(lines, "- "+strings.Join(parts, " | "))
	}
	return strings.Join(lines, "\n")
}

func pricesBlock(records []types.Record) string {
	var lines []string
	for _, r := range records {
		raw := r.Get(types.FieldAmount)
		if raw == "" || !r.IsActive() {
			continue
		}
		name := r.Get(types.FieldPackage)
		if name == "" {
			name = "Osnovni paket"
		}
		line := fmt.Sprintf("- %s%s: %s", bracketed(categoryLabel(r)), name, euro(raw))
		if n := r.Get(types.FieldNote); n != "" {
			line += " | " + n
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func feesBlock(records []types.Record) string {
	var lines []string
	for _, r := range records {
		name := r.Get(types.FieldFeeName)
		if name == "" || !r.IsActive() {
			continue
		}
		line := "- " + bracketed(categoryLabel(r)) + name
		if raw := r.Get(types.FieldAmount); raw != "" {
			line += ": " + euro(raw)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func paymentBlock(records []types.Record) string {
	for _, r := range records {
		if r.IsActive() {
			return facts.FormatPayment(r)
		}
	}
	return ""
}

func extrasBlock(records []types.Record) string {
	var lines []string
	for _, r := range records {
		name := r.Get(types.FieldServiceName)
		if name == "" || !r.IsActive() {
			continue
		}
		line := "- " + bracketed(categoryLabel(r)) + name
		if raw := r.Get(types.FieldAmount); raw != "" {
			line += ": " + euro(raw)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func instructorsBlock(records []types.Record) string {
	var lines []string
	for _, r := range records {
		name := r.Get(types.FieldPersonName)
		if name == "" || !r.IsActive() {
			continue
		}
		line := "- " + name
		if c := r.Get(types.FieldCategories); c != "" {
			line += " (" + c + ")"
		}
		if l := r.Get(types.FieldLocation); l != "" {
			line += " | " + l
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func fleetBlock(records []types.Record) string {
	var lines []string
	for _, r := range records {
		if !r.IsActive() {
			continue
		}
		model := r.Get(types.FieldModel)
		if model == "" {
			model = r.Get(types.FieldVehicle)
		}
		if model == "" {
			continue
		}
		line := "- " + bracketed(categoryLabel(r)) + model
		if y := r.Get(types.FieldYear); y != "" {
			line += " (" + y + ")"
		}
		if t := r.Get(types.FieldTransmission); t != "" {
			line += " – " + t
		}
		if l := r.Get(types.FieldLocation); l != "" {
			line += " | " + l
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func practiceGroundBlock(records []types.Record) string {
	r := facts.FindBestLocation(records, practiceGroundKeywords)
	if r == nil {
		return ""
	}
	// FormatLocation puts its header on the first line; the section has its own.
	_, body, _ := strings.Cut(facts.FormatLocation("POLIGON", r), "\n")
	return body
}

func categoryLabel(r types.Record) string {
	raw := r.Get(types.FieldCategory)
	if code := utils.NormalizeCategory(raw); code != "" {
		return code
	}
	return raw
}

func bracketed(s string) string {
	if s == "" {
		return ""
	}
	return "[" + s + "] "
}

func euro(raw string) string {
	a, ok := facts.ParseAmount(raw)
	if !ok {
		return raw
	}
	return facts.FormatEUR(a.EUR)
}
