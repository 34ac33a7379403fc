package facts

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Conversly/autoskola-bot/internal/types"
	"github.com/Conversly/autoskola-bot/internal/utils"
)

const maxFleetLines = 30

// LocationKind is a class of place a student asks about.
type LocationKind struct {
	Name     string
	Header   string
	Triggers []string // stems matched against the message
	Keywords []string // scored against location records
}

// LocationKinds are checked in order; the first triggered kind with a
// matching record answers.
var LocationKinds = []LocationKind{
	{
		Name:     "exam_center",
		Header:   "ISPITNI CENTAR",
		Triggers: []string{"ispitn", "polaze ispit", "polaganj", "polagat"},
		Keywords: []string{"ispitni", "centar"},
	},
	{
		Name:     "medical",
		Header:   "LIJEČNIČKI PREGLED",
		Triggers: []string{"lijecnick", "medicin", "pregled", "doktor"},
		Keywords: []string{"lijecnicki", "pregled", "medicina rada"},
	},
	{
		Name:     "first_aid",
		Header:   "PRVA POMOĆ",
		Triggers: []string{"prva pomoc", "prve pomoci", "prvu pomoc", "prvoj pomoci", "crveni kriz"},
		Keywords: []string{"prva pomoc", "crveni kriz"},
	},
	{
		Name:     "practice_ground",
		Header:   "POLIGON",
		Triggers: []string{"poligon", "vjezbalist"},
		Keywords: []string{"poligon", "vjezbaliste"},
	},
}

var (
	schoolLocationStems = []string{"adres", "gdje se nalaz", "gdje ste", "gdje je autoskol", "gdje je ured",
		"lokacij", "kako doci", "kako da dodem", "sjedist", "poslovnic", "ured"}
	officeKeywords     = []string{"ured", "sjediste", "poslovnica", "autoskola"}
	instructorStems    = []string{"instruktor", "ucitelj", "predavac", "tko vozi", "tko ce me voziti"}
	fuelStems          = []string{"benzin", "dizel", "diesel", "elektr", "hibrid", "plin"}
	summaryStems       = []string{"sve", "info", "cijen", "kost", "sat", "pristojb", "paket", "uvjet", "koliko", "trosk"}
	paymentStems       = []string{"placanj", "platit", "placa", "rata", "rate", "obroc", "akontacij", "kartic",
		"gotovin", "uplat", "kredit"}
	fleetStems         = []string{"vozil", "automobil", "auti", "auta", "autu", "flot", "vozni park", "mjenjac",
		"automatik", "automats", "kamion", "motocikl", "motor"}
	automaticStems     = []string{"automatik", "automats"}
)

func isSchoolLocationQuery(q *Query) bool {
	if !utils.ContainsStem(q.Text, schoolLocationStems...) {
		return false
	}
	for _, k := range LocationKinds {
		if utils.ContainsStem(q.Text, k.Triggers...) {
			return false
		}
	}
	return true
}

func answerSchoolLocation(q *Query) string {
	if q.School.Location != "" {
		var b strings.Builder
		b.WriteString("LOKACIJA AUTOŠKOLE:\n")
		b.WriteString(q.School.Location)
		if q.School.Hours != "" {
			b.WriteString("\nRadno vrijeme: " + q.School.Hours)
		}
		if q.School.Phone != "" {
			b.WriteString("\nTelefon: " + q.School.Phone)
		}
		return b.String()
	}
	if r := FindBestLocation(q.Data.Locations, officeKeywords); r != nil {
		return FormatLocation("LOKACIJA AUTOŠKOLE", r)
	}
	return ""
}

func isInstructorQuery(q *Query) bool {
	return utils.ContainsStem(q.Text, instructorStems...)
}

func answerInstructors(q *Query, groupByLocation bool) string {
	instructors := activeOnly(q.Data.Instructors)
	if len(instructors) == 0 {
		return ""
	}

	if hint := locationHint(q.Text, instructors); hint != "" {
		instructors = filterRecords(instructors, func(r types.Record) bool {
			return utils.Normalize(r.Get(types.FieldLocation)) == hint
		})
	}

	for _, fuel := range fuelStems {
		if !utils.ContainsStem(q.Text, fuel) {
			continue
		}
		byFuel := filterRecords(instructors, func(r types.Record) bool {
			text := utils.Normalize(r.Get(types.FieldNote) + " " + r.Get(types.FieldVehicle))
			return utils.ContainsStem(text, fuel)
		})
		if len(byFuel) > 0 {
			instructors = byFuel
		}
		break
	}

	if len(instructors) == 0 {
		return ""
	}

	if !groupByLocation {
		lines := make([]string, 0, len(instructors))
		for _, r := range instructors {
			lines = append(lines, instructorLine(r, true))
		}
		return "INSTRUKTORI:\n" + strings.Join(lines, "\n")
	}

	groups := make(map[string][]string)
	var order []string
	for _, r := range instructors {
		loc := r.Get(types.FieldLocation)
		if loc == "" {
			loc = "Ostalo"
		}
		if _, ok := groups[loc]; !ok {
			order = append(order, loc)
		}
		groups[loc] = append(groups[loc], instructorLine(r, false))
	}
	var b strings.Builder
	b.WriteString("INSTRUKTORI PO LOKACIJAMA:")
	for _, loc := range order {
		fmt.Fprintf(&b, "\n\n%s:\n%s", loc, strings.Join(groups[loc], "\n"))
	}
	return b.String()
}

func instructorLine(r types.Record, withLocation bool) string {
	line := "- " + r.Get(types.FieldPersonName)
	if c := r.Get(types.FieldCategories); c != "" {
		line += " (" + c + ")"
	}
	var extra []string
	if v := r.Get(types.FieldVehicle); v != "" {
		extra = append(extra, v)
	}
	if withLocation {
		if l := r.Get(types.FieldLocation); l != "" {
			extra = append(extra, l)
		}
	}
	if n := r.Get(types.FieldNote); n != "" {
		extra = append(extra, n)
	}
	if len(extra) > 0 {
		line += " – " + strings.Join(extra, " | ")
	}
	return line
}

// Category codes are detected on the raw message: normalizing drops the "+"
// that tells C+E apart from C.
func isCategorySummaryQuery(q *Query) bool {
	return utils.DetectCategory(q.Raw) != "" && utils.ContainsStem(q.Text, summaryStems...)
}

func answerCategorySummary(q *Query) string {
	return BuildCategorySummary(utils.DetectCategory(q.Raw), q.Data)
}

func isSpecialLocationQuery(q *Query) bool {
	for _, k := range LocationKinds {
		if utils.ContainsStem(q.Text, k.Triggers...) {
			return true
		}
	}
	return false
}

func answerSpecialLocation(q *Query) string {
	for _, k := range LocationKinds {
		if !utils.ContainsStem(q.Text, k.Triggers...) {
			continue
		}
		if r := FindBestLocation(q.Data.Locations, k.Keywords); r != nil {
			return FormatLocation(k.Header, r)
		}
	}
	return ""
}

func isPaymentQuery(q *Query) bool {
	return utils.ContainsStem(q.Text, paymentStems...)
}

func answerPayment(q *Query) string {
	body := FormatPayment(firstActive(q.Data.Payments))
	if body == "" {
		return ""
	}
	return "PLAĆANJE:\n" + body
}

func isFleetQuery(q *Query) bool {
	return utils.ContainsStem(q.Text, fleetStems...)
}

func answerFleet(q *Query) string {
	vehicles := activeOnly(q.Data.Vehicles)
	if len(vehicles) == 0 {
		return ""
	}

	header := "VOZNI PARK"
	if code := utils.DetectCategory(q.Raw); code != "" {
		vehicles = filterRecords(vehicles, func(r types.Record) bool {
			return utils.NormalizeCategory(r.Get(types.FieldCategory)) == code
		})
		header += " (" + code + ")"
	}
	if hint := locationHint(q.Text, vehicles); hint != "" {
		vehicles = filterRecords(vehicles, func(r types.Record) bool {
			return utils.Normalize(r.Get(types.FieldLocation)) == hint
		})
	}
	if utils.ContainsStem(q.Text, automaticStems...) {
		vehicles = filterRecords(vehicles, func(r types.Record) bool {
			return utils.ContainsStem(utils.Normalize(r.Get(types.FieldTransmission)), "autom")
		})
	}
	if len(vehicles) == 0 {
		return ""
	}

	lines := make([]string, 0, maxFleetLines+1)
	for i, r := range vehicles {
		if i == maxFleetLines {
			lines = append(lines, fmt.Sprintf("+%d više", len(vehicles)-maxFleetLines))
			break
		}
		lines = append(lines, vehicleLine(r))
	}
	return header + ":\n" + strings.Join(lines, "\n")
}

// vehicleLine renders "[B] Golf 7 (2019) – ručni | Zagreb".
func vehicleLine(r types.Record) string {
	var b strings.Builder
	if c := utils.NormalizeCategory(r.Get(types.FieldCategory)); c != "" {
		b.WriteString("[" + c + "] ")
	} else if raw := r.Get(types.FieldCategory); raw != "" {
		b.WriteString("[" + raw + "] ")
	}
	model := r.Get(types.FieldModel)
	if model == "" {
		model = r.Get(types.FieldVehicle)
	}
	if model == "" {
		model = r.Get(types.FieldVehicleType)
	}
	b.WriteString(model)
	if y := r.Get(types.FieldYear); y != "" {
		b.WriteString(" (" + y + ")")
	}
	if t := r.Get(types.FieldTransmission); t != "" {
		b.WriteString(" – " + t)
	}
	if l := r.Get(types.FieldLocation); l != "" {
		b.WriteString(" | " + l)
	}
	return strings.TrimSpace(b.String())
}

// locationHint returns the normalized location name of a record that the
// message mentions, preferring the longest name.
func locationHint(text string, records []types.Record) string {
	seen := make(map[string]bool)
	var names []string
	for _, r := range records {
		n := utils.Normalize(r.Get(types.FieldLocation))
		if len(n) < 3 || seen[n] {
			continue
		}
		seen[n] = true
		names = append(names, n)
	}
	sort.SliceStable(names, func(i, j int) bool { return len(names[i]) > len(names[j]) })
	for _, n := range names {
		if utils.ContainsStem(text, n) {
			return n
		}
	}
	return ""
}

func filterRecords(records []types.Record, keep func(types.Record) bool) []types.Record {
	out := make([]types.Record, 0, len(records))
	for _, r := range records {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}
