package facts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Conversly/autoskola-bot/internal/loaders"
	"github.com/Conversly/autoskola-bot/internal/types"
)

func TestRouter_HandlerOrder(t *testing.T) {
	var names []string
	for _, h := range NewRouter(Options{}).Handlers() {
		names = append(names, h.Name)
	}
	assert.Equal(t, []string{
		"school_location",
		"instructors",
		"category_summary",
		"special_location",
		"payment",
		"fleet",
	}, names)
}

func TestRouter_PracticeGround(t *testing.T) {
	data := &loaders.TenantData{
		Locations: []types.Record{
			{"tip_lokacije": "Poligon za vježbanje", "adresa": "Ulica 1, Grad"},
		},
	}
	out, handler := NewRouter(Options{}).Extract("Gdje se nalazi poligon?", data, types.School{})

	assert.Equal(t, "special_location", handler)
	assert.Contains(t, out, "POLIGON")
	assert.Contains(t, out, "Ulica 1, Grad")
}

func TestRouter_SpecialLocationKinds(t *testing.T) {
	data := &loaders.TenantData{
		Locations: []types.Record{
			{"tip_lokacije": "Ured", "adresa": "Ilica 10"},
			{"tip_lokacije": "Ispitni centar", "adresa": "Savska 100"},
			{"tip_lokacije": "Liječnički pregled", "naziv": "Poliklinika Medikol", "adresa": "Vukovarska 2"},
			{"tip_lokacije": "Prva pomoć", "naziv": "Crveni križ", "adresa": "Trg 3"},
		},
	}
	router := NewRouter(Options{})

	tests := []struct {
		message string
		header  string
		address string
	}{
		{"Gdje je ispitni centar?", "ISPITNI CENTAR", "Savska 100"},
		{"Gdje se obavlja liječnički pregled?", "LIJEČNIČKI PREGLED", "Vukovarska 2"},
		{"Gdje se polaže prva pomoć?", "PRVA POMOĆ", "Trg 3"},
	}
	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			out, _ := router.Extract(tt.message, data, types.School{})
			assert.True(t, strings.HasPrefix(out, tt.header+":"), out)
			assert.Contains(t, out, tt.address)
		})
	}
}

func TestRouter_SchoolLocation(t *testing.T) {
	router := NewRouter(Options{})

	school := types.School{Slug: "demo", Location: "Ilica 10, Zagreb (2. kat)", Phone: "01 111 222"}
	out, handler := router.Extract("Koja je vaša adresa?", &loaders.TenantData{}, school)
	assert.Equal(t, "school_location", handler)
	assert.Contains(t, out, "LOKACIJA AUTOŠKOLE")
	assert.Contains(t, out, "Ilica 10, Zagreb (2. kat)")

	data := &loaders.TenantData{Locations: []types.Record{
		{"tip_lokacije": "Poligon", "adresa": "Jankomir 1"},
		{"tip_lokacije": "Ured", "adresa": "Vlaška 5"},
	}}
	out, _ = router.Extract("Gdje se nalazite?", data, types.School{})
	assert.Contains(t, out, "Vlaška 5")
}

func TestRouter_Instructors(t *testing.T) {
	data := &loaders.TenantData{Instructors: []types.Record{
		{"ime": "Ivan Horvat", "kategorije": "B", "vozilo": "Golf (dizel)", "lokacija": "Zagreb"},
		{"ime": "Ana Kovač", "kategorije": []any{"B", "C"}, "vozilo": "Clio benzin", "lokacija": "Sesvete"},
	}}

	out, handler := NewRouter(Options{}).Extract("Koji instruktori voze dizel?", data, types.School{Slug: "demo"})
	assert.Equal(t, "instructors", handler)
	assert.Contains(t, out, "Ivan Horvat (B)")
	assert.NotContains(t, out, "Ana Kovač")

	out, _ = NewRouter(Options{}).Extract("Tko su instruktori u Sesvete?", data, types.School{})
	assert.Contains(t, out, "Ana Kovač (B, C)")
	assert.NotContains(t, out, "Ivan Horvat")

	grouped := NewRouter(Options{GroupInstructorSlugs: []string{"Demo"}})
	out, _ = grouped.Extract("Popis instruktora", data, types.School{Slug: "demo"})
	assert.True(t, strings.HasPrefix(out, "INSTRUKTORI PO LOKACIJAMA:"))
	assert.Contains(t, out, "Zagreb:\n- Ivan Horvat (B) – Golf (dizel)")
	assert.Contains(t, out, "Sesvete:\n- Ana Kovač (B, C) – Clio benzin")
}

func TestRouter_InstructorFuelFallsBackToFullList(t *testing.T) {
	data := &loaders.TenantData{Instructors: []types.Record{{"ime": "Ivan Horvat", "vozilo": "Golf"}}}
	out, _ := NewRouter(Options{}).Extract("Ima li instruktor s hibridom?", data, types.School{})
	assert.Contains(t, out, "Ivan Horvat")
}

func TestRouter_CategorySummary(t *testing.T) {
	out, handler := NewRouter(Options{}).Extract("Koliko košta kategorija B?", categoryBData(), types.School{})
	assert.Equal(t, "category_summary", handler)
	assert.Contains(t, out, "KATEGORIJA B")
	assert.Contains(t, out, "796,34 €")
}

func TestRouter_CategoryWithoutDataFallsThrough(t *testing.T) {
	out, handler := NewRouter(Options{}).Extract("Koliko košta kategorija C?", &loaders.TenantData{}, types.School{})
	assert.Empty(t, out)
	assert.Empty(t, handler)
}

func TestRouter_Payment(t *testing.T) {
	data := &loaders.TenantData{Payments: []types.Record{{"nacin_placanja": "kartica", "rate": "do 24"}}}
	out, handler := NewRouter(Options{}).Extract("Može li se plaćati na rate?", data, types.School{})
	assert.Equal(t, "payment", handler)
	assert.Equal(t, "PLAĆANJE:\nNačin plaćanja: kartica | Rate: do 24", out)
}

func TestRouter_Fleet(t *testing.T) {
	data := &loaders.TenantData{Vehicles: []types.Record{
		{"kategorija": "B", "model": "VW Golf 8", "godiste": float64(2021), "mjenjac": "ručni", "lokacija": "Zagreb"},
		{"kategorija": "B", "model": "Toyota Yaris", "godiste": float64(2022), "mjenjac": "automatski", "lokacija": "Velika Gorica"},
		{"kategorija": "C", "model": "MAN TGL", "godiste": float64(2018), "mjenjac": "ručni", "lokacija": "Zagreb"},
	}}
	router := NewRouter(Options{})

	out, handler := router.Extract("Koja vozila imate za B?", data, types.School{})
	assert.Equal(t, "fleet", handler)
	assert.Contains(t, out, "VOZNI PARK (B):")
	assert.Contains(t, out, "[B] VW Golf 8 (2021) – ručni | Zagreb")
	assert.NotContains(t, out, "MAN TGL")

	out, _ = router.Extract("Imate li automatik?", data, types.School{})
	assert.Contains(t, out, "Toyota Yaris")
	assert.NotContains(t, out, "VW Golf")

	out, _ = router.Extract("Koja vozila su u Velika Gorica?", data, types.School{})
	assert.Contains(t, out, "Toyota Yaris")
	assert.NotContains(t, out, "MAN TGL")
}

func TestRouter_FleetCapsLines(t *testing.T) {
	var vehicles []types.Record
	for i := 0; i < 35; i++ {
		vehicles = append(vehicles, types.Record{"kategorija": "B", "model": "Golf"})
	}
	out, _ := NewRouter(Options{}).Extract("Koliko vozila imate?", &loaders.TenantData{Vehicles: vehicles}, types.School{})

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 32)
	assert.Equal(t, "+5 više", lines[31])
}

func TestRouter_NothingFires(t *testing.T) {
	out, handler := NewRouter(Options{}).Extract("Kako ste danas?", &loaders.TenantData{}, types.School{})
	assert.Empty(t, out)
	assert.Empty(t, handler)

	out, _ = NewRouter(Options{}).Extract("", nil, types.School{})
	assert.Empty(t, out)
}

func TestRouter_CategorySummaryKeepsCombinedCode(t *testing.T) {
	data := &loaders.TenantData{Prices: []types.Record{
		{"kategorija": "C", "paket": "Kamion paket", "cijena": "900 €"},
		{"kategorija": "C+E", "paket": "Tegljač paket", "cijena": "1500 €"},
	}}
	router := NewRouter(Options{})

	out, handler := router.Extract("Koliko košta kategorija C+E?", data, types.School{})
	assert.Equal(t, "category_summary", handler)
	assert.True(t, strings.HasPrefix(out, "KATEGORIJA CE"), out)
	assert.Contains(t, out, "Tegljač paket")
	assert.NotContains(t, out, "Kamion paket")

	out, _ = router.Extract("Koliko košta kategorija C?", data, types.School{})
	assert.Contains(t, out, "Kamion paket")
	assert.NotContains(t, out, "Tegljač paket")
}

func TestRouter_WhichQuestionIsNotFleet(t *testing.T) {
	data := &loaders.TenantData{Vehicles: []types.Record{{"kategorija": "B", "model": "VW Golf"}}}

	out, handler := NewRouter(Options{}).Extract("Kojim danima radite?", data, types.School{})
	assert.Empty(t, handler)
	assert.Empty(t, out)
}

func TestRouter_SkipsInactiveRecords(t *testing.T) {
	data := &loaders.TenantData{
		Prices: []types.Record{
			{"kategorija": "B", "paket": "Stari paket", "cijena": "500 €", "aktivno": false},
			{"kategorija": "B", "paket": "Novi paket", "cijena": "900 €"},
		},
		Vehicles: []types.Record{
			{"kategorija": "B", "model": "Opel Astra", "aktivno": "ne"},
			{"kategorija": "B", "model": "VW Golf"},
		},
		Instructors: []types.Record{
			{"ime": "Ivan Horvat", "aktivno": false},
			{"ime": "Ana Kovač"},
		},
	}
	router := NewRouter(Options{})

	out, _ := router.Extract("Koliko košta kategorija B?", data, types.School{})
	assert.Contains(t, out, "Novi paket")
	assert.NotContains(t, out, "Stari paket")

	out, handler := router.Extract("Koja vozila imate?", data, types.School{})
	assert.Equal(t, "fleet", handler)
	assert.Contains(t, out, "VW Golf")
	assert.NotContains(t, out, "Opel Astra")

	out, handler = router.Extract("Tko su vaši instruktori?", data, types.School{})
	assert.Equal(t, "instructors", handler)
	assert.Contains(t, out, "Ana Kovač")
	assert.NotContains(t, out, "Ivan Horvat")
}
