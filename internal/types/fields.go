package types

// Field is a logical attribute name. The record store schema drifted between
// revisions, so every attribute is resolved through an ordered alias list.
type Field string

const (
	FieldSlug          Field = "slug"
	FieldName          Field = "name"
	FieldPersona       Field = "persona"
	FieldTone          Field = "tone"
	FieldStyle         Field = "style"
	FieldRules         Field = "rules"
	FieldPhone         Field = "phone"
	FieldEmail         Field = "email"
	FieldWeb           Field = "web"
	FieldHours         Field = "hours"
	FieldLocation      Field = "location"
	FieldCategory      Field = "category"
	FieldTheoryHours   Field = "theory_hours"
	FieldPracticeHours Field = "practice_hours"
	FieldMinAge        Field = "min_age"
	FieldConditions    Field = "conditions"
	FieldAmount        Field = "amount"
	FieldPackage       Field = "package"
	FieldNote          Field = "note"
	FieldFeeName       Field = "fee_name"
	FieldPaymentMethod Field = "payment_method"
	FieldInstallments  Field = "installments"
	FieldDeposit       Field = "deposit"
	FieldDescription   Field = "description"
	FieldServiceName   Field = "service_name"
	FieldPersonName    Field = "person_name"
	FieldCategories    Field = "categories"
	FieldVehicle       Field = "vehicle"
	FieldModel         Field = "model"
	FieldVehicleType   Field = "vehicle_type"
	FieldYear          Field = "year"
	FieldTransmission  Field = "transmission"
	FieldLocationKind  Field = "location_kind"
	FieldAddress       Field = "address"
	FieldCity          Field = "city"
	FieldMapLink       Field = "map_link"
	FieldQuestion      Field = "question"
	FieldExamples      Field = "examples"
	FieldKeywords      Field = "keywords"
	FieldAnswer        Field = "answer"
	FieldActive        Field = "active"
)

// Fields maps each logical attribute to the source column names accepted for
// it, most preferred first.
var Fields = map[Field][]string{
	FieldSlug:          {"slug", "Slug", "autoskola_slug", "Autoskola slug", "school_slug", "tenant"},
	FieldName:          {"naziv", "Naziv", "name", "Name", "ime_autoskole"},
	FieldPersona:       {"persona", "Persona", "ai_persona", "AI persona"},
	FieldTone:          {"ton", "Ton", "tone", "Tone"},
	FieldStyle:         {"stil", "Stil", "style", "Style"},
	FieldRules:         {"pravila", "Pravila", "rules", "Rules", "ai_pravila"},
	FieldPhone:         {"telefon", "Telefon", "phone", "Phone", "mobitel"},
	FieldEmail:         {"email", "Email", "e-mail", "E-mail", "mail"},
	FieldWeb:           {"web", "Web", "website", "Website", "web_stranica"},
	FieldHours:         {"radno_vrijeme", "Radno vrijeme", "working_hours", "hours"},
	FieldLocation:      {"lokacija_opis", "Lokacija opis", "lokacija", "Lokacija", "location"},
	FieldCategory:      {"kategorija", "Kategorija", "category", "Category"},
	FieldTheoryHours:   {"sati_teorija", "Sati teorije", "teorija", "Teorija", "theory_hours"},
	FieldPracticeHours: {"sati_praksa", "Sati prakse", "praksa", "Praksa", "practice_hours"},
	FieldMinAge:        {"min_dob", "Minimalna dob", "dob", "min_age"},
	FieldConditions:    {"uvjeti", "Uvjeti upisa", "Uvjeti", "conditions"},
	FieldAmount:        {"cijena", "Cijena", "iznos", "Iznos", "price", "amount"},
	FieldPackage:       {"paket", "Paket", "naziv_paketa", "package"},
	FieldNote:          {"napomena", "Napomena", "note", "notes"},
	FieldFeeName:       {"pristojba", "Pristojba", "naziv", "Naziv", "name"},
	FieldPaymentMethod: {"nacin_placanja", "Način plaćanja", "payment_method", "payment_methods"},
	FieldInstallments:  {"rate", "Rate", "obroci", "Obroci", "installments"},
	FieldDeposit:       {"akontacija", "Akontacija", "deposit"},
	FieldDescription:   {"opis", "Opis", "description", "Description"},
	FieldServiceName:   {"usluga", "Usluga", "naziv", "Naziv", "name"},
	FieldPersonName:    {"ime_prezime", "Ime i prezime", "ime", "Ime", "name"},
	FieldCategories:    {"kategorije", "Kategorije", "kategorija", "Kategorija", "categories"},
	FieldVehicle:       {"vozilo", "Vozilo", "vehicle"},
	FieldModel:         {"model", "Model", "marka_model", "Marka i model"},
	FieldVehicleType:   {"tip", "Tip", "vrsta", "Vrsta", "type"},
	FieldYear:          {"godiste", "Godište", "godina", "Godina", "year"},
	FieldTransmission:  {"mjenjac", "Mjenjač", "transmission"},
	FieldLocationKind:  {"tip_lokacije", "Tip lokacije", "vrsta_lokacije", "Vrsta lokacije", "location_kind"},
	FieldAddress:       {"adresa", "Adresa", "address"},
	FieldCity:          {"grad", "Grad", "mjesto", "city"},
	FieldMapLink:       {"google_maps", "Google Maps", "karta", "map_link", "maps"},
	FieldQuestion:      {"pitanje", "Pitanje", "question", "Question"},
	FieldExamples:      {"primjeri", "Primjeri pitanja", "varijante", "Varijante", "examples"},
	FieldKeywords:      {"kljucne_rijeci", "Ključne riječi", "keywords"},
	FieldAnswer:        {"odgovor", "Odgovor", "answer", "Answer"},
	FieldActive:        {"aktivno", "Aktivno", "active", "Active"},
}

// Aliases returns the accepted source names for a logical attribute. Unknown
// attributes resolve to their own name.
func Aliases(f Field) []string {
	if names, ok := Fields[f]; ok {
		return names
	}
	return []string{string(f)}
}
