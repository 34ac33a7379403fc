package types

// School is the tenant profile used to personalize prompts and answers.
type School struct {
	Slug     string `json:"slug"`
	Name     string `json:"name"`
	Persona  string `json:"persona"`
	Tone     string `json:"tone"`
	Style    string `json:"style"`
	Rules    string `json:"rules"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Web      string `json:"web"`
	Hours    string `json:"hours"`
	Location string `json:"location"`
}

// SchoolFromRecord maps a school row onto the profile. The slug argument wins
// when the row does not carry one.
func SchoolFromRecord(slug string, r Record) School {
	s := School{
		Slug:     r.Get(FieldSlug),
		Name:     r.Get(FieldName),
		Persona:  r.Get(FieldPersona),
		Tone:     r.Get(FieldTone),
		Style:    r.Get(FieldStyle),
		Rules:    r.Get(FieldRules),
		Phone:    r.Get(FieldPhone),
		Email:    r.Get(FieldEmail),
		Web:      r.Get(FieldWeb),
		Hours:    r.Get(FieldHours),
		Location: r.Get(FieldLocation),
	}
	if s.Slug == "" {
		s.Slug = slug
	}
	return s
}
