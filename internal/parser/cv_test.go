package parser

import (
	"errors"
	"reflect"
	"testing"
)

const sampleCV = `María García
maria.garcia@example.com
+34 612 345 678
Madrid, España

Experiencia Laboral

Senior Developer en TechCorp
Enero 2020 - Presente
Lideré el equipo de backend.

Developer en StartupX
2018-03 - 2019-12

Educación

Universidad Politécnica de Madrid
Licenciatura en Informática
2014 - 2018

Habilidades
Python, Go, PostgreSQL, Docker

Idiomas
Español, Inglés`

func TestExtractCVContactBlock(t *testing.T) {
	cv, err := ExtractCV(sampleCV)
	if err != nil {
		t.Fatalf("ExtractCV: %v", err)
	}
	if cv.FullName != "María García" {
		t.Errorf("FullName: got %q, want %q", cv.FullName, "María García")
	}
	if cv.Email != "maria.garcia@example.com" {
		t.Errorf("Email: got %q, want %q", cv.Email, "maria.garcia@example.com")
	}
	if cv.Phone != "+34612345678" {
		t.Errorf("Phone: got %q, want %q", cv.Phone, "+34612345678")
	}
	if cv.Location != "Madrid, España" {
		t.Errorf("Location: got %q, want %q", cv.Location, "Madrid, España")
	}
}

func TestExtractCVExperience(t *testing.T) {
	cv, err := ExtractCV(sampleCV)
	if err != nil {
		t.Fatalf("ExtractCV: %v", err)
	}
	if len(cv.Experience) != 2 {
		t.Fatalf("Experience: got %d entries, want 2", len(cv.Experience))
	}

	first := cv.Experience[0]
	if first.Title != "Senior Developer" || first.Company != "TechCorp" {
		t.Errorf("first entry: got (%q, %q), want (Senior Developer, TechCorp)", first.Title, first.Company)
	}
	if first.StartDate != "2020-01" {
		t.Errorf("first StartDate: got %q, want %q", first.StartDate, "2020-01")
	}
	if !first.IsCurrent {
		t.Error("first IsCurrent: got false, want true")
	}
	if first.EndDate != "" {
		t.Errorf("first EndDate: got %q, want empty (current position)", first.EndDate)
	}
	if first.Description != "Lideré el equipo de backend." {
		t.Errorf("first Description: got %q", first.Description)
	}

	second := cv.Experience[1]
	if second.Company != "StartupX" {
		t.Errorf("second Company: got %q, want %q", second.Company, "StartupX")
	}
	if second.StartDate != "2018-03" || second.EndDate != "2019-12" {
		t.Errorf("second dates: got (%q, %q), want (2018-03, 2019-12)", second.StartDate, second.EndDate)
	}
	if second.IsCurrent {
		t.Error("second IsCurrent: got true, want false")
	}
}

func TestExtractCVEducation(t *testing.T) {
	cv, err := ExtractCV(sampleCV)
	if err != nil {
		t.Fatalf("ExtractCV: %v", err)
	}
	if len(cv.Education) != 1 {
		t.Fatalf("Education: got %d entries, want 1", len(cv.Education))
	}
	edu := cv.Education[0]
	if edu.Institution != "Universidad Politécnica de Madrid" {
		t.Errorf("Institution: got %q", edu.Institution)
	}
	if edu.Degree != "Licenciatura" || edu.FieldOfStudy != "Informática" {
		t.Errorf("Degree/Field: got (%q, %q), want (Licenciatura, Informática)", edu.Degree, edu.FieldOfStudy)
	}
	if edu.StartDate != "2014" || edu.EndDate != "2018" {
		t.Errorf("dates: got (%q, %q), want (2014, 2018)", edu.StartDate, edu.EndDate)
	}
}

func TestExtractCVSkillsAndLanguages(t *testing.T) {
	cv, err := ExtractCV(sampleCV)
	if err != nil {
		t.Fatalf("ExtractCV: %v", err)
	}
	wantSkills := []string{"Python", "Go", "PostgreSQL", "Docker"}
	if !reflect.DeepEqual(cv.Skills, wantSkills) {
		t.Errorf("Skills: got %v, want %v", cv.Skills, wantSkills)
	}
	wantLangs := []string{"Español", "Inglés"}
	if !reflect.DeepEqual(cv.Languages, wantLangs) {
		t.Errorf("Languages: got %v, want %v", cv.Languages, wantLangs)
	}
}

// Free-form skills prose still yields the known technical terms, in order of
// appearance and with the source casing.
func TestExtractCVSkillsFromProse(t *testing.T) {
	text := `Juan Pérez
juan@example.com

Habilidades
Amplia experiencia con Python y Docker en entornos Linux`
	cv, err := ExtractCV(text)
	if err != nil {
		t.Fatalf("ExtractCV: %v", err)
	}
	want := []string{"Python", "Docker", "Linux"}
	if !reflect.DeepEqual(cv.Skills, want) {
		t.Errorf("Skills: got %v, want %v", cv.Skills, want)
	}
}

// Compound names must not also emit their embedded terms: "JavaScript" is not
// evidence of Java, nor "PostgreSQL" of SQL.
func TestExtractCVSkillsWholeWordsOnly(t *testing.T) {
	text := `Juan Pérez
juan@example.com

Habilidades
Amplia experiencia con JavaScript y PostgreSQL en producción`
	cv, err := ExtractCV(text)
	if err != nil {
		t.Fatalf("ExtractCV: %v", err)
	}
	want := []string{"JavaScript", "PostgreSQL"}
	if !reflect.DeepEqual(cv.Skills, want) {
		t.Errorf("Skills: got %v, want %v", cv.Skills, want)
	}
}

func TestScanKnownTermsBoundaries(t *testing.T) {
	cases := []struct {
		text string
		want []string
	}{
		{"migrated the JavaScript monolith", []string{"JavaScript"}},
		{"tuning PostgreSQL and raw SQL queries", []string{"PostgreSQL", "SQL"}},
		{"services in C++ and Java", []string{"C++", "Java"}},
		{"frontend in node.js", []string{"node.js"}},
	}
	for _, c := range cases {
		if got := scanKnownTerms(c.text); !reflect.DeepEqual(got, c.want) {
			t.Errorf("scanKnownTerms(%q): got %v, want %v", c.text, got, c.want)
		}
	}
}

func TestExtractCVEmptyInput(t *testing.T) {
	for _, in := range []string{"", "   \n\t "} {
		if _, err := ExtractCV(in); !errors.Is(err, ErrEmptyInput) {
			t.Errorf("ExtractCV(%q): got err %v, want ErrEmptyInput", in, err)
		}
	}
}

// A CV missing whole sections extracts what it has; absences are warnings at
// a higher layer, not extraction failures.
func TestExtractCVPartial(t *testing.T) {
	cv, err := ExtractCV("Ana Ruiz\nana@example.com")
	if err != nil {
		t.Fatalf("ExtractCV: %v", err)
	}
	if cv.FullName != "Ana Ruiz" || cv.Email != "ana@example.com" {
		t.Errorf("contact: got (%q, %q)", cv.FullName, cv.Email)
	}
	if len(cv.Experience) != 0 || len(cv.Education) != 0 || len(cv.Skills) != 0 {
		t.Errorf("sections: got non-empty from a contact-only CV")
	}
}

func TestSplitTitleCompany(t *testing.T) {
	cases := []struct {
		in          string
		title, comp string
	}{
		{"Senior Developer en TechCorp", "Senior Developer", "TechCorp"},
		{"Data Engineer at DataCo", "Data Engineer", "DataCo"},
		{"Backend Dev @ Acme", "Backend Dev", "Acme"},
		{"Analista, Banco Sur", "Analista", "Banco Sur"},
		{"Consultor独立", "Consultor独立", ""},
	}
	for _, tc := range cases {
		title, comp := splitTitleCompany(tc.in)
		if title != tc.title || comp != tc.comp {
			t.Errorf("splitTitleCompany(%q): got (%q, %q), want (%q, %q)", tc.in, title, comp, tc.title, tc.comp)
		}
	}
}
