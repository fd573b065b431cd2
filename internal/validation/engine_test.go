package validation

import (
	"testing"

	"github.com/candidatehq/docparse/constants"
	"github.com/candidatehq/docparse/internal/entity"
)

func TestValidateCVRequiresName(t *testing.T) {
	e := NewEngine(nil)
	res := e.Validate(constants.DocTypeCV, &entity.CVData{Email: "a@example.com"})
	if res.IsValid {
		t.Error("IsValid: got true, want false")
	}
	if len(res.Errors) != 1 || res.Errors[0].Field != "full_name" {
		t.Errorf("Errors: got %+v, want one full_name error", res.Errors)
	}
}

// Malformed contact data degrades to warnings; the record stays valid.
func TestValidateCVContactWarnings(t *testing.T) {
	e := NewEngine(nil)
	cv := &entity.CVData{
		FullName: "Ana Ruiz",
		Email:    "not-an-email",
		Phone:    "call me maybe",
	}
	res := e.Validate(constants.DocTypeCV, cv)
	if !res.IsValid {
		t.Errorf("IsValid: got false, want true (errors: %+v)", res.Errors)
	}
	fields := map[string]bool{}
	for _, w := range res.Warnings {
		fields[w.Field] = true
	}
	if !fields["email"] || !fields["phone"] {
		t.Errorf("Warnings: got %+v, want email and phone warnings", res.Warnings)
	}
}

func TestValidateCVCurrentPositionEndDate(t *testing.T) {
	e := NewEngine(nil)
	cv := &entity.CVData{
		FullName: "Ana Ruiz",
		Experience: []entity.WorkExperience{
			{Company: "Acme", IsCurrent: true, EndDate: "2023-01"},
		},
	}
	res := e.Validate(constants.DocTypeCV, cv)
	if res.IsValid {
		t.Error("IsValid: got true, want false")
	}
	if len(res.Errors) != 1 || res.Errors[0].Field != "experience[0].end_date" {
		t.Errorf("Errors: got %+v", res.Errors)
	}
}

// A "present" end date resolves to is_current without mutating the input.
func TestValidateCVPresentEndDate(t *testing.T) {
	e := NewEngine(nil)
	cv := &entity.CVData{
		FullName: "Ana Ruiz",
		Experience: []entity.WorkExperience{
			{Company: "Acme", StartDate: "2020-01", EndDate: "present"},
		},
	}
	res := e.Validate(constants.DocTypeCV, cv)
	if !res.IsValid {
		t.Errorf("IsValid: got false (errors: %+v)", res.Errors)
	}
	if cv.Experience[0].EndDate != "present" {
		t.Errorf("input mutated: EndDate now %q", cv.Experience[0].EndDate)
	}
	exp := res.NormalizedData["experience"].([]any)[0].(map[string]any)
	if exp["is_current"] != true {
		t.Errorf("normalized is_current: got %v, want true", exp["is_current"])
	}
	if _, present := exp["end_date"]; present {
		t.Error("normalized end_date: still present, want omitted")
	}
}

func TestValidateCVDateOrderWarning(t *testing.T) {
	e := NewEngine(nil)
	cv := &entity.CVData{
		FullName: "Ana Ruiz",
		Experience: []entity.WorkExperience{
			{Company: "Acme", StartDate: "2022-05", EndDate: "2020-01"},
		},
	}
	res := e.Validate(constants.DocTypeCV, cv)
	if !res.IsValid {
		t.Errorf("IsValid: got false (errors: %+v)", res.Errors)
	}
	if len(res.Warnings) == 0 {
		t.Fatal("Warnings: got none, want start-after-end warning")
	}
}

// Out-of-range dimensions are errors and disappear from the normalized
// payload; in-range dimensions survive untouched.
func TestValidateAssessmentOutOfRange(t *testing.T) {
	e := NewEngine(nil)
	a := &entity.AssessmentData{
		TestName: "Dark Factor Inventory",
		Scores: []entity.AssessmentDimension{
			{Name: "Egocentrism", Value: 150, Category: constants.CategoryDarkFactor},
			{Name: "Narcissism", Value: 58, Category: constants.CategoryDarkFactor},
			{Name: "Sadism", Value: -3, Category: constants.CategoryDarkFactor},
		},
	}
	res := e.Validate(constants.DocTypeAssessment, a)
	if res.IsValid {
		t.Error("IsValid: got true, want false")
	}
	if len(res.Errors) != 2 {
		t.Fatalf("Errors: got %d (%+v), want 2", len(res.Errors), res.Errors)
	}
	for _, err := range res.Errors {
		if err.Field != "scores.Egocentrism" && err.Field != "scores.Sadism" {
			t.Errorf("unexpected error field %q", err.Field)
		}
	}

	kept := res.NormalizedData["scores"].([]any)
	if len(kept) != 1 {
		t.Fatalf("normalized scores: got %d, want 1", len(kept))
	}
	dim := kept[0].(map[string]any)
	if dim["name"] != "Narcissism" {
		t.Errorf("surviving dimension: got %v, want Narcissism", dim["name"])
	}
}

func TestValidateAssessmentRequiresTestName(t *testing.T) {
	e := NewEngine(nil)
	res := e.Validate(constants.DocTypeAssessment, &entity.AssessmentData{})
	if res.IsValid {
		t.Error("IsValid: got true, want false")
	}
	if len(res.Errors) != 1 || res.Errors[0].Field != "test_name" {
		t.Errorf("Errors: got %+v", res.Errors)
	}
}

func TestValidateAssessmentSincerityRange(t *testing.T) {
	e := NewEngine(nil)
	s := 130.0
	a := &entity.AssessmentData{
		TestName:       "DISC Assessment",
		Scores:         []entity.AssessmentDimension{{Name: "Dominance", Value: 70}},
		SincerityScore: &s,
	}
	res := e.Validate(constants.DocTypeAssessment, a)
	if res.IsValid {
		t.Error("IsValid: got true, want false")
	}
	if _, present := res.NormalizedData["sincerity_score"]; present {
		t.Error("normalized sincerity_score: still present, want dropped")
	}
}

// Interview rules only ever warn; notes are inherently subjective.
func TestValidateInterviewWarningsOnly(t *testing.T) {
	e := NewEngine(nil)
	res := e.Validate(constants.DocTypeInterview, &entity.InterviewData{})
	if !res.IsValid {
		t.Errorf("IsValid: got false (errors: %+v)", res.Errors)
	}
	if len(res.Warnings) == 0 {
		t.Error("Warnings: got none, want at least interviewer/date warnings")
	}
}

// The raw source text never reaches normalized data.
func TestValidateStripsRawText(t *testing.T) {
	e := NewEngine(nil)
	res := e.Validate(constants.DocTypeCV, &entity.CVData{FullName: "Ana Ruiz", RawText: "full body"})
	if _, present := res.NormalizedData["raw_text"]; present {
		t.Error("normalized raw_text: still present, want stripped")
	}
}

func TestValidateUnknownTypeWarns(t *testing.T) {
	e := NewEngine(nil)
	res := e.Validate(constants.DocTypeOther, map[string]any{"raw_text": "x"})
	if !res.IsValid {
		t.Error("IsValid: got false, want true")
	}
	if len(res.Warnings) != 1 {
		t.Errorf("Warnings: got %+v, want a single no-rules warning", res.Warnings)
	}
}
