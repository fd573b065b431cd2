package entity

import "github.com/candidatehq/docparse/constants"

// AssessmentData is the structured form of a psychometric assessment report.
//
// SincerityScore is a trustworthiness indicator for the test itself and is
// kept apart from the dimension table even when the source formats them the
// same way.
type AssessmentData struct {
	TestName       string                `json:"test_name,omitempty"`
	TestType       string                `json:"test_type,omitempty"`
	CandidateName  string                `json:"candidate_name,omitempty"`
	TestDate       string                `json:"test_date,omitempty"`
	Scores         []AssessmentDimension `json:"scores,omitempty"`
	SincerityScore *float64              `json:"sincerity_score,omitempty"`
	Interpretation string                `json:"interpretation,omitempty"`
	RawText        string                `json:"raw_text,omitempty"`
}

// AssessmentDimension is one named, bounded numeric sub-score.
// Value carries whatever the source said; the validation engine rejects
// anything outside [0,100] rather than clamping it.
type AssessmentDimension struct {
	Name        string                      `json:"name"`
	Value       float64                     `json:"value"`
	Description string                      `json:"description,omitempty"`
	Category    constants.DimensionCategory `json:"category"`
}
