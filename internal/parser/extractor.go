package parser

import (
	"github.com/candidatehq/docparse/constants"
	"github.com/candidatehq/docparse/internal/entity"
)

// ExtractFunc turns classified text into a typed record. Implementations
// fail only on blank input.
type ExtractFunc func(text string) (any, error)

// extractors is the closed document-type -> extractor dispatch table.
// COVER_LETTER and OTHER have no extractor on purpose: those documents carry
// no structure worth parsing and go to a human instead.
var extractors = map[constants.DocumentType]ExtractFunc{
	constants.DocTypeCV: func(text string) (any, error) {
		return ExtractCV(text)
	},
	constants.DocTypeAssessment: func(text string) (any, error) {
		return ExtractAssessment(text)
	},
	constants.DocTypeInterview: func(text string) (any, error) {
		return ExtractInterview(text)
	},
}

// ExtractorFor returns the extractor implementation for a document type.
func ExtractorFor(dt constants.DocumentType) (ExtractFunc, bool) {
	fn, ok := extractors[dt]
	return fn, ok
}

// Warnings collects extraction-level caveats for the result envelope.
func Warnings(data any) []string {
	var out []string
	switch v := data.(type) {
	case *entity.CVData:
		if v.FullName == "" {
			out = append(out, "no candidate name found in contact block")
		}
		if v.Email == "" {
			out = append(out, "no email address found")
		}
		if len(v.Experience) == 0 {
			out = append(out, "no work experience entries found")
		}
	case *entity.AssessmentData:
		if v.TestName == GenericTestName {
			out = append(out, "unrecognized test family, using generic test name")
		}
		if len(v.Scores) == 0 {
			out = append(out, "no dimension scores found")
		}
		if v.SincerityScore == nil {
			out = append(out, "no sincerity/validity scale found")
		}
	case *entity.InterviewData:
		if v.Interviewer == "" {
			out = append(out, "no interviewer found in header")
		}
		if len(v.KeyQuotes) == 0 {
			out = append(out, "no candidate quotes found")
		}
	}
	return out
}
