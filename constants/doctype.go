package constants

import "strings"

// DocumentType is the coarse semantic category assigned by the classifier.
// Assigned once per document; immutable afterward.
type DocumentType string

const (
	DocTypeCV          DocumentType = "CV"
	DocTypeAssessment  DocumentType = "ASSESSMENT"
	DocTypeInterview   DocumentType = "INTERVIEW"
	DocTypeCoverLetter DocumentType = "COVER_LETTER"
	DocTypeOther       DocumentType = "OTHER"
)

// ClassifierPriority is the tie-break order: narrower vocabularies first,
// since assessment and interview phrasing rarely shows up by accident.
var ClassifierPriority = []DocumentType{
	DocTypeAssessment,
	DocTypeInterview,
	DocTypeCV,
	DocTypeCoverLetter,
}

// DocumentTypes holds the allowed values for the doc_type field.
var DocumentTypes = []string{
	string(DocTypeCV),
	string(DocTypeAssessment),
	string(DocTypeInterview),
	string(DocTypeCoverLetter),
	string(DocTypeOther),
}

// ParseDocumentType resolves a caller-provided type hint. Unknown or empty
// input yields ("", false) so callers fall back to the classifier.
func ParseDocumentType(input string) (DocumentType, bool) {
	switch strings.ToUpper(strings.TrimSpace(input)) {
	case string(DocTypeCV), "RESUME", "CURRICULUM":
		return DocTypeCV, true
	case string(DocTypeAssessment), "TEST", "PSYCHOMETRIC":
		return DocTypeAssessment, true
	case string(DocTypeInterview):
		return DocTypeInterview, true
	case string(DocTypeCoverLetter), "COVER":
		return DocTypeCoverLetter, true
	case string(DocTypeOther):
		return DocTypeOther, true
	}
	return "", false
}
