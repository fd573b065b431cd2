package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/candidatehq/docparse/constants"
)

// ExtractionResult is the typed outcome of one extractor run.
// Confidence is derived from field completeness and is never user-settable.
type ExtractionResult struct {
	DocumentType     constants.DocumentType `json:"document_type"`
	Confidence       float32                `json:"confidence"`
	Data             map[string]any         `json:"data"`
	ExtractedAt      time.Time              `json:"extracted_at"`
	ExtractorVersion string                 `json:"extractor_version"`
	Warnings         []string               `json:"warnings,omitempty"`
}

// ParseResult is the envelope handed back to the caller after a pipeline run.
// Extraction is populated only when status reaches COMPLETED or
// MANUAL_REVIEW; ErrorMessage only when status is ERROR.
type ParseResult struct {
	DocumentID       uuid.UUID                  `json:"document_id"`
	Status           constants.ProcessingStatus `json:"status"`
	Text             string                     `json:"text"`
	DocumentType     constants.DocumentType     `json:"document_type,omitempty"`
	Metadata         map[string]string          `json:"metadata,omitempty"`
	Extraction       *ExtractionResult          `json:"extraction,omitempty"`
	Validation       *ValidationResult          `json:"validation,omitempty"`
	ErrorMessage     string                     `json:"error_message,omitempty"`
	ProcessingTimeMS int64                      `json:"processing_time_ms"`
}
