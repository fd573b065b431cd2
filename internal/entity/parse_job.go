package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ParseJob represents one pipeline run over a document for data transfer
// between layers.
type ParseJob struct {
	ID               uuid.UUID       `json:"id"`
	DocumentID       uuid.UUID       `json:"document_id"`
	Status           *string         `json:"status,omitempty"`
	DocumentType     *string         `json:"document_type,omitempty"`
	StartedAt        time.Time       `json:"started_at"`
	FinishedAt       *time.Time      `json:"finished_at,omitempty"`
	Confidence       *float32        `json:"confidence,omitempty"`
	NeedsReview      bool            `json:"needs_review"`
	ErrorMessage     *string         `json:"error_message,omitempty"`
	ExtractedJSON    json.RawMessage `json:"extracted_json,omitempty"`
	ValidationJSON   json.RawMessage `json:"validation_json,omitempty"`
	ExtractorVersion *string         `json:"extractor_version,omitempty"`
	ProcessingTimeMS *int64          `json:"processing_time_ms,omitempty"`
}
