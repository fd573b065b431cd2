package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/candidatehq/docparse/constants"
)

// Document represents an ingested candidate document for data transfer
// between layers. Text is the decoded content; binary decoding happens
// upstream of this service.
type Document struct {
	ID          uuid.UUID                  `json:"id"`
	SourcePath  string                     `json:"source_path,omitempty"`
	Filename    string                     `json:"filename"`
	FileExt     string                     `json:"file_ext,omitempty"`
	ContentHash []byte                     `json:"content_hash"`
	Text        string                     `json:"text"`
	DocType     *constants.DocumentType    `json:"doc_type,omitempty"`
	Status      constants.ProcessingStatus `json:"status"`
	UploadedAt  time.Time                  `json:"uploaded_at"`
}
