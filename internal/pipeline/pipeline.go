// Package pipeline sequences classification, extraction and validation for a
// single document and assembles the result envelope. It owns every
// intermediate object for the duration of one run and shares nothing between
// runs, which is what makes parallel invocation by an external worker pool
// safe.
package pipeline

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/candidatehq/docparse/constants"
	"github.com/candidatehq/docparse/internal/entity"
	"github.com/candidatehq/docparse/internal/parser"
	"github.com/candidatehq/docparse/internal/validation"
)

// Request is the pipeline input contract: raw text plus identity, with an
// optional caller-provided type hint. A hint short-circuits the classifier
// but never bypasses extraction or validation.
type Request struct {
	DocumentID   uuid.UUID
	Text         string
	FilenameHint string
	TypeHint     *constants.DocumentType
}

// Pipeline runs classification -> extraction -> validation. Stateless;
// safe for concurrent use.
type Pipeline struct {
	logger    *slog.Logger
	validator *validation.Engine

	// minConfidence routes thin-but-valid extractions to MANUAL_REVIEW
	// instead of COMPLETED. Default 0.50.
	minConfidence float32
}

func New(logger *slog.Logger, validator *validation.Engine, minConfidence float32) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	if validator == nil {
		validator = validation.NewEngine(logger)
	}
	// zero is a legal threshold: it turns confidence routing off entirely
	if minConfidence < 0 {
		minConfidence = 0.50
	}
	return &Pipeline{logger: logger, validator: validator, minConfidence: minConfidence}
}

// ContentHash returns the stable hex digest of the raw text, so callers can
// detect duplicate submissions without re-running extraction.
func ContentHash(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// Run executes one pipeline pass. It never panics outward and never returns
// an error: every failure mode lands in the envelope as status=ERROR with a
// terse message, alongside the original text so a human can re-attempt or
// transcribe manually. Individual passes are bounded single scans over
// in-memory text; no internal cancellation points are needed.
func (p *Pipeline) Run(req Request) (res entity.ParseResult) {
	start := time.Now()
	res = entity.ParseResult{
		DocumentID: req.DocumentID,
		Status:     constants.StatusUploaded,
		Text:       req.Text,
		Metadata: map[string]string{
			"filename":     req.FilenameHint,
			"content_hash": ContentHash(req.Text),
		},
	}
	defer func() {
		res.ProcessingTimeMS = time.Since(start).Milliseconds()
		if r := recover(); r != nil {
			p.logger.Error("pipeline.panic", "document_id", req.DocumentID, "panic", r)
			res.Status = constants.StatusError
			res.ErrorMessage = "internal error while parsing the document"
			res.Extraction = nil
		}
	}()

	advance := func(to constants.ProcessingStatus) {
		if !constants.CanTransition(res.Status, to) {
			p.logger.Error("pipeline.status.illegal", "document_id", req.DocumentID, "from", res.Status, "to", to)
		}
		res.Status = to
	}

	// classification
	advance(constants.StatusParsing)
	docType := constants.DocTypeOther
	if req.TypeHint != nil && *req.TypeHint != "" {
		docType = *req.TypeHint
	} else {
		docType = parser.Classify(req.Text)
	}
	res.DocumentType = docType

	// extraction
	advance(constants.StatusExtracting)
	extract, ok := parser.ExtractorFor(docType)
	if !ok {
		// no structure worth parsing (OTHER, cover letters): hand to a human
		advance(constants.StatusValidating)
		advance(constants.StatusManualReview)
		res.Extraction = &entity.ExtractionResult{
			DocumentType:     docType,
			Confidence:       0,
			Data:             map[string]any{"raw_text": req.Text},
			ExtractedAt:      time.Now().UTC(),
			ExtractorVersion: parser.ExtractorVersion,
			Warnings:         []string{"no structured extractor for this document type"},
		}
		p.logger.Info("pipeline.review", "document_id", req.DocumentID, "doc_type", docType, "reason", "unsupported_type")
		return res
	}

	data, err := extract(req.Text)
	if err != nil {
		advance(constants.StatusError)
		res.ErrorMessage = "the document contains no readable text"
		p.logger.Warn("pipeline.extract.failed", "document_id", req.DocumentID, "doc_type", docType, "err", err)
		return res
	}
	confidence := parser.Completeness(data)
	warnings := parser.Warnings(data)

	// validation
	advance(constants.StatusValidating)
	vres := p.validator.Validate(docType, data)
	res.Validation = vres
	res.Extraction = &entity.ExtractionResult{
		DocumentType:     docType,
		Confidence:       confidence,
		Data:             vres.NormalizedData,
		ExtractedAt:      time.Now().UTC(),
		ExtractorVersion: parser.ExtractorVersion,
		Warnings:         warnings,
	}

	switch {
	case !vres.IsValid:
		// partial structured data is still valuable; route to a human
		advance(constants.StatusManualReview)
	case confidence < p.minConfidence:
		advance(constants.StatusManualReview)
	default:
		advance(constants.StatusCompleted)
	}

	p.logger.Info("pipeline.run.ok",
		"document_id", req.DocumentID,
		"doc_type", docType,
		"status", res.Status,
		"confidence", confidence,
		"errors", len(vres.Errors),
		"warnings", len(vres.Warnings),
	)
	return res
}
