package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/candidatehq/docparse/constants"
	"github.com/candidatehq/docparse/internal/repository"
)

// Processor coordinates the persistent side of a parse run. It loads a
// document, opens a parse job, runs the stateless pipeline and records the
// outcome on both the job and the document row.
type Processor struct {
	logger   *slog.Logger
	pipeline *Pipeline
	docs     repository.DocumentRepository
	jobs     repository.ParseJobRepository
}

func NewProcessor(
	logger *slog.Logger,
	pipe *Pipeline,
	docs repository.DocumentRepository,
	jobs repository.ParseJobRepository,
) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		logger:   logger,
		pipeline: pipe,
		docs:     docs,
		jobs:     jobs,
	}
}

// ProcessDocument runs the full parse for a stored document and returns the
// job ID recording the run. Re-processing a document is allowed; each run
// gets its own job and the document row reflects the latest outcome.
func (p *Processor) ProcessDocument(ctx context.Context, documentID uuid.UUID) (uuid.UUID, error) {
	doc, err := p.docs.GetByID(ctx, documentID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("get document: %w", err)
	}

	job, err := p.jobs.Start(ctx, doc.ID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("start parse job: %w", err)
	}
	if err := p.docs.UpdateStatus(ctx, doc.ID, constants.StatusParsing); err != nil {
		p.logger.Error("processor.status.failed", "document_id", doc.ID, "err", err)
	}

	// A doc type already on the record (operator supplied at upload) skips
	// classification.
	res := p.pipeline.Run(Request{
		DocumentID:   doc.ID,
		Text:         doc.Text,
		FilenameHint: doc.Filename,
		TypeHint:     doc.DocType,
	})

	if err := p.jobs.Finish(ctx, job.ID, res); err != nil {
		return job.ID, fmt.Errorf("finish parse job: %w", err)
	}
	// the doc type is immutable once assigned; only a first classification
	// writes it
	if doc.DocType == nil && res.DocumentType != "" {
		if err := p.docs.SetDocType(ctx, doc.ID, res.DocumentType); err != nil {
			p.logger.Error("processor.doctype.failed", "document_id", doc.ID, "err", err)
		}
	}
	if err := p.docs.UpdateStatus(ctx, doc.ID, res.Status); err != nil {
		p.logger.Error("processor.status.failed", "document_id", doc.ID, "err", err)
	}

	p.logger.Debug("processor run finished",
		"document_id", doc.ID,
		"job_id", job.ID,
		"status", res.Status,
		"document_type", res.DocumentType,
	)
	return job.ID, nil
}
