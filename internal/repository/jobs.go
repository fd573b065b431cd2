package repository

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/candidatehq/docparse/constants"
	"github.com/candidatehq/docparse/internal/entity"
)

// JobWithDocument pairs a finished job with its source document, mainly for
// exports and read APIs.
type JobWithDocument struct {
	Job      entity.ParseJob
	Document entity.Document
}

type ParseJobRepository interface {
	Start(ctx context.Context, documentID uuid.UUID) (*entity.ParseJob, error)
	// Finish persists the pipeline outcome on the job row.
	Finish(ctx context.Context, jobID uuid.UUID, result entity.ParseResult) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.ParseJob, error)
	LatestByDocument(ctx context.Context, documentID uuid.UUID) (*entity.ParseJob, error)
	// Confirm moves a MANUAL_REVIEW job to CONFIRMED.
	Confirm(ctx context.Context, jobID uuid.UUID) error
	ListFinished(ctx context.Context, from, to *time.Time) ([]JobWithDocument, error)
}

type parseJobRepo struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewParseJobRepository(pool *pgxpool.Pool, logger *slog.Logger) ParseJobRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &parseJobRepo{pool: pool, logger: logger}
}

const jobColumns = `id, document_id, status, document_type, started_at, finished_at, confidence,
	needs_review, error_message, extracted_json, validation_json, extractor_version, processing_time_ms`

func scanJob(row pgx.Row) (*entity.ParseJob, error) {
	var j entity.ParseJob
	err := row.Scan(&j.ID, &j.DocumentID, &j.Status, &j.DocumentType, &j.StartedAt, &j.FinishedAt,
		&j.Confidence, &j.NeedsReview, &j.ErrorMessage, &j.ExtractedJSON, &j.ValidationJSON,
		&j.ExtractorVersion, &j.ProcessingTimeMS)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &j, nil
}

func (r *parseJobRepo) Start(ctx context.Context, documentID uuid.UUID) (*entity.ParseJob, error) {
	job := &entity.ParseJob{
		ID:         uuid.New(),
		DocumentID: documentID,
		StartedAt:  time.Now().UTC(),
	}
	status := string(constants.StatusParsing)
	job.Status = &status
	_, err := r.pool.Exec(ctx, `
		INSERT INTO parse_jobs (id, document_id, status, started_at)
		VALUES ($1,$2,$3,$4)`,
		job.ID, job.DocumentID, *job.Status, job.StartedAt,
	)
	if err != nil {
		r.logger.Error("failed to start parse job", "document_id", documentID, "error", err)
		return nil, err
	}
	return job, nil
}

func (r *parseJobRepo) Finish(ctx context.Context, jobID uuid.UUID, result entity.ParseResult) error {
	now := time.Now().UTC()
	status := string(result.Status)

	var (
		confidence       *float32
		extractedJSON    json.RawMessage
		validationJSON   json.RawMessage
		extractorVersion *string
		errorMessage     *string
		docType          *string
	)
	if result.DocumentType != "" {
		s := string(result.DocumentType)
		docType = &s
	}
	if result.Extraction != nil {
		c := result.Extraction.Confidence
		confidence = &c
		extractorVersion = &result.Extraction.ExtractorVersion
		if b, err := json.Marshal(result.Extraction); err == nil {
			extractedJSON = b
		}
	}
	if result.Validation != nil {
		if b, err := json.Marshal(result.Validation); err == nil {
			validationJSON = b
		}
	}
	if result.ErrorMessage != "" {
		errorMessage = &result.ErrorMessage
	}

	_, err := r.pool.Exec(ctx, `
		UPDATE parse_jobs SET
			status = $2, document_type = $3, finished_at = $4, confidence = $5,
			needs_review = $6, error_message = $7, extracted_json = $8,
			validation_json = $9, extractor_version = $10, processing_time_ms = $11
		WHERE id = $1`,
		jobID, status, docType, now, confidence,
		result.Status.NeedsHuman(), errorMessage, extractedJSON,
		validationJSON, extractorVersion, result.ProcessingTimeMS,
	)
	if err != nil {
		r.logger.Error("failed to finish parse job", "job_id", jobID, "error", err)
	}
	return err
}

func (r *parseJobRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.ParseJob, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+jobColumns+` FROM parse_jobs WHERE id = $1`, id)
	return scanJob(row)
}

func (r *parseJobRepo) LatestByDocument(ctx context.Context, documentID uuid.UUID) (*entity.ParseJob, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+jobColumns+` FROM parse_jobs
		WHERE document_id = $1
		ORDER BY started_at DESC
		LIMIT 1`, documentID)
	return scanJob(row)
}

func (r *parseJobRepo) Confirm(ctx context.Context, jobID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE parse_jobs SET status = $2
		WHERE id = $1 AND status = $3`,
		jobID, string(constants.StatusConfirmed), string(constants.StatusManualReview),
	)
	if err != nil {
		r.logger.Error("failed to confirm parse job", "job_id", jobID, "error", err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *parseJobRepo) ListFinished(ctx context.Context, from, to *time.Time) ([]JobWithDocument, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+prefixedJobColumns("j")+`, `+prefixedDocColumns("d")+`
		FROM parse_jobs j
		JOIN documents d ON d.id = j.document_id
		WHERE j.finished_at IS NOT NULL
		  AND ($1::timestamptz IS NULL OR j.finished_at >= $1)
		  AND ($2::timestamptz IS NULL OR j.finished_at <= $2)
		ORDER BY j.finished_at`, from, to)
	if err != nil {
		r.logger.Error("failed to list finished jobs", "error", err)
		return nil, err
	}
	defer rows.Close()

	var out []JobWithDocument
	for rows.Next() {
		var j entity.ParseJob
		var d entity.Document
		var docType *string
		var docStatus string
		err := rows.Scan(
			&j.ID, &j.DocumentID, &j.Status, &j.DocumentType, &j.StartedAt, &j.FinishedAt,
			&j.Confidence, &j.NeedsReview, &j.ErrorMessage, &j.ExtractedJSON, &j.ValidationJSON,
			&j.ExtractorVersion, &j.ProcessingTimeMS,
			&d.ID, &d.SourcePath, &d.Filename, &d.FileExt, &d.ContentHash, &d.Text, &docType, &docStatus, &d.UploadedAt,
		)
		if err != nil {
			return nil, err
		}
		if docType != nil {
			dt := constants.DocumentType(*docType)
			d.DocType = &dt
		}
		d.Status = constants.ProcessingStatus(docStatus)
		out = append(out, JobWithDocument{Job: j, Document: d})
	}
	return out, rows.Err()
}

func prefixedJobColumns(alias string) string {
	return alias + `.id, ` + alias + `.document_id, ` + alias + `.status, ` + alias + `.document_type, ` +
		alias + `.started_at, ` + alias + `.finished_at, ` + alias + `.confidence, ` + alias + `.needs_review, ` +
		alias + `.error_message, ` + alias + `.extracted_json, ` + alias + `.validation_json, ` +
		alias + `.extractor_version, ` + alias + `.processing_time_ms`
}

func prefixedDocColumns(alias string) string {
	return alias + `.id, ` + alias + `.source_path, ` + alias + `.filename, ` + alias + `.file_ext, ` +
		alias + `.content_hash, ` + alias + `.text_content, ` + alias + `.doc_type, ` + alias + `.status, ` +
		alias + `.uploaded_at`
}
