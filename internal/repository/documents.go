package repository

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/candidatehq/docparse/constants"
	"github.com/candidatehq/docparse/internal/entity"
)

// ErrNotFound is returned when a row does not exist.
var ErrNotFound = errors.New("not found")

type DocumentRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Document, error)
	GetByHash(ctx context.Context, hash []byte) (*entity.Document, error)
	// UpsertByHash records a document unless the same content was already
	// submitted; the bool reports deduplication.
	UpsertByHash(ctx context.Context, doc *entity.Document) (*entity.Document, bool, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status constants.ProcessingStatus) error
	SetDocType(ctx context.Context, id uuid.UUID, docType constants.DocumentType) error
}

type documentRepo struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewDocumentRepository(pool *pgxpool.Pool, logger *slog.Logger) DocumentRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &documentRepo{pool: pool, logger: logger}
}

const documentColumns = `id, source_path, filename, file_ext, content_hash, text_content, doc_type, status, uploaded_at`

func scanDocument(row pgx.Row) (*entity.Document, error) {
	var d entity.Document
	var docType *string
	var status string
	err := row.Scan(&d.ID, &d.SourcePath, &d.Filename, &d.FileExt, &d.ContentHash, &d.Text, &docType, &status, &d.UploadedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if docType != nil {
		dt := constants.DocumentType(*docType)
		d.DocType = &dt
	}
	d.Status = constants.ProcessingStatus(status)
	return &d, nil
}

func (r *documentRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Document, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+documentColumns+` FROM documents WHERE id = $1`, id)
	return scanDocument(row)
}

func (r *documentRepo) GetByHash(ctx context.Context, hash []byte) (*entity.Document, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+documentColumns+` FROM documents WHERE content_hash = $1`, hash)
	return scanDocument(row)
}

func (r *documentRepo) UpsertByHash(ctx context.Context, doc *entity.Document) (*entity.Document, bool, error) {
	if existing, err := r.GetByHash(ctx, doc.ContentHash); err == nil {
		return existing, true, nil
	} else if !errors.Is(err, ErrNotFound) {
		return nil, false, err
	}

	if doc.ID == uuid.Nil {
		doc.ID = uuid.New()
	}
	if doc.UploadedAt.IsZero() {
		doc.UploadedAt = time.Now().UTC()
	}
	if doc.Status == "" {
		doc.Status = constants.StatusUploaded
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO documents (`+documentColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		doc.ID, doc.SourcePath, doc.Filename, doc.FileExt, doc.ContentHash, doc.Text,
		docTypeOrNil(doc.DocType), string(doc.Status), doc.UploadedAt,
	)
	if err != nil {
		r.logger.Error("failed to insert document", "document_id", doc.ID, "filename", doc.Filename, "error", err)
		return nil, false, err
	}
	return doc, false, nil
}

func (r *documentRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status constants.ProcessingStatus) error {
	_, err := r.pool.Exec(ctx, `UPDATE documents SET status = $2 WHERE id = $1`, id, string(status))
	if err != nil {
		r.logger.Error("failed to update document status", "document_id", id, "status", status, "error", err)
	}
	return err
}

func (r *documentRepo) SetDocType(ctx context.Context, id uuid.UUID, docType constants.DocumentType) error {
	_, err := r.pool.Exec(ctx, `UPDATE documents SET doc_type = $2 WHERE id = $1`, id, string(docType))
	if err != nil {
		r.logger.Error("failed to set document type", "document_id", id, "doc_type", docType, "error", err)
	}
	return err
}

func docTypeOrNil(dt *constants.DocumentType) *string {
	if dt == nil {
		return nil
	}
	s := string(*dt)
	return &s
}
