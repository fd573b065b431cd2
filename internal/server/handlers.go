package server

import (
	"crypto/sha256"
	"errors"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/candidatehq/docparse/constants"
	"github.com/candidatehq/docparse/internal/async"
	"github.com/candidatehq/docparse/internal/common"
	"github.com/candidatehq/docparse/internal/entity"
	"github.com/candidatehq/docparse/internal/repository"
)

type uploadRequest struct {
	Filename string `json:"filename" binding:"required"`
	Text     string `json:"text" binding:"required"`
	TypeHint string `json:"type_hint"`
}

func (s *Server) handleHealth(c *gin.Context) {
	if err := repository.HealthCheck(c.Request.Context(), s.pool, 2*time.Second, s.logger); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "down", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleUpload records a document and queues it for parsing. Uploading the
// same text twice returns the existing document instead of a new one.
func (s *Server) handleUpload(c *gin.Context) {
	var req uploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text must not be blank"})
		return
	}

	var hint *constants.DocumentType
	if req.TypeHint != "" {
		dt, ok := constants.ParseDocumentType(req.TypeHint)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown type_hint: " + req.TypeHint})
			return
		}
		hint = &dt
	}

	ctx := c.Request.Context()
	sum := sha256.Sum256([]byte(req.Text))
	doc, dedup, err := s.docs.UpsertByHash(ctx, &entity.Document{
		ID:          uuid.New(),
		Filename:    req.Filename,
		FileExt:     constants.NormalizeExt(filepath.Ext(req.Filename)),
		ContentHash: sum[:],
		Text:        req.Text,
		DocType:     hint,
		Status:      constants.StatusUploaded,
		UploadedAt:  time.Now().UTC(),
	})
	if err != nil {
		s.logger.Error("upload.upsert.failed", "filename", req.Filename, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store document"})
		return
	}
	// a hint never overwrites a type the document already carries
	if hint != nil && dedup && doc.DocType == nil {
		if err := s.docs.SetDocType(ctx, doc.ID, *hint); err != nil {
			s.logger.Error("upload.doctype.failed", "document_id", doc.ID, "err", err)
		}
	}

	if err := s.queue.Enqueue(ctx, async.Job{
		DocumentID:  doc.ID,
		SubmittedAt: time.Now().UTC(),
		TraceID:     common.RequestIDFromContext(ctx),
	}); err != nil {
		s.logger.Error("upload.enqueue.failed", "document_id", doc.ID, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to queue document"})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"document_id":  doc.ID.String(),
		"deduplicated": dedup,
		"status":       doc.Status,
	})
}

// handleGetDocument returns a document together with its latest parse job.
func (s *Server) handleGetDocument(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid document id"})
		return
	}

	ctx := c.Request.Context()
	doc, err := s.docs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "document not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load document"})
		return
	}

	resp := gin.H{"document": docView(doc)}
	job, err := s.jobs.LatestByDocument(ctx, id)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load parse job"})
		return
	}
	if job != nil {
		resp["latest_job"] = job
	}
	c.JSON(http.StatusOK, resp)
}

// handleConfirm marks a reviewed document as confirmed. Only documents
// sitting in MANUAL_REVIEW can be confirmed.
func (s *Server) handleConfirm(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid document id"})
		return
	}

	ctx := c.Request.Context()
	doc, err := s.docs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "document not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load document"})
		return
	}
	if !constants.CanTransition(doc.Status, constants.StatusConfirmed) {
		c.JSON(http.StatusConflict, gin.H{
			"error":  "document is not awaiting review",
			"status": doc.Status,
		})
		return
	}

	job, err := s.jobs.LatestByDocument(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusConflict, gin.H{"error": "document has no parse job to confirm"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load parse job"})
		return
	}
	if err := s.jobs.Confirm(ctx, job.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusConflict, gin.H{"error": "parse job is not awaiting review"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to confirm"})
		return
	}
	if err := s.docs.UpdateStatus(ctx, id, constants.StatusConfirmed); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update document"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"document_id": id.String(),
		"job_id":      job.ID.String(),
		"status":      constants.StatusConfirmed,
	})
}

// handleExport streams an XLSX workbook of finished parse jobs.
// Optional query params from/to take YYYY-MM-DD dates.
func (s *Server) handleExport(c *gin.Context) {
	var from, to *time.Time
	if v := c.Query("from"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from date"})
			return
		}
		from = &t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to date"})
			return
		}
		to = &t
	}

	data, err := s.export.ExportJobsXLSX(c.Request.Context(), from, to)
	if err != nil {
		s.logger.Error("export.failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
		return
	}

	filename := "documents-" + time.Now().UTC().Format("20060102") + ".xlsx"
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// docView hides the full text body from listing responses.
func docView(doc *entity.Document) gin.H {
	v := gin.H{
		"id":          doc.ID.String(),
		"filename":    doc.Filename,
		"status":      doc.Status,
		"uploaded_at": doc.UploadedAt,
	}
	if doc.DocType != nil {
		v["doc_type"] = *doc.DocType
	}
	if doc.SourcePath != "" {
		v["source_path"] = doc.SourcePath
	}
	return v
}
