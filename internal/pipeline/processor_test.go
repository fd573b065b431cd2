package pipeline

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/candidatehq/docparse/constants"
	"github.com/candidatehq/docparse/internal/entity"
	"github.com/candidatehq/docparse/internal/repository"
)

type memDocs struct {
	doc *entity.Document

	setDocTypeCalls []constants.DocumentType
}

func (m *memDocs) GetByID(_ context.Context, id uuid.UUID) (*entity.Document, error) {
	if m.doc != nil && m.doc.ID == id {
		return m.doc, nil
	}
	return nil, repository.ErrNotFound
}

func (m *memDocs) GetByHash(_ context.Context, _ []byte) (*entity.Document, error) {
	return nil, repository.ErrNotFound
}

func (m *memDocs) UpsertByHash(_ context.Context, doc *entity.Document) (*entity.Document, bool, error) {
	m.doc = doc
	return doc, false, nil
}

func (m *memDocs) UpdateStatus(_ context.Context, _ uuid.UUID, status constants.ProcessingStatus) error {
	m.doc.Status = status
	return nil
}

func (m *memDocs) SetDocType(_ context.Context, _ uuid.UUID, docType constants.DocumentType) error {
	m.setDocTypeCalls = append(m.setDocTypeCalls, docType)
	m.doc.DocType = &docType
	return nil
}

type memJobs struct {
	finished []entity.ParseResult
}

func (m *memJobs) Start(_ context.Context, documentID uuid.UUID) (*entity.ParseJob, error) {
	return &entity.ParseJob{ID: uuid.New(), DocumentID: documentID}, nil
}

func (m *memJobs) Finish(_ context.Context, _ uuid.UUID, result entity.ParseResult) error {
	m.finished = append(m.finished, result)
	return nil
}

func (m *memJobs) GetByID(_ context.Context, _ uuid.UUID) (*entity.ParseJob, error) {
	return nil, repository.ErrNotFound
}

func (m *memJobs) LatestByDocument(_ context.Context, _ uuid.UUID) (*entity.ParseJob, error) {
	return nil, repository.ErrNotFound
}

func (m *memJobs) Confirm(_ context.Context, _ uuid.UUID) error { return nil }

func (m *memJobs) ListFinished(_ context.Context, _, _ *time.Time) ([]repository.JobWithDocument, error) {
	return nil, nil
}

func TestProcessDocumentClassifiesUntypedDocument(t *testing.T) {
	docs := &memDocs{doc: &entity.Document{
		ID:       uuid.New(),
		Filename: "cv.txt",
		Text:     cvText,
		Status:   constants.StatusUploaded,
	}}
	jobs := &memJobs{}
	proc := NewProcessor(nil, testPipeline(), docs, jobs)

	if _, err := proc.ProcessDocument(context.Background(), docs.doc.ID); err != nil {
		t.Fatalf("ProcessDocument: %v", err)
	}
	if len(jobs.finished) != 1 {
		t.Fatalf("finished jobs: got %d, want 1", len(jobs.finished))
	}
	if len(docs.setDocTypeCalls) != 1 || docs.setDocTypeCalls[0] != constants.DocTypeCV {
		t.Errorf("SetDocType calls: got %v, want [CV]", docs.setDocTypeCalls)
	}
}

// Re-processing never rewrites a type the document already carries.
func TestProcessDocumentKeepsAssignedType(t *testing.T) {
	assigned := constants.DocTypeCV
	docs := &memDocs{doc: &entity.Document{
		ID:       uuid.New(),
		Filename: "cv.txt",
		Text:     cvText,
		DocType:  &assigned,
		Status:   constants.StatusCompleted,
	}}
	jobs := &memJobs{}
	proc := NewProcessor(nil, testPipeline(), docs, jobs)

	if _, err := proc.ProcessDocument(context.Background(), docs.doc.ID); err != nil {
		t.Fatalf("ProcessDocument: %v", err)
	}
	if len(docs.setDocTypeCalls) != 0 {
		t.Errorf("SetDocType calls: got %v, want none", docs.setDocTypeCalls)
	}
	if jobs.finished[0].DocumentType != constants.DocTypeCV {
		t.Errorf("DocumentType: got %s, want %s", jobs.finished[0].DocumentType, constants.DocTypeCV)
	}
}
