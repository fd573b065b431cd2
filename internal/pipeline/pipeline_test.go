package pipeline

import (
	"testing"

	"github.com/google/uuid"

	"github.com/candidatehq/docparse/constants"
)

const cvText = `Ana Ruiz
ana.ruiz@example.com

Work Experience

Platform Engineer en CloudCo
Enero 2021 - Presente

Skills
Go, Kubernetes, PostgreSQL`

func testPipeline() *Pipeline {
	return New(nil, nil, 0.5)
}

func TestRunCompletesConfidentCV(t *testing.T) {
	p := testPipeline()
	res := p.Run(Request{DocumentID: uuid.New(), Text: cvText, FilenameHint: "ana_cv.txt"})

	if res.Status != constants.StatusCompleted {
		t.Fatalf("Status: got %s, want %s (validation: %+v)", res.Status, constants.StatusCompleted, res.Validation)
	}
	if res.DocumentType != constants.DocTypeCV {
		t.Errorf("DocumentType: got %s, want %s", res.DocumentType, constants.DocTypeCV)
	}
	if res.Extraction == nil || res.Extraction.Data == nil {
		t.Fatal("Extraction: got nil")
	}
	if res.Extraction.Data["full_name"] != "Ana Ruiz" {
		t.Errorf("full_name: got %v, want Ana Ruiz", res.Extraction.Data["full_name"])
	}
	if res.Extraction.Confidence < 0.5 {
		t.Errorf("Confidence: got %g, want >= 0.5", res.Extraction.Confidence)
	}
	if res.Metadata["content_hash"] == "" {
		t.Error("Metadata content_hash: empty")
	}
	if res.ErrorMessage != "" {
		t.Errorf("ErrorMessage: got %q, want empty", res.ErrorMessage)
	}
}

// Unclassifiable text is not an error: it parks in MANUAL_REVIEW carrying the
// raw text for a human.
func TestRunRoutesUnknownTypeToReview(t *testing.T) {
	p := testPipeline()
	res := p.Run(Request{DocumentID: uuid.New(), Text: "lista de la compra: pan, leche"})

	if res.Status != constants.StatusManualReview {
		t.Fatalf("Status: got %s, want %s", res.Status, constants.StatusManualReview)
	}
	if res.DocumentType != constants.DocTypeOther {
		t.Errorf("DocumentType: got %s, want %s", res.DocumentType, constants.DocTypeOther)
	}
	if res.Extraction == nil || res.Extraction.Data["raw_text"] == "" {
		t.Error("Extraction raw_text: missing")
	}
}

// Blank text with a forced type reaches the extractor and fails there.
func TestRunBlankTextErrors(t *testing.T) {
	p := testPipeline()
	hint := constants.DocTypeCV
	res := p.Run(Request{DocumentID: uuid.New(), Text: "   \n ", TypeHint: &hint})

	if res.Status != constants.StatusError {
		t.Fatalf("Status: got %s, want %s", res.Status, constants.StatusError)
	}
	if res.ErrorMessage == "" {
		t.Error("ErrorMessage: empty, want a readable-text message")
	}
	if res.Text == "" {
		t.Error("Text: original text not preserved in the envelope")
	}
}

func TestRunTypeHintSkipsClassifier(t *testing.T) {
	p := testPipeline()
	hint := constants.DocTypeAssessment
	res := p.Run(Request{DocumentID: uuid.New(), Text: cvText, TypeHint: &hint})

	if res.DocumentType != constants.DocTypeAssessment {
		t.Errorf("DocumentType: got %s, want %s", res.DocumentType, constants.DocTypeAssessment)
	}
}

// A valid but thin extraction falls below the confidence floor.
func TestRunLowConfidenceNeedsReview(t *testing.T) {
	p := testPipeline()
	res := p.Run(Request{DocumentID: uuid.New(), Text: "Ana Ruiz\nana@example.com\n\nresume"})

	if res.DocumentType != constants.DocTypeCV {
		t.Fatalf("DocumentType: got %s, want %s", res.DocumentType, constants.DocTypeCV)
	}
	if res.Status != constants.StatusManualReview {
		t.Errorf("Status: got %s, want %s", res.Status, constants.StatusManualReview)
	}
	if res.Validation == nil || !res.Validation.IsValid {
		t.Errorf("Validation: expected valid result routed by confidence, got %+v", res.Validation)
	}
}

// A zero threshold disables confidence routing; only a negative value falls
// back to the default.
func TestMinConfidenceThreshold(t *testing.T) {
	thin := "Ana Ruiz\nana@example.com\n\nresume"

	p := New(nil, nil, 0)
	res := p.Run(Request{DocumentID: uuid.New(), Text: thin})
	if res.Status != constants.StatusCompleted {
		t.Errorf("threshold 0: Status: got %s, want %s", res.Status, constants.StatusCompleted)
	}

	p = New(nil, nil, -1)
	res = p.Run(Request{DocumentID: uuid.New(), Text: thin})
	if res.Status != constants.StatusManualReview {
		t.Errorf("threshold -1: Status: got %s, want %s", res.Status, constants.StatusManualReview)
	}
}

// Validation errors outrank confidence: structured data with an out-of-range
// score goes to a human even when extraction was rich.
func TestRunInvalidDataNeedsReview(t *testing.T) {
	p := testPipeline()
	text := `Informe Psicométrico
Test: Factor Oscuro de la Personalidad
Candidato: Juan Pérez
Sinceridad: 88.0
Egocentrismo: 150
Narcisismo: 58`
	res := p.Run(Request{DocumentID: uuid.New(), Text: text})

	if res.DocumentType != constants.DocTypeAssessment {
		t.Fatalf("DocumentType: got %s, want %s", res.DocumentType, constants.DocTypeAssessment)
	}
	if res.Status != constants.StatusManualReview {
		t.Errorf("Status: got %s, want %s", res.Status, constants.StatusManualReview)
	}
	if res.Validation == nil || res.Validation.IsValid {
		t.Fatal("Validation: expected invalid result")
	}
}

// Same input, same outcome: the pipeline holds no state between runs.
func TestRunDeterministic(t *testing.T) {
	p := testPipeline()
	id := uuid.New()
	a := p.Run(Request{DocumentID: id, Text: cvText})
	b := p.Run(Request{DocumentID: id, Text: cvText})

	if a.Status != b.Status || a.DocumentType != b.DocumentType {
		t.Errorf("runs diverged: (%s, %s) vs (%s, %s)", a.Status, a.DocumentType, b.Status, b.DocumentType)
	}
	if a.Metadata["content_hash"] != b.Metadata["content_hash"] {
		t.Error("content hash diverged between runs")
	}
}

func TestContentHashStable(t *testing.T) {
	if ContentHash("abc") != ContentHash("abc") {
		t.Error("ContentHash: not deterministic")
	}
	if ContentHash("abc") == ContentHash("abd") {
		t.Error("ContentHash: distinct inputs collided")
	}
	if len(ContentHash("")) != 64 {
		t.Errorf("ContentHash length: got %d, want 64 hex chars", len(ContentHash("")))
	}
}
