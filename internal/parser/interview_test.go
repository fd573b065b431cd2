package parser

import (
	"errors"
	"reflect"
	"testing"

	"github.com/candidatehq/docparse/internal/entity"
)

const sampleInterview = `Entrevistador: Ana Ruiz
Tipo: Técnica
Fecha: 2024-04-02

El candidato llegó puntual y se mostró tranquilo.

Respuestas del candidato
- "Disfruto resolver problemas difíciles en equipo"
- "Tengo dudas sobre asumir más responsabilidades"

Fortalezas
- Comunicación clara
- Experiencia sólida en backend

Preocupaciones
- Poca exposición a sistemas distribuidos

Recomendación: Avanzar, el perfil es fuerte`

func TestExtractInterviewMetadata(t *testing.T) {
	iv, err := ExtractInterview(sampleInterview)
	if err != nil {
		t.Fatalf("ExtractInterview: %v", err)
	}
	if iv.Interviewer != "Ana Ruiz" {
		t.Errorf("Interviewer: got %q, want %q", iv.Interviewer, "Ana Ruiz")
	}
	if iv.InterviewType != "Técnica" {
		t.Errorf("InterviewType: got %q, want %q", iv.InterviewType, "Técnica")
	}
	if iv.Date != "2024-04-02" {
		t.Errorf("Date: got %q, want %q", iv.Date, "2024-04-02")
	}
	if iv.Recommendation != "Avanzar, el perfil es fuerte" {
		t.Errorf("Recommendation: got %q", iv.Recommendation)
	}
}

func TestExtractInterviewQuotes(t *testing.T) {
	iv, err := ExtractInterview(sampleInterview)
	if err != nil {
		t.Fatalf("ExtractInterview: %v", err)
	}
	if len(iv.KeyQuotes) != 2 {
		t.Fatalf("KeyQuotes: got %d, want 2", len(iv.KeyQuotes))
	}
	first := iv.KeyQuotes[0]
	if first.Text != "Disfruto resolver problemas difíciles en equipo" {
		t.Errorf("first quote: got %q", first.Text)
	}
	second := iv.KeyQuotes[1]
	if second.Sentiment != entity.SentimentNegative {
		t.Errorf("second quote Sentiment: got %q, want %q", second.Sentiment, entity.SentimentNegative)
	}
	if second.Category != entity.QuoteCategoryConcern {
		t.Errorf("second quote Category: got %q, want %q", second.Category, entity.QuoteCategoryConcern)
	}
}

func TestExtractInterviewLists(t *testing.T) {
	iv, err := ExtractInterview(sampleInterview)
	if err != nil {
		t.Fatalf("ExtractInterview: %v", err)
	}
	wantStrengths := []string{"Comunicación clara", "Experiencia sólida en backend"}
	if !reflect.DeepEqual(iv.Strengths, wantStrengths) {
		t.Errorf("Strengths: got %v, want %v", iv.Strengths, wantStrengths)
	}
	wantConcerns := []string{"Poca exposición a sistemas distribuidos"}
	if !reflect.DeepEqual(iv.Concerns, wantConcerns) {
		t.Errorf("Concerns: got %v, want %v", iv.Concerns, wantConcerns)
	}
}

// The explicit recommendation polarity outranks mixed quote sentiment.
func TestExtractInterviewOverallSentiment(t *testing.T) {
	iv, err := ExtractInterview(sampleInterview)
	if err != nil {
		t.Fatalf("ExtractInterview: %v", err)
	}
	if iv.OverallSentiment != entity.SentimentPositive {
		t.Errorf("OverallSentiment: got %q, want %q", iv.OverallSentiment, entity.SentimentPositive)
	}
}

func TestExtractInterviewNarrativeSummary(t *testing.T) {
	iv, err := ExtractInterview(sampleInterview)
	if err != nil {
		t.Fatalf("ExtractInterview: %v", err)
	}
	want := "El candidato llegó puntual y se mostró tranquilo."
	if iv.Summary != want {
		t.Errorf("Summary: got %q, want %q", iv.Summary, want)
	}
}

func TestExtractInterviewRedFlags(t *testing.T) {
	text := `Interviewer: Sam Lee

Red Flags
- Inconsistent answers about previous employment dates`
	iv, err := ExtractInterview(text)
	if err != nil {
		t.Fatalf("ExtractInterview: %v", err)
	}
	if len(iv.Flags) != 1 {
		t.Fatalf("Flags: got %d, want 1", len(iv.Flags))
	}
	if iv.Flags[0] != "Inconsistent answers about previous employment dates" {
		t.Errorf("flag: got %q", iv.Flags[0])
	}
}

// Quotes embedded in narrative (Spanish guillemets included) are picked up
// outside any section.
func TestExtractInterviewInlineQuote(t *testing.T) {
	text := `Notas rápidas
Dijo «me motiva aprender cosas nuevas» al inicio.`
	iv, err := ExtractInterview(text)
	if err != nil {
		t.Fatalf("ExtractInterview: %v", err)
	}
	if len(iv.KeyQuotes) != 1 {
		t.Fatalf("KeyQuotes: got %d, want 1", len(iv.KeyQuotes))
	}
	if iv.KeyQuotes[0].Text != "me motiva aprender cosas nuevas" {
		t.Errorf("quote: got %q", iv.KeyQuotes[0].Text)
	}
}

func TestExtractInterviewEmptyInput(t *testing.T) {
	if _, err := ExtractInterview(""); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("got err %v, want ErrEmptyInput", err)
	}
}
