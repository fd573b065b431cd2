package parser

import (
	"testing"

	"github.com/candidatehq/docparse/constants"
)

func TestClassifySpanishCV(t *testing.T) {
	text := `María García López
maria.garcia@example.com

Experiencia Laboral
Desarrolladora Senior en Acme

Educación
Universidad de Madrid

Habilidades
Python, SQL`
	if got := Classify(text); got != constants.DocTypeCV {
		t.Errorf("Classify: got %s, want %s", got, constants.DocTypeCV)
	}
}

func TestClassifyAssessment(t *testing.T) {
	text := `Informe de Evaluación
Test Psicométrico: Factor Oscuro de la Personalidad
Percentil general: 64
Sinceridad: 88.0
Egocentrismo: 72.5`
	if got := Classify(text); got != constants.DocTypeAssessment {
		t.Errorf("Classify: got %s, want %s", got, constants.DocTypeAssessment)
	}
}

func TestClassifyInterviewNotes(t *testing.T) {
	text := `Notas de entrevista técnica
Entrevistador: Ana Ruiz
El candidato explicó su experiencia con claridad.
Recomendación: avanzar a la siguiente ronda`
	if got := Classify(text); got != constants.DocTypeInterview {
		t.Errorf("Classify: got %s, want %s", got, constants.DocTypeInterview)
	}
}

func TestClassifyCoverLetter(t *testing.T) {
	text := `Estimado equipo de selección:

Me dirijo a ustedes para expresar mi interés en la posición.
Esta carta de presentación resume mi motivación.`
	if got := Classify(text); got != constants.DocTypeCoverLetter {
		t.Errorf("Classify: got %s, want %s", got, constants.DocTypeCoverLetter)
	}
}

func TestClassifyUnrecognizedTextIsOther(t *testing.T) {
	cases := []string{
		"",
		"   \n\t  ",
		"Lista de la compra: pan, leche, huevos",
	}
	for _, text := range cases {
		if got := Classify(text); got != constants.DocTypeOther {
			t.Errorf("Classify(%q): got %s, want %s", text, got, constants.DocTypeOther)
		}
	}
}

// Equal signal counts resolve by priority: assessment vocabulary is narrower
// and wins over CV vocabulary.
func TestClassifyTieBreak(t *testing.T) {
	text := "percentil score education skills"
	if got := Classify(text); got != constants.DocTypeAssessment {
		t.Errorf("Classify: got %s, want %s", got, constants.DocTypeAssessment)
	}
}

func TestClassifyIsAccentInsensitive(t *testing.T) {
	accented := "EXPERIENCIA LABORAL\nEDUCACIÓN\nHABILIDADES"
	plain := "experiencia laboral\neducacion\nhabilidades"
	if got, want := Classify(accented), Classify(plain); got != want {
		t.Errorf("accented vs plain: got %s, want %s", got, want)
	}
}
