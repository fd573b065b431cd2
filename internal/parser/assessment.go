package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/candidatehq/docparse/internal/entity"
)

// Assessment reports arrive as exported text with a roughly tabular
// "Label: Number" or "| Label | Number |" layout. The extractor canonicalizes
// labels through the dimension dictionary and keeps the sincerity/validity
// scale out of the dimension table: it discounts trust in the test, it is not
// a personality score.

// GenericTestName is used when no known test family matches; an unrecognized
// report is still worth extracting.
const GenericTestName = "Unspecified Assessment"

var (
	// "Label: 72.5", "Label: 72,5 %"
	reLabelScore = regexp.MustCompile(`^\s*([\p{L}][\p{L} ()/\-]{1,40}?)\s*:\s*(-?\d+(?:[.,]\d+)?)\s*%?\s*$`)
	// "| Label | 72.5 |"
	reTableScore = regexp.MustCompile(`^\s*\|\s*([\p{L}][\p{L} ()/\-]{1,40}?)\s*\|\s*(-?\d+(?:[.,]\d+)?)\s*%?\s*\|\s*$`)
	// "Candidato: Juan Pérez"
	reKeyValue = regexp.MustCompile(`^\s*([\p{L} ]{2,30}?)\s*:\s*(.+)$`)
)

// metaLabels are key-value labels that look numeric but are not dimensions.
var metaLabels = []string{"edad", "age", "paginas", "pages", "duracion", "duration", "percentil global", "total"}

var candidateLabels = []string{"candidato", "candidata", "candidate", "nombre", "name", "evaluado"}

var dateLabels = []string{"fecha", "date", "fecha de aplicacion", "test date"}

var interpretationHeads = []string{"interpretacion", "interpretation", "conclusion", "conclusiones", "resumen de resultados"}

// DetectTestName matches known test-family aliases and returns the canonical
// test name plus its family type. Unmatched text yields the generic name.
func DetectTestName(text string) (name, testType string) {
	folded := fold(text)
	for _, fam := range dict.Tests {
		for _, alias := range fam.Aliases {
			if strings.Contains(folded, alias) {
				return fam.Name, fam.Type
			}
		}
	}
	return GenericTestName, "other"
}

// ExtractAssessment parses a psychometric report into an AssessmentData
// record.
func ExtractAssessment(text string) (*entity.AssessmentData, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyInput
	}
	clean := NormalizeWhitespace(text)

	data := &entity.AssessmentData{RawText: text}
	data.TestName, data.TestType = DetectTestName(clean)

	lines := strings.Split(clean, "\n")
	var interpretation []string
	inInterpretation := false

	for _, line := range lines {
		if label, value, ok := scoreLine(line); ok {
			foldedLabel := fold(label)
			switch {
			case matchesLabel(foldedLabel, dict.Sincere):
				if data.SincerityScore == nil {
					v := value
					data.SincerityScore = &v
				}
			case matchesLabel(foldedLabel, metaLabels):
				// metadata, not a personality dimension
			default:
				name, category := canonicalDimension(label)
				data.Scores = append(data.Scores, entity.AssessmentDimension{
					Name:     name,
					Value:    value,
					Category: category,
				})
			}
			continue
		}

		if m := reKeyValue.FindStringSubmatch(line); m != nil {
			foldedKey := fold(strings.TrimSpace(m[1]))
			val := strings.TrimSpace(m[2])
			switch {
			case data.CandidateName == "" && matchesLabel(foldedKey, candidateLabels):
				data.CandidateName = val
			case data.TestDate == "" && matchesLabel(foldedKey, dateLabels):
				if d, ok := NormalizeDate(val); ok {
					data.TestDate = d
				}
			}
			continue
		}

		folded := fold(line)
		if containsAny(folded, interpretationHeads) && len(line) <= maxHeaderLen {
			inInterpretation = true
			continue
		}
		if inInterpretation && strings.TrimSpace(line) != "" {
			interpretation = append(interpretation, strings.TrimSpace(line))
		}
	}

	data.Interpretation = strings.Join(interpretation, "\n")
	return data, nil
}

// scoreLine reads one "Label: Number" or "| Label | Number |" line.
func scoreLine(line string) (label string, value float64, ok bool) {
	m := reTableScore.FindStringSubmatch(line)
	if m == nil {
		m = reLabelScore.FindStringSubmatch(line)
	}
	if m == nil {
		return "", 0, false
	}
	raw := strings.ReplaceAll(m[2], ",", ".")
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return "", 0, false
	}
	return strings.TrimSpace(m[1]), v, true
}

// matchesLabel reports whether the folded label equals any of the folded
// phrases. Exact on purpose: substring matching over score labels would
// swallow dimensions like "Estabilidad emocional" for "estabilidad".
func matchesLabel(foldedLabel string, phrases []string) bool {
	for _, p := range phrases {
		if foldedLabel == p {
			return true
		}
	}
	return false
}
