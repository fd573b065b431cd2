package parser

import "github.com/candidatehq/docparse/constants"

// Classify scores the text against each type's signal set and returns the
// best match. It never fails: empty or unrecognizable text is OTHER.
//
// Ties break by declaration priority (ASSESSMENT > INTERVIEW > CV >
// COVER_LETTER) since the narrower vocabularies are less likely to appear by
// accident inside an unrelated document.
func Classify(text string) constants.DocumentType {
	if text == "" {
		return constants.DocTypeOther
	}
	folded := fold(text)

	best := constants.DocTypeOther
	bestScore := 0
	for _, dt := range constants.ClassifierPriority {
		score := countMatches(folded, dict.Signals[string(dt)])
		if score > bestScore {
			best, bestScore = dt, score
		}
	}
	return best
}
