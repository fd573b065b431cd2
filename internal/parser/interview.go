package parser

import (
	"regexp"
	"strings"

	"github.com/candidatehq/docparse/internal/entity"
)

// Interview notes are semi-structured: a key-value metadata header, free
// narrative, quoted candidate statements and an optional closing
// recommendation line. Quotes get a coarse polarity and category tag; finer
// judgment is the reviewer's job.

var (
	reQuoted  = regexp.MustCompile(`["“”«»]([^"“”«»]{4,})["“”«»]`)
	reDashed  = regexp.MustCompile(`^\s*[-–•]\s+(.{4,})$`)
	reRecLine = regexp.MustCompile(`^\s*([\p{L} ]{2,30}?)\s*:\s*(.+)$`)
)

var interviewerLabels = []string{"entrevistador", "entrevistadora", "interviewer"}
var interviewTypeLabels = []string{"tipo", "tipo de entrevista", "type", "interview type"}
var responsesHeads = []string{"respuestas del candidato", "candidate responses", "citas", "quotes"}
var strengthsHeads = []string{"fortalezas", "strengths"}
var concernsHeads = []string{"preocupaciones", "concerns", "areas de mejora", "areas of improvement"}
var flagsHeads = []string{"banderas rojas", "red flags", "flags", "alertas"}

// ExtractInterview parses interview notes into an InterviewData record.
func ExtractInterview(text string) (*entity.InterviewData, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyInput
	}
	clean := NormalizeWhitespace(text)

	data := &entity.InterviewData{RawText: text}
	var narrative []string
	listTarget := "" // strengths / concerns / flags
	inResponses := false

	for _, line := range strings.Split(clean, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			listTarget = ""
			continue
		}
		folded := fold(trimmed)

		// section-style headers switch collection mode
		if len(trimmed) <= maxHeaderLen {
			head := strings.TrimRight(folded, ":")
			switch {
			case matchesLabel(head, responsesHeads):
				inResponses, listTarget = true, ""
				continue
			case matchesLabel(head, strengthsHeads):
				inResponses, listTarget = false, "strengths"
				continue
			case matchesLabel(head, concernsHeads):
				inResponses, listTarget = false, "concerns"
				continue
			case matchesLabel(head, flagsHeads):
				inResponses, listTarget = false, "flags"
				continue
			}
		}

		// metadata and recommendation key-value lines
		if m := reRecLine.FindStringSubmatch(trimmed); m != nil {
			key := fold(strings.TrimSpace(m[1]))
			val := strings.TrimSpace(m[2])
			switch {
			case matchesLabel(key, interviewerLabels):
				data.Interviewer = val
				continue
			case matchesLabel(key, dateLabels):
				if d, ok := NormalizeDate(val); ok {
					data.Date = d
					continue
				}
			case matchesLabel(key, interviewTypeLabels):
				data.InterviewType = val
				continue
			case matchesLabel(key, dict.Recommendation):
				// last one wins
				data.Recommendation = val
				continue
			}
		}

		// quote-bearing lines
		if q := reQuoted.FindStringSubmatch(trimmed); q != nil {
			data.KeyQuotes = append(data.KeyQuotes, tagQuote(q[1], trimmed))
			continue
		}
		if m := reDashed.FindStringSubmatch(trimmed); m != nil {
			item := strings.TrimSpace(m[1])
			switch listTarget {
			case "strengths":
				data.Strengths = append(data.Strengths, item)
			case "concerns":
				data.Concerns = append(data.Concerns, item)
			case "flags":
				data.Flags = append(data.Flags, item)
			default:
				if inResponses {
					data.KeyQuotes = append(data.KeyQuotes, tagQuote(item, trimmed))
				} else {
					narrative = append(narrative, item)
				}
			}
			continue
		}

		narrative = append(narrative, trimmed)
	}

	data.Summary = strings.Join(narrative, "\n")
	data.OverallSentiment = overallSentiment(data)
	return data, nil
}

// tagQuote assigns polarity from the sentiment lexicon and a category from
// keywords near the quote (the quote itself plus its surrounding line).
func tagQuote(quote, context string) entity.Quote {
	return entity.Quote{
		Text:      strings.TrimSpace(quote),
		Sentiment: polarity(quote + " " + context),
		Category:  quoteCategory(quote + " " + context),
	}
}

func polarity(text string) string {
	folded := fold(text)
	pos := countMatches(folded, dict.Sentiment.Positive)
	neg := countMatches(folded, dict.Sentiment.Negative)
	switch {
	case pos > neg:
		return entity.SentimentPositive
	case neg > pos:
		return entity.SentimentNegative
	default:
		return entity.SentimentNeutral
	}
}

func quoteCategory(text string) string {
	folded := fold(text)
	for _, cat := range []string{entity.QuoteCategoryRisk, entity.QuoteCategoryStrength, entity.QuoteCategoryConcern} {
		if containsAny(folded, dict.QuoteCategories[cat]) {
			return cat
		}
	}
	return entity.QuoteCategoryNeutral
}

// overallSentiment: the explicit recommendation line wins when present;
// otherwise it is derived from the quote tags.
func overallSentiment(data *entity.InterviewData) string {
	if data.Recommendation != "" {
		if s := polarity(data.Recommendation); s != entity.SentimentNeutral {
			return s
		}
	}
	var hasPos, hasNeg bool
	for _, q := range data.KeyQuotes {
		switch q.Sentiment {
		case entity.SentimentPositive:
			hasPos = true
		case entity.SentimentNegative:
			hasNeg = true
		}
	}
	switch {
	case hasPos && hasNeg:
		return entity.SentimentMixed
	case hasPos:
		return entity.SentimentPositive
	case hasNeg:
		return entity.SentimentNegative
	default:
		return entity.SentimentNeutral
	}
}
