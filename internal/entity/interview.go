package entity

// InterviewData is the structured form of interview notes.
type InterviewData struct {
	InterviewType    string   `json:"interview_type,omitempty"`
	Interviewer      string   `json:"interviewer,omitempty"`
	Date             string   `json:"date,omitempty"`
	Summary          string   `json:"summary,omitempty"`
	KeyQuotes        []Quote  `json:"key_quotes,omitempty"`
	Flags            []string `json:"flags,omitempty"`
	Strengths        []string `json:"strengths,omitempty"`
	Concerns         []string `json:"concerns,omitempty"`
	OverallSentiment string   `json:"overall_sentiment,omitempty"`
	Recommendation   string   `json:"recommendation,omitempty"`
	RawText          string   `json:"raw_text,omitempty"`
}

// Quote is one candidate statement lifted from the notes, tagged with a
// coarse polarity and a category (risk/strength/concern/neutral).
type Quote struct {
	Text      string `json:"text"`
	Category  string `json:"category"`
	Sentiment string `json:"sentiment"`
}

// Quote categories and sentiments. Coarse on purpose; anything finer belongs
// to a human reviewer.
const (
	QuoteCategoryRisk     = "risk"
	QuoteCategoryStrength = "strength"
	QuoteCategoryConcern  = "concern"
	QuoteCategoryNeutral  = "neutral"

	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
	SentimentMixed    = "mixed"
)
