package parser

import "github.com/candidatehq/docparse/internal/entity"

// Document-level confidence is a completeness estimate derived from which
// expected fields were populated. It ranks incomplete documents lower
// without rejecting them; it is never user-settable.

// Completeness returns the [0,1] confidence for one extracted record.
func Completeness(data any) float32 {
	switch v := data.(type) {
	case *entity.CVData:
		return cvCompleteness(v)
	case *entity.AssessmentData:
		return assessmentCompleteness(v)
	case *entity.InterviewData:
		return interviewCompleteness(v)
	default:
		return 0
	}
}

func cvCompleteness(cv *entity.CVData) float32 {
	var c float32
	if cv.FullName != "" && cv.Email != "" {
		c += 0.40
	}
	if len(cv.Experience) > 0 {
		c += 0.30
	}
	if len(cv.Education) > 0 {
		c += 0.20
	}
	if len(cv.Skills) > 0 {
		c += 0.10
	}
	return c
}

func assessmentCompleteness(a *entity.AssessmentData) float32 {
	var c float32
	if len(a.Scores) > 0 {
		c += 0.50
	}
	if a.TestName != "" && a.TestName != GenericTestName {
		c += 0.20
	}
	if a.CandidateName != "" {
		c += 0.15
	}
	if a.SincerityScore != nil {
		c += 0.15
	}
	return c
}

func interviewCompleteness(iv *entity.InterviewData) float32 {
	var c float32
	if len(iv.KeyQuotes) > 0 {
		c += 0.40
	}
	if iv.Recommendation != "" {
		c += 0.30
	}
	if iv.Interviewer != "" {
		c += 0.20
	}
	if iv.Date != "" {
		c += 0.10
	}
	return c
}
