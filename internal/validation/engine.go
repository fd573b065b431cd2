// Package validation applies semantic range/format rules to extracted
// records, independent of how they were extracted, and produces the
// normalized data handed to downstream hiring workflows.
package validation

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"github.com/candidatehq/docparse/constants"
	"github.com/candidatehq/docparse/internal/entity"
	"github.com/candidatehq/docparse/internal/parser"
)

var reEmail = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Engine validates and normalizes typed records. Stateless; one instance
// serves concurrent pipelines.
type Engine struct {
	logger *slog.Logger
	now    func() time.Time
}

func NewEngine(logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{logger: logger, now: time.Now}
}

// Validate applies the type-specific rule set and returns the result with
// normalized data. Rule violations are data, not errors: the only error
// conditions are internal (marshaling).
//
// Severity policy: missing identity fields and out-of-range scores are
// errors; malformed contact data is a warning, since downstream workflows
// tolerate missing contact info but must flag it for review.
func (e *Engine) Validate(dt constants.DocumentType, data any) *entity.ValidationResult {
	res := &entity.ValidationResult{IsValid: true}

	switch v := data.(type) {
	case *entity.CVData:
		e.validateCV(v, res)
	case *entity.AssessmentData:
		e.validateAssessment(v, res)
	case *entity.InterviewData:
		e.validateInterview(v, res)
	default:
		res.AddWarning("document", nil, fmt.Sprintf("no validation rules for type %s", dt))
		return res
	}

	// Structural check over the normalized payload. Anything the engine
	// rules already pruned passes; residual shape violations are warnings.
	if schema := BuildSchema(dt); schema != nil && res.NormalizedData != nil {
		b, err := json.Marshal(res.NormalizedData)
		if err == nil {
			if err := ValidateAgainstSchema(schema, b); err != nil {
				e.logger.Warn("validation.schema.mismatch", "doc_type", dt, "err", err)
				res.AddWarning("document", nil, err.Error())
			}
		}
	}
	return res
}

func (e *Engine) validateCV(cv *entity.CVData, res *entity.ValidationResult) {
	out := *cv // shallow copy; slices are replaced below where edited
	out.RawText = ""

	if cv.FullName == "" {
		res.AddError("full_name", nil, "is required")
	}
	if cv.Email != "" && !reEmail.MatchString(cv.Email) {
		res.AddWarning("email", cv.Email, "does not look like a valid email address")
	}
	if cv.Phone != "" {
		p, err := parser.NormalizePhone(cv.Phone)
		if err != nil {
			res.AddWarning("phone", cv.Phone, "does not look like a valid phone number")
		} else {
			out.Phone = p
		}
	}

	out.Experience = make([]entity.WorkExperience, len(cv.Experience))
	copy(out.Experience, cv.Experience)
	for i, exp := range out.Experience {
		field := fmt.Sprintf("experience[%d]", i)
		if exp.IsCurrent && exp.EndDate != "" && exp.EndDate != parser.PresentToken {
			res.AddError(field+".end_date", exp.EndDate, "current position must not carry an end date")
		}
		if exp.EndDate == parser.PresentToken {
			// the literal stays in normalized data; only checks resolve it
			out.Experience[i].IsCurrent = true
			out.Experience[i].EndDate = ""
		}
		if exp.StartDate != "" && exp.EndDate != "" && exp.EndDate != parser.PresentToken && exp.StartDate > exp.EndDate {
			res.AddWarning(field, exp.StartDate, "start date is after end date")
		}
		if exp.StartDate != "" && exp.StartDate != parser.PresentToken && exp.StartDate > e.now().UTC().Format("2006-01-02") {
			res.AddWarning(field+".start_date", exp.StartDate, "start date is in the future")
		}
	}

	res.NormalizedData = toMap(&out)
}

func (e *Engine) validateAssessment(a *entity.AssessmentData, res *entity.ValidationResult) {
	out := *a
	out.RawText = ""

	if a.TestName == "" {
		res.AddError("test_name", nil, "is required")
	}

	// Out-of-range dimensions become errors and are dropped from the
	// normalized payload; valid ones stay. Never clamp silently.
	kept := make([]entity.AssessmentDimension, 0, len(a.Scores))
	for _, dim := range a.Scores {
		if dim.Value < constants.DimensionMin || dim.Value > constants.DimensionMax {
			res.AddError("scores."+dim.Name, dim.Value,
				fmt.Sprintf("value must be between %g and %g", constants.DimensionMin, constants.DimensionMax))
			continue
		}
		kept = append(kept, dim)
	}
	out.Scores = kept

	if a.SincerityScore != nil {
		if *a.SincerityScore < constants.DimensionMin || *a.SincerityScore > constants.DimensionMax {
			res.AddError("sincerity_score", *a.SincerityScore,
				fmt.Sprintf("value must be between %g and %g", constants.DimensionMin, constants.DimensionMax))
			out.SincerityScore = nil
		}
	}
	if len(kept) == 0 {
		res.AddWarning("scores", nil, "no valid dimension scores")
	}

	res.NormalizedData = toMap(&out)
}

func (e *Engine) validateInterview(iv *entity.InterviewData, res *entity.ValidationResult) {
	out := *iv
	out.RawText = ""

	if iv.Interviewer == "" {
		res.AddWarning("interviewer", nil, "no interviewer recorded")
	}
	if iv.Date == "" {
		res.AddWarning("date", nil, "no interview date recorded")
	}
	if iv.Summary == "" && len(iv.KeyQuotes) == 0 {
		res.AddWarning("summary", nil, "neither summary nor quotes present")
	}

	res.NormalizedData = toMap(&out)
}

// toMap converts a typed record to the generic mapping the envelope carries.
func toMap(v any) map[string]any {
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil
	}
	return m
}
