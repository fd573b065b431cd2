package entity

import "fmt"

// ValidationIssue severities. Warnings never affect IsValid.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// ValidationIssue describes one rule violation on one field.
type ValidationIssue struct {
	Field    string `json:"field"`
	Value    any    `json:"value,omitempty"`
	Message  string `json:"message"`
	Severity string `json:"severity"`
}

func (e ValidationIssue) Error() string {
	return fmt.Sprintf("validation failed for field %q with value %v: %s", e.Field, e.Value, e.Message)
}

// ValidationResult is the outcome of validating one extracted record.
// NormalizedData always carries whatever normalized cleanly, valid or not,
// so partial results stay usable downstream.
type ValidationResult struct {
	IsValid        bool              `json:"is_valid"`
	Errors         []ValidationIssue `json:"errors,omitempty"`
	Warnings       []ValidationIssue `json:"warnings,omitempty"`
	NormalizedData map[string]any    `json:"normalized_data,omitempty"`
}

// AddError records a severity=error issue and flips IsValid.
func (r *ValidationResult) AddError(field string, value any, msg string) {
	r.Errors = append(r.Errors, ValidationIssue{Field: field, Value: value, Message: msg, Severity: SeverityError})
	r.IsValid = false
}

// AddWarning records a severity=warning issue.
func (r *ValidationResult) AddWarning(field string, value any, msg string) {
	r.Warnings = append(r.Warnings, ValidationIssue{Field: field, Value: value, Message: msg, Severity: SeverityWarning})
}
