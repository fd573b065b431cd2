package constants

// ProcessingStatus is the canonical status for rows in parse_jobs.
type ProcessingStatus string

// Stable values (store these exact strings in DB).
const (
	StatusUploaded     ProcessingStatus = "UPLOADED"      // document recorded, nothing ran yet
	StatusParsing      ProcessingStatus = "PARSING"       // classification in progress
	StatusExtracting   ProcessingStatus = "EXTRACTING"    // typed extraction in progress
	StatusValidating   ProcessingStatus = "VALIDATING"    // validation/normalization in progress
	StatusCompleted    ProcessingStatus = "COMPLETED"     // terminal success
	StatusError        ProcessingStatus = "ERROR"         // terminal failure
	StatusManualReview ProcessingStatus = "MANUAL_REVIEW" // needs a human before it counts
	StatusConfirmed    ProcessingStatus = "CONFIRMED"     // human confirmed a reviewed result
)

// Statuses holds the allowed values for the status field in ParseJob.
var Statuses = []string{
	string(StatusUploaded),
	string(StatusParsing),
	string(StatusExtracting),
	string(StatusValidating),
	string(StatusCompleted),
	string(StatusError),
	string(StatusManualReview),
	string(StatusConfirmed),
}

// transitions maps each status to the statuses it may advance to.
// COMPLETED and ERROR are terminal; MANUAL_REVIEW may only be confirmed.
var transitions = map[ProcessingStatus][]ProcessingStatus{
	StatusUploaded:     {StatusParsing, StatusError},
	StatusParsing:      {StatusExtracting, StatusError},
	StatusExtracting:   {StatusValidating, StatusError},
	StatusValidating:   {StatusCompleted, StatusManualReview, StatusError},
	StatusManualReview: {StatusConfirmed},
}

// CanTransition reports whether moving from -> to is a legal status change.
func CanTransition(from, to ProcessingStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further automatic processing applies.
func (s ProcessingStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusError || s == StatusConfirmed
}

// NeedsHuman reports whether the status is waiting on a reviewer.
func (s ProcessingStatus) NeedsHuman() bool {
	return s == StatusManualReview
}
