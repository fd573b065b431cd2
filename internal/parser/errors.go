package parser

import "errors"

// ErrEmptyInput is returned when extraction is attempted on blank or
// whitespace-only text. It is fatal for that document's run only.
var ErrEmptyInput = errors.New("empty input: no text to extract")

// ExtractorVersion tags every extraction result so stored records can be
// re-processed when the heuristics change.
const ExtractorVersion = "heuristic-v1"
