package parser

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Field normalizer: pure functions with no side effects, all idempotent.

// ErrInvalidPhone is returned when a phone candidate contains letters or no
// digits at all.
var ErrInvalidPhone = errors.New("invalid phone number")

// PresentToken is the canonical marker for an open-ended date range.
// It is resolved against the clock at validation time, never at extraction
// time, so stored results do not drift when re-validated later.
const PresentToken = "present"

var presentWords = map[string]struct{}{
	"present": {}, "presente": {}, "actual": {}, "actualidad": {}, "current": {}, "now": {}, "hoy": {},
}

// IsPresentToken reports whether the text means "still ongoing".
func IsPresentToken(s string) bool {
	_, ok := presentWords[fold(strings.TrimSpace(s))]
	return ok
}

var (
	rePhoneSep    = regexp.MustCompile(`[\s.]+`)
	rePhoneLetter = regexp.MustCompile(`\p{L}`)
	reDigit       = regexp.MustCompile(`\d`)
)

// NormalizePhone strips whitespace/dot separators, keeping a leading "+" and
// the digits/punctuation used in international formats. Strings containing
// letters are rejected rather than guessed at.
func NormalizePhone(text string) (string, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return "", ErrInvalidPhone
	}
	if rePhoneLetter.MatchString(s) {
		return "", fmt.Errorf("%w: %q contains letters", ErrInvalidPhone, text)
	}
	s = rePhoneSep.ReplaceAllString(s, "")
	// keep only +, digits, parens and hyphens; "+" only as prefix
	var b strings.Builder
	for i, r := range s {
		switch {
		case r >= '0' && r <= '9', r == '(', r == ')', r == '-':
			b.WriteRune(r)
		case r == '+' && i == 0:
			b.WriteRune(r)
		}
	}
	out := b.String()
	if !reDigit.MatchString(out) {
		return "", fmt.Errorf("%w: %q has no digits", ErrInvalidPhone, text)
	}
	return out, nil
}

// months maps bilingual month names (folded) to their number.
var months = map[string]int{
	"enero": 1, "january": 1, "jan": 1, "ene": 1,
	"febrero": 2, "february": 2, "feb": 2,
	"marzo": 3, "march": 3, "mar": 3,
	"abril": 4, "april": 4, "apr": 4, "abr": 4,
	"mayo": 5, "may": 5,
	"junio": 6, "june": 6, "jun": 6,
	"julio": 7, "july": 7, "jul": 7,
	"agosto": 8, "august": 8, "ago": 8, "aug": 8,
	"septiembre": 9, "setiembre": 9, "september": 9, "sep": 9, "sept": 9,
	"octubre": 10, "october": 10, "oct": 10,
	"noviembre": 11, "november": 11, "nov": 11,
	"diciembre": 12, "december": 12, "dic": 12, "dec": 12,
}

var (
	reISODate   = regexp.MustCompile(`^(\d{4})-(\d{1,2})(?:-(\d{1,2}))?$`)
	reYearOnly  = regexp.MustCompile(`^(19|20)\d{2}$`)
	reMonthYear = regexp.MustCompile(`^(\p{L}+)\.?\s+(?:de\s+|del\s+)?(\d{4})$`)
	reNumMY     = regexp.MustCompile(`^(\d{1,2})[/.-](\d{4})$`)
)

// NormalizeDate canonicalizes ISO-like forms, bilingual "Month YYYY" forms
// and bare years to "YYYY-MM-DD", "YYYY-MM" or "YYYY". "Present"-style
// tokens normalize to the literal PresentToken. Returns ok=false for
// anything it cannot read.
func NormalizeDate(text string) (string, bool) {
	s := strings.TrimSpace(text)
	if s == "" {
		return "", false
	}
	if IsPresentToken(s) {
		return PresentToken, true
	}
	if m := reISODate.FindStringSubmatch(s); m != nil {
		month, _ := strconv.Atoi(m[2])
		if month < 1 || month > 12 {
			return "", false
		}
		if m[3] != "" {
			day, _ := strconv.Atoi(m[3])
			if day < 1 || day > 31 {
				return "", false
			}
			return fmt.Sprintf("%s-%02d-%02d", m[1], month, day), true
		}
		return fmt.Sprintf("%s-%02d", m[1], month), true
	}
	if reYearOnly.MatchString(s) {
		return s, true
	}
	folded := fold(s)
	if m := reMonthYear.FindStringSubmatch(folded); m != nil {
		if num, ok := months[m[1]]; ok {
			return fmt.Sprintf("%s-%02d", m[2], num), true
		}
	}
	if m := reNumMY.FindStringSubmatch(s); m != nil {
		month, _ := strconv.Atoi(m[1])
		if month >= 1 && month <= 12 {
			return fmt.Sprintf("%s-%02d", m[2], month), true
		}
	}
	return "", false
}

var listSeparators = regexp.MustCompile(`[,|;•·◦▪]`)

// SplitDelimitedList splits on commas, pipes, semicolons or bullet
// characters, trims each item, drops empties and de-duplicates
// case-insensitively while keeping the first-seen casing and order.
func SplitDelimitedList(text string) []string {
	parts := listSeparators.Split(text, -1)
	return dedupeKeepFirst(parts)
}

// dedupeKeepFirst trims, drops empties and de-duplicates case-insensitively,
// preserving first-seen casing and order of first appearance.
func dedupeKeepFirst(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, it := range items {
		s := strings.TrimSpace(it)
		if s == "" {
			continue
		}
		key := fold(s)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, s)
	}
	return out
}

var (
	reCRLF       = regexp.MustCompile(`\r\n?`)
	reTabs       = regexp.MustCompile(`\t+`)
	reMultiSpace = regexp.MustCompile(` {2,}`)
	reMultiBlank = regexp.MustCompile(`\n{3,}`)
)

// NormalizeWhitespace collapses noisy whitespace while keeping line breaks.
// Conservative: more than two newlines become a single blank line.
func NormalizeWhitespace(s string) string {
	if s == "" {
		return s
	}
	s = reCRLF.ReplaceAllString(s, "\n")
	s = reTabs.ReplaceAllString(s, " ")
	s = reMultiSpace.ReplaceAllString(s, " ")
	s = reMultiBlank.ReplaceAllString(s, "\n\n")
	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " ")
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
