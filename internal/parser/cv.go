package parser

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/candidatehq/docparse/internal/entity"
)

// CV extraction works in passes:
//  1. contact block (lines before the first recognized section header)
//  2. section segmentation (bilingual, accent-tolerant headers)
//  3. per-block experience/education parsing
//  4. skills, delimited or via known-terms fallback scan
//
// Missing fields stay empty; only blank input is an error.

var (
	reEmail    = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)
	reLinkedIn = regexp.MustCompile(`(?i)(?:https?://)?(?:[a-z]{2,3}\.)?linkedin\.com/[^\s|,;]+`)
	rePhoneRun = regexp.MustCompile(`\+?\d[\d\s().\-]{5,20}\d`)
)

// contactScanLines bounds the name/location scan so a CV without headers
// does not read its whole body as a contact block.
const contactScanLines = 12

// ExtractCV parses résumé text into a CVData record.
func ExtractCV(text string) (*entity.CVData, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyInput
	}
	clean := NormalizeWhitespace(text)
	contact, sections := segment(clean)

	cv := &entity.CVData{RawText: text}
	parseContactBlock(contact, cv)

	cv.Summary = joinNonEmpty(sections["summary"])
	cv.Experience = parseExperience(blocks(sections["experience"]))
	cv.Education = parseEducation(blocks(sections["education"]))
	cv.Skills = parseSkills(sections["skills"])
	cv.Languages = parseInlineList(sections["languages"])
	cv.Certifications = parseInlineList(sections["certifications"])
	return cv, nil
}

func parseContactBlock(lines []string, cv *entity.CVData) {
	joined := strings.Join(lines, "\n")
	cv.Email = reEmail.FindString(joined)
	if m := reLinkedIn.FindString(joined); m != "" {
		cv.LinkedIn = normalizeLinkedIn(m)
	}
	for _, cand := range rePhoneRun.FindAllString(joined, -1) {
		digits := countDigits(cand)
		if digits < 7 || digits > 15 {
			continue
		}
		if p, err := NormalizePhone(cand); err == nil {
			cv.Phone = p
			break
		}
	}

	scanned := 0
	for _, line := range lines {
		if line == "" {
			continue
		}
		scanned++
		if scanned > contactScanLines {
			break
		}
		if cv.FullName == "" && plausibleName(line) {
			cv.FullName = line
			continue
		}
		if cv.Location == "" && plausibleLocation(line) {
			cv.Location = line
		}
	}
}

// plausibleName: short line without contact noise. The first such line in
// the contact block is taken as the candidate's name.
func plausibleName(line string) bool {
	if len(line) > 60 || strings.ContainsAny(line, "@/") {
		return false
	}
	if rePhoneRun.MatchString(line) {
		return false
	}
	return strings.TrimSpace(line) != ""
}

func plausibleLocation(line string) bool {
	if len(line) > 60 || strings.Contains(line, "@") || reLinkedIn.MatchString(line) || rePhoneRun.MatchString(line) {
		return false
	}
	if strings.Contains(line, ",") {
		return true
	}
	return containsAny(fold(line), dict.Locations)
}

func normalizeLinkedIn(u string) string {
	if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
		u = "https://" + u
	}
	return strings.TrimRight(u, ".,;")
}

// Date ranges come spaced ("Enero 2020 - Presente", "2018-03 - 2019-12") or
// tight year-to-year ("2014-2018", "2019-presente"). The spaced form needs
// whitespace around the dash so ISO dates keep their own hyphens.
var (
	reDateRangeSpaced = regexp.MustCompile(`^(.{2,25}?)\s+[-–—]\s+(.{2,25})$`)
	reDateRangeTight  = regexp.MustCompile(`^((?:19|20)\d{2})\s*[-–—]\s*((?:19|20)\d{2}|\p{L}+\.?)$`)
)

// parseDateRange reads a start/end pair off a line. ok only if the start
// side is a readable date.
func parseDateRange(line string) (start, end string, current, ok bool) {
	s := strings.TrimSpace(line)
	m := reDateRangeSpaced.FindStringSubmatch(s)
	if m == nil {
		m = reDateRangeTight.FindStringSubmatch(s)
	}
	if m == nil {
		return "", "", false, false
	}
	start, sok := NormalizeDate(m[1])
	if !sok {
		return "", "", false, false
	}
	end, eok := NormalizeDate(m[2])
	if !eok {
		return start, "", false, true
	}
	if end == PresentToken {
		// is_current=true implies end_date is absent
		return start, "", true, true
	}
	return start, end, false, true
}

// titleSeparators in "Title en/at Company" order of preference.
var titleSeparators = []string{" en ", " at ", " @ "}

// splitTitleCompany parses headline lines like "Senior Developer en TechCorp"
// or "Senior Developer, TechCorp".
func splitTitleCompany(line string) (title, company string) {
	// lowercase, not fold: byte offsets must line up with the original
	lower := strings.ToLower(line)
	for _, sep := range titleSeparators {
		if idx := strings.Index(lower, sep); idx > 0 {
			return strings.TrimSpace(line[:idx]), strings.TrimSpace(line[idx+len(sep):])
		}
	}
	for _, sep := range []string{",", " - ", " | "} {
		if idx := strings.Index(line, sep); idx > 0 {
			return strings.TrimSpace(line[:idx]), strings.TrimSpace(line[idx+len(sep):])
		}
	}
	return strings.TrimSpace(line), ""
}

func parseExperience(expBlocks [][]string) []entity.WorkExperience {
	var out []entity.WorkExperience
	for _, block := range expBlocks {
		if len(block) == 0 {
			continue
		}
		var exp entity.WorkExperience
		exp.Title, exp.Company = splitTitleCompany(block[0])

		var desc []string
		for _, line := range block[1:] {
			if start, end, current, ok := parseDateRange(line); ok && exp.StartDate == "" {
				exp.StartDate, exp.EndDate, exp.IsCurrent = start, end, current
				continue
			}
			desc = append(desc, line)
		}
		exp.Description = joinNonEmpty(desc)
		if exp.Title != "" || exp.Company != "" {
			out = append(out, exp)
		}
	}
	return out
}

var degreeKeywords = []string{
	"licenciatura", "ingenieria", "ingeniero", "grado", "master", "doctorado",
	"tecnico", "diplomado", "bachelor", "degree", "msc", "bsc", "phd", "mba",
}

var institutionKeywords = []string{
	"universidad", "university", "instituto", "institute", "college", "escuela", "school", "politecnic",
}

func parseEducation(eduBlocks [][]string) []entity.Education {
	var out []entity.Education
	for _, block := range eduBlocks {
		if len(block) == 0 {
			continue
		}
		var edu entity.Education
		for _, line := range block {
			if start, end, current, ok := parseDateRange(line); ok && edu.StartDate == "" {
				edu.StartDate, edu.EndDate, edu.IsCurrent = start, end, current
				continue
			}
			folded := fold(line)
			switch {
			case edu.Institution == "" && containsAny(folded, institutionKeywords):
				edu.Institution = strings.TrimSpace(line)
			case edu.Degree == "" && containsAny(folded, degreeKeywords):
				edu.Degree, edu.FieldOfStudy = splitDegreeField(line)
			case edu.Institution == "":
				edu.Institution = strings.TrimSpace(line)
			}
		}
		if edu.Institution != "" || edu.Degree != "" {
			out = append(out, edu)
		}
	}
	return out
}

// splitDegreeField turns "Licenciatura en Informática" into degree + field.
func splitDegreeField(line string) (degree, field string) {
	lower := strings.ToLower(line)
	for _, sep := range []string{" en ", " in ", " de "} {
		if idx := strings.Index(lower, sep); idx > 0 {
			return strings.TrimSpace(line[:idx]), strings.TrimSpace(line[idx+len(sep):])
		}
	}
	return strings.TrimSpace(line), ""
}

// parseSkills prefers an explicit delimited list; free-form prose falls back
// to a scan against the known technical-terms dictionary so it still yields
// something.
func parseSkills(lines []string) []string {
	joined := joinNonEmpty(lines)
	if joined == "" {
		return nil
	}
	if listSeparators.MatchString(joined) {
		return SplitDelimitedList(strings.ReplaceAll(joined, "\n", ","))
	}
	if terms := scanKnownTerms(joined); len(terms) > 0 {
		return terms
	}
	// no delimiters, no known terms: one skill per line
	return dedupeKeepFirst(strings.Split(joined, "\n"))
}

// scanKnownTerms collects dictionary tech terms in order of appearance,
// keeping the casing used in the source text. Terms match whole words only:
// "JavaScript" must not also yield "java", nor "PostgreSQL" yield "sql".
func scanKnownTerms(text string) []string {
	lower := strings.ToLower(text)
	type hit struct {
		pos  int
		term string
	}
	var hits []hit
	for _, term := range dict.TechTerms {
		idx := findWholeTerm(lower, term)
		if idx < 0 {
			continue
		}
		end := idx + len(term)
		if end <= len(text) {
			hits = append(hits, hit{pos: idx, term: text[idx:end]})
		}
	}
	for i := range hits {
		for j := i + 1; j < len(hits); j++ {
			if hits[j].pos < hits[i].pos {
				hits[i], hits[j] = hits[j], hits[i]
			}
		}
	}
	terms := make([]string, len(hits))
	for i, h := range hits {
		terms[i] = h.term
	}
	return dedupeKeepFirst(terms)
}

// findWholeTerm returns the first occurrence of term in lower that is not
// embedded in a longer word. Terms carrying their own punctuation ("c++",
// "node.js") still match because only letter/digit neighbours disqualify.
func findWholeTerm(lower, term string) int {
	for from := 0; from <= len(lower)-len(term); {
		idx := strings.Index(lower[from:], term)
		if idx < 0 {
			return -1
		}
		idx += from
		if isTermBoundary(lower, idx, idx+len(term)) {
			return idx
		}
		from = idx + 1
	}
	return -1
}

func isTermBoundary(s string, start, end int) bool {
	if start > 0 {
		if r, _ := utf8.DecodeLastRuneInString(s[:start]); unicode.IsLetter(r) || unicode.IsDigit(r) {
			return false
		}
	}
	if end < len(s) {
		if r, _ := utf8.DecodeRuneInString(s[end:]); unicode.IsLetter(r) || unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func parseInlineList(lines []string) []string {
	joined := joinNonEmpty(lines)
	if joined == "" {
		return nil
	}
	return SplitDelimitedList(strings.ReplaceAll(joined, "\n", ","))
}

func joinNonEmpty(lines []string) string {
	var keep []string
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			keep = append(keep, strings.TrimSpace(l))
		}
	}
	return strings.Join(keep, "\n")
}

func countDigits(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}
