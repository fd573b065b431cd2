package parser

import "strings"

// Section segmentation for CVs. Heuristic by nature: a header is a short
// line whose folded text matches one of the configured bilingual section
// keywords. Keyword tables live in keywords.yaml, not in code.

const maxHeaderLen = 45

// sectionHeader reports which section a line opens, if any.
func sectionHeader(line string) (string, bool) {
	s := strings.TrimSpace(line)
	s = strings.TrimRight(s, ":")
	if s == "" || len(s) > maxHeaderLen {
		return "", false
	}
	folded := fold(s)
	for name, keywords := range dict.Sections {
		for _, kw := range keywords {
			if folded == kw || strings.HasPrefix(folded, kw+" ") || strings.HasPrefix(folded, kw+":") {
				return name, true
			}
		}
	}
	return "", false
}

// segment splits the text into the contact block (everything before the
// first recognized header) and named section bodies. A section that appears
// twice keeps both bodies, concatenated in order.
func segment(text string) (contact []string, sections map[string][]string) {
	sections = make(map[string][]string)
	current := ""
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if name, ok := sectionHeader(line); ok {
			current = name
			continue
		}
		if current == "" {
			contact = append(contact, line)
		} else {
			sections[current] = append(sections[current], line)
		}
	}
	return contact, sections
}

// blocks groups a section body into blank-line separated chunks.
func blocks(lines []string) [][]string {
	var out [][]string
	var cur []string
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			if len(cur) > 0 {
				out = append(out, cur)
				cur = nil
			}
			continue
		}
		cur = append(cur, line)
	}
	if len(cur) > 0 {
		out = append(out, cur)
	}
	return out
}
