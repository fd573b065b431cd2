// Package parser implements the document classification and structured
// extraction core: a type classifier, per-type extractors (CV, psychometric
// assessment, interview notes) and the field normalizer they share.
//
// Every function here is a pure computation over the input text; no state is
// carried between documents, so concurrent invocations need no coordination.
package parser

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"

	_ "embed"

	"github.com/candidatehq/docparse/constants"
)

//go:embed keywords.yaml
var keywordsYAML []byte

// testFamily is one known psychometric test with its alias phrases.
type testFamily struct {
	Name    string   `yaml:"name"`
	Type    string   `yaml:"type"`
	Aliases []string `yaml:"aliases"`
}

// dimensionEntry maps source labels to one canonical dimension.
type dimensionEntry struct {
	Name     string   `yaml:"name"`
	Category string   `yaml:"category"`
	Aliases  []string `yaml:"aliases"`
}

// dictionaries holds all keyword tables. They are configuration data, not
// code: adding a language or a test family means editing keywords.yaml.
type dictionaries struct {
	Signals   map[string][]string `yaml:"signals"`
	Sections  map[string][]string `yaml:"sections"`
	Tests     []testFamily        `yaml:"tests"`
	Dims      []dimensionEntry    `yaml:"dimensions"`
	Sincere   []string            `yaml:"sincerity"`
	Sentiment struct {
		Positive []string `yaml:"positive"`
		Negative []string `yaml:"negative"`
	} `yaml:"sentiment"`
	QuoteCategories map[string][]string `yaml:"quote_categories"`
	Recommendation  []string            `yaml:"recommendation"`
	TechTerms       []string            `yaml:"tech_terms"`
	Locations       []string            `yaml:"locations"`
}

// dict is loaded once at process start and read-only afterwards.
var dict = mustLoadDictionaries()

func mustLoadDictionaries() *dictionaries {
	var d dictionaries
	if err := yaml.Unmarshal(keywordsYAML, &d); err != nil {
		panic(fmt.Sprintf("parser: bad embedded keywords.yaml: %v", err))
	}
	// Fold everything up front so matching never re-folds the tables.
	for k, v := range d.Signals {
		d.Signals[k] = foldAll(v)
	}
	for k, v := range d.Sections {
		d.Sections[k] = foldAll(v)
	}
	for i := range d.Tests {
		d.Tests[i].Aliases = foldAll(d.Tests[i].Aliases)
	}
	for i := range d.Dims {
		d.Dims[i].Aliases = foldAll(d.Dims[i].Aliases)
	}
	d.Sincere = foldAll(d.Sincere)
	d.Sentiment.Positive = foldAll(d.Sentiment.Positive)
	d.Sentiment.Negative = foldAll(d.Sentiment.Negative)
	for k, v := range d.QuoteCategories {
		d.QuoteCategories[k] = foldAll(v)
	}
	d.Recommendation = foldAll(d.Recommendation)
	d.TechTerms = foldAll(d.TechTerms)
	d.Locations = foldAll(d.Locations)
	return &d
}

func foldAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = fold(s)
	}
	return out
}

// foldTransformer strips diacritics: NFD decompose, drop combining marks,
// recompose.
var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// fold lowercases and removes accents, so "Educación" matches "educacion".
func fold(s string) string {
	folded, _, err := transform.String(foldTransformer, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(folded)
}

// containsAny reports whether the folded haystack contains any of the already
// folded phrases.
func containsAny(folded string, phrases []string) bool {
	for _, p := range phrases {
		if p != "" && strings.Contains(folded, p) {
			return true
		}
	}
	return false
}

// countMatches counts how many of the folded phrases occur in the folded
// haystack. Each phrase counts at most once; this scores vocabulary breadth,
// not repetition.
func countMatches(folded string, phrases []string) int {
	n := 0
	for _, p := range phrases {
		if p != "" && strings.Contains(folded, p) {
			n++
		}
	}
	return n
}

// canonicalDimension resolves a source label to its canonical name and
// category. Unknown labels keep their (trimmed) label under "other".
func canonicalDimension(label string) (string, constants.DimensionCategory) {
	folded := fold(strings.TrimSpace(label))
	for _, d := range dict.Dims {
		for _, alias := range d.Aliases {
			if folded == alias {
				return d.Name, constants.DimensionCategory(d.Category)
			}
		}
	}
	return strings.TrimSpace(label), constants.CategoryOther
}
