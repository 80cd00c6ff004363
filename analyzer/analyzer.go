// Package analyzer provides the per-context term analyzer: the
// tokenization/normalization pipeline the query processor and ingestion path
// call through an interface. The default implementation splits camelCase
// and non-alphanumeric runs and lowercases the result.
package analyzer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gcbaptista/huntdex/postings"
)

// Analyzer turns field text into normalized, positioned tokens, and
// validates/normalizes a single query term for the same context.
type Analyzer interface {
	// Analyze tokenizes text into words tagged with their position.
	Analyze(text string) []Token

	// Normalize validates and normalizes a single query term (a QWord/ QPhrase
	// word, or a QRange endpoint). An error here is surfaced by the query
	// processor as error code 400 for the owning context.
	Normalize(term string) (string, error)
}

// Token is one normalized word at a position within a field's text.
type Token struct {
	Word     string
	Position postings.Position
}

var (
	nonAlphanumericRegex = regexp.MustCompile(`[^\p{L}\p{N}]+`)
	acronymRegex         = regexp.MustCompile(`([A-Z]+)([A-Z][a-z])`)
	camelCaseRegex       = regexp.MustCompile(`([a-z0-9])([A-Z])`)
)

// Default is the text analyzer used by the built-in "text" context type:
// camelCase/PascalCase splitting, lowercasing, and splitting on runs of
// non-alphanumeric characters.
type Default struct{}

// NewDefault returns the stock text analyzer.
func NewDefault() Default { return Default{} }

func (Default) Analyze(text string) []Token {
	words := tokenize(text)
	out := make([]Token, len(words))
	for i, w := range words {
		out[i] = Token{Word: w, Position: postings.Position(i)}
	}
	return out
}

func (Default) Normalize(term string) (string, error) {
	if strings.TrimSpace(term) == "" {
		return "", fmt.Errorf("analyzer: empty term")
	}
	words := tokenize(term)
	if len(words) == 0 {
		return "", fmt.Errorf("analyzer: term %q normalizes to nothing", term)
	}
	return strings.Join(words, " "), nil
}

func tokenize(text string) []string {
	processed := acronymRegex.ReplaceAllString(text, "$1 $2")
	processed = camelCaseRegex.ReplaceAllString(processed, "$1 $2")
	lower := strings.ToLower(processed)

	split := nonAlphanumericRegex.Split(lower, -1)
	out := make([]string, 0, len(split))
	for _, s := range split {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Keyword is the analyzer for the built-in "keyword" context type: the
// whole input is a single term, compared verbatim (case preserved, no
// splitting). Used for exact-match fields like identifiers or tags.
type Keyword struct{}

// NewKeyword returns the stock keyword analyzer.
func NewKeyword() Keyword { return Keyword{} }

func (Keyword) Analyze(text string) []Token {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}
	return []Token{{Word: trimmed, Position: 0}}
}

func (Keyword) Normalize(term string) (string, error) {
	trimmed := strings.TrimSpace(term)
	if trimmed == "" {
		return "", fmt.Errorf("analyzer: empty keyword term")
	}
	return trimmed, nil
}

var dateFormat = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Date is the analyzer for the built-in "date" context type: dates are
// stored and compared as ISO-8601 "YYYY-MM-DD" strings, which sort
// lexicographically in calendar order, making lookupRangeCx's plain string
// comparison correct without a separate numeric key encoding.
type Date struct{}

// NewDate returns the stock date analyzer.
func NewDate() Date { return Date{} }

func (Date) Analyze(text string) []Token {
	trimmed := strings.TrimSpace(text)
	if !dateFormat.MatchString(trimmed) {
		return nil
	}
	return []Token{{Word: trimmed, Position: 0}}
}

func (Date) Normalize(term string) (string, error) {
	trimmed := strings.TrimSpace(term)
	if !dateFormat.MatchString(trimmed) {
		return "", fmt.Errorf("analyzer: %q is not a YYYY-MM-DD date", term)
	}
	return trimmed, nil
}
