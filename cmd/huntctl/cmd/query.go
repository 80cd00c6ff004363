package cmd

import (
	"fmt"

	"github.com/gcbaptista/huntdex/query"
)

// parseCase maps a --case flag value to query.Case.
func parseCase(s string) (query.Case, error) {
	switch s {
	case "", "nocase":
		return query.CaseInsensitive, nil
	case "case":
		return query.CaseSensitive, nil
	case "fuzzy":
		return query.CaseFuzzy, nil
	default:
		return 0, fmt.Errorf("unknown --case %q (want case, nocase, or fuzzy)", s)
	}
}

// buildQuery turns the shared search/completion flags into a query.Query:
// a bare Word or Phrase, optionally restricted to a set of contexts.
func buildQuery(text string, phrase bool, caseFlag string, contexts []string) (query.Query, error) {
	c, err := parseCase(caseFlag)
	if err != nil {
		return nil, err
	}

	var q query.Query
	if phrase {
		q = query.Phrase{Case: c, Text: text}
	} else {
		q = query.Word{Case: c, Text: text}
	}
	if len(contexts) > 0 {
		q = query.Context{Contexts: contexts, Inner: q}
	}
	return q, nil
}
