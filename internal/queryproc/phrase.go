package queryproc

import (
	"context"
	"strings"

	apperrors "github.com/gcbaptista/huntdex/internal/errors"

	"github.com/gcbaptista/huntdex/fuzzy"
	"github.com/gcbaptista/huntdex/intermediate"
	"github.com/gcbaptista/huntdex/ix"
	"github.com/gcbaptista/huntdex/postings"
	"github.com/gcbaptista/huntdex/query"
)

// evalPhrase implements the QPhrase rule: split on whitespace, look up the
// first word's postings, then iteratively filter by position shift — a
// DocId survives position p if, for every later word wₖ, p+k is among wₖ's
// positions in the same document.
func (p *Processor) evalPhrase(ctx context.Context, n query.Phrase, active []string, cfg Config) (intermediate.Intermediate, error) {
	if n.Case == query.CaseFuzzy {
		return p.evalFuzzyPhrase(ctx, n, active, cfg)
	}

	words := strings.Fields(n.Text)
	if len(words) == 0 {
		// boundary behavior: empty query string.
		return intermediate.Intermediate{}, nil
	}
	if len(words) == 1 {
		// boundary behavior: a single-word phrase degenerates to an exact
		// (non-prefix) word search.
		return p.evalExactWord(ctx, query.Word{Case: n.Case, Text: words[0]}, n.Text, active)
	}

	mode := ix.Case
	if n.Case == query.CaseInsensitive {
		mode = ix.NoCase
	}

	parts := make([]intermediate.Intermediate, 0, len(active))
	for _, cx := range active {
		if err := checkCancelled(ctx); err != nil {
			return nil, err
		}
		cs, ok := p.Schema.Get(cx)
		if !ok {
			return nil, apperrors.NotFound("query: context %q not found", cx)
		}

		normalized := make([]string, len(words))
		for i, w := range words {
			nw, err := normalize(cs, cx, w)
			if err != nil {
				return nil, err
			}
			normalized[i] = nw
		}

		survivors := p.exactOccurrences(cx, normalized[0], mode)
		for k := 1; k < len(normalized) && len(survivors) > 0; k++ {
			wk := p.exactOccurrences(cx, normalized[k], mode)
			survivors = shiftFilter(survivors, wk, k)
		}
		if len(survivors) == 0 {
			continue
		}

		rawWords := []intermediate.RawWord{{Word: n.Text, Occurrences: survivors}}
		parts = append(parts, intermediate.FromList([]string{n.Text}, cx, cs.EffectiveWeight(), rawWords))
	}
	return intermediate.Merges(parts), nil
}

// evalFuzzyPhrase treats the whole phrase text as a single fuzzy-expanded
// token, the way QWord's Fuzzy case does, then re-evaluates the phrase case-
// insensitively per variant.
func (p *Processor) evalFuzzyPhrase(ctx context.Context, n query.Phrase, active []string, cfg Config) (intermediate.Intermediate, error) {
	variants := []fuzzy.Variant{{Word: n.Text, Distance: 0}}
	if p.Fuzz != nil {
		variants = p.Fuzz.Set(cfg.Fuzzy, n.Text)
	}

	parts := make([]intermediate.Intermediate, 0, len(variants))
	for _, v := range variants {
		if err := checkCancelled(ctx); err != nil {
			return nil, err
		}
		part, err := p.evalPhrase(ctx, query.Phrase{Case: query.CaseInsensitive, Text: v.Word}, active, cfg)
		if err != nil {
			return nil, err
		}
		parts = append(parts, part)
	}
	return intermediate.Merges(parts), nil
}

// evalExactWord performs an exact (non-prefix) search for a single term,
// tagging the resulting Intermediate with displayText as the search term
// (used by single-word phrases, which keep the original phrase text as
// their WordInfo tag rather than the normalized word).
func (p *Processor) evalExactWord(ctx context.Context, n query.Word, displayText string, active []string) (intermediate.Intermediate, error) {
	mode := ix.Case
	if n.Case == query.CaseInsensitive {
		mode = ix.NoCase
	}

	parts := make([]intermediate.Intermediate, 0, len(active))
	for _, cx := range active {
		if err := checkCancelled(ctx); err != nil {
			return nil, err
		}
		cs, ok := p.Schema.Get(cx)
		if !ok {
			return nil, apperrors.NotFound("query: context %q not found", cx)
		}
		term, err := normalize(cs, cx, n.Text)
		if err != nil {
			return nil, err
		}

		entries := p.Index.SearchWithCx(cx, mode, term)
		if len(entries) == 0 {
			continue
		}
		parts = append(parts, intermediate.FromList([]string{displayText}, cx, cs.EffectiveWeight(), toRawWords(entries)))
	}
	return intermediate.Merges(parts), nil
}

// exactOccurrences unions the Occurrences of every entry an exact/no-case
// search returns for term within cx.
func (p *Processor) exactOccurrences(cx, term string, mode ix.SearchMode) postings.Occurrences {
	entries := p.Index.SearchWithCx(cx, mode, term)
	var out postings.Occurrences
	for _, e := range entries {
		out = postings.UnionOccurrences(out, e.Value)
	}
	return out
}

// shiftFilter keeps only the positions of survivors that have a matching
// occurrence of wk at a k-position offset in the same document.
func shiftFilter(survivors, wk postings.Occurrences, k int) postings.Occurrences {
	out := make(postings.Occurrences, len(survivors))
	for doc, positions := range survivors {
		wkPositions, ok := wk[doc]
		if !ok {
			continue
		}
		var valid postings.Positions
		for _, pos := range positions {
			if wkPositions.Member(pos + postings.Position(k)) {
				valid = append(valid, pos)
			}
		}
		if len(valid) > 0 {
			out[doc] = valid
		}
	}
	return out
}
