package queryproc

import (
	"sort"

	"github.com/gcbaptista/huntdex/intermediate"
)

// limitRaw applies word/doc limiting, in order, to a raw result. docLimit
// and wordLimit are both zero-disabled.
func limitRaw(raw []intermediate.RawWord, docLimit, wordLimit int) []intermediate.RawWord {
	out := applyDocLimit(raw, docLimit)
	out = applyWordLimit(out, wordLimit)
	return out
}

// applyDocLimit walks raw, accumulating the sum of occurrence-set sizes, and
// stops once that sum reaches docLimit — including the element that crosses the
// threshold. Relies on the convention that shorter/closer matches appear first
// in raw.
func applyDocLimit(raw []intermediate.RawWord, docLimit int) []intermediate.RawWord {
	if docLimit <= 0 {
		return raw
	}
	sum := 0
	for i, rw := range raw {
		sum += len(rw.Occurrences)
		if sum >= docLimit {
			return raw[:i+1]
		}
	}
	return raw
}

// applyWordLimit keeps only the wordLimit rarest words (by occurrence count,
// ascending) when raw has more than wordLimit entries: a cheap approximation
// of rarity by ascending size(Occurrences), not an IDF computation.
func applyWordLimit(raw []intermediate.RawWord, wordLimit int) []intermediate.RawWord {
	if wordLimit <= 0 || len(raw) <= wordLimit {
		return raw
	}
	scored := make([]intermediate.RawWord, len(raw))
	copy(scored, raw)
	sort.SliceStable(scored, func(i, j int) bool {
		return len(scored[i].Occurrences) < len(scored[j].Occurrences)
	})
	return scored[:wordLimit]
}
