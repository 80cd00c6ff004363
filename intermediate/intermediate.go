// Package intermediate implements the intermediate-result algebra: the
// per-query combinator domain query processors build up before
// materializing against the document table.
package intermediate

import "github.com/gcbaptista/huntdex/postings"

// WordInfo carries the search terms that produced a word match and an additive
// score, initialized to zero and mutated later by the ranker.
type WordInfo struct {
	Terms []string
	Score float64
}

// mergeWordInfo unions Terms (deduplicated) and sums Score.
func mergeWordInfo(a, b WordInfo) WordInfo {
	seen := make(map[string]struct{}, len(a.Terms)+len(b.Terms))
	terms := make([]string, 0, len(a.Terms)+len(b.Terms))
	for _, t := range append(append([]string{}, a.Terms...), b.Terms...) {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		terms = append(terms, t)
	}
	return WordInfo{Terms: terms, Score: a.Score + b.Score}
}

// WordEntry is one word's contribution within a context: the WordInfo plus
// the positions at which the word matched.
type WordEntry struct {
	Info      WordInfo
	Positions postings.Positions
}

func mergeWordEntry(a, b WordEntry) WordEntry {
	return WordEntry{
		Info:      mergeWordInfo(a.Info, b.Info),
		Positions: postings.Union(a.Positions, b.Positions),
	}
}

// Words maps a matched word to its entry within a single context.
type Words map[string]WordEntry

func unionWords(a, b Words) Words {
	if len(a) == 0 {
		return cloneWords(b)
	}
	if len(b) == 0 {
		return cloneWords(a)
	}
	out := make(Words, len(a)+len(b))
	for w, e := range a {
		out[w] = e
	}
	for w, e := range b {
		if existing, ok := out[w]; ok {
			out[w] = mergeWordEntry(existing, e)
		} else {
			out[w] = e
		}
	}
	return out
}

func cloneWords(w Words) Words {
	if w == nil {
		return nil
	}
	out := make(Words, len(w))
	for k, v := range w {
		out[k] = v
	}
	return out
}

// Contexts maps a context name to its matched words.
type Contexts map[string]Words

func unionContexts(a, b Contexts) Contexts {
	if len(a) == 0 {
		return cloneContexts(b)
	}
	if len(b) == 0 {
		return cloneContexts(a)
	}
	out := make(Contexts, len(a)+len(b))
	for cx, words := range a {
		out[cx] = words
	}
	for cx, words := range b {
		if existing, ok := out[cx]; ok {
			out[cx] = unionWords(existing, words)
		} else {
			out[cx] = words
		}
	}
	return out
}

func cloneContexts(c Contexts) Contexts {
	if c == nil {
		return nil
	}
	out := make(Contexts, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

// DocEntry is one document's accumulated match state: every context/word that
// matched, plus the document's overall Boost. Boost is strictly positive; its
// identity is 1.0.
type DocEntry struct {
	Contexts Contexts
	Boost    float64
}

// Identity is the neutral Boost value.
const Identity = 1.0

// Intermediate is the per-query combinator domain.
type Intermediate map[postings.DocID]DocEntry

// boostOp combines the boosts of two DocEntrys that both contain the same
// DocID.
type boostOp func(left, right float64) float64

func multiplyBoost(left, right float64) float64 { return left * right }
func leftBoost(left, _ float64) float64         { return left }

func combine(a, b DocEntry, op boostOp) DocEntry {
	return DocEntry{
		Contexts: unionContexts(a.Contexts, b.Contexts),
		Boost:    op(a.Boost, b.Boost),
	}
}

// Union combines two Intermediates: per DocId, context maps union, word entries
// merge, and boosts multiply.
func Union(a, b Intermediate) Intermediate {
	return combineMaps(a, b, multiplyBoost, true)
}

// Merge is like Union, except when a DocId is present in both operands the
// right-hand Boost is treated as the identity rather than re-applied — used
// when folding per-context results of a single query term, where the user's
// boost must not be multiplied in once per context.
func Merge(a, b Intermediate) Intermediate {
	return combineMaps(a, b, leftBoost, true)
}

// Intersection combines two Intermediates using the same per-DocId combine as
// Union, but only for DocIds present in both operands.
func Intersection(a, b Intermediate) Intermediate {
	return combineMaps(a, b, multiplyBoost, false)
}

// combineMaps implements the shared skeleton of Union/Merge/Intersection:
// keepUnmatched controls whether a DocId present in only one operand is
// carried through (Union/Merge) or dropped (Intersection).
func combineMaps(a, b Intermediate, op boostOp, keepUnmatched bool) Intermediate {
	out := make(Intermediate, len(a)+len(b))
	for id, ea := range a {
		if eb, ok := b[id]; ok {
			out[id] = combine(ea, eb, op)
		} else if keepUnmatched {
			out[id] = ea
		}
	}
	if keepUnmatched {
		for id, eb := range b {
			if _, already := out[id]; already {
				continue
			}
			if _, inA := a[id]; inA {
				continue
			}
			out[id] = eb
		}
	}
	return out
}

// Difference returns the DocIds of a not present in b, with values from a
// unchanged.
func Difference(a, b Intermediate) Intermediate {
	out := make(Intermediate, len(a))
	for id, e := range a {
		if _, ok := b[id]; ok {
			continue
		}
		out[id] = e
	}
	return out
}

// Unions left-folds Union over xs, starting from the empty Intermediate.
func Unions(xs []Intermediate) Intermediate {
	out := Intermediate{}
	for _, x := range xs {
		out = Union(out, x)
	}
	return out
}

// Merges left-folds Merge over xs, starting from the empty Intermediate.
func Merges(xs []Intermediate) Intermediate {
	out := Intermediate{}
	for _, x := range xs {
		out = Merge(out, x)
	}
	return out
}

// UnionsDocLimited folds Union over xs via a running scan, assuming xs is
// ordered so earlier elements are "better", and returns the first prefix whose
// accumulated document count reaches n, or the full fold if that threshold is
// never reached. n <= 0 disables the limit (full fold).
func UnionsDocLimited(n int, xs []Intermediate) Intermediate {
	return foldDocLimited(n, xs, Union)
}

// MergesDocLimited is the Merge analog of UnionsDocLimited.
func MergesDocLimited(n int, xs []Intermediate) Intermediate {
	return foldDocLimited(n, xs, Merge)
}

func foldDocLimited(n int, xs []Intermediate, op func(a, b Intermediate) Intermediate) Intermediate {
	out := Intermediate{}
	if n <= 0 {
		for _, x := range xs {
			out = op(out, x)
		}
		return out
	}
	for _, x := range xs {
		out = op(out, x)
		if len(out) >= n {
			return out
		}
	}
	return out
}

// ScaleBoost multiplies every document's Boost by factor, leaving contexts
// untouched.
func ScaleBoost(in Intermediate, factor float64) Intermediate {
	out := make(Intermediate, len(in))
	for id, e := range in {
		out[id] = DocEntry{Contexts: e.Contexts, Boost: e.Boost * factor}
	}
	return out
}

// FromList constructs an Intermediate for a single term + context from the raw
// posting result of a term-index search: [(Word, Occurrences)]. Each document
// contributes a single-word entry (WordInfo(terms, 0.0), positions), tagged
// with context, and with the context's schema weight as the document's Boost.
// When the same DocId appears under multiple words of rawResult, the first word
// for that DocId wins — an optimization documented as a precondition: callers
// must not rely on later-word data for a DocId already claimed by an earlier
// word.
func FromList(terms []string, context string, weight float64, rawResult []RawWord) Intermediate {
	out := make(Intermediate, len(rawResult))
	for _, rw := range rawResult {
		for doc, positions := range rw.Occurrences {
			if positions.Len() == 0 {
				continue
			}
			if _, claimed := out[doc]; claimed {
				continue // first word wins
			}
			out[doc] = DocEntry{
				Contexts: Contexts{
					context: Words{
						rw.Word: WordEntry{
							Info:      WordInfo{Terms: append([]string(nil), terms...), Score: 0.0},
							Positions: positions.Clone(),
						},
					},
				},
				Boost: weight,
			}
		}
	}
	return out
}

// RawWord is one element of a term index's raw search result: a matched word
// and its occurrences.
type RawWord struct {
	Word        string
	Occurrences postings.Occurrences
}

// CxRawResult pairs a context with the raw result a search within that
// context produced, the input to FromListCxs.
type CxRawResult struct {
	Context string
	Weight  float64
	Terms   []string
	Result  []RawWord
}

// FromListCxs merges FromList applied to each (context, rawResult) pair.
func FromListCxs(pairs []CxRawResult) Intermediate {
	parts := make([]Intermediate, 0, len(pairs))
	for _, p := range pairs {
		parts = append(parts, FromList(p.Terms, p.Context, p.Weight, p.Result))
	}
	return Merges(parts)
}
