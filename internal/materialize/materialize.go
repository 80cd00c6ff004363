// Package materialize joins a final intermediate.Intermediate against the
// document table to produce DocHits and WordHits.
package materialize

import (
	"sort"

	"github.com/gcbaptista/huntdex/doctable"
	"github.com/gcbaptista/huntdex/intermediate"
	"github.com/gcbaptista/huntdex/model"
	"github.com/gcbaptista/huntdex/postings"
)

// DocInfo is one document's materialized search result: its stored payload, its
// Boost, and a score initialized to zero, mutated later by an external ranker.
type DocInfo struct {
	Document model.Document
	Boost    float64
	Score    float64

	// Contexts maps Context -> Word -> Positions for this document, the
	// per-document match detail a ranker or highlighter consults.
	Contexts map[string]map[string]postings.Positions
}

// DocHits maps each surviving DocId to its DocInfo.
type DocHits map[postings.DocID]*DocInfo

// Materialize builds DocHits from a final Intermediate and the document table:
// each surviving DocId gets its document (an empty one if the document table no
// longer has it — e.g. concurrently deleted between index read and
// materialization) and its accumulated context/word positions.
func Materialize(im intermediate.Intermediate, docs *doctable.Table) DocHits {
	out := make(DocHits, len(im))
	for id, entry := range im {
		doc, ok := docs.Lookup(id)
		if !ok {
			doc = model.Document{}
		}

		contexts := make(map[string]map[string]postings.Positions, len(entry.Contexts))
		for cx, words := range entry.Contexts {
			wm := make(map[string]postings.Positions, len(words))
			for w, we := range words {
				wm[w] = we.Positions
			}
			contexts[cx] = wm
		}

		out[id] = &DocInfo{
			Document: doc,
			Boost:    entry.Boost,
			Score:    0.0,
			Contexts: contexts,
		}
	}
	return out
}

// WordInfo is one word's materialized detail: the search terms that produced
// it, a score initialized to zero, and the documents/positions it matched in,
// across contexts.
type WordInfo struct {
	Terms []string
	Score float64

	// Contexts maps Context -> DocId -> Positions.
	Contexts map[string]map[postings.DocID]postings.Positions
}

// WordHits maps each matched word to its WordInfo.
type WordHits map[string]*WordInfo

// MaterializeWords inverts a final Intermediate into WordHits: Word ->
// (WordInfo, Context -> DocId -> Positions). Entries whose only search term is
// the empty string are excluded. When the same word appears across multiple
// documents, WordInfos combine (terms union, scores summed) and context maps
// combine (position union per doc).
func MaterializeWords(im intermediate.Intermediate) WordHits {
	out := make(WordHits)
	for id, entry := range im {
		for cx, words := range entry.Contexts {
			for w, we := range words {
				if isEmptyTermOnly(we.Info.Terms) {
					continue
				}
				wi, ok := out[w]
				if !ok {
					wi = &WordInfo{Contexts: make(map[string]map[postings.DocID]postings.Positions)}
					out[w] = wi
				}
				wi.Terms = unionTerms(wi.Terms, we.Info.Terms)
				wi.Score += we.Info.Score

				docMap, ok := wi.Contexts[cx]
				if !ok {
					docMap = make(map[postings.DocID]postings.Positions)
					wi.Contexts[cx] = docMap
				}
				docMap[id] = postings.Union(docMap[id], we.Positions)
			}
		}
	}
	return out
}

func isEmptyTermOnly(terms []string) bool {
	return len(terms) == 1 && terms[0] == ""
}

func unionTerms(a, b []string) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, t := range append(append([]string{}, a...), b...) {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// SortedDocIDs returns the DocIds of hits in ascending order, a stable
// iteration order for pagination before an external ranker reorders by
// score.
func (hits DocHits) SortedDocIDs() []postings.DocID {
	out := make([]postings.DocID, 0, len(hits))
	for id := range hits {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
