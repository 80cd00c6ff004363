package ranker

import (
	"github.com/gcbaptista/huntdex/doctable"
	"github.com/gcbaptista/huntdex/ix"
	"github.com/gcbaptista/huntdex/model"
	"github.com/gcbaptista/huntdex/postings"
)

// IndexStats implements Stats directly against a context index snapshot
// and document table.
type IndexStats struct {
	Index *ix.ContextIndex[postings.Occurrences]
	Docs  *doctable.Table
}

func (s *IndexStats) TotalDocs() int { return s.Docs.Size() }

// DocumentFrequency counts the documents containing term across contexts,
// deduplicated (a term appearing in two of a document's contexts still
// counts once).
func (s *IndexStats) DocumentFrequency(term string, contexts []string) int {
	seen := make(map[postings.DocID]struct{})
	for _, cx := range contexts {
		for _, e := range s.Index.SearchWithCx(cx, ix.Case, term) {
			for doc := range e.Value {
				seen[doc] = struct{}{}
			}
		}
	}
	return len(seen)
}

// AverageDocLength averages DocLength across every document in the table.
func (s *IndexStats) AverageDocLength(contexts []string) float64 {
	all := s.Docs.ToMap()
	if len(all) == 0 {
		return 0
	}
	total := 0
	for _, doc := range all {
		total += s.DocLength(doc, contexts)
	}
	return float64(total) / float64(len(all))
}

// DocLength sums the word counts of doc's contexts fields.
func (s *IndexStats) DocLength(doc model.Document, contexts []string) int {
	total := 0
	for _, cx := range contexts {
		if v, ok := doc[cx]; ok {
			total += fieldLength(v)
		}
	}
	return total
}

// fieldLength measures a model.Document field's contribution to document
// length for the BM25 length-normalization term.
func fieldLength(v interface{}) int {
	switch val := v.(type) {
	case string:
		return wordCount(val)
	case []string:
		total := 0
		for _, s := range val {
			total += wordCount(s)
		}
		return total
	case []interface{}:
		total := 0
		for _, item := range val {
			if s, ok := item.(string); ok {
				total += wordCount(s)
			}
		}
		return total
	default:
		return 0
	}
}

func wordCount(s string) int {
	count := 0
	inWord := false
	for _, r := range s {
		switch r {
		case ' ', '\t', '\n', '\r':
			inWord = false
		default:
			if !inWord {
				count++
				inWord = true
			}
		}
	}
	return count
}
