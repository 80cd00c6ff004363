// Package ranker implements the scoring stage that runs after
// materialization, mutating DocInfo.Score in place. BM25
// below computes a standard term-frequency/inverse-document-frequency
// formula over materialize.DocHits, fed by a Stats source backed by the
// context index and document table.
package ranker

import (
	"math"

	"github.com/gcbaptista/huntdex/internal/materialize"
	"github.com/gcbaptista/huntdex/model"
)

// Ranker mutates the Score field of every hit in place. BM25 below is one
// concrete implementation behind this interface, not the only one a caller
// could supply.
type Ranker interface {
	Rank(hits materialize.DocHits, contexts []string)
}

// Stats supplies the corpus-wide statistics BM25 needs: document frequency
// of a term (across a set of contexts) and the total document count.
type Stats interface {
	DocumentFrequency(term string, contexts []string) int
	TotalDocs() int
	AverageDocLength(contexts []string) float64
	DocLength(doc model.Document, contexts []string) int
}

// BM25 computes Okapi BM25 scores: IDF = log(N/df), combined with a
// term-frequency component normalized by document length against the
// corpus average.
type BM25 struct {
	K1 float64
	B  float64

	Stats Stats
}

// NewBM25 returns a BM25 ranker with the conventional tuning constants
// (k1 = 1.2, b = 0.75) and the given Stats source.
func NewBM25(stats Stats) *BM25 {
	return &BM25{K1: 1.2, B: 0.75, Stats: stats}
}

// Rank scores every hit by summing, over every context/word match it has, a
// BM25 contribution weighted by the document's Boost.
func (r *BM25) Rank(hits materialize.DocHits, contexts []string) {
	totalDocs := float64(r.Stats.TotalDocs())
	if totalDocs == 0 {
		return
	}
	avgLen := r.Stats.AverageDocLength(contexts)
	if avgLen == 0 {
		avgLen = 1
	}

	for _, info := range hits {
		docLen := float64(r.Stats.DocLength(info.Document, contexts))

		var score float64
		for _, words := range info.Contexts {
			for word, positions := range words {
				tf := float64(len(positions))
				if tf == 0 {
					continue
				}
				idf := r.idf(word, contexts, totalDocs)
				bm25tf := (tf * (r.K1 + 1)) / (tf + r.K1*(1-r.B+r.B*(docLen/avgLen)))
				score += idf * bm25tf
			}
		}
		info.Score = score * info.Boost
	}
}

func (r *BM25) idf(term string, contexts []string, totalDocs float64) float64 {
	df := float64(r.Stats.DocumentFrequency(term, contexts))
	if df == 0 {
		return 0
	}
	return math.Log(totalDocs / df)
}
