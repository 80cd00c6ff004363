package ranker

import (
	"testing"

	"github.com/gcbaptista/huntdex/doctable"
	"github.com/gcbaptista/huntdex/internal/materialize"
	"github.com/gcbaptista/huntdex/ix"
	"github.com/gcbaptista/huntdex/model"
	"github.com/gcbaptista/huntdex/postings"
)

func TestBM25ScoresRarerTermsHigher(t *testing.T) {
	docs := doctable.New()
	idA, _ := docs.Insert("id://a", model.Document{"content": "the rare unicorn"})
	idB, _ := docs.Insert("id://b", model.Document{"content": "the common cat"})
	idC, _ := docs.Insert("id://c", model.Document{"content": "the common dog"})

	index := ix.NewContextIndex(func(string) ix.TermIndex[string, postings.Occurrences] {
		return ix.NewStringIndex[postings.Occurrences]()
	})
	index.InsertContext("content", postings.UnionOccurrences, []ix.Entry[string, postings.Occurrences]{
		{Key: "the", Value: postings.Occurrences{idA: postings.NewPositions(0), idB: postings.NewPositions(0), idC: postings.NewPositions(0)}},
		{Key: "rare", Value: postings.Occurrences{idA: postings.NewPositions(1)}},
		{Key: "common", Value: postings.Occurrences{idB: postings.NewPositions(1), idC: postings.NewPositions(1)}},
	})

	stats := &IndexStats{Index: index, Docs: docs}
	r := NewBM25(stats)

	hits := materialize.DocHits{
		idA: &materialize.DocInfo{
			Document: model.Document{"content": "the rare unicorn"},
			Boost:    1.0,
			Contexts: map[string]map[string]postings.Positions{
				"content": {"rare": postings.NewPositions(1)},
			},
		},
		idB: &materialize.DocInfo{
			Document: model.Document{"content": "the common cat"},
			Boost:    1.0,
			Contexts: map[string]map[string]postings.Positions{
				"content": {"common": postings.NewPositions(1)},
			},
		},
	}

	r.Rank(hits, []string{"content"})

	if hits[idA].Score <= hits[idB].Score {
		t.Errorf("expected rarer term 'rare' (df=1) to score higher than 'common' (df=2): rare=%v common=%v",
			hits[idA].Score, hits[idB].Score)
	}
}

func TestBM25ScalesByBoost(t *testing.T) {
	docs := doctable.New()
	id, _ := docs.Insert("id://a", model.Document{"content": "x"})
	docs.Insert("id://b", model.Document{"content": "y"})

	index := ix.NewContextIndex(func(string) ix.TermIndex[string, postings.Occurrences] {
		return ix.NewStringIndex[postings.Occurrences]()
	})
	index.InsertContext("content", postings.UnionOccurrences, []ix.Entry[string, postings.Occurrences]{
		{Key: "x", Value: postings.Occurrences{id: postings.NewPositions(0)}},
	})

	stats := &IndexStats{Index: index, Docs: docs}
	r := NewBM25(stats)

	boosted := materialize.DocHits{
		id: &materialize.DocInfo{
			Document: model.Document{"content": "x"},
			Boost:    3.0,
			Contexts: map[string]map[string]postings.Positions{"content": {"x": postings.NewPositions(0)}},
		},
	}
	unboosted := materialize.DocHits{
		id: &materialize.DocInfo{
			Document: model.Document{"content": "x"},
			Boost:    1.0,
			Contexts: map[string]map[string]postings.Positions{"content": {"x": postings.NewPositions(0)}},
		},
	}

	r.Rank(boosted, []string{"content"})
	r.Rank(unboosted, []string{"content"})

	if boosted[id].Score <= unboosted[id].Score {
		t.Errorf("expected boosted score (%v) > unboosted score (%v)", boosted[id].Score, unboosted[id].Score)
	}
}
