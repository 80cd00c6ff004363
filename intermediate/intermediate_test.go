package intermediate

import (
	"testing"

	"github.com/gcbaptista/huntdex/postings"
)

func doc(id uint32, cx, word string, positions ...postings.Position) Intermediate {
	return Intermediate{
		postings.DocID(id): DocEntry{
			Contexts: Contexts{
				cx: Words{
					word: WordEntry{
						Info:      WordInfo{Terms: []string{word}, Score: 0},
						Positions: postings.NewPositions(positions...),
					},
				},
			},
			Boost: Identity,
		},
	}
}

func TestUnionIsCommutative(t *testing.T) {
	a := doc(1, "title", "red", 0)
	b := doc(1, "title", "blue", 2)

	ab := Union(a, b)
	ba := Union(b, a)

	if len(ab) != len(ba) || len(ab[1].Contexts["title"]) != 2 {
		t.Fatalf("Union not commutative or lost a word: ab=%#v ba=%#v", ab, ba)
	}
	if len(ba[1].Contexts["title"]) != 2 {
		t.Fatalf("expected both words present after commuted union")
	}
}

func TestUnionIsAssociative(t *testing.T) {
	a := doc(1, "title", "red", 0)
	b := doc(1, "title", "blue", 1)
	c := doc(1, "body", "car", 2)

	left := Union(Union(a, b), c)
	right := Union(a, Union(b, c))

	if len(left) != len(right) {
		t.Fatalf("associativity broken at top level")
	}
	if len(left[1].Contexts) != len(right[1].Contexts) {
		t.Fatalf("associativity broken in contexts")
	}
}

func TestUnionIsIdempotent(t *testing.T) {
	a := doc(1, "title", "red", 0)
	got := Union(a, a)
	if len(got[1].Contexts["title"]["red"].Positions) != 1 {
		t.Fatalf("expected idempotent union to not duplicate positions, got %v", got[1].Contexts["title"]["red"].Positions)
	}
	if got[1].Boost != Identity*Identity {
		t.Fatalf("expected boost %v, got %v", Identity*Identity, got[1].Boost)
	}
}

func TestUnionMultipliesBoost(t *testing.T) {
	a := Intermediate{1: DocEntry{Contexts: Contexts{"title": Words{"x": WordEntry{Positions: postings.NewPositions(0)}}}, Boost: 2.0}}
	b := Intermediate{1: DocEntry{Contexts: Contexts{"title": Words{"x": WordEntry{Positions: postings.NewPositions(0)}}}, Boost: 3.0}}

	got := Union(a, b)
	if got[1].Boost != 6.0 {
		t.Errorf("Union boost = %v, want 6.0", got[1].Boost)
	}
}

func TestMergeKeepsLeftBoost(t *testing.T) {
	a := Intermediate{1: DocEntry{Contexts: Contexts{"title": Words{"x": WordEntry{}}}, Boost: 2.0}}
	b := Intermediate{1: DocEntry{Contexts: Contexts{"body": Words{"y": WordEntry{}}}, Boost: 99.0}}

	got := Merge(a, b)
	if got[1].Boost != 2.0 {
		t.Errorf("Merge boost = %v, want left's 2.0", got[1].Boost)
	}
	if len(got[1].Contexts) != 2 {
		t.Errorf("expected both contexts present after merge, got %#v", got[1].Contexts)
	}
}

func TestIntersectionOnlyKeepsCommonDocs(t *testing.T) {
	a := Intermediate{1: DocEntry{Boost: Identity}, 2: DocEntry{Boost: Identity}}
	b := Intermediate{2: DocEntry{Boost: Identity}, 3: DocEntry{Boost: Identity}}

	got := Intersection(a, b)
	if len(got) != 1 {
		t.Fatalf("expected exactly one common doc, got %d", len(got))
	}
	if _, ok := got[2]; !ok {
		t.Errorf("expected doc 2 in intersection, got %#v", got)
	}
}

func TestDifferenceRemovesMatchingDocs(t *testing.T) {
	a := Intermediate{1: DocEntry{Boost: Identity}, 2: DocEntry{Boost: Identity}}
	b := Intermediate{2: DocEntry{Boost: Identity}}

	got := Difference(a, b)
	if len(got) != 1 {
		t.Fatalf("expected one doc remaining, got %d", len(got))
	}
	if _, ok := got[1]; !ok {
		t.Errorf("expected doc 1 to survive difference, got %#v", got)
	}
}

func TestUnionsFoldsFromEmpty(t *testing.T) {
	a := doc(1, "title", "red", 0)
	b := doc(2, "title", "blue", 0)
	got := Unions([]Intermediate{a, b})
	if len(got) != 2 {
		t.Errorf("expected both docs present, got %d", len(got))
	}
}

func TestUnionsDocLimitedStopsAtThreshold(t *testing.T) {
	parts := []Intermediate{
		doc(1, "title", "a", 0),
		doc(2, "title", "b", 0),
		doc(3, "title", "c", 0),
	}
	got := UnionsDocLimited(2, parts)
	if len(got) < 2 {
		t.Fatalf("expected at least 2 docs once threshold reached, got %d", len(got))
	}
}

func TestUnionsDocLimitedFullFoldWhenNeverReached(t *testing.T) {
	parts := []Intermediate{
		doc(1, "title", "a", 0),
		doc(2, "title", "b", 0),
	}
	got := UnionsDocLimited(10, parts)
	if len(got) != 2 {
		t.Errorf("expected full fold of %d docs, got %d", 2, len(got))
	}
}

func TestFromListFirstWordWinsPerDoc(t *testing.T) {
	raw := []RawWord{
		{Word: "red", Occurrences: postings.Occurrences{1: postings.NewPositions(0)}},
		{Word: "reds", Occurrences: postings.Occurrences{1: postings.NewPositions(5)}},
	}
	got := FromList([]string{"red"}, "title", 1.5, raw)
	entry, ok := got[1]
	if !ok {
		t.Fatalf("expected doc 1 present")
	}
	if entry.Boost != 1.5 {
		t.Errorf("Boost = %v, want 1.5", entry.Boost)
	}
	words := entry.Contexts["title"]
	if len(words) != 1 {
		t.Fatalf("expected exactly one word to win, got %#v", words)
	}
	if _, ok := words["red"]; !ok {
		t.Errorf("expected first word 'red' to win, got %#v", words)
	}
}

func TestFromListCxsMergesAcrossContexts(t *testing.T) {
	pairs := []CxRawResult{
		{Context: "title", Weight: 2.0, Terms: []string{"x"}, Result: []RawWord{
			{Word: "x", Occurrences: postings.Occurrences{1: postings.NewPositions(0)}},
		}},
		{Context: "body", Weight: 1.0, Terms: []string{"x"}, Result: []RawWord{
			{Word: "x", Occurrences: postings.Occurrences{1: postings.NewPositions(3)}},
		}},
	}
	got := FromListCxs(pairs)
	entry, ok := got[1]
	if !ok {
		t.Fatalf("expected doc 1 present")
	}
	if len(entry.Contexts) != 2 {
		t.Fatalf("expected both contexts, got %#v", entry.Contexts)
	}
	// Merge keeps the left (first) operand's boost.
	if entry.Boost != 2.0 {
		t.Errorf("Boost = %v, want 2.0 (left operand wins under Merge)", entry.Boost)
	}
}
