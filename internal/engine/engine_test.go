package engine

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	apperrors "github.com/gcbaptista/huntdex/internal/errors"
	"github.com/gcbaptista/huntdex/model"
	"github.com/gcbaptista/huntdex/query"
	"github.com/gcbaptista/huntdex/schema"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e := New()
	t.Cleanup(e.Close)

	if err := e.InsertContext("title", schema.ContextSchema{Type: schema.ContextType{Name: schema.TypeText}, Weight: 1.0, Default: true}); err != nil {
		t.Fatalf("InsertContext: %v", err)
	}
	return e
}

func TestInsertThenSearchFindsDocument(t *testing.T) {
	e := newTestEngine(t)

	if err := e.Insert(model.Document{"uri": "doc://1", "title": "the quick fox"}); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	res, err := e.Search(context.Background(), query.Word{Case: query.CaseInsensitive, Text: "quick"}, 0, 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(res.Hits) != 1 || res.Hits[0].URI != "doc://1" {
		t.Fatalf("expected a single hit for doc://1, got %+v", res.Hits)
	}
}

func TestInsertDuplicateURIConflicts(t *testing.T) {
	e := newTestEngine(t)
	doc := model.Document{"uri": "doc://1", "title": "hello"}
	if err := e.Insert(doc); err != nil {
		t.Fatalf("first insert: %v", err)
	}
	if err := e.Insert(doc); err == nil {
		t.Fatalf("expected a conflict on duplicate insert")
	}
}

func TestUpdateMissingDocumentConflicts(t *testing.T) {
	e := newTestEngine(t)
	if err := e.Update(model.Document{"uri": "doc://missing", "title": "x"}); err == nil {
		t.Fatalf("expected a conflict updating a document that does not exist")
	}
}

func TestUpdateReplacesSearchableContent(t *testing.T) {
	e := newTestEngine(t)
	if err := e.Insert(model.Document{"uri": "doc://1", "title": "alpha"}); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if err := e.Update(model.Document{"uri": "doc://1", "title": "beta"}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	if res, _ := e.Search(context.Background(), query.Word{Case: query.CaseInsensitive, Text: "alpha"}, 0, 10); len(res.Hits) != 0 {
		t.Fatalf("expected no hits for the old content, got %+v", res.Hits)
	}
	if res, _ := e.Search(context.Background(), query.Word{Case: query.CaseInsensitive, Text: "beta"}, 0, 10); len(res.Hits) != 1 {
		t.Fatalf("expected a hit for the new content, got %+v", res.Hits)
	}
}

func TestBatchDeleteIgnoresMissingURIs(t *testing.T) {
	e := newTestEngine(t)
	if err := e.Insert(model.Document{"uri": "doc://1", "title": "alpha"}); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if err := e.BatchDelete([]string{"doc://1", "doc://does-not-exist"}); err != nil {
		t.Fatalf("BatchDelete: %v", err)
	}
	if res, _ := e.Search(context.Background(), query.Word{Case: query.CaseInsensitive, Text: "alpha"}, 0, 10); len(res.Hits) != 0 {
		t.Fatalf("expected no hits after delete, got %+v", res.Hits)
	}
}

func TestInsertContextUnknownTypeFails(t *testing.T) {
	e := New()
	t.Cleanup(e.Close)
	err := e.InsertContext("bogus", schema.ContextSchema{Type: schema.ContextType{Name: "not-a-type"}})
	if err == nil {
		t.Fatalf("expected an error for an unregistered context type")
	}
}

func TestInsertContextDuplicateConflicts(t *testing.T) {
	e := newTestEngine(t)
	err := e.InsertContext("title", schema.ContextSchema{Type: schema.ContextType{Name: schema.TypeText}})
	if err == nil {
		t.Fatalf("expected a conflict inserting a context that already exists")
	}
}

func TestDeleteContextIsIdempotent(t *testing.T) {
	e := newTestEngine(t)
	if err := e.DeleteContext("title"); err != nil {
		t.Fatalf("first delete: %v", err)
	}
	if err := e.DeleteContext("title"); err != nil {
		t.Fatalf("second delete should be a no-op, got: %v", err)
	}
}

func TestSequenceAbortsOnFirstError(t *testing.T) {
	e := newTestEngine(t)
	seq := Sequence{Commands: []Command{
		Insert{Document: model.Document{"uri": "doc://1", "title": "alpha"}},
		Insert{Document: model.Document{"uri": "doc://1", "title": "alpha"}}, // duplicate, fails
		Insert{Document: model.Document{"uri": "doc://2", "title": "beta"}},
	}}

	if _, err := e.Execute(context.Background(), seq); err == nil {
		t.Fatalf("expected the sequence to fail on its second child")
	}

	if res, _ := e.Search(context.Background(), query.Word{Case: query.CaseInsensitive, Text: "beta"}, 0, 10); len(res.Hits) != 0 {
		t.Fatalf("child after the failing one must not have applied, got %+v", res.Hits)
	}
}

func TestStoreIxLoadIxRoundTrips(t *testing.T) {
	e := newTestEngine(t)
	if err := e.Insert(model.Document{"uri": "doc://1", "title": "roundtrip content"}); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	path := filepath.Join(t.TempDir(), "ix.gob")
	if err := e.StoreIx(path); err != nil {
		t.Fatalf("StoreIx: %v", err)
	}

	e2 := New()
	t.Cleanup(e2.Close)
	if err := e2.LoadIx(path); err != nil {
		t.Fatalf("LoadIx: %v", err)
	}

	res, err := e2.Search(context.Background(), query.Word{Case: query.CaseInsensitive, Text: "roundtrip"}, 0, 10)
	if err != nil {
		t.Fatalf("Search after load: %v", err)
	}
	if len(res.Hits) != 1 || res.Hits[0].URI != "doc://1" {
		t.Fatalf("expected the loaded indexer to find doc://1, got %+v", res.Hits)
	}
}

func TestLoadIxMissingFileIsIOError(t *testing.T) {
	e := New()
	t.Cleanup(e.Close)
	path := filepath.Join(t.TempDir(), "does-not-exist.gob")
	err := e.LoadIx(path)
	if !apperrors.Is(err, apperrors.ErrIO) {
		t.Fatalf("expected an IO error loading a nonexistent path, got %v", err)
	}
	if _, statErr := os.Stat(path); statErr == nil {
		t.Fatalf("LoadIx must not create the file it failed to read")
	}
}

func TestStatusReportsDocumentAndContextCounts(t *testing.T) {
	e := newTestEngine(t)
	if err := e.Insert(model.Document{"uri": "doc://1", "title": "alpha"}); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	st := e.Status()
	if st.Documents != 1 {
		t.Errorf("Documents = %d, want 1", st.Documents)
	}
	if len(st.Contexts) != 1 || st.Contexts[0] != "title" {
		t.Errorf("Contexts = %v, want [title]", st.Contexts)
	}
}
