// Package ingest turns a model.Document into per-context posting-list
// entries at write time, the indexing-side counterpart to internal/
// queryproc's read-side term handling. Per-field analysis dispatches
// through schema.ContextSchema/analyzer.Analyzer; BulkTokenize runs that
// dispatch over many documents concurrently with a worker pool.
package ingest

import (
	"runtime"
	"sync"

	"github.com/gcbaptista/huntdex/analyzer"
	apperrors "github.com/gcbaptista/huntdex/internal/errors"
	"github.com/gcbaptista/huntdex/ix"
	"github.com/gcbaptista/huntdex/model"
	"github.com/gcbaptista/huntdex/postings"
	"github.com/gcbaptista/huntdex/schema"
)

// ContextEntries is one context's posting-list entries for a single
// document, ready for ix.ContextIndex.InsertContext.
type ContextEntries struct {
	Context string
	Entries []ix.Entry[string, postings.Occurrences]
}

// Document analyzes doc's fields against sch: one ContextEntries per context
// the schema names that also has a field on doc. Every key in doc other than
// model.URIField must name a registered context, or the whole document is
// rejected — a document can't silently mention a context the schema doesn't
// know about.
func Document(id postings.DocID, doc model.Document, sch *schema.Schema) ([]ContextEntries, error) {
	for field := range doc {
		if field == model.URIField {
			continue
		}
		if !sch.Has(field) {
			return nil, apperrors.Conflict("ingest: context %q does not exist", field)
		}
	}

	var out []ContextEntries
	for _, cx := range sch.Contexts() {
		cs, _ := sch.Get(cx)
		raw, ok := doc[cx]
		if !ok {
			continue
		}
		words, err := analyzeField(cs.Analyzer, raw)
		if err != nil {
			return nil, apperrors.InvalidInput("ingest: context %q: %v", cx, err)
		}
		if len(words) == 0 {
			continue
		}
		out = append(out, ContextEntries{Context: cx, Entries: toEntries(id, words)})
	}
	return out, nil
}

// analyzeField normalizes one document field into a word->positions map,
// accepting the same shapes ranker.fieldLength understands (string,
// []string, []interface{} of strings). A nil analyzer is an
// ingestion-time configuration error, unlike query-side normalize which
// treats it as a pass-through — the schema must always bind a concrete
// type's analyzer before InsertContext succeeds (see engine.InsertContext).
func analyzeField(az analyzer.Analyzer, raw interface{}) (map[string]postings.Positions, error) {
	if az == nil {
		return nil, apperrors.Internal("no analyzer bound to this context")
	}

	words := make(map[string]postings.Positions)
	offset := postings.Position(0)
	add := func(text string) {
		for _, tok := range az.Analyze(text) {
			pos := tok.Position + offset
			words[tok.Word] = append(words[tok.Word], pos)
			if pos >= offset {
				offset = pos + 1
			}
		}
	}

	switch v := raw.(type) {
	case string:
		add(v)
	case []string:
		for _, s := range v {
			add(s)
		}
	case []interface{}:
		for _, item := range v {
			if s, ok := item.(string); ok {
				add(s)
			}
		}
	default:
		return nil, nil
	}

	for w, ps := range words {
		words[w] = postings.NewPositions(ps...)
	}
	return words, nil
}

func toEntries(id postings.DocID, words map[string]postings.Positions) []ix.Entry[string, postings.Occurrences] {
	out := make([]ix.Entry[string, postings.Occurrences], 0, len(words))
	for w, ps := range words {
		out = append(out, ix.Entry[string, postings.Occurrences]{
			Key:   w,
			Value: postings.Occurrences{id: ps},
		})
	}
	return out
}

// BulkResult is one document's analyzed entries, paired with the outcome of
// analyzing it, for BulkTokenize's caller to correlate back to the input.
type BulkResult struct {
	ID      postings.DocID
	Entries []ContextEntries
	Err     error
}

// BulkTokenize analyzes many (id, doc) pairs concurrently, the way the
// teacher's BulkIndexer.worker pool parallelized per-batch tokenization
// (internal/indexing/bulk_operations.go) ahead of a single-threaded index
// merge. Results are returned in input order.
func BulkTokenize(ids []postings.DocID, docs []model.Document, sch *schema.Schema) []BulkResult {
	n := len(ids)
	out := make([]BulkResult, n)
	if n == 0 {
		return out
	}

	workers := runtime.NumCPU()
	if workers > n {
		workers = n
	}
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan int, n)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				entries, err := Document(ids[i], docs[i], sch)
				out[i] = BulkResult{ID: ids[i], Entries: entries, Err: err}
			}
		}()
	}
	for i := 0; i < n; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return out
}
