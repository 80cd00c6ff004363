// Package engine owns the single live indexer and executes the command
// surface against it under a single-writer/multi-reader discipline: one
// indexer snapshot lives behind an atomic.Pointer, swapped by a single
// writer at a time while readers never block.
package engine

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"

	apperrors "github.com/gcbaptista/huntdex/internal/errors"
	"github.com/gcbaptista/huntdex/internal/ingest"
	"github.com/gcbaptista/huntdex/internal/jobs"
	"github.com/gcbaptista/huntdex/internal/materialize"
	"github.com/gcbaptista/huntdex/internal/queryproc"
	"github.com/gcbaptista/huntdex/internal/ranker"

	"github.com/gcbaptista/huntdex/analyzer"
	"github.com/gcbaptista/huntdex/fuzzy"
	"github.com/gcbaptista/huntdex/model"
	"github.com/gcbaptista/huntdex/postings"
	"github.com/gcbaptista/huntdex/query"
	"github.com/gcbaptista/huntdex/schema"
)

// Engine executes commands against the one live indexer it owns. Queries read a
// snapshot without blocking; mutating commands serialize on writeMu and publish
// a new snapshot only on success.
type Engine struct {
	current atomic.Pointer[indexer]
	writeMu sync.Mutex

	types      *schema.Registry
	processCfg queryproc.Config
	jobManager *jobs.Manager
}

// New returns an engine over an empty indexer and the built-in type
// registry (text, keyword, date).
func New() *Engine {
	e := &Engine{
		types:      schema.DefaultRegistry(),
		processCfg: queryproc.Config{Fuzzy: fuzzy.Config{}, Optimize: true},
		jobManager: jobs.NewManager(2),
	}
	e.current.Store(newIndexer())
	e.jobManager.Start()
	return e
}

// Jobs exposes the background job manager, for commands (BulkInsert,
// StoreIx, LoadIx) the caller wants to run asynchronously.
func (e *Engine) Jobs() *jobs.Manager { return e.jobManager }

// Close shuts down the background job manager.
func (e *Engine) Close() { e.jobManager.Stop() }

// snapshot returns the current indexer without acquiring any lock: readers
// never block writers from computing the next version, nor do they block on
// each other.
func (e *Engine) snapshot() *indexer { return e.current.Load() }

// withWriter serializes writers, hands f a clone of the live snapshot to
// mutate, and publishes the clone only if f succeeds — on failure the live
// snapshot is untouched.
func (e *Engine) withWriter(f func(next *indexer) error) error {
	e.writeMu.Lock()
	defer e.writeMu.Unlock()

	next := e.snapshot().clone()
	if err := f(next); err != nil {
		return err
	}
	e.current.Store(next)
	return nil
}

// Execute dispatches cmd to its handler. Sequence aborts on the first error,
// applying none of the remaining children; NOOP always succeeds.
func (e *Engine) Execute(ctx context.Context, cmd Command) (interface{}, error) {
	switch c := cmd.(type) {
	case Search:
		return e.Search(ctx, c.Query, c.Offset, c.Limit)
	case Completion:
		return e.Completion(ctx, c.Query, c.Limit)
	case Insert:
		return nil, e.Insert(c.Document)
	case Update:
		return nil, e.Update(c.Document)
	case BatchDelete:
		return nil, e.BatchDelete(c.URIs)
	case InsertContext:
		return nil, e.InsertContext(c.Name, c.Schema)
	case DeleteContext:
		return nil, e.DeleteContext(c.Name)
	case StoreIx:
		return nil, e.StoreIx(c.Path)
	case LoadIx:
		return nil, e.LoadIx(c.Path)
	case Sequence:
		for i, child := range c.Commands {
			if _, err := e.Execute(ctx, child); err != nil {
				return nil, sequenceError(i, err)
			}
		}
		return nil, nil
	case NOOP:
		return nil, nil
	case Status:
		return e.Status(), nil
	default:
		return nil, apperrors.Internal("engine: unsupported command type %T", cmd)
	}
}

// sequenceError surfaces the first failing child's Kind (if any) alongside its
// index.
func sequenceError(index int, err error) error {
	var appErr *apperrors.Error
	if apperrors.As(err, &appErr) {
		return apperrors.Wrap(appErr.Kind, err, "sequence: child %d failed", index)
	}
	return apperrors.Internal("sequence: child %d failed: %v", index, err)
}

// Search runs query against the current snapshot, ranks it with BM25
// (internal/ranker), and returns the [offset, offset+limit) page of hits.
func (e *Engine) Search(ctx context.Context, q query.Query, offset, limit int) (SearchResult, error) {
	snap := e.snapshot()
	proc := queryproc.New(snap.Index, snap.Schema, snap.Fuzz)

	im, err := proc.Evaluate(ctx, q, e.processCfg)
	if err != nil {
		return SearchResult{}, err
	}

	hits := materialize.Materialize(im, snap.Docs)
	contexts := snap.Schema.Contexts()
	r := ranker.NewBM25(&ranker.IndexStats{Index: snap.Index, Docs: snap.Docs})
	r.Rank(hits, contexts)

	ordered := rankByScore(hits)
	total := len(ordered)

	out := make([]Hit, 0, limit)
	for _, id := range paginate(ordered, offset, limit) {
		info := hits[id]
		uri, _ := info.Document.URI()
		out = append(out, Hit{URI: uri, Document: info.Document, Score: info.Score})
	}
	return SearchResult{Hits: out, Total: total}, nil
}

// Completion runs query and returns its top-`limit` word completions sorted by
// descending score.
func (e *Engine) Completion(ctx context.Context, q query.Query, limit int) (CompletionResult, error) {
	snap := e.snapshot()
	proc := queryproc.New(snap.Index, snap.Schema, snap.Fuzz)

	im, err := proc.Evaluate(ctx, q, e.processCfg)
	if err != nil {
		return CompletionResult{}, err
	}

	words := materialize.MaterializeWords(im)
	out := make([]Completion, 0, len(words))
	for w, wi := range words {
		out = append(out, Completion{Word: w, Score: wi.Score})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Word < out[j].Word
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return CompletionResult{Completions: out}, nil
}

// rankByScore returns hits' DocIDs sorted by descending score, tie-broken
// by ascending DocID for a stable page boundary.
func rankByScore(hits materialize.DocHits) []postings.DocID {
	ordered := hits.SortedDocIDs()
	sort.SliceStable(ordered, func(i, j int) bool {
		return hits[ordered[i]].Score > hits[ordered[j]].Score
	})
	return ordered
}

func paginate(ids []postings.DocID, offset, limit int) []postings.DocID {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(ids) {
		return nil
	}
	end := len(ids)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return ids[offset:end]
}

// Insert adds doc. The URI must be absent.
func (e *Engine) Insert(doc model.Document) error {
	return e.withWriter(func(next *indexer) error {
		uri, ok := doc.URI()
		if !ok {
			return apperrors.InvalidInput("insert: document has no %q", model.URIField)
		}
		if _, _, exists := next.Docs.LookupByURI(uri); exists {
			return apperrors.Conflict("insert: document %q already exists", uri)
		}

		id, _ := next.Docs.Insert(uri, doc)
		entries, err := ingest.Document(id, doc, next.Schema)
		if err != nil {
			return err
		}
		applyEntries(next, entries)
		next.Fuzz.UpdateTerms(vocabulary(next.Index))
		return nil
	})
}

// Update replaces the document at doc's URI, which must already exist.
func (e *Engine) Update(doc model.Document) error {
	return e.withWriter(func(next *indexer) error {
		uri, ok := doc.URI()
		if !ok {
			return apperrors.InvalidInput("update: document has no %q", model.URIField)
		}
		_, id, exists := next.Docs.LookupByURI(uri)
		if !exists {
			return apperrors.Conflict("update: document %q does not exist", uri)
		}

		next.Index.DeleteDocs(map[postings.DocID]struct{}{id: {}})
		if !next.Docs.Update(id, doc) {
			return apperrors.Internal("update: document %q vanished mid-command", uri)
		}
		entries, err := ingest.Document(id, doc, next.Schema)
		if err != nil {
			return err
		}
		applyEntries(next, entries)
		next.Fuzz.UpdateTerms(vocabulary(next.Index))
		return nil
	})
}

// BatchDelete removes every document named by uris; missing ones are silently
// ignored.
func (e *Engine) BatchDelete(uris []string) error {
	return e.withWriter(func(next *indexer) error {
		ids := make(map[postings.DocID]struct{}, len(uris))
		for _, uri := range uris {
			if id, ok := next.Docs.DeleteByURI(uri); ok {
				ids[id] = struct{}{}
			}
		}
		if len(ids) == 0 {
			return nil
		}
		next.Index.DeleteDocs(ids)
		next.Fuzz.UpdateTerms(vocabulary(next.Index))
		return nil
	})
}

// BulkInsert adds many documents in one write transition, analyzing them
// concurrently via internal/ingest.BulkTokenize before a single-threaded merge
// into the index. The first document whose URI already exists aborts the whole
// command.
func (e *Engine) BulkInsert(docs []model.Document) error {
	return e.withWriter(func(next *indexer) error {
		ids := make([]postings.DocID, len(docs))
		for i, doc := range docs {
			uri, ok := doc.URI()
			if !ok {
				return apperrors.InvalidInput("bulk insert: document %d has no %q", i, model.URIField)
			}
			if _, _, exists := next.Docs.LookupByURI(uri); exists {
				return apperrors.Conflict("bulk insert: document %q already exists", uri)
			}
			id, _ := next.Docs.Insert(uri, doc)
			ids[i] = id
		}

		for _, res := range ingest.BulkTokenize(ids, docs, next.Schema) {
			if res.Err != nil {
				return res.Err
			}
			applyEntries(next, res.Entries)
		}
		next.Fuzz.UpdateTerms(vocabulary(next.Index))
		return nil
	})
}

// InsertContext adds name to the schema bound to cs, and an empty context of
// that name to the index in the same transition. 409 if it already exists;
// 410 if cs.Type does not resolve against the live type registry. cs.Type is
// replaced with the registry's live record (so its NewIndex factory is
// honored regardless of what the caller's bare Type.Name-only value carried),
// and cs.Analyzer defaults to the stock analyzer for cs.Type.Name if none was
// supplied.
func (e *Engine) InsertContext(name string, cs schema.ContextSchema) error {
	return e.withWriter(func(next *indexer) error {
		t, ok := e.types.Lookup(cs.Type.Name)
		if !ok {
			return apperrors.UnknownType("insert context: type %q is not registered", cs.Type.Name)
		}
		cs.Type = t
		if cs.Analyzer == nil {
			cs.Analyzer = defaultAnalyzer(cs.Type.Name)
		}
		updated, err := next.Schema.InsertContext(name, cs)
		if err != nil {
			return apperrors.Conflict("%v", err)
		}
		next.Schema = updated
		next.Index.InsertContext(name, postings.UnionOccurrences, nil)
		return nil
	})
}

// DeleteContext removes name from the schema and purges its postings.
// Idempotent.
func (e *Engine) DeleteContext(name string) error {
	return e.withWriter(func(next *indexer) error {
		next.Schema = next.Schema.DeleteContext(name)
		next.Index.DeleteContext(name)
		return nil
	})
}

// Status reports liveness plus a few basic metrics.
func (e *Engine) Status() StatusResult {
	snap := e.snapshot()
	m := e.jobManager.GetMetrics()
	return StatusResult{
		Documents: snap.Docs.Size(),
		Contexts:  snap.Schema.Contexts(),
		Jobs: JobSummary{
			Created:   m.JobsCreated,
			Completed: m.JobsCompleted,
			Failed:    m.JobsFailed,
		},
	}
}

func applyEntries(next *indexer, entries []ingest.ContextEntries) {
	for _, ce := range entries {
		next.Index.InsertContext(ce.Context, postings.UnionOccurrences, ce.Entries)
	}
}

func defaultAnalyzer(typeName string) analyzer.Analyzer {
	switch typeName {
	case schema.TypeKeyword:
		return analyzer.NewKeyword()
	case schema.TypeDate:
		return analyzer.NewDate()
	default:
		return analyzer.NewDefault()
	}
}
