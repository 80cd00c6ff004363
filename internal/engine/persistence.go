package engine

import (
	apperrors "github.com/gcbaptista/huntdex/internal/errors"
	"github.com/gcbaptista/huntdex/internal/persistence"

	"github.com/gcbaptista/huntdex/doctable"
	"github.com/gcbaptista/huntdex/fuzzy"
	"github.com/gcbaptista/huntdex/ix"
	"github.com/gcbaptista/huntdex/postings"
	"github.com/gcbaptista/huntdex/schema"
)

// persistedIndexer is the on-disk shape of the whole indexer: a tag list of
// context-type implementations (the distinct type names the schema's
// contexts were built against, diagnostic only — the actual inner index
// shape per type, e.g. compressed for keyword, is re-derived from the live
// type registry on load, not persisted directly), the serialized context
// index, document table, and schema.
type persistedIndexer struct {
	TypeTags []string
	Contexts map[string][]ix.Entry[string, postings.Occurrences]
	Docs     *doctable.Table
	Schema   []schema.ContextEntry
}

// StoreIx persists the whole live indexer to path. A failure here is fatal to
// this command only; the live indexer is untouched.
func (e *Engine) StoreIx(path string) error {
	snap := e.snapshot()

	contexts := make(map[string][]ix.Entry[string, postings.Occurrences])
	for _, cx := range snap.Index.Contexts() {
		contexts[cx] = snap.Index.ToListCx(cx)
	}

	data := persistedIndexer{
		TypeTags: typeTags(snap.Schema),
		Contexts: contexts,
		Docs:     snap.Docs,
		Schema:   snap.Schema.Entries(),
	}
	if err := persistence.SaveGob(path, data); err != nil {
		return apperrors.IOError(err, "store ix: writing %q", path)
	}
	return nil
}

// LoadIx replaces the live indexer with the one persisted at path. Schema type
// references are re-linked against the live type registry by name; an
// unregistered name fails with 410 and leaves the live indexer untouched.
func (e *Engine) LoadIx(path string) error {
	var data persistedIndexer
	if err := persistence.LoadGob(path, &data); err != nil {
		return apperrors.IOError(err, "load ix: reading %q", path)
	}

	sch, err := schema.FromEntries(data.Schema, e.types, defaultAnalyzer)
	if err != nil {
		return apperrors.UnknownType("load ix: %v", err)
	}

	docs := data.Docs
	if docs == nil {
		docs = doctable.New()
	}

	// loaded.Schema must be set before Index is built, since newInnerFor
	// picks each context's inner representation (e.g. compressed for
	// keyword) from loaded.Schema.
	loaded := &indexer{Docs: docs, Schema: sch, Fuzz: fuzzy.NewFinder()}
	loaded.Index = ix.NewContextIndex(loaded.newInnerFor)
	for cx, entries := range data.Contexts {
		loaded.Index.InsertContext(cx, postings.UnionOccurrences, entries)
	}
	loaded.Fuzz.UpdateTerms(vocabulary(loaded.Index))

	return e.withWriter(func(next *indexer) error {
		*next = *loaded
		return nil
	})
}

func typeTags(sch *schema.Schema) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, entry := range sch.Entries() {
		if _, ok := seen[entry.TypeName]; ok {
			continue
		}
		seen[entry.TypeName] = struct{}{}
		out = append(out, entry.TypeName)
	}
	return out
}
