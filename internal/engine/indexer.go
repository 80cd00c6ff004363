package engine

import (
	"github.com/gcbaptista/huntdex/doctable"
	"github.com/gcbaptista/huntdex/fuzzy"
	"github.com/gcbaptista/huntdex/ix"
	"github.com/gcbaptista/huntdex/postings"
	"github.com/gcbaptista/huntdex/schema"
)

// indexer is the one live snapshot the engine holds: the context index,
// document table, schema, and fuzzy vocabulary, as a single value a writer
// can clone, mutate, and swap in atomically.
type indexer struct {
	Index  *ix.ContextIndex[postings.Occurrences]
	Docs   *doctable.Table
	Schema *schema.Schema
	Fuzz   *fuzzy.Finder
}

// newIndexer returns an empty indexer over the built-in context types.
func newIndexer() *indexer {
	s := &indexer{
		Docs:   doctable.New(),
		Schema: schema.New(),
		Fuzz:   fuzzy.NewFinder(),
	}
	s.Index = ix.NewContextIndex(s.newInnerFor)
	return s
}

// newInnerFor builds the inner index for context cx, deferring to its
// schema entry's ContextType.NewIndex (e.g. a compressed index for keyword
// contexts) and falling back to the plain string index for an unknown or
// not-yet-registered context.
func (s *indexer) newInnerFor(cx string) ix.TermIndex[string, postings.Occurrences] {
	if cs, ok := s.Schema.Get(cx); ok && cs.Type.NewIndex != nil {
		return cs.Type.NewIndex()
	}
	return ix.NewStringIndex[postings.Occurrences]()
}

// clone returns an independent deep copy, the basis for every write
// transition: a writer takes an exclusive token and computes the next
// indexer from a clone of the current one. Fuzz is rebuilt from the cloned
// index's vocabulary rather than copied, since it is a derived cache, not
// source of truth. Index is cloned against out's own newInnerFor (not s's) so
// that a write transition which both inserts a new context and populates it
// picks the representation from the schema it's being built alongside.
func (s *indexer) clone() *indexer {
	out := &indexer{
		Docs:   s.Docs.Clone(),
		Schema: s.Schema.Clone(),
		Fuzz:   fuzzy.NewFinder(),
	}
	out.Index = s.Index.Clone(out.newInnerFor)
	out.Fuzz.UpdateTerms(vocabulary(out.Index))
	return out
}

// vocabulary collects every term stored across every context, the fuzzy
// finder's candidate set.
func vocabulary(idx *ix.ContextIndex[postings.Occurrences]) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, cx := range idx.Contexts() {
		for _, term := range idx.KeysInContext(cx) {
			if _, ok := seen[term]; ok {
				continue
			}
			seen[term] = struct{}{}
			out = append(out, term)
		}
	}
	return out
}
