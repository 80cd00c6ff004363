package ix

import (
	"sort"
	"sync"

	"github.com/gcbaptista/huntdex/postings"
)

// ContextIndex fans a single term index capability out across independently
// named contexts, the basis for multi-field, multi-document-type indexing.
// Each context gets its own inner TermIndex, built on demand by newInner, which
// is handed the context name so a caller can pick a different inner
// representation (e.g. a compressed one) per context.
type ContextIndex[V Value[V]] struct {
	mu       sync.RWMutex
	contexts map[string]TermIndex[string, V]
	newInner func(cx string) TermIndex[string, V]
}

// NewContextIndex returns an empty context index. newInner constructs a
// fresh inner TermIndex for a context the first time it is written to.
func NewContextIndex[V Value[V]](newInner func(cx string) TermIndex[string, V]) *ContextIndex[V] {
	return &ContextIndex[V]{
		contexts: make(map[string]TermIndex[string, V]),
		newInner: newInner,
	}
}

// InsertContext inserts entries into a single named context, creating it if
// necessary.
func (c *ContextIndex[V]) InsertContext(cx string, op func(existing, incoming V) V, entries []Entry[string, V]) {
	c.mu.Lock()
	inner, ok := c.contexts[cx]
	if !ok {
		inner = c.newInner(cx)
		c.contexts[cx] = inner
	}
	c.mu.Unlock()

	inner.InsertList(op, entries)
}

// DeleteContext removes an entire named context.
func (c *ContextIndex[V]) DeleteContext(cx string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.contexts, cx)
}

// DeleteDocs removes the given documents from every context.
func (c *ContextIndex[V]) DeleteDocs(ids map[postings.DocID]struct{}) {
	c.mu.RLock()
	inners := make([]TermIndex[string, V], 0, len(c.contexts))
	for _, inner := range c.contexts {
		inners = append(inners, inner)
	}
	c.mu.RUnlock()

	for _, inner := range inners {
		inner.DeleteDocs(ids)
	}
}

// SearchWithCx searches a single named context. An unknown context returns
// no results.
func (c *ContextIndex[V]) SearchWithCx(cx string, mode SearchMode, key string) []Entry[string, V] {
	c.mu.RLock()
	inner, ok := c.contexts[cx]
	c.mu.RUnlock()
	if !ok {
		return nil
	}
	return inner.Search(mode, key)
}

// SearchWithCxs searches the given contexts (or every known context, if cxs
// is empty) and returns a map from context name to its matching entries.
func (c *ContextIndex[V]) SearchWithCxs(cxs []string, mode SearchMode, key string) map[string][]Entry[string, V] {
	names := cxs
	if len(names) == 0 {
		names = c.Contexts()
	}

	out := make(map[string][]Entry[string, V], len(names))
	for _, cx := range names {
		if res := c.SearchWithCx(cx, mode, key); len(res) > 0 {
			out[cx] = res
		}
	}
	return out
}

// NormalizedTerm pairs a context with the already-normalized term to search
// for within it, the input to SearchWithCxsNormalized.
type NormalizedTerm struct {
	Context string
	Term    string
}

// SearchWithCxsNormalized searches each (context, term) pair with its own term,
// unlike SearchWithCxs which searches every context for the same key.
func (c *ContextIndex[V]) SearchWithCxsNormalized(mode SearchMode, pairs []NormalizedTerm) map[string][]Entry[string, V] {
	out := make(map[string][]Entry[string, V], len(pairs))
	for _, p := range pairs {
		if res := c.SearchWithCx(p.Context, mode, p.Term); len(res) > 0 {
			out[p.Context] = res
		}
	}
	return out
}

// LookupRangeCx performs a range lookup within a single named context.
func (c *ContextIndex[V]) LookupRangeCx(cx string, lo, hi string) []Entry[string, V] {
	c.mu.RLock()
	inner, ok := c.contexts[cx]
	c.mu.RUnlock()
	if !ok {
		return nil
	}
	return inner.LookupRange(lo, hi)
}

// KeysInContext lists every term stored in a single named context, used to
// build the fuzzy vocabulary. An unknown context returns nil.
func (c *ContextIndex[V]) KeysInContext(cx string) []string {
	c.mu.RLock()
	inner, ok := c.contexts[cx]
	c.mu.RUnlock()
	if !ok {
		return nil
	}
	return inner.Keys()
}

// ToListCx returns a full snapshot of one named context's entries, the building
// block for persisting a context index one context at a time. An unknown
// context returns nil.
func (c *ContextIndex[V]) ToListCx(cx string) []Entry[string, V] {
	c.mu.RLock()
	inner, ok := c.contexts[cx]
	c.mu.RUnlock()
	if !ok {
		return nil
	}
	return inner.ToList()
}

// Clone returns an independent deep copy of the context index: every inner
// TermIndex is rebuilt from a ToList/FromList snapshot using newInner, the
// basis for a write transition under the single-writer/multi-reader model.
// newInner is taken explicitly (rather than reusing c's own) so the clone can
// be bound to the schema it will be mutated alongside, since newInner's
// per-context choice of representation depends on that schema.
func (c *ContextIndex[V]) Clone(newInner func(cx string) TermIndex[string, V]) *ContextIndex[V] {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := &ContextIndex[V]{
		contexts: make(map[string]TermIndex[string, V], len(c.contexts)),
		newInner: newInner,
	}
	for cx, inner := range c.contexts {
		fresh := newInner(cx)
		fresh.FromList(inner.ToList())
		out.contexts[cx] = fresh
	}
	return out
}

// Contexts lists every known context name, sorted.
func (c *ContextIndex[V]) Contexts() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]string, 0, len(c.contexts))
	for cx := range c.contexts {
		out = append(out, cx)
	}
	sort.Strings(out)
	return out
}

// Empty reports whether every context is empty.
func (c *ContextIndex[V]) Empty() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, inner := range c.contexts {
		if !inner.Empty() {
			return false
		}
	}
	return true
}
