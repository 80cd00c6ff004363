// Package schema defines the context schema: the registry of which named
// contexts an indexer knows about, each context's term type, analyzer, weight,
// and default-participation flag. Schema is authoritative for which contexts
// exist; the context index must always hold exactly the same set of keys.
package schema

import (
	"fmt"

	"github.com/gcbaptista/huntdex/analyzer"
	"github.com/gcbaptista/huntdex/ix"
	"github.com/gcbaptista/huntdex/postings"
)

// ContextType names a registered term representation a context's posting list
// is keyed by. The built-in types are text, keyword, and date; a type carries a
// NewIndex factory so the context index proxy (ix.ContextIndex) can mint a
// fresh inner index of the right shape for that type without a type switch.
type ContextType struct {
	// Name is the registry key; persisted schemas reference types by this name and
	// must be re-linked to a live ContextType on load.
	Name string

	// Ordered reports whether lookupRangeCx is meaningful for this type
	// (e.g. date is ordered; free text is not, conventionally).
	Ordered bool

	// NewIndex builds the inner term index a context of this type stores its
	// postings in. Nil means the plain, uncompressed ix.NewStringIndex.
	NewIndex func() ix.TermIndex[string, postings.Occurrences]
}

const (
	TypeText    = "text"
	TypeKeyword = "keyword"
	TypeDate    = "date"
)

// DefaultRegistry is the set of context types available without any extra
// registration. Keyword contexts route through a value-compression proxy:
// they are typically low-cardinality and heavily repeated across documents
// (tags, categories, statuses), so compressing their posting lists trades
// CPU for a smaller resident index.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(ContextType{Name: TypeText, Ordered: false})
	r.Register(ContextType{Name: TypeKeyword, Ordered: false, NewIndex: newCompressedIndex})
	r.Register(ContextType{Name: TypeDate, Ordered: true})
	return r
}

// newCompressedIndex wraps a plain inner index in ix.CompressIndex, backed by
// a fresh zstd codec. A codec build failure (only possible on a broken zstd
// setup) falls back to the plain index rather than failing registry setup.
func newCompressedIndex() ix.TermIndex[string, postings.Occurrences] {
	codec, err := ix.NewCodec[postings.Occurrences]()
	if err != nil {
		return ix.NewStringIndex[postings.Occurrences]()
	}
	return ix.NewCompressIndex[postings.Occurrences](ix.NewStringIndex[ix.Blob](), codec)
}

// Registry maps type names to live ContextType records, the current type
// registry a persistence load re-links each schema entry against.
type Registry struct {
	types map[string]ContextType
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{types: make(map[string]ContextType)}
}

// Register adds or replaces a type.
func (r *Registry) Register(t ContextType) {
	r.types[t.Name] = t
}

// Lookup resolves a type by name. ok is false if name is unregistered, which
// callers surface as error code 410.
func (r *Registry) Lookup(name string) (ContextType, bool) {
	t, ok := r.types[name]
	return t, ok
}

// ContextSchema is one entry of the schema: type, analyzer, weight, and
// whether it participates in a query's default context set.
type ContextSchema struct {
	Type     ContextType
	Analyzer analyzer.Analyzer
	Weight   float64
	Default  bool
}

// DefScore is the Boost applied when a context carries no explicit weight.
const DefScore = 1.0

// EffectiveWeight returns cs.Weight, or DefScore if none was set.
func (cs ContextSchema) EffectiveWeight() float64 {
	if cs.Weight <= 0 {
		return DefScore
	}
	return cs.Weight
}

// Schema is the engine's authoritative map of context name to ContextSchema. It
// is immutable once published: InsertContext/DeleteContext both produce a new
// Schema value rather than mutating in place, so the engine can swap schema and
// context index together as one atomic transition.
type Schema struct {
	contexts map[string]ContextSchema
}

// New returns an empty schema.
func New() *Schema {
	return &Schema{contexts: make(map[string]ContextSchema)}
}

// Clone returns an independent copy, used as the basis for a schema
// transition (insert/delete context).
func (s *Schema) Clone() *Schema {
	out := &Schema{contexts: make(map[string]ContextSchema, len(s.contexts))}
	for k, v := range s.contexts {
		out.contexts[k] = v
	}
	return out
}

// Has reports whether a context is present in the schema.
func (s *Schema) Has(name string) bool {
	_, ok := s.contexts[name]
	return ok
}

// Get returns the schema entry for name.
func (s *Schema) Get(name string) (ContextSchema, bool) {
	cs, ok := s.contexts[name]
	return cs, ok
}

// InsertContext returns a new Schema with name added, bound to cs. Returns an
// error if name already exists.
func (s *Schema) InsertContext(name string, cs ContextSchema) (*Schema, error) {
	if s.Has(name) {
		return nil, fmt.Errorf("schema: context %q already exists", name)
	}
	out := s.Clone()
	out.contexts[name] = cs
	return out, nil
}

// DeleteContext returns a new Schema with name removed. Idempotent: deleting an
// absent context is not an error.
func (s *Schema) DeleteContext(name string) *Schema {
	if !s.Has(name) {
		return s
	}
	out := s.Clone()
	delete(out.contexts, name)
	return out
}

// Contexts lists every context name currently in the schema.
func (s *Schema) Contexts() []string {
	out := make([]string, 0, len(s.contexts))
	for name := range s.contexts {
		out = append(out, name)
	}
	return out
}

// DefaultContexts lists the contexts marked Default, the initial active context
// set for a query.
func (s *Schema) DefaultContexts() []string {
	out := make([]string, 0)
	for name, cs := range s.contexts {
		if cs.Default {
			out = append(out, name)
		}
	}
	return out
}

// ContextEntry is the persisted form of one schema entry: Type is named, not
// embedded, so load can re-link it against the live type registry by name, and
// Analyzer is dropped entirely — it is re-derived from the type name on load,
// the same default InsertContext picks when none is supplied.
type ContextEntry struct {
	Name     string
	TypeName string
	Weight   float64
	Default  bool
}

// Entries returns s's persisted form.
func (s *Schema) Entries() []ContextEntry {
	out := make([]ContextEntry, 0, len(s.contexts))
	for name, cs := range s.contexts {
		out = append(out, ContextEntry{Name: name, TypeName: cs.Type.Name, Weight: cs.Weight, Default: cs.Default})
	}
	return out
}

// FromEntries rebuilds a Schema from its persisted form, re-linking each
// entry's TypeName against registry. analyzerFor supplies the Analyzer for the
// re-linked type, mirroring the default InsertContext picks when none is given
// explicitly.
func FromEntries(entries []ContextEntry, registry *Registry, analyzerFor func(typeName string) analyzer.Analyzer) (*Schema, error) {
	s := New()
	for _, e := range entries {
		t, ok := registry.Lookup(e.TypeName)
		if !ok {
			return nil, fmt.Errorf("schema: type %q is not registered", e.TypeName)
		}
		s.contexts[e.Name] = ContextSchema{
			Type:     t,
			Analyzer: analyzerFor(e.TypeName),
			Weight:   e.Weight,
			Default:  e.Default,
		}
	}
	return s, nil
}
