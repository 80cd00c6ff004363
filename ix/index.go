// Package ix implements the generic term index capability and three
// composable proxies over it: key conversion, value compression, and
// context fan-out. The base implementation, StringIndex, is a map[string]V
// behind a sync.RWMutex; KeyConvIndex and CompressIndex wrap an inner
// TermIndex, and ContextIndex holds one inner TermIndex per context.
package ix

import "github.com/gcbaptista/huntdex/postings"

// SearchMode selects how a term index matches a query key against its stored
// keys.
type SearchMode int

const (
	Case SearchMode = iota
	NoCase
	PrefixCase
	PrefixNoCase
)

// Entry is one (key, value) pair returned from a term index search or range
// lookup.
type Entry[K any, V any] struct {
	Key   K
	Value V
}

// Value is the per-instance constraint a term index's value type must satisfy:
// it must know when it is empty and how to drop a set of documents from itself.
// postings.Occurrences is the typical instantiation.
type Value[V any] interface {
	IsEmpty() bool
	DeleteDocs(ids map[postings.DocID]struct{}) V
}

// TermIndex is an abstract key/value store over terms, polymorphic in its
// key type K and value type V, searchable by exact, case-folded, prefix,
// and range modes.
type TermIndex[K any, V Value[V]] interface {
	// InsertList inserts or combines entries with any existing value at the
	// same key using op.
	InsertList(op func(existing, incoming V) V, entries []Entry[K, V])

	// DeleteDocs removes every id in ids from every posting list, purging
	// postings that become empty.
	DeleteDocs(ids map[postings.DocID]struct{})

	// Search returns all (key, value) pairs matching key under mode,
	// deduplicated by key.
	Search(mode SearchMode, key K) []Entry[K, V]

	// LookupRange returns all entries with lo <= key <= hi, inclusive.
	LookupRange(lo, hi K) []Entry[K, V]

	// ToList/FromList provide a full snapshot of the index contents.
	ToList() []Entry[K, V]
	FromList(entries []Entry[K, V])

	// Keys lists every stored key.
	Keys() []K

	// Empty reports whether the index holds no entries.
	Empty() bool
}
