// Package postings implements the core posting-list primitives: document
// identifiers, within-document term positions, and occurrence maps, along
// with the set algebra the term index builds on.
package postings

// DocID is an opaque document identifier. It is unique within a live index
// and is never reused after a document is deleted within the same session.
type DocID uint32

// Position is a zero-based token offset within a single document field.
type Position int
