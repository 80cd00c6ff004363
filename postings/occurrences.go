package postings

// Occurrences maps a DocID to the set of positions at which a term occurs in
// that document. A Positions value is never stored empty: once a document's
// last position is removed the key is dropped entirely.
type Occurrences map[DocID]Positions

// Size returns the number of documents with at least one occurrence.
func (o Occurrences) Size() int { return len(o) }

// IsEmpty reports whether o holds no documents. Satisfies ix.Value[V].
func (o Occurrences) IsEmpty() bool { return len(o) == 0 }

// Clone returns an independent deep copy.
func (o Occurrences) Clone() Occurrences {
	if o == nil {
		return nil
	}
	out := make(Occurrences, len(o))
	for d, p := range o {
		out[d] = p.Clone()
	}
	return out
}

// UnionOccurrences combines two occurrence maps, unioning the position sets
// of any document present in both.
func UnionOccurrences(a, b Occurrences) Occurrences {
	if len(a) == 0 {
		return b.Clone()
	}
	if len(b) == 0 {
		return a.Clone()
	}
	out := make(Occurrences, len(a)+len(b))
	for d, p := range a {
		out[d] = p
	}
	for d, p := range b {
		if existing, ok := out[d]; ok {
			out[d] = Union(existing, p)
		} else {
			out[d] = p
		}
	}
	return out
}

// DeleteDocs removes every DocID in ids from o, purging any Positions value
// that becomes empty as a result.
func (o Occurrences) DeleteDocs(ids map[DocID]struct{}) Occurrences {
	if len(o) == 0 || len(ids) == 0 {
		return o
	}
	out := make(Occurrences, len(o))
	for d, p := range o {
		if _, dead := ids[d]; dead {
			continue
		}
		out[d] = p
	}
	return out
}

// DocIDs returns the set of documents with at least one occurrence.
func (o Occurrences) DocIDs() []DocID {
	out := make([]DocID, 0, len(o))
	for d := range o {
		out = append(out, d)
	}
	return out
}
