package postings

import "sort"

// Positions is a sorted, deduplicated set of token positions within a
// single document. The zero value is the empty set.
type Positions []Position

// NewPositions builds a Positions set from arbitrary (possibly unsorted,
// possibly duplicated) input.
func NewPositions(vals ...Position) Positions {
	if len(vals) == 0 {
		return nil
	}
	cp := make(Positions, len(vals))
	copy(cp, vals)
	sort.Slice(cp, func(i, j int) bool { return cp[i] < cp[j] })
	return dedupeSorted(cp)
}

func dedupeSorted(sorted Positions) Positions {
	if len(sorted) == 0 {
		return sorted
	}
	out := sorted[:1]
	for _, p := range sorted[1:] {
		if p != out[len(out)-1] {
			out = append(out, p)
		}
	}
	return out
}

// Len reports the number of distinct positions.
func (p Positions) Len() int { return len(p) }

// Member reports whether pos is present in p.
func (p Positions) Member(pos Position) bool {
	i := sort.Search(len(p), func(i int) bool { return p[i] >= pos })
	return i < len(p) && p[i] == pos
}

// Union merges two position sets. Commutative, associative, idempotent.
func Union(a, b Positions) Positions {
	out := make(Positions, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			out = append(out, a[i])
			i++
		case a[i] > b[j]:
			out = append(out, b[j])
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	out = append(out, a[i:]...)
	out = append(out, b[j:]...)
	if len(out) == 0 {
		return nil
	}
	return out
}

// Clone returns an independent copy of p.
func (p Positions) Clone() Positions {
	if len(p) == 0 {
		return nil
	}
	cp := make(Positions, len(p))
	copy(cp, p)
	return cp
}

// Shifted returns a copy of p with every position offset by delta.
func (p Positions) Shifted(delta int) Positions {
	if len(p) == 0 {
		return nil
	}
	out := make(Positions, len(p))
	for i, v := range p {
		out[i] = v + Position(delta)
	}
	return out
}
