package postings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPositionsUnionCommutative(t *testing.T) {
	a := NewPositions(5, 1, 3)
	b := NewPositions(3, 2)

	assert.Equal(t, Union(a, b), Union(b, a))
}

func TestPositionsUnionAssociative(t *testing.T) {
	a := NewPositions(1, 2)
	b := NewPositions(2, 3)
	c := NewPositions(3, 4)

	assert.Equal(t, Union(Union(a, b), c), Union(a, Union(b, c)))
}

func TestPositionsUnionIdempotent(t *testing.T) {
	a := NewPositions(1, 2, 3)
	assert.Equal(t, a, Union(a, a))
}

func TestPositionsMemberMatchesUnion(t *testing.T) {
	a := NewPositions(1, 4, 9)
	b := NewPositions(2, 4, 7)
	u := Union(a, b)

	for _, p := range []Position{1, 2, 4, 7, 9, 3, 100} {
		want := a.Member(p) || b.Member(p)
		assert.Equal(t, want, u.Member(p), "position %d", p)
	}
}

func TestNewPositionsDedupesAndSorts(t *testing.T) {
	p := NewPositions(3, 1, 3, 2, 1)
	assert.Equal(t, Positions{1, 2, 3}, p)
}

func TestOccurrencesDeleteDocsPurgesEmpty(t *testing.T) {
	o := Occurrences{
		1: NewPositions(0, 1),
		2: NewPositions(4),
	}
	out := o.DeleteDocs(map[DocID]struct{}{2: {}})
	assert.Len(t, out, 1)
	_, stillThere := out[2]
	assert.False(t, stillThere)
}

func TestUnionOccurrencesMergesPositions(t *testing.T) {
	a := Occurrences{1: NewPositions(0)}
	b := Occurrences{1: NewPositions(1), 2: NewPositions(0)}

	out := UnionOccurrences(a, b)
	assert.Equal(t, NewPositions(0, 1), out[1])
	assert.Equal(t, NewPositions(0), out[2])
}
