package query

import (
	"reflect"
	"testing"
)

func TestOptimizeBoostIdentity(t *testing.T) {
	q := Boost{Factor: 1.0, Inner: Word{Case: CaseInsensitive, Text: "hello"}}
	got := Optimize(q)
	want := Word{Case: CaseInsensitive, Text: "hello"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Optimize(QBoost 1.0 q) = %#v, want %#v", got, want)
	}
}

func TestOptimizeBoostComposition(t *testing.T) {
	// nested boosts compose by multiplication: boost 2 (boost 3 q) == boost 6 q.
	q := Boost{Factor: 2.0, Inner: Boost{Factor: 3.0, Inner: Word{Text: "x"}}}
	got := Optimize(q)
	want := Boost{Factor: 6.0, Inner: Word{Text: "x"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Optimize(nested QBoost) = %#v, want %#v", got, want)
	}
}

func TestOptimizeIsIdempotent(t *testing.T) {
	q := Binary{
		Op:   OpAnd,
		Left: Binary{Op: OpAnd, Left: Word{Text: "b"}, Right: Word{Text: "a"}},
		Right: Boost{Factor: 1.0, Inner: Word{Text: "c"}},
	}

	once := Optimize(q)
	twice := Optimize(once)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("Optimize is not idempotent: once=%#v twice=%#v", once, twice)
	}
}

func TestOptimizeFlattensRegardlessOfShape(t *testing.T) {
	leftLeaning := Binary{
		Op:   OpOr,
		Left: Binary{Op: OpOr, Left: Word{Text: "a"}, Right: Word{Text: "b"}},
		Right: Word{Text: "c"},
	}
	rightLeaning := Binary{
		Op:   OpOr,
		Left: Word{Text: "a"},
		Right: Binary{Op: OpOr, Left: Word{Text: "b"}, Right: Word{Text: "c"}},
	}

	if !reflect.DeepEqual(Optimize(leftLeaning), Optimize(rightLeaning)) {
		t.Error("expected differently-shaped but equivalent Or-chains to optimize to the same tree")
	}
}

func TestOptimizeNestedContextCollapses(t *testing.T) {
	q := Context{Contexts: []string{"title"}, Inner: Context{Contexts: []string{"body"}, Inner: Word{Text: "x"}}}
	got := Optimize(q)
	want := Context{Contexts: []string{"body"}, Inner: Word{Text: "x"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Optimize(nested QContext) = %#v, want %#v", got, want)
	}
}
