package query

import "sort"

// Optimize applies commutative/associative flattening and constant-folding
// rewrites: it is not required for correctness, only for idempotence —
// Optimize(Optimize(q)) must equal Optimize(q). The exact rewrite set for
// mixed operators is free to grow as long as idempotence holds.
func Optimize(q Query) Query {
	switch n := q.(type) {
	case Boost:
		inner := Optimize(n.Inner)
		if inner2, ok := inner.(Boost); ok {
			// QBoost f1 (QBoost f2 q) == QBoost (f1*f2) q.
			return Optimize(Boost{Factor: n.Factor * inner2.Factor, Inner: inner2.Inner})
		}
		if n.Factor == 1.0 {
			// QBoost 1.0 is the identity.
			return inner
		}
		return Boost{Factor: n.Factor, Inner: inner}

	case Context:
		inner := Optimize(n.Inner)
		if inner2, ok := inner.(Context); ok {
			// Nested QContext: the innermost restriction wins, so collapse to
			// a single node naming only the inner restriction's contexts.
			return Context{Contexts: inner2.Contexts, Inner: inner2.Inner}
		}
		return Context{Contexts: sortedCopy(n.Contexts), Inner: inner}

	case Binary:
		left := Optimize(n.Left)
		right := Optimize(n.Right)
		if n.Op == OpAnd || n.Op == OpOr {
			return flattenAssociative(n.Op, left, right)
		}
		return Binary{Op: n.Op, Left: left, Right: right}

	default:
		return q
	}
}

// flattenAssociative gathers every leaf of a same-op And/Or chain, puts them in
// a canonical order, and rebuilds a single left-associated chain. This makes
// Optimize idempotent regardless of how the original tree was shaped or
// ordered.
func flattenAssociative(op BinaryOp, left, right Query) Query {
	leaves := make([]Query, 0, 4)
	leaves = gatherLeaves(op, left, leaves)
	leaves = gatherLeaves(op, right, leaves)

	sort.SliceStable(leaves, func(i, j int) bool {
		return rank(leaves[i]) < rank(leaves[j])
	})

	out := leaves[0]
	for _, l := range leaves[1:] {
		out = Binary{Op: op, Left: out, Right: l}
	}
	return out
}

func gatherLeaves(op BinaryOp, q Query, into []Query) []Query {
	if b, ok := q.(Binary); ok && b.Op == op {
		into = gatherLeaves(op, b.Left, into)
		into = gatherLeaves(op, b.Right, into)
		return into
	}
	return append(into, q)
}

// rank gives every node a stable sort key for canonical ordering within a
// flattened chain, so structurally identical queries built in a different
// order optimize to the same tree.
func rank(q Query) string {
	switch n := q.(type) {
	case Word:
		return "0:" + n.Case.String() + ":" + n.Text
	case Phrase:
		return "1:" + n.Case.String() + ":" + n.Text
	case Range:
		return "2:" + n.Lo + ":" + n.Hi
	case Context:
		return "3:" + joinSorted(n.Contexts) + ":" + rank(n.Inner)
	case Boost:
		return "4:" + rank(n.Inner)
	case Binary:
		return "5:" + n.Op.String() + ":" + rank(n.Left) + ":" + rank(n.Right)
	default:
		return "9"
	}
}

func sortedCopy(ss []string) []string {
	out := make([]string, len(ss))
	copy(out, ss)
	sort.Strings(out)
	return out
}

func joinSorted(ss []string) string {
	sorted := sortedCopy(ss)
	out := ""
	for i, s := range sorted {
		if i > 0 {
			out += ","
		}
		out += s
	}
	return out
}
