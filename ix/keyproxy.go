package ix

import "github.com/gcbaptista/huntdex/postings"

// Bijection converts between an outer key type K and the string keys an inner
// TermIndex actually stores. To must be injective: distinct K values must
// produce distinct strings, or entries silently collide.
type Bijection[K any] struct {
	To   func(K) string
	From func(string) K
}

// KeyConvIndex exposes a TermIndex[K, V] over an inner TermIndex[string, V],
// translating every key through a Bijection. This is how non-string key types
// (dates, normalized/case-folded text, numeric ranges encoded as order-
// preserving strings) get a term index without duplicating the storage logic in
// StringIndex.
type KeyConvIndex[K any, V Value[V]] struct {
	inner TermIndex[string, V]
	conv  Bijection[K]
}

// NewKeyConvIndex wraps inner with conv.
func NewKeyConvIndex[K any, V Value[V]](inner TermIndex[string, V], conv Bijection[K]) *KeyConvIndex[K, V] {
	return &KeyConvIndex[K, V]{inner: inner, conv: conv}
}

func (p *KeyConvIndex[K, V]) InsertList(op func(existing, incoming V) V, entries []Entry[K, V]) {
	converted := make([]Entry[string, V], len(entries))
	for i, e := range entries {
		converted[i] = Entry[string, V]{Key: p.conv.To(e.Key), Value: e.Value}
	}
	p.inner.InsertList(op, converted)
}

func (p *KeyConvIndex[K, V]) DeleteDocs(ids map[postings.DocID]struct{}) {
	p.inner.DeleteDocs(ids)
}

func (p *KeyConvIndex[K, V]) Search(mode SearchMode, key K) []Entry[K, V] {
	return p.fromInner(p.inner.Search(mode, p.conv.To(key)))
}

func (p *KeyConvIndex[K, V]) LookupRange(lo, hi K) []Entry[K, V] {
	return p.fromInner(p.inner.LookupRange(p.conv.To(lo), p.conv.To(hi)))
}

func (p *KeyConvIndex[K, V]) ToList() []Entry[K, V] {
	return p.fromInner(p.inner.ToList())
}

func (p *KeyConvIndex[K, V]) FromList(entries []Entry[K, V]) {
	converted := make([]Entry[string, V], len(entries))
	for i, e := range entries {
		converted[i] = Entry[string, V]{Key: p.conv.To(e.Key), Value: e.Value}
	}
	p.inner.FromList(converted)
}

func (p *KeyConvIndex[K, V]) Keys() []K {
	innerKeys := p.inner.Keys()
	out := make([]K, len(innerKeys))
	for i, k := range innerKeys {
		out[i] = p.conv.From(k)
	}
	return out
}

func (p *KeyConvIndex[K, V]) Empty() bool { return p.inner.Empty() }

func (p *KeyConvIndex[K, V]) fromInner(entries []Entry[string, V]) []Entry[K, V] {
	out := make([]Entry[K, V], len(entries))
	for i, e := range entries {
		out[i] = Entry[K, V]{Key: p.conv.From(e.Key), Value: e.Value}
	}
	return out
}
