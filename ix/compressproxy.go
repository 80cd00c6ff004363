package ix

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"

	"github.com/gcbaptista/huntdex/postings"
)

// Blob is a compressed, gob-encoded value. It trivially satisfies Value[Blob]
// so a Blob can be stored in a plain TermIndex[string, Blob]; its DeleteDocs is
// never actually exercised by CompressIndex, which always operates on the
// decompressed V instead.
type Blob []byte

func (b Blob) IsEmpty() bool                                  { return len(b) == 0 }
func (b Blob) DeleteDocs(_ map[postings.DocID]struct{}) Blob { return b }

// Codec decompresses and (re)compresses index values. CompressIndex is
// generic over V so any Value implementation can be compressed, as long as
// it can be gob-encoded.
type Codec[V any] struct {
	encoder *zstd.Encoder
	decoder *zstd.Decoder
	mu      sync.Mutex
}

// NewCodec builds a Codec backed by klauspost/compress's zstd implementation,
// trading CPU for RAM in exchange for a smaller resident posting-list size.
func NewCodec[V any]() (*Codec[V], error) {
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, fmt.Errorf("ix: building zstd encoder: %w", err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("ix: building zstd decoder: %w", err)
	}
	return &Codec[V]{encoder: enc, decoder: dec}, nil
}

func (c *Codec[V]) Compress(v V) (Blob, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, fmt.Errorf("ix: gob-encoding value: %w", err)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.encoder.EncodeAll(buf.Bytes(), nil), nil
}

func (c *Codec[V]) Decompress(b Blob) (V, error) {
	var zero V
	c.mu.Lock()
	raw, err := c.decoder.DecodeAll(b, nil)
	c.mu.Unlock()
	if err != nil {
		return zero, fmt.Errorf("ix: zstd-decompressing value: %w", err)
	}
	var v V
	if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(&v); err != nil {
		return zero, fmt.Errorf("ix: gob-decoding value: %w", err)
	}
	return v, nil
}

// CompressIndex wraps an inner TermIndex[string, Blob], transparently
// compressing values on write and decompressing on read. DeleteDocs bypasses
// the inner index's own (no-op) DeleteDocs: it decodes every posting, applies
// deletion to the decompressed value, drops entries that become empty, and
// recompresses.
type CompressIndex[V Value[V]] struct {
	inner TermIndex[string, Blob]
	codec *Codec[V]
}

// NewCompressIndex wraps inner with codec.
func NewCompressIndex[V Value[V]](inner TermIndex[string, Blob], codec *Codec[V]) *CompressIndex[V] {
	return &CompressIndex[V]{inner: inner, codec: codec}
}

func (c *CompressIndex[V]) InsertList(op func(existing, incoming V) V, entries []Entry[string, V]) {
	combined := make([]Entry[string, Blob], 0, len(entries))
	for _, e := range entries {
		existingBlob := c.inner.Search(Case, e.Key)
		incoming := e.Value
		if len(existingBlob) == 1 {
			existingVal, err := c.codec.Decompress(existingBlob[0].Value)
			if err == nil {
				incoming = op(existingVal, e.Value)
			}
		}
		blob, err := c.codec.Compress(incoming)
		if err != nil {
			continue
		}
		combined = append(combined, Entry[string, Blob]{Key: e.Key, Value: blob})
	}
	c.inner.InsertList(func(_, incoming Blob) Blob { return incoming }, combined)
}

func (c *CompressIndex[V]) DeleteDocs(ids map[postings.DocID]struct{}) {
	if len(ids) == 0 {
		return
	}
	entries := c.inner.ToList()
	out := make([]Entry[string, Blob], 0, len(entries))
	for _, e := range entries {
		val, err := c.codec.Decompress(e.Value)
		if err != nil {
			continue
		}
		cleaned := val.DeleteDocs(ids)
		if cleaned.IsEmpty() {
			continue
		}
		blob, err := c.codec.Compress(cleaned)
		if err != nil {
			continue
		}
		out = append(out, Entry[string, Blob]{Key: e.Key, Value: blob})
	}
	c.inner.FromList(out)
}

func (c *CompressIndex[V]) Search(mode SearchMode, key string) []Entry[string, V] {
	return c.decodeAll(c.inner.Search(mode, key))
}

func (c *CompressIndex[V]) LookupRange(lo, hi string) []Entry[string, V] {
	return c.decodeAll(c.inner.LookupRange(lo, hi))
}

func (c *CompressIndex[V]) ToList() []Entry[string, V] {
	return c.decodeAll(c.inner.ToList())
}

func (c *CompressIndex[V]) FromList(entries []Entry[string, V]) {
	out := make([]Entry[string, Blob], 0, len(entries))
	for _, e := range entries {
		blob, err := c.codec.Compress(e.Value)
		if err != nil {
			continue
		}
		out = append(out, Entry[string, Blob]{Key: e.Key, Value: blob})
	}
	c.inner.FromList(out)
}

func (c *CompressIndex[V]) Keys() []string { return c.inner.Keys() }
func (c *CompressIndex[V]) Empty() bool    { return c.inner.Empty() }

func (c *CompressIndex[V]) decodeAll(entries []Entry[string, Blob]) []Entry[string, V] {
	out := make([]Entry[string, V], 0, len(entries))
	for _, e := range entries {
		v, err := c.codec.Decompress(e.Value)
		if err != nil {
			continue
		}
		out = append(out, Entry[string, V]{Key: e.Key, Value: v})
	}
	return out
}
