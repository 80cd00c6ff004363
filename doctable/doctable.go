// Package doctable implements the document table: DocId <-> URI, and DocId ->
// stored document, with a custom GobEncode/GobDecode excluding the mutex,
// extended with idempotent insert, adjust, and set-difference operations.
package doctable

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"sync"

	"github.com/gcbaptista/huntdex/model"
	"github.com/gcbaptista/huntdex/postings"
)

func init() {
	gob.Register([]interface{}{})
	gob.Register(map[string]interface{}{})
	gob.Register([]string{})
	gob.Register(float64(0))
	gob.Register(false)
}

// Table maps DocIDs to stored documents and back to their URIs.
type Table struct {
	mu          sync.RWMutex
	docs        map[postings.DocID]model.Document
	uriToDoc    map[string]postings.DocID
	nextID      postings.DocID
}

// New returns an empty document table.
func New() *Table {
	return &Table{
		docs:     make(map[postings.DocID]model.Document),
		uriToDoc: make(map[string]postings.DocID),
	}
}

// Size returns the number of live documents.
func (t *Table) Size() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.docs)
}

// Lookup returns the document stored under id.
func (t *Table) Lookup(id postings.DocID) (model.Document, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	d, ok := t.docs[id]
	return d, ok
}

// LookupByURI returns the document stored under uri.
func (t *Table) LookupByURI(uri string) (model.Document, postings.DocID, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	id, ok := t.uriToDoc[uri]
	if !ok {
		return nil, 0, false
	}
	return t.docs[id], id, true
}

// Insert adds doc under its URI. Idempotent: if the URI already exists, the
// table is left unchanged and the existing DocID is returned.
func (t *Table) Insert(uri string, doc model.Document) (postings.DocID, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if id, ok := t.uriToDoc[uri]; ok {
		return id, false
	}

	id := t.nextID
	t.nextID++
	t.docs[id] = doc
	t.uriToDoc[uri] = id
	return id, true
}

// Update replaces the document stored at id. Returns false if id is not
// live.
func (t *Table) Update(id postings.DocID, doc model.Document) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.docs[id]; !ok {
		return false
	}
	t.docs[id] = doc
	return true
}

// Adjust applies f to the document at id in place, if it exists.
func (t *Table) Adjust(id postings.DocID, f func(model.Document) model.Document) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	doc, ok := t.docs[id]
	if !ok {
		return false
	}
	t.docs[id] = f(doc)
	return true
}

// AdjustByURI applies f to the document stored under uri, if it exists.
func (t *Table) AdjustByURI(uri string, f func(model.Document) model.Document) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	id, ok := t.uriToDoc[uri]
	if !ok {
		return false
	}
	t.docs[id] = f(t.docs[id])
	return true
}

// Delete removes the document at id, if it exists.
func (t *Table) Delete(id postings.DocID) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	doc, ok := t.docs[id]
	if !ok {
		return false
	}
	if uri, ok := doc.URI(); ok {
		delete(t.uriToDoc, uri)
	}
	delete(t.docs, id)
	return true
}

// DeleteByURI removes the document stored under uri, if it exists, and
// reports the DocID that was freed.
func (t *Table) DeleteByURI(uri string) (postings.DocID, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	id, ok := t.uriToDoc[uri]
	if !ok {
		return 0, false
	}
	delete(t.docs, id)
	delete(t.uriToDoc, uri)
	return id, true
}

// Difference removes every DocID in ids from the table. Missing ids are
// silently ignored.
func (t *Table) Difference(ids map[postings.DocID]struct{}) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for id := range ids {
		doc, ok := t.docs[id]
		if !ok {
			continue
		}
		if uri, ok := doc.URI(); ok {
			delete(t.uriToDoc, uri)
		}
		delete(t.docs, id)
	}
}

// DifferenceByURI removes every document whose URI is in uris.
func (t *Table) DifferenceByURI(uris map[string]struct{}) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for uri := range uris {
		id, ok := t.uriToDoc[uri]
		if !ok {
			continue
		}
		delete(t.docs, id)
		delete(t.uriToDoc, uri)
	}
}

// Clone returns an independent deep copy, the basis for a write transition
// under the single-writer/multi-reader model: a writer takes an exclusive
// token and computes the next indexer from a clone of the current one.
func (t *Table) Clone() *Table {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := &Table{
		docs:     make(map[postings.DocID]model.Document, len(t.docs)),
		uriToDoc: make(map[string]postings.DocID, len(t.uriToDoc)),
		nextID:   t.nextID,
	}
	for id, doc := range t.docs {
		out.docs[id] = doc.Clone()
	}
	for uri, id := range t.uriToDoc {
		out.uriToDoc[uri] = id
	}
	return out
}

// Map applies f to every stored document in place.
func (t *Table) Map(f func(model.Document) model.Document) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for id, doc := range t.docs {
		t.docs[id] = f(doc)
	}
}

// Filter removes every document for which keep returns false.
func (t *Table) Filter(keep func(postings.DocID, model.Document) bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for id, doc := range t.docs {
		if keep(id, doc) {
			continue
		}
		if uri, ok := doc.URI(); ok {
			delete(t.uriToDoc, uri)
		}
		delete(t.docs, id)
	}
}

// ToMap returns a snapshot copy of every stored document keyed by DocID.
func (t *Table) ToMap() map[postings.DocID]model.Document {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make(map[postings.DocID]model.Document, len(t.docs))
	for id, doc := range t.docs {
		out[id] = doc
	}
	return out
}

// gobTableData is the gob-encoded shape of a Table, excluding its mutex.
type gobTableData struct {
	Docs     map[postings.DocID]model.Document
	URIToDoc map[string]postings.DocID
	NextID   postings.DocID
}

// GobEncode implements gob.GobEncoder.
func (t *Table) GobEncode() ([]byte, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	data := gobTableData{
		Docs:     t.docs,
		URIToDoc: t.uriToDoc,
		NextID:   t.nextID,
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(data); err != nil {
		return nil, fmt.Errorf("doctable: gob-encoding table: %w", err)
	}
	return buf.Bytes(), nil
}

// GobDecode implements gob.GobDecoder.
func (t *Table) GobDecode(data []byte) error {
	var decoded gobTableData
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&decoded); err != nil {
		return fmt.Errorf("doctable: gob-decoding table: %w", err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.docs = decoded.Docs
	if t.docs == nil {
		t.docs = make(map[postings.DocID]model.Document)
	}
	t.uriToDoc = decoded.URIToDoc
	if t.uriToDoc == nil {
		t.uriToDoc = make(map[string]postings.DocID)
	}
	t.nextID = decoded.NextID
	return nil
}
