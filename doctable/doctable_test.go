package doctable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcbaptista/huntdex/model"
	"github.com/gcbaptista/huntdex/postings"
)

func doc(uri string) model.Document {
	return model.Document{model.URIField: uri}
}

func TestInsertIsIdempotentOnURI(t *testing.T) {
	tbl := New()
	id1, fresh1 := tbl.Insert("id://1", doc("id://1"))
	assert.True(t, fresh1)

	id2, fresh2 := tbl.Insert("id://1", doc("id://1"))
	assert.False(t, fresh2)
	assert.Equal(t, id1, id2)
	assert.Equal(t, 1, tbl.Size())
}

func TestLookupByURI(t *testing.T) {
	tbl := New()
	id, _ := tbl.Insert("id://1", doc("id://1"))

	got, gotID, ok := tbl.LookupByURI("id://1")
	require.True(t, ok)
	assert.Equal(t, id, gotID)
	assert.Equal(t, "id://1", mustURI(t, got))
}

func mustURI(t *testing.T, d model.Document) string {
	t.Helper()
	uri, ok := d.URI()
	require.True(t, ok)
	return uri
}

func TestDeleteRemovesBothIndexes(t *testing.T) {
	tbl := New()
	id, _ := tbl.Insert("id://1", doc("id://1"))

	assert.True(t, tbl.Delete(id))
	_, ok := tbl.Lookup(id)
	assert.False(t, ok)
	_, _, ok = tbl.LookupByURI("id://1")
	assert.False(t, ok)
}

func TestDifferenceIgnoresMissingIDs(t *testing.T) {
	tbl := New()
	id, _ := tbl.Insert("id://1", doc("id://1"))

	assert.NotPanics(t, func() {
		tbl.Difference(map[postings.DocID]struct{}{id: {}, 999: {}})
	})
	assert.Equal(t, 0, tbl.Size())
}

func TestAdjustByURI(t *testing.T) {
	tbl := New()
	tbl.Insert("id://1", doc("id://1"))

	ok := tbl.AdjustByURI("id://1", func(d model.Document) model.Document {
		d["title"] = "hello"
		return d
	})
	require.True(t, ok)

	got, _, _ := tbl.LookupByURI("id://1")
	assert.Equal(t, "hello", got["title"])
}

func TestGobRoundTrip(t *testing.T) {
	tbl := New()
	tbl.Insert("id://1", doc("id://1"))
	tbl.Insert("id://2", doc("id://2"))

	encoded, err := tbl.GobEncode()
	require.NoError(t, err)

	decoded := New()
	require.NoError(t, decoded.GobDecode(encoded))

	assert.Equal(t, tbl.Size(), decoded.Size())
	_, _, ok := decoded.LookupByURI("id://2")
	assert.True(t, ok)
}
