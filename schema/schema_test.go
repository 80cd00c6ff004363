package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertContextRejectsDuplicate(t *testing.T) {
	s := New()
	s, err := s.InsertContext("title", ContextSchema{Type: ContextType{Name: TypeText}, Default: true})
	require.NoError(t, err)

	_, err = s.InsertContext("title", ContextSchema{Type: ContextType{Name: TypeText}})
	assert.Error(t, err)
}

func TestDeleteContextIdempotent(t *testing.T) {
	s := New()
	assert.NotPanics(t, func() {
		s = s.DeleteContext("missing")
	})
	assert.False(t, s.Has("missing"))
}

func TestEffectiveWeightDefaultsWhenUnset(t *testing.T) {
	cs := ContextSchema{}
	assert.Equal(t, DefScore, cs.EffectiveWeight())

	cs.Weight = 2.5
	assert.Equal(t, 2.5, cs.EffectiveWeight())
}

func TestDefaultContexts(t *testing.T) {
	s := New()
	s, _ = s.InsertContext("subject", ContextSchema{Type: ContextType{Name: TypeText}, Weight: 2.0, Default: true})
	s, _ = s.InsertContext("content", ContextSchema{Type: ContextType{Name: TypeText}, Default: true})
	s, _ = s.InsertContext("internal_notes", ContextSchema{Type: ContextType{Name: TypeText}, Default: false})

	assert.ElementsMatch(t, []string{"subject", "content"}, s.DefaultContexts())
}

func TestRegistryLookup(t *testing.T) {
	r := DefaultRegistry()
	_, ok := r.Lookup(TypeDate)
	assert.True(t, ok)

	_, ok = r.Lookup("not-a-real-type")
	assert.False(t, ok)
}
