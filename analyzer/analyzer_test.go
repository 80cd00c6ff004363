package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultAnalyzeLowercasesAndSplits(t *testing.T) {
	a := NewDefault()
	tokens := a.Analyze("Hello, World!")

	words := make([]string, len(tokens))
	for i, tok := range tokens {
		words[i] = tok.Word
	}
	assert.Equal(t, []string{"hello", "world"}, words)
}

func TestDefaultAnalyzeSplitsCamelCase(t *testing.T) {
	a := NewDefault()
	tokens := a.Analyze("theOffice")
	words := make([]string, len(tokens))
	for i, tok := range tokens {
		words[i] = tok.Word
	}
	assert.Equal(t, []string{"the", "office"}, words)
}

func TestDefaultNormalizeRejectsEmpty(t *testing.T) {
	a := NewDefault()
	_, err := a.Normalize("   ")
	assert.Error(t, err)
}

func TestKeywordAnalyzeIsSingleToken(t *testing.T) {
	k := NewKeyword()
	tokens := k.Analyze("Some Exact Value")
	require.Len(t, tokens, 1)
	assert.Equal(t, "Some Exact Value", tokens[0].Word)
}

func TestDateNormalizeValidatesFormat(t *testing.T) {
	d := NewDate()

	got, err := d.Normalize("2014-01-15")
	require.NoError(t, err)
	assert.Equal(t, "2014-01-15", got)

	_, err = d.Normalize("01/15/2014")
	assert.Error(t, err)
}
