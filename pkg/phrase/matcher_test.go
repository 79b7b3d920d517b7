package phrase

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kittclouds/conllkit/pkg/tokenize"
)

type failingTokenizer struct {
	fail map[string]bool
	next tokenize.Tokenizer
}

var errTokenizer = errors.New("tokenizer unavailable")

func (f failingTokenizer) Tokenize(text string) (tokenize.Stream, error) {
	if f.fail[text] {
		return nil, errTokenizer
	}
	return f.next.Tokenize(text)
}

func compile(t *testing.T, entities map[string]string) *Matcher {
	t.Helper()
	m, err := Compile(entities, tokenize.NewStandardTokenizer(tokenize.Options{}), Options{})
	require.NoError(t, err)
	return m
}

func TestMatch_MultiToken(t *testing.T) {
	m := compile(t, map[string]string{"New York": "LOC"})

	got := m.Match([]string{"New", "York", "is", "big"})
	assert.Equal(t, []Match{{Key: "New York", Label: "LOC", Start: 0, End: 2}}, got)
}

func TestMatch_EmptyTable(t *testing.T) {
	m := compile(t, map[string]string{})
	assert.Equal(t, 0, m.Len())
	assert.Nil(t, m.Match([]string{"Hi"}))

	var nilMatcher *Matcher
	assert.Nil(t, nilMatcher.Match([]string{"Hi"}))
}

func TestMatch_RepeatedOccurrences(t *testing.T) {
	m := compile(t, map[string]string{"New York": "LOC"})

	got := m.Match([]string{"New", "York", "and", "New", "York"})
	assert.Equal(t, []Match{
		{Key: "New York", Label: "LOC", Start: 0, End: 2},
		{Key: "New York", Label: "LOC", Start: 3, End: 5},
	}, got)
}

func TestMatch_OverlappingOccurrences(t *testing.T) {
	m := compile(t, map[string]string{"ha ha": "LAUGH"})

	got := m.Match([]string{"ha", "ha", "ha"})
	assert.Equal(t, []Match{
		{Key: "ha ha", Label: "LAUGH", Start: 0, End: 2},
		{Key: "ha ha", Label: "LAUGH", Start: 1, End: 3},
	}, got)
}

func TestMatch_NestedPhrases(t *testing.T) {
	m := compile(t, map[string]string{
		"New York":      "LOC",
		"New York City": "GPE",
		"York":          "PER",
	})

	got := m.Match([]string{"New", "York", "City"})
	assert.Equal(t, []Match{
		{Key: "New York", Label: "LOC", Start: 0, End: 2},
		{Key: "New York City", Label: "GPE", Start: 0, End: 3},
		{Key: "York", Label: "PER", Start: 1, End: 2},
	}, got)
}

func TestMatch_ExactTokensOnly(t *testing.T) {
	m := compile(t, map[string]string{"York": "LOC", "new york": "LOC"})

	// case-sensitive, and no partial-token hits
	assert.Equal(t, []Match{{Key: "York", Label: "LOC", Start: 1, End: 2}}, m.Match([]string{"New", "York"}))
	assert.Empty(t, m.Match([]string{"Yorkshire"}))
	assert.Empty(t, m.Match([]string{"NewYork"}))
	assert.Empty(t, m.Match([]string{"New", "Yorks"}))
}

func TestMatch_SharedPattern(t *testing.T) {
	// Both keys tokenize to ["Roma", "."]
	m := compile(t, map[string]string{"Roma.": "LOC", "Roma .": "CITY"})
	assert.Equal(t, 2, m.Len())

	got := m.Match([]string{"Roma", "."})
	assert.Equal(t, []Match{
		{Key: "Roma .", Label: "CITY", Start: 0, End: 2},
		{Key: "Roma.", Label: "LOC", Start: 0, End: 2},
	}, got)
}

func TestMatch_IgnoresNULInsideDocumentToken(t *testing.T) {
	m := compile(t, map[string]string{"b": "X", "a b": "Y"})

	got := m.Match([]string{"a\x00b", "b"})
	assert.Equal(t, []Match{{Key: "b", Label: "X", Start: 1, End: 2}}, got)
}

func TestCompile_SkipsUntokenizablePhrases(t *testing.T) {
	tok := failingTokenizer{
		fail: map[string]bool{"Carthago": true},
		next: tokenize.NewStandardTokenizer(tokenize.Options{}),
	}

	m, err := Compile(map[string]string{
		"Carthago": "LOC",
		"Roma":     "LOC",
		"":         "EMPTY",
		"bad\x00":  "NUL",
	}, tok, Options{})
	require.NoError(t, err)

	assert.Equal(t, 1, m.Len())
	require.Len(t, m.Skipped(), 3)

	var sawTokenizerErr bool
	for _, s := range m.Skipped() {
		if errors.Is(s, errTokenizer) {
			sawTokenizerErr = true
			assert.Equal(t, "Carthago", s.Phrase)
		}
	}
	assert.True(t, sawTokenizerErr)

	got := m.Match([]string{"Carthago", "Roma"})
	assert.Equal(t, []Match{{Key: "Roma", Label: "LOC", Start: 1, End: 2}}, got)
}
