package annotate

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kittclouds/conllkit/pkg/lookups"
	"github.com/kittclouds/conllkit/pkg/tokenize"
)

func newDoc(t *testing.T, text string) *Document {
	t.Helper()
	stream, err := tokenize.NewStandardTokenizer(tokenize.Options{}).Tokenize(text)
	require.NoError(t, err)
	return NewDocument("doc.txt", stream)
}

func newAnnotator(t *testing.T, store *lookups.Store, opts Options) *Annotator {
	t.Helper()
	a, err := New(store, tokenize.NewStandardTokenizer(tokenize.Options{}), opts)
	require.NoError(t, err)
	return a
}

func TestNewDocument_AssignsIndices(t *testing.T) {
	stream := tokenize.Stream{{Text: "a", WhitespaceAfter: true}, {Text: "\n", IsSpace: true}, {Text: "b"}}
	doc := NewDocument("x", stream)

	require.Len(t, doc.Tokens, 3)
	for i, tok := range doc.Tokens {
		assert.Equal(t, i, tok.Index)
	}
	assert.True(t, doc.Tokens[0].WhitespaceAfter)
	assert.True(t, doc.Tokens[1].IsSpace)

	stream[0].Text = "changed"
	assert.Equal(t, "a", doc.Tokens[0].Text, "document must not alias the stream")
}

func TestAddSpan_Bounds(t *testing.T) {
	doc := newDoc(t, "a b c")

	assert.NoError(t, doc.AddSpan("X", 0, 3))
	assert.Error(t, doc.AddSpan("X", 2, 2))
	assert.Error(t, doc.AddSpan("X", -1, 1))
	assert.Error(t, doc.AddSpan("X", 1, 4))
	assert.Len(t, doc.Spans, 1)
}

func TestEntityLabels_LastSpanWins(t *testing.T) {
	doc := newDoc(t, "a b c d")
	require.NoError(t, doc.AddSpan("LONG", 0, 4))
	require.NoError(t, doc.AddSpan("SHORT", 1, 2))

	assert.Equal(t, map[int]string{0: "LONG", 1: "SHORT", 2: "LONG", 3: "LONG"}, doc.EntityLabels())

	// Reversed insertion order flips the result regardless of length.
	doc.Spans = nil
	require.NoError(t, doc.AddSpan("SHORT", 1, 2))
	require.NoError(t, doc.AddSpan("LONG", 0, 4))
	assert.Equal(t, map[int]string{0: "LONG", 1: "LONG", 2: "LONG", 3: "LONG"}, doc.EntityLabels())
}

func TestAnnotate_NewYork(t *testing.T) {
	store := lookups.NewStore(nil, nil, map[string]string{"New York": "LOC"})
	a := newAnnotator(t, store, Options{})

	doc := newDoc(t, "New York is big")
	got, err := a.Annotate(doc)
	require.NoError(t, err)
	assert.Same(t, doc, got)

	assert.Equal(t, []Span{{Label: "LOC", Start: 0, End: 2}}, doc.Spans)
	assert.Equal(t, map[int]string{0: "LOC", 1: "LOC"}, doc.EntityLabels())
}

func TestAnnotate_LemmaAndPOS(t *testing.T) {
	store := lookups.NewStore(
		map[string]string{"amavit": "amo", "puellae": "puella"},
		map[string]string{"amavit": "VERB", "Marcus": "PROPN"},
		nil,
	)
	a := newAnnotator(t, store, Options{Tags: UniversalTags()})

	doc := newDoc(t, "Marcus amavit puellam .")
	stats, err := a.AnnotateStats(doc)
	require.NoError(t, err)

	assert.Equal(t, Stats{LemmaHits: 1, POSHits: 2}, stats)

	assert.Equal(t, "", doc.Tokens[0].Lemma)
	assert.Equal(t, "PROPN", doc.Tokens[0].POS)
	assert.Equal(t, "amo", doc.Tokens[1].Lemma)
	assert.Equal(t, "VERB", doc.Tokens[1].POS)
	assert.Equal(t, "", doc.Tokens[2].Lemma, "puellam is not a lemma key")
	assert.Empty(t, doc.Spans)
	assert.Empty(t, doc.EntityLabels())
}

func TestAnnotate_RejectedPOSIsLoggedAndSkipped(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	store := lookups.NewStore(nil, map[string]string{"Roma": "CITY", "est": "AUX"}, nil)
	a := newAnnotator(t, store, Options{Tags: UniversalTags(), Logger: logger})

	doc := newDoc(t, "Roma est")
	stats, err := a.AnnotateStats(doc)
	require.NoError(t, err)

	assert.Equal(t, 1, stats.POSRejected)
	assert.Equal(t, "", doc.Tokens[0].POS)
	assert.Equal(t, "AUX", doc.Tokens[1].POS)
	assert.Contains(t, logs.String(), "CITY")
	assert.Contains(t, logs.String(), "doc.txt")
}

func TestAnnotate_ExtendedTagSet(t *testing.T) {
	store := lookups.NewStore(nil, map[string]string{"Roma": "CITY"}, nil)
	a := newAnnotator(t, store, Options{Tags: UniversalTags().Extend("CITY")})

	doc := newDoc(t, "Roma")
	_, err := a.Annotate(doc)
	require.NoError(t, err)
	assert.Equal(t, "CITY", doc.Tokens[0].POS)
}

func TestAnnotate_OverlappingSpansKeepMatchOrder(t *testing.T) {
	store := lookups.NewStore(nil, nil, map[string]string{
		"New York":      "LOC",
		"New York City": "GPE",
		"City":          "ORG",
	})
	a := newAnnotator(t, store, Options{})

	doc := newDoc(t, "New York City")
	_, err := a.Annotate(doc)
	require.NoError(t, err)

	assert.Equal(t, []Span{
		{Label: "LOC", Start: 0, End: 2},
		{Label: "GPE", Start: 0, End: 3},
		{Label: "ORG", Start: 2, End: 3},
	}, doc.Spans)
	assert.Equal(t, map[int]string{0: "GPE", 1: "GPE", 2: "ORG"}, doc.EntityLabels())
}

func TestNew_RequiresStore(t *testing.T) {
	_, err := New(nil, tokenize.NewStandardTokenizer(tokenize.Options{}), Options{})
	assert.True(t, errors.Is(err, ErrNoLookupStore))

	var a *Annotator
	_, err = a.Annotate(&Document{})
	assert.True(t, errors.Is(err, ErrNoLookupStore))
}

func TestAnnotate_NilDocument(t *testing.T) {
	a := newAnnotator(t, lookups.NewStore(nil, nil, nil), Options{})
	_, err := a.Annotate(nil)
	assert.Error(t, err)
}

func TestTagSet(t *testing.T) {
	var empty *TagSet
	assert.NoError(t, empty.Validate("ANYTHING"))

	ts := UniversalTags()
	assert.NoError(t, ts.Validate("NOUN"))

	err := ts.Validate("noun")
	var tagErr *TagAssignmentError
	require.True(t, errors.As(err, &tagErr))
	assert.Equal(t, "noun", tagErr.Tag)
	assert.True(t, strings.Contains(err.Error(), "noun"))

	ext := ts.Extend("LOC")
	assert.True(t, ext.Contains("LOC"))
	assert.False(t, ts.Contains("LOC"), "Extend must not modify the receiver")
	assert.Len(t, ts.Tags(), 18)
}
