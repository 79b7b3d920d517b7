// Package annotate overlays lookup tables onto tokenized documents: lemma and
// POS per token, and entity spans found by phrase matching.
package annotate

import (
	"fmt"

	"github.com/kittclouds/conllkit/pkg/tokenize"
)

// Token is a document-owned token record. Index is its 0-based position.
type Token struct {
	Index           int
	Text            string
	Lemma           string
	POS             string
	IsSpace         bool
	WhitespaceAfter bool
}

// Span labels the tokens [Start, End).
type Span struct {
	Label string
	Start int
	End   int
}

// Len returns the number of tokens covered.
func (s Span) Len() int {
	return s.End - s.Start
}

// Document is an ordered token arena plus the entity spans discovered on it.
// ID is the caller's provenance identifier (usually the source file name).
type Document struct {
	ID     string
	Tokens []Token
	Spans  []Span
}

// NewDocument copies a token stream into a new document, assigning
// contiguous indices. The document never aliases the stream.
func NewDocument(id string, stream tokenize.Stream) *Document {
	tokens := make([]Token, len(stream))
	for i, t := range stream {
		tokens[i] = Token{
			Index:           i,
			Text:            t.Text,
			IsSpace:         t.IsSpace,
			WhitespaceAfter: t.WhitespaceAfter,
		}
	}
	return &Document{ID: id, Tokens: tokens}
}

// Texts returns the surface forms in token order.
func (d *Document) Texts() []string {
	out := make([]string, len(d.Tokens))
	for i, t := range d.Tokens {
		out[i] = t.Text
	}
	return out
}

// AddSpan appends a span after checking it lies inside the document.
func (d *Document) AddSpan(label string, start, end int) error {
	if start < 0 || end > len(d.Tokens) || start >= end {
		return fmt.Errorf("annotate: document %q: span [%d, %d) outside [0, %d)", d.ID, start, end, len(d.Tokens))
	}
	d.Spans = append(d.Spans, Span{Label: label, Start: start, End: end})
	return nil
}

// EntityLabels resolves the spans to one label per token index. Spans are
// applied in insertion order, so a token covered by several spans carries
// the label of the last one. The CoNLL NER column has no way to express more
// than one entity per token.
func (d *Document) EntityLabels() map[int]string {
	labels := make(map[int]string)
	for _, s := range d.Spans {
		for i := s.Start; i < s.End; i++ {
			labels[i] = s.Label
		}
	}
	return labels
}
