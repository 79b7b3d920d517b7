package annotate

import (
	"fmt"
	"sort"
)

// universalTags are the Universal Dependencies UPOS tags plus SPACE, the tag
// spaCy assigns to whitespace tokens.
var universalTags = []string{
	"ADJ", "ADP", "ADV", "AUX", "CCONJ", "DET", "INTJ", "NOUN", "NUM",
	"PART", "PRON", "PROPN", "PUNCT", "SCONJ", "SYM", "VERB", "X", "SPACE",
}

// TagSet is the POS vocabulary a lookup value must belong to. A nil or empty
// TagSet accepts every tag.
type TagSet struct {
	tags map[string]bool
}

// NewTagSet creates a vocabulary from the given tags.
func NewTagSet(tags ...string) *TagSet {
	ts := &TagSet{tags: make(map[string]bool, len(tags))}
	ts.add(tags)
	return ts
}

// UniversalTags returns the UPOS vocabulary.
func UniversalTags() *TagSet {
	return NewTagSet(universalTags...)
}

// Extend returns a copy of ts with extra tags added.
func (ts *TagSet) Extend(tags ...string) *TagSet {
	out := NewTagSet()
	if ts != nil {
		for t := range ts.tags {
			out.tags[t] = true
		}
	}
	out.add(tags)
	return out
}

func (ts *TagSet) add(tags []string) {
	for _, t := range tags {
		if t != "" {
			ts.tags[t] = true
		}
	}
}

// Contains reports whether tag is in the vocabulary.
func (ts *TagSet) Contains(tag string) bool {
	if ts == nil || len(ts.tags) == 0 {
		return true
	}
	return ts.tags[tag]
}

// Validate returns a *TagAssignmentError if tag is not in the vocabulary.
func (ts *TagSet) Validate(tag string) error {
	if ts.Contains(tag) {
		return nil
	}
	return &TagAssignmentError{Tag: tag}
}

// Tags returns the vocabulary, sorted.
func (ts *TagSet) Tags() []string {
	if ts == nil {
		return nil
	}
	out := make([]string, 0, len(ts.tags))
	for t := range ts.tags {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// TagAssignmentError reports a POS lookup value rejected by the vocabulary.
// It is recovered per token: the token's POS stays unset.
type TagAssignmentError struct {
	Doc   string
	Index int
	Form  string
	Tag   string
}

func (e *TagAssignmentError) Error() string {
	if e.Doc == "" && e.Form == "" {
		return fmt.Sprintf("annotate: unknown POS tag %q", e.Tag)
	}
	return fmt.Sprintf("annotate: document %q token %d (%q): unknown POS tag %q", e.Doc, e.Index, e.Form, e.Tag)
}
