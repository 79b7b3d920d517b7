package annotate

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/kittclouds/conllkit/pkg/lookups"
	"github.com/kittclouds/conllkit/pkg/phrase"
	"github.com/kittclouds/conllkit/pkg/tokenize"
)

// ErrNoLookupStore is returned when an Annotator is built without lookups.
// Annotating without them would silently produce incomplete output.
var ErrNoLookupStore = errors.New("annotate: lookup store not loaded")

// Options configures an Annotator.
type Options struct {
	// Tags is the POS vocabulary. Nil accepts any tag.
	Tags *TagSet

	// Logger for recovered per-token and per-phrase failures. If nil,
	// slog.Default() is used.
	Logger *slog.Logger
}

// Stats counts what one Annotate call changed.
type Stats struct {
	LemmaHits   int
	POSHits     int
	POSRejected int
	Spans       int
}

// Add accumulates another document's stats.
func (s *Stats) Add(o Stats) {
	s.LemmaHits += o.LemmaHits
	s.POSHits += o.POSHits
	s.POSRejected += o.POSRejected
	s.Spans += o.Spans
}

// Annotator applies a lookup store to documents. It holds no per-document
// state and may be shared by concurrent workers.
type Annotator struct {
	store   *lookups.Store
	matcher *phrase.Matcher
	tags    *TagSet
	logger  *slog.Logger
}

// New builds an Annotator. The entity phrases are tokenized with tok and
// compiled once; when the store has no entity table, phrase matching is
// skipped for every document.
func New(store *lookups.Store, tok tokenize.Tokenizer, opts Options) (*Annotator, error) {
	if store == nil {
		return nil, ErrNoLookupStore
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	a := &Annotator{
		store:  store,
		tags:   opts.Tags,
		logger: logger,
	}

	if store.HasEntities() {
		m, err := phrase.Compile(store.Entities(), tok, phrase.Options{Logger: logger})
		if err != nil {
			return nil, fmt.Errorf("annotate: compile entity phrases: %w", err)
		}
		a.matcher = m
	}

	return a, nil
}

// SkippedPhrases returns the entity phrases that could not be tokenized.
func (a *Annotator) SkippedPhrases() []*phrase.PhraseTokenizationError {
	return a.matcher.Skipped()
}

// Annotate sets lemma and POS on every token with a lookup hit and appends
// one span per entity phrase occurrence. The document is modified in place
// and returned.
func (a *Annotator) Annotate(doc *Document) (*Document, error) {
	if _, err := a.AnnotateStats(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// AnnotateStats is Annotate that also reports what changed.
func (a *Annotator) AnnotateStats(doc *Document) (Stats, error) {
	var stats Stats
	if a == nil || a.store == nil {
		return stats, ErrNoLookupStore
	}
	if doc == nil {
		return stats, errors.New("annotate: nil document")
	}

	for i := range doc.Tokens {
		t := &doc.Tokens[i]

		if lemma, ok := a.store.Lemma(t.Text); ok && lemma != "" {
			t.Lemma = lemma
			stats.LemmaHits++
		}

		pos, ok := a.store.POS(t.Text)
		if !ok || pos == "" {
			continue
		}
		if err := a.tags.Validate(pos); err != nil {
			var tagErr *TagAssignmentError
			if errors.As(err, &tagErr) {
				tagErr.Doc, tagErr.Index, tagErr.Form = doc.ID, t.Index, t.Text
			}
			a.logger.Warn("rejecting POS tag", "doc", doc.ID, "token", t.Index, "form", t.Text, "tag", pos, "error", err)
			stats.POSRejected++
			continue
		}
		t.POS = pos
		stats.POSHits++
	}

	if a.matcher == nil {
		return stats, nil
	}

	for _, m := range a.matcher.Match(doc.Texts()) {
		if err := doc.AddSpan(m.Label, m.Start, m.End); err != nil {
			return stats, fmt.Errorf("annotate: entity %q: %w", m.Key, err)
		}
		stats.Spans++
	}

	return stats, nil
}
