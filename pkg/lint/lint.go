// Package lint checks lookup tables for entries that load fine but are
// unlikely to do what their author meant.
package lint

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/orsinium-labs/stopwords"

	"github.com/kittclouds/conllkit/pkg/lookups"
	"github.com/kittclouds/conllkit/pkg/tokenize"
)

// Severity ranks a finding.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}
	return "warning"
}

// Finding is one suspicious lookup entry.
type Finding struct {
	Severity Severity
	Category lookups.Category
	Key      string
	Message  string
}

func (f Finding) String() string {
	return fmt.Sprintf("%s: %s %q: %s", f.Severity, f.Category, f.Key, f.Message)
}

// Checker inspects a lookup store.
type Checker struct {
	tok             tokenize.Tokenizer
	stopwordChecker *stopwords.Stopwords
}

// New creates a Checker. lang selects the stopword list (e.g. "en"); an empty
// lang disables the stopword check.
func New(tok tokenize.Tokenizer, lang string) (*Checker, error) {
	c := &Checker{tok: tok}
	if lang == "" {
		return c, nil
	}
	sw, err := loadStopwords(lang)
	if err != nil {
		return nil, err
	}
	c.stopwordChecker = sw
	return c, nil
}

func loadStopwords(lang string) (sw *stopwords.Stopwords, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lint: no stopword list for language %q", lang)
		}
	}()
	sw = stopwords.MustGet(lang)
	if sw == nil {
		return nil, fmt.Errorf("lint: no stopword list for language %q", lang)
	}
	return sw, nil
}

// Check returns the findings for every table, sorted by category and key.
func (c *Checker) Check(store *lookups.Store) []Finding {
	var out []Finding

	for _, cat := range []lookups.Category{lookups.CategoryLemma, lookups.CategoryPOS, lookups.CategoryEntity} {
		store.Each(cat, func(key, value string) {
			if strings.TrimSpace(value) == "" {
				out = append(out, Finding{SeverityError, cat, key, "empty value"})
			}
			if key != strings.TrimSpace(key) {
				out = append(out, Finding{SeverityWarning, cat, key, "key has leading or trailing whitespace and only matches whitespace tokens"})
			}
			if cat == lookups.CategoryEntity {
				out = append(out, c.checkPhrase(key)...)
			}
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		if out[i].Key != out[j].Key {
			return out[i].Key < out[j].Key
		}
		return out[i].Message < out[j].Message
	})
	return out
}

func (c *Checker) checkPhrase(key string) []Finding {
	if c.tok == nil {
		return nil
	}
	stream, err := c.tok.Tokenize(key)
	if err != nil {
		return []Finding{{SeverityWarning, lookups.CategoryEntity, key, fmt.Sprintf("cannot tokenize: %v", err)}}
	}
	if len(stream) == 0 {
		return []Finding{{SeverityWarning, lookups.CategoryEntity, key, "phrase has no tokens and is never matched"}}
	}
	if c.stopwordChecker == nil {
		return nil
	}

	words := 0
	for _, t := range stream {
		if t.IsSpace || !hasLetter(t.Text) {
			continue
		}
		words++
		if !c.stopwordChecker.Contains(strings.ToLower(t.Text)) {
			return nil
		}
	}
	if words == 0 {
		return nil
	}
	return []Finding{{SeverityWarning, lookups.CategoryEntity, key, "phrase consists only of stopwords"}}
}

// HasErrors reports whether any finding is an error.
func HasErrors(findings []Finding) bool {
	for _, f := range findings {
		if f.Severity == SeverityError {
			return true
		}
	}
	return false
}

func hasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
