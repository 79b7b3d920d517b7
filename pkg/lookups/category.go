// Package lookups holds the externally supplied lookup tables (lemma, POS,
// entity phrase) that are overlaid onto tokenized documents.
package lookups

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Category identifies which table a lookup source populates.
type Category int

const (
	CategoryUnknown Category = iota
	CategoryLemma
	CategoryPOS
	CategoryEntity
)

func (c Category) String() string {
	switch c {
	case CategoryLemma:
		return "lemma"
	case CategoryPOS:
		return "pos"
	case CategoryEntity:
		return "entity"
	default:
		return "unknown"
	}
}

// ParseCategory parses a category name as written in configuration files.
func ParseCategory(s string) (Category, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "lemma", "lemmas":
		return CategoryLemma, true
	case "pos", "tag", "tags":
		return CategoryPOS, true
	case "entity", "entities", "ent", "ents":
		return CategoryEntity, true
	default:
		return CategoryUnknown, false
	}
}

// UnmarshalText lets Category be decoded straight from TOML/JSON strings.
func (c *Category) UnmarshalText(text []byte) error {
	parsed, ok := ParseCategory(string(text))
	if !ok {
		return &UnknownCategoryError{Name: string(text)}
	}
	*c = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// CategoryFromName derives a category from a lookup file name using the
// "<lang>_<kind>..." naming convention: the part of the stem after the first
// underscore is searched for "lemma", "entity" and "pos", in that order.
//
// Only directory discovery uses this; configured sources carry an explicit
// category.
func CategoryFromName(name string) (Category, bool) {
	stem := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	key := stem[strings.Index(stem, "_")+1:]
	switch {
	case strings.Contains(key, "lemma"):
		return CategoryLemma, true
	case strings.Contains(key, "entity"):
		return CategoryEntity, true
	case strings.Contains(key, "pos"):
		return CategoryPOS, true
	}
	return CategoryUnknown, false
}

// UnknownCategoryError is returned for category names that do not map to
// one of the three tables.
type UnknownCategoryError struct {
	Name string
}

func (e *UnknownCategoryError) Error() string {
	return fmt.Sprintf("lookups: unknown category %q", e.Name)
}
