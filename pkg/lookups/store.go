package lookups

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/vmihailenco/msgpack/v5"
)

// Store holds the three lookup tables. It is read-only after construction
// and safe to share between goroutines.
type Store struct {
	lemma  map[string]string
	pos    map[string]string
	entity map[string]string
}

// NewStore builds a Store from in-memory tables. The maps are copied; nil
// maps are treated as empty.
func NewStore(lemma, pos, entity map[string]string) *Store {
	return &Store{
		lemma:  copyTable(lemma),
		pos:    copyTable(pos),
		entity: copyTable(entity),
	}
}

// Load reads every source once and assembles the store. Sources sharing a
// category are merged in order, later keys overriding earlier ones. A
// category with no source yields an empty table.
func Load(sources []Source) (*Store, error) {
	tables := map[Category]map[string]string{
		CategoryLemma:  {},
		CategoryPOS:    {},
		CategoryEntity: {},
	}

	for _, src := range sources {
		table, ok := tables[src.Category]
		if !ok {
			return nil, &UnknownCategoryError{Name: src.Category.String()}
		}

		data, err := os.ReadFile(src.Path)
		if err != nil {
			return nil, fmt.Errorf("lookups: read %s table %q: %w", src.Category, src.Name, err)
		}

		decoded, err := Decode(src.Name, src.Category, src.Format, data)
		if err != nil {
			return nil, err
		}
		for k, v := range decoded {
			table[k] = v
		}
	}

	return &Store{
		lemma:  tables[CategoryLemma],
		pos:    tables[CategoryPOS],
		entity: tables[CategoryEntity],
	}, nil
}

// Decode parses one lookup table. The payload must be an object whose values
// are all strings; anything else is a *LookupFormatError.
func Decode(name string, category Category, format Format, data []byte) (map[string]string, error) {
	var raw interface{}
	var err error
	switch format {
	case FormatMsgpack:
		err = msgpack.Unmarshal(data, &raw)
	default:
		err = json.Unmarshal(data, &raw)
	}
	if err != nil {
		return nil, &LookupFormatError{Source: name, Category: category, Err: err}
	}

	obj, ok := raw.(map[string]interface{})
	if !ok {
		return nil, &LookupFormatError{
			Source:   name,
			Category: category,
			Err:      fmt.Errorf("top-level value is %s, want object", describe(raw)),
		}
	}

	table := make(map[string]string, len(obj))
	for k, v := range obj {
		s, ok := v.(string)
		if !ok {
			return nil, &LookupFormatError{
				Source:   name,
				Category: category,
				Err:      fmt.Errorf("value for key %q is %s, want string", k, describe(v)),
			}
		}
		table[k] = s
	}
	return table, nil
}

// Lemma returns the lemma for a surface form.
func (s *Store) Lemma(form string) (string, bool) {
	v, ok := s.lemma[form]
	return v, ok
}

// POS returns the part-of-speech tag for a surface form.
func (s *Store) POS(form string) (string, bool) {
	v, ok := s.pos[form]
	return v, ok
}

// EntityLabel returns the label of an entity phrase.
func (s *Store) EntityLabel(phrase string) (string, bool) {
	v, ok := s.entity[phrase]
	return v, ok
}

// Entities returns a copy of the entity phrase table.
func (s *Store) Entities() map[string]string {
	return copyTable(s.entity)
}

// HasEntities reports whether any entity phrase was loaded.
func (s *Store) HasEntities() bool {
	return len(s.entity) > 0
}

// Len returns the number of entries in a table.
func (s *Store) Len(c Category) int {
	switch c {
	case CategoryLemma:
		return len(s.lemma)
	case CategoryPOS:
		return len(s.pos)
	case CategoryEntity:
		return len(s.entity)
	}
	return 0
}

// Each calls fn for every entry of a table. Iteration order is unspecified.
func (s *Store) Each(c Category, fn func(key, value string)) {
	var table map[string]string
	switch c {
	case CategoryLemma:
		table = s.lemma
	case CategoryPOS:
		table = s.pos
	case CategoryEntity:
		table = s.entity
	}
	for k, v := range table {
		fn(k, v)
	}
}

func copyTable(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func describe(v interface{}) string {
	switch v.(type) {
	case nil:
		return "null"
	case []interface{}:
		return "array"
	case map[string]interface{}:
		return "object"
	case string:
		return "string"
	case bool:
		return "bool"
	default:
		return fmt.Sprintf("%T", v)
	}
}
