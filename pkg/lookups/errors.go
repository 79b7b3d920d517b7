package lookups

import "fmt"

// LookupFormatError reports a lookup source that did not decode to a flat
// string-to-string mapping. It is fatal for a run: no document may be
// annotated from a partially loaded store.
type LookupFormatError struct {
	Source   string
	Category Category
	Err      error
}

func (e *LookupFormatError) Error() string {
	return fmt.Sprintf("lookups: %s table %q is not a flat string mapping: %v", e.Category, e.Source, e.Err)
}

func (e *LookupFormatError) Unwrap() error {
	return e.Err
}
