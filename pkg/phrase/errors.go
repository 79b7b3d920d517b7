package phrase

import "fmt"

// PhraseTokenizationError reports an entity phrase that could not be
// tokenized. The phrase is skipped; matching continues for the others.
type PhraseTokenizationError struct {
	Phrase string
	Err    error
}

func (e *PhraseTokenizationError) Error() string {
	return fmt.Sprintf("phrase: cannot tokenize %q: %v", e.Phrase, e.Err)
}

func (e *PhraseTokenizationError) Unwrap() error {
	return e.Err
}
