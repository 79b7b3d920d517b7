package tokenize

// WhitespaceTokenizer splits on whitespace only and never alters token text.
type WhitespaceTokenizer struct {
	opts Options
}

// NewWhitespaceTokenizer creates a WhitespaceTokenizer.
func NewWhitespaceTokenizer(opts Options) *WhitespaceTokenizer {
	return &WhitespaceTokenizer{opts: opts}
}

// Tokenize implements Tokenizer.
func (t *WhitespaceTokenizer) Tokenize(text string) (Stream, error) {
	return scan(t.opts.prepare(text), func(word string) []string {
		return []string{word}
	}), nil
}
