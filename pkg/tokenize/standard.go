package tokenize

import (
	"unicode"
	"unicode/utf8"
)

// StandardTokenizer splits on whitespace and additionally separates
// punctuation and symbols into single-rune tokens. Joiners stay inside a word
// when both neighbours are letters or digits, so "O'Brien", "Jean-Luc" and
// "3.14" survive as one token.
type StandardTokenizer struct {
	opts Options
}

// NewStandardTokenizer creates a StandardTokenizer.
func NewStandardTokenizer(opts Options) *StandardTokenizer {
	return &StandardTokenizer{opts: opts}
}

// Tokenize implements Tokenizer.
func (t *StandardTokenizer) Tokenize(text string) (Stream, error) {
	return scan(t.opts.prepare(text), splitPunct), nil
}

func isJoiner(r rune) bool {
	switch r {
	case '\'', '’', '-', '.', '·':
		return true
	default:
		return false
	}
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r) || r == '_'
}

func splitPunct(word string) []string {
	var pieces []string
	start := -1
	prev := utf8.RuneError

	for i, r := range word {
		switch {
		case isWordRune(r):
			if start < 0 {
				start = i
			}
		case isJoiner(r) && start >= 0 && isWordRune(prev) && nextIsWord(word, i+utf8.RuneLen(r)):
			// stays inside the current word
		default:
			if start >= 0 {
				pieces = append(pieces, word[start:i])
				start = -1
			}
			pieces = append(pieces, string(r))
		}
		prev = r
	}
	if start >= 0 {
		pieces = append(pieces, word[start:])
	}
	return pieces
}

func nextIsWord(s string, i int) bool {
	if i >= len(s) {
		return false
	}
	r, _ := utf8.DecodeRuneInString(s[i:])
	return isWordRune(r)
}
