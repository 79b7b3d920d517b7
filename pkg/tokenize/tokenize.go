// Package tokenize defines the tokenizer capability that produces the token
// stream consumed by the annotator, plus the built-in variants.
package tokenize

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Token is one element of a token stream. Its index is its position.
type Token struct {
	Text            string
	IsSpace         bool
	WhitespaceAfter bool
}

// Stream is an ordered token sequence.
type Stream []Token

// Texts returns the surface forms of the stream in order.
func (s Stream) Texts() []string {
	out := make([]string, len(s))
	for i, t := range s {
		out[i] = t.Text
	}
	return out
}

// Tokenizer turns raw text into a token stream.
type Tokenizer interface {
	Tokenize(text string) (Stream, error)
}

// Options configures the built-in tokenizers.
type Options struct {
	// NormalizeNFC applies Unicode NFC normalization before splitting.
	NormalizeNFC bool
}

func (o Options) prepare(text string) string {
	if o.NormalizeNFC {
		return norm.NFC.String(text)
	}
	return text
}

// splitFunc cuts one non-whitespace run into word pieces.
type splitFunc func(word string) []string

// scan walks text and applies the whitespace convention shared by every
// built-in tokenizer: a single ' ' right after a token is folded into that
// token's WhitespaceAfter flag; every other whitespace run, including
// leading whitespace, becomes an IsSpace token.
func scan(text string, split splitFunc) Stream {
	var out Stream
	i := 0
	for i < len(text) {
		if isSpaceAt(text, i) {
			start := i
			for i < len(text) && isSpaceAt(text, i) {
				_, w := utf8.DecodeRuneInString(text[i:])
				i += w
			}
			ws := text[start:i]
			if n := len(out); n > 0 && !out[n-1].IsSpace && !out[n-1].WhitespaceAfter && ws[0] == ' ' {
				out[n-1].WhitespaceAfter = true
				ws = ws[1:]
			}
			if ws != "" {
				out = append(out, Token{Text: ws, IsSpace: true})
			}
			continue
		}

		start := i
		for i < len(text) && !isSpaceAt(text, i) {
			_, w := utf8.DecodeRuneInString(text[i:])
			i += w
		}
		for _, piece := range split(text[start:i]) {
			out = append(out, Token{Text: piece})
		}
	}
	return out
}

func isSpaceAt(s string, i int) bool {
	r, _ := utf8.DecodeRuneInString(s[i:])
	return unicode.IsSpace(r)
}
