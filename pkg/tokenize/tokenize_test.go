package tokenize

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWhitespaceTokenizer(t *testing.T) {
	tok := NewWhitespaceTokenizer(Options{})

	tests := []struct {
		name  string
		input string
		want  Stream
	}{
		{"empty", "", nil},
		{"single", "Hi", Stream{{Text: "Hi"}}},
		{"two words", "New York", Stream{
			{Text: "New", WhitespaceAfter: true},
			{Text: "York"},
		}},
		{"punctuation kept", "big, really.", Stream{
			{Text: "big,", WhitespaceAfter: true},
			{Text: "really."},
		}},
		{"double space", "a  b", Stream{
			{Text: "a", WhitespaceAfter: true},
			{Text: " ", IsSpace: true},
			{Text: "b"},
		}},
		{"newline", "a\nb", Stream{
			{Text: "a"},
			{Text: "\n", IsSpace: true},
			{Text: "b"},
		}},
		{"leading space", " a ", Stream{
			{Text: " ", IsSpace: true},
			{Text: "a", WhitespaceAfter: true},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tok.Tokenize(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStandardTokenizer(t *testing.T) {
	tok := NewStandardTokenizer(Options{})

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"plain", "New York is big", []string{"New", "York", "is", "big"}},
		{"trailing punct", "Hello, world!", []string{"Hello", ",", "world", "!"}},
		{"apostrophe", "O'Brien's", []string{"O'Brien's"}},
		{"hyphen", "Jean-Luc", []string{"Jean-Luc"}},
		{"decimal", "3.14.", []string{"3.14", "."}},
		{"quotes", `"Roma"`, []string{`"`, "Roma", `"`}},
		{"dashes", "a--b", []string{"a", "-", "-", "b"}},
		{"unicode", "Société d'Investissement", []string{"Société", "d'Investissement"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tok.Tokenize(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Texts())
		})
	}
}

func TestStandardTokenizer_SpaceAfterOnPunctuation(t *testing.T) {
	tok := NewStandardTokenizer(Options{})
	got, err := tok.Tokenize("Hi, you")
	require.NoError(t, err)

	require.Len(t, got, 3)
	assert.False(t, got[0].WhitespaceAfter)
	assert.True(t, got[1].WhitespaceAfter)
	assert.False(t, got[2].WhitespaceAfter)
}

func TestNormalizeNFC(t *testing.T) {
	decomposed := "Socie\u0301te\u0301"

	raw, err := NewWhitespaceTokenizer(Options{}).Tokenize(decomposed)
	require.NoError(t, err)
	assert.Equal(t, decomposed, raw[0].Text)

	nfc, err := NewWhitespaceTokenizer(Options{NormalizeNFC: true}).Tokenize(decomposed)
	require.NoError(t, err)
	assert.Equal(t, "Soci\u00e9t\u00e9", nfc[0].Text)
}

func TestRegistry(t *testing.T) {
	r := NewRegistry(Options{})
	assert.Equal(t, []string{"standard", "whitespace"}, r.Names())

	tok, err := r.Get("whitespace")
	require.NoError(t, err)
	assert.IsType(t, &WhitespaceTokenizer{}, tok)

	_, err = r.Get("spacy")
	assert.True(t, errors.Is(err, ErrUnknownTokenizer))

	require.NoError(t, r.Register("custom", NewWhitespaceTokenizer(Options{})))
	assert.Error(t, r.Register("custom", NewWhitespaceTokenizer(Options{})))
}
