// Package phrase finds every occurrence of known entity phrases in a token
// sequence. A single Aho-Corasick automaton is built over the tokenized
// phrases, so one pass over a document reports all matches, overlapping ones
// included.
package phrase

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/coregx/ahocorasick"

	"github.com/kittclouds/conllkit/pkg/tokenize"
)

// boundary separates tokens in the byte encoding fed to the automaton.
// Patterns are encoded as boundary+t0+boundary+...+tn+boundary, so a hit can
// only start and end on token edges.
const boundary = "\x00"

// Match is one occurrence of an entity phrase: tokens [Start, End).
type Match struct {
	Key   string
	Label string
	Start int
	End   int
}

// Options configures Compile.
type Options struct {
	// Logger receives skipped-phrase warnings. If nil, slog.Default() is used.
	Logger *slog.Logger
}

// Matcher is an exact, case-sensitive multi-token phrase matcher. It is
// immutable once compiled and safe for concurrent use.
type Matcher struct {
	ac *ahocorasick.Automaton

	// Pattern index -> key indices (distinct keys may tokenize identically)
	patternToKeys [][]int

	// Encoded pattern -> pattern index
	patternIndex map[string]int

	// Token count per pattern
	lengths []int

	keys   []string
	labels []string

	skipped []*PhraseTokenizationError
}

// Compile tokenizes every entity phrase with tok and builds the automaton.
// Phrases that cannot be tokenized are logged and skipped; they never fail
// the whole compilation. An empty table yields a matcher that never matches.
func Compile(entities map[string]string, tok tokenize.Tokenizer, opts Options) (*Matcher, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	m := &Matcher{patternIndex: make(map[string]int)}

	keys := make([]string, 0, len(entities))
	for k := range entities {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var patterns []string
	for _, key := range keys {
		texts, err := tokenizePhrase(key, tok)
		if err != nil {
			perr := &PhraseTokenizationError{Phrase: key, Err: err}
			logger.Warn("skipping entity phrase", "phrase", key, "error", err)
			m.skipped = append(m.skipped, perr)
			continue
		}

		keyIdx := len(m.keys)
		m.keys = append(m.keys, key)
		m.labels = append(m.labels, entities[key])

		encoded := encode(texts)
		if idx, exists := m.patternIndex[encoded]; exists {
			m.patternToKeys[idx] = append(m.patternToKeys[idx], keyIdx)
			continue
		}
		m.patternIndex[encoded] = len(patterns)
		patterns = append(patterns, encoded)
		m.patternToKeys = append(m.patternToKeys, []int{keyIdx})
		m.lengths = append(m.lengths, len(texts))
	}

	if len(patterns) == 0 {
		return m, nil
	}

	automaton, err := ahocorasick.NewBuilder().
		AddStrings(patterns).
		SetPrefilter(true).
		Build()
	if err != nil {
		return nil, fmt.Errorf("phrase: build automaton: %w", err)
	}
	m.ac = automaton

	return m, nil
}

func tokenizePhrase(phrase string, tok tokenize.Tokenizer) ([]string, error) {
	if tok == nil {
		return nil, fmt.Errorf("no tokenizer configured")
	}
	stream, err := tok.Tokenize(phrase)
	if err != nil {
		return nil, err
	}
	if len(stream) == 0 {
		return nil, fmt.Errorf("phrase produced no tokens")
	}
	texts := stream.Texts()
	for _, t := range texts {
		if t == "" {
			return nil, fmt.Errorf("phrase produced an empty token")
		}
		if strings.Contains(t, boundary) {
			return nil, fmt.Errorf("token %q contains a NUL byte", t)
		}
	}
	return texts, nil
}

func encode(texts []string) string {
	var b strings.Builder
	b.WriteString(boundary)
	for _, t := range texts {
		b.WriteString(t)
		b.WriteString(boundary)
	}
	return b.String()
}

// Match scans a token sequence and returns every phrase occurrence, ordered
// by start index, then end index, then phrase key. Overlapping and repeated
// occurrences are all reported.
func (m *Matcher) Match(texts []string) []Match {
	if m == nil || m.ac == nil || len(texts) == 0 {
		return nil
	}

	// edges maps the byte offset of each boundary to the token index it
	// precedes; the final boundary maps to len(texts).
	edges := make(map[int]int, len(texts)+1)
	var hay strings.Builder
	for i, t := range texts {
		edges[hay.Len()] = i
		hay.WriteString(boundary)
		hay.WriteString(t)
	}
	edges[hay.Len()] = len(texts)
	hay.WriteString(boundary)

	hits := m.ac.FindAllOverlapping([]byte(hay.String()))

	var out []Match
	for _, h := range hits {
		start, ok := edges[h.Start]
		if !ok {
			continue
		}
		end, ok := edges[h.End-1]
		if !ok || end-start != m.lengths[h.PatternID] {
			continue
		}
		for _, k := range m.patternToKeys[h.PatternID] {
			out = append(out, Match{Key: m.keys[k], Label: m.labels[k], Start: start, End: end})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Start != out[j].Start {
			return out[i].Start < out[j].Start
		}
		if out[i].End != out[j].End {
			return out[i].End < out[j].End
		}
		return out[i].Key < out[j].Key
	})
	return out
}

// Len returns the number of compiled phrases.
func (m *Matcher) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Skipped returns the phrases that could not be tokenized.
func (m *Matcher) Skipped() []*PhraseTokenizationError {
	if m == nil {
		return nil
	}
	return m.skipped
}
