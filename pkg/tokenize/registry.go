package tokenize

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrUnknownTokenizer is returned by Registry.Get for unregistered names.
var ErrUnknownTokenizer = errors.New("tokenize: unknown tokenizer")

// Registry maps configuration names to tokenizer variants.
type Registry struct {
	mu         sync.RWMutex
	tokenizers map[string]Tokenizer
}

// NewRegistry creates a Registry with the built-in tokenizers registered.
func NewRegistry(opts Options) *Registry {
	return &Registry{
		tokenizers: map[string]Tokenizer{
			"standard":   NewStandardTokenizer(opts),
			"whitespace": NewWhitespaceTokenizer(opts),
		},
	}
}

// Get returns the tokenizer registered under name.
func (r *Registry) Get(name string) (Tokenizer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tokenizers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTokenizer, name)
	}
	return t, nil
}

// Register adds a custom tokenizer.
func (r *Registry) Register(name string, t Tokenizer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.tokenizers[name]; exists {
		return fmt.Errorf("tokenize: tokenizer already registered: %q", name)
	}
	r.tokenizers[name] = t
	return nil
}

// Names returns the registered names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.tokenizers))
	for name := range r.tokenizers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
