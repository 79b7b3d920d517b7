// Package docstore holds the input texts of a run in memory, keyed by the
// provenance id (usually the source file name) that follows each document
// through annotation and export.
package docstore

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// Store holds raw input documents in memory.
// Thread-safe for concurrent access from pipeline workers.
type Store struct {
	mu   sync.RWMutex
	docs map[string]*Document
}

// Document is one raw input text.
type Document struct {
	ID   string // Provenance id, e.g. "ovid.txt"
	Text string
}

// New creates an empty document store.
func New() *Store {
	return &Store{
		docs: make(map[string]*Document),
	}
}

// Hydrate bulk-loads documents into the store.
func (s *Store) Hydrate(docs []Document) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, doc := range docs {
		s.docs[doc.ID] = &Document{ID: doc.ID, Text: doc.Text}
	}
	return len(docs)
}

// LoadDir reads every regular, non-hidden file in dir as one document whose
// id is the file name.
func (s *Store) LoadDir(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("docstore: read dir %s: %w", dir, err)
	}

	var docs []Document
	for _, e := range entries {
		if !e.Type().IsRegular() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return 0, fmt.Errorf("docstore: read %s: %w", e.Name(), err)
		}
		docs = append(docs, Document{ID: e.Name(), Text: string(data)})
	}
	return s.Hydrate(docs), nil
}

// Upsert adds or replaces a single document.
func (s *Store) Upsert(id, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.docs[id] = &Document{ID: id, Text: text}
}

// Remove deletes a document from the store.
func (s *Store) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.docs, id)
}

// Get retrieves a document by ID.
// Returns nil if not found.
func (s *Store) Get(id string) *Document {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.docs[id]
}

// Count returns the number of documents in the store.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.docs)
}

// AllIDs returns all document IDs in lexical order.
func (s *Store) AllIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.docs))
	for id := range s.docs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// All returns every document ordered by ID.
func (s *Store) All() []Document {
	ids := s.AllIDs()

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Document, 0, len(ids))
	for _, id := range ids {
		if d, ok := s.docs[id]; ok {
			out = append(out, *d)
		}
	}
	return out
}

// Clear removes all documents.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.docs = make(map[string]*Document)
}
