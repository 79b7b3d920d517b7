package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/kittclouds/conllkit/pkg/annotate"
)

// SQLiteStore is the SQLite-backed run database.
// Thread-safe for concurrent pipeline workers.
type SQLiteStore struct {
	mu sync.RWMutex
	db *sql.DB
}

// schema defines the tables of a run database.
const schema = `
CREATE TABLE IF NOT EXISTS documents (
    id TEXT PRIMARY KEY,
    conll TEXT NOT NULL,
    tokens INTEGER NOT NULL DEFAULT 0,
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS tokens (
    doc_id TEXT NOT NULL,
    idx INTEGER NOT NULL,
    text TEXT NOT NULL,
    lemma TEXT,
    pos TEXT,
    is_space INTEGER DEFAULT 0,
    space_after INTEGER DEFAULT 0,
    PRIMARY KEY (doc_id, idx)
);

-- seq preserves span discovery order, which decides overlapping labels
CREATE TABLE IF NOT EXISTS spans (
    doc_id TEXT NOT NULL,
    seq INTEGER NOT NULL,
    label TEXT NOT NULL,
    start_idx INTEGER NOT NULL,
    end_idx INTEGER NOT NULL,
    PRIMARY KEY (doc_id, seq)
);

CREATE INDEX IF NOT EXISTS idx_spans_label ON spans(label);
`

// NewSQLiteStore creates a new in-memory SQLite store.
func NewSQLiteStore() (*SQLiteStore, error) {
	return NewSQLiteStoreWithDSN(":memory:")
}

// NewSQLiteStoreWithDSN creates a store with a specific data source name.
// Use ":memory:" for in-memory or a file path for persistent storage.
func NewSQLiteStoreWithDSN(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// one connection keeps ":memory:" databases alive and shared
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveDocument stores an annotated document and its rendering, replacing any
// earlier export with the same id.
func (s *SQLiteStore) SaveDocument(doc *annotate.Document, conll string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"tokens", "spans"} {
		if _, err := tx.Exec("DELETE FROM "+table+" WHERE doc_id = ?", doc.ID); err != nil {
			return fmt.Errorf("clear %s for %s: %w", table, doc.ID, err)
		}
	}

	_, err = tx.Exec(`
		INSERT OR REPLACE INTO documents (id, conll, tokens, created_at)
		VALUES (?, ?, ?, ?)
	`, doc.ID, conll, len(doc.Tokens), time.Now().Unix())
	if err != nil {
		return fmt.Errorf("insert document %s: %w", doc.ID, err)
	}

	tokStmt, err := tx.Prepare(`
		INSERT INTO tokens (doc_id, idx, text, lemma, pos, is_space, space_after)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer tokStmt.Close()

	for _, t := range doc.Tokens {
		if _, err := tokStmt.Exec(doc.ID, t.Index, t.Text, t.Lemma, t.POS,
			boolToInt(t.IsSpace), boolToInt(t.WhitespaceAfter)); err != nil {
			return fmt.Errorf("insert token %s/%d: %w", doc.ID, t.Index, err)
		}
	}

	for seq, sp := range doc.Spans {
		_, err := tx.Exec(`
			INSERT INTO spans (doc_id, seq, label, start_idx, end_idx)
			VALUES (?, ?, ?, ?, ?)
		`, doc.ID, seq, sp.Label, sp.Start, sp.End)
		if err != nil {
			return fmt.Errorf("insert span %s/%d: %w", doc.ID, seq, err)
		}
	}

	return tx.Commit()
}

// GetDocument retrieves an exported document by ID.
// Returns nil if not found.
func (s *SQLiteStore) GetDocument(id string) (*DocumentRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var d DocumentRecord
	err := s.db.QueryRow(`
		SELECT id, conll, tokens, created_at FROM documents WHERE id = ?
	`, id).Scan(&d.ID, &d.Conll, &d.Tokens, &d.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// ListDocuments returns every exported document ordered by ID.
func (s *SQLiteStore) ListDocuments() ([]*DocumentRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`SELECT id, conll, tokens, created_at FROM documents ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []*DocumentRecord
	for rows.Next() {
		var d DocumentRecord
		if err := rows.Scan(&d.ID, &d.Conll, &d.Tokens, &d.CreatedAt); err != nil {
			return nil, err
		}
		docs = append(docs, &d)
	}
	return docs, rows.Err()
}

// Tokens returns the tokens of a document in index order.
func (s *SQLiteStore) Tokens(docID string) ([]*TokenRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tokens(docID)
}

func (s *SQLiteStore) tokens(docID string) ([]*TokenRecord, error) {
	rows, err := s.db.Query(`
		SELECT doc_id, idx, text, lemma, pos, is_space, space_after
		FROM tokens WHERE doc_id = ? ORDER BY idx
	`, docID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*TokenRecord
	for rows.Next() {
		var t TokenRecord
		var lemma, pos sql.NullString
		var isSpace, spaceAfter int
		if err := rows.Scan(&t.DocID, &t.Index, &t.Text, &lemma, &pos, &isSpace, &spaceAfter); err != nil {
			return nil, err
		}
		t.Lemma = lemma.String
		t.POS = pos.String
		t.IsSpace = isSpace == 1
		t.SpaceAfter = spaceAfter == 1
		out = append(out, &t)
	}
	return out, rows.Err()
}

// Spans returns the spans of a document in discovery order.
func (s *SQLiteStore) Spans(docID string) ([]*SpanRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.spans(docID)
}

func (s *SQLiteStore) spans(docID string) ([]*SpanRecord, error) {
	rows, err := s.db.Query(`
		SELECT doc_id, seq, label, start_idx, end_idx
		FROM spans WHERE doc_id = ? ORDER BY seq
	`, docID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*SpanRecord
	for rows.Next() {
		var sp SpanRecord
		if err := rows.Scan(&sp.DocID, &sp.Seq, &sp.Label, &sp.Start, &sp.End); err != nil {
			return nil, err
		}
		out = append(out, &sp)
	}
	return out, rows.Err()
}

// CountSpansByLabel returns how many spans carry each label across all
// documents.
func (s *SQLiteStore) CountSpansByLabel() (map[string]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`SELECT label, COUNT(*) FROM spans GROUP BY label`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var label string
		var n int
		if err := rows.Scan(&label, &n); err != nil {
			return nil, err
		}
		counts[label] = n
	}
	return counts, rows.Err()
}

// exportDocument is the JSON shape of one document in Export.
type exportDocument struct {
	DocumentRecord
	TokenRows []*TokenRecord `json:"tokenRows"`
	Spans     []*SpanRecord  `json:"spans"`
}

// Export serializes all documents with their tokens and spans to JSON.
func (s *SQLiteStore) Export() ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`SELECT id, conll, tokens, created_at FROM documents ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("export documents: %w", err)
	}
	var docs []DocumentRecord
	for rows.Next() {
		var d DocumentRecord
		if err := rows.Scan(&d.ID, &d.Conll, &d.Tokens, &d.CreatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan document: %w", err)
		}
		docs = append(docs, d)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	data := struct {
		Documents []exportDocument `json:"documents"`
	}{Documents: make([]exportDocument, 0, len(docs))}

	for _, d := range docs {
		toks, err := s.tokens(d.ID)
		if err != nil {
			return nil, fmt.Errorf("export tokens %s: %w", d.ID, err)
		}
		spans, err := s.spans(d.ID)
		if err != nil {
			return nil, fmt.Errorf("export spans %s: %w", d.ID, err)
		}
		data.Documents = append(data.Documents, exportDocument{DocumentRecord: d, TokenRows: toks, Spans: spans})
	}

	return json.Marshal(data)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Compile-time interface check
var _ Storer = (*SQLiteStore)(nil)
