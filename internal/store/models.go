// Package store provides SQLite-backed persistence for export runs.
package store

import "github.com/kittclouds/conllkit/pkg/annotate"

// DocumentRecord is one exported document.
type DocumentRecord struct {
	ID        string `json:"id"`
	Conll     string `json:"conll"`
	Tokens    int    `json:"tokens"`
	CreatedAt int64  `json:"createdAt"`
}

// TokenRecord is one annotated token.
type TokenRecord struct {
	DocID      string `json:"docId"`
	Index      int    `json:"index"`
	Text       string `json:"text"`
	Lemma      string `json:"lemma"`
	POS        string `json:"pos"`
	IsSpace    bool   `json:"isSpace"`
	SpaceAfter bool   `json:"spaceAfter"`
}

// SpanRecord is one entity span, Seq being its insertion order.
type SpanRecord struct {
	DocID string `json:"docId"`
	Seq   int    `json:"seq"`
	Label string `json:"label"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// Storer is the persistence contract used by the CLI.
type Storer interface {
	SaveDocument(doc *annotate.Document, conll string) error
	GetDocument(id string) (*DocumentRecord, error)
	ListDocuments() ([]*DocumentRecord, error)
	Tokens(docID string) ([]*TokenRecord, error)
	Spans(docID string) ([]*SpanRecord, error)
	Export() ([]byte, error)
	Close() error
}
