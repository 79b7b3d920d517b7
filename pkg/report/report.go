// Package report builds the JSON summary written next to an export.
package report

import (
	"encoding/json"
	"time"

	"github.com/kittclouds/conllkit/pkg/pipeline"
)

// Summary is the run-level view of an export.
type Summary struct {
	Name           string           `json:"name,omitempty"`
	Documents      int              `json:"documents"`
	Tokens         int              `json:"tokens"`
	LemmaHits      int              `json:"lemmaHits"`
	POSHits        int              `json:"posHits"`
	POSRejected    int              `json:"posRejected"`
	Spans          int              `json:"spans"`
	SkippedPhrases []string         `json:"skippedPhrases,omitempty"`
	Files          []DocumentReport `json:"files"`
	DurationUS     int64            `json:"duration_us"`
}

// DocumentReport holds the per-document counters.
type DocumentReport struct {
	ID     string `json:"id"`
	Tokens int    `json:"tokens"`
	Spans  int    `json:"spans"`
}

// FromResults summarizes a finished run.
func FromResults(name string, results []pipeline.Result, skipped []string, elapsed time.Duration) *Summary {
	stats, tokens := pipeline.Totals(results)

	s := &Summary{
		Name:           name,
		Documents:      len(results),
		Tokens:         tokens,
		LemmaHits:      stats.LemmaHits,
		POSHits:        stats.POSHits,
		POSRejected:    stats.POSRejected,
		Spans:          stats.Spans,
		SkippedPhrases: skipped,
		Files:          make([]DocumentReport, 0, len(results)),
		DurationUS:     elapsed.Microseconds(),
	}

	for _, r := range results {
		dr := DocumentReport{ID: r.ID, Spans: r.Stats.Spans}
		if r.Doc != nil {
			dr.Tokens = len(r.Doc.Tokens)
		}
		s.Files = append(s.Files, dr)
	}
	return s
}

// Marshal renders the summary as indented JSON.
func (s *Summary) Marshal() ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}
