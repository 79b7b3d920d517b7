// Package pipeline wires the stages of an export run: tokenize each input
// text, overlay the lookups, render CoNLL.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/kittclouds/conllkit/pkg/annotate"
	"github.com/kittclouds/conllkit/pkg/conll"
	"github.com/kittclouds/conllkit/pkg/docstore"
	"github.com/kittclouds/conllkit/pkg/tokenize"
)

// Options configures a Pipeline.
type Options struct {
	// Workers bounds how many documents are processed at once. Values below
	// 1 mean sequential processing.
	Workers int

	// Conll selects the output variant.
	Conll conll.Options

	// OnDone, if set, is called after each document completes. It may be
	// called from several goroutines.
	OnDone func(Result)

	// Logger for per-document events. If nil, slog.Default() is used.
	Logger *slog.Logger
}

// Result is the outcome for one input document.
type Result struct {
	ID       string
	Doc      *annotate.Document
	Conll    string
	Stats    annotate.Stats
	Duration time.Duration
}

// Pipeline runs documents through tokenizer, annotator and serializer. The
// tokenizer and annotator are shared read-only; every document is owned by
// exactly one worker.
type Pipeline struct {
	tok       tokenize.Tokenizer
	annotator *annotate.Annotator
	opts      Options
	logger    *slog.Logger
}

// New creates a Pipeline.
func New(tok tokenize.Tokenizer, annotator *annotate.Annotator, opts Options) (*Pipeline, error) {
	if tok == nil {
		return nil, fmt.Errorf("pipeline: tokenizer is required")
	}
	if annotator == nil {
		return nil, annotate.ErrNoLookupStore
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{tok: tok, annotator: annotator, opts: opts, logger: logger}, nil
}

// Process handles a single document.
func (p *Pipeline) Process(in docstore.Document) (Result, error) {
	start := time.Now()

	stream, err := p.tok.Tokenize(in.Text)
	if err != nil {
		return Result{}, fmt.Errorf("pipeline: tokenize %q: %w", in.ID, err)
	}

	doc := annotate.NewDocument(in.ID, stream)
	stats, err := p.annotator.AnnotateStats(doc)
	if err != nil {
		return Result{}, fmt.Errorf("pipeline: annotate %q: %w", in.ID, err)
	}

	res := Result{
		ID:       in.ID,
		Doc:      doc,
		Conll:    p.opts.Conll.Serialize(doc),
		Stats:    stats,
		Duration: time.Since(start),
	}
	p.logger.Debug("document exported",
		"doc", in.ID,
		"tokens", len(doc.Tokens),
		"spans", stats.Spans,
		"lemma_hits", stats.LemmaHits,
		"pos_hits", stats.POSHits,
		"duration", res.Duration,
	)
	return res, nil
}

// Run processes every input and returns the results in input order. The
// first failure cancels the remaining work and no results are returned.
func (p *Pipeline) Run(ctx context.Context, inputs []docstore.Document) ([]Result, error) {
	results := make([]Result, len(inputs))
	if len(inputs) == 0 {
		return results, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, min(p.opts.Workers, len(inputs))))

	for i, in := range inputs {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			res, err := p.Process(in)
			if err != nil {
				return err
			}
			results[i] = res
			if p.opts.OnDone != nil {
				p.opts.OnDone(res)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Totals sums the stats of a run.
func Totals(results []Result) (annotate.Stats, int) {
	var stats annotate.Stats
	tokens := 0
	for _, r := range results {
		stats.Add(r.Stats)
		if r.Doc != nil {
			tokens += len(r.Doc.Tokens)
		}
	}
	return stats, tokens
}
