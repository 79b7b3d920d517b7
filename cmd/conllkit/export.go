package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/gosuri/uiprogress"
	"github.com/spf13/cobra"

	"github.com/kittclouds/conllkit/internal/archive"
	"github.com/kittclouds/conllkit/internal/config"
	"github.com/kittclouds/conllkit/internal/store"
	"github.com/kittclouds/conllkit/pkg/annotate"
	"github.com/kittclouds/conllkit/pkg/conll"
	"github.com/kittclouds/conllkit/pkg/docstore"
	"github.com/kittclouds/conllkit/pkg/lookups"
	"github.com/kittclouds/conllkit/pkg/pipeline"
	"github.com/kittclouds/conllkit/pkg/report"
	"github.com/kittclouds/conllkit/pkg/tokenize"
)

const reportFile = "report.json"

var exportCmd = &cobra.Command{
	Use:   "export [texts-dir]",
	Short: "Annotate every text in a directory and write CoNLL files",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runExport,
}

func init() {
	f := exportCmd.Flags()
	f.String("output", "", "output directory (overrides config)")
	f.String("tokenizer", "", "tokenizer name (overrides config)")
	f.Int("workers", 0, "documents processed in parallel (overrides config)")
	f.Bool("misc", false, "emit the MISC column with SpaceAfter=No")
	f.Bool("no-zip", false, "do not write the zip archive")
	f.String("db", "", "also record the run in this sqlite database")
	f.Bool("json", false, "print the run summary as JSON on stdout")
	f.Bool("progress", true, "show a progress bar when stderr is a terminal")
}

// applyExportFlags overlays explicitly set flags onto cfg.
func applyExportFlags(cmd *cobra.Command, cfg *config.Config, args []string) error {
	f := cmd.Flags()
	if len(args) == 1 {
		cfg.Texts = args[0]
	}
	if f.Changed("output") {
		cfg.Output, _ = f.GetString("output")
	}
	if f.Changed("tokenizer") {
		cfg.Tokenizer, _ = f.GetString("tokenizer")
	}
	if f.Changed("workers") {
		cfg.Workers, _ = f.GetInt("workers")
	}
	if f.Changed("misc") {
		cfg.Misc, _ = f.GetBool("misc")
	}
	if f.Changed("no-zip") {
		noZip, _ := f.GetBool("no-zip")
		cfg.Zip = !noZip
	}
	if f.Changed("db") {
		cfg.Database, _ = f.GetString("db")
	}
	return cfg.Validate()
}

func runExport(cmd *cobra.Command, args []string) error {
	start := time.Now()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := applyExportFlags(cmd, cfg, args); err != nil {
		return err
	}
	logger := slog.Default().With("run", cfg.Name)

	sources, err := cfg.Sources()
	if err != nil {
		return err
	}
	lookupStore, err := lookups.Load(sources)
	if err != nil {
		return err
	}
	logger.Info("lookups loaded",
		"sources", len(sources),
		"lemma", lookupStore.Len(lookups.CategoryLemma),
		"pos", lookupStore.Len(lookups.CategoryPOS),
		"entity", lookupStore.Len(lookups.CategoryEntity))

	tok, err := tokenize.NewRegistry(tokenize.Options{NormalizeNFC: cfg.Normalize}).Get(cfg.Tokenizer)
	if err != nil {
		return err
	}

	var tags *annotate.TagSet
	if !cfg.AnyTag {
		tags = annotate.UniversalTags().Extend(cfg.ExtraTags...)
	}
	annotator, err := annotate.New(lookupStore, tok, annotate.Options{Tags: tags, Logger: logger})
	if err != nil {
		return err
	}
	var skipped []string
	for _, perr := range annotator.SkippedPhrases() {
		skipped = append(skipped, perr.Phrase)
	}

	texts := docstore.New()
	n, err := texts.LoadDir(cfg.Resolve(cfg.Texts))
	if err != nil {
		return err
	}
	if n == 0 {
		statusf(warnColor, "warning", "no texts found in %s", cfg.Resolve(cfg.Texts))
	}

	showProgress, _ := cmd.Flags().GetBool("progress")
	showProgress = showProgress && n > 0 && isTerminal(os.Stderr)

	var bar *uiprogress.Bar
	opts := pipeline.Options{
		Workers: cfg.Workers,
		Conll:   conll.Options{Misc: cfg.Misc},
		Logger:  logger,
	}
	if showProgress {
		uiprogress.Start()
		bar = uiprogress.AddBar(n)
		bar.AppendCompleted()
		bar.PrependElapsed()
		opts.OnDone = func(pipeline.Result) { bar.Incr() }
	}

	p, err := pipeline.New(tok, annotator, opts)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	results, err := p.Run(ctx, texts.All())
	if showProgress {
		uiprogress.Stop()
	}
	if err != nil {
		return err
	}

	outDir := cfg.Resolve(cfg.Output)
	files := make([]archive.File, 0, len(results))
	for _, r := range results {
		files = append(files, archive.File{ID: r.ID, Conll: r.Conll})
	}
	if _, err := archive.WriteDir(outDir, files); err != nil {
		return err
	}
	if cfg.Zip {
		zipPath := filepath.Clean(outDir) + ".zip"
		if err := archive.Zip(outDir, zipPath); err != nil {
			return err
		}
		logger.Info("archive written", "path", zipPath)
	}

	if cfg.Database != "" {
		if err := recordRun(ctx, cfg.Resolve(cfg.Database), results); err != nil {
			return err
		}
	}

	summary := report.FromResults(cfg.Name, results, skipped, time.Since(start))
	data, err := summary.Marshal()
	if err != nil {
		return err
	}
	// report.json sits beside the output directory so Zip never picks it up.
	reportPath := filepath.Join(filepath.Dir(filepath.Clean(outDir)), reportFile)
	if err := os.WriteFile(reportPath, data, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
	}

	if len(skipped) > 0 {
		statusf(warnColor, "warning", "%d entity phrase(s) could not be tokenized", len(skipped))
	}
	if summary.POSRejected > 0 {
		statusf(warnColor, "warning", "%d POS assignment(s) rejected", summary.POSRejected)
	}
	statusf(okColor, "done", "%d document(s), %d token(s), %d span(s) -> %s",
		summary.Documents, summary.Tokens, summary.Spans, outDir)
	return nil
}

func recordRun(ctx context.Context, dsn string, results []pipeline.Result) error {
	db, err := store.NewSQLiteStoreWithDSN(dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := saveResults(ctx, db, results); err != nil {
		return err
	}
	slog.Info("run recorded", "database", dsn, "documents", len(results))
	return nil
}

func saveResults(ctx context.Context, db store.Storer, results []pipeline.Result) error {
	for _, r := range results {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := db.SaveDocument(r.Doc, r.Conll); err != nil {
			return fmt.Errorf("record %s: %w", r.ID, err)
		}
	}
	return nil
}
