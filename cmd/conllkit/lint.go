package main

import (
	"errors"
	"fmt"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/kittclouds/conllkit/pkg/lint"
	"github.com/kittclouds/conllkit/pkg/lookups"
	"github.com/kittclouds/conllkit/pkg/tokenize"
)

var errLintFailed = errors.New("lookup tables have errors")

var lintStopwords string

func init() {
	lintCmd.Flags().StringVar(&lintStopwords, "stopwords", "", "stopword language for phrase checks (overrides config; \"none\" disables)")
}

var lintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Check lookup tables for suspicious entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		sources, err := cfg.Sources()
		if err != nil {
			return err
		}
		store, err := lookups.Load(sources)
		if err != nil {
			return err
		}
		tok, err := tokenize.NewRegistry(tokenize.Options{NormalizeNFC: cfg.Normalize}).Get(cfg.Tokenizer)
		if err != nil {
			return err
		}

		lang := cfg.Stopwords
		if lintStopwords != "" {
			lang = lintStopwords
		}
		if lang == "none" {
			lang = ""
		}
		checker, err := lint.New(tok, lang)
		if err != nil {
			return err
		}

		findings := checker.Check(store)
		printFindings(cmd, findings)

		if lint.HasErrors(findings) {
			return errLintFailed
		}
		statusf(okColor, "ok", "%d lookup source(s), %d finding(s)", len(sources), len(findings))
		return nil
	},
}

// keyColumnMax caps the key column so one long phrase does not push every
// message off screen.
const keyColumnMax = 40

// printFindings writes one aligned line per finding. Keys are padded by
// display width so CJK and combining characters line up.
func printFindings(cmd *cobra.Command, findings []lint.Finding) {
	width := 0
	for _, f := range findings {
		width = max(width, runewidth.StringWidth(fmt.Sprintf("%q", f.Key)))
	}
	width = min(width, keyColumnMax)

	out := cmd.OutOrStdout()
	for _, f := range findings {
		c := warnColor
		if f.Severity == lint.SeverityError {
			c = errColor
		}
		key := runewidth.FillRight(runewidth.Truncate(fmt.Sprintf("%q", f.Key), keyColumnMax, "…"), width)
		fmt.Fprintf(out, "%s %-6s %s  %s\n", c.Sprintf("%-7s", f.Severity), f.Category, key, f.Message)
	}
}
