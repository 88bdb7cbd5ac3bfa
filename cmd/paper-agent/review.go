// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var reviewCmd = &cobra.Command{
	Use:   "review <keyword...>",
	Short: "Search, download, and review papers with a local model",
	Long: `Review searches the arXiv abstract listing for the keyword, downloads up to
--count PDFs into --papers-dir, reads the first page of each, and asks the
Ollama model the review question. Answers are written to
<report-dir>/<report-prefix>YYYYMMDD.md; a report from earlier the same day
is overwritten.

Papers that fail extraction or answering are logged and left out of the
report. A run that downloads nothing writes no report.`,
	Args: cobra.ArbitraryArgs,
	RunE: runReview,
}

func init() {
	addSearchFlags(reviewCmd)
	addAcquireFlags(reviewCmd)
	addExtractFlags(reviewCmd)
	addAIFlags(reviewCmd)
	addReportFlags(reviewCmd)

	rootCmd.AddCommand(reviewCmd)
}

func runReview(cmd *cobra.Command, args []string) error {
	keyword, err := keywordArg(args)
	if err != nil {
		return err
	}
	cfg := resolveRunConfig(keyword)
	if cfg.Count <= 0 {
		return fmt.Errorf("--count must be positive, got %d", cfg.Count)
	}

	pipeline, err := withAnalysis(newPipeline(cfg))
	if err != nil {
		return err
	}

	summary, err := pipeline.Run(cmd.Context())
	summary.Print(os.Stdout)
	if err != nil {
		return err
	}
	if summary.HasFailures() {
		log.Warn().Int("failed", summary.Failed).Msg("some papers were not reviewed")
	}
	return nil
}
