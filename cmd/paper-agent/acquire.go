// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var acquireCmd = &cobra.Command{
	Use:   "acquire <keyword...>",
	Short: "Search arXiv and download matching PDFs",
	Long: `Acquire walks the arXiv listing for the keyword and downloads up to --count
PDFs into --papers-dir. Files that already exist are kept and count toward
the total. Entries without a PDF link and failed downloads are skipped.`,
	RunE: runAcquire,
}

func init() {
	addSearchFlags(acquireCmd)
	addAcquireFlags(acquireCmd)

	rootCmd.AddCommand(acquireCmd)
}

func runAcquire(cmd *cobra.Command, args []string) error {
	keyword, err := keywordArg(args)
	if err != nil {
		return err
	}
	cfg := resolveRunConfig(keyword)
	if cfg.Count <= 0 {
		return fmt.Errorf("--count must be positive, got %d", cfg.Count)
	}

	papers, err := newPipeline(cfg).Acquire(cmd.Context())
	fmt.Fprintf(os.Stdout, "\nAcquire summary: %d of %d downloaded into %s\n",
		len(papers), cfg.Count, cfg.Acquisition.PapersDir)
	for _, p := range papers {
		fmt.Fprintf(os.Stdout, "  %s\n", p.PDFPath)
	}
	return err
}
