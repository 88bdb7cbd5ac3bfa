// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-agent/internal/review"
	"github.com/pdiddy/paper-agent/pkg/types"
)

var askCmd = &cobra.Command{
	Use:   "ask <pdf>",
	Short: "Ask the model about the first page of one PDF",
	Long: `Ask extracts the first page of a local PDF and asks the Ollama model the
review question (or --question). The answer is printed with the reasoning
block removed.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	addExtractFlags(askCmd)
	addAIFlags(askCmd)

	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	cfg := resolveRunConfig("")
	pipeline, err := withAnalysis(&review.Pipeline{Config: cfg, Log: log})
	if err != nil {
		return err
	}

	path := args[0]
	paper := types.Paper{
		Title:   strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		PDFPath: path,
	}
	fmt.Fprintf(os.Stdout, "Question: %s\n\n", pipeline.Answerer.Question())
	outcome := pipeline.ProcessPaper(cmd.Context(), paper, "")
	if !outcome.OK() {
		return fmt.Errorf("%s %s: %w", outcome.Stage, path, outcome.Err)
	}
	fmt.Fprint(os.Stdout, review.FormatBlock(outcome.Answer))
	return nil
}
