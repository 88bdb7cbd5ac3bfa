// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/paper-agent/internal/extract"
)

var extractCmd = &cobra.Command{
	Use:   "extract <pdf>",
	Short: "Print the text of one page of a PDF",
	Args:  cobra.ExactArgs(1),
	RunE:  runExtract,
}

func init() {
	addExtractFlags(extractCmd)
	extractCmd.Flags().Int("page", 1, "page number to print (0 prints every page)")

	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg := resolveRunConfig("")
	ex, err := extract.New(cfg.Extraction.Backend)
	if err != nil {
		return err
	}

	doc, err := ex.Extract(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	page := viper.GetInt("page")
	if page == 0 {
		for i, text := range doc {
			fmt.Fprintf(os.Stdout, "--- page %d ---\n%s\n", i+1, text)
		}
		return nil
	}
	if page < 0 || page > len(doc) {
		return fmt.Errorf("page %d out of range: %s has %d pages", page, args[0], len(doc))
	}
	fmt.Fprintln(os.Stdout, doc[page-1])
	return nil
}
