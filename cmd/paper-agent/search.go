// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/paper-agent/internal/search"
)

var searchCmd = &cobra.Command{
	Use:   "search <keyword...>",
	Short: "Show the arXiv listing for a keyword",
	Long: `Search fetches the first page of the arXiv abstract listing for the keyword
and prints the total result count with the entries that carry a PDF link.
Nothing is downloaded.`,
	RunE: runSearch,
}

func init() {
	addSearchFlags(searchCmd)
	searchCmd.Flags().Int("max-results", 20, "maximum number of entries to print")
	searchCmd.Flags().Bool("json", false, "output results as JSON")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	keyword, err := keywordArg(args)
	if err != nil {
		return err
	}
	cfg := resolveRunConfig(keyword)
	client := newPipeline(cfg).Search

	page, err := client.FetchPage(cmd.Context(), client.PageURL(keyword, 0))
	if err != nil {
		return err
	}
	papers := page.Records(viper.GetInt("max_results"))

	if viper.GetBool("json") {
		return search.FormatJSON(papers, os.Stdout)
	}
	search.FormatTable(page.Total(), papers, os.Stdout)
	return nil
}
