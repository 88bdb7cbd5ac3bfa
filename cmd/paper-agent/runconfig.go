// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/paper-agent/internal/acquire"
	"github.com/pdiddy/paper-agent/internal/answer"
	"github.com/pdiddy/paper-agent/internal/extract"
	"github.com/pdiddy/paper-agent/internal/review"
	"github.com/pdiddy/paper-agent/internal/search"
	"github.com/pdiddy/paper-agent/pkg/types"
)

// Flag registration helpers. Each flag maps to the viper key with dashes
// replaced by underscores, so the same setting can come from the config file
// or a PAPER_AGENT_* environment variable.

func addSearchFlags(cmd *cobra.Command) {
	cmd.Flags().String("search-url", types.DefaultRunConfig().Search.BaseURL, "arXiv search endpoint")
	cmd.Flags().Duration("page-delay", types.DefaultPageDelay, "pause after each listing page")
	cmd.Flags().Duration("timeout", types.DefaultTimeout, "HTTP request timeout (0 disables)")
	cmd.Flags().String("user-agent", types.DefaultUserAgent, "User-Agent header for arXiv requests")
}

func addAcquireFlags(cmd *cobra.Command) {
	cmd.Flags().Int("count", types.DefaultCount, "number of papers to download")
	cmd.Flags().String("papers-dir", types.DefaultPapersDir, "directory for downloaded PDFs")
	cmd.Flags().Duration("download-delay", types.DefaultDownloadDelay, "pause after each download")
}

func addExtractFlags(cmd *cobra.Command) {
	cmd.Flags().String("extractor", string(types.ExtractorNative), "text extraction backend: native or pdftotext")
}

func addAIFlags(cmd *cobra.Command) {
	cmd.Flags().String("question", "", "question asked about each paper (default: the evaluation prompt)")
	cmd.Flags().String("model", types.DefaultModel, "Ollama model name")
	cmd.Flags().String("ollama-url", types.DefaultOllamaURL, "Ollama server address")
	cmd.Flags().Duration("ai-timeout", types.DefaultRunConfig().AI.Timeout, "timeout for one model call (0 disables)")
}

func addReportFlags(cmd *cobra.Command) {
	cmd.Flags().String("report-dir", types.DefaultReportDir, "directory for the dated report")
	cmd.Flags().String("report-prefix", types.DefaultReportPrefix, "report filename prefix before YYYYMMDD")
}

// resolveRunConfig starts from the defaults and overlays every key set in
// the config file, the environment, or on the command line.
func resolveRunConfig(keyword string) types.RunConfig {
	cfg := types.DefaultRunConfig()
	cfg.Keyword = keyword

	setInt("count", &cfg.Count)

	setString("search_url", &cfg.Search.BaseURL)
	setDuration("page_delay", &cfg.Search.PageDelay)
	setDuration("timeout", &cfg.Search.Timeout)
	setString("user_agent", &cfg.Search.UserAgent)
	cfg.Acquisition.HTTPConfig = cfg.Search.HTTPConfig

	setString("papers_dir", &cfg.Acquisition.PapersDir)
	setDuration("download_delay", &cfg.Acquisition.DownloadDelay)

	var backend string
	if setString("extractor", &backend) {
		cfg.Extraction.Backend = types.ExtractorBackend(backend)
	}

	setString("question", &cfg.AI.Question)
	setString("model", &cfg.AI.Model)
	setString("ollama_url", &cfg.AI.BaseURL)
	setDuration("ai_timeout", &cfg.AI.Timeout)
	setString("reasoning_open", &cfg.AI.ReasoningOpen)
	setString("reasoning_close", &cfg.AI.ReasoningClose)

	setString("report_dir", &cfg.Report.Dir)
	setString("report_prefix", &cfg.Report.Prefix)
	return cfg
}

// setString copies a non-empty viper value into dst.
func setString(key string, dst *string) bool {
	if !viper.IsSet(key) {
		return false
	}
	v := viper.GetString(key)
	if v == "" {
		return false
	}
	*dst = v
	return true
}

func setInt(key string, dst *int) {
	if viper.IsSet(key) {
		*dst = viper.GetInt(key)
	}
}

func setDuration(key string, dst *time.Duration) {
	if viper.IsSet(key) {
		*dst = viper.GetDuration(key)
	}
}

// keywordArg joins the positional arguments into one search keyword.
func keywordArg(args []string) (string, error) {
	keyword := strings.TrimSpace(strings.Join(args, " "))
	if keyword == "" {
		return "", fmt.Errorf("provide a search keyword")
	}
	return keyword, nil
}

// newPipeline builds a pipeline with the search and download stages wired.
// Extraction and answering are added by withAnalysis.
func newPipeline(cfg types.RunConfig) *review.Pipeline {
	httpClient := &http.Client{Timeout: cfg.Search.Timeout}
	return &review.Pipeline{
		Search:   search.NewClient(httpClient, cfg.Search, log),
		Download: acquire.NewDownloader(httpClient, cfg.Acquisition, log),
		Config:   cfg,
		Log:      log,
	}
}

// withAnalysis adds the extractor and the Ollama answerer to p.
func withAnalysis(p *review.Pipeline) (*review.Pipeline, error) {
	ex, err := extract.New(p.Config.Extraction.Backend)
	if err != nil {
		return nil, err
	}
	p.Extractor = ex
	ollama := answer.NewOllamaClient(p.Config.AI.BaseURL, p.Config.AI.Timeout)
	p.Answerer = answer.NewAnswerer(ollama, p.Config.AI)
	return p, nil
}
