// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Defaults applied when a configuration value is left unset.
const (
	DefaultCount          = 5
	DefaultPageSize       = 50
	DefaultPapersDir      = "papers"
	DefaultReportDir      = "."
	DefaultReportPrefix   = "paper-review-"
	DefaultModel          = "deepseek-r1:1.5b"
	DefaultOllamaURL      = "http://localhost:11434"
	DefaultReasoningOpen  = "<think>"
	DefaultReasoningClose = "</think>"
	DefaultUserAgent      = "paper-agent/0.1"
	DefaultTimeout        = 60 * time.Second
	DefaultPageDelay      = 3 * time.Second
	DefaultDownloadDelay  = 1 * time.Second
)

// DefaultQuestion asks for a Chinese summary and a ten-point score along
// novelty, effectiveness, and problem significance.
const DefaultQuestion = "帮我生成这篇文章的中文摘要，并从新意度、有效性、问题大小三个维度综合评估这篇文章的价值，" +
	"满分十分，生成完中文摘要后，打出你认为的评分。"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout. Zero disables the timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests.
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// SearchConfig holds settings for the search stage.
type SearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL is the abstract-search endpoint (e.g. "https://arxiv.org/search/").
	BaseURL string `json:"base_url" yaml:"base_url"`

	// PageSize is the number of listing entries requested per page (fixed at 50).
	PageSize int `json:"page_size" yaml:"page_size"`

	// PageDelay is the pause after each page fetch.
	PageDelay time.Duration `json:"page_delay" yaml:"page_delay"`
}

// AcquisitionConfig holds settings for the download stage.
type AcquisitionConfig struct {
	HTTPConfig `yaml:",inline"`

	// DownloadDelay is the pause after each attempted download.
	DownloadDelay time.Duration `json:"download_delay" yaml:"download_delay"`

	// PapersDir is the directory PDFs are saved into.
	PapersDir string `json:"papers_dir" yaml:"papers_dir"`
}

// ExtractorBackend identifies the PDF text extraction tool.
type ExtractorBackend string

const (
	ExtractorNative    ExtractorBackend = "native"
	ExtractorPdftotext ExtractorBackend = "pdftotext"
)

// ExtractionConfig holds settings for the text extraction stage.
type ExtractionConfig struct {
	// Backend selects the extraction tool: native or pdftotext.
	Backend ExtractorBackend `json:"backend" yaml:"backend"`
}

// AIConfig holds settings for the local model stage.
type AIConfig struct {
	// Model is the Ollama model identifier (e.g. "deepseek-r1:1.5b").
	Model string `json:"model" yaml:"model"`

	// BaseURL is the Ollama server address.
	BaseURL string `json:"base_url" yaml:"base_url"`

	// Timeout bounds a single generate call. Zero disables the timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// Question is asked about every paper.
	Question string `json:"question" yaml:"question"`

	// ReasoningOpen and ReasoningClose delimit the reasoning block removed
	// from model responses.
	ReasoningOpen  string `json:"reasoning_open" yaml:"reasoning_open"`
	ReasoningClose string `json:"reasoning_close" yaml:"reasoning_close"`
}

// ReportConfig controls where the dated report is written.
type ReportConfig struct {
	// Dir is the directory for the report file.
	Dir string `json:"dir" yaml:"dir"`

	// Prefix precedes the YYYYMMDD date in the report filename.
	Prefix string `json:"prefix" yaml:"prefix"`
}

// RunConfig groups all stage configurations for one review run.
type RunConfig struct {
	// Keyword is the abstract search query.
	Keyword string `json:"keyword" yaml:"keyword"`

	// Count is the maximum number of papers to download.
	Count int `json:"count" yaml:"count"`

	Search      SearchConfig      `json:"search" yaml:"search"`
	Acquisition AcquisitionConfig `json:"acquisition" yaml:"acquisition"`
	Extraction  ExtractionConfig  `json:"extraction" yaml:"extraction"`
	AI          AIConfig          `json:"ai" yaml:"ai"`
	Report      ReportConfig      `json:"report" yaml:"report"`
}

// DefaultRunConfig returns a RunConfig populated with the default values.
func DefaultRunConfig() RunConfig {
	httpCfg := HTTPConfig{Timeout: DefaultTimeout, UserAgent: DefaultUserAgent}
	return RunConfig{
		Count: DefaultCount,
		Search: SearchConfig{
			HTTPConfig: httpCfg,
			BaseURL:    "https://arxiv.org/search/",
			PageSize:   DefaultPageSize,
			PageDelay:  DefaultPageDelay,
		},
		Acquisition: AcquisitionConfig{
			HTTPConfig:    httpCfg,
			DownloadDelay: DefaultDownloadDelay,
			PapersDir:     DefaultPapersDir,
		},
		Extraction: ExtractionConfig{Backend: ExtractorNative},
		AI: AIConfig{
			Model:          DefaultModel,
			BaseURL:        DefaultOllamaURL,
			Timeout:        5 * time.Minute,
			Question:       DefaultQuestion,
			ReasoningOpen:  DefaultReasoningOpen,
			ReasoningClose: DefaultReasoningClose,
		},
		Report: ReportConfig{
			Dir:    DefaultReportDir,
			Prefix: DefaultReportPrefix,
		},
	}
}
